package services

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/foodgram-backend/internal/repo"
	"github.com/tbourn/foodgram-backend/internal/shopping"
)

// ShoppingService builds the shopping list from a user's cart.
type ShoppingService struct {
	DB *gorm.DB
}

// List returns one line per (ingredient, unit) across every recipe in
// userID's cart, amounts summed, ordered by name then unit.
func (s *ShoppingService) List(ctx context.Context, userID uint) ([]shopping.Item, error) {
	tr := otel.Tracer("services/ShoppingService")
	ctx, span := tr.Start(ctx, "List",
		trace.WithAttributes(attribute.Int64("user.id", int64(userID))),
	)
	defer span.End()

	rows, err := repo.ListCartUsage(ctx, s.DB, userID)
	if err != nil {
		return nil, err
	}
	items := shopping.Aggregate(rows)
	span.SetAttributes(attribute.Int("shopping.items", len(items)))
	return items, nil
}
