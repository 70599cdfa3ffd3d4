// Package services – RelationService
//
// RelationService implements the per-user recipe lists (favorites and the
// shopping cart). Both lists share the same rules: the recipe must exist, a
// recipe is in a list at most once, and removing a recipe that is not in the
// list is an error. The list is selected by the type parameter, which names
// the relation model and therefore its table.
package services

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/foodgram-backend/internal/domain"
	"github.com/tbourn/foodgram-backend/internal/repo"
)

// RelationService toggles membership of recipes in one per-user list.
type RelationService[T any, P repo.UserRecipeRow[T]] struct {
	DB *gorm.DB
	// Name labels spans and metrics ("favorite", "shopping_cart").
	Name string
}

// FavoriteService manages favorites.
type FavoriteService = RelationService[domain.Favorite, *domain.Favorite]

// CartService manages the shopping cart.
type CartService = RelationService[domain.ShoppingCart, *domain.ShoppingCart]

// NewFavoriteService returns the favorites list service.
func NewFavoriteService(db *gorm.DB) *FavoriteService {
	return &FavoriteService{DB: db, Name: "favorite"}
}

// NewCartService returns the shopping cart service.
func NewCartService(db *gorm.DB) *CartService {
	return &CartService{DB: db, Name: "shopping_cart"}
}

// Add puts recipeID into userID's list and returns the recipe without
// associations.
func (s *RelationService[T, P]) Add(ctx context.Context, userID, recipeID uint) (*domain.Recipe, error) {
	tr := otel.Tracer("services/RelationService")
	ctx, span := tr.Start(ctx, "Add",
		trace.WithAttributes(
			attribute.String("relation", s.Name),
			attribute.Int64("user.id", int64(userID)),
			attribute.Int64("recipe.id", int64(recipeID)),
		),
	)
	defer span.End()

	r, err := repo.GetRecipeBrief(ctx, s.DB, recipeID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	if err := repo.AddUserRecipe[T, P](ctx, s.DB, userID, recipeID); err != nil {
		switch {
		case errors.Is(err, repo.ErrDuplicate):
			return nil, ErrAlreadyInList
		case errors.Is(err, repo.ErrNotFound):
			// The recipe was just loaded, so the user side of the key failed
			// unless the recipe was deleted in between.
			if err := requireAccount(ctx, s.DB, userID); err != nil {
				return nil, err
			}
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return r, nil
}

// Remove takes recipeID out of userID's list.
func (s *RelationService[T, P]) Remove(ctx context.Context, userID, recipeID uint) error {
	tr := otel.Tracer("services/RelationService")
	ctx, span := tr.Start(ctx, "Remove",
		trace.WithAttributes(
			attribute.String("relation", s.Name),
			attribute.Int64("user.id", int64(userID)),
			attribute.Int64("recipe.id", int64(recipeID)),
		),
	)
	defer span.End()

	exists, err := repo.RecipeExists(ctx, s.DB, recipeID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrRecipeNotFound
	}
	removed, err := repo.RemoveUserRecipe[T](ctx, s.DB, userID, recipeID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotInList
	}
	return nil
}
