package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tbourn/foodgram-backend/internal/domain"
	"github.com/tbourn/foodgram-backend/internal/repo"
)

// IngredientService exposes the read-only ingredient catalogue.
type IngredientService struct {
	DB *gorm.DB
}

// List returns ingredients whose name starts with prefix, case-insensitively,
// ordered by name. An empty prefix lists the whole catalogue.
func (s *IngredientService) List(ctx context.Context, prefix string) ([]domain.Ingredient, error) {
	items, err := repo.ListIngredients(ctx, s.DB, normalizeText(prefix))
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []domain.Ingredient{}
	}
	return items, nil
}

// Get returns one ingredient.
func (s *IngredientService) Get(ctx context.Context, id uint) (*domain.Ingredient, error) {
	ing, err := repo.GetIngredient(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrIngredientNotFound
		}
		return nil, err
	}
	return ing, nil
}
