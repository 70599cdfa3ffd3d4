// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Recipe
// model and its ingredient amounts.
//
// Error semantics:
//   - When a recipe is not found, functions return ErrNotFound.
//   - Unique or foreign key failures on insert map to ErrDuplicate and
//     ErrNotFound respectively; other DB errors propagate unchanged.
//
// Listings are ordered newest first (created_at desc, id desc) and always
// preload the author and the ingredient catalogue rows.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/foodgram-backend/internal/domain"
)

// RecipeFilter narrows recipe listings. Zero values disable a filter.
type RecipeFilter struct {
	AuthorID    *uint // recipes written by this user
	FavoritedBy uint  // recipes in this user's favorites
	InCartOf    uint  // recipes in this user's shopping cart
}

func (f RecipeFilter) apply(q *gorm.DB) *gorm.DB {
	if f.AuthorID != nil {
		q = q.Where("recipes.author_id = ?", *f.AuthorID)
	}
	if f.FavoritedBy != 0 {
		q = q.Where("recipes.id IN (SELECT recipe_id FROM favorites WHERE user_id = ?)", f.FavoritedBy)
	}
	if f.InCartOf != 0 {
		q = q.Where("recipes.id IN (SELECT recipe_id FROM shopping_carts WHERE user_id = ?)", f.InCartOf)
	}
	return q
}

func withRecipeDetails(q *gorm.DB) *gorm.DB {
	return q.
		Preload("Author").
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("recipe_ingredients.id asc") }).
		Preload("Ingredients.Ingredient")
}

// CountRecipes returns the number of recipes matching f.
func CountRecipes(ctx context.Context, db *gorm.DB, f RecipeFilter) (int64, error) {
	var total int64
	err := f.apply(db.WithContext(ctx).Model(&domain.Recipe{})).Count(&total).Error
	return total, err
}

// ListRecipesPage returns a page of recipes matching f, newest first.
func ListRecipesPage(ctx context.Context, db *gorm.DB, f RecipeFilter, offset, limit int) ([]domain.Recipe, error) {
	var out []domain.Recipe
	err := withRecipeDetails(f.apply(db.WithContext(ctx).Model(&domain.Recipe{}))).
		Order("recipes.created_at desc").
		Order("recipes.id desc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// GetRecipe fetches a recipe with its author and ingredients, or ErrNotFound.
func GetRecipe(ctx context.Context, db *gorm.DB, id uint) (*domain.Recipe, error) {
	var r domain.Recipe
	if err := withRecipeDetails(db.WithContext(ctx)).First(&r, id).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// GetRecipeBrief fetches only the recipe row, without associations.
func GetRecipeBrief(ctx context.Context, db *gorm.DB, id uint) (*domain.Recipe, error) {
	var r domain.Recipe
	if err := db.WithContext(ctx).First(&r, id).Error; err != nil {
		return nil, err
	}
	return &r, nil
}

// RecipeExists reports whether a recipe with id exists.
func RecipeExists(ctx context.Context, db *gorm.DB, id uint) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.Recipe{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

// CreateRecipe inserts r and its ingredient amounts. Call it inside a
// transaction; on success r.ID and r.Ingredients are set.
func CreateRecipe(ctx context.Context, db *gorm.DB, r *domain.Recipe, items []domain.RecipeIngredient) error {
	if err := db.WithContext(ctx).Omit(clause.Associations).Create(r).Error; err != nil {
		return mapWriteErr(err)
	}
	if err := insertRecipeIngredients(ctx, db, r.ID, items); err != nil {
		return err
	}
	r.Ingredients = items
	return nil
}

// ReplaceRecipeIngredients swaps the full ingredient list of a recipe.
// Call it inside a transaction.
func ReplaceRecipeIngredients(ctx context.Context, db *gorm.DB, recipeID uint, items []domain.RecipeIngredient) error {
	if err := db.WithContext(ctx).
		Where("recipe_id = ?", recipeID).
		Delete(&domain.RecipeIngredient{}).Error; err != nil {
		return err
	}
	return insertRecipeIngredients(ctx, db, recipeID, items)
}

func insertRecipeIngredients(ctx context.Context, db *gorm.DB, recipeID uint, items []domain.RecipeIngredient) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].ID = 0
		items[i].RecipeID = recipeID
	}
	return mapWriteErr(db.WithContext(ctx).Omit(clause.Associations).Create(&items).Error)
}

// UpdateRecipe writes the scalar fields of r (name, image, text,
// cooking_time) and bumps updated_at. Returns ErrNotFound if r is gone.
func UpdateRecipe(ctx context.Context, db *gorm.DB, r *domain.Recipe) error {
	r.UpdatedAt = time.Now().UTC()
	res := db.WithContext(ctx).
		Model(&domain.Recipe{}).
		Where("id = ?", r.ID).
		Updates(map[string]any{
			"name":         r.Name,
			"image":        r.Image,
			"text":         r.Text,
			"cooking_time": r.CookingTime,
			"updated_at":   r.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteRecipe removes a recipe; ingredient amounts, favorites, and cart
// rows go with it through ON DELETE CASCADE.
func DeleteRecipe(ctx context.Context, db *gorm.DB, id uint) error {
	res := db.WithContext(ctx).Delete(&domain.Recipe{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CountRecipesByAuthors returns the number of recipes per author.
// Authors without recipes are absent from the map.
func CountRecipesByAuthors(ctx context.Context, db *gorm.DB, authorIDs []uint) (map[uint]int64, error) {
	out := make(map[uint]int64, len(authorIDs))
	if len(authorIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		AuthorID uint
		N        int64
	}
	err := db.WithContext(ctx).
		Model(&domain.Recipe{}).
		Select("author_id, COUNT(*) AS n").
		Where("author_id IN ?", authorIDs).
		Group("author_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		out[r.AuthorID] = r.N
	}
	return out, nil
}

// ListRecipesByAuthor returns an author's recipes, newest first, without
// associations. limit <= 0 returns all of them.
func ListRecipesByAuthor(ctx context.Context, db *gorm.DB, authorID uint, limit int) ([]domain.Recipe, error) {
	q := db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("created_at desc").
		Order("id desc")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []domain.Recipe
	err := q.Find(&out).Error
	return out, err
}
