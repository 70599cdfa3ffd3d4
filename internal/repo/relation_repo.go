// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides generic repository functions for the
// per-user recipe lists (domain.Favorite and domain.ShoppingCart), which
// share one shape: a unique (user_id, recipe_id) pair.
package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UserRecipeRow is implemented by pointers to the relation models.
type UserRecipeRow[T any] interface {
	*T
	Bind(userID, recipeID uint)
}

// AddUserRecipe inserts a (user, recipe) row into T's table. It returns
// ErrDuplicate when the pair exists and ErrNotFound when the recipe or
// user does not.
func AddUserRecipe[T any, P UserRecipeRow[T]](ctx context.Context, db *gorm.DB, userID, recipeID uint) error {
	var row T
	P(&row).Bind(userID, recipeID)
	return mapWriteErr(db.WithContext(ctx).Omit(clause.Associations).Create(&row).Error)
}

// RemoveUserRecipe deletes the (user, recipe) row and reports whether it
// existed.
func RemoveUserRecipe[T any](ctx context.Context, db *gorm.DB, userID, recipeID uint) (bool, error) {
	res := db.WithContext(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(new(T))
	return res.RowsAffected > 0, res.Error
}

// UserRecipeSet returns which of recipeIDs are in userID's list.
func UserRecipeSet[T any](ctx context.Context, db *gorm.DB, userID uint, recipeIDs []uint) (map[uint]bool, error) {
	out := make(map[uint]bool, len(recipeIDs))
	if userID == 0 || len(recipeIDs) == 0 {
		return out, nil
	}
	var ids []uint
	err := db.WithContext(ctx).
		Model(new(T)).
		Where("user_id = ? AND recipe_id IN ?", userID, recipeIDs).
		Pluck("recipe_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}
