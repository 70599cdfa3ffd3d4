// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate/statistics queries used
// for conditional responses (ETag generation) in the HTTP layer. Each
// function is context-aware and safe to call from services or handlers.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/foodgram-backend/internal/domain"
)

// latest returns the row count of q and the greatest value of col, or
// (0, nil) for an empty set.
func latest(q *gorm.DB, col string) (count int64, maxAt *time.Time, err error) {
	q = q.Session(&gorm.Session{})
	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest value (avoid MAX() -> TEXT in SQLite)
	var row struct {
		At time.Time
	}
	if err = q.Select(col + " AS at").Order(col + " DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.At, nil
}

// RecipesStats returns the number of recipes matching f and the greatest
// UpdatedAt among them.
func RecipesStats(ctx context.Context, db *gorm.DB, f RecipeFilter) (count int64, maxUpdatedAt *time.Time, err error) {
	return latest(f.apply(db.WithContext(ctx).Model(&domain.Recipe{})), "recipes.updated_at")
}

// UserRecipeStats returns the size of userID's list in T's table and the
// time of the latest addition.
func UserRecipeStats[T any](ctx context.Context, db *gorm.DB, userID uint) (count int64, maxCreatedAt *time.Time, err error) {
	return latest(db.WithContext(ctx).Model(new(T)).Where("user_id = ?", userID), "created_at")
}

// FollowStats returns how many authors userID follows and the time of the
// latest subscription.
func FollowStats(ctx context.Context, db *gorm.DB, userID uint) (count int64, maxCreatedAt *time.Time, err error) {
	return latest(db.WithContext(ctx).Model(&domain.Follow{}).Where("user_id = ?", userID), "created_at")
}

// UsersStats returns the number of accounts and the greatest UpdatedAt.
func UsersStats(ctx context.Context, db *gorm.DB) (count int64, maxUpdatedAt *time.Time, err error) {
	return latest(db.WithContext(ctx).Model(&domain.User{}), "updated_at")
}
