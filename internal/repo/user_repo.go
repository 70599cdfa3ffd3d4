// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the User model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions. They carry no business rules: email
// normalization, password hashing, and avatar storage live in the services.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/foodgram-backend/internal/domain"
)

// CreateUser inserts u and fills its ID. It returns ErrDuplicate when the
// email or username is already taken.
func CreateUser(ctx context.Context, db *gorm.DB, u *domain.User) error {
	return mapWriteErr(db.WithContext(ctx).Create(u).Error)
}

// GetUser fetches a user by ID, or ErrNotFound.
func GetUser(ctx context.Context, db *gorm.DB, id uint) (*domain.User, error) {
	var u domain.User
	if err := db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// UserExists reports whether a user row with id exists.
func UserExists(ctx context.Context, db *gorm.DB, id uint) (bool, error) {
	var n int64
	err := db.WithContext(ctx).Model(&domain.User{}).Where("id = ?", id).Count(&n).Error
	return n > 0, err
}

// UserTaken reports whether email or username already belong to an account.
func UserTaken(ctx context.Context, db *gorm.DB, email, username string) (emailTaken, usernameTaken bool, err error) {
	var rows []struct {
		Email    string
		Username string
	}
	err = db.WithContext(ctx).
		Model(&domain.User{}).
		Select("email", "username").
		Where("email = ? OR username = ?", email, username).
		Scan(&rows).Error
	if err != nil {
		return false, false, err
	}
	for _, r := range rows {
		emailTaken = emailTaken || r.Email == email
		usernameTaken = usernameTaken || r.Username == username
	}
	return emailTaken, usernameTaken, nil
}

// CountUsers returns the total number of accounts.
func CountUsers(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.User{}).Count(&total).Error
	return total, err
}

// ListUsersPage returns a page of users ordered by username.
func ListUsersPage(ctx context.Context, db *gorm.DB, offset, limit int) ([]domain.User, error) {
	var out []domain.User
	err := db.WithContext(ctx).
		Order("username asc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// UpdateUserAvatar stores the avatar path (empty clears it).
// Returns ErrNotFound if the user does not exist.
func UpdateUserAvatar(ctx context.Context, db *gorm.DB, id uint, avatar string) error {
	return updateUserColumn(ctx, db, id, "avatar", avatar)
}

// UpdateUserPassword stores a new password hash.
// Returns ErrNotFound if the user does not exist.
func UpdateUserPassword(ctx context.Context, db *gorm.DB, id uint, hash string) error {
	return updateUserColumn(ctx, db, id, "password_hash", hash)
}

func updateUserColumn(ctx context.Context, db *gorm.DB, id uint, col string, val any) error {
	res := db.WithContext(ctx).
		Model(&domain.User{}).
		Where("id = ?", id).
		Update(col, val)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
