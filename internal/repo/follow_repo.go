package repo

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/foodgram-backend/internal/domain"
)

// CreateFollow subscribes userID to authorID. It returns ErrDuplicate when
// the subscription already exists and ErrNotFound when either user is gone.
func CreateFollow(ctx context.Context, db *gorm.DB, userID, authorID uint) error {
	f := &domain.Follow{UserID: userID, AuthorID: authorID}
	return mapWriteErr(db.WithContext(ctx).Omit(clause.Associations).Create(f).Error)
}

// DeleteFollow removes a subscription and reports whether one existed.
func DeleteFollow(ctx context.Context, db *gorm.DB, userID, authorID uint) (bool, error) {
	res := db.WithContext(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&domain.Follow{})
	return res.RowsAffected > 0, res.Error
}

// FollowingSet returns which of authorIDs userID is subscribed to.
func FollowingSet(ctx context.Context, db *gorm.DB, userID uint, authorIDs []uint) (map[uint]bool, error) {
	out := make(map[uint]bool, len(authorIDs))
	if userID == 0 || len(authorIDs) == 0 {
		return out, nil
	}
	var ids []uint
	err := db.WithContext(ctx).
		Model(&domain.Follow{}).
		Where("user_id = ? AND author_id IN ?", userID, authorIDs).
		Pluck("author_id", &ids).Error
	if err != nil {
		return nil, err
	}
	for _, id := range ids {
		out[id] = true
	}
	return out, nil
}

// CountFollowedAuthors returns how many authors userID is subscribed to.
func CountFollowedAuthors(ctx context.Context, db *gorm.DB, userID uint) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Follow{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	return total, err
}

// ListFollowedAuthorsPage returns a page of the authors userID is subscribed
// to, ordered by username.
func ListFollowedAuthorsPage(ctx context.Context, db *gorm.DB, userID uint, offset, limit int) ([]domain.User, error) {
	var out []domain.User
	err := db.WithContext(ctx).
		Joins("JOIN follows ON follows.author_id = users.id").
		Where("follows.user_id = ?", userID).
		Order("users.username asc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}
