// Package services – UserService
//
// This file implements account management: registration with bcrypt password
// hashing, public profiles with the viewer's subscription flag, avatar upload
// and removal, and password changes. Emails are stored lower-cased; names are
// whitespace-collapsed and NFC-normalized before they reach the database.
package services

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"

	"github.com/tbourn/foodgram-backend/internal/domain"
	"github.com/tbourn/foodgram-backend/internal/media"
	"github.com/tbourn/foodgram-backend/internal/repo"
	"github.com/tbourn/foodgram-backend/internal/utils"
)

// avatarFolder is the media sub-directory for user avatars.
const avatarFolder = "users"

// reservedUsernames collide with fixed /users/<name> routes.
var reservedUsernames = map[string]struct{}{
	"me":            {},
	"subscriptions": {},
	"set_password":  {},
}

// NewUser carries the registration form.
type NewUser struct {
	Email     string
	Username  string
	FirstName string
	LastName  string
	Password  string
}

// UserService manages accounts and profiles.
type UserService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Media stores avatar images.
	Media *media.Store
	// BcryptCost overrides bcrypt.DefaultCost when > 0.
	BcryptCost int
}

// Register creates an account. Email and username must be unused.
func (s *UserService) Register(ctx context.Context, in NewUser) (*domain.User, error) {
	u := &domain.User{
		Email:     strings.ToLower(strings.TrimSpace(in.Email)),
		Username:  norm.NFC.String(strings.TrimSpace(in.Username)),
		FirstName: normalizeText(in.FirstName),
		LastName:  normalizeText(in.LastName),
	}
	if _, reserved := reservedUsernames[strings.ToLower(u.Username)]; reserved {
		return nil, ErrReservedUsername
	}
	hash, err := s.hash(in.Password)
	if err != nil {
		return nil, err
	}
	u.PasswordHash = hash

	emailTaken, usernameTaken, err := repo.UserTaken(ctx, s.DB, u.Email, u.Username)
	if err != nil {
		return nil, err
	}
	switch {
	case emailTaken:
		return nil, ErrEmailTaken
	case usernameTaken:
		return nil, ErrUsernameTaken
	}

	if err := repo.CreateUser(ctx, s.DB, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			// Lost a race with a concurrent registration.
			if _, usernameTaken, _ := repo.UserTaken(ctx, s.DB, u.Email, u.Username); usernameTaken {
				return nil, ErrUsernameTaken
			}
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

// Get returns a profile with the viewer's subscription flag. viewerID 0 is
// an anonymous viewer.
func (s *UserService) Get(ctx context.Context, viewerID, id uint) (*UserCard, error) {
	u, err := repo.GetUser(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	following, err := repo.FollowingSet(ctx, s.DB, viewerID, []uint{id})
	if err != nil {
		return nil, err
	}
	return &UserCard{User: *u, IsSubscribed: following[id]}, nil
}

// ListPage returns a page of users ordered by username and the total count.
func (s *UserService) ListPage(ctx context.Context, viewerID uint, page, pageSize int) ([]UserCard, int64, error) {
	offset, limit := utils.Offset(page, pageSize)

	total, err := repo.CountUsers(ctx, s.DB)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []UserCard{}, 0, nil
	}

	users, err := repo.ListUsersPage(ctx, s.DB, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	ids := make([]uint, len(users))
	for i := range users {
		ids[i] = users[i].ID
	}
	following, err := repo.FollowingSet(ctx, s.DB, viewerID, ids)
	if err != nil {
		return nil, 0, err
	}

	out := make([]UserCard, len(users))
	for i, u := range users {
		out[i] = UserCard{User: u, IsSubscribed: following[u.ID]}
	}
	return out, total, nil
}

// SetAvatar stores a new avatar from a base64 data URI and returns its
// media path. The previous file is removed once the row is updated.
func (s *UserService) SetAvatar(ctx context.Context, userID uint, dataURI string) (string, error) {
	u, err := repo.GetUser(ctx, s.DB, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}

	rel, err := s.Media.SaveImage(avatarFolder, dataURI)
	if err != nil {
		if errors.Is(err, media.ErrInvalidImage) {
			return "", ErrInvalidImage
		}
		return "", err
	}
	if err := repo.UpdateUserAvatar(ctx, s.DB, userID, rel); err != nil {
		_ = s.Media.Remove(rel)
		if errors.Is(err, repo.ErrNotFound) {
			return "", ErrUserNotFound
		}
		return "", err
	}
	_ = s.Media.Remove(u.Avatar)
	return rel, nil
}

// DeleteAvatar clears the avatar. Clearing an unset avatar is a no-op.
func (s *UserService) DeleteAvatar(ctx context.Context, userID uint) error {
	u, err := repo.GetUser(ctx, s.DB, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if u.Avatar == "" {
		return nil
	}
	if err := repo.UpdateUserAvatar(ctx, s.DB, userID, ""); err != nil {
		return err
	}
	_ = s.Media.Remove(u.Avatar)
	return nil
}

// SetPassword replaces the password after verifying the current one.
func (s *UserService) SetPassword(ctx context.Context, userID uint, current, next string) error {
	u, err := repo.GetUser(ctx, s.DB, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(current)) != nil {
		return ErrWrongPassword
	}
	hash, err := s.hash(next)
	if err != nil {
		return err
	}
	return repo.UpdateUserPassword(ctx, s.DB, userID, hash)
}

func (s *UserService) hash(password string) (string, error) {
	if password == "" {
		return "", ErrInvalidPassword
	}
	cost := s.BcryptCost
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", ErrInvalidPassword
		}
		return "", err
	}
	return string(h), nil
}
