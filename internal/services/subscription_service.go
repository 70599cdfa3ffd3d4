package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tbourn/foodgram-backend/internal/domain"
	"github.com/tbourn/foodgram-backend/internal/repo"
	"github.com/tbourn/foodgram-backend/internal/utils"
)

// SubscriptionService manages who follows whom. Every author card carries a
// preview of the author's newest recipes; recipesLimit <= 0 means all.
type SubscriptionService struct {
	DB *gorm.DB
}

// Subscribe makes userID follow authorID and returns the author's card.
func (s *SubscriptionService) Subscribe(ctx context.Context, userID, authorID uint, recipesLimit int) (*AuthorCard, error) {
	if userID == authorID {
		return nil, ErrSelfSubscribe
	}
	author, err := repo.GetUser(ctx, s.DB, authorID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if err := repo.CreateFollow(ctx, s.DB, userID, authorID); err != nil {
		switch {
		case errors.Is(err, repo.ErrDuplicate):
			return nil, ErrAlreadySubscribed
		case errors.Is(err, repo.ErrNotFound):
			if err := requireAccount(ctx, s.DB, userID); err != nil {
				return nil, err
			}
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	cards, err := s.authorCards(ctx, []domain.User{*author}, recipesLimit)
	if err != nil {
		return nil, err
	}
	return &cards[0], nil
}

// Unsubscribe removes the subscription. The author must exist and be
// followed.
func (s *SubscriptionService) Unsubscribe(ctx context.Context, userID, authorID uint) error {
	if _, err := repo.GetUser(ctx, s.DB, authorID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	removed, err := repo.DeleteFollow(ctx, s.DB, userID, authorID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrNotSubscribed
	}
	return nil
}

// ListPage returns a page of the authors userID follows, ordered by
// username, and the total count.
func (s *SubscriptionService) ListPage(ctx context.Context, userID uint, page, pageSize, recipesLimit int) ([]AuthorCard, int64, error) {
	offset, limit := utils.Offset(page, pageSize)

	total, err := repo.CountFollowedAuthors(ctx, s.DB, userID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []AuthorCard{}, 0, nil
	}

	authors, err := repo.ListFollowedAuthorsPage(ctx, s.DB, userID, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	cards, err := s.authorCards(ctx, authors, recipesLimit)
	return cards, total, err
}

// authorCards builds cards for authors the viewer follows.
func (s *SubscriptionService) authorCards(ctx context.Context, authors []domain.User, recipesLimit int) ([]AuthorCard, error) {
	ids := make([]uint, len(authors))
	for i := range authors {
		ids[i] = authors[i].ID
	}
	counts, err := repo.CountRecipesByAuthors(ctx, s.DB, ids)
	if err != nil {
		return nil, err
	}

	out := make([]AuthorCard, len(authors))
	for i, a := range authors {
		recipes, err := repo.ListRecipesByAuthor(ctx, s.DB, a.ID, recipesLimit)
		if err != nil {
			return nil, err
		}
		out[i] = AuthorCard{
			UserCard:     UserCard{User: a, IsSubscribed: true},
			Recipes:      recipes,
			RecipesCount: counts[a.ID],
		}
	}
	return out, nil
}
