package services

import (
	"context"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
	"gorm.io/gorm"

	"github.com/tbourn/foodgram-backend/internal/domain"
	"github.com/tbourn/foodgram-backend/internal/repo"
)

// UserCard is a user as seen by a viewer.
type UserCard struct {
	User         domain.User
	IsSubscribed bool
}

// AuthorCard is a followed author with a preview of their recipes.
type AuthorCard struct {
	UserCard
	Recipes      []domain.Recipe
	RecipesCount int64
}

// RecipeCard is a recipe with the viewer's relation flags. For anonymous
// viewers every flag is false.
type RecipeCard struct {
	Recipe           domain.Recipe
	IsFavorited      bool
	IsInShoppingCart bool
	AuthorSubscribed bool
}

// requireAccount returns ErrUnknownAccount when userID has no user row.
func requireAccount(ctx context.Context, db *gorm.DB, userID uint) error {
	ok, err := repo.UserExists(ctx, db, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrUnknownAccount
	}
	return nil
}

// whitespaceRE collapses consecutive whitespace to a single space.
var whitespaceRE = regexp.MustCompile(`\s+`)

// normalizeText trims, collapses whitespace, and composes Unicode (NFC) so
// visually equal names compare equal.
func normalizeText(s string) string {
	return norm.NFC.String(whitespaceRE.ReplaceAllString(strings.TrimSpace(s), " "))
}
