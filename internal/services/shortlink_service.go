package services

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/foodgram-backend/internal/repo"
	"github.com/tbourn/foodgram-backend/internal/shortlink"
)

// ShortLinkService turns recipe IDs into short shareable links and back.
type ShortLinkService struct {
	DB *gorm.DB
	// BaseURL is the absolute public origin, without a trailing slash.
	BaseURL string
	// Path is the short-link route prefix ("/links").
	Path string
}

// Code returns the short code of an existing recipe.
func (s *ShortLinkService) Code(ctx context.Context, recipeID uint) (string, error) {
	tr := otel.Tracer("services/ShortLinkService")
	ctx, span := tr.Start(ctx, "Code",
		trace.WithAttributes(attribute.Int64("recipe.id", int64(recipeID))),
	)
	defer span.End()

	exists, err := repo.RecipeExists(ctx, s.DB, recipeID)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", ErrRecipeNotFound
	}
	return shortlink.Encode(int64(recipeID))
}

// Link returns the absolute short link of an existing recipe, in the
// "<base>/links/<code>/" form that earlier releases published.
func (s *ShortLinkService) Link(ctx context.Context, recipeID uint) (string, error) {
	code, err := s.Code(ctx, recipeID)
	if err != nil {
		return "", err
	}
	return s.BaseURL + "/" + strings.Trim(s.Path, "/") + "/" + code + "/", nil
}

// Resolve decodes code and returns the recipe ID it names. It returns
// ErrInvalidShortLink for malformed codes and ErrRecipeNotFound when the
// recipe does not exist.
func (s *ShortLinkService) Resolve(ctx context.Context, code string) (uint, error) {
	tr := otel.Tracer("services/ShortLinkService")
	ctx, span := tr.Start(ctx, "Resolve",
		trace.WithAttributes(attribute.String("shortlink.code", code)),
	)
	defer span.End()

	n, err := shortlink.Decode(code)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrInvalidShortLink, err)
	}
	id := uint(n)
	exists, err := repo.RecipeExists(ctx, s.DB, id)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, ErrRecipeNotFound
	}
	span.SetAttributes(attribute.Int64("recipe.id", n))
	return id, nil
}

// RecipeURL is the absolute front-end URL of a recipe.
func (s *ShortLinkService) RecipeURL(recipeID uint) string {
	return s.BaseURL + "/recipes/" + strconv.FormatUint(uint64(recipeID), 10)
}
