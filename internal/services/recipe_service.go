// Package services – RecipeService
//
// This file implements the recipe lifecycle: validated creation with the
// image stored through the media store, author-only updates and deletion,
// detail and list reads decorated with the viewer's favorite, cart, and
// subscription flags, and a cheap list fingerprint used for weak ETags.
//
// Creation optionally records an Idempotency-Key in the same transaction as
// the recipe row, so a retried POST can be answered with the recipe that was
// already created (see Replay).
//
// Observability: all public methods are OpenTelemetry-instrumented; spans
// include user and recipe identifiers where applicable.
package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/tbourn/foodgram-backend/internal/domain"
	"github.com/tbourn/foodgram-backend/internal/media"
	"github.com/tbourn/foodgram-backend/internal/repo"
	"github.com/tbourn/foodgram-backend/internal/utils"
)

// recipeFolder is the media sub-directory for recipe images.
const recipeFolder = "recipes"

// IngredientAmount is one line of a recipe form.
type IngredientAmount struct {
	ID     uint
	Amount int64
}

// RecipeInput carries a create or update form. Image is a base64 data URI;
// on update an empty Image keeps the current one.
type RecipeInput struct {
	Name        string
	Text        string
	CookingTime int
	Image       string
	Ingredients []IngredientAmount
}

// RecipeQuery filters recipe listings. Favorited and InCart refer to the
// viewer's own lists and match nothing for anonymous viewers.
type RecipeQuery struct {
	AuthorID  *uint
	Favorited bool
	InCart    bool
}

// IdempotencyKey scopes a client-supplied key to a route.
type IdempotencyKey struct {
	Scope string
	Key   string
}

// RecipeService coordinates recipe persistence, images, and viewer flags.
type RecipeService struct {
	DB    *gorm.DB
	Media *media.Store
	// IdempotencyTTL is how long a recorded key can be replayed.
	IdempotencyTTL time.Duration
}

// Create validates in, stores the image, and inserts the recipe. When
// idem.Key is set the key is recorded in the same transaction.
func (s *RecipeService) Create(ctx context.Context, authorID uint, in RecipeInput, idem IdempotencyKey) (*RecipeCard, error) {
	tr := otel.Tracer("services/RecipeService")
	ctx, span := tr.Start(ctx, "Create",
		trace.WithAttributes(
			attribute.Int64("user.id", int64(authorID)),
			attribute.Int("recipe.ingredients", len(in.Ingredients)),
			attribute.Bool("idempotent", idem.Key != ""),
		),
	)
	defer span.End()

	r, items, err := validateRecipe(in, true)
	if err != nil {
		return nil, err
	}
	if err := requireAccount(ctx, s.DB, authorID); err != nil {
		return nil, err
	}
	if err := s.checkIngredients(ctx, items); err != nil {
		return nil, err
	}
	if r.Image, err = s.saveImage(in.Image); err != nil {
		return nil, err
	}
	r.AuthorID = authorID

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.CreateRecipe(ctx, tx, &r, items); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrUnknownIngredient
			}
			return err
		}
		if idem.Key == "" {
			return nil
		}
		_, err := repo.CreateIdempotency(ctx, tx, authorID, idem.Scope, idem.Key, r.ID, http.StatusCreated, s.IdempotencyTTL)
		if errors.Is(err, repo.ErrDuplicate) {
			return ErrIdempotencyConflict
		}
		return err
	})
	if err != nil {
		_ = s.Media.Remove(r.Image)
		return nil, err
	}
	span.SetAttributes(attribute.Int64("recipe.id", int64(r.ID)))
	return s.Get(ctx, authorID, r.ID)
}

// Replay looks up a recorded Idempotency-Key for userID and returns the
// recipe it created with the recorded status. A zero status means there is
// nothing to replay.
func (s *RecipeService) Replay(ctx context.Context, userID uint, idem IdempotencyKey) (*RecipeCard, int, error) {
	tr := otel.Tracer("services/RecipeService")
	ctx, span := tr.Start(ctx, "Replay",
		trace.WithAttributes(
			attribute.Int64("user.id", int64(userID)),
			attribute.String("idempotency.scope", idem.Scope),
		),
	)
	defer span.End()

	if userID == 0 || idem.Key == "" {
		return nil, 0, nil
	}
	rec, err := repo.GetIdempotency(ctx, s.DB, userID, idem.Scope, idem.Key, time.Now().UTC())
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, 0, nil
		}
		return nil, 0, err
	}
	card, err := s.Get(ctx, userID, rec.RecipeID)
	if err != nil {
		return nil, 0, err
	}
	return card, rec.Status, nil
}

// Update replaces the recipe's fields and its full ingredient list. Only
// the author may update a recipe.
func (s *RecipeService) Update(ctx context.Context, userID, recipeID uint, in RecipeInput) (*RecipeCard, error) {
	tr := otel.Tracer("services/RecipeService")
	ctx, span := tr.Start(ctx, "Update",
		trace.WithAttributes(
			attribute.Int64("user.id", int64(userID)),
			attribute.Int64("recipe.id", int64(recipeID)),
		),
	)
	defer span.End()

	current, err := s.ownedRecipe(ctx, userID, recipeID)
	if err != nil {
		return nil, err
	}
	r, items, err := validateRecipe(in, false)
	if err != nil {
		return nil, err
	}
	if err := s.checkIngredients(ctx, items); err != nil {
		return nil, err
	}

	r.ID, r.AuthorID, r.Image = current.ID, current.AuthorID, current.Image
	newImage := ""
	if strings.TrimSpace(in.Image) != "" {
		if newImage, err = s.saveImage(in.Image); err != nil {
			return nil, err
		}
		r.Image = newImage
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.UpdateRecipe(ctx, tx, &r); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrRecipeNotFound
			}
			return err
		}
		if err := repo.ReplaceRecipeIngredients(ctx, tx, r.ID, items); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrUnknownIngredient
			}
			return err
		}
		return nil
	})
	if err != nil {
		_ = s.Media.Remove(newImage)
		return nil, err
	}
	if newImage != "" {
		_ = s.Media.Remove(current.Image)
	}
	return s.Get(ctx, userID, r.ID)
}

// Delete removes the recipe and its image. Only the author may delete it.
func (s *RecipeService) Delete(ctx context.Context, userID, recipeID uint) error {
	tr := otel.Tracer("services/RecipeService")
	ctx, span := tr.Start(ctx, "Delete",
		trace.WithAttributes(
			attribute.Int64("user.id", int64(userID)),
			attribute.Int64("recipe.id", int64(recipeID)),
		),
	)
	defer span.End()

	current, err := s.ownedRecipe(ctx, userID, recipeID)
	if err != nil {
		return err
	}
	if err := repo.DeleteRecipe(ctx, s.DB, recipeID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}
	_ = s.Media.Remove(current.Image)
	return nil
}

// Get returns one recipe with the viewer's flags.
func (s *RecipeService) Get(ctx context.Context, viewerID, recipeID uint) (*RecipeCard, error) {
	tr := otel.Tracer("services/RecipeService")
	ctx, span := tr.Start(ctx, "Get",
		trace.WithAttributes(
			attribute.Int64("user.id", int64(viewerID)),
			attribute.Int64("recipe.id", int64(recipeID)),
		),
	)
	defer span.End()

	r, err := repo.GetRecipe(ctx, s.DB, recipeID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	cards, err := s.cards(ctx, viewerID, []domain.Recipe{*r})
	if err != nil {
		return nil, err
	}
	return &cards[0], nil
}

// ListPage returns a page of recipes, newest first, and the total count.
func (s *RecipeService) ListPage(ctx context.Context, viewerID uint, q RecipeQuery, page, pageSize int) ([]RecipeCard, int64, error) {
	tr := otel.Tracer("services/RecipeService")
	ctx, span := tr.Start(ctx, "ListPage",
		trace.WithAttributes(
			attribute.Int64("user.id", int64(viewerID)),
			attribute.Bool("filter.favorited", q.Favorited),
			attribute.Bool("filter.in_cart", q.InCart),
			attribute.Int("page", page),
			attribute.Int("page_size", pageSize),
		),
	)
	defer span.End()

	f := recipeFilter(viewerID, q)
	offset, limit := utils.Offset(page, pageSize)

	total, err := repo.CountRecipes(ctx, s.DB, f)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []RecipeCard{}, 0, nil
	}
	recipes, err := repo.ListRecipesPage(ctx, s.DB, f, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	cards, err := s.cards(ctx, viewerID, recipes)
	return cards, total, err
}

// ListVersion returns a fingerprint that changes whenever a listing for
// (viewerID, q) could change: recipes matching q, the viewer's favorites,
// cart and subscriptions, and author profiles.
func (s *RecipeService) ListVersion(ctx context.Context, viewerID uint, q RecipeQuery) (string, error) {
	tr := otel.Tracer("services/RecipeService")
	ctx, span := tr.Start(ctx, "ListVersion",
		trace.WithAttributes(attribute.Int64("user.id", int64(viewerID))),
	)
	defer span.End()

	f := recipeFilter(viewerID, q)

	type source struct {
		tag string
		get func() (int64, *time.Time, error)
	}
	sources := []source{
		{"r", func() (int64, *time.Time, error) { return repo.RecipesStats(ctx, s.DB, f) }},
		{"u", func() (int64, *time.Time, error) { return repo.UsersStats(ctx, s.DB) }},
	}
	if viewerID != 0 {
		sources = append(sources,
			source{"f", func() (int64, *time.Time, error) {
				return repo.UserRecipeStats[domain.Favorite](ctx, s.DB, viewerID)
			}},
			source{"c", func() (int64, *time.Time, error) {
				return repo.UserRecipeStats[domain.ShoppingCart](ctx, s.DB, viewerID)
			}},
			source{"s", func() (int64, *time.Time, error) { return repo.FollowStats(ctx, s.DB, viewerID) }},
		)
	}

	var b strings.Builder
	b.WriteString(q.key(viewerID))
	for _, src := range sources {
		n, at, err := src.get()
		if err != nil {
			return "", err
		}
		var ts int64
		if at != nil {
			ts = at.UnixNano()
		}
		fmt.Fprintf(&b, ";%s:%d:%d", src.tag, n, ts)
	}
	return fmt.Sprintf("%016x", xxhash.Sum64String(b.String())), nil
}

// key identifies the query shape in the fingerprint.
func (q RecipeQuery) key(viewerID uint) string {
	author := "-"
	if q.AuthorID != nil {
		author = fmt.Sprint(*q.AuthorID)
	}
	if viewerID == 0 {
		q.Favorited, q.InCart = false, false
	}
	return fmt.Sprintf("v%d/a%s/f%t/c%t", viewerID, author, q.Favorited, q.InCart)
}

// recipeFilter maps q onto the repository filter. The favorites and cart
// filters only apply to a signed-in viewer; anonymous viewers get them
// ignored.
func recipeFilter(viewerID uint, q RecipeQuery) repo.RecipeFilter {
	f := repo.RecipeFilter{AuthorID: q.AuthorID}
	if viewerID == 0 {
		return f
	}
	if q.Favorited {
		f.FavoritedBy = viewerID
	}
	if q.InCart {
		f.InCartOf = viewerID
	}
	return f
}

// cards decorates recipes with the viewer's relation flags.
func (s *RecipeService) cards(ctx context.Context, viewerID uint, recipes []domain.Recipe) ([]RecipeCard, error) {
	ids := make([]uint, len(recipes))
	authorIDs := make([]uint, 0, len(recipes))
	seen := make(map[uint]struct{}, len(recipes))
	for i, r := range recipes {
		ids[i] = r.ID
		if _, ok := seen[r.AuthorID]; !ok {
			seen[r.AuthorID] = struct{}{}
			authorIDs = append(authorIDs, r.AuthorID)
		}
	}

	favs, err := repo.UserRecipeSet[domain.Favorite](ctx, s.DB, viewerID, ids)
	if err != nil {
		return nil, err
	}
	cart, err := repo.UserRecipeSet[domain.ShoppingCart](ctx, s.DB, viewerID, ids)
	if err != nil {
		return nil, err
	}
	following, err := repo.FollowingSet(ctx, s.DB, viewerID, authorIDs)
	if err != nil {
		return nil, err
	}

	out := make([]RecipeCard, len(recipes))
	for i, r := range recipes {
		out[i] = RecipeCard{
			Recipe:           r,
			IsFavorited:      favs[r.ID],
			IsInShoppingCart: cart[r.ID],
			AuthorSubscribed: following[r.AuthorID],
		}
	}
	return out, nil
}

// ownedRecipe loads a recipe and checks that userID is its author.
func (s *RecipeService) ownedRecipe(ctx context.Context, userID, recipeID uint) (*domain.Recipe, error) {
	r, err := repo.GetRecipeBrief(ctx, s.DB, recipeID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	if r.AuthorID != userID {
		return nil, ErrForbidden
	}
	return r, nil
}

// checkIngredients verifies every referenced ingredient exists.
func (s *RecipeService) checkIngredients(ctx context.Context, items []domain.RecipeIngredient) error {
	ids := make([]uint, len(items))
	for i := range items {
		ids[i] = items[i].IngredientID
	}
	n, err := repo.CountIngredientsByIDs(ctx, s.DB, ids)
	if err != nil {
		return err
	}
	if n != int64(len(ids)) {
		return ErrUnknownIngredient
	}
	return nil
}

func (s *RecipeService) saveImage(dataURI string) (string, error) {
	rel, err := s.Media.SaveImage(recipeFolder, dataURI)
	if errors.Is(err, media.ErrInvalidImage) {
		return "", ErrInvalidImage
	}
	return rel, err
}

// validateRecipe normalizes in and returns the scalar fields and the
// ingredient rows in submission order.
func validateRecipe(in RecipeInput, requireImage bool) (domain.Recipe, []domain.RecipeIngredient, error) {
	r := domain.Recipe{
		Name:        normalizeText(in.Name),
		Text:        strings.TrimSpace(in.Text),
		CookingTime: in.CookingTime,
	}
	if r.Name == "" || utf8.RuneCountInString(r.Name) > domain.MaxRecipeNameLen ||
		r.Text == "" || r.CookingTime < domain.MinCookingTime {
		return r, nil, ErrInvalidRecipe
	}
	if requireImage && strings.TrimSpace(in.Image) == "" {
		return r, nil, ErrImageRequired
	}
	if len(in.Ingredients) == 0 {
		return r, nil, ErrNoIngredients
	}

	items := make([]domain.RecipeIngredient, 0, len(in.Ingredients))
	seen := make(map[uint]struct{}, len(in.Ingredients))
	for _, it := range in.Ingredients {
		if _, dup := seen[it.ID]; dup {
			return r, nil, ErrDuplicateIngredient
		}
		seen[it.ID] = struct{}{}
		if it.Amount < domain.MinIngredientAmount {
			return r, nil, ErrInvalidAmount
		}
		items = append(items, domain.RecipeIngredient{IngredientID: it.ID, Amount: it.Amount})
	}
	return r, items, nil
}
