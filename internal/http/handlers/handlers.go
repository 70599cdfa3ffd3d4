// Package handlers implements the Foodgram REST endpoints.
//
// Handlers are transport-thin: they bind and validate input, call application
// services through the contracts below, and translate results into JSON
// responses (including conditional and idempotent replays). The caller's
// identity comes from middleware.UserID; 0 means anonymous.
package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/foodgram-backend/internal/domain"
	"github.com/tbourn/foodgram-backend/internal/http/middleware"
	"github.com/tbourn/foodgram-backend/internal/services"
	"github.com/tbourn/foodgram-backend/internal/shopping"
	"github.com/tbourn/foodgram-backend/internal/utils"
)

//
// Service contracts (context-aware)
//

// UserService covers registration, profiles, avatars and passwords.
type UserService interface {
	Register(ctx context.Context, in services.NewUser) (*domain.User, error)
	Get(ctx context.Context, viewerID, id uint) (*services.UserCard, error)
	ListPage(ctx context.Context, viewerID uint, page, pageSize int) ([]services.UserCard, int64, error)
	SetAvatar(ctx context.Context, userID uint, dataURI string) (string, error)
	DeleteAvatar(ctx context.Context, userID uint) error
	SetPassword(ctx context.Context, userID uint, current, next string) error
}

// SubscriptionService manages follows between users and authors.
type SubscriptionService interface {
	Subscribe(ctx context.Context, userID, authorID uint, recipesLimit int) (*services.AuthorCard, error)
	Unsubscribe(ctx context.Context, userID, authorID uint) error
	ListPage(ctx context.Context, userID uint, page, pageSize, recipesLimit int) ([]services.AuthorCard, int64, error)
}

// IngredientService reads the ingredient catalogue.
type IngredientService interface {
	List(ctx context.Context, prefix string) ([]domain.Ingredient, error)
	Get(ctx context.Context, id uint) (*domain.Ingredient, error)
}

// RecipeService covers recipe CRUD, listing and idempotent creation.
type RecipeService interface {
	Create(ctx context.Context, authorID uint, in services.RecipeInput, idem services.IdempotencyKey) (*services.RecipeCard, error)
	// Replay returns the recipe recorded for idem and its original status, or
	// status 0 when there is no live record.
	Replay(ctx context.Context, userID uint, idem services.IdempotencyKey) (*services.RecipeCard, int, error)
	Update(ctx context.Context, userID, recipeID uint, in services.RecipeInput) (*services.RecipeCard, error)
	Delete(ctx context.Context, userID, recipeID uint) error
	Get(ctx context.Context, viewerID, recipeID uint) (*services.RecipeCard, error)
	ListPage(ctx context.Context, viewerID uint, q services.RecipeQuery, page, pageSize int) ([]services.RecipeCard, int64, error)
	// ListVersion fingerprints everything a list page for viewerID depends on.
	ListVersion(ctx context.Context, viewerID uint, q services.RecipeQuery) (string, error)
}

// RelationService is a per-user recipe list (favorites or shopping cart).
type RelationService interface {
	Add(ctx context.Context, userID, recipeID uint) (*domain.Recipe, error)
	Remove(ctx context.Context, userID, recipeID uint) error
}

// ShortLinkService encodes recipe IDs into short links and back.
type ShortLinkService interface {
	Link(ctx context.Context, recipeID uint) (string, error)
	Resolve(ctx context.Context, code string) (uint, error)
	RecipeURL(recipeID uint) string
}

// ShoppingService aggregates the caller's shopping cart.
type ShoppingService interface {
	List(ctx context.Context, userID uint) ([]shopping.Item, error)
}

//
// Handler wiring
//

// Deps bundles everything Handlers needs.
type Deps struct {
	Users         UserService
	Subscriptions SubscriptionService
	Ingredients   IngredientService
	Recipes       RecipeService
	Favorites     RelationService
	Cart          RelationService
	Links         ShortLinkService
	Shopping      ShoppingService

	// MediaURL turns a stored relative path into a public URL.
	MediaURL func(rel string) string

	PageSize    int // default page size
	MaxPageSize int // upper bound for ?limit
}

// Handlers groups all HTTP endpoints.
type Handlers struct {
	users    UserService
	subs     SubscriptionService
	ingreds  IngredientService
	recipes  RecipeService
	favs     RelationService
	cart     RelationService
	links    ShortLinkService
	shopping ShoppingService

	mediaURL    func(string) string
	pageSize    int
	maxPageSize int
}

// New constructs Handlers and registers the custom request validators.
func New(d Deps) *Handlers {
	registerValidators()

	h := &Handlers{
		users:       d.Users,
		subs:        d.Subscriptions,
		ingreds:     d.Ingredients,
		recipes:     d.Recipes,
		favs:        d.Favorites,
		cart:        d.Cart,
		links:       d.Links,
		shopping:    d.Shopping,
		mediaURL:    d.MediaURL,
		pageSize:    d.PageSize,
		maxPageSize: d.MaxPageSize,
	}
	if h.mediaURL == nil {
		h.mediaURL = func(rel string) string { return rel }
	}
	if h.pageSize < 1 {
		h.pageSize = utils.DefaultPageSize
	}
	if h.maxPageSize < h.pageSize {
		h.maxPageSize = h.pageSize
	}
	return h
}

//
// Helpers
//

// clampPagination parses and bounds the page and limit query params.
func (h *Handlers) clampPagination(c *gin.Context) (page, limit int) {
	return utils.ParsePage(c.Query("page"), c.Query("limit"), h.pageSize, h.maxPageSize)
}

// pathID parses a positive integer path parameter, answering 404 otherwise:
// a non-numeric ID names no resource.
func pathID(c *gin.Context, name string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || n == 0 {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "not found")
		return 0, false
	}
	return uint(n), true
}

// pageLink returns the current request URL with page replaced, or nil when
// page is outside 1..last.
func pageLink(c *gin.Context, page, last int) *string {
	if page < 1 || page > last {
		return nil
	}
	u := url.URL{Path: c.Request.URL.Path}
	q := c.Request.URL.Query()
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	s := u.String()
	return &s
}

// newPage assembles a Page for the current request.
func newPage[T any](c *gin.Context, results []T, total int64, page, limit int) Page[T] {
	last := int((total + int64(limit) - 1) / int64(limit))
	if results == nil {
		results = []T{}
	}
	return Page[T]{
		Count:    total,
		Next:     pageLink(c, page+1, last),
		Previous: pageLink(c, page-1, last),
		Results:  results,
	}
}

// viewer returns the caller's user ID (0 when anonymous).
func viewer(c *gin.Context) uint { return middleware.UserID(c) }
