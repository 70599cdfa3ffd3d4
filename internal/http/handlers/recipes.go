// Recipe HTTP handlers.
//
// This file exposes REST endpoints for recipes:
//   - GET    /recipes                (list, filtered, paginated, weak ETag)
//   - POST   /recipes                (create, Idempotency-Key aware)
//   - GET    /recipes/{id}           (detail)
//   - PATCH  /recipes/{id}           (author-only update)
//   - DELETE /recipes/{id}           (author-only delete)
//   - GET    /recipes/{id}/get-link  (short link)
//
// Conditional GET:
//   - The list ETag is weak and derived from a fingerprint of everything the
//     page depends on for this viewer, plus page and limit.
//   - If-None-Match matching the current ETag yields 304 with no body.
package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/foodgram-backend/internal/http/middleware"
	"github.com/tbourn/foodgram-backend/internal/observability"
	"github.com/tbourn/foodgram-backend/internal/services"
)

// flag reports whether a boolean query filter is switched on.
func flag(c *gin.Context, name string) bool {
	switch strings.ToLower(c.Query(name)) {
	case "1", "true":
		return true
	}
	return false
}

// recipeQuery reads the list filters. A malformed author answers 400.
func recipeQuery(c *gin.Context) (services.RecipeQuery, bool) {
	q := services.RecipeQuery{
		Favorited: flag(c, "is_favorited"),
		InCart:    flag(c, "is_in_shopping_cart"),
	}
	if raw := c.Query("author"); raw != "" {
		n, err := strconv.ParseUint(raw, 10, 64)
		if err != nil || n == 0 {
			failFields(c, http.StatusBadRequest, ErrCodeValidation, "invalid query",
				map[string]string{"author": "expected a user id"})
			return q, false
		}
		id := uint(n)
		q.AuthorID = &id
	}
	return q, true
}

// etagMatches reports whether an If-None-Match header lists etag. Weak
// comparison: the W/ prefix is ignored on both sides.
func etagMatches(header, etag string) bool {
	if header == "" {
		return false
	}
	if strings.TrimSpace(header) == "*" {
		return true
	}
	want := strings.TrimPrefix(etag, "W/")
	for _, part := range strings.Split(header, ",") {
		if strings.TrimPrefix(strings.TrimSpace(part), "W/") == want {
			return true
		}
	}
	return false
}

// ListRecipes godoc
// @ID          listRecipes
// @Summary     List recipes (paginated)
// @Description Newest first. Filters combine with AND; is_favorited and is_in_shopping_cart are ignored for anonymous callers. Supports weak ETag revalidation.
// @Tags        Recipes
// @Produce     json
// @Param       page                 query     int     false  "Page number"     minimum(1) default(1)
// @Param       limit                query     int     false  "Items per page"  minimum(1)
// @Param       author               query     int     false  "Author ID"
// @Param       is_favorited         query     int     false  "Only favorites (1/0)"
// @Param       is_in_shopping_cart  query     int     false  "Only cart recipes (1/0)"
// @Param       If-None-Match        header    string  false  "ETag from a previous response"
// @Success     200                  {object}  handlers.Page[handlers.RecipeResponse]
// @Success     304                  {string}  string  "Not Modified"
// @Failure     400                  {object}  handlers.ErrorResponse  "Invalid filter"
// @Header      200                  {string}  ETag  "Weak entity tag of the page"
// @Router      /recipes [get]
func (h *Handlers) ListRecipes(c *gin.Context) {
	q, valid := recipeQuery(c)
	if !valid {
		return
	}
	page, limit := h.clampPagination(c)
	ctx := c.Request.Context()
	uid := viewer(c)

	ver, err := h.recipes.ListVersion(ctx, uid, q)
	if err != nil {
		serviceError(c, err)
		return
	}
	etag := fmt.Sprintf(`W/"recipes:%s:%d:%d"`, ver, page, limit)
	c.Header("ETag", etag)
	c.Header("Vary", "Authorization")
	if etagMatches(c.GetHeader("If-None-Match"), etag) {
		c.Status(http.StatusNotModified)
		return
	}

	cards, total, err := h.recipes.ListPage(ctx, uid, q, page, limit)
	if err != nil {
		serviceError(c, err)
		return
	}
	out := make([]RecipeResponse, 0, len(cards))
	for _, rc := range cards {
		out = append(out, h.recipe(rc))
	}
	ok(c, http.StatusOK, newPage(c, out, total, page, limit))
}

// CreateRecipe godoc
// @ID          createRecipe
// @Summary     Create recipe
// @Description Creates a recipe authored by the caller. Retrying with the same Idempotency-Key replays the original response instead of creating a duplicate.
// @Tags        Recipes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       Idempotency-Key  header    string                  false  "Idempotency key (8-128 chars)"
// @Param       body             body      handlers.RecipeRequest  true   "Recipe"
// @Success     201              {object}  handlers.RecipeResponse
// @Failure     400              {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     401              {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     409              {object}  handlers.ErrorResponse  "Concurrent request with the same key"
// @Header      201              {string}  Idempotency-Replayed  "true when the response is a replay"
// @Router      /recipes [post]
func (h *Handlers) CreateRecipe(c *gin.Context) {
	ctx := c.Request.Context()
	uid := viewer(c)
	idem := services.IdempotencyKey{Scope: c.FullPath()}

	if key, found := middleware.GetIdempotencyKey(c); found {
		idem.Key = key
		rc, status, err := h.recipes.Replay(ctx, uid, idem)
		if err != nil {
			serviceError(c, err)
			return
		}
		if status != 0 {
			c.Header(middleware.HeaderIdempotencyReplayed, "true")
			observability.ObserveRecipeCreated(true)
			ok(c, status, h.recipe(*rc))
			return
		}
	}

	var req RecipeRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.Image == "" {
		failFields(c, http.StatusBadRequest, ErrCodeValidation, "invalid request body",
			map[string]string{"image": "this field is required"})
		return
	}
	rc, err := h.recipes.Create(ctx, uid, req.input(), idem)
	if err != nil {
		serviceError(c, err)
		return
	}
	observability.ObserveRecipeCreated(false)
	ok(c, http.StatusCreated, h.recipe(*rc))
}

// GetRecipe godoc
// @ID          getRecipe
// @Summary     Get recipe
// @Tags        Recipes
// @Produce     json
// @Param       id   path      int  true  "Recipe ID"
// @Success     200  {object}  handlers.RecipeResponse
// @Failure     404  {object}  handlers.ErrorResponse  "Recipe not found"
// @Router      /recipes/{id} [get]
func (h *Handlers) GetRecipe(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	rc, err := h.recipes.Get(c.Request.Context(), viewer(c), id)
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, h.recipe(*rc))
}

// UpdateRecipe godoc
// @ID          updateRecipe
// @Summary     Update recipe
// @Description Replaces the recipe fields and its whole ingredient list. An omitted image keeps the current one. Author only.
// @Tags        Recipes
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id    path      int                     true  "Recipe ID"
// @Param       body  body      handlers.RecipeRequest  true  "Recipe"
// @Success     200   {object}  handlers.RecipeResponse
// @Failure     400   {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     401   {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     403   {object}  handlers.ErrorResponse  "Not the author"
// @Failure     404   {object}  handlers.ErrorResponse  "Recipe not found"
// @Router      /recipes/{id} [patch]
func (h *Handlers) UpdateRecipe(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	var req RecipeRequest
	if !bindJSON(c, &req) {
		return
	}
	rc, err := h.recipes.Update(c.Request.Context(), viewer(c), id, req.input())
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, h.recipe(*rc))
}

// DeleteRecipe godoc
// @ID          deleteRecipe
// @Summary     Delete recipe
// @Tags        Recipes
// @Security    BearerAuth
// @Param       id   path      int  true  "Recipe ID"
// @Success     204  {string}  string  "No Content"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     403  {object}  handlers.ErrorResponse  "Not the author"
// @Failure     404  {object}  handlers.ErrorResponse  "Recipe not found"
// @Router      /recipes/{id} [delete]
func (h *Handlers) DeleteRecipe(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := h.recipes.Delete(c.Request.Context(), viewer(c), id); err != nil {
		serviceError(c, err)
		return
	}
	noContent(c)
}

// GetLink godoc
// @ID          getRecipeLink
// @Summary     Short link to a recipe
// @Tags        Recipes
// @Produce     json
// @Param       id   path      int  true  "Recipe ID"
// @Success     200  {object}  handlers.ShortLinkResponse
// @Failure     404  {object}  handlers.ErrorResponse  "Recipe not found"
// @Router      /recipes/{id}/get-link [get]
func (h *Handlers) GetLink(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	link, err := h.links.Link(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, ShortLinkResponse{ShortLink: link})
}
