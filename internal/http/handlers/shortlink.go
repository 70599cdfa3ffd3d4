package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/foodgram-backend/internal/observability"
	"github.com/tbourn/foodgram-backend/internal/services"
)

// ResolveShortLink godoc
// @ID          resolveShortLink
// @Summary     Follow a short link
// @Description Redirects to the recipe page named by a base62 code.
// @Tags        Links
// @Param       code  path      string  true  "Short code"
// @Success     302   {string}  string  "Found"
// @Failure     400   {object}  handlers.ErrorResponse  "Malformed code"
// @Failure     404   {object}  handlers.ErrorResponse  "Recipe not found"
// @Header      302   {string}  Location  "Recipe URL"
// @Router      /links/{code}/ [get]
func (h *Handlers) ResolveShortLink(c *gin.Context) {
	id, err := h.links.Resolve(c.Request.Context(), c.Param("code"))
	switch {
	case err == nil:
		observability.ObserveShortLink(observability.ShortLinkResolved)
		c.Redirect(http.StatusFound, h.links.RecipeURL(id))
		return
	case errors.Is(err, services.ErrInvalidShortLink):
		observability.ObserveShortLink(observability.ShortLinkInvalid)
	case errors.Is(err, services.ErrRecipeNotFound):
		observability.ObserveShortLink(observability.ShortLinkMissing)
	}
	serviceError(c, err)
}

// Health godoc
// @ID          health
// @Summary     Liveness check
// @Tags        Health
// @Produce     json
// @Success     200  {object}  handlers.HealthResponse
// @Router      /health [get]
func (h *Handlers) Health(c *gin.Context) {
	ok(c, http.StatusOK, HealthResponse{Status: "ok"})
}
