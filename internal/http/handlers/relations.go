package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/foodgram-backend/internal/observability"
)

const (
	relationFavorite = "favorite"
	relationCart     = "shopping_cart"
)

// addRelation adds the path recipe to the caller's list and answers 201 with
// the short recipe.
func (h *Handlers) addRelation(c *gin.Context, svc RelationService, relation string) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	r, err := svc.Add(c.Request.Context(), viewer(c), id)
	if err != nil {
		serviceError(c, err)
		return
	}
	observability.ObserveRelationToggle(relation, observability.ActionAdd)
	ok(c, http.StatusCreated, h.recipeShort(*r))
}

func (h *Handlers) removeRelation(c *gin.Context, svc RelationService, relation string) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := svc.Remove(c.Request.Context(), viewer(c), id); err != nil {
		serviceError(c, err)
		return
	}
	observability.ObserveRelationToggle(relation, observability.ActionRemove)
	noContent(c)
}

// AddFavorite godoc
// @ID          addFavorite
// @Summary     Add recipe to favorites
// @Tags        Recipes
// @Produce     json
// @Security    BearerAuth
// @Param       id   path      int  true  "Recipe ID"
// @Success     201  {object}  handlers.RecipeShortResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Already in favorites"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     404  {object}  handlers.ErrorResponse  "Recipe not found"
// @Router      /recipes/{id}/favorite [post]
func (h *Handlers) AddFavorite(c *gin.Context) { h.addRelation(c, h.favs, relationFavorite) }

// RemoveFavorite godoc
// @ID          removeFavorite
// @Summary     Remove recipe from favorites
// @Tags        Recipes
// @Security    BearerAuth
// @Param       id   path      int  true  "Recipe ID"
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Not in favorites"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     404  {object}  handlers.ErrorResponse  "Recipe not found"
// @Router      /recipes/{id}/favorite [delete]
func (h *Handlers) RemoveFavorite(c *gin.Context) { h.removeRelation(c, h.favs, relationFavorite) }

// AddToCart godoc
// @ID          addToCart
// @Summary     Add recipe to shopping cart
// @Tags        Recipes
// @Produce     json
// @Security    BearerAuth
// @Param       id   path      int  true  "Recipe ID"
// @Success     201  {object}  handlers.RecipeShortResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Already in the cart"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     404  {object}  handlers.ErrorResponse  "Recipe not found"
// @Router      /recipes/{id}/shopping_cart [post]
func (h *Handlers) AddToCart(c *gin.Context) { h.addRelation(c, h.cart, relationCart) }

// RemoveFromCart godoc
// @ID          removeFromCart
// @Summary     Remove recipe from shopping cart
// @Tags        Recipes
// @Security    BearerAuth
// @Param       id   path      int  true  "Recipe ID"
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Not in the cart"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     404  {object}  handlers.ErrorResponse  "Recipe not found"
// @Router      /recipes/{id}/shopping_cart [delete]
func (h *Handlers) RemoveFromCart(c *gin.Context) { h.removeRelation(c, h.cart, relationCart) }
