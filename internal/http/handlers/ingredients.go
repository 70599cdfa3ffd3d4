package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ListIngredients godoc
// @ID          listIngredients
// @Summary     List ingredients
// @Description Whole catalogue ordered by name, optionally filtered by a case-insensitive name prefix. Not paginated.
// @Tags        Ingredients
// @Produce     json
// @Param       name  query     string  false  "Name prefix"
// @Success     200   {array}   handlers.IngredientResponse
// @Failure     500   {object}  handlers.ErrorResponse  "Internal error"
// @Router      /ingredients [get]
func (h *Handlers) ListIngredients(c *gin.Context) {
	items, err := h.ingreds.List(c.Request.Context(), c.Query("name"))
	if err != nil {
		serviceError(c, err)
		return
	}
	out := make([]IngredientResponse, 0, len(items))
	for _, it := range items {
		out = append(out, ingredient(it))
	}
	ok(c, http.StatusOK, out)
}

// GetIngredient godoc
// @ID          getIngredient
// @Summary     Get ingredient
// @Tags        Ingredients
// @Produce     json
// @Param       id   path      int  true  "Ingredient ID"
// @Success     200  {object}  handlers.IngredientResponse
// @Failure     404  {object}  handlers.ErrorResponse  "Ingredient not found"
// @Router      /ingredients/{id} [get]
func (h *Handlers) GetIngredient(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	it, err := h.ingreds.Get(c.Request.Context(), id)
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, ingredient(*it))
}
