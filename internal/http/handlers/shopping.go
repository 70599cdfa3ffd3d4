package handlers

import (
	"bytes"
	"mime"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/foodgram-backend/internal/observability"
	"github.com/tbourn/foodgram-backend/internal/shopping"
)

// DownloadShoppingCart godoc
// @ID          downloadShoppingCart
// @Summary     Download shopping list
// @Description Sums the ingredients of every recipe in the caller's cart by (name, unit) and returns them as an attachment.
// @Tags        Recipes
// @Produce     plain
// @Produce     text/csv
// @Produce     application/pdf
// @Security    BearerAuth
// @Param       format  query     string  false  "txt (default), csv or pdf"  Enums(txt, csv, pdf)
// @Success     200     {file}    file
// @Failure     400     {object}  handlers.ErrorResponse  "Unknown format"
// @Failure     401     {object}  handlers.ErrorResponse  "Unauthorized"
// @Header      200     {string}  Content-Disposition  "attachment; filename=shopping_cart.<ext>"
// @Router      /recipes/download_shopping_cart [get]
func (h *Handlers) DownloadShoppingCart(c *gin.Context) {
	format, err := shopping.ParseFormat(c.Query("format"))
	if err != nil {
		serviceError(c, err)
		return
	}
	items, err := h.shopping.List(c.Request.Context(), viewer(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	var buf bytes.Buffer
	if err := shopping.Render(&buf, format, items); err != nil {
		serviceError(c, err)
		return
	}
	observability.ObserveShoppingDownload(string(format))
	c.Header("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": format.Filename()}))
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}
