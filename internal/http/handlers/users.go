// User HTTP handlers.
//
// This file exposes REST endpoints for user accounts and subscriptions:
//   - POST   /users                     (sign up)
//   - GET    /users                     (list, paginated)
//   - GET    /users/me                  (current user)
//   - GET    /users/{id}                (profile)
//   - PUT    /users/me/avatar           (upload avatar)
//   - DELETE /users/me/avatar           (remove avatar)
//   - POST   /users/set_password        (change password)
//   - GET    /users/subscriptions       (followed authors with recipes)
//   - POST   /users/{id}/subscribe      (follow)
//   - DELETE /users/{id}/subscribe      (unfollow)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/foodgram-backend/internal/observability"
	"github.com/tbourn/foodgram-backend/internal/services"
	"github.com/tbourn/foodgram-backend/internal/utils"
)

const relationSubscription = "subscription"

// Register godoc
// @ID          registerUser
// @Summary     Sign up
// @Description Creates a user account. Email and username must be unique.
// @Tags        Users
// @Accept      json
// @Produce     json
// @Param       body  body      handlers.RegisterRequest  true  "Account data"
// @Success     201   {object}  handlers.CreatedUserResponse
// @Failure     400   {object}  handlers.ErrorResponse  "Validation failed or email/username taken"
// @Failure     500   {object}  handlers.ErrorResponse  "Internal error"
// @Router      /users [post]
func (h *Handlers) Register(c *gin.Context) {
	var req RegisterRequest
	if !bindJSON(c, &req) {
		return
	}
	u, err := h.users.Register(c.Request.Context(), services.NewUser{
		Email:     req.Email,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusCreated, CreatedUserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		FirstName: u.FirstName,
		LastName:  u.LastName,
	})
}

// ListUsers godoc
// @ID          listUsers
// @Summary     List users (paginated)
// @Tags        Users
// @Produce     json
// @Param       page   query     int  false  "Page number"     minimum(1) default(1)
// @Param       limit  query     int  false  "Items per page"  minimum(1)
// @Success     200    {object}  handlers.Page[handlers.UserResponse]
// @Failure     500    {object}  handlers.ErrorResponse  "Internal error"
// @Router      /users [get]
func (h *Handlers) ListUsers(c *gin.Context) {
	page, limit := h.clampPagination(c)
	cards, total, err := h.users.ListPage(c.Request.Context(), viewer(c), page, limit)
	if err != nil {
		serviceError(c, err)
		return
	}
	out := make([]UserResponse, 0, len(cards))
	for _, uc := range cards {
		out = append(out, h.userCard(uc))
	}
	ok(c, http.StatusOK, newPage(c, out, total, page, limit))
}

// Me godoc
// @ID          getMe
// @Summary     Current user
// @Tags        Users
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object}  handlers.UserResponse
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Router      /users/me [get]
func (h *Handlers) Me(c *gin.Context) {
	uid := viewer(c)
	uc, err := h.users.Get(c.Request.Context(), uid, uid)
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, h.userCard(*uc))
}

// GetUser godoc
// @ID          getUser
// @Summary     User profile
// @Tags        Users
// @Produce     json
// @Param       id   path      int  true  "User ID"
// @Success     200  {object}  handlers.UserResponse
// @Failure     404  {object}  handlers.ErrorResponse  "User not found"
// @Router      /users/{id} [get]
func (h *Handlers) GetUser(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	uc, err := h.users.Get(c.Request.Context(), viewer(c), id)
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, h.userCard(*uc))
}

// SetAvatar godoc
// @ID          setAvatar
// @Summary     Upload avatar
// @Description Replaces the caller's avatar with a base64 data URI image.
// @Tags        Users
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       body  body      handlers.AvatarRequest  true  "Avatar image"
// @Success     200   {object}  handlers.AvatarResponse
// @Failure     400   {object}  handlers.ErrorResponse  "Invalid image"
// @Failure     401   {object}  handlers.ErrorResponse  "Unauthorized"
// @Router      /users/me/avatar [put]
func (h *Handlers) SetAvatar(c *gin.Context) {
	var req AvatarRequest
	if !bindJSON(c, &req) {
		return
	}
	rel, err := h.users.SetAvatar(c.Request.Context(), viewer(c), req.Avatar)
	if err != nil {
		serviceError(c, err)
		return
	}
	ok(c, http.StatusOK, AvatarResponse{Avatar: h.mediaURL(rel)})
}

// DeleteAvatar godoc
// @ID          deleteAvatar
// @Summary     Remove avatar
// @Tags        Users
// @Security    BearerAuth
// @Success     204  {string}  string  "No Content"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Router      /users/me/avatar [delete]
func (h *Handlers) DeleteAvatar(c *gin.Context) {
	if err := h.users.DeleteAvatar(c.Request.Context(), viewer(c)); err != nil {
		serviceError(c, err)
		return
	}
	noContent(c)
}

// SetPassword godoc
// @ID          setPassword
// @Summary     Change password
// @Tags        Users
// @Accept      json
// @Security    BearerAuth
// @Param       body  body      handlers.SetPasswordRequest  true  "Passwords"
// @Success     204   {string}  string  "No Content"
// @Failure     400   {object}  handlers.ErrorResponse  "Wrong current password or invalid new one"
// @Failure     401   {object}  handlers.ErrorResponse  "Unauthorized"
// @Router      /users/set_password [post]
func (h *Handlers) SetPassword(c *gin.Context) {
	var req SetPasswordRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.users.SetPassword(c.Request.Context(), viewer(c), req.CurrentPassword, req.NewPassword); err != nil {
		serviceError(c, err)
		return
	}
	noContent(c)
}

// recipesLimit reads ?recipes_limit; 0 or absent means no limit.
func recipesLimit(c *gin.Context) int {
	n := utils.AtoiDefault(c.Query("recipes_limit"), 0)
	if n < 0 {
		return 0
	}
	return n
}

// ListSubscriptions godoc
// @ID          listSubscriptions
// @Summary     Followed authors (paginated)
// @Description Authors the caller follows, each with their newest recipes.
// @Tags        Users
// @Produce     json
// @Security    BearerAuth
// @Param       page           query     int  false  "Page number"                  minimum(1) default(1)
// @Param       limit          query     int  false  "Items per page"               minimum(1)
// @Param       recipes_limit  query     int  false  "Recipes per author (0 = all)"  minimum(0)
// @Success     200            {object}  handlers.Page[handlers.AuthorResponse]
// @Failure     401            {object}  handlers.ErrorResponse  "Unauthorized"
// @Router      /users/subscriptions [get]
func (h *Handlers) ListSubscriptions(c *gin.Context) {
	page, limit := h.clampPagination(c)
	cards, total, err := h.subs.ListPage(c.Request.Context(), viewer(c), page, limit, recipesLimit(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	out := make([]AuthorResponse, 0, len(cards))
	for _, ac := range cards {
		out = append(out, h.author(ac))
	}
	ok(c, http.StatusOK, newPage(c, out, total, page, limit))
}

// Subscribe godoc
// @ID          subscribe
// @Summary     Follow an author
// @Tags        Users
// @Produce     json
// @Security    BearerAuth
// @Param       id             path      int  true   "Author ID"
// @Param       recipes_limit  query     int  false  "Recipes in the response (0 = all)"
// @Success     201            {object}  handlers.AuthorResponse
// @Failure     400            {object}  handlers.ErrorResponse  "Self or duplicate subscription"
// @Failure     401            {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     404            {object}  handlers.ErrorResponse  "Author not found"
// @Router      /users/{id}/subscribe [post]
func (h *Handlers) Subscribe(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	ac, err := h.subs.Subscribe(c.Request.Context(), viewer(c), id, recipesLimit(c))
	if err != nil {
		serviceError(c, err)
		return
	}
	observability.ObserveRelationToggle(relationSubscription, observability.ActionAdd)
	ok(c, http.StatusCreated, h.author(*ac))
}

// Unsubscribe godoc
// @ID          unsubscribe
// @Summary     Unfollow an author
// @Tags        Users
// @Security    BearerAuth
// @Param       id   path      int  true  "Author ID"
// @Success     204  {string}  string  "No Content"
// @Failure     400  {object}  handlers.ErrorResponse  "Not subscribed"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     404  {object}  handlers.ErrorResponse  "Author not found"
// @Router      /users/{id}/subscribe [delete]
func (h *Handlers) Unsubscribe(c *gin.Context) {
	id, valid := pathID(c, "id")
	if !valid {
		return
	}
	if err := h.subs.Unsubscribe(c.Request.Context(), viewer(c), id); err != nil {
		serviceError(c, err)
		return
	}
	observability.ObserveRelationToggle(relationSubscription, observability.ActionRemove)
	noContent(c)
}
