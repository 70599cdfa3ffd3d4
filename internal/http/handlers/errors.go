// Package handlers defines HTTP-layer error codes used across all API endpoints.
//
// This file centralizes symbolic error code constants that are mapped to HTTP
// responses (via the `fail()` helper in this package), and the table that
// translates service sentinel errors into status + code pairs. These codes
// provide clients with a stable, machine-readable error taxonomy that
// supplements human-readable messages.
//
// Conventions:
//   - Codes are lowercase, snake_case.
//   - Generic codes (e.g., bad_request, unauthorized, conflict) mirror common
//     HTTP status semantics.
//   - Domain-specific codes (e.g., already_subscribed, invalid_short_link) are
//     reserved for business rules that cannot be conveyed by status alone.
//
// Example response:
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "already_in_list",
//	  "message": "recipe already added"
//	}
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/foodgram-backend/internal/services"
	"github.com/tbourn/foodgram-backend/internal/shopping"
)

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeValidation       = "validation_failed"
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeForbidden        = "forbidden"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeRateLimited      = "too_many_requests"
	ErrCodeInternal         = "internal_error"
	ErrCodeMethodNotAllowed = "method_not_allowed"

	// Domain-specific:
	ErrCodeEmailTaken        = "email_taken"
	ErrCodeUsernameTaken     = "username_taken"
	ErrCodeWrongPassword     = "wrong_password"
	ErrCodeSelfSubscribe     = "self_subscribe"
	ErrCodeAlreadySubscribed = "already_subscribed"
	ErrCodeNotSubscribed     = "not_subscribed"
	ErrCodeAlreadyInList     = "already_in_list"
	ErrCodeNotInList         = "not_in_list"
	ErrCodeInvalidShortLink  = "invalid_short_link"
	ErrCodeUnknownFormat     = "unknown_format"
)

// errMapping pairs a service error with its HTTP status and code. When field
// is set the error is reported as a validation failure on that field.
type errMapping struct {
	err    error
	status int
	code   string
	field  string
}

var serviceErrors = []errMapping{
	{services.ErrUnknownAccount, http.StatusUnauthorized, ErrCodeUnauthorized, ""},
	{services.ErrUserNotFound, http.StatusNotFound, ErrCodeNotFound, ""},
	{services.ErrRecipeNotFound, http.StatusNotFound, ErrCodeNotFound, ""},
	{services.ErrIngredientNotFound, http.StatusNotFound, ErrCodeNotFound, ""},
	{services.ErrForbidden, http.StatusForbidden, ErrCodeForbidden, ""},

	{services.ErrEmailTaken, http.StatusBadRequest, ErrCodeEmailTaken, "email"},
	{services.ErrUsernameTaken, http.StatusBadRequest, ErrCodeUsernameTaken, "username"},
	{services.ErrReservedUsername, http.StatusBadRequest, ErrCodeValidation, "username"},
	{services.ErrInvalidPassword, http.StatusBadRequest, ErrCodeValidation, "password"},
	{services.ErrWrongPassword, http.StatusBadRequest, ErrCodeWrongPassword, "current_password"},

	{services.ErrSelfSubscribe, http.StatusBadRequest, ErrCodeSelfSubscribe, ""},
	{services.ErrAlreadySubscribed, http.StatusBadRequest, ErrCodeAlreadySubscribed, ""},
	{services.ErrNotSubscribed, http.StatusBadRequest, ErrCodeNotSubscribed, ""},

	{services.ErrInvalidRecipe, http.StatusBadRequest, ErrCodeValidation, ""},
	{services.ErrNoIngredients, http.StatusBadRequest, ErrCodeValidation, "ingredients"},
	{services.ErrDuplicateIngredient, http.StatusBadRequest, ErrCodeValidation, "ingredients"},
	{services.ErrInvalidAmount, http.StatusBadRequest, ErrCodeValidation, "ingredients"},
	{services.ErrUnknownIngredient, http.StatusBadRequest, ErrCodeValidation, "ingredients"},
	{services.ErrImageRequired, http.StatusBadRequest, ErrCodeValidation, "image"},
	{services.ErrInvalidImage, http.StatusBadRequest, ErrCodeValidation, "image"},
	{services.ErrIdempotencyConflict, http.StatusConflict, ErrCodeConflict, ""},

	{services.ErrAlreadyInList, http.StatusBadRequest, ErrCodeAlreadyInList, ""},
	{services.ErrNotInList, http.StatusBadRequest, ErrCodeNotInList, ""},

	{services.ErrInvalidShortLink, http.StatusBadRequest, ErrCodeInvalidShortLink, ""},
	{shopping.ErrUnknownFormat, http.StatusBadRequest, ErrCodeUnknownFormat, "format"},
}

// serviceError writes the response for err. Unknown errors become a 500.
func serviceError(c *gin.Context, err error) {
	for _, m := range serviceErrors {
		if !errors.Is(err, m.err) {
			continue
		}
		if m.field != "" {
			failFields(c, m.status, m.code, m.err.Error(), map[string]string{m.field: m.err.Error()})
			return
		}
		fail(c, m.status, m.code, m.err.Error())
		return
	}
	_ = c.Error(err)
	fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal server error")
}
