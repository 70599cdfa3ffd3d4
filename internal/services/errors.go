// Package services defines the business logic for users, subscriptions,
// ingredients, recipes, the per-user recipe lists, short links, and the
// shopping list. This file centralizes common service-level error values so
// that they can be consistently returned by service methods and checked by
// callers.
//
// These errors are intended for internal use by the service layer and
// translation into user-facing messages or HTTP status codes should be
// performed at the handler layer.
package services

import "errors"

// User and subscription errors.
var (
	// ErrUserNotFound indicates that the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrUnknownAccount is returned when the authenticated user ID names no
	// account, e.g. a valid token for a deleted user.
	ErrUnknownAccount = errors.New("account does not exist")

	// ErrEmailTaken is returned when registering with an email that already
	// belongs to an account.
	ErrEmailTaken = errors.New("email already registered")

	// ErrUsernameTaken is returned when registering with a username that is
	// already in use.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrReservedUsername is returned for usernames that collide with routes.
	ErrReservedUsername = errors.New("username is reserved")

	// ErrInvalidPassword is returned when a new password is empty or longer
	// than bcrypt accepts.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrWrongPassword is returned when the current password does not match.
	ErrWrongPassword = errors.New("current password is incorrect")

	// ErrSelfSubscribe is returned when a user tries to follow themselves.
	ErrSelfSubscribe = errors.New("cannot subscribe to yourself")

	// ErrAlreadySubscribed is returned when the subscription already exists.
	ErrAlreadySubscribed = errors.New("already subscribed")

	// ErrNotSubscribed is returned when removing a subscription that does not
	// exist.
	ErrNotSubscribed = errors.New("not subscribed")
)

// Ingredient and recipe errors.
var (
	// ErrIngredientNotFound indicates that the requested ingredient does not
	// exist.
	ErrIngredientNotFound = errors.New("ingredient not found")

	// ErrRecipeNotFound indicates that the requested recipe does not exist.
	ErrRecipeNotFound = errors.New("recipe not found")

	// ErrForbidden is returned when a user modifies a recipe they do not own.
	ErrForbidden = errors.New("only the author can modify this recipe")

	// ErrInvalidRecipe is returned for a blank or over-long name, or a cooking
	// time below one minute.
	ErrInvalidRecipe = errors.New("invalid recipe")

	// ErrNoIngredients is returned when a recipe lists no ingredients.
	ErrNoIngredients = errors.New("recipe needs at least one ingredient")

	// ErrDuplicateIngredient is returned when an ingredient appears twice.
	ErrDuplicateIngredient = errors.New("ingredient listed more than once")

	// ErrInvalidAmount is returned when an ingredient amount is below one.
	ErrInvalidAmount = errors.New("ingredient amount must be at least 1")

	// ErrUnknownIngredient is returned when a recipe references an ingredient
	// that is not in the catalogue.
	ErrUnknownIngredient = errors.New("unknown ingredient")

	// ErrImageRequired is returned when a recipe is created without an image.
	ErrImageRequired = errors.New("image is required")

	// ErrInvalidImage is returned when the image payload is not a base64
	// encoded image.
	ErrInvalidImage = errors.New("invalid image")

	// ErrIdempotencyConflict is returned when the same Idempotency-Key was
	// recorded by a concurrent request.
	ErrIdempotencyConflict = errors.New("idempotency key already used")
)

// Favorites and shopping cart errors.
var (
	// ErrAlreadyInList is returned when adding a recipe that is already in
	// the favorites or the shopping cart.
	ErrAlreadyInList = errors.New("recipe already added")

	// ErrNotInList is returned when removing a recipe that is not in the list.
	ErrNotInList = errors.New("recipe not in list")
)

// Short link errors.
var (
	// ErrInvalidShortLink is returned when a short code cannot be decoded.
	ErrInvalidShortLink = errors.New("invalid short link")
)
