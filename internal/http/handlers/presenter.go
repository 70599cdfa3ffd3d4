package handlers

import (
	"github.com/tbourn/foodgram-backend/internal/domain"
	"github.com/tbourn/foodgram-backend/internal/services"
)

//
// Requests
//

// RegisterRequest is the sign-up payload.
type RegisterRequest struct {
	Email     string `json:"email"      binding:"required,email,max=254" example:"vpupkin@yandex.ru"`
	Username  string `json:"username"   binding:"required,max=150,username" example:"vasya.pupkin"`
	FirstName string `json:"first_name" binding:"required,max=150" example:"Вася"`
	LastName  string `json:"last_name"  binding:"required,max=150" example:"Иванов"`
	Password  string `json:"password"   binding:"required,max=128" example:"Qwerty123"`
}

// AvatarRequest carries a base64 data URI image.
type AvatarRequest struct {
	Avatar string `json:"avatar" binding:"required,dataimage" example:"data:image/png;base64,iVBORw0KGgo..."`
}

// SetPasswordRequest changes the caller's password.
type SetPasswordRequest struct {
	NewPassword     string `json:"new_password"     binding:"required,max=128"`
	CurrentPassword string `json:"current_password" binding:"required"`
}

// RecipeIngredientRequest references a catalogue ingredient and its amount.
type RecipeIngredientRequest struct {
	ID     uint  `json:"id"     binding:"required,min=1" example:"1123"`
	Amount int64 `json:"amount" binding:"required,min=1" example:"10"`
}

// RecipeRequest is the create/update payload. Image is required on create and
// optional on update.
type RecipeRequest struct {
	Ingredients []RecipeIngredientRequest `json:"ingredients"  binding:"required,min=1,dive"`
	Image       string                    `json:"image"        binding:"omitempty,dataimage"`
	Name        string                    `json:"name"         binding:"required,max=256" example:"Нечто съедобное"`
	Text        string                    `json:"text"         binding:"required" example:"Приготовить как нибудь"`
	CookingTime int                       `json:"cooking_time" binding:"required,min=1" example:"30"`
}

func (r RecipeRequest) input() services.RecipeInput {
	items := make([]services.IngredientAmount, 0, len(r.Ingredients))
	for _, it := range r.Ingredients {
		items = append(items, services.IngredientAmount{ID: it.ID, Amount: it.Amount})
	}
	return services.RecipeInput{
		Name:        r.Name,
		Text:        r.Text,
		CookingTime: r.CookingTime,
		Image:       r.Image,
		Ingredients: items,
	}
}

//
// Responses
//

// Page is a paginated list. Next and Previous are relative links, null at
// either end.
type Page[T any] struct {
	Count    int64   `json:"count"    example:"123"`
	Next     *string `json:"next"     example:"/api/recipes?page=4"`
	Previous *string `json:"previous" example:"/api/recipes?page=2"`
	Results  []T     `json:"results"`
}

// CreatedUserResponse is returned by sign-up.
type CreatedUserResponse struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

// UserResponse is a public profile as seen by the caller.
type UserResponse struct {
	ID           uint    `json:"id"`
	Email        string  `json:"email"`
	Username     string  `json:"username"`
	FirstName    string  `json:"first_name"`
	LastName     string  `json:"last_name"`
	IsSubscribed bool    `json:"is_subscribed"`
	Avatar       *string `json:"avatar"`
}

// AuthorResponse is a followed author with a preview of their recipes.
type AuthorResponse struct {
	UserResponse
	Recipes      []RecipeShortResponse `json:"recipes"`
	RecipesCount int64                 `json:"recipes_count"`
}

// AvatarResponse carries the new avatar URL.
type AvatarResponse struct {
	Avatar string `json:"avatar"`
}

// IngredientResponse is a catalogue entry.
type IngredientResponse struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// RecipeIngredientResponse is an ingredient line of a recipe.
type RecipeIngredientResponse struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int64  `json:"amount"`
}

// RecipeResponse is a full recipe card.
type RecipeResponse struct {
	ID               uint                       `json:"id"`
	Author           UserResponse               `json:"author"`
	Ingredients      []RecipeIngredientResponse `json:"ingredients"`
	IsFavorited      bool                       `json:"is_favorited"`
	IsInShoppingCart bool                       `json:"is_in_shopping_cart"`
	Name             string                     `json:"name"`
	Image            string                     `json:"image"`
	Text             string                     `json:"text"`
	CookingTime      int                        `json:"cooking_time"`
}

// RecipeShortResponse is the compact recipe used in lists and relations.
type RecipeShortResponse struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// ShortLinkResponse wraps a recipe short link.
type ShortLinkResponse struct {
	ShortLink string `json:"short-link" example:"http://localhost:8080/links/3d0/"`
}

// HealthResponse is the liveness payload.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

//
// Presenters
//

func (h *Handlers) user(u domain.User, subscribed bool) UserResponse {
	resp := UserResponse{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: subscribed,
	}
	if u.Avatar != "" {
		url := h.mediaURL(u.Avatar)
		resp.Avatar = &url
	}
	return resp
}

func (h *Handlers) userCard(uc services.UserCard) UserResponse {
	return h.user(uc.User, uc.IsSubscribed)
}

func (h *Handlers) author(ac services.AuthorCard) AuthorResponse {
	recipes := make([]RecipeShortResponse, 0, len(ac.Recipes))
	for _, r := range ac.Recipes {
		recipes = append(recipes, h.recipeShort(r))
	}
	return AuthorResponse{
		UserResponse: h.userCard(ac.UserCard),
		Recipes:      recipes,
		RecipesCount: ac.RecipesCount,
	}
}

func ingredient(i domain.Ingredient) IngredientResponse {
	return IngredientResponse{ID: i.ID, Name: i.Name, MeasurementUnit: i.MeasurementUnit}
}

func (h *Handlers) recipe(rc services.RecipeCard) RecipeResponse {
	r := rc.Recipe
	items := make([]RecipeIngredientResponse, 0, len(r.Ingredients))
	for _, ri := range r.Ingredients {
		items = append(items, RecipeIngredientResponse{
			ID:              ri.IngredientID,
			Name:            ri.Ingredient.Name,
			MeasurementUnit: ri.Ingredient.MeasurementUnit,
			Amount:          ri.Amount,
		})
	}
	return RecipeResponse{
		ID:               r.ID,
		Author:           h.user(r.Author, rc.AuthorSubscribed),
		Ingredients:      items,
		IsFavorited:      rc.IsFavorited,
		IsInShoppingCart: rc.IsInShoppingCart,
		Name:             r.Name,
		Image:            h.mediaURL(r.Image),
		Text:             r.Text,
		CookingTime:      r.CookingTime,
	}
}

func (h *Handlers) recipeShort(r domain.Recipe) RecipeShortResponse {
	return RecipeShortResponse{
		ID:          r.ID,
		Name:        r.Name,
		Image:       h.mediaURL(r.Image),
		CookingTime: r.CookingTime,
	}
}
