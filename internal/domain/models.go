// Package domain defines the persistence models for users, subscriptions,
// ingredients, recipes, and the per-user recipe lists (favorites and the
// shopping cart). These types are mapped with GORM and form the core data
// layer of the Foodgram backend.
package domain

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Column limits shared by validation and the schema.
const (
	MaxIngredientNameLen = 128
	MaxMeasurementLen    = 64
	MaxRecipeNameLen     = 256
	MaxUserNameLen       = 150
	MaxEmailLen          = 254
	MinCookingTime       = 1
	MinIngredientAmount  = 1
)

// User is a registered account. Email is the login identifier; Username is
// the public handle.
//
// Fields:
//   - ID: auto-increment primary key.
//   - Email: unique, stored lower-cased.
//   - Username: unique public handle.
//   - FirstName / LastName: display names.
//   - PasswordHash: bcrypt hash, never serialized.
//   - Avatar: media path relative to the media root, empty when unset.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type User struct {
	ID           uint      `json:"id"         gorm:"primaryKey"`
	Email        string    `json:"email"      gorm:"type:varchar(254);not null;uniqueIndex:ux_users_email"`
	Username     string    `json:"username"   gorm:"type:varchar(150);not null;uniqueIndex:ux_users_username"`
	FirstName    string    `json:"first_name" gorm:"type:varchar(150);not null"`
	LastName     string    `json:"last_name"  gorm:"type:varchar(150);not null"`
	PasswordHash string    `json:"-"          gorm:"type:varchar(255);not null"`
	Avatar       string    `json:"avatar"     gorm:"type:varchar(255);not null;default:''"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// Follow records that UserID is subscribed to AuthorID. A user cannot follow
// themselves and a pair exists at most once.
type Follow struct {
	ID        uint      `json:"id"        gorm:"primaryKey"`
	UserID    uint      `json:"user_id"   gorm:"not null;uniqueIndex:ux_follow_user_author,priority:1"`
	AuthorID  uint      `json:"author_id" gorm:"not null;index;uniqueIndex:ux_follow_user_author,priority:2;check:chk_follow_not_self,author_id <> user_id"`
	CreatedAt time.Time `json:"created_at"`

	User   User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Author User `json:"-" gorm:"foreignKey:AuthorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Follow.
func (Follow) TableName() string { return "follows" }

// Ingredient is a catalogue entry. The (name, unit) pair is unique.
// SearchName is the lower-cased name; SQLite's LIKE folds ASCII only.
type Ingredient struct {
	ID              uint   `json:"id"               gorm:"primaryKey"`
	Name            string `json:"name"             gorm:"type:varchar(128);not null;uniqueIndex:ux_ingredient_name_unit,priority:1"`
	MeasurementUnit string `json:"measurement_unit" gorm:"type:varchar(64);not null;uniqueIndex:ux_ingredient_name_unit,priority:2"`
	SearchName      string `json:"-"                gorm:"type:varchar(128);not null;index:idx_ingredients_search"`
}

// TableName returns the database table name for Ingredient.
func (Ingredient) TableName() string { return "ingredients" }

// BeforeSave keeps SearchName in sync with Name.
func (i *Ingredient) BeforeSave(*gorm.DB) error {
	i.SearchName = strings.ToLower(i.Name)
	return nil
}

// Recipe is a published recipe. Listings are ordered newest first by
// CreatedAt, which doubles as the publication date.
//
// Fields:
//   - ID: auto-increment primary key; also the source of short-link codes.
//   - AuthorID: owning user (cascade on delete).
//   - Name: title, at most 256 characters.
//   - Image: media path relative to the media root.
//   - Text: free-form description.
//   - CookingTime: minutes, at least 1.
//   - Ingredients: amounts per ingredient (cascade on delete).
type Recipe struct {
	ID          uint      `json:"id"           gorm:"primaryKey"`
	AuthorID    uint      `json:"author_id"    gorm:"not null;index"`
	Name        string    `json:"name"         gorm:"type:varchar(256);not null"`
	Image       string    `json:"image"        gorm:"type:varchar(255);not null"`
	Text        string    `json:"text"         gorm:"type:text;not null"`
	CookingTime int       `json:"cooking_time" gorm:"not null;check:chk_recipe_cooking_time,cooking_time >= 1"`
	CreatedAt   time.Time `json:"created_at"   gorm:"index:idx_recipes_created"`
	UpdatedAt   time.Time `json:"updated_at"`

	Author      User               `json:"author"      gorm:"foreignKey:AuthorID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Ingredients []RecipeIngredient `json:"ingredients" gorm:"foreignKey:RecipeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Recipe.
func (Recipe) TableName() string { return "recipes" }

// RecipeIngredient is the amount of one ingredient used by one recipe.
type RecipeIngredient struct {
	ID           uint  `json:"-"             gorm:"primaryKey"`
	RecipeID     uint  `json:"-"             gorm:"not null;uniqueIndex:ux_recipe_ingredient,priority:1"`
	IngredientID uint  `json:"ingredient_id" gorm:"not null;index;uniqueIndex:ux_recipe_ingredient,priority:2"`
	Amount       int64 `json:"amount"        gorm:"not null;check:chk_recipe_ingredient_amount,amount >= 1"`

	Ingredient Ingredient `json:"ingredient" gorm:"foreignKey:IngredientID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for RecipeIngredient.
func (RecipeIngredient) TableName() string { return "recipe_ingredients" }

// Favorite marks a recipe as a favorite of a user.
type Favorite struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;uniqueIndex:ux_favorite_user_recipe,priority:1"`
	RecipeID  uint      `gorm:"not null;index;uniqueIndex:ux_favorite_user_recipe,priority:2"`
	CreatedAt time.Time

	User   User   `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Recipe Recipe `gorm:"foreignKey:RecipeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for Favorite.
func (Favorite) TableName() string { return "favorites" }

// Bind sets the owning user and recipe.
func (f *Favorite) Bind(userID, recipeID uint) { f.UserID, f.RecipeID = userID, recipeID }

// ShoppingCart puts a recipe into a user's shopping cart. Ingredients of all
// recipes in the cart are aggregated into the downloadable shopping list.
type ShoppingCart struct {
	ID        uint      `gorm:"primaryKey"`
	UserID    uint      `gorm:"not null;uniqueIndex:ux_cart_user_recipe,priority:1"`
	RecipeID  uint      `gorm:"not null;index;uniqueIndex:ux_cart_user_recipe,priority:2"`
	CreatedAt time.Time

	User   User   `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Recipe Recipe `gorm:"foreignKey:RecipeID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for ShoppingCart.
func (ShoppingCart) TableName() string { return "shopping_carts" }

// Bind sets the owning user and recipe.
func (s *ShoppingCart) Bind(userID, recipeID uint) { s.UserID, s.RecipeID = userID, recipeID }

// Models lists every persisted type in migration order.
func Models() []any {
	return []any{
		&User{}, &Follow{}, &Ingredient{}, &Recipe{}, &RecipeIngredient{},
		&Favorite{}, &ShoppingCart{}, &Idempotency{},
	}
}
