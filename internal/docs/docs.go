// Package docs registers the OpenAPI document served under /swagger.
//
// The handler annotations are the source of truth; regenerate the full
// document with:
//
//	swag init -g cmd/server/main.go -o internal/docs --parseInternal
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "securityDefinitions": {
        "BearerAuth": {
            "type": "apiKey",
            "name": "Authorization",
            "in": "header",
            "description": "Bearer <JWT>"
        }
    },
    "paths": {
        "/users": {
            "get": {"operationId": "listUsers", "tags": ["Users"], "summary": "List users (paginated)", "produces": ["application/json"], "responses": {"200": {"description": "OK"}}},
            "post": {"operationId": "registerUser", "tags": ["Users"], "summary": "Sign up", "consumes": ["application/json"], "produces": ["application/json"], "responses": {"201": {"description": "Created"}, "400": {"description": "Validation failed or email/username taken"}}}
        },
        "/users/me": {
            "get": {"operationId": "getMe", "tags": ["Users"], "summary": "Current user", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/users/me/avatar": {
            "put": {"operationId": "setAvatar", "tags": ["Users"], "summary": "Upload avatar", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "400": {"description": "Invalid image"}, "401": {"description": "Unauthorized"}}},
            "delete": {"operationId": "deleteAvatar", "tags": ["Users"], "summary": "Remove avatar", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}, "401": {"description": "Unauthorized"}}}
        },
        "/users/set_password": {
            "post": {"operationId": "setPassword", "tags": ["Users"], "summary": "Change password", "security": [{"BearerAuth": []}], "responses": {"204": {"description": "No Content"}, "400": {"description": "Wrong current password or invalid new one"}}}
        },
        "/users/subscriptions": {
            "get": {"operationId": "listSubscriptions", "tags": ["Users"], "summary": "Followed authors (paginated)", "security": [{"BearerAuth": []}], "responses": {"200": {"description": "OK"}, "401": {"description": "Unauthorized"}}}
        },
        "/users/{id}": {
            "get": {"operationId": "getUser", "tags": ["Users"], "summary": "User profile", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "User not found"}}}
        },
        "/users/{id}/subscribe": {
            "post": {"operationId": "subscribe", "tags": ["Users"], "summary": "Follow an author", "security": [{"BearerAuth": []}], "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"201": {"description": "Created"}, "400": {"description": "Self or duplicate subscription"}, "404": {"description": "Author not found"}}},
            "delete": {"operationId": "unsubscribe", "tags": ["Users"], "summary": "Unfollow an author", "security": [{"BearerAuth": []}], "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "400": {"description": "Not subscribed"}, "404": {"description": "Author not found"}}}
        },
        "/ingredients": {
            "get": {"operationId": "listIngredients", "tags": ["Ingredients"], "summary": "List ingredients", "parameters": [{"type": "string", "name": "name", "in": "query"}], "responses": {"200": {"description": "OK"}}}
        },
        "/ingredients/{id}": {
            "get": {"operationId": "getIngredient", "tags": ["Ingredients"], "summary": "Get ingredient", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Ingredient not found"}}}
        },
        "/recipes": {
            "get": {"operationId": "listRecipes", "tags": ["Recipes"], "summary": "List recipes (paginated)", "parameters": [{"type": "integer", "name": "author", "in": "query"}, {"type": "integer", "name": "is_favorited", "in": "query"}, {"type": "integer", "name": "is_in_shopping_cart", "in": "query"}], "responses": {"200": {"description": "OK"}, "304": {"description": "Not Modified"}, "400": {"description": "Invalid filter"}}},
            "post": {"operationId": "createRecipe", "tags": ["Recipes"], "summary": "Create recipe", "security": [{"BearerAuth": []}], "parameters": [{"type": "string", "name": "Idempotency-Key", "in": "header"}], "responses": {"201": {"description": "Created"}, "400": {"description": "Validation failed"}, "409": {"description": "Concurrent request with the same key"}}}
        },
        "/recipes/download_shopping_cart": {
            "get": {"operationId": "downloadShoppingCart", "tags": ["Recipes"], "summary": "Download shopping list", "security": [{"BearerAuth": []}], "parameters": [{"enum": ["txt", "csv", "pdf"], "type": "string", "name": "format", "in": "query"}], "responses": {"200": {"description": "OK"}, "400": {"description": "Unknown format"}}}
        },
        "/recipes/{id}": {
            "get": {"operationId": "getRecipe", "tags": ["Recipes"], "summary": "Get recipe", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Recipe not found"}}},
            "patch": {"operationId": "updateRecipe", "tags": ["Recipes"], "summary": "Update recipe", "security": [{"BearerAuth": []}], "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "403": {"description": "Not the author"}, "404": {"description": "Recipe not found"}}},
            "delete": {"operationId": "deleteRecipe", "tags": ["Recipes"], "summary": "Delete recipe", "security": [{"BearerAuth": []}], "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "403": {"description": "Not the author"}, "404": {"description": "Recipe not found"}}}
        },
        "/recipes/{id}/get-link": {
            "get": {"operationId": "getRecipeLink", "tags": ["Recipes"], "summary": "Short link to a recipe", "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"200": {"description": "OK"}, "404": {"description": "Recipe not found"}}}
        },
        "/recipes/{id}/favorite": {
            "post": {"operationId": "addFavorite", "tags": ["Recipes"], "summary": "Add recipe to favorites", "security": [{"BearerAuth": []}], "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"201": {"description": "Created"}, "400": {"description": "Already in favorites"}, "404": {"description": "Recipe not found"}}},
            "delete": {"operationId": "removeFavorite", "tags": ["Recipes"], "summary": "Remove recipe from favorites", "security": [{"BearerAuth": []}], "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "400": {"description": "Not in favorites"}, "404": {"description": "Recipe not found"}}}
        },
        "/recipes/{id}/shopping_cart": {
            "post": {"operationId": "addToCart", "tags": ["Recipes"], "summary": "Add recipe to shopping cart", "security": [{"BearerAuth": []}], "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"201": {"description": "Created"}, "400": {"description": "Already in the cart"}, "404": {"description": "Recipe not found"}}},
            "delete": {"operationId": "removeFromCart", "tags": ["Recipes"], "summary": "Remove recipe from shopping cart", "security": [{"BearerAuth": []}], "parameters": [{"type": "integer", "name": "id", "in": "path", "required": true}], "responses": {"204": {"description": "No Content"}, "400": {"description": "Not in the cart"}, "404": {"description": "Recipe not found"}}}
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "Foodgram API",
	Description:      "Recipes, subscriptions, favorites, shopping lists and short links.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
