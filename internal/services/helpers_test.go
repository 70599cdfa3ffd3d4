package services

import (
	"context"
	"fmt"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/foodgram-backend/internal/domain"
	"github.com/tbourn/foodgram-backend/internal/media"
	"github.com/tbourn/foodgram-backend/internal/repo"
)

// 1x1 transparent PNG.
const pngURI = "data:image/png;base64,iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func newTestStore(t *testing.T) *media.Store {
	t.Helper()
	return media.NewStore(t.TempDir(), "/media")
}

func seedUser(t *testing.T, db *gorm.DB, username string) domain.User {
	t.Helper()
	u := domain.User{
		Email:        username + "@example.com",
		Username:     username,
		FirstName:    username,
		LastName:     "Test",
		PasswordHash: "x",
	}
	if err := repo.CreateUser(context.Background(), db, &u); err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return u
}

func seedIngredient(t *testing.T, db *gorm.DB, name, unit string) domain.Ingredient {
	t.Helper()
	in := domain.Ingredient{Name: name, MeasurementUnit: unit}
	if err := db.Create(&in).Error; err != nil {
		t.Fatalf("seed ingredient %s: %v", name, err)
	}
	return in
}

func seedRecipe(t *testing.T, db *gorm.DB, authorID uint, name string, items ...domain.RecipeIngredient) domain.Recipe {
	t.Helper()
	r := domain.Recipe{AuthorID: authorID, Name: name, Image: "recipes/" + name + ".png", Text: "text", CookingTime: 10}
	if err := repo.CreateRecipe(context.Background(), db, &r, items); err != nil {
		t.Fatalf("seed recipe %s: %v", name, err)
	}
	return r
}

func newUserService(t *testing.T, db *gorm.DB) *UserService {
	t.Helper()
	return &UserService{DB: db, Media: newTestStore(t), BcryptCost: bcrypt.MinCost}
}

func recipeItem(ingredientID uint, amount int64) domain.RecipeIngredient {
	return domain.RecipeIngredient{IngredientID: ingredientID, Amount: amount}
}
