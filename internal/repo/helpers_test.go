package repo

import (
	"context"
	"fmt"
	"strings"
	"testing"

	sqlite "github.com/glebarez/sqlite" // pure-Go SQLite (no CGO)
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/foodgram-backend/internal/domain"
)

func newTestDB(t *testing.T, migrate ...any) *gorm.DB {
	t.Helper()
	// Unique DB per test to avoid schema leaking across tests.
	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	if len(migrate) > 0 {
		if err := db.AutoMigrate(migrate...); err != nil {
			t.Fatalf("automigrate: %v", err)
		}
	}
	return db
}

func newSchemaDB(t *testing.T) *gorm.DB {
	t.Helper()
	return newTestDB(t, domain.Models()...)
}

func mkUser(t *testing.T, db *gorm.DB, username string) domain.User {
	t.Helper()
	u := domain.User{
		Email:        username + "@example.com",
		Username:     username,
		FirstName:    strings.ToUpper(username[:1]),
		LastName:     "Test",
		PasswordHash: "hash",
	}
	if err := CreateUser(context.Background(), db, &u); err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return u
}

func mkIngredient(t *testing.T, db *gorm.DB, name, unit string) domain.Ingredient {
	t.Helper()
	in := domain.Ingredient{Name: name, MeasurementUnit: unit}
	if err := db.Create(&in).Error; err != nil {
		t.Fatalf("create ingredient %s: %v", name, err)
	}
	return in
}

// mkRecipe creates a recipe by author using amounts keyed by ingredient ID.
func mkRecipe(t *testing.T, db *gorm.DB, authorID uint, name string, amounts map[uint]int64) domain.Recipe {
	t.Helper()
	r := domain.Recipe{AuthorID: authorID, Name: name, Image: "recipes/" + name + ".png", Text: "text", CookingTime: 5}
	items := make([]domain.RecipeIngredient, 0, len(amounts))
	for id, amt := range amounts {
		items = append(items, domain.RecipeIngredient{IngredientID: id, Amount: amt})
	}
	if err := CreateRecipe(context.Background(), db, &r, items); err != nil {
		t.Fatalf("create recipe %s: %v", name, err)
	}
	return r
}
