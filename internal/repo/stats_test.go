package repo

import (
	"context"
	"testing"
	"time"

	"github.com/tbourn/foodgram-backend/internal/domain"
)

func TestRecipesStats_CountError_NoTable(t *testing.T) {
	db := newTestDB(t /* no migrations */)
	if _, _, err := RecipesStats(context.Background(), db, RecipeFilter{}); err == nil {
		t.Fatalf("expected error due to missing recipes table")
	}
}

func TestRecipesStats_ZeroRows(t *testing.T) {
	db := newSchemaDB(t)
	count, maxAt, err := RecipesStats(context.Background(), db, RecipeFilter{})
	if err != nil {
		t.Fatalf("RecipesStats error: %v", err)
	}
	if count != 0 || maxAt != nil {
		t.Fatalf("expected (0, nil), got (%d, %v)", count, maxAt)
	}
}

func TestRecipesStats_FilterAndMax(t *testing.T) {
	db := newSchemaDB(t)
	ctx := context.Background()
	alice := mkUser(t, db, "alice")
	bob := mkUser(t, db, "bob")
	salt := mkIngredient(t, db, "salt", "g")

	r1 := mkRecipe(t, db, alice.ID, "r1", map[uint]int64{salt.ID: 1})
	r2 := mkRecipe(t, db, alice.ID, "r2", map[uint]int64{salt.ID: 1})
	r3 := mkRecipe(t, db, bob.ID, "r3", map[uint]int64{salt.ID: 1})

	t1 := time.Date(2025, 1, 2, 15, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, 3, 4, 10, 30, 0, 0, time.UTC) // max for alice
	t3 := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)   // other author
	for id, at := range map[uint]time.Time{r1.ID: t1, r2.ID: t2, r3.ID: t3} {
		db.Model(&domain.Recipe{}).Where("id = ?", id).UpdateColumn("updated_at", at)
	}

	count, maxAt, err := RecipesStats(ctx, db, RecipeFilter{AuthorID: &alice.ID})
	if err != nil {
		t.Fatalf("RecipesStats error: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected count 2, got %d", count)
	}
	if maxAt == nil || !maxAt.Equal(t2) {
		t.Fatalf("expected maxUpdatedAt %v, got %v", t2, maxAt)
	}
}

func TestUserRecipeAndFollowStats(t *testing.T) {
	db := newSchemaDB(t)
	ctx := context.Background()
	alice := mkUser(t, db, "alice")
	bob := mkUser(t, db, "bob")
	salt := mkIngredient(t, db, "salt", "g")
	r := mkRecipe(t, db, alice.ID, "r", map[uint]int64{salt.ID: 1})

	if n, at, err := UserRecipeStats[domain.Favorite](ctx, db, bob.ID); err != nil || n != 0 || at != nil {
		t.Fatalf("empty favorites stats = %d, %v, %v", n, at, err)
	}
	if err := AddUserRecipe[domain.Favorite](ctx, db, bob.ID, r.ID); err != nil {
		t.Fatalf("add favorite: %v", err)
	}
	n, at, err := UserRecipeStats[domain.Favorite](ctx, db, bob.ID)
	if err != nil || n != 1 || at == nil {
		t.Fatalf("favorites stats = %d, %v, %v", n, at, err)
	}

	if err := CreateFollow(ctx, db, bob.ID, alice.ID); err != nil {
		t.Fatalf("follow: %v", err)
	}
	if n, at, err := FollowStats(ctx, db, bob.ID); err != nil || n != 1 || at == nil {
		t.Fatalf("follow stats = %d, %v, %v", n, at, err)
	}
	if n, at, err := UsersStats(ctx, db); err != nil || n != 2 || at == nil {
		t.Fatalf("users stats = %d, %v, %v", n, at, err)
	}
}
