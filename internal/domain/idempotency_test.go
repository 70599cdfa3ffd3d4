package domain

import (
	"testing"
	"time"
)

func TestIdempotency_InsertAndUniqueScope(t *testing.T) {
	db := newDomainDB(t)
	now := time.Now().UTC()

	rec := &Idempotency{
		ID:        "id-1",
		UserID:    1,
		Scope:     "/api/recipes",
		Key:       "k1",
		RecipeID:  10,
		Status:    201,
		ExpiresAt: now.Add(time.Hour),
	}
	if err := db.Create(rec).Error; err != nil {
		t.Fatalf("insert valid: %v", err)
	}

	var got Idempotency
	if err := db.First(&got, "id = ?", "id-1").Error; err != nil {
		t.Fatalf("readback: %v", err)
	}
	if got.UserID != 1 || got.Scope != "/api/recipes" || got.Key != "k1" || got.RecipeID != 10 || got.Status != 201 {
		t.Fatalf("unexpected row: %+v", got)
	}
	if got.CreatedAt.IsZero() {
		t.Fatalf("CreatedAt should be filled by autoCreateTime")
	}
	if got.ExpiresAt.Before(now) {
		t.Fatalf("ExpiresAt should be in the future: %v", got.ExpiresAt)
	}

	// (user_id, scope, key) must be unique.
	dup := &Idempotency{ID: "id-2", UserID: 1, Scope: "/api/recipes", Key: "k1", RecipeID: 11, Status: 201, ExpiresAt: now.Add(time.Hour)}
	if err := db.Create(dup).Error; err == nil {
		t.Fatalf("expected UNIQUE constraint violation on (user_id, scope, key)")
	}

	// A different user or scope may reuse the key.
	other := []*Idempotency{
		{ID: "id-3", UserID: 2, Scope: "/api/recipes", Key: "k1", RecipeID: 12, Status: 201, ExpiresAt: now.Add(time.Hour)},
		{ID: "id-4", UserID: 1, Scope: "/api/other", Key: "k1", RecipeID: 13, Status: 201, ExpiresAt: now.Add(time.Hour)},
	}
	for _, o := range other {
		if err := db.Create(o).Error; err != nil {
			t.Fatalf("insert %s: %v", o.ID, err)
		}
	}
}
