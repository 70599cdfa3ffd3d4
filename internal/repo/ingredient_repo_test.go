package repo

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestListIngredients_PrefixIsCaseInsensitive(t *testing.T) {
	db := newSchemaDB(t)
	ctx := context.Background()
	mkIngredient(t, db, "Sugar", "g")
	mkIngredient(t, db, "salt", "g")
	mkIngredient(t, db, "Salt", "pinch")
	mkIngredient(t, db, "Соль морская", "г")
	mkIngredient(t, db, "pepper", "g")

	all, err := ListIngredients(ctx, db, "")
	if err != nil || len(all) != 5 {
		t.Fatalf("ListIngredients(\"\") = %d items, %v", len(all), err)
	}

	got, err := ListIngredients(ctx, db, "SA")
	if err != nil {
		t.Fatalf("ListIngredients: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 salts, got %+v", got)
	}
	// name asc: "Salt" < "salt" in byte order.
	if got[0].Name != "Salt" || got[1].Name != "salt" {
		t.Fatalf("unexpected order: %+v", got)
	}

	ru, err := ListIngredients(ctx, db, "соль")
	if err != nil || len(ru) != 1 {
		t.Fatalf("non-ASCII prefix: %+v, %v", ru, err)
	}
}

func TestListIngredients_EscapesWildcards(t *testing.T) {
	db := newSchemaDB(t)
	mkIngredient(t, db, "salt", "g")
	got, err := ListIngredients(context.Background(), db, "%")
	if err != nil {
		t.Fatalf("ListIngredients: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("'%%' must match literally, got %+v", got)
	}
}

func TestGetIngredient_AndCounts(t *testing.T) {
	db := newSchemaDB(t)
	ctx := context.Background()
	a := mkIngredient(t, db, "salt", "g")
	b := mkIngredient(t, db, "sugar", "g")

	got, err := GetIngredient(ctx, db, a.ID)
	if err != nil || got.Name != "salt" {
		t.Fatalf("GetIngredient = %+v, %v", got, err)
	}
	if _, err := GetIngredient(ctx, db, 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	n, err := CountIngredientsByIDs(ctx, db, []uint{a.ID, b.ID, 999})
	if err != nil || n != 2 {
		t.Fatalf("CountIngredientsByIDs = %d, %v", n, err)
	}
	if n, _ := CountIngredientsByIDs(ctx, db, nil); n != 0 {
		t.Fatalf("empty ids should count 0")
	}
	if n, _ := CountIngredients(ctx, db); n != 2 {
		t.Fatalf("CountIngredients = %d", n)
	}
}

func TestDecodeIngredients(t *testing.T) {
	in := `[
		{"name": " salt ", "measurement_unit": "g"},
		{"name": "salt", "measurement_unit": "g"},
		{"name": "", "measurement_unit": "g"},
		{"name": "sugar", "measurement_unit": " "},
		{"name": "соль", "measurement_unit": "г"}
	]`
	got, err := DecodeIngredients(strings.NewReader(in))
	if err != nil {
		t.Fatalf("DecodeIngredients: %v", err)
	}
	if len(got) != 2 || got[0].Name != "salt" || got[1].Name != "соль" {
		t.Fatalf("unexpected items: %+v", got)
	}

	if _, err := DecodeIngredients(strings.NewReader(`{"name":"x"}`)); err == nil {
		t.Fatalf("expected error for non-array JSON")
	}
	long := `[{"name":"` + strings.Repeat("x", 129) + `","measurement_unit":"g"}]`
	if _, err := DecodeIngredients(strings.NewReader(long)); err == nil {
		t.Fatalf("expected error for over-long name")
	}
}

func TestSeedIngredients_Idempotent(t *testing.T) {
	db := newSchemaDB(t)
	ctx := context.Background()
	mkIngredient(t, db, "salt", "g")

	path := filepath.Join(t.TempDir(), "ingredients.json")
	fixture := `[{"name":"salt","measurement_unit":"g"},{"name":"sugar","measurement_unit":"g"},{"name":"milk","measurement_unit":"ml"}]`
	if err := os.WriteFile(path, []byte(fixture), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	n, err := SeedIngredients(ctx, db, path)
	if err != nil {
		t.Fatalf("SeedIngredients: %v", err)
	}
	if n != 2 {
		t.Fatalf("expected 2 new rows, got %d", n)
	}
	if n, err := SeedIngredients(ctx, db, path); err != nil || n != 0 {
		t.Fatalf("second seed = %d, %v; want 0, nil", n, err)
	}
	if total, _ := CountIngredients(ctx, db); total != 3 {
		t.Fatalf("catalogue size = %d; want 3", total)
	}

	// Hook-populated search column works for seeded rows too.
	got, _ := ListIngredients(ctx, db, "MI")
	if len(got) != 1 || got[0].Name != "milk" {
		t.Fatalf("seeded rows not searchable: %+v", got)
	}
}

func TestSeedIngredients_MissingFile(t *testing.T) {
	db := newSchemaDB(t)
	if _, err := SeedIngredients(context.Background(), db, filepath.Join(t.TempDir(), "nope.json")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected ErrNotExist, got %v", err)
	}
}

func TestSeedIngredients_ShippedFixture(t *testing.T) {
	f, err := os.Open(filepath.Join("..", "..", "data", "ingredients.json"))
	if err != nil {
		t.Skipf("fixture not available: %v", err)
	}
	defer f.Close()
	items, err := DecodeIngredients(f)
	if err != nil {
		t.Fatalf("shipped fixture does not decode: %v", err)
	}
	if len(items) == 0 {
		t.Fatalf("shipped fixture is empty")
	}
}
