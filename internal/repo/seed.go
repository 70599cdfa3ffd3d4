package repo

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	json "github.com/goccy/go-json"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tbourn/foodgram-backend/internal/domain"
)

const seedBatchSize = 500

type ingredientFixture struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// DecodeIngredients reads a JSON array of {"name", "measurement_unit"}
// objects. Entries are trimmed; blank ones and repeats are dropped.
func DecodeIngredients(r io.Reader) ([]domain.Ingredient, error) {
	var raw []ingredientFixture
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode ingredients: %w", err)
	}
	seen := make(map[[2]string]struct{}, len(raw))
	out := make([]domain.Ingredient, 0, len(raw))
	for _, f := range raw {
		name := strings.TrimSpace(f.Name)
		unit := strings.TrimSpace(f.MeasurementUnit)
		if name == "" || unit == "" {
			continue
		}
		if utf8.RuneCountInString(name) > domain.MaxIngredientNameLen || utf8.RuneCountInString(unit) > domain.MaxMeasurementLen {
			return nil, fmt.Errorf("decode ingredients: entry %q exceeds column limits", name)
		}
		k := [2]string{name, unit}
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, domain.Ingredient{Name: name, MeasurementUnit: unit})
	}
	return out, nil
}

// InsertIngredients bulk-inserts items, skipping ones already present, and
// returns the number of new rows.
func InsertIngredients(ctx context.Context, db *gorm.DB, items []domain.Ingredient) (int64, error) {
	if len(items) == 0 {
		return 0, nil
	}
	res := db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(&items, seedBatchSize)
	return res.RowsAffected, res.Error
}

// SeedIngredients loads the fixture at path into the catalogue. Existing
// (name, unit) pairs are left untouched, so it is safe to run on every start.
func SeedIngredients(ctx context.Context, db *gorm.DB, path string) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	items, err := DecodeIngredients(f)
	if err != nil {
		return 0, err
	}
	return InsertIngredients(ctx, db, items)
}
