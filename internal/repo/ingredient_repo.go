package repo

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/foodgram-backend/internal/domain"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// ListIngredients returns catalogue entries ordered by name. A non-empty
// prefix keeps only names starting with it, case-insensitively.
func ListIngredients(ctx context.Context, db *gorm.DB, prefix string) ([]domain.Ingredient, error) {
	q := db.WithContext(ctx).Order("name asc").Order("measurement_unit asc")
	if prefix = strings.ToLower(strings.TrimSpace(prefix)); prefix != "" {
		q = q.Where(`search_name LIKE ? ESCAPE '\'`, likeEscaper.Replace(prefix)+"%")
	}
	var out []domain.Ingredient
	err := q.Find(&out).Error
	return out, err
}

// GetIngredient fetches one ingredient by ID, or ErrNotFound.
func GetIngredient(ctx context.Context, db *gorm.DB, id uint) (*domain.Ingredient, error) {
	var in domain.Ingredient
	if err := db.WithContext(ctx).First(&in, id).Error; err != nil {
		return nil, err
	}
	return &in, nil
}

// CountIngredientsByIDs returns how many of ids exist in the catalogue.
// Duplicate ids are counted once.
func CountIngredientsByIDs(ctx context.Context, db *gorm.DB, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.Ingredient{}).
		Where("id IN ?", ids).
		Count(&total).Error
	return total, err
}

// CountIngredients returns the catalogue size.
func CountIngredients(ctx context.Context, db *gorm.DB) (int64, error) {
	var total int64
	err := db.WithContext(ctx).Model(&domain.Ingredient{}).Count(&total).Error
	return total, err
}
