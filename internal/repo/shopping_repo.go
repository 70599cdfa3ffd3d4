package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/foodgram-backend/internal/shopping"
)

// ListCartUsage returns one row per ingredient usage across every recipe in
// userID's shopping cart. Rows are not summed; shopping.Aggregate does that.
func ListCartUsage(ctx context.Context, db *gorm.DB, userID uint) ([]shopping.Usage, error) {
	rows := []shopping.Usage{}
	err := db.WithContext(ctx).
		Table("shopping_carts AS sc").
		Select("i.name AS name, i.measurement_unit AS measurement_unit, ri.amount AS amount").
		Joins("JOIN recipe_ingredients AS ri ON ri.recipe_id = sc.recipe_id").
		Joins("JOIN ingredients AS i ON i.id = ri.ingredient_id").
		Where("sc.user_id = ?", userID).
		Scan(&rows).Error
	return rows, err
}
