package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/types"
)

// ShoppingListService aggregates the ingredient amounts of every recipe
// in a user's cart into one summed list.
type ShoppingListService struct {
	db *gorm.DB
}

func NewShoppingListService(db *gorm.DB) *ShoppingListService {
	return &ShoppingListService{db: db}
}

// Build walks the cart-linked recipes' compositions and sums amounts
// grouped by the ingredient's (name, measurement unit) identity, so the
// same ingredient across several carted recipes collapses into one line.
// An empty cart yields an empty list.
func (s *ShoppingListService) Build(ctx context.Context, userID uuid.UUID) ([]types.ShoppingListItem, error) {
	var items []types.ShoppingListItem
	err := s.db.WithContext(ctx).Model(&models.IngredientAmount{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, SUM(ingredient_amounts.amount) AS amount").
		Joins("JOIN ingredients ON ingredients.id = ingredient_amounts.ingredient_id").
		Joins("JOIN carts ON carts.recipe_id = ingredient_amounts.recipe_id").
		Where("carts.author_id = ?", userID).
		Group("ingredients.name, ingredients.measurement_unit").
		Order("ingredients.name").
		Scan(&items).Error
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []types.ShoppingListItem{}
	}
	return items, nil
}
