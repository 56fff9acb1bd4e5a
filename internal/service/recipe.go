package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/types"
)

// RecipeService owns the recipe aggregate: the recipe header, its tag
// links and its ingredient composition.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// RecipeFilters narrows List results. Favorited/InCart only apply when
// Viewer is set.
type RecipeFilters struct {
	TagSlugs  []string
	AuthorID  *uuid.UUID
	Favorited bool
	InCart    bool
	Viewer    *uuid.UUID
}

// CreateRecipe validates the composition and persists the recipe header,
// tag links and ingredient amounts in a single transaction.
func (s *RecipeService) CreateRecipe(ctx context.Context, authorID uuid.UUID, req types.CreateRecipeRequest, imageURL string) (*models.Recipe, error) {
	if err := validateComposition(req.CookingTime, req.Tags, req.Ingredients); err != nil {
		return nil, err
	}

	recipe := models.Recipe{
		AuthorID:    authorID,
		Name:        req.Name,
		Text:        req.Text,
		CookingTime: req.CookingTime,
		ImageURL:    imageURL,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tags, err := loadTags(tx, req.Tags)
		if err != nil {
			return err
		}
		if err := checkIngredientsExist(tx, req.Ingredients); err != nil {
			return err
		}

		if err := tx.Omit(clause.Associations).Create(&recipe).Error; err != nil {
			return err
		}
		if err := tx.Model(&recipe).Association("Tags").Append(&tags); err != nil {
			return err
		}
		for _, entry := range req.Ingredients {
			row := models.IngredientAmount{
				RecipeID:     recipe.ID,
				IngredientID: entry.ID,
				Amount:       entry.Amount,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetRecipe(ctx, recipe.ID)
}

// UpdateRecipe applies partial header updates; a supplied tag set or
// composition replaces the existing one wholesale. The clear-then-reinsert
// runs inside one transaction so a failed update leaves the recipe intact.
func (s *RecipeService) UpdateRecipe(ctx context.Context, recipeID uuid.UUID, req types.UpdateRecipeRequest, imageURL *string) (*models.Recipe, error) {
	if req.CookingTime != nil && *req.CookingTime < 1 {
		return nil, newValidationError("cooking_time", "cooking time must be at least 1")
	}
	if req.Tags != nil && len(req.Tags) == 0 {
		return nil, newValidationError("tags", "at least one tag is required")
	}
	if req.Ingredients != nil {
		if err := validateEntries(req.Ingredients); err != nil {
			return nil, err
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, "id = ?", recipeID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if req.Name != nil {
			recipe.Name = *req.Name
		}
		if req.Text != nil {
			recipe.Text = *req.Text
		}
		if req.CookingTime != nil {
			recipe.CookingTime = *req.CookingTime
		}
		if imageURL != nil {
			recipe.ImageURL = *imageURL
		}
		if err := tx.Omit(clause.Associations).Save(&recipe).Error; err != nil {
			return err
		}

		if req.Tags != nil {
			tags, err := loadTags(tx, req.Tags)
			if err != nil {
				return err
			}
			if err := tx.Model(&recipe).Association("Tags").Replace(&tags); err != nil {
				return err
			}
		}

		if req.Ingredients != nil {
			if err := checkIngredientsExist(tx, req.Ingredients); err != nil {
				return err
			}
			if err := tx.Where("recipe_id = ?", recipe.ID).Delete(&models.IngredientAmount{}).Error; err != nil {
				return err
			}
			for _, entry := range req.Ingredients {
				row := models.IngredientAmount{
					RecipeID:     recipe.ID,
					IngredientID: entry.ID,
					Amount:       entry.Amount,
				}
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetRecipe(ctx, recipeID)
}

// GetRecipe retrieves a recipe with its author, tags and composition
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		First(&recipe, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// DeleteRecipe removes the recipe and cascades its composition rows, tag
// links and any favorite/cart edges referencing it.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := tx.Where("recipe_id = ?", id).Delete(&models.IngredientAmount{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Favorite{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipe_id = ?", id).Delete(&models.Cart{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Delete(&recipe).Error
	})
}

// ListRecipes lists recipes newest first, narrowed by the given filters
func (s *RecipeService) ListRecipes(ctx context.Context, filters RecipeFilters) ([]models.Recipe, error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Order("recipes.pub_date DESC")

	if len(filters.TagSlugs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
			Where("tags.slug IN ?", filters.TagSlugs).
			Distinct("recipes.*")
	}
	if filters.AuthorID != nil {
		query = query.Where("recipes.author_id = ?", *filters.AuthorID)
	}
	if filters.Viewer != nil {
		if filters.Favorited {
			query = query.
				Joins("JOIN favorites ON favorites.recipe_id = recipes.id").
				Where("favorites.author_id = ?", *filters.Viewer)
		}
		if filters.InCart {
			query = query.
				Joins("JOIN carts ON carts.recipe_id = recipes.id").
				Where("carts.author_id = ?", *filters.Viewer)
		}
	}

	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// ListByAuthor returns the author's recipes newest first, truncated to
// limit when limit > 0.
func (s *RecipeService) ListByAuthor(ctx context.Context, authorID uuid.UUID, limit int) ([]models.Recipe, error) {
	query := s.db.WithContext(ctx).
		Where("author_id = ?", authorID).
		Order("pub_date DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// CountByAuthor counts all of the author's recipes, ignoring any preview limit
func (s *RecipeService) CountByAuthor(ctx context.Context, authorID uuid.UUID) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("author_id = ?", authorID).
		Count(&count).Error
	return count, err
}

// validateComposition rejects empty tag sets, empty or duplicated
// ingredient entries and non-positive amounts or cooking times.
func validateComposition(cookingTime int, tagIDs []uuid.UUID, entries []types.IngredientEntry) error {
	if len(tagIDs) == 0 {
		return newValidationError("tags", "at least one tag is required")
	}
	if len(entries) == 0 {
		return newValidationError("ingredients", "at least one ingredient is required")
	}
	if cookingTime < 1 {
		return newValidationError("cooking_time", "cooking time must be at least 1")
	}
	return validateEntries(entries)
}

func validateEntries(entries []types.IngredientEntry) error {
	if len(entries) == 0 {
		return newValidationError("ingredients", "at least one ingredient is required")
	}
	seen := make(map[uuid.UUID]bool, len(entries))
	for _, entry := range entries {
		if entry.Amount < 1 {
			return newValidationError("amount", "amount must be at least 1")
		}
		if seen[entry.ID] {
			return newValidationError("ingredients", "ingredients must not repeat")
		}
		seen[entry.ID] = true
	}
	return nil
}

func loadTags(tx *gorm.DB, tagIDs []uuid.UUID) ([]models.Tag, error) {
	var tags []models.Tag
	if err := tx.Where("id IN ?", tagIDs).Find(&tags).Error; err != nil {
		return nil, err
	}
	if len(tags) != len(tagIDs) {
		return nil, newValidationError("tags", "unknown tag")
	}
	return tags, nil
}

func checkIngredientsExist(tx *gorm.DB, entries []types.IngredientEntry) error {
	ids := make([]uuid.UUID, 0, len(entries))
	for _, entry := range entries {
		ids = append(ids, entry.ID)
	}
	var count int64
	if err := tx.Model(&models.Ingredient{}).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return err
	}
	if count != int64(len(ids)) {
		return newValidationError("ingredients", "unknown ingredient")
	}
	return nil
}
