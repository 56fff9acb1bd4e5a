package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/types"
)

// CatalogService serves the tag and ingredient reference data
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

// ListTags returns every tag
func (s *CatalogService) ListTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	if err := s.db.WithContext(ctx).Order("name").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

// GetTag fetches a tag by id
func (s *CatalogService) GetTag(ctx context.Context, id uuid.UUID) (*models.Tag, error) {
	var tag models.Tag
	if err := s.db.WithContext(ctx).First(&tag, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &tag, nil
}

// CreateTag adds a tag to the catalog (admin operation)
func (s *CatalogService) CreateTag(ctx context.Context, req types.CreateTagRequest) (*models.Tag, error) {
	tag := models.Tag{Name: req.Name, Color: req.Color, Slug: req.Slug}
	if err := s.db.WithContext(ctx).Create(&tag).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}
	return &tag, nil
}

// ListIngredients returns ingredients, optionally narrowed by a name prefix
func (s *CatalogService) ListIngredients(ctx context.Context, namePrefix string) ([]models.Ingredient, error) {
	query := s.db.WithContext(ctx).Order("name")
	if namePrefix != "" {
		query = query.Where("name LIKE ?", namePrefix+"%")
	}

	var ingredients []models.Ingredient
	if err := query.Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

// GetIngredient fetches an ingredient by id
func (s *CatalogService) GetIngredient(ctx context.Context, id uuid.UUID) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).First(&ingredient, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ingredient, nil
}

// CreateIngredient adds an ingredient to the catalog (admin operation)
func (s *CatalogService) CreateIngredient(ctx context.Context, req types.CreateIngredientRequest) (*models.Ingredient, error) {
	ingredient := models.Ingredient{Name: req.Name, MeasurementUnit: req.MeasurementUnit}
	if err := s.db.WithContext(ctx).Create(&ingredient).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrAlreadyExists
		}
		return nil, err
	}
	return &ingredient, nil
}

// GetOrCreateIngredient inserts the (name, unit) pair unless it already
// exists; the bulk loader relies on the silent skip.
func (s *CatalogService) GetOrCreateIngredient(ctx context.Context, name, unit string) (*models.Ingredient, bool, error) {
	var ingredient models.Ingredient
	err := s.db.WithContext(ctx).
		Where("name = ? AND measurement_unit = ?", name, unit).
		First(&ingredient).Error
	if err == nil {
		return &ingredient, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, err
	}

	ingredient = models.Ingredient{Name: name, MeasurementUnit: unit}
	if err := s.db.WithContext(ctx).Create(&ingredient).Error; err != nil {
		return nil, false, err
	}
	return &ingredient, true, nil
}
