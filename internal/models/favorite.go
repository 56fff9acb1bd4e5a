package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Favorite marks a recipe as favorited by a user. One edge per
// (author, recipe) pair, enforced by the composite unique index.
type Favorite struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorite_author_recipe" json:"author_id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_favorite_author_recipe;index" json:"recipe_id"`
}

func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == uuid.Nil {
		f.ID = uuid.New()
	}
	return nil
}

func (Favorite) TableName() string {
	return "favorites"
}

// Cart links a recipe into a user's shopping cart. Same ownership and
// uniqueness rules as Favorite.
type Cart struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	AuthorID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_author_recipe" json:"author_id"`
	RecipeID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_author_recipe;index" json:"recipe_id"`
}

func (c *Cart) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

func (Cart) TableName() string {
	return "carts"
}
