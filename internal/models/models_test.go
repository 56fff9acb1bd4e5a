package models_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/models"
)

func openDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.IngredientAmount{},
		&models.Favorite{},
		&models.Cart{},
	))
	return db
}

func TestBeforeCreateAssignsID(t *testing.T) {
	db := openDB(t)

	user := models.User{
		Email:        "cook@example.com",
		Username:     "cook",
		FirstName:    "Ada",
		LastName:     "Lovelace",
		PasswordHash: "hash",
	}
	require.NoError(t, db.Create(&user).Error)
	assert.NotEqual(t, uuid.Nil, user.ID)

	tag := models.Tag{Name: "breakfast", Color: "#E26C2D", Slug: "breakfast"}
	require.NoError(t, db.Create(&tag).Error)
	assert.NotEqual(t, uuid.Nil, tag.ID)
}

func TestEdgeUniqueIndexes(t *testing.T) {
	db := openDB(t)

	a := models.User{Email: "a@example.com", Username: "a", FirstName: "A", LastName: "A", PasswordHash: "x"}
	b := models.User{Email: "b@example.com", Username: "b", FirstName: "B", LastName: "B", PasswordHash: "x"}
	require.NoError(t, db.Create(&a).Error)
	require.NoError(t, db.Create(&b).Error)

	recipe := models.Recipe{AuthorID: a.ID, Name: "Pancakes", Text: "Cook", CookingTime: 10}
	require.NoError(t, db.Create(&recipe).Error)

	require.NoError(t, db.Create(&models.Favorite{AuthorID: b.ID, RecipeID: recipe.ID}).Error)
	err := db.Create(&models.Favorite{AuthorID: b.ID, RecipeID: recipe.ID}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)

	require.NoError(t, db.Create(&models.Follow{FollowerID: b.ID, AuthorID: a.ID}).Error)
	err = db.Create(&models.Follow{FollowerID: b.ID, AuthorID: a.ID}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestIngredientPairUnique(t *testing.T) {
	db := openDB(t)

	require.NoError(t, db.Create(&models.Ingredient{Name: "flour", MeasurementUnit: "g"}).Error)
	require.NoError(t, db.Create(&models.Ingredient{Name: "flour", MeasurementUnit: "kg"}).Error)

	err := db.Create(&models.Ingredient{Name: "flour", MeasurementUnit: "g"}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}
