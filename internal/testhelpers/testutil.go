package testhelpers

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/types"
)

// SetupTestDB opens an in-memory SQLite database with the full schema.
// TranslateError keeps unique-violation handling identical to PostgreSQL.
func SetupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to open in-memory database: %v", err)
	}

	if err := migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Follow{},
		&models.Tag{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.IngredientAmount{},
		&models.Favorite{},
		&models.Cart{},
	)
}

// CreateTestUser creates a user with a bcrypt-hashed known password.
// The email and username are derived from the id so multiple users per
// test never collide.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	id := uuid.New()
	hash, err := bcrypt.GenerateFromPassword([]byte("testpassword123"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		ID:           id,
		Email:        fmt.Sprintf("user+%s@example.com", id),
		Username:     fmt.Sprintf("user_%s", id),
		FirstName:    "Test",
		LastName:     "User",
		PasswordHash: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestTag creates a tag with a unique name, color and slug.
func CreateTestTag(t *testing.T, db *gorm.DB, name string) *models.Tag {
	tag := &models.Tag{
		Name:  name,
		Color: "#" + uuid.New().String()[:6],
		Slug:  name,
	}
	if err := db.Create(tag).Error; err != nil {
		t.Fatalf("failed to create test tag: %v", err)
	}
	return tag
}

// CreateTestIngredient creates an ingredient reference row.
func CreateTestIngredient(t *testing.T, db *gorm.DB, name, unit string) *models.Ingredient {
	ingredient := &models.Ingredient{
		Name:            name,
		MeasurementUnit: unit,
	}
	if err := db.Create(ingredient).Error; err != nil {
		t.Fatalf("failed to create test ingredient: %v", err)
	}
	return ingredient
}

// CreateTestRecipe creates a minimal recipe owned by authorID with one
// tag and one ingredient line.
func CreateTestRecipe(t *testing.T, db *gorm.DB, authorID uuid.UUID) *models.Recipe {
	tag := CreateTestTag(t, db, fmt.Sprintf("tag-%s", uuid.New()))
	ingredient := CreateTestIngredient(t, db, fmt.Sprintf("ingredient-%s", uuid.New()), "g")

	recipe := &models.Recipe{
		AuthorID:    authorID,
		Name:        "Test Recipe",
		Text:        "A test recipe",
		CookingTime: 10,
		Tags:        []models.Tag{*tag},
	}
	if err := db.Create(recipe).Error; err != nil {
		t.Fatalf("failed to create test recipe: %v", err)
	}

	line := &models.IngredientAmount{
		RecipeID:     recipe.ID,
		IngredientID: ingredient.ID,
		Amount:       100,
	}
	if err := db.Create(line).Error; err != nil {
		t.Fatalf("failed to create test ingredient amount: %v", err)
	}

	return recipe
}

// MockTokenValidator is a stub token validator for middleware tests.
type MockTokenValidator struct {
	Claims *types.TokenClaims
	Error  error
}

func (m *MockTokenValidator) ValidateToken(token string) (*types.TokenClaims, error) {
	if m.Error != nil {
		return nil, m.Error
	}
	return m.Claims, nil
}
