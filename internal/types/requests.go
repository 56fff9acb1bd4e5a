package types

import "github.com/google/uuid"

// RegisterRequest represents the request body for user registration
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required,max=150"`
	FirstName string `json:"first_name" binding:"required,max=150"`
	LastName  string `json:"last_name" binding:"required,max=150"`
	Password  string `json:"password" binding:"required,min=8"`
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// IngredientEntry is one (ingredient, amount) line of a recipe's composition
type IngredientEntry struct {
	ID     uuid.UUID `json:"id" binding:"required"`
	Amount int       `json:"amount" binding:"required"`
}

// CreateRecipeRequest represents the request body for creating a recipe
type CreateRecipeRequest struct {
	Name        string            `json:"name" binding:"required,max=200"`
	Text        string            `json:"text" binding:"required"`
	CookingTime int               `json:"cooking_time" binding:"required"`
	Tags        []uuid.UUID       `json:"tags"`
	Ingredients []IngredientEntry `json:"ingredients"`
	Image       string            `json:"image" binding:"required"`
}

// UpdateRecipeRequest represents the request body for updating a recipe.
// Nil slices/pointers mean "leave unchanged"; supplied tag and ingredient
// sets replace the existing ones wholesale.
type UpdateRecipeRequest struct {
	Name        *string           `json:"name"`
	Text        *string           `json:"text"`
	CookingTime *int              `json:"cooking_time"`
	Tags        []uuid.UUID       `json:"tags"`
	Ingredients []IngredientEntry `json:"ingredients"`
	Image       *string           `json:"image"`
}

// CreateTagRequest represents the request body for creating a tag
type CreateTagRequest struct {
	Name  string `json:"name" binding:"required,max=200"`
	Color string `json:"color" binding:"required,len=7"`
	Slug  string `json:"slug" binding:"required,max=200"`
}

// CreateIngredientRequest represents the request body for creating an ingredient
type CreateIngredientRequest struct {
	Name            string `json:"name" binding:"required,max=200"`
	MeasurementUnit string `json:"measurement_unit" binding:"required,max=200"`
}
