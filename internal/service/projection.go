package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/types"
)

// ProjectionService builds outbound representations decorated with the
// viewer's relationship flags. The viewer is passed explicitly; a nil
// viewer is anonymous and always projects false flags.
type ProjectionService struct {
	relations *RelationService
	recipes   *RecipeService
}

func NewProjectionService(relations *RelationService, recipes *RecipeService) *ProjectionService {
	return &ProjectionService{
		relations: relations,
		recipes:   recipes,
	}
}

// UserView projects a user with the viewer's is_subscribed flag
func (s *ProjectionService) UserView(ctx context.Context, user *models.User, viewer *uuid.UUID) (types.UserResponse, error) {
	view := types.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
	}
	if viewer != nil {
		subscribed, err := s.relations.IsSubscribed(ctx, *viewer, user.ID)
		if err != nil {
			return types.UserResponse{}, err
		}
		view.IsSubscribed = subscribed
	}
	return view, nil
}

// RecipeView projects a recipe with its tags, author and composition,
// plus the viewer's favorite/cart flags.
func (s *ProjectionService) RecipeView(ctx context.Context, recipe *models.Recipe, viewer *uuid.UUID) (types.RecipeResponse, error) {
	author, err := s.UserView(ctx, &recipe.Author, viewer)
	if err != nil {
		return types.RecipeResponse{}, err
	}

	view := types.RecipeResponse{
		ID:          recipe.ID,
		Author:      author,
		Name:        recipe.Name,
		Image:       recipe.ImageURL,
		Text:        recipe.Text,
		CookingTime: recipe.CookingTime,
		Tags:        make([]types.TagResponse, 0, len(recipe.Tags)),
		Ingredients: make([]types.IngredientAmountResponse, 0, len(recipe.Ingredients)),
	}
	for _, tag := range recipe.Tags {
		view.Tags = append(view.Tags, types.TagResponse{
			ID:    tag.ID,
			Name:  tag.Name,
			Color: tag.Color,
			Slug:  tag.Slug,
		})
	}
	for _, row := range recipe.Ingredients {
		view.Ingredients = append(view.Ingredients, types.IngredientAmountResponse{
			ID:              row.IngredientID,
			Name:            row.Ingredient.Name,
			MeasurementUnit: row.Ingredient.MeasurementUnit,
			Amount:          row.Amount,
		})
	}

	if viewer != nil {
		favorited, err := s.relations.IsFavorited(ctx, *viewer, recipe.ID)
		if err != nil {
			return types.RecipeResponse{}, err
		}
		inCart, err := s.relations.IsInCart(ctx, *viewer, recipe.ID)
		if err != nil {
			return types.RecipeResponse{}, err
		}
		view.IsFavorited = favorited
		view.IsInShoppingCart = inCart
	}
	return view, nil
}

// RecipeViews projects a list of recipes for the same viewer
func (s *ProjectionService) RecipeViews(ctx context.Context, recipes []models.Recipe, viewer *uuid.UUID) ([]types.RecipeResponse, error) {
	views := make([]types.RecipeResponse, 0, len(recipes))
	for i := range recipes {
		view, err := s.RecipeView(ctx, &recipes[i], viewer)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

// SubscriptionView projects an author with a recipe preview and total
// count. recipesLimit <= 0 means no truncation; truncation keeps the
// newest-first ordering and takes the first N.
func (s *ProjectionService) SubscriptionView(ctx context.Context, author *models.User, viewer *uuid.UUID, recipesLimit int) (types.SubscriptionResponse, error) {
	user, err := s.UserView(ctx, author, viewer)
	if err != nil {
		return types.SubscriptionResponse{}, err
	}

	recipes, err := s.recipes.ListByAuthor(ctx, author.ID, recipesLimit)
	if err != nil {
		return types.SubscriptionResponse{}, err
	}
	count, err := s.recipes.CountByAuthor(ctx, author.ID)
	if err != nil {
		return types.SubscriptionResponse{}, err
	}

	view := types.SubscriptionResponse{
		UserResponse: user,
		Recipes:      make([]types.ShortRecipeResponse, 0, len(recipes)),
		RecipesCount: count,
	}
	for i := range recipes {
		view.Recipes = append(view.Recipes, ShortRecipeView(&recipes[i]))
	}
	return view, nil
}

// ShortRecipeView is the compact recipe projection used in previews and
// edge-creation responses
func ShortRecipeView(recipe *models.Recipe) types.ShortRecipeResponse {
	return types.ShortRecipeResponse{
		ID:          recipe.ID,
		Name:        recipe.Name,
		Image:       recipe.ImageURL,
		CookingTime: recipe.CookingTime,
	}
}
