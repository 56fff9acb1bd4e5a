package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/foodgram/backend/internal/models"
)

// RelationService tracks the per-user edges: favorites, cart entries and
// author subscriptions. Creation is check-then-insert inside a
// transaction; a lost race hits the composite unique index and is
// translated into the same created=false result.
type RelationService struct {
	db *gorm.DB
}

func NewRelationService(db *gorm.DB) *RelationService {
	return &RelationService{db: db}
}

// AddFavorite records a favorite edge. Returns created=false when the
// edge already exists.
func (s *RelationService) AddFavorite(ctx context.Context, userID, recipeID uuid.UUID) (*models.Favorite, bool, error) {
	fav := models.Favorite{AuthorID: userID, RecipeID: recipeID}
	created, err := s.addEdge(ctx, &fav, "author_id = ? AND recipe_id = ?", userID, recipeID)
	if err != nil {
		return nil, false, err
	}
	return &fav, created, nil
}

// RemoveFavorite deletes the favorite edge. Returns false when no edge existed.
func (s *RelationService) RemoveFavorite(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	result := s.db.WithContext(ctx).
		Where("author_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.Favorite{})
	return result.RowsAffected > 0, result.Error
}

// IsFavorited reports whether the user has favorited the recipe
func (s *RelationService) IsFavorited(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Favorite{}).
		Where("author_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	return count > 0, err
}

// AddToCart records a cart edge. Returns created=false when the edge
// already exists.
func (s *RelationService) AddToCart(ctx context.Context, userID, recipeID uuid.UUID) (*models.Cart, bool, error) {
	cart := models.Cart{AuthorID: userID, RecipeID: recipeID}
	created, err := s.addEdge(ctx, &cart, "author_id = ? AND recipe_id = ?", userID, recipeID)
	if err != nil {
		return nil, false, err
	}
	return &cart, created, nil
}

// RemoveFromCart deletes the cart edge. Returns false when no edge existed.
func (s *RelationService) RemoveFromCart(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	result := s.db.WithContext(ctx).
		Where("author_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.Cart{})
	return result.RowsAffected > 0, result.Error
}

// IsInCart reports whether the recipe is in the user's shopping cart
func (s *RelationService) IsInCart(ctx context.Context, userID, recipeID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Cart{}).
		Where("author_id = ? AND recipe_id = ?", userID, recipeID).
		Count(&count).Error
	return count > 0, err
}

// Follow records a subscription edge. Self-follow is rejected before any
// persistence; a duplicate returns created=false.
func (s *RelationService) Follow(ctx context.Context, followerID, authorID uuid.UUID) (*models.Follow, bool, error) {
	if followerID == authorID {
		return nil, false, ErrSelfFollow
	}
	follow := models.Follow{FollowerID: followerID, AuthorID: authorID}
	created, err := s.addEdge(ctx, &follow, "follower_id = ? AND author_id = ?", followerID, authorID)
	if err != nil {
		return nil, false, err
	}
	return &follow, created, nil
}

// Unfollow deletes the subscription edge. Returns false when no edge existed.
func (s *RelationService) Unfollow(ctx context.Context, followerID, authorID uuid.UUID) (bool, error) {
	result := s.db.WithContext(ctx).
		Where("follower_id = ? AND author_id = ?", followerID, authorID).
		Delete(&models.Follow{})
	return result.RowsAffected > 0, result.Error
}

// IsSubscribed reports whether follower is subscribed to author
func (s *RelationService) IsSubscribed(ctx context.Context, followerID, authorID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Follow{}).
		Where("follower_id = ? AND author_id = ?", followerID, authorID).
		Count(&count).Error
	return count > 0, err
}

// Subscriptions lists the users the follower is subscribed to, newest
// subscription first.
func (s *RelationService) Subscriptions(ctx context.Context, followerID uuid.UUID) ([]models.User, error) {
	var authors []models.User
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Joins("JOIN follows ON follows.author_id = users.id").
		Where("follows.follower_id = ?", followerID).
		Order("follows.created_at DESC").
		Find(&authors).Error
	if err != nil {
		return nil, err
	}
	return authors, nil
}

func (s *RelationService) addEdge(ctx context.Context, edge interface{}, query string, args ...interface{}) (bool, error) {
	created := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(edge).Where(query, args...).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}
		if err := tx.Create(edge).Error; err != nil {
			// concurrent create for the same pair: the unique index wins
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return nil
			}
			return err
		}
		created = true
		return nil
	})
	return created, err
}
