package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/service"
	"github.com/foodgram/backend/internal/testhelpers"
)

func TestFavoriteLifecycle(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	relations := service.NewRelationService(db)
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, db)
	recipe := testhelpers.CreateTestRecipe(t, db, user.ID)

	fav, created, err := relations.AddFavorite(ctx, user.ID, recipe.ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotNil(t, fav)

	favorited, err := relations.IsFavorited(ctx, user.ID, recipe.ID)
	require.NoError(t, err)
	assert.True(t, favorited)

	// A second add is not an error but reports created=false
	_, created, err = relations.AddFavorite(ctx, user.ID, recipe.ID)
	require.NoError(t, err)
	assert.False(t, created)

	// Still exactly one edge
	var count int64
	require.NoError(t, db.Model(&models.Favorite{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	removed, err := relations.RemoveFavorite(ctx, user.ID, recipe.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = relations.RemoveFavorite(ctx, user.ID, recipe.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestCartLifecycle(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	relations := service.NewRelationService(db)
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, db)
	recipe := testhelpers.CreateTestRecipe(t, db, user.ID)

	_, created, err := relations.AddToCart(ctx, user.ID, recipe.ID)
	require.NoError(t, err)
	assert.True(t, created)

	inCart, err := relations.IsInCart(ctx, user.ID, recipe.ID)
	require.NoError(t, err)
	assert.True(t, inCart)

	_, created, err = relations.AddToCart(ctx, user.ID, recipe.ID)
	require.NoError(t, err)
	assert.False(t, created)

	removed, err := relations.RemoveFromCart(ctx, user.ID, recipe.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	inCart, err = relations.IsInCart(ctx, user.ID, recipe.ID)
	require.NoError(t, err)
	assert.False(t, inCart)
}

func TestFollowLifecycle(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	relations := service.NewRelationService(db)
	ctx := context.Background()

	follower := testhelpers.CreateTestUser(t, db)
	author := testhelpers.CreateTestUser(t, db)

	_, created, err := relations.Follow(ctx, follower.ID, author.ID)
	require.NoError(t, err)
	assert.True(t, created)

	subscribed, err := relations.IsSubscribed(ctx, follower.ID, author.ID)
	require.NoError(t, err)
	assert.True(t, subscribed)

	// Subscription is directed
	reverse, err := relations.IsSubscribed(ctx, author.ID, follower.ID)
	require.NoError(t, err)
	assert.False(t, reverse)

	_, created, err = relations.Follow(ctx, follower.ID, author.ID)
	require.NoError(t, err)
	assert.False(t, created)

	removed, err := relations.Unfollow(ctx, follower.ID, author.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = relations.Unfollow(ctx, follower.ID, author.ID)
	require.NoError(t, err)
	assert.False(t, removed)
}

func TestSelfFollowRejected(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	relations := service.NewRelationService(db)
	ctx := context.Background()

	user := testhelpers.CreateTestUser(t, db)

	_, _, err := relations.Follow(ctx, user.ID, user.ID)
	assert.ErrorIs(t, err, service.ErrSelfFollow)

	var count int64
	require.NoError(t, db.Model(&models.Follow{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSubscriptionsOrdering(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	relations := service.NewRelationService(db)
	ctx := context.Background()

	follower := testhelpers.CreateTestUser(t, db)
	first := testhelpers.CreateTestUser(t, db)
	second := testhelpers.CreateTestUser(t, db)

	_, _, err := relations.Follow(ctx, follower.ID, first.ID)
	require.NoError(t, err)
	_, _, err = relations.Follow(ctx, follower.ID, second.ID)
	require.NoError(t, err)

	authors, err := relations.Subscriptions(ctx, follower.ID)
	require.NoError(t, err)
	require.Len(t, authors, 2)

	ids := []string{authors[0].ID.String(), authors[1].ID.String()}
	assert.Contains(t, ids, first.ID.String())
	assert.Contains(t, ids, second.ID.String())

	// An unrelated user has no subscriptions
	other, err := relations.Subscriptions(ctx, first.ID)
	require.NoError(t, err)
	assert.Empty(t, other)
}
