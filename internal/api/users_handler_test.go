package api_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgram/backend/internal/types"
)

func (f apiFixture) me(t *testing.T, token string) types.UserResponse {
	t.Helper()
	w := f.do(t, "GET", "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var user types.UserResponse
	f.decode(t, w, &user)
	return user
}

func TestGetUserProfile(t *testing.T) {
	f := setupAPI(t)
	viewer := f.register(t, "viewer")
	author := f.register(t, "author")
	authorID := f.me(t, author).ID

	// Anonymous view
	w := f.do(t, "GET", "/api/v1/users/"+authorID.String(), "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"author"`)
	assert.Contains(t, w.Body.String(), `"is_subscribed":false`)

	// Authenticated viewer, not yet subscribed
	w = f.do(t, "GET", "/api/v1/users/"+authorID.String(), viewer, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"is_subscribed":false`)

	w = f.do(t, "GET", "/api/v1/users/"+uuid.New().String(), "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubscribeFlow(t *testing.T) {
	f := setupAPI(t)
	viewer := f.register(t, "viewer")
	author := f.register(t, "author")
	authorID := f.me(t, author).ID
	createRecipe(t, f, author, "Pancakes")

	path := "/api/v1/users/" + authorID.String() + "/subscribe"

	w := f.do(t, "POST", path, viewer, nil)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var view types.SubscriptionResponse
	f.decode(t, w, &view)
	assert.Equal(t, "author", view.Username)
	assert.True(t, view.IsSubscribed)
	assert.Len(t, view.Recipes, 1)
	assert.EqualValues(t, 1, view.RecipesCount)

	// Duplicate subscribe is a conflict
	w = f.do(t, "POST", path, viewer, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.do(t, "DELETE", path, viewer, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	// Unsubscribe without an edge is a conflict
	w = f.do(t, "DELETE", path, viewer, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubscribeToSelf(t *testing.T) {
	f := setupAPI(t)
	token := f.register(t, "cook")
	id := f.me(t, token).ID

	w := f.do(t, "POST", "/api/v1/users/"+id.String()+"/subscribe", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSubscribeUnknownAuthor(t *testing.T) {
	f := setupAPI(t)
	token := f.register(t, "cook")

	w := f.do(t, "POST", "/api/v1/users/"+uuid.New().String()+"/subscribe", token, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSubscriptionsListing(t *testing.T) {
	f := setupAPI(t)
	viewer := f.register(t, "viewer")
	author := f.register(t, "author")
	authorID := f.me(t, author).ID

	for i := 0; i < 3; i++ {
		createRecipe(t, f, author, "Recipe"+string(rune('A'+i)))
	}

	w := f.do(t, "POST", "/api/v1/users/"+authorID.String()+"/subscribe", viewer, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = f.do(t, "GET", "/api/v1/subscriptions?recipes_limit=2", viewer, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Results []types.SubscriptionResponse `json:"results"`
	}
	f.decode(t, w, &resp)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "author", resp.Results[0].Username)
	assert.Len(t, resp.Results[0].Recipes, 2)
	assert.EqualValues(t, 3, resp.Results[0].RecipesCount)
}

func TestSubscriptionsRequireAuth(t *testing.T) {
	f := setupAPI(t)

	w := f.do(t, "GET", "/api/v1/subscriptions", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
