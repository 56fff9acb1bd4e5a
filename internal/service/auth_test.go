package service_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgram/backend/internal/service"
	"github.com/foodgram/backend/internal/testhelpers"
	"github.com/foodgram/backend/internal/types"
)

func newAuthService(t *testing.T) *service.AuthService {
	db := testhelpers.SetupTestDB(t)
	return service.NewAuthService(db, "test-secret")
}

func TestRegisterAndLogin(t *testing.T) {
	auth := newAuthService(t)

	token, err := auth.Register(types.RegisterRequest{
		Email:     "cook@example.com",
		Username:  "cook",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Password:  "supersecret",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := auth.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "cook", claims.Username)
	assert.False(t, claims.IsAdmin)

	loginToken, err := auth.Login("cook@example.com", "supersecret")
	require.NoError(t, err)
	assert.NotEmpty(t, loginToken)

	user, err := auth.GetUser(claims.UserID)
	require.NoError(t, err)
	assert.Equal(t, "cook@example.com", user.Email)
}

func TestRegisterDuplicate(t *testing.T) {
	auth := newAuthService(t)

	req := types.RegisterRequest{
		Email:     "cook@example.com",
		Username:  "cook",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Password:  "supersecret",
	}
	_, err := auth.Register(req)
	require.NoError(t, err)

	_, err = auth.Register(req)
	assert.Error(t, err)

	// Same username under a different email is still a conflict
	req.Email = "other@example.com"
	_, err = auth.Register(req)
	assert.Error(t, err)
}

func TestLoginWrongPassword(t *testing.T) {
	auth := newAuthService(t)

	_, err := auth.Register(types.RegisterRequest{
		Email:     "cook@example.com",
		Username:  "cook",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Password:  "supersecret",
	})
	require.NoError(t, err)

	_, err = auth.Login("cook@example.com", "wrong")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)

	_, err = auth.Login("nobody@example.com", "supersecret")
	assert.ErrorIs(t, err, service.ErrInvalidCredentials)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	auth := newAuthService(t)

	_, err := auth.ValidateToken("not-a-token")
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}

func TestValidateTokenWrongSecret(t *testing.T) {
	db := testhelpers.SetupTestDB(t)
	auth := service.NewAuthService(db, "secret-a")
	other := service.NewAuthService(db, "secret-b")

	token, err := auth.Register(types.RegisterRequest{
		Email:     "cook@example.com",
		Username:  "cook",
		FirstName: "Ada",
		LastName:  "Lovelace",
		Password:  "supersecret",
	})
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	assert.ErrorIs(t, err, service.ErrInvalidToken)
}
