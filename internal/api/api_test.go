package api_test

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/foodgram/backend/config"
	"github.com/foodgram/backend/internal/api"
	"github.com/foodgram/backend/internal/models"
	"github.com/foodgram/backend/internal/testhelpers"
)

type apiFixture struct {
	router *gin.Engine
	db     *gorm.DB
}

func setupAPI(t *testing.T) apiFixture {
	gin.SetMode(gin.TestMode)
	db := testhelpers.SetupTestDB(t)

	cfg := &config.Config{
		JWTSecret: "test-secret",
		MediaDir:  t.TempDir(),
	}

	router := gin.New()
	api.SetupAPI(router, db, cfg, nil, nil)
	return apiFixture{router: router, db: db}
}

func (f apiFixture) do(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

// register creates an account through the API and returns its token
func (f apiFixture) register(t *testing.T, username string) string {
	t.Helper()
	w := f.do(t, "POST", "/api/v1/auth/register", "", gin.H{
		"email":      username + "@example.com",
		"username":   username,
		"first_name": "Test",
		"last_name":  "User",
		"password":   "supersecret",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

// registerAdmin registers an account, promotes it and logs in again so
// the returned token carries the admin claim.
func (f apiFixture) registerAdmin(t *testing.T, username string) string {
	t.Helper()
	f.register(t, username)
	err := f.db.Model(&models.User{}).Where("username = ?", username).Update("is_admin", true).Error
	require.NoError(t, err)

	w := f.do(t, "POST", "/api/v1/auth/login", "", gin.H{
		"email":    username + "@example.com",
		"password": "supersecret",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Token
}

func (f apiFixture) decode(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}

func testImage() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte{0x89, 0x50, 0x4E, 0x47})
}
