package service_test

import (
	"context"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/foodgram/backend/internal/service"
)

func TestStoreBase64DataURI(t *testing.T) {
	mediaDir := t.TempDir()
	images := service.NewImageService(nil, mediaDir)

	payload := []byte{0x89, 0x50, 0x4E, 0x47}
	uri := "data:image/png;base64," + base64.StdEncoding.EncodeToString(payload)

	url, err := images.StoreBase64(context.Background(), uri)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".png"))

	matches, err := filepath.Glob(filepath.Join(mediaDir, "recipes", "*.png"))
	require.NoError(t, err)
	require.Len(t, matches, 1)

	written, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	assert.Equal(t, payload, written)
}

func TestStoreBase64BarePayload(t *testing.T) {
	mediaDir := t.TempDir()
	images := service.NewImageService(nil, mediaDir)

	url, err := images.StoreBase64(context.Background(), base64.StdEncoding.EncodeToString([]byte("img")))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".png"))
}

func TestStoreBase64Invalid(t *testing.T) {
	images := service.NewImageService(nil, t.TempDir())

	var validationErr *service.ValidationError
	_, err := images.StoreBase64(context.Background(), "data:image/png;base64")
	require.ErrorAs(t, err, &validationErr)

	_, err = images.StoreBase64(context.Background(), "not base64 at all!!!")
	require.ErrorAs(t, err, &validationErr)
}
