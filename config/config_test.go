package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSecrets(t *testing.T, dir string, secrets map[string]string) {
	t.Helper()
	for name, value := range secrets {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(value+"\n"), 0o600))
	}
}

func TestLoadConfigFromSecrets(t *testing.T) {
	secretsDir := t.TempDir()
	writeSecrets(t, secretsDir, map[string]string{
		"server_port":    "8080",
		"server_host":    "0.0.0.0",
		"db_host":        "localhost",
		"db_port":        "5432",
		"db_user":        "postgres",
		"db_password":    "postgres",
		"db_name":        "foodgram",
		"db_ssl_mode":    "disable",
		"redis_host":     "localhost",
		"redis_port":     "6379",
		"redis_password": "redispass",
		"redis_url":      "redis://localhost:6379",
		"jwt_secret":     "test-secret",
	})

	t.Setenv("CI", "")
	t.Setenv("ENV", "test")
	t.Setenv("SECRETS_DIR", secretsDir)
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("SERVER_HOST", "0.0.0.0")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_NAME", "foodgram")
	t.Setenv("DB_SSL_MODE", "disable")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("REDIS_PORT", "6379")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("MEDIA_DIR", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "postgres", cfg.DBUser)
	assert.Equal(t, "postgres", cfg.DBPassword)
	assert.Equal(t, "foodgram", cfg.DBName)
	assert.Equal(t, "disable", cfg.DBSSLMode)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)
	assert.Equal(t, "media", cfg.MediaDir)
}

func TestLoadConfigMediaDirOverride(t *testing.T) {
	secretsDir := t.TempDir()
	writeSecrets(t, secretsDir, map[string]string{
		"server_port":    "8080",
		"server_host":    "0.0.0.0",
		"db_host":        "localhost",
		"db_port":        "5432",
		"db_user":        "postgres",
		"db_password":    "postgres",
		"db_name":        "foodgram",
		"db_ssl_mode":    "disable",
		"redis_host":     "localhost",
		"redis_port":     "6379",
		"redis_password": "redispass",
		"redis_url":      "redis://localhost:6379",
		"jwt_secret":     "test-secret",
	})

	t.Setenv("CI", "")
	t.Setenv("ENV", "test")
	t.Setenv("SECRETS_DIR", secretsDir)
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("SERVER_HOST", "0.0.0.0")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_NAME", "foodgram")
	t.Setenv("DB_SSL_MODE", "disable")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("REDIS_PORT", "6379")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("MEDIA_DIR", "/var/lib/foodgram/media")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/foodgram/media", cfg.MediaDir)
}

func TestLoadConfigMissingSecret(t *testing.T) {
	secretsDir := t.TempDir()

	t.Setenv("CI", "")
	t.Setenv("ENV", "test")
	t.Setenv("SECRETS_DIR", secretsDir)

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "production")
	assert.Equal(t, Production, GetEnvironment())

	t.Setenv("ENV", "")
	assert.Equal(t, Development, GetEnvironment())

	t.Setenv("CI", "true")
	assert.Equal(t, CI, GetEnvironment())
}
