package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("MONGOURI", "mongodb://localhost:27017")
	t.Setenv("DB", "surf-shop-test")
	t.Setenv("JWT_KEY", "hang ten dude!")
	t.Setenv("PORT", "3000")
	t.Setenv("SESSION_TTL", "2h")
	t.Setenv("MAPBOX_TOKEN", "pk.test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Server.Port)
	assert.Equal(t, "surf-shop-test", cfg.Mongo.Database)
	assert.Equal(t, 2*time.Hour, cfg.Auth.SessionTTL)
	assert.Equal(t, 15*time.Minute, cfg.Auth.TokenTTL)
	assert.Equal(t, "pk.test", cfg.Mapbox.Token)
	assert.Equal(t, "https://api.mapbox.com", cfg.Mapbox.BaseURL)
	assert.Equal(t, "local", cfg.Storage.Driver)
	assert.Equal(t, 465, cfg.Mail.Port)
}

func TestValidate(t *testing.T) {
	cfg := Config{Storage: StorageConfig{Driver: "s3"}}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MONGOURI")
	assert.Contains(t, err.Error(), "JWT_KEY")
	assert.Contains(t, err.Error(), "S3_BUCKET")

	cfg = Config{
		Mongo:   MongoConfig{URI: "mongodb://x", Database: "db"},
		Auth:    AuthConfig{JWTKey: "k"},
		Storage: StorageConfig{Driver: "local"},
	}
	assert.NoError(t, cfg.Validate())
}

func TestNewLoggerFallsBackToInfo(t *testing.T) {
	logger, err := NewLogger("chatty")
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(0))
	assert.False(t, logger.Core().Enabled(-1))
}
