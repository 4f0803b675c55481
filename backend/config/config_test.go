package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()

	require.Error(t, err)
	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "JWT_SECRET", cfgErr.Key)
}

func TestLoadConfigWithSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "testsecret")

	cfg, err := LoadConfig()

	require.NoError(t, err)
	assert.Equal(t, "testsecret", cfg.JWTSecret)
	assert.NotEmpty(t, cfg.DBHost)
	assert.NotEmpty(t, cfg.ServerPort)
}
