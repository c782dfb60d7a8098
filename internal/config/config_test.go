package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_JWTSecretRequiredOutsideDevelopment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_JWT_SECRET", "")

	_, err := Load()
	require.Error(t, err)
	require.Contains(t, err.Error(), "AUTH_JWT_SECRET")
}

func TestLoad_DevSecretFallbackInDevelopment(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("AUTH_JWT_SECRET", "")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "dev-secret", cfg.Auth.JWTSecret)
}

func TestLoad_ExplicitSecretWins(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("AUTH_JWT_SECRET", "prod-signing-key")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "prod-signing-key", cfg.Auth.JWTSecret)
}
