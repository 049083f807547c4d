package utils_test

import (
	"testing"

	"github.com/fidelease/fidelease-backend/internal/config"
	"github.com/fidelease/fidelease-backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTRoundTrip(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "test-secret", ExpiresIn: 3600}}

	token, err := utils.GenerateJWT("64f0c8aa2f9b8c0001a1b2c3", "alice", true, cfg)
	require.NoError(t, err)

	claims, err := utils.ValidateJWT(token, cfg)
	require.NoError(t, err)
	assert.Equal(t, "64f0c8aa2f9b8c0001a1b2c3", claims["sub"])
	assert.Equal(t, "alice", claims["username"])
	assert.Equal(t, true, claims["staff"])
}

func TestValidateJWTWrongSecret(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "test-secret", ExpiresIn: 3600}}
	token, err := utils.GenerateJWT("64f0c8aa2f9b8c0001a1b2c3", "alice", false, cfg)
	require.NoError(t, err)

	other := &config.Config{JWT: config.JWTConfig{Secret: "different", ExpiresIn: 3600}}
	_, err = utils.ValidateJWT(token, other)
	assert.Error(t, err)
}

func TestValidateJWTExpired(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "test-secret", ExpiresIn: -1}}
	token, err := utils.GenerateJWT("64f0c8aa2f9b8c0001a1b2c3", "alice", false, cfg)
	require.NoError(t, err)

	_, err = utils.ValidateJWT(token, cfg)
	assert.Error(t, err)
}

func TestValidateJWTGarbage(t *testing.T) {
	cfg := &config.Config{JWT: config.JWTConfig{Secret: "test-secret", ExpiresIn: 3600}}
	_, err := utils.ValidateJWT("not.a.token", cfg)
	assert.Error(t, err)
}
