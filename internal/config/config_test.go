package config

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
)

func validSecrets(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", base64.StdEncoding.EncodeToString([]byte("jwt-signing-secret")))
	t.Setenv("CARD_ENCRYPTION_KEY", base64.StdEncoding.EncodeToString(make([]byte, 32)))
	t.Setenv("CARD_INDEX_SECRET", base64.StdEncoding.EncodeToString([]byte("index-secret")))
	t.Setenv("SERVER_PORT", "")
}

func TestLoad(t *testing.T) {
	validSecrets(t)

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Len(t, cfg.CardCipherKey, 32)
	assert.Equal(t, []byte("jwt-signing-secret"), cfg.JWTKey)
	assert.Equal(t, "8080", cfg.ServerPort)
}

func TestLoad_MissingSecret(t *testing.T) {
	validSecrets(t)
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET is required")
}

func TestLoad_MalformedSecret(t *testing.T) {
	validSecrets(t)
	t.Setenv("CARD_INDEX_SECRET", "not*base64")

	_, err := Load()
	assert.ErrorContains(t, err, "CARD_INDEX_SECRET is not valid base64")
}

func TestLoad_WrongKeySize(t *testing.T) {
	validSecrets(t)
	t.Setenv("CARD_ENCRYPTION_KEY", base64.StdEncoding.EncodeToString(make([]byte, 16)))

	_, err := Load()
	assert.ErrorContains(t, err, "must decode to 32 bytes")
}
