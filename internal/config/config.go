package config

import (
	"crypto/aes"
	"encoding/base64"
	"fmt"
	"os"
	"strconv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string
	MySQLDSN   string
	RedisAddr  string
	RedisDB    int
	RedisPass  string
	// JWTKey signs authentication tokens. Decoded from base64.
	JWTKey []byte
	// CardCipherKey is the AES-256 key for card number encryption. Decoded from base64.
	CardCipherKey []byte
	// CardIndexKey keys the deterministic lookup index over card numbers. Decoded from base64.
	CardIndexKey []byte
}

// Load builds Config from environment. The three secrets are mandatory and must
// be valid base64; a missing or malformed secret is a startup error.
func Load() (*Config, error) {
	jwtKey, err := requireBase64("JWT_SECRET")
	if err != nil {
		return nil, err
	}
	cipherKey, err := requireBase64("CARD_ENCRYPTION_KEY")
	if err != nil {
		return nil, err
	}
	if len(cipherKey) != 2*aes.BlockSize {
		return nil, fmt.Errorf("CARD_ENCRYPTION_KEY must decode to 32 bytes, got %d", len(cipherKey))
	}
	indexKey, err := requireBase64("CARD_INDEX_SECRET")
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:    getEnv("SERVER_PORT", "8080"),
		MySQLDSN:      getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/bankcards?charset=utf8mb4&parseTime=True&loc=Local"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		RedisPass:     os.Getenv("REDIS_PASSWORD"),
		JWTKey:        jwtKey,
		CardCipherKey: cipherKey,
		CardIndexKey:  indexKey,
	}, nil
}

func requireBase64(key string) ([]byte, error) {
	v := os.Getenv(key)
	if v == "" {
		return nil, fmt.Errorf("%s is required", key)
	}
	decoded, err := base64.StdEncoding.DecodeString(v)
	if err != nil {
		return nil, fmt.Errorf("%s is not valid base64: %w", key, err)
	}
	return decoded, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
