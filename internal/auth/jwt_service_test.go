package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJWTService_GenerateAndValidate(t *testing.T) {
	service := NewJWTService([]byte("test-secret"))

	token, err := service.GenerateToken("alice", "USER")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.Equal(t, "USER", claims.Role)
	assert.WithinDuration(t, time.Now().Add(TokenExpiry), claims.ExpiresAt.Time, 5*time.Second)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	secret := []byte("test-secret")
	service := NewJWTService(secret)

	// Sign a token that expired a minute ago with the same key.
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		Role: "USER",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-31 * time.Minute)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	tokenString, err := expired.SignedString(secret)
	require.NoError(t, err)

	_, err = service.ValidateToken(tokenString)
	assert.Error(t, err)
}

func TestJWTService_WrongKey(t *testing.T) {
	token, err := NewJWTService([]byte("one-secret")).GenerateToken("alice", "USER")
	require.NoError(t, err)

	_, err = NewJWTService([]byte("other-secret")).ValidateToken(token)
	assert.Error(t, err)
}

func TestJWTService_MalformedToken(t *testing.T) {
	service := NewJWTService([]byte("test-secret"))

	for _, token := range []string{"", "garbage", "a.b.c"} {
		_, err := service.ValidateToken(token)
		assert.Error(t, err)
	}
}

func TestJWTService_UnexpectedSigningMethod(t *testing.T) {
	service := NewJWTService([]byte("test-secret"))

	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	})
	tokenString, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = service.ValidateToken(tokenString)
	assert.Error(t, err)
}
