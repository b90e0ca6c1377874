package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// TokenExpiry is the fixed lifetime of an issued token.
const TokenExpiry = 30 * time.Minute

// Claims represents JWT claims. The subject is the user's login.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies signed authentication tokens. It holds no
// state beyond the signing key; verification is read-only and side-effect-free.
type JWTService struct {
	secret []byte
}

// NewJWTService creates a new JWT service with the given signing key.
func NewJWTService(secret []byte) *JWTService {
	return &JWTService{secret: secret}
}

// GenerateToken issues a token for login, valid for TokenExpiry from now.
func (s *JWTService) GenerateToken(login, role string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   login,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenExpiry)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken verifies a token and returns its claims. It fails closed: any
// parse error, signature mismatch, or expiry yields an error, never a panic.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
