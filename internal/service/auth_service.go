package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bankcards/internal/auth"
	apperrors "bankcards/internal/errors"
	"bankcards/internal/repository"
)

// AuthService validates credentials and issues authentication tokens.
type AuthService interface {
	Authenticate(ctx context.Context, login, password string) (string, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
	}
}

// Authenticate verifies the credential pair and returns a signed token.
func (s *authService) Authenticate(ctx context.Context, login, password string) (string, error) {
	user, err := s.userRepo.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", apperrors.ErrUserNotFound
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	// bcrypt compares in constant time.
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", apperrors.ErrIncorrectPassword
	}

	token, err := s.jwtService.GenerateToken(user.Login, string(user.Role))
	if err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	return token, nil
}
