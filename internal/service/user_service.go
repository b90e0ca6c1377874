package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"bankcards/internal/cache"
	apperrors "bankcards/internal/errors"
	"bankcards/internal/model"
	"bankcards/internal/repository"
)

const (
	bcryptCost   = 10
	userCacheTTL = 5 * time.Minute
)

// UserService handles user lifecycle operations.
type UserService interface {
	Register(ctx context.Context, user *model.User, password string) error
	Create(ctx context.Context, user *model.User, password string) error
	GetUser(ctx context.Context, id uint) (*model.User, error)
	ListUsers(ctx context.Context) ([]model.User, error)
	ChangePassword(ctx context.Context, userID uint, password string) error
	Deactivate(ctx context.Context, userID uint) error
}

type userService struct {
	userRepo    repository.UserRepository
	cardService CardService
	cache       *cache.Client
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, cardService CardService, cache *cache.Client) UserService {
	return &userService{
		userRepo:    userRepo,
		cardService: cardService,
		cache:       cache,
	}
}

func (s *userService) cacheKey(id uint) string {
	return fmt.Sprintf("user:%d", id)
}

// Register creates a self-registered user. The very first registered user
// becomes the administrator; everyone after that is a regular user.
func (s *userService) Register(ctx context.Context, user *model.User, password string) error {
	hasAdmin, err := s.userRepo.HasAdmin(ctx)
	if err != nil {
		return fmt.Errorf("check admin existence: %w", err)
	}
	if hasAdmin {
		user.Role = model.RoleUser
	} else {
		user.Role = model.RoleAdmin
	}
	return s.insert(ctx, user, password)
}

// Create creates a user with the role set by an administrator.
func (s *userService) Create(ctx context.Context, user *model.User, password string) error {
	if user.Role == "" {
		user.Role = model.RoleUser
	}
	return s.insert(ctx, user, password)
}

func (s *userService) insert(ctx context.Context, user *model.User, password string) error {
	if existing, err := s.userRepo.FindByLogin(ctx, user.Login); err == nil && existing != nil {
		return apperrors.ErrUserAlreadyExists
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("check login: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	user.Status = model.UserStatusActive

	if err := s.userRepo.Create(ctx, user); err != nil {
		if repository.IsDuplicateEntry(err) {
			return apperrors.ErrUserAlreadyExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// GetUser retrieves a user by ID with caching.
func (s *userService) GetUser(ctx context.Context, id uint) (*model.User, error) {
	if data := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached model.User
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if payload, err := json.Marshal(user); err == nil {
		s.cache.Set(ctx, s.cacheKey(id), payload, userCacheTTL)
	}
	return user, nil
}

// ListUsers lists all users.
func (s *userService) ListUsers(ctx context.Context) ([]model.User, error) {
	return s.userRepo.List(ctx)
}

// ChangePassword replaces a user's password hash.
func (s *userService) ChangePassword(ctx context.Context, userID uint, password string) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	s.cache.Delete(ctx, s.cacheKey(userID))
	return nil
}

// Deactivate marks a user deleted and blocks all of their cards.
func (s *userService) Deactivate(ctx context.Context, userID uint) error {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	user.Status = model.UserStatusDeleted
	if err := s.userRepo.Update(ctx, user); err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if err := s.cardService.BlockAllForOwner(ctx, userID); err != nil {
		return err
	}
	s.cache.Delete(ctx, s.cacheKey(userID))
	return nil
}
