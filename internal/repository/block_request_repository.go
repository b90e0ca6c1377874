package repository

import (
	"context"

	"gorm.io/gorm"

	"bankcards/internal/model"
)

// BlockRequestRepository defines block-request persistence operations.
type BlockRequestRepository interface {
	Create(ctx context.Context, request *model.BlockRequest) error
	Update(ctx context.Context, request *model.BlockRequest) error
	FindByID(ctx context.Context, id uint) (*model.BlockRequest, error)
	FindByUser(ctx context.Context, userID uint) ([]model.BlockRequest, error)
}

type blockRequestRepository struct {
	db *gorm.DB
}

// NewBlockRequestRepository creates a new block-request repository.
func NewBlockRequestRepository(db *gorm.DB) BlockRequestRepository {
	return &blockRequestRepository{db: db}
}

// Create inserts a new block request. The (user_id, card_id) unique constraint
// rejects duplicates; callers detect that with IsDuplicateEntry.
func (r *blockRequestRepository) Create(ctx context.Context, request *model.BlockRequest) error {
	return r.db.WithContext(ctx).Create(request).Error
}

// Update updates an existing block request.
func (r *blockRequestRepository) Update(ctx context.Context, request *model.BlockRequest) error {
	return r.db.WithContext(ctx).Save(request).Error
}

// FindByID finds a block request by ID.
func (r *blockRequestRepository) FindByID(ctx context.Context, id uint) (*model.BlockRequest, error) {
	var request model.BlockRequest
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&request).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

// FindByUser returns all block requests submitted by a user, newest first.
func (r *blockRequestRepository) FindByUser(ctx context.Context, userID uint) ([]model.BlockRequest, error) {
	var requests []model.BlockRequest
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}
