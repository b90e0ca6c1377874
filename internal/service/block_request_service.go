package service

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"bankcards/internal/cardcrypto"
	apperrors "bankcards/internal/errors"
	"bankcards/internal/model"
	"bankcards/internal/repository"
)

// BlockRequestService manages user-submitted requests to block a card.
type BlockRequestService interface {
	Create(ctx context.Context, user *model.User, cardID uint) error
	ListForUser(ctx context.Context, userID uint) ([]model.BlockRequest, error)
	SetStatus(ctx context.Context, requestID uint, status model.BlockRequestStatus) error
}

type blockRequestService struct {
	blockRepo repository.BlockRequestRepository
	cardRepo  repository.CardRepository
	cipher    *cardcrypto.Cipher
}

// NewBlockRequestService creates a new block-request service.
func NewBlockRequestService(blockRepo repository.BlockRequestRepository, cardRepo repository.CardRepository, cipher *cardcrypto.Cipher) BlockRequestService {
	return &blockRequestService{
		blockRepo: blockRepo,
		cardRepo:  cardRepo,
		cipher:    cipher,
	}
}

// Create records a block request for one of the user's cards. The stored
// user name and masked number are snapshots taken now; they are not re-derived
// from live records later. A second request for the same (user, card) pair is
// rejected by the unique constraint and reported as ErrBlockRequestExists.
func (s *blockRequestService) Create(ctx context.Context, user *model.User, cardID uint) error {
	card, err := s.cardRepo.FindByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: id %d", apperrors.ErrCardNotFound, cardID)
		}
		return fmt.Errorf("find card: %w", err)
	}
	if card.OwnerID != user.ID {
		return fmt.Errorf("%w: id %d", apperrors.ErrCardNotOwned, cardID)
	}

	number, err := s.cipher.Decrypt(card.Number)
	if err != nil {
		return fmt.Errorf("card %d: %w", card.ID, err)
	}

	request := &model.BlockRequest{
		UserID:     user.ID,
		UserName:   user.FullName(),
		CardID:     card.ID,
		CardNumber: cardcrypto.Mask(number),
		Status:     model.BlockRequestStatusCreated,
	}
	if err := s.blockRepo.Create(ctx, request); err != nil {
		if repository.IsDuplicateEntry(err) {
			return apperrors.ErrBlockRequestExists
		}
		return fmt.Errorf("create block request: %w", err)
	}
	return nil
}

// ListForUser returns all block requests submitted by a user.
func (s *blockRequestService) ListForUser(ctx context.Context, userID uint) ([]model.BlockRequest, error) {
	requests, err := s.blockRepo.FindByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list block requests: %w", err)
	}
	return requests, nil
}

// SetStatus sets the status of a block request. Transitions are administrative
// and accepted as given; ordering is not enforced here.
func (s *blockRequestService) SetStatus(ctx context.Context, requestID uint, status model.BlockRequestStatus) error {
	request, err := s.blockRepo.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrBlockRequestNotFound
		}
		return fmt.Errorf("find block request: %w", err)
	}
	request.Status = status
	if err := s.blockRepo.Update(ctx, request); err != nil {
		return fmt.Errorf("update block request: %w", err)
	}
	return nil
}
