package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"bankcards/internal/cardcrypto"
	apperrors "bankcards/internal/errors"
	"bankcards/internal/model"
	"bankcards/internal/repository"
)

// TransferService moves funds between two cards of the same user.
type TransferService interface {
	Transfer(ctx context.Context, user *model.User, fromNumber, toNumber string, amount decimal.Decimal) error
}

type transferService struct {
	cardRepo repository.CardRepository
	index    *cardcrypto.Index
}

// NewTransferService creates a new transfer service.
func NewTransferService(cardRepo repository.CardRepository, index *cardcrypto.Index) TransferService {
	return &transferService{
		cardRepo: cardRepo,
		index:    index,
	}
}

// Transfer debits fromNumber and credits toNumber inside one transaction.
// Both cards must belong to user. On any failure the transaction rolls back,
// so either both balances change or neither does; the insufficient-balance
// check runs under a row lock on the source, before any mutation.
func (s *transferService) Transfer(ctx context.Context, user *model.User, fromNumber, toNumber string, amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return apperrors.ErrInvalidAmount
	}
	if fromNumber == toNumber {
		return apperrors.ErrSameCardTransfer
	}

	return s.cardRepo.WithTransaction(ctx, func(ctx context.Context, txRepo repository.CardRepository) error {
		fromCard, err := s.resolveOwnedCard(ctx, txRepo, user, fromNumber)
		if err != nil {
			return err
		}
		toCard, err := s.resolveOwnedCard(ctx, txRepo, user, toNumber)
		if err != nil {
			return err
		}

		fromBalance, err := txRepo.FindBalanceForUpdate(ctx, fromCard.ID)
		if err != nil {
			return fmt.Errorf("lock source balance: %w", err)
		}
		if amount.GreaterThan(fromBalance.Amount) {
			return apperrors.ErrInsufficientBalance
		}
		toBalance, err := txRepo.FindBalanceForUpdate(ctx, toCard.ID)
		if err != nil {
			return fmt.Errorf("lock destination balance: %w", err)
		}

		if err := txRepo.UpdateBalance(ctx, fromCard.ID, fromBalance.Amount.Sub(amount)); err != nil {
			return fmt.Errorf("debit source: %w", err)
		}
		if err := txRepo.UpdateBalance(ctx, toCard.ID, toBalance.Amount.Add(amount)); err != nil {
			return fmt.Errorf("credit destination: %w", err)
		}
		return nil
	})
}

func (s *transferService) resolveOwnedCard(ctx context.Context, repo repository.CardRepository, user *model.User, number string) (*model.Card, error) {
	card, err := repo.FindByNumberIndex(ctx, s.index.Key(number))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", apperrors.ErrCardNotFound, cardcrypto.Mask(number))
		}
		return nil, fmt.Errorf("find card: %w", err)
	}
	if card.OwnerID != user.ID {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrCardNotOwned, cardcrypto.Mask(number))
	}
	return card, nil
}
