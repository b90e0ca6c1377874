package service

import (
	"context"
	"errors"
	"fmt"
	mrand "math/rand/v2"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"bankcards/internal/cardcrypto"
	apperrors "bankcards/internal/errors"
	"bankcards/internal/model"
	"bankcards/internal/repository"
)

const cardLifetimeYears = 3

// RandInt returns a uniform random int in [0, n). The card service takes it as
// a dependency so tests can drive the generation loop deterministically.
type RandInt func(n int) int

// AdminCard is the administrative view of a card, with the number decrypted.
type AdminCard struct {
	ID         uint             `json:"id"`
	OwnerID    uint             `json:"owner_id"`
	Number     string           `json:"number"`
	ExpireDate time.Time        `json:"expire_date"`
	CreatedAt  time.Time        `json:"created_at"`
	Status     model.CardStatus `json:"status"`
	Balance    decimal.Decimal  `json:"balance"`
}

// UserCard is the owner's view of a card, with the number masked.
type UserCard struct {
	ID         uint             `json:"id"`
	Number     string           `json:"number"`
	ExpireDate time.Time        `json:"expire_date"`
	Status     model.CardStatus `json:"status"`
	Balance    decimal.Decimal  `json:"balance"`
}

// CardPage is one page of a card listing.
type CardPage struct {
	TotalElements int64      `json:"total_elements"`
	TotalPages    int        `json:"total_pages"`
	Elements      []UserCard `json:"elements"`
}

// CardService handles card lifecycle operations.
type CardService interface {
	Issue(ctx context.Context, ownerID uint) (*model.Card, error)
	ChangeStatus(ctx context.Context, cardID uint, status model.CardStatus) error
	Delete(ctx context.Context, cardID uint) error
	ListAll(ctx context.Context) ([]AdminCard, error)
	ListForOwner(ctx context.Context, ownerID uint, search string, page, size int) (*CardPage, error)
	BlockAllForOwner(ctx context.Context, ownerID uint) error
}

type cardService struct {
	cardRepo repository.CardRepository
	cipher   *cardcrypto.Cipher
	index    *cardcrypto.Index
	randInt  RandInt
}

// NewCardService creates a new card service. A nil randInt falls back to the
// process-wide random source.
func NewCardService(cardRepo repository.CardRepository, cipher *cardcrypto.Cipher, index *cardcrypto.Index, randInt RandInt) CardService {
	if randInt == nil {
		randInt = mrand.IntN
	}
	return &cardService{
		cardRepo: cardRepo,
		cipher:   cipher,
		index:    index,
		randInt:  randInt,
	}
}

// Issue creates a new active card for ownerID with a zero balance and an
// expiry three years out. Generation retries until the number is unique: the
// blind index is checked before insert, and a duplicate-key rejection from a
// concurrent insert restarts the loop rather than failing the call.
func (s *cardService) Issue(ctx context.Context, ownerID uint) (*model.Card, error) {
	for {
		number := s.generateNumber()
		numberIndex := s.index.Key(number)

		if _, err := s.cardRepo.FindByNumberIndex(ctx, numberIndex); err == nil {
			continue
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("check card number: %w", err)
		}

		token, err := s.cipher.Encrypt(number)
		if err != nil {
			return nil, fmt.Errorf("encrypt card number: %w", err)
		}

		now := time.Now()
		card := &model.Card{
			Number:      token,
			NumberIndex: numberIndex,
			ExpireDate:  now.AddDate(cardLifetimeYears, 0, 0),
			CreatedAt:   now,
			Status:      model.CardStatusActive,
			OwnerID:     ownerID,
			Balance:     model.CardBalance{Amount: decimal.Zero},
		}

		if err := s.cardRepo.Create(ctx, card); err != nil {
			if repository.IsDuplicateEntry(err) {
				// Lost the race against a concurrent issuance.
				continue
			}
			return nil, fmt.Errorf("create card: %w", err)
		}
		return card, nil
	}
}

// generateNumber assembles four random 4-digit groups. Each group stays in
// [1000, 9999] so the number is always exactly 16 digits.
func (s *cardService) generateNumber() string {
	var b strings.Builder
	for i := 0; i < 4; i++ {
		fmt.Fprintf(&b, "%d", 1000+s.randInt(9000))
	}
	return b.String()
}

// ChangeStatus updates the status of a card.
func (s *cardService) ChangeStatus(ctx context.Context, cardID uint, status model.CardStatus) error {
	card, err := s.cardRepo.FindByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: id %d", apperrors.ErrCardNotFound, cardID)
		}
		return fmt.Errorf("find card: %w", err)
	}
	card.Status = status
	if err := s.cardRepo.Save(ctx, card); err != nil {
		return fmt.Errorf("save card: %w", err)
	}
	return nil
}

// Delete removes a card and its balance.
func (s *cardService) Delete(ctx context.Context, cardID uint) error {
	card, err := s.cardRepo.FindByID(ctx, cardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return fmt.Errorf("%w: id %d", apperrors.ErrCardNotFound, cardID)
		}
		return fmt.Errorf("find card: %w", err)
	}
	if err := s.cardRepo.Delete(ctx, card); err != nil {
		return fmt.Errorf("delete card: %w", err)
	}
	return nil
}

// ListAll returns every card with its number decrypted, for administrators.
func (s *cardService) ListAll(ctx context.Context) ([]AdminCard, error) {
	cards, err := s.cardRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}

	result := make([]AdminCard, 0, len(cards))
	for _, card := range cards {
		number, err := s.cipher.Decrypt(card.Number)
		if err != nil {
			// Stored ciphertext that no longer decrypts means corrupted data;
			// fail loudly instead of returning a partial listing.
			return nil, fmt.Errorf("card %d: %w", card.ID, err)
		}
		result = append(result, AdminCard{
			ID:         card.ID,
			OwnerID:    card.OwnerID,
			Number:     number,
			ExpireDate: card.ExpireDate,
			CreatedAt:  card.CreatedAt,
			Status:     card.Status,
			Balance:    card.Balance.Amount,
		})
	}
	return result, nil
}

// ListForOwner returns one page of the owner's cards, masked. A full 16-digit
// search term resolves through the blind index; shorter terms are matched by
// substring against the decrypted numbers.
func (s *cardService) ListForOwner(ctx context.Context, ownerID uint, search string, page, size int) (*CardPage, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 10
	}

	search = strings.TrimSpace(search)
	if search == "" {
		cards, total, err := s.cardRepo.FindByOwner(ctx, ownerID, page*size, size)
		if err != nil {
			return nil, fmt.Errorf("list owner cards: %w", err)
		}
		elements, err := s.toUserCards(cards)
		if err != nil {
			return nil, err
		}
		return &CardPage{
			TotalElements: total,
			TotalPages:    pageCount(total, size),
			Elements:      elements,
		}, nil
	}

	if isFullNumber(search) {
		card, err := s.cardRepo.FindByNumberIndex(ctx, s.index.Key(search))
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return &CardPage{Elements: []UserCard{}}, nil
			}
			return nil, fmt.Errorf("find card by number: %w", err)
		}
		if card.OwnerID != ownerID {
			return &CardPage{Elements: []UserCard{}}, nil
		}
		elements, err := s.toUserCards([]model.Card{*card})
		if err != nil {
			return nil, err
		}
		return &CardPage{TotalElements: 1, TotalPages: 1, Elements: elements}, nil
	}

	// Partial search decrypts and filters on the service side. Acceptable at
	// the per-owner card counts this system manages.
	cards, err := s.cardRepo.FindAllByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list owner cards: %w", err)
	}
	var matched []model.Card
	for _, card := range cards {
		number, err := s.cipher.Decrypt(card.Number)
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", card.ID, err)
		}
		if strings.Contains(number, search) {
			matched = append(matched, card)
		}
	}

	total := int64(len(matched))
	start := page * size
	if start > len(matched) {
		start = len(matched)
	}
	end := start + size
	if end > len(matched) {
		end = len(matched)
	}
	elements, err := s.toUserCards(matched[start:end])
	if err != nil {
		return nil, err
	}
	return &CardPage{
		TotalElements: total,
		TotalPages:    pageCount(total, size),
		Elements:      elements,
	}, nil
}

// BlockAllForOwner blocks every card of an owner.
func (s *cardService) BlockAllForOwner(ctx context.Context, ownerID uint) error {
	if err := s.cardRepo.BlockAllForOwner(ctx, ownerID); err != nil {
		return fmt.Errorf("block owner cards: %w", err)
	}
	return nil
}

func (s *cardService) toUserCards(cards []model.Card) ([]UserCard, error) {
	result := make([]UserCard, 0, len(cards))
	for _, card := range cards {
		number, err := s.cipher.Decrypt(card.Number)
		if err != nil {
			return nil, fmt.Errorf("card %d: %w", card.ID, err)
		}
		result = append(result, UserCard{
			ID:         card.ID,
			Number:     cardcrypto.Mask(number),
			ExpireDate: card.ExpireDate,
			Status:     card.Status,
			Balance:    card.Balance.Amount,
		})
	}
	return result, nil
}

func pageCount(total int64, size int) int {
	if total == 0 {
		return 0
	}
	return int((total + int64(size) - 1) / int64(size))
}

func isFullNumber(s string) bool {
	if len(s) != 16 {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
