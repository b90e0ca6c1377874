package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"bankcards/internal/model"
)

// CardRepository defines card and balance persistence operations.
type CardRepository interface {
	Create(ctx context.Context, card *model.Card) error
	Save(ctx context.Context, card *model.Card) error
	Delete(ctx context.Context, card *model.Card) error
	FindByID(ctx context.Context, id uint) (*model.Card, error)
	FindByNumberIndex(ctx context.Context, numberIndex string) (*model.Card, error)
	FindByOwner(ctx context.Context, ownerID uint, offset, limit int) ([]model.Card, int64, error)
	FindAllByOwner(ctx context.Context, ownerID uint) ([]model.Card, error)
	FindAll(ctx context.Context) ([]model.Card, error)
	BlockAllForOwner(ctx context.Context, ownerID uint) error
	FindBalanceForUpdate(ctx context.Context, cardID uint) (*model.CardBalance, error)
	UpdateBalance(ctx context.Context, cardID uint, amount decimal.Decimal) error
	// WithTransaction runs fn inside one database transaction; any error rolls
	// back every write made through the repository it passes to fn.
	WithTransaction(ctx context.Context, fn func(ctx context.Context, repo CardRepository) error) error
}

type cardRepository struct {
	db *gorm.DB
}

// NewCardRepository creates a new card repository.
func NewCardRepository(db *gorm.DB) CardRepository {
	return &cardRepository{db: db}
}

// Create creates a new card together with its balance row.
func (r *cardRepository) Create(ctx context.Context, card *model.Card) error {
	return r.db.WithContext(ctx).Create(card).Error
}

// Save updates an existing card.
func (r *cardRepository) Save(ctx context.Context, card *model.Card) error {
	return r.db.WithContext(ctx).Omit("Balance").Save(card).Error
}

// Delete removes a card and its balance.
func (r *cardRepository) Delete(ctx context.Context, card *model.Card) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("card_id = ?", card.ID).Delete(&model.CardBalance{}).Error; err != nil {
			return err
		}
		return tx.Delete(card).Error
	})
}

// FindByID finds a card by ID with its balance.
func (r *cardRepository) FindByID(ctx context.Context, id uint) (*model.Card, error) {
	var card model.Card
	if err := r.db.WithContext(ctx).Preload("Balance").
		Where("id = ?", id).First(&card).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

// FindByNumberIndex finds a card by its blind index value.
func (r *cardRepository) FindByNumberIndex(ctx context.Context, numberIndex string) (*model.Card, error) {
	var card model.Card
	if err := r.db.WithContext(ctx).Preload("Balance").
		Where("number_index = ?", numberIndex).First(&card).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

// FindByOwner returns one page of the owner's cards, newest first, along with
// the total count.
func (r *cardRepository) FindByOwner(ctx context.Context, ownerID uint, offset, limit int) ([]model.Card, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&model.Card{}).
		Where("owner_id = ?", ownerID).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var cards []model.Card
	if err := r.db.WithContext(ctx).Preload("Balance").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Offset(offset).Limit(limit).
		Find(&cards).Error; err != nil {
		return nil, 0, err
	}
	return cards, total, nil
}

// FindAllByOwner returns every card of an owner, newest first.
func (r *cardRepository) FindAllByOwner(ctx context.Context, ownerID uint) ([]model.Card, error) {
	var cards []model.Card
	if err := r.db.WithContext(ctx).Preload("Balance").
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

// FindAll returns all cards.
func (r *cardRepository) FindAll(ctx context.Context) ([]model.Card, error) {
	var cards []model.Card
	if err := r.db.WithContext(ctx).Preload("Balance").
		Order("id").Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

// BlockAllForOwner sets every card of an owner to BLOCKED.
func (r *cardRepository) BlockAllForOwner(ctx context.Context, ownerID uint) error {
	return r.db.WithContext(ctx).Model(&model.Card{}).
		Where("owner_id = ?", ownerID).
		Update("status", model.CardStatusBlocked).Error
}

// FindBalanceForUpdate loads a balance row under a row-level lock.
func (r *cardRepository) FindBalanceForUpdate(ctx context.Context, cardID uint) (*model.CardBalance, error) {
	var balance model.CardBalance
	if err := r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("card_id = ?", cardID).First(&balance).Error; err != nil {
		return nil, err
	}
	return &balance, nil
}

// UpdateBalance sets the balance amount of a card.
func (r *cardRepository) UpdateBalance(ctx context.Context, cardID uint, amount decimal.Decimal) error {
	return r.db.WithContext(ctx).Model(&model.CardBalance{}).
		Where("card_id = ?", cardID).
		Update("amount", amount).Error
}

// WithTransaction executes a function within a database transaction.
func (r *cardRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo CardRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, &cardRepository{db: tx})
	})
}
