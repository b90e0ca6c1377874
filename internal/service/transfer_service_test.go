package service

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"bankcards/internal/cardcrypto"
	apperrors "bankcards/internal/errors"
	"bankcards/internal/model"
	"bankcards/internal/repository"
)

var errBalanceWrite = errors.New("balance write failed")

// fakeCardRepo keeps cards and balances in memory and mimics transactional
// rollback: WithTransaction snapshots the balances and restores them when fn
// returns an error.
type fakeCardRepo struct {
	cards    map[uint]*model.Card
	byIndex  map[string]uint
	balances map[uint]decimal.Decimal

	// UpdateBalance fails for this card ID, simulating a write error midway
	// through a transfer.
	failUpdateFor uint
}

func newFakeCardRepo() *fakeCardRepo {
	return &fakeCardRepo{
		cards:    make(map[uint]*model.Card),
		byIndex:  make(map[string]uint),
		balances: make(map[uint]decimal.Decimal),
	}
}

func (f *fakeCardRepo) addCard(index *cardcrypto.Index, id, ownerID uint, number, balance string) {
	f.cards[id] = &model.Card{ID: id, OwnerID: ownerID, Status: model.CardStatusActive}
	f.byIndex[index.Key(number)] = id
	f.balances[id] = decimal.RequireFromString(balance)
}

func (f *fakeCardRepo) FindByNumberIndex(_ context.Context, numberIndex string) (*model.Card, error) {
	id, ok := f.byIndex[numberIndex]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return f.cards[id], nil
}

func (f *fakeCardRepo) FindBalanceForUpdate(_ context.Context, cardID uint) (*model.CardBalance, error) {
	amount, ok := f.balances[cardID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &model.CardBalance{CardID: cardID, Amount: amount}, nil
}

func (f *fakeCardRepo) UpdateBalance(_ context.Context, cardID uint, amount decimal.Decimal) error {
	if cardID == f.failUpdateFor {
		return errBalanceWrite
	}
	f.balances[cardID] = amount
	return nil
}

func (f *fakeCardRepo) WithTransaction(ctx context.Context, fn func(ctx context.Context, repo repository.CardRepository) error) error {
	snapshot := make(map[uint]decimal.Decimal, len(f.balances))
	for id, amount := range f.balances {
		snapshot[id] = amount
	}
	if err := fn(ctx, f); err != nil {
		f.balances = snapshot
		return err
	}
	return nil
}

func (f *fakeCardRepo) Create(context.Context, *model.Card) error { panic("not used") }
func (f *fakeCardRepo) Save(context.Context, *model.Card) error { panic("not used") }
func (f *fakeCardRepo) Delete(context.Context, *model.Card) error { panic("not used") }
func (f *fakeCardRepo) FindByID(context.Context, uint) (*model.Card, error) {
	panic("not used")
}
func (f *fakeCardRepo) FindByOwner(context.Context, uint, int, int) ([]model.Card, int64, error) {
	panic("not used")
}
func (f *fakeCardRepo) FindAllByOwner(context.Context, uint) ([]model.Card, error) {
	panic("not used")
}
func (f *fakeCardRepo) FindAll(context.Context) ([]model.Card, error) { panic("not used") }
func (f *fakeCardRepo) BlockAllForOwner(context.Context, uint) error { panic("not used") }

func TestTransferService_Transfer(t *testing.T) {
	index := cardcrypto.NewIndex([]byte("index-secret"))
	owner := &model.User{ID: 1, Login: "alice"}
	fromNumber := "1111222233334444"
	toNumber := "5555666677778888"

	t.Run("moves funds between own cards", func(t *testing.T) {
		repo := newFakeCardRepo()
		repo.addCard(index, 1, owner.ID, fromNumber, "100.00")
		repo.addCard(index, 2, owner.ID, toNumber, "0.00")

		svc := NewTransferService(repo, index)
		err := svc.Transfer(context.Background(), owner, fromNumber, toNumber, decimal.RequireFromString("25.00"))
		require.NoError(t, err)

		assert.True(t, decimal.RequireFromString("75.00").Equal(repo.balances[1]))
		assert.True(t, decimal.RequireFromString("25.00").Equal(repo.balances[2]))
	})

	t.Run("insufficient balance leaves both cards untouched", func(t *testing.T) {
		repo := newFakeCardRepo()
		repo.addCard(index, 1, owner.ID, fromNumber, "10.00")
		repo.addCard(index, 2, owner.ID, toNumber, "5.00")

		svc := NewTransferService(repo, index)
		err := svc.Transfer(context.Background(), owner, fromNumber, toNumber, decimal.RequireFromString("25.00"))
		assert.ErrorIs(t, err, apperrors.ErrInsufficientBalance)

		assert.True(t, decimal.RequireFromString("10.00").Equal(repo.balances[1]))
		assert.True(t, decimal.RequireFromString("5.00").Equal(repo.balances[2]))
	})

	t.Run("rejects card owned by someone else", func(t *testing.T) {
		repo := newFakeCardRepo()
		repo.addCard(index, 1, owner.ID, fromNumber, "100.00")
		repo.addCard(index, 2, 99, toNumber, "0.00")

		svc := NewTransferService(repo, index)
		err := svc.Transfer(context.Background(), owner, fromNumber, toNumber, decimal.RequireFromString("25.00"))
		assert.ErrorIs(t, err, apperrors.ErrCardNotOwned)

		assert.True(t, decimal.RequireFromString("100.00").Equal(repo.balances[1]))
		assert.True(t, decimal.RequireFromString("0.00").Equal(repo.balances[2]))
	})

	t.Run("unknown card reported with masked number", func(t *testing.T) {
		repo := newFakeCardRepo()
		repo.addCard(index, 1, owner.ID, fromNumber, "100.00")

		svc := NewTransferService(repo, index)
		err := svc.Transfer(context.Background(), owner, fromNumber, toNumber, decimal.RequireFromString("25.00"))
		assert.ErrorIs(t, err, apperrors.ErrCardNotFound)
		assert.ErrorContains(t, err, "**** **** **** 8888")
		assert.NotContains(t, err.Error(), toNumber)
	})

	t.Run("rolls back the debit when the credit fails", func(t *testing.T) {
		repo := newFakeCardRepo()
		repo.addCard(index, 1, owner.ID, fromNumber, "100.00")
		repo.addCard(index, 2, owner.ID, toNumber, "0.00")
		repo.failUpdateFor = 2

		svc := NewTransferService(repo, index)
		err := svc.Transfer(context.Background(), owner, fromNumber, toNumber, decimal.RequireFromString("25.00"))
		assert.ErrorIs(t, err, errBalanceWrite)

		assert.True(t, decimal.RequireFromString("100.00").Equal(repo.balances[1]))
		assert.True(t, decimal.RequireFromString("0.00").Equal(repo.balances[2]))
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		repo := newFakeCardRepo()
		svc := NewTransferService(repo, index)

		err := svc.Transfer(context.Background(), owner, fromNumber, toNumber, decimal.Zero)
		assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)

		err = svc.Transfer(context.Background(), owner, fromNumber, toNumber, decimal.RequireFromString("-5.00"))
		assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)
	})

	t.Run("rejects transfer to the same card", func(t *testing.T) {
		repo := newFakeCardRepo()
		svc := NewTransferService(repo, index)

		err := svc.Transfer(context.Background(), owner, fromNumber, fromNumber, decimal.RequireFromString("5.00"))
		assert.ErrorIs(t, err, apperrors.ErrSameCardTransfer)
	})
}

func TestTransferService_ConservesTotalBalance(t *testing.T) {
	index := cardcrypto.NewIndex([]byte("index-secret"))
	owner := &model.User{ID: 1, Login: "alice"}
	fromNumber := "1111222233334444"
	toNumber := "5555666677778888"

	repo := newFakeCardRepo()
	repo.addCard(index, 1, owner.ID, fromNumber, "60.00")
	repo.addCard(index, 2, owner.ID, toNumber, "40.00")

	svc := NewTransferService(repo, index)

	transfers := []struct {
		from, to string
		amount   string
	}{
		{fromNumber, toNumber, "12.34"},
		{toNumber, fromNumber, "0.01"},
		{fromNumber, toNumber, "47.67"},
		{toNumber, fromNumber, "99.99"},
	}
	for _, tr := range transfers {
		err := svc.Transfer(context.Background(), owner, tr.from, tr.to, decimal.RequireFromString(tr.amount))
		require.NoError(t, err)
	}

	total := repo.balances[1].Add(repo.balances[2])
	assert.True(t, decimal.RequireFromString("100.00").Equal(total),
		"total balance changed: %s", total)
}
