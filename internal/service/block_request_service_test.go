package service

import (
	"context"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	apperrors "bankcards/internal/errors"
	"bankcards/internal/model"
)

// MockBlockRequestRepository is a mock implementation of BlockRequestRepository.
type MockBlockRequestRepository struct {
	mock.Mock
}

func (m *MockBlockRequestRepository) Create(ctx context.Context, request *model.BlockRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockBlockRequestRepository) Update(ctx context.Context, request *model.BlockRequest) error {
	args := m.Called(ctx, request)
	return args.Error(0)
}

func (m *MockBlockRequestRepository) FindByID(ctx context.Context, id uint) (*model.BlockRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BlockRequest), args.Error(1)
}

func (m *MockBlockRequestRepository) FindByUser(ctx context.Context, userID uint) ([]model.BlockRequest, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BlockRequest), args.Error(1)
}

func TestBlockRequestService_Create(t *testing.T) {
	cipher, _ := newTestCrypto(t)
	user := &model.User{ID: 10, Name: "Ivan", Surname: "Ivanovich", LastName: "Ivanov", Login: "ivan"}

	t.Run("snapshots user name and masked number", func(t *testing.T) {
		mockCards := new(MockCardRepository)
		mockBlocks := new(MockBlockRequestRepository)

		mockCards.On("FindByID", mock.Anything, uint(3)).Return(&model.Card{
			ID:      3,
			OwnerID: user.ID,
			Number:  encryptNumber(t, cipher, "1111222233334444"),
		}, nil)

		var created *model.BlockRequest
		mockBlocks.On("Create", mock.Anything, mock.AnythingOfType("*model.BlockRequest")).
			Run(func(args mock.Arguments) {
				created = args.Get(1).(*model.BlockRequest)
			}).Return(nil)

		svc := NewBlockRequestService(mockBlocks, mockCards, cipher)
		err := svc.Create(context.Background(), user, 3)
		require.NoError(t, err)
		require.NotNil(t, created)

		assert.Equal(t, user.ID, created.UserID)
		assert.Equal(t, uint(3), created.CardID)
		assert.Equal(t, "Ivanovich Ivan Ivanov", created.UserName)
		assert.Equal(t, "**** **** **** 4444", created.CardNumber)
		assert.Equal(t, model.BlockRequestStatusCreated, created.Status)

		mockCards.AssertExpectations(t)
		mockBlocks.AssertExpectations(t)
	})

	t.Run("card not found", func(t *testing.T) {
		mockCards := new(MockCardRepository)
		mockBlocks := new(MockBlockRequestRepository)
		mockCards.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewBlockRequestService(mockBlocks, mockCards, cipher)
		err := svc.Create(context.Background(), user, 99)
		assert.ErrorIs(t, err, apperrors.ErrCardNotFound)
	})

	t.Run("card of another owner", func(t *testing.T) {
		mockCards := new(MockCardRepository)
		mockBlocks := new(MockBlockRequestRepository)
		mockCards.On("FindByID", mock.Anything, uint(3)).Return(&model.Card{
			ID:      3,
			OwnerID: 77,
			Number:  encryptNumber(t, cipher, "1111222233334444"),
		}, nil)

		svc := NewBlockRequestService(mockBlocks, mockCards, cipher)
		err := svc.Create(context.Background(), user, 3)
		assert.ErrorIs(t, err, apperrors.ErrCardNotOwned)
	})

	t.Run("duplicate request for the same card", func(t *testing.T) {
		mockCards := new(MockCardRepository)
		mockBlocks := new(MockBlockRequestRepository)
		mockCards.On("FindByID", mock.Anything, uint(3)).Return(&model.Card{
			ID:      3,
			OwnerID: user.ID,
			Number:  encryptNumber(t, cipher, "1111222233334444"),
		}, nil)
		mockBlocks.On("Create", mock.Anything, mock.AnythingOfType("*model.BlockRequest")).
			Return(&mysql.MySQLError{Number: 1062})

		svc := NewBlockRequestService(mockBlocks, mockCards, cipher)
		err := svc.Create(context.Background(), user, 3)
		assert.ErrorIs(t, err, apperrors.ErrBlockRequestExists)
	})
}

func TestBlockRequestService_SetStatus(t *testing.T) {
	cipher, _ := newTestCrypto(t)

	t.Run("advances status", func(t *testing.T) {
		mockCards := new(MockCardRepository)
		mockBlocks := new(MockBlockRequestRepository)
		mockBlocks.On("FindByID", mock.Anything, uint(5)).Return(&model.BlockRequest{
			ID:     5,
			Status: model.BlockRequestStatusCreated,
		}, nil)
		mockBlocks.On("Update", mock.Anything, mock.MatchedBy(func(r *model.BlockRequest) bool {
			return r.Status == model.BlockRequestStatusInProgress
		})).Return(nil)

		svc := NewBlockRequestService(mockBlocks, mockCards, cipher)
		err := svc.SetStatus(context.Background(), 5, model.BlockRequestStatusInProgress)
		assert.NoError(t, err)
		mockBlocks.AssertExpectations(t)
	})

	t.Run("request not found", func(t *testing.T) {
		mockCards := new(MockCardRepository)
		mockBlocks := new(MockBlockRequestRepository)
		mockBlocks.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

		svc := NewBlockRequestService(mockBlocks, mockCards, cipher)
		err := svc.SetStatus(context.Background(), 99, model.BlockRequestStatusDone)
		assert.ErrorIs(t, err, apperrors.ErrBlockRequestNotFound)
	})
}

func TestBlockRequestService_ListForUser(t *testing.T) {
	cipher, _ := newTestCrypto(t)
	mockCards := new(MockCardRepository)
	mockBlocks := new(MockBlockRequestRepository)
	mockBlocks.On("FindByUser", mock.Anything, uint(10)).Return([]model.BlockRequest{
		{ID: 1, UserID: 10, CardID: 3, Status: model.BlockRequestStatusCreated},
		{ID: 2, UserID: 10, CardID: 4, Status: model.BlockRequestStatusDone},
	}, nil)

	svc := NewBlockRequestService(mockBlocks, mockCards, cipher)
	requests, err := svc.ListForUser(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, requests, 2)
	mockBlocks.AssertExpectations(t)
}
