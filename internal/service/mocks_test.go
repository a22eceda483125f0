package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"boardapi/internal/model"
)

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, account *model.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) FindByID(ctx context.Context, id uint) (*model.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountRepository) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Account), args.Error(1)
}

func (m *MockAccountRepository) List(ctx context.Context) ([]model.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Account), args.Error(1)
}

func (m *MockAccountRepository) UpdateName(ctx context.Context, id uint, name string) error {
	args := m.Called(ctx, id, name)
	return args.Error(0)
}

func (m *MockAccountRepository) UpdatePasswordHash(ctx context.Context, id uint, hash string) error {
	args := m.Called(ctx, id, hash)
	return args.Error(0)
}

func (m *MockAccountRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockBoardPostRepository is a mock implementation of BoardPostRepository.
type MockBoardPostRepository struct {
	mock.Mock
}

func (m *MockBoardPostRepository) Create(ctx context.Context, post *model.BoardPost) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockBoardPostRepository) FindByID(ctx context.Context, id uint) (*model.BoardPost, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BoardPost), args.Error(1)
}

func (m *MockBoardPostRepository) FindOwned(ctx context.Context, id, accountID uint) (*model.BoardPost, error) {
	args := m.Called(ctx, id, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.BoardPost), args.Error(1)
}

func (m *MockBoardPostRepository) List(ctx context.Context) ([]model.BoardPost, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BoardPost), args.Error(1)
}

func (m *MockBoardPostRepository) ListByAccount(ctx context.Context, accountID uint) ([]model.BoardPost, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.BoardPost), args.Error(1)
}

func (m *MockBoardPostRepository) Update(ctx context.Context, post *model.BoardPost) error {
	args := m.Called(ctx, post)
	return args.Error(0)
}

func (m *MockBoardPostRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockSavedImageRepository is a mock implementation of SavedImageRepository.
type MockSavedImageRepository struct {
	mock.Mock
}

func (m *MockSavedImageRepository) Create(ctx context.Context, image *model.SavedImage) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *MockSavedImageRepository) ExistsForAccount(ctx context.Context, accountID uint, imageURL string) (bool, error) {
	args := m.Called(ctx, accountID, imageURL)
	return args.Bool(0), args.Error(1)
}

func (m *MockSavedImageRepository) FindOwned(ctx context.Context, id, accountID uint) (*model.SavedImage, error) {
	args := m.Called(ctx, id, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.SavedImage), args.Error(1)
}

func (m *MockSavedImageRepository) ListByAccount(ctx context.Context, accountID uint) ([]model.SavedImage, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.SavedImage), args.Error(1)
}

func (m *MockSavedImageRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockSavedImageRepository) CountDistinctAccounts(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSavedImageRepository) CountDistinctAccountsForURL(ctx context.Context, imageURL string) (int64, error) {
	args := m.Called(ctx, imageURL)
	return args.Get(0).(int64), args.Error(1)
}
