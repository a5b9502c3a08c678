package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/TawhidShakil/financial-accounting-sub000/internal/domain/account"
)

func TestAccountService_CreateAccount(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()

	t.Run("registers an account", func(t *testing.T) {
		mockRepo := new(MockAccountRepository)
		svc := NewAccountService(logger, mockRepo)

		mockRepo.On("Create", ctx, mock.MatchedBy(func(acc *account.Account) bool {
			return acc.Name == "Cash" && acc.Code == "1000" && acc.Type == account.TypeAsset
		})).Return(nil)

		acc, err := svc.CreateAccount(ctx, "Cash", "1000", account.TypeAsset)
		require.NoError(t, err)
		assert.Equal(t, "Cash", acc.Name)
		assert.Equal(t, account.TypeAsset, acc.Type)
		mockRepo.AssertExpectations(t)
	})

	t.Run("empty type resolves through the heuristic", func(t *testing.T) {
		mockRepo := new(MockAccountRepository)
		svc := NewAccountService(logger, mockRepo)

		mockRepo.On("Create", ctx, mock.MatchedBy(func(acc *account.Account) bool {
			return acc.Type == account.TypeLiability
		})).Return(nil)

		acc, err := svc.CreateAccount(ctx, "Accounts Payable", "", account.TypeUnknown)
		require.NoError(t, err)
		assert.Equal(t, account.TypeLiability, acc.Type)
		mockRepo.AssertExpectations(t)
	})

	t.Run("empty name is rejected before the store is touched", func(t *testing.T) {
		mockRepo := new(MockAccountRepository)
		svc := NewAccountService(logger, mockRepo)

		acc, err := svc.CreateAccount(ctx, "", "1000", account.TypeAsset)
		assert.Nil(t, acc)
		assert.ErrorIs(t, err, account.ErrEmptyName)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("duplicate name surfaces the domain error", func(t *testing.T) {
		mockRepo := new(MockAccountRepository)
		svc := NewAccountService(logger, mockRepo)

		mockRepo.On("Create", ctx, mock.Anything).Return(account.ErrDuplicateAccount{Name: "Cash"})

		acc, err := svc.CreateAccount(ctx, "Cash", "", account.TypeAsset)
		assert.Nil(t, acc)
		assert.ErrorIs(t, err, account.ErrDuplicateAccount{})
		mockRepo.AssertExpectations(t)
	})
}

func TestAccountService_GetAccountByName(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()

	t.Run("found", func(t *testing.T) {
		mockRepo := new(MockAccountRepository)
		svc := NewAccountService(logger, mockRepo)

		expected := &account.Account{Name: "Cash", Type: account.TypeAsset}
		mockRepo.On("GetByName", ctx, "Cash").Return(expected, nil)

		acc, err := svc.GetAccountByName(ctx, "Cash")
		require.NoError(t, err)
		assert.Equal(t, expected, acc)
		mockRepo.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		mockRepo := new(MockAccountRepository)
		svc := NewAccountService(logger, mockRepo)

		mockRepo.On("GetByName", ctx, "Ghost").Return(nil, account.ErrAccountNotFound{Name: "Ghost"})

		acc, err := svc.GetAccountByName(ctx, "Ghost")
		assert.Nil(t, acc)
		assert.ErrorIs(t, err, account.ErrAccountNotFound{})
		mockRepo.AssertExpectations(t)
	})
}

func TestAccountService_ListAccounts(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()

	mockRepo := new(MockAccountRepository)
	svc := NewAccountService(logger, mockRepo)

	expected := []*account.Account{
		{Name: "Cash", Type: account.TypeAsset},
		{Name: "Sales", Type: account.TypeRevenue},
	}
	mockRepo.On("List", ctx).Return(expected, nil)

	accounts, err := svc.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Equal(t, expected, accounts)
	mockRepo.AssertExpectations(t)
}
