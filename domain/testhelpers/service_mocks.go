package testhelpers

import (
	"context"

	"lotto/domain/entities"

	"github.com/stretchr/testify/mock"
)

// MockEconomyService is a mock implementation of EconomyService
type MockEconomyService struct {
	mock.Mock
}

func (m *MockEconomyService) GetOrCreateAccount(ctx context.Context, participantID int64) (*entities.Account, error) {
	args := m.Called(ctx, participantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *MockEconomyService) Withdraw(ctx context.Context, participantID, amount int64, txType entities.TransactionType, metadata map[string]any) (*entities.Account, error) {
	args := m.Called(ctx, participantID, amount, txType, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}

func (m *MockEconomyService) Deposit(ctx context.Context, participantID, amount int64, txType entities.TransactionType, metadata map[string]any) (*entities.Account, error) {
	args := m.Called(ctx, participantID, amount, txType, metadata)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Account), args.Error(1)
}
