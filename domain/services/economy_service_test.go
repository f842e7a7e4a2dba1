package services

import (
	"context"
	"testing"

	"lotto/domain/entities"
	"lotto/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupEconomyServiceMocks() (
	*testhelpers.MockAccountRepository,
	*testhelpers.MockBalanceHistoryRepository,
	*testhelpers.MockEventPublisher,
) {
	return new(testhelpers.MockAccountRepository),
		new(testhelpers.MockBalanceHistoryRepository),
		new(testhelpers.MockEventPublisher)
}

func TestEconomyService_GetOrCreateAccount_Existing(t *testing.T) {
	t.Parallel()

	accountRepo, historyRepo, publisher := setupEconomyServiceMocks()

	existing := &entities.Account{ParticipantID: 100, Balance: 500}
	accountRepo.On("GetByParticipantID", mock.Anything, int64(100)).Return(existing, nil)

	service := NewEconomyService(accountRepo, historyRepo, publisher, 1000)
	account, err := service.GetOrCreateAccount(context.Background(), 100)

	require.NoError(t, err)
	assert.Equal(t, existing, account)
	accountRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
}

func TestEconomyService_GetOrCreateAccount_LazyCreation(t *testing.T) {
	t.Parallel()

	accountRepo, historyRepo, publisher := setupEconomyServiceMocks()

	accountRepo.On("GetByParticipantID", mock.Anything, int64(100)).Return(nil, nil)
	created := &entities.Account{ParticipantID: 100, Balance: 1000}
	accountRepo.On("Create", mock.Anything, int64(100), int64(1000)).Return(created, nil)
	historyRepo.On("Record", mock.Anything, mock.MatchedBy(func(h *entities.BalanceHistory) bool {
		return h.TransactionType == entities.TransactionTypeInitial && h.ChangeAmount == 1000
	})).Return(nil)
	publisher.On("Publish", mock.AnythingOfType("events.BalanceChangeEvent")).Return(nil)
	publisher.On("Publish", mock.AnythingOfType("events.AccountCreatedEvent")).Return(nil)

	service := NewEconomyService(accountRepo, historyRepo, publisher, 1000)
	account, err := service.GetOrCreateAccount(context.Background(), 100)

	require.NoError(t, err)
	assert.Equal(t, int64(1000), account.Balance)
	accountRepo.AssertExpectations(t)
	historyRepo.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

func TestEconomyService_Withdraw(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		balance     int64
		amount      int64
		wantErr     error
		wantBalance int64
	}{
		{
			name:        "successful withdrawal",
			balance:     1000,
			amount:      300,
			wantBalance: 700,
		},
		{
			name:        "exact balance withdrawal",
			balance:     300,
			amount:      300,
			wantBalance: 0,
		},
		{
			name:    "insufficient funds",
			balance: 100,
			amount:  300,
			wantErr: entities.ErrInsufficientFunds,
		},
		{
			name:    "invalid amount",
			balance: 1000,
			amount:  0,
			wantErr: entities.ErrInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			accountRepo, historyRepo, publisher := setupEconomyServiceMocks()

			account := &entities.Account{ParticipantID: 100, Balance: tt.balance}
			accountRepo.On("GetByParticipantID", mock.Anything, int64(100)).Return(account, nil).Maybe()
			accountRepo.On("UpdateBalance", mock.Anything, int64(100), tt.wantBalance).Return(nil).Maybe()
			historyRepo.On("Record", mock.Anything, mock.Anything).Return(nil).Maybe()
			publisher.On("Publish", mock.Anything).Return(nil).Maybe()

			service := NewEconomyService(accountRepo, historyRepo, publisher, 0)
			got, err := service.Withdraw(context.Background(), 100, tt.amount, entities.TransactionTypeTicketPurchase, nil)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				accountRepo.AssertNotCalled(t, "UpdateBalance", mock.Anything, mock.Anything, mock.Anything)
				historyRepo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantBalance, got.Balance)
				accountRepo.AssertCalled(t, "UpdateBalance", mock.Anything, int64(100), tt.wantBalance)
				historyRepo.AssertCalled(t, "Record", mock.Anything, mock.Anything)
			}
		})
	}
}

func TestEconomyService_Deposit_CreatesAccountIfAbsent(t *testing.T) {
	t.Parallel()

	accountRepo, historyRepo, publisher := setupEconomyServiceMocks()

	accountRepo.On("GetByParticipantID", mock.Anything, int64(200)).Return(nil, nil)
	created := &entities.Account{ParticipantID: 200, Balance: 0}
	accountRepo.On("Create", mock.Anything, int64(200), int64(0)).Return(created, nil)
	accountRepo.On("UpdateBalance", mock.Anything, int64(200), int64(900)).Return(nil)
	historyRepo.On("Record", mock.Anything, mock.MatchedBy(func(h *entities.BalanceHistory) bool {
		return h.TransactionType == entities.TransactionTypeLotteryWin && h.BalanceAfter == 900
	})).Return(nil)
	publisher.On("Publish", mock.Anything).Return(nil)

	service := NewEconomyService(accountRepo, historyRepo, publisher, 0)
	account, err := service.Deposit(context.Background(), 200, 900, entities.TransactionTypeLotteryWin, nil)

	require.NoError(t, err)
	assert.Equal(t, int64(900), account.Balance)
	accountRepo.AssertExpectations(t)
}

func TestEconomyService_Deposit_ZeroAmountIsNoOp(t *testing.T) {
	t.Parallel()

	accountRepo, historyRepo, publisher := setupEconomyServiceMocks()

	account := &entities.Account{ParticipantID: 100, Balance: 500}
	accountRepo.On("GetByParticipantID", mock.Anything, int64(100)).Return(account, nil)

	service := NewEconomyService(accountRepo, historyRepo, publisher, 0)
	got, err := service.Deposit(context.Background(), 100, 0, entities.TransactionTypeLotteryWin, nil)

	require.NoError(t, err)
	assert.Equal(t, int64(500), got.Balance)
	accountRepo.AssertNotCalled(t, "UpdateBalance", mock.Anything, mock.Anything, mock.Anything)
	historyRepo.AssertNotCalled(t, "Record", mock.Anything, mock.Anything)
}
