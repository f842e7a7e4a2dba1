package services

import (
	"context"
	"testing"

	"lotto/domain/entities"
	"lotto/domain/interfaces"
	"lotto/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupPotServiceMocks() (
	*testhelpers.MockLedgerRepository,
	*testhelpers.MockSettingsRepository,
	*testhelpers.MockEconomyService,
	*testhelpers.MockEventPublisher,
) {
	return new(testhelpers.MockLedgerRepository),
		new(testhelpers.MockSettingsRepository),
		new(testhelpers.MockEconomyService),
		new(testhelpers.MockEventPublisher)
}

func TestPotService_Deposit_InvalidAmount(t *testing.T) {
	t.Parallel()

	ledgerRepo, settingsRepo, economy, publisher := setupPotServiceMocks()
	service := NewPotService(ledgerRepo, settingsRepo, economy, publisher)

	for _, amount := range []int64{0, -50} {
		_, err := service.Deposit(context.Background(), interfaces.Actor{ParticipantID: 100}, amount)
		assert.ErrorIs(t, err, entities.ErrInvalidAmount)
	}

	ledgerRepo.AssertNotCalled(t, "IncrementPot", mock.Anything, mock.Anything)
}

func TestPotService_Deposit_LimitEnforcement(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		actor   interfaces.Actor
		amount  int64
		wantErr error
	}{
		{
			name:    "non-admin above limit rejected",
			actor:   interfaces.Actor{ParticipantID: 100},
			amount:  entities.DefaultMaxDeposit + 1,
			wantErr: entities.ErrDepositLimitExceeded,
		},
		{
			name:   "non-admin at limit allowed",
			actor:  interfaces.Actor{ParticipantID: 100},
			amount: entities.DefaultMaxDeposit,
		},
		{
			name:   "admin above limit allowed",
			actor:  interfaces.Actor{ParticipantID: 100, Admin: true},
			amount: entities.DefaultMaxDeposit * 10,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ledgerRepo, settingsRepo, economy, publisher := setupPotServiceMocks()
			settingsRepo.On("GetOrCreate", mock.Anything).Return(entities.NewDefaultLotterySettings(), nil)
			ledgerRepo.On("GetForUpdate", mock.Anything).Return(entities.NewLedger(), nil).Maybe()
			economy.On("Withdraw", mock.Anything, tt.actor.ParticipantID, tt.amount, entities.TransactionTypePotDeposit, mock.Anything).
				Return(&entities.Account{ParticipantID: tt.actor.ParticipantID}, nil).Maybe()
			ledgerRepo.On("IncrementPot", mock.Anything, tt.amount).Return(nil).Maybe()
			publisher.On("Publish", mock.Anything).Return(nil).Maybe()

			service := NewPotService(ledgerRepo, settingsRepo, economy, publisher)
			newPot, err := service.Deposit(context.Background(), tt.actor, tt.amount)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				ledgerRepo.AssertNotCalled(t, "IncrementPot", mock.Anything, mock.Anything)
				economy.AssertNotCalled(t, "Withdraw", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.amount, newPot)
				ledgerRepo.AssertCalled(t, "IncrementPot", mock.Anything, tt.amount)
			}
		})
	}
}

func TestPotService_Deposit_ConsoleSkipsWithdrawal(t *testing.T) {
	t.Parallel()

	ledgerRepo, settingsRepo, economy, publisher := setupPotServiceMocks()
	settingsRepo.On("GetOrCreate", mock.Anything).Return(entities.NewDefaultLotterySettings(), nil)

	ledger := entities.NewLedger()
	ledger.Pot = 500
	ledgerRepo.On("GetForUpdate", mock.Anything).Return(ledger, nil)
	ledgerRepo.On("IncrementPot", mock.Anything, int64(250)).Return(nil)
	publisher.On("Publish", mock.AnythingOfType("events.PotDepositEvent")).Return(nil)

	service := NewPotService(ledgerRepo, settingsRepo, economy, publisher)
	newPot, err := service.Deposit(context.Background(), interfaces.Actor{Console: true, Admin: true}, 250)

	require.NoError(t, err)
	assert.Equal(t, int64(750), newPot)

	// Console deposits are externally funded
	economy.AssertNotCalled(t, "Withdraw", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	ledgerRepo.AssertExpectations(t)
}

func TestPotService_Deposit_PaymentFailureLeavesPotUnchanged(t *testing.T) {
	t.Parallel()

	ledgerRepo, settingsRepo, economy, publisher := setupPotServiceMocks()
	settingsRepo.On("GetOrCreate", mock.Anything).Return(entities.NewDefaultLotterySettings(), nil)
	ledgerRepo.On("GetForUpdate", mock.Anything).Return(entities.NewLedger(), nil)
	economy.On("Withdraw", mock.Anything, int64(100), int64(500), entities.TransactionTypePotDeposit, mock.Anything).
		Return(nil, entities.ErrInsufficientFunds)

	service := NewPotService(ledgerRepo, settingsRepo, economy, publisher)
	_, err := service.Deposit(context.Background(), interfaces.Actor{ParticipantID: 100}, 500)

	assert.ErrorIs(t, err, entities.ErrInsufficientFunds)
	ledgerRepo.AssertNotCalled(t, "IncrementPot", mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything)
}
