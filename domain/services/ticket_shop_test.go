package services

import (
	"context"
	"errors"
	"testing"

	"lotto/domain/entities"
	"lotto/domain/testhelpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupTicketShopMocks() (
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

func testSettings() *entities.LotterySettings {
	return entities.NewDefaultLotterySettings()
}

func TestTicketShop_PurchaseTickets_InvalidQuantity(t *testing.T) {
	t.Parallel()

	ledgerRepo, settingsRepo, economy, publisher := setupTicketShopMocks()
	shop := NewTicketShop(ledgerRepo, settingsRepo, economy, publisher)

	for _, quantity := range []int64{0, -1, -100} {
		result, err := shop.PurchaseTickets(context.Background(), 100, quantity)
		assert.Nil(t, result)
		assert.ErrorIs(t, err, entities.ErrInvalidAmount)
	}

	// No repository or economy access for rejected input
	ledgerRepo.AssertNotCalled(t, "GetForUpdate", mock.Anything)
	economy.AssertNotCalled(t, "Withdraw", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestTicketShop_PurchaseTickets_CapacityExceeded(t *testing.T) {
	t.Parallel()

	ledgerRepo, settingsRepo, economy, publisher := setupTicketShopMocks()

	settings := testSettings() // max 5 tickets
	settingsRepo.On("GetOrCreate", mock.Anything).Return(settings, nil)

	ledger := entities.NewLedger()
	ledger.Tickets[100] = 3
	ledgerRepo.On("GetForUpdate", mock.Anything).Return(ledger, nil)

	shop := NewTicketShop(ledgerRepo, settingsRepo, economy, publisher)
	result, err := shop.PurchaseTickets(context.Background(), 100, 3)

	assert.Nil(t, result)
	var capErr *entities.CapacityExceededError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, int64(2), capErr.Remaining, "remaining capacity hint must be maxTickets - currentTickets")

	// No withdrawal, no mutation
	economy.AssertNotCalled(t, "Withdraw", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	ledgerRepo.AssertNotCalled(t, "SetTickets", mock.Anything, mock.Anything, mock.Anything)
	ledgerRepo.AssertNotCalled(t, "IncrementPot", mock.Anything, mock.Anything)
}

func TestTicketShop_PurchaseTickets_CapacityHintFloorsAtZero(t *testing.T) {
	t.Parallel()

	ledgerRepo, settingsRepo, economy, publisher := setupTicketShopMocks()

	settingsRepo.On("GetOrCreate", mock.Anything).Return(testSettings(), nil)

	ledger := entities.NewLedger()
	ledger.Tickets[100] = 5
	ledgerRepo.On("GetForUpdate", mock.Anything).Return(ledger, nil)

	shop := NewTicketShop(ledgerRepo, settingsRepo, economy, publisher)
	_, err := shop.PurchaseTickets(context.Background(), 100, 1)

	var capErr *entities.CapacityExceededError
	require.ErrorAs(t, err, &capErr)
	assert.Equal(t, int64(0), capErr.Remaining)
}

func TestTicketShop_PurchaseTickets_PaymentFailure(t *testing.T) {
	t.Parallel()

	ledgerRepo, settingsRepo, economy, publisher := setupTicketShopMocks()

	settingsRepo.On("GetOrCreate", mock.Anything).Return(testSettings(), nil)
	ledgerRepo.On("GetForUpdate", mock.Anything).Return(entities.NewLedger(), nil)
	economy.On("Withdraw", mock.Anything, int64(100), int64(200), entities.TransactionTypeTicketPurchase, mock.Anything).
		Return(nil, entities.ErrInsufficientFunds)

	shop := NewTicketShop(ledgerRepo, settingsRepo, economy, publisher)
	result, err := shop.PurchaseTickets(context.Background(), 100, 2)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, entities.ErrInsufficientFunds)

	// Failed payment leaves the ledger untouched
	ledgerRepo.AssertNotCalled(t, "SetTickets", mock.Anything, mock.Anything, mock.Anything)
	ledgerRepo.AssertNotCalled(t, "IncrementPot", mock.Anything, mock.Anything)
	publisher.AssertNotCalled(t, "Publish", mock.Anything)
}

func TestTicketShop_PurchaseTickets_Success(t *testing.T) {
	t.Parallel()

	ledgerRepo, settingsRepo, economy, publisher := setupTicketShopMocks()

	settings := testSettings()
	settingsRepo.On("GetOrCreate", mock.Anything).Return(settings, nil)

	ledger := entities.NewLedger()
	ledger.Pot = 1000
	ledger.Tickets[100] = 1
	ledgerRepo.On("GetForUpdate", mock.Anything).Return(ledger, nil)

	account := &entities.Account{ParticipantID: 100, Balance: 700}
	economy.On("Withdraw", mock.Anything, int64(100), int64(300), entities.TransactionTypeTicketPurchase, mock.Anything).
		Return(account, nil)

	ledgerRepo.On("SetTickets", mock.Anything, int64(100), int64(4)).Return(nil)
	ledgerRepo.On("IncrementPot", mock.Anything, int64(300)).Return(nil)
	publisher.On("Publish", mock.AnythingOfType("events.TicketPurchasedEvent")).Return(nil)

	shop := NewTicketShop(ledgerRepo, settingsRepo, economy, publisher)
	result, err := shop.PurchaseTickets(context.Background(), 100, 3)

	require.NoError(t, err)
	assert.Equal(t, int64(3), result.Quantity)
	assert.Equal(t, int64(4), result.TotalTickets)
	assert.Equal(t, int64(300), result.Cost)
	assert.Equal(t, int64(700), result.NewBalance)
	assert.Equal(t, int64(1300), result.Pot, "pot grows by exactly ticketCost * quantity")

	ledgerRepo.AssertExpectations(t)
	economy.AssertExpectations(t)
	publisher.AssertExpectations(t)
}

// Scenario from the purchase contract: cost 100, cap 5. Buy 3, get rejected
// buying 3 more with a "2 remaining" hint, then top up with 2.
func TestTicketShop_PurchaseTickets_CapScenario(t *testing.T) {
	t.Parallel()

	const participantID = int64(42)

	held := int64(0)
	pot := int64(0)
	balance := int64(10000)

	buy := func(quantity int64) (*entities.CapacityExceededError, error) {
		ledgerRepo, settingsRepo, economy, publisher := setupTicketShopMocks()
		settingsRepo.On("GetOrCreate", mock.Anything).Return(testSettings(), nil)

		ledger := entities.NewLedger()
		ledger.Pot = pot
		ledger.Tickets[participantID] = held
		ledgerRepo.On("GetForUpdate", mock.Anything).Return(ledger, nil)

		cost := 100 * quantity
		economy.On("Withdraw", mock.Anything, participantID, cost, entities.TransactionTypeTicketPurchase, mock.Anything).
			Return(&entities.Account{ParticipantID: participantID, Balance: balance - cost}, nil).Maybe()
		ledgerRepo.On("SetTickets", mock.Anything, participantID, held+quantity).Return(nil).Maybe()
		ledgerRepo.On("IncrementPot", mock.Anything, cost).Return(nil).Maybe()
		publisher.On("Publish", mock.Anything).Return(nil).Maybe()

		shop := NewTicketShop(ledgerRepo, settingsRepo, economy, publisher)
		result, err := shop.PurchaseTickets(context.Background(), participantID, quantity)
		if err != nil {
			var capErr *entities.CapacityExceededError
			if errors.As(err, &capErr) {
				return capErr, err
			}
			return nil, err
		}
		held = result.TotalTickets
		pot = result.Pot
		balance = result.NewBalance
		return nil, nil
	}

	_, err := buy(3)
	require.NoError(t, err)
	assert.Equal(t, int64(3), held)
	assert.Equal(t, int64(300), pot)

	capErr, err := buy(3)
	require.Error(t, err)
	require.NotNil(t, capErr)
	assert.Equal(t, int64(2), capErr.Remaining)
	assert.Equal(t, int64(3), held, "rejected purchase leaves state unchanged")
	assert.Equal(t, int64(300), pot)

	_, err = buy(2)
	require.NoError(t, err)
	assert.Equal(t, int64(5), held)
	assert.Equal(t, int64(500), pot)
}
