package services

import (
	"context"
	"fmt"

	"lotto/domain/entities"
	"lotto/domain/events"
	"lotto/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// ticketShop implements the ticket purchase path. All checks run against a
// row-locked ledger snapshot so concurrent purchases cannot oversell the
// per-participant cap or clobber the pot.
type ticketShop struct {
	ledgerRepo     interfaces.LedgerRepository
	settingsRepo   interfaces.SettingsRepository
	economy        interfaces.EconomyService
	eventPublisher interfaces.EventPublisher
}

// NewTicketShop creates a new ticket shop
func NewTicketShop(
	ledgerRepo interfaces.LedgerRepository,
	settingsRepo interfaces.SettingsRepository,
	economy interfaces.EconomyService,
	eventPublisher interfaces.EventPublisher,
) interfaces.TicketShop {
	return &ticketShop{
		ledgerRepo:     ledgerRepo,
		settingsRepo:   settingsRepo,
		economy:        economy,
		eventPublisher: eventPublisher,
	}
}

// PurchaseTickets validates and applies a ticket purchase
func (s *ticketShop) PurchaseTickets(ctx context.Context, participantID, quantity int64) (*interfaces.PurchaseResult, error) {
	if quantity <= 0 {
		return nil, entities.ErrInvalidAmount
	}

	settings, err := s.settingsRepo.GetOrCreate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	ledger, err := s.ledgerRepo.GetForUpdate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	currentTickets := ledger.TicketsOf(participantID)
	newTotal := currentTickets + quantity
	if newTotal > settings.MaxTickets {
		return nil, entities.NewCapacityExceededError(settings.MaxTickets, currentTickets)
	}

	cost := settings.TicketCost * quantity

	// Withdrawal first. It shares the transaction with the ledger update, so
	// a failure on either side leaves both untouched.
	account, err := s.economy.Withdraw(ctx, participantID, cost, entities.TransactionTypeTicketPurchase, map[string]any{
		"quantity":    quantity,
		"ticket_cost": settings.TicketCost,
	})
	if err != nil {
		return nil, err
	}

	if err := s.ledgerRepo.SetTickets(ctx, participantID, newTotal); err != nil {
		return nil, fmt.Errorf("failed to update tickets: %w", err)
	}
	if err := s.ledgerRepo.IncrementPot(ctx, cost); err != nil {
		return nil, fmt.Errorf("failed to increment pot: %w", err)
	}

	newPot := ledger.Pot + cost
	result := &interfaces.PurchaseResult{
		Quantity:     quantity,
		TotalTickets: newTotal,
		Cost:         cost,
		NewBalance:   account.Balance,
		Pot:          newPot,
	}

	if err := s.eventPublisher.Publish(events.TicketPurchasedEvent{
		ParticipantID: participantID,
		Quantity:      quantity,
		TotalTickets:  newTotal,
		Cost:          cost,
		Pot:           newPot,
	}); err != nil {
		log.WithError(err).Error("Failed to publish ticket purchased event")
	}

	log.WithFields(log.Fields{
		"participantID": participantID,
		"quantity":      quantity,
		"totalTickets":  newTotal,
		"cost":          cost,
		"pot":           newPot,
	}).Info("Tickets purchased")

	return result, nil
}
