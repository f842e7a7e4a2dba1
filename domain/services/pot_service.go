package services

import (
	"context"
	"fmt"

	"lotto/domain/entities"
	"lotto/domain/events"
	"lotto/domain/interfaces"

	log "github.com/sirupsen/logrus"
)

// potService implements direct deposits into the pot, outside the ticket
// purchase path
type potService struct {
	ledgerRepo     interfaces.LedgerRepository
	settingsRepo   interfaces.SettingsRepository
	economy        interfaces.EconomyService
	eventPublisher interfaces.EventPublisher
}

// NewPotService creates a new pot service
func NewPotService(
	ledgerRepo interfaces.LedgerRepository,
	settingsRepo interfaces.SettingsRepository,
	economy interfaces.EconomyService,
	eventPublisher interfaces.EventPublisher,
) interfaces.PotService {
	return &potService{
		ledgerRepo:     ledgerRepo,
		settingsRepo:   settingsRepo,
		economy:        economy,
		eventPublisher: eventPublisher,
	}
}

// Deposit adds amount to the pot
func (s *potService) Deposit(ctx context.Context, actor interfaces.Actor, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, entities.ErrInvalidAmount
	}

	settings, err := s.settingsRepo.GetOrCreate(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load settings: %w", err)
	}

	if !actor.Admin && amount > settings.MaxDeposit {
		return 0, entities.ErrDepositLimitExceeded
	}

	ledger, err := s.ledgerRepo.GetForUpdate(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to load ledger: %w", err)
	}

	// Console deposits are externally funded; everyone else pays from their
	// account before the pot moves.
	if !actor.Console {
		if _, err := s.economy.Withdraw(ctx, actor.ParticipantID, amount, entities.TransactionTypePotDeposit, nil); err != nil {
			return 0, err
		}
	}

	if err := s.ledgerRepo.IncrementPot(ctx, amount); err != nil {
		return 0, fmt.Errorf("failed to increment pot: %w", err)
	}

	newPot := ledger.Pot + amount

	actorID := actor.ParticipantID
	if actor.Console {
		actorID = 0
	}
	if err := s.eventPublisher.Publish(events.PotDepositEvent{
		ActorID: actorID,
		Amount:  amount,
		Pot:     newPot,
	}); err != nil {
		log.WithError(err).Error("Failed to publish pot deposit event")
	}

	log.WithFields(log.Fields{
		"actorID": actorID,
		"admin":   actor.Admin,
		"console": actor.Console,
		"amount":  amount,
		"pot":     newPot,
	}).Info("Pot deposit applied")

	return newPot, nil
}
