package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"lotto/domain/entities"
	"lotto/domain/events"
	"lotto/domain/interfaces"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// drawService implements the weighted draw. Payout, draw record, ledger reset
// and next-draw scheduling all happen against the same transaction, so the
// caller's commit makes them atomic: a winner is never paid without the pot
// being cleared.
type drawService struct {
	ledgerRepo      interfaces.LedgerRepository
	settingsRepo    interfaces.SettingsRepository
	drawHistoryRepo interfaces.DrawHistoryRepository
	economy         interfaces.EconomyService
	eventPublisher  interfaces.EventPublisher
}

// NewDrawService creates a new draw service
func NewDrawService(
	ledgerRepo interfaces.LedgerRepository,
	settingsRepo interfaces.SettingsRepository,
	drawHistoryRepo interfaces.DrawHistoryRepository,
	economy interfaces.EconomyService,
	eventPublisher interfaces.EventPublisher,
) interfaces.DrawService {
	return &drawService{
		ledgerRepo:      ledgerRepo,
		settingsRepo:    settingsRepo,
		drawHistoryRepo: drawHistoryRepo,
		economy:         economy,
		eventPublisher:  eventPublisher,
	}
}

// ConductDraw selects a winner weighted by ticket count, pays out, and resets the ledger
func (s *drawService) ConductDraw(ctx context.Context) (*entities.DrawResult, error) {
	settings, err := s.settingsRepo.GetOrCreate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}

	ledger, err := s.ledgerRepo.GetForUpdate(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	nextDrawTime := time.Now().UTC().Add(settings.DrawInterval)
	if err := s.ledgerRepo.SetNextDrawTime(ctx, nextDrawTime); err != nil {
		return nil, fmt.Errorf("failed to schedule next draw: %w", err)
	}

	totalTickets := ledger.TotalTickets()
	if totalTickets == 0 {
		// Nobody entered. Normal outcome, not an error: no payout, no reset.
		if err := s.eventPublisher.Publish(events.DrawPostponedEvent{
			NextDrawTime: nextDrawTime.Unix(),
		}); err != nil {
			log.WithError(err).Error("Failed to publish draw postponed event")
		}

		log.WithField("nextDrawTime", nextDrawTime).Info("Lottery draw postponed, no tickets bought")

		return &entities.DrawResult{
			Postponed:    true,
			NextDrawTime: nextDrawTime,
		}, nil
	}

	winnerID, err := pickWeightedWinner(ledger.Tickets, totalTickets)
	if err != nil {
		return nil, fmt.Errorf("failed to pick winner: %w", err)
	}

	payout := ledger.PayoutAmount(settings.PayoutPercentage)

	record := &entities.DrawRecord{
		ID:            uuid.New(),
		WinnerID:      winnerID,
		Payout:        payout,
		Pot:           ledger.Pot,
		TotalTickets:  totalTickets,
		WinnerTickets: ledger.TicketsOf(winnerID),
		DrawnAt:       time.Now().UTC(),
	}

	// Payout before reset. Both ride the surrounding transaction; if the
	// deposit fails the whole draw aborts and the pot survives for the next
	// interval.
	winnerAccount, err := s.economy.Deposit(ctx, winnerID, payout, entities.TransactionTypeLotteryWin, map[string]any{
		"draw_id": record.ID.String(),
		"pot":     ledger.Pot,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to pay out winner %d: %w", winnerID, err)
	}

	if err := s.drawHistoryRepo.Record(ctx, record); err != nil {
		return nil, fmt.Errorf("failed to record draw: %w", err)
	}

	if err := s.ledgerRepo.Reset(ctx); err != nil {
		return nil, fmt.Errorf("failed to reset ledger: %w", err)
	}

	if err := s.eventPublisher.Publish(events.DrawCompletedEvent{
		DrawID:        record.ID.String(),
		WinnerID:      winnerID,
		Payout:        payout,
		Pot:           record.Pot,
		TotalTickets:  totalTickets,
		WinnerTickets: record.WinnerTickets,
	}); err != nil {
		log.WithError(err).Error("Failed to publish draw completed event")
	}

	log.WithFields(log.Fields{
		"drawID":        record.ID,
		"winnerID":      winnerID,
		"payout":        payout,
		"pot":           record.Pot,
		"totalTickets":  totalTickets,
		"winnerTickets": record.WinnerTickets,
	}).Info("Lottery draw completed")

	return &entities.DrawResult{
		Record:        record,
		NextDrawTime:  nextDrawTime,
		WinnerBalance: winnerAccount.Balance,
	}, nil
}

// pickWeightedWinner selects one ticket uniformly at random and returns its
// holder, so a participant's win probability is proportional to their ticket
// count. Equivalent to expanding every ticket into a pool and drawing one
// element, without materializing the pool.
func pickWeightedWinner(tickets map[int64]int64, totalTickets int64) (int64, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(totalTickets))
	if err != nil {
		return 0, fmt.Errorf("random generation failed: %w", err)
	}

	target := n.Int64()
	var cumulative int64
	for participantID, count := range tickets {
		if count <= 0 {
			continue
		}
		cumulative += count
		if target < cumulative {
			return participantID, nil
		}
	}

	// Unreachable when totalTickets matches the map contents
	return 0, fmt.Errorf("weighted selection failed: target %d outside %d tickets", target, totalTickets)
}
