package repository

import (
	"context"
	"fmt"
	"time"

	"lotto/database"
	"lotto/domain/entities"
)

// LedgerRepository implements data access for the single persisted lottery
// ledger. The ledger lives in two tables: lottery_state holds the pot and
// next draw time in a single fixed row, lottery_tickets holds one row per
// participant with a positive ticket count.
type LedgerRepository struct {
	q Queryable
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db *database.DB) *LedgerRepository {
	return &LedgerRepository{q: db.Pool}
}

// NewLedgerRepositoryWithTx creates a new ledger repository with a transaction
func NewLedgerRepositoryWithTx(tx Queryable) *LedgerRepository {
	return &LedgerRepository{q: tx}
}

// Get returns the current ledger snapshot
func (r *LedgerRepository) Get(ctx context.Context) (*entities.Ledger, error) {
	return r.get(ctx, false)
}

// GetForUpdate returns the ledger snapshot with the state row locked for the
// duration of the surrounding transaction
func (r *LedgerRepository) GetForUpdate(ctx context.Context) (*entities.Ledger, error) {
	return r.get(ctx, true)
}

func (r *LedgerRepository) get(ctx context.Context, forUpdate bool) (*entities.Ledger, error) {
	stateQuery := `
		SELECT pot
		FROM lottery_state
		WHERE id = 1
	`
	if forUpdate {
		stateQuery += " FOR UPDATE"
	}

	ledger := entities.NewLedger()
	if err := r.q.QueryRow(ctx, stateQuery).Scan(&ledger.Pot); err != nil {
		return nil, fmt.Errorf("failed to get lottery state: %w", err)
	}

	ticketsQuery := `
		SELECT participant_id, tickets
		FROM lottery_tickets
		WHERE tickets > 0
	`

	rows, err := r.q.Query(ctx, ticketsQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to get lottery tickets: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var participantID, tickets int64
		if err := rows.Scan(&participantID, &tickets); err != nil {
			return nil, fmt.Errorf("failed to scan lottery ticket row: %w", err)
		}
		ledger.Tickets[participantID] = tickets
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate lottery tickets: %w", err)
	}

	return ledger, nil
}

// SetTickets sets a participant's ticket count
func (r *LedgerRepository) SetTickets(ctx context.Context, participantID, tickets int64) error {
	query := `
		INSERT INTO lottery_tickets (participant_id, tickets)
		VALUES ($1, $2)
		ON CONFLICT (participant_id) DO UPDATE SET tickets = EXCLUDED.tickets
	`

	if _, err := r.q.Exec(ctx, query, participantID, tickets); err != nil {
		return fmt.Errorf("failed to set tickets for participant %d: %w", participantID, err)
	}

	return nil
}

// IncrementPot atomically adds amount to the pot
func (r *LedgerRepository) IncrementPot(ctx context.Context, amount int64) error {
	query := `
		UPDATE lottery_state
		SET pot = pot + $1
		WHERE id = 1
	`

	result, err := r.q.Exec(ctx, query, amount)
	if err != nil {
		return fmt.Errorf("failed to increment pot: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("lottery state row not found")
	}

	return nil
}

// Reset clears all tickets and zeroes the pot
func (r *LedgerRepository) Reset(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM lottery_tickets`); err != nil {
		return fmt.Errorf("failed to clear lottery tickets: %w", err)
	}

	if _, err := r.q.Exec(ctx, `UPDATE lottery_state SET pot = 0 WHERE id = 1`); err != nil {
		return fmt.Errorf("failed to zero pot: %w", err)
	}

	return nil
}

// GetNextDrawTime returns the scheduled time of the next draw, nil if unset
func (r *LedgerRepository) GetNextDrawTime(ctx context.Context) (*time.Time, error) {
	query := `
		SELECT next_draw_time
		FROM lottery_state
		WHERE id = 1
	`

	var nextDrawTime *time.Time
	if err := r.q.QueryRow(ctx, query).Scan(&nextDrawTime); err != nil {
		return nil, fmt.Errorf("failed to get next draw time: %w", err)
	}

	return nextDrawTime, nil
}

// SetNextDrawTime schedules the next draw
func (r *LedgerRepository) SetNextDrawTime(ctx context.Context, t time.Time) error {
	query := `
		UPDATE lottery_state
		SET next_draw_time = $1
		WHERE id = 1
	`

	result, err := r.q.Exec(ctx, query, t)
	if err != nil {
		return fmt.Errorf("failed to set next draw time: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("lottery state row not found")
	}

	return nil
}
