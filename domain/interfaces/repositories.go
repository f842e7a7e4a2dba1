package interfaces

import (
	"context"
	"time"

	"lotto/domain/entities"
	"lotto/domain/events"
)

// LedgerRepository defines data access for the single persisted lottery ledger
type LedgerRepository interface {
	// Get returns the current ledger snapshot (tickets and pot)
	Get(ctx context.Context) (*entities.Ledger, error)

	// GetForUpdate returns the ledger snapshot with the state row locked for
	// the duration of the surrounding transaction. Every read-modify-write
	// sequence goes through this to serialize concurrent mutations.
	GetForUpdate(ctx context.Context) (*entities.Ledger, error)

	// SetTickets sets a participant's ticket count
	SetTickets(ctx context.Context, participantID, tickets int64) error

	// IncrementPot atomically adds amount to the pot
	IncrementPot(ctx context.Context, amount int64) error

	// Reset clears all tickets and zeroes the pot in one statement batch
	Reset(ctx context.Context) error

	// GetNextDrawTime returns the scheduled time of the next draw, nil if unset
	GetNextDrawTime(ctx context.Context) (*time.Time, error)

	// SetNextDrawTime schedules the next draw
	SetNextDrawTime(ctx context.Context, t time.Time) error
}

// SettingsRepository defines data access for the live lottery settings
type SettingsRepository interface {
	// GetOrCreate returns the settings row, creating it with defaults if absent
	GetOrCreate(ctx context.Context) (*entities.LotterySettings, error)

	// Update persists modified settings
	Update(ctx context.Context, settings *entities.LotterySettings) error
}

// AccountRepository defines data access for participant currency accounts
type AccountRepository interface {
	// GetByParticipantID retrieves an account, nil if it does not exist
	GetByParticipantID(ctx context.Context, participantID int64) (*entities.Account, error)

	// Create creates a new account with the given initial balance
	Create(ctx context.Context, participantID, initialBalance int64) (*entities.Account, error)

	// UpdateBalance sets an account's balance
	UpdateBalance(ctx context.Context, participantID, newBalance int64) error
}

// BalanceHistoryRepository defines the interface for balance history tracking
type BalanceHistoryRepository interface {
	// Record creates a new balance history entry
	Record(ctx context.Context, history *entities.BalanceHistory) error

	// GetByParticipant returns balance history for a participant, newest first
	GetByParticipant(ctx context.Context, participantID int64, limit int) ([]*entities.BalanceHistory, error)
}

// DrawHistoryRepository defines data access for completed draw records
type DrawHistoryRepository interface {
	// Record persists a completed draw
	Record(ctx context.Context, record *entities.DrawRecord) error

	// GetRecent returns the most recent draw records, newest first
	GetRecent(ctx context.Context, limit int) ([]*entities.DrawRecord, error)
}

// EventPublisher defines the interface for publishing domain events
type EventPublisher interface {
	Publish(event events.Event) error
}

// TransactionalEventPublisher buffers events during a transaction and releases
// them on commit, or drops them on rollback
type TransactionalEventPublisher interface {
	EventPublisher

	// Flush publishes all pending events after a successful commit
	Flush(ctx context.Context) error

	// Discard drops all pending events on rollback
	Discard()
}
