package repository

import (
	"context"
	"fmt"
	"time"

	"lotto/database"
	"lotto/domain/entities"

	"github.com/jackc/pgx/v5"
)

// SettingsRepository implements data access for the live lottery settings.
// Settings occupy a single fixed row; intervals are stored in seconds.
type SettingsRepository struct {
	q Queryable
}

// NewSettingsRepository creates a new settings repository
func NewSettingsRepository(db *database.DB) *SettingsRepository {
	return &SettingsRepository{q: db.Pool}
}

// NewSettingsRepositoryWithTx creates a new settings repository with a transaction
func NewSettingsRepositoryWithTx(tx Queryable) *SettingsRepository {
	return &SettingsRepository{q: tx}
}

// GetOrCreate retrieves the settings row or creates it with defaults if not found
func (r *SettingsRepository) GetOrCreate(ctx context.Context) (*entities.LotterySettings, error) {
	query := `
		SELECT draw_interval_seconds, ticket_cost, payout_percentage,
		       max_tickets, max_deposit, broadcast_interval_seconds, announce_channel_id
		FROM lottery_settings
		WHERE id = 1
	`

	settings, err := r.scanSettings(r.q.QueryRow(ctx, query))
	if err == nil {
		return settings, nil
	}
	if err != pgx.ErrNoRows {
		return nil, fmt.Errorf("failed to get lottery settings: %w", err)
	}

	// If not found, create the row with defaults. A concurrent first caller
	// may win the insert; re-read the row either way.
	defaults := entities.NewDefaultLotterySettings()
	insertQuery := `
		INSERT INTO lottery_settings (id, draw_interval_seconds, ticket_cost, payout_percentage,
		                              max_tickets, max_deposit, broadcast_interval_seconds, announce_channel_id)
		VALUES (1, $1, $2, $3, $4, $5, $6, NULL)
		ON CONFLICT (id) DO NOTHING
	`

	if _, err := r.q.Exec(ctx, insertQuery,
		int64(defaults.DrawInterval/time.Second),
		defaults.TicketCost,
		defaults.PayoutPercentage,
		defaults.MaxTickets,
		defaults.MaxDeposit,
		int64(defaults.BroadcastInterval/time.Second),
	); err != nil {
		return nil, fmt.Errorf("failed to create lottery settings: %w", err)
	}

	settings, err = r.scanSettings(r.q.QueryRow(ctx, query))
	if err != nil {
		return nil, fmt.Errorf("failed to get lottery settings: %w", err)
	}

	return settings, nil
}

// Update persists modified settings
func (r *SettingsRepository) Update(ctx context.Context, settings *entities.LotterySettings) error {
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("invalid lottery settings: %w", err)
	}

	query := `
		UPDATE lottery_settings
		SET draw_interval_seconds = $1,
		    ticket_cost = $2,
		    payout_percentage = $3,
		    max_tickets = $4,
		    max_deposit = $5,
		    broadcast_interval_seconds = $6,
		    announce_channel_id = $7
		WHERE id = 1
	`

	result, err := r.q.Exec(ctx, query,
		int64(settings.DrawInterval/time.Second),
		settings.TicketCost,
		settings.PayoutPercentage,
		settings.MaxTickets,
		settings.MaxDeposit,
		int64(settings.BroadcastInterval/time.Second),
		settings.AnnounceChannelID,
	)
	if err != nil {
		return fmt.Errorf("failed to update lottery settings: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("lottery settings row not found")
	}

	return nil
}

func (r *SettingsRepository) scanSettings(row pgx.Row) (*entities.LotterySettings, error) {
	var settings entities.LotterySettings
	var drawIntervalSeconds, broadcastIntervalSeconds int64

	err := row.Scan(
		&drawIntervalSeconds,
		&settings.TicketCost,
		&settings.PayoutPercentage,
		&settings.MaxTickets,
		&settings.MaxDeposit,
		&broadcastIntervalSeconds,
		&settings.AnnounceChannelID,
	)
	if err != nil {
		return nil, err
	}

	settings.DrawInterval = time.Duration(drawIntervalSeconds) * time.Second
	settings.BroadcastInterval = time.Duration(broadcastIntervalSeconds) * time.Second
	return &settings, nil
}
