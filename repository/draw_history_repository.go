package repository

import (
	"context"
	"fmt"

	"lotto/database"
	"lotto/domain/entities"
)

// DrawHistoryRepository implements data access for completed draw records
type DrawHistoryRepository struct {
	q Queryable
}

// NewDrawHistoryRepository creates a new draw history repository
func NewDrawHistoryRepository(db *database.DB) *DrawHistoryRepository {
	return &DrawHistoryRepository{q: db.Pool}
}

// NewDrawHistoryRepositoryWithTx creates a new draw history repository with a transaction
func NewDrawHistoryRepositoryWithTx(tx Queryable) *DrawHistoryRepository {
	return &DrawHistoryRepository{q: tx}
}

// Record persists a completed draw
func (r *DrawHistoryRepository) Record(ctx context.Context, record *entities.DrawRecord) error {
	query := `
		INSERT INTO draw_history (id, winner_id, payout, pot, total_tickets, winner_tickets, drawn_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.q.Exec(ctx, query,
		record.ID,
		record.WinnerID,
		record.Payout,
		record.Pot,
		record.TotalTickets,
		record.WinnerTickets,
		record.DrawnAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record draw %s: %w", record.ID, err)
	}

	return nil
}

// GetRecent returns the most recent draw records, newest first
func (r *DrawHistoryRepository) GetRecent(ctx context.Context, limit int) ([]*entities.DrawRecord, error) {
	query := `
		SELECT id, winner_id, payout, pot, total_tickets, winner_tickets, drawn_at
		FROM draw_history
		ORDER BY drawn_at DESC
		LIMIT $1
	`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent draws: %w", err)
	}
	defer rows.Close()

	var records []*entities.DrawRecord
	for rows.Next() {
		var record entities.DrawRecord
		err := rows.Scan(
			&record.ID,
			&record.WinnerID,
			&record.Payout,
			&record.Pot,
			&record.TotalTickets,
			&record.WinnerTickets,
			&record.DrawnAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan draw record: %w", err)
		}
		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate draw records: %w", err)
	}

	return records, nil
}
