package repository

import (
	"context"
	"fmt"

	"lotto/database"
	"lotto/domain/entities"
)

// BalanceHistoryRepository implements balance history tracking
type BalanceHistoryRepository struct {
	q Queryable
}

// NewBalanceHistoryRepository creates a new balance history repository
func NewBalanceHistoryRepository(db *database.DB) *BalanceHistoryRepository {
	return &BalanceHistoryRepository{q: db.Pool}
}

// NewBalanceHistoryRepositoryWithTx creates a new balance history repository with a transaction
func NewBalanceHistoryRepositoryWithTx(tx Queryable) *BalanceHistoryRepository {
	return &BalanceHistoryRepository{q: tx}
}

// Record creates a new balance history entry
func (r *BalanceHistoryRepository) Record(ctx context.Context, history *entities.BalanceHistory) error {
	query := `
		INSERT INTO balance_history (participant_id, balance_before, balance_after,
		                             change_amount, transaction_type, transaction_metadata)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	err := r.q.QueryRow(ctx, query,
		history.ParticipantID,
		history.BalanceBefore,
		history.BalanceAfter,
		history.ChangeAmount,
		history.TransactionType,
		history.TransactionMetadata,
	).Scan(&history.ID, &history.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record balance history for participant %d: %w", history.ParticipantID, err)
	}

	return nil
}

// GetByParticipant returns balance history for a participant, newest first
func (r *BalanceHistoryRepository) GetByParticipant(ctx context.Context, participantID int64, limit int) ([]*entities.BalanceHistory, error) {
	query := `
		SELECT id, participant_id, balance_before, balance_after,
		       change_amount, transaction_type, transaction_metadata, created_at
		FROM balance_history
		WHERE participant_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, participantID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get balance history for participant %d: %w", participantID, err)
	}
	defer rows.Close()

	var entries []*entities.BalanceHistory
	for rows.Next() {
		var entry entities.BalanceHistory
		err := rows.Scan(
			&entry.ID,
			&entry.ParticipantID,
			&entry.BalanceBefore,
			&entry.BalanceAfter,
			&entry.ChangeAmount,
			&entry.TransactionType,
			&entry.TransactionMetadata,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan balance history entry: %w", err)
		}
		entries = append(entries, &entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate balance history: %w", err)
	}

	return entries, nil
}
