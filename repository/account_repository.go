package repository

import (
	"context"
	"fmt"

	"lotto/database"
	"lotto/domain/entities"

	"github.com/jackc/pgx/v5"
)

// AccountRepository implements data access for participant currency accounts
type AccountRepository struct {
	q Queryable
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *database.DB) *AccountRepository {
	return &AccountRepository{q: db.Pool}
}

// NewAccountRepositoryWithTx creates a new account repository with a transaction
func NewAccountRepositoryWithTx(tx Queryable) *AccountRepository {
	return &AccountRepository{q: tx}
}

// GetByParticipantID retrieves an account, nil if it does not exist
func (r *AccountRepository) GetByParticipantID(ctx context.Context, participantID int64) (*entities.Account, error) {
	query := `
		SELECT participant_id, balance, created_at, updated_at
		FROM accounts
		WHERE participant_id = $1
	`

	var account entities.Account
	err := r.q.QueryRow(ctx, query, participantID).Scan(
		&account.ParticipantID,
		&account.Balance,
		&account.CreatedAt,
		&account.UpdatedAt,
	)

	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get account for participant %d: %w", participantID, err)
	}

	return &account, nil
}

// Create creates a new account with the given initial balance
func (r *AccountRepository) Create(ctx context.Context, participantID, initialBalance int64) (*entities.Account, error) {
	query := `
		INSERT INTO accounts (participant_id, balance)
		VALUES ($1, $2)
		RETURNING participant_id, balance, created_at, updated_at
	`

	var account entities.Account
	err := r.q.QueryRow(ctx, query, participantID, initialBalance).Scan(
		&account.ParticipantID,
		&account.Balance,
		&account.CreatedAt,
		&account.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create account for participant %d: %w", participantID, err)
	}

	return &account, nil
}

// UpdateBalance sets an account's balance
func (r *AccountRepository) UpdateBalance(ctx context.Context, participantID, newBalance int64) error {
	query := `
		UPDATE accounts
		SET balance = $1, updated_at = NOW()
		WHERE participant_id = $2
	`

	result, err := r.q.Exec(ctx, query, newBalance, participantID)
	if err != nil {
		return fmt.Errorf("failed to update balance for participant %d: %w", participantID, err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("account for participant %d not found", participantID)
	}

	return nil
}
