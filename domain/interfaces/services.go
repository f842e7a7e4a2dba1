package interfaces

import (
	"context"

	"lotto/domain/entities"
)

// Actor describes who is invoking an operation. Permission evaluation happens
// at the host (command) layer; the domain only consumes the resulting
// capabilities.
type Actor struct {
	// ParticipantID identifies the actor's currency account. Ignored for
	// console actors.
	ParticipantID int64

	// Admin actors bypass the per-deposit limit
	Admin bool

	// Console actors have no account; their deposits are externally funded
	// and skip the withdrawal step
	Console bool
}

// PurchaseResult is returned from a successful ticket purchase
type PurchaseResult struct {
	Quantity     int64
	TotalTickets int64
	Cost         int64
	NewBalance   int64
	Pot          int64
}

// TicketShop defines the ticket purchase operation
type TicketShop interface {
	// PurchaseTickets validates and applies a ticket purchase for a
	// participant. The ledger update and the account withdrawal either both
	// happen or neither does.
	PurchaseTickets(ctx context.Context, participantID, quantity int64) (*PurchaseResult, error)
}

// PotService defines the direct pot deposit operation
type PotService interface {
	// Deposit adds amount to the pot. Non-admin actors are bound by the
	// deposit limit; non-console actors pay from their account.
	Deposit(ctx context.Context, actor Actor, amount int64) (newPot int64, err error)
}

// DrawService defines the draw operation
type DrawService interface {
	// ConductDraw selects a winner weighted by ticket count, pays out, and
	// resets the ledger. An empty ledger yields a postponed result with no
	// mutation.
	ConductDraw(ctx context.Context) (*entities.DrawResult, error)
}

// EconomyService defines the currency account operations backing purchases,
// deposits and payouts
type EconomyService interface {
	// GetOrCreateAccount retrieves an account, creating it lazily with the
	// configured starting balance
	GetOrCreateAccount(ctx context.Context, participantID int64) (*entities.Account, error)

	// Withdraw removes amount from an account; ErrInsufficientFunds when the
	// balance does not cover it
	Withdraw(ctx context.Context, participantID, amount int64, txType entities.TransactionType, metadata map[string]any) (*entities.Account, error)

	// Deposit adds amount to an account, creating the account if absent
	Deposit(ctx context.Context, participantID, amount int64, txType entities.TransactionType, metadata map[string]any) (*entities.Account, error)
}
