package entities

import (
	"errors"
	"fmt"
)

// Validation and payment failures reported to the caller. None of these leave
// any state mutation behind.
var (
	// ErrInvalidAmount is returned for non-positive quantities or amounts
	ErrInvalidAmount = errors.New("amount must be a positive integer")

	// ErrInsufficientFunds is returned when an account cannot cover a withdrawal
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrDepositLimitExceeded is returned when a non-admin deposit exceeds the limit
	ErrDepositLimitExceeded = errors.New("deposit exceeds the maximum allowed amount")
)

// CapacityExceededError is returned when a purchase would push a participant
// past the per-participant ticket cap. Remaining carries how many tickets can
// still be bought, floored at zero; callers surface it to the user.
type CapacityExceededError struct {
	MaxTickets int64
	Remaining  int64
}

func (e *CapacityExceededError) Error() string {
	if e.Remaining > 0 {
		return fmt.Sprintf("maximum of %d tickets reached, only %d more can be bought", e.MaxTickets, e.Remaining)
	}
	return fmt.Sprintf("maximum of %d tickets reached", e.MaxTickets)
}

// NewCapacityExceededError builds the error from the cap and the participant's
// current holdings
func NewCapacityExceededError(maxTickets, currentTickets int64) *CapacityExceededError {
	remaining := maxTickets - currentTickets
	if remaining < 0 {
		remaining = 0
	}
	return &CapacityExceededError{MaxTickets: maxTickets, Remaining: remaining}
}
