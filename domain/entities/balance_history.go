package entities

import (
	"errors"
	"time"
)

// BalanceHistory represents a historical balance change on an account
type BalanceHistory struct {
	ID                  int64           `db:"id"`
	ParticipantID       int64           `db:"participant_id"`
	BalanceBefore       int64           `db:"balance_before"`
	BalanceAfter        int64           `db:"balance_after"`
	ChangeAmount        int64           `db:"change_amount"`
	TransactionType     TransactionType `db:"transaction_type"`
	TransactionMetadata map[string]any  `db:"transaction_metadata"`
	CreatedAt           time.Time       `db:"created_at"`
}

// IsPositiveChange returns true if the change amount is positive
func (bh *BalanceHistory) IsPositiveChange() bool {
	return bh.ChangeAmount > 0
}

// GetTransactionDescription returns a human-readable description of the transaction
func (bh *BalanceHistory) GetTransactionDescription() string {
	switch bh.TransactionType {
	case TransactionTypeTicketPurchase:
		return "Ticket purchase"
	case TransactionTypePotDeposit:
		return "Pot deposit"
	case TransactionTypeLotteryWin:
		return "Lottery win"
	case TransactionTypeInitial:
		return "Initial balance"
	case TransactionTypeAdminAdjustment:
		return "Admin adjustment"
	default:
		return string(bh.TransactionType)
	}
}

// ValidateTransaction performs basic validation on the transaction
func (bh *BalanceHistory) ValidateTransaction() error {
	if bh.ChangeAmount == 0 {
		return errors.New("change amount cannot be zero")
	}

	if bh.BalanceAfter != bh.BalanceBefore+bh.ChangeAmount {
		return errors.New("balance calculation is inconsistent")
	}

	return nil
}
