package entities

// TransactionType represents the type of balance change
type TransactionType string

// All transaction types supported by the system
const (
	// Lottery transactions
	TransactionTypeTicketPurchase TransactionType = "ticket_purchase"
	TransactionTypePotDeposit     TransactionType = "pot_deposit"
	TransactionTypeLotteryWin     TransactionType = "lottery_win"

	// System transactions
	TransactionTypeInitial         TransactionType = "initial"
	TransactionTypeAdminAdjustment TransactionType = "admin_adjustment"
)

// IsDebit returns true if the transaction type takes money from the account
func (tt TransactionType) IsDebit() bool {
	return tt == TransactionTypeTicketPurchase || tt == TransactionTypePotDeposit
}

// IsCredit returns true if the transaction type pays money into the account
func (tt TransactionType) IsCredit() bool {
	return tt == TransactionTypeLotteryWin || tt == TransactionTypeInitial
}

// String returns the string representation of the transaction type
func (tt TransactionType) String() string {
	return string(tt)
}
