package entities

import "time"

// Account is a participant's currency account. Accounts are created lazily on
// first use with the configured starting balance.
type Account struct {
	ParticipantID int64     `db:"participant_id"`
	Balance       int64     `db:"balance"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// CanAfford reports whether the account covers the given amount
func (a *Account) CanAfford(amount int64) bool {
	return a.Balance >= amount
}
