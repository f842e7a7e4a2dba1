package entities

import (
	"time"

	"github.com/google/uuid"
)

// DrawRecord is the persisted record of a completed draw
type DrawRecord struct {
	ID            uuid.UUID `db:"id"`
	WinnerID      int64     `db:"winner_id"`
	Payout        int64     `db:"payout"`
	Pot           int64     `db:"pot"`
	TotalTickets  int64     `db:"total_tickets"`
	WinnerTickets int64     `db:"winner_tickets"`
	DrawnAt       time.Time `db:"drawn_at"`
}

// DrawResult is the outcome of a draw attempt, consumed by announcement and
// event publishing. Postponed results carry no winner and perform no payout.
type DrawResult struct {
	Postponed     bool
	Record        *DrawRecord
	NextDrawTime  time.Time
	WinnerBalance int64 // winner's balance after payout, 0 when postponed
}
