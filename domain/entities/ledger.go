package entities

// Ledger is a snapshot of the lottery's persisted state: how many tickets each
// participant holds for the upcoming draw, and the accumulated pot in the
// smallest currency unit.
type Ledger struct {
	Tickets map[int64]int64
	Pot     int64
}

// NewLedger creates an empty ledger
func NewLedger() *Ledger {
	return &Ledger{
		Tickets: make(map[int64]int64),
	}
}

// TicketsOf returns the ticket count held by a participant, 0 if absent
func (l *Ledger) TicketsOf(participantID int64) int64 {
	return l.Tickets[participantID]
}

// TotalTickets returns the total number of tickets across all participants
func (l *Ledger) TotalTickets() int64 {
	var total int64
	for _, count := range l.Tickets {
		total += count
	}
	return total
}

// ParticipantCount returns the number of participants holding at least one ticket
func (l *Ledger) ParticipantCount() int {
	count := 0
	for _, tickets := range l.Tickets {
		if tickets > 0 {
			count++
		}
	}
	return count
}

// PayoutAmount returns the portion of the pot paid to the winner at the given
// percentage. Integer arithmetic only; money never goes through floats.
func (l *Ledger) PayoutAmount(payoutPercentage int64) int64 {
	return l.Pot * payoutPercentage / 100
}

// Reset returns a fresh empty ledger. The receiver is not modified; the caller
// persists the returned ledger.
func (l *Ledger) Reset() *Ledger {
	return NewLedger()
}
