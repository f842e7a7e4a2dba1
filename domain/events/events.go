package events

import "lotto/domain/entities"

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeBalanceChange   EventType = "balance_change"
	EventTypeAccountCreated  EventType = "account_created"
	EventTypeTicketPurchased EventType = "ticket_purchased"
	EventTypePotDeposit      EventType = "pot_deposit"
	EventTypeDrawCompleted   EventType = "draw_completed"
	EventTypeDrawPostponed   EventType = "draw_postponed"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// BalanceChangeEvent represents a balance change that occurred
type BalanceChangeEvent struct {
	ParticipantID   int64
	OldBalance      int64
	NewBalance      int64
	TransactionType entities.TransactionType
	ChangeAmount    int64
}

func (e BalanceChangeEvent) Type() EventType {
	return EventTypeBalanceChange
}

// AccountCreatedEvent represents a lazily created currency account
type AccountCreatedEvent struct {
	ParticipantID  int64
	InitialBalance int64
}

func (e AccountCreatedEvent) Type() EventType {
	return EventTypeAccountCreated
}

// TicketPurchasedEvent represents a successful ticket purchase
type TicketPurchasedEvent struct {
	ParticipantID int64
	Quantity      int64
	TotalTickets  int64
	Cost          int64
	Pot           int64
}

func (e TicketPurchasedEvent) Type() EventType {
	return EventTypeTicketPurchased
}

// PotDepositEvent represents a direct deposit into the pot
type PotDepositEvent struct {
	ActorID int64 // 0 for console/automated deposits
	Amount  int64
	Pot     int64
}

func (e PotDepositEvent) Type() EventType {
	return EventTypePotDeposit
}

// DrawCompletedEvent represents a finished draw with a winner
type DrawCompletedEvent struct {
	DrawID        string
	WinnerID      int64
	Payout        int64
	Pot           int64
	TotalTickets  int64
	WinnerTickets int64
}

func (e DrawCompletedEvent) Type() EventType {
	return EventTypeDrawCompleted
}

// DrawPostponedEvent represents a draw skipped because nobody held tickets
type DrawPostponedEvent struct {
	NextDrawTime int64 // unix seconds
}

func (e DrawPostponedEvent) Type() EventType {
	return EventTypeDrawPostponed
}
