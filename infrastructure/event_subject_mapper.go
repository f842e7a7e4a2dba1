package infrastructure

import (
	"fmt"

	"lotto/domain/events"
)

// EventSubjectMapper handles mapping between domain events and NATS subjects
type EventSubjectMapper struct{}

// NewEventSubjectMapper creates a new event subject mapper
func NewEventSubjectMapper() *EventSubjectMapper {
	return &EventSubjectMapper{}
}

// MapEventToSubject converts a domain event to its corresponding NATS subject
func (m *EventSubjectMapper) MapEventToSubject(event events.Event) string {
	switch event.Type() {
	case events.EventTypeBalanceChange:
		return "accounts.balance_changed"
	case events.EventTypeAccountCreated:
		return "accounts.created"
	case events.EventTypeTicketPurchased:
		return "lottery.tickets.purchased"
	case events.EventTypePotDeposit:
		return "lottery.pot.deposited"
	case events.EventTypeDrawCompleted:
		return "lottery.draw.completed"
	case events.EventTypeDrawPostponed:
		return "lottery.draw.postponed"
	default:
		// Fallback for unknown event types
		return fmt.Sprintf("unknown.%s", event.Type())
	}
}

// MapSubjectToEventType converts a NATS subject back to an event type
func (m *EventSubjectMapper) MapSubjectToEventType(subject string) events.EventType {
	switch subject {
	case "accounts.balance_changed":
		return events.EventTypeBalanceChange
	case "accounts.created":
		return events.EventTypeAccountCreated
	case "lottery.tickets.purchased":
		return events.EventTypeTicketPurchased
	case "lottery.pot.deposited":
		return events.EventTypePotDeposit
	case "lottery.draw.completed":
		return events.EventTypeDrawCompleted
	case "lottery.draw.postponed":
		return events.EventTypeDrawPostponed
	default:
		return events.EventType(subject)
	}
}

// GetAllSubjects returns all subjects that this service publishes to
func (m *EventSubjectMapper) GetAllSubjects() []string {
	return []string{
		"accounts.balance_changed",
		"accounts.created",
		"lottery.tickets.purchased",
		"lottery.pot.deposited",
		"lottery.draw.completed",
		"lottery.draw.postponed",
	}
}
