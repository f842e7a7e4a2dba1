package infrastructure

import (
	"encoding/json"
	"fmt"

	log "github.com/sirupsen/logrus"
)

// EventAuditLogger consumes the lottery event stream and writes one structured
// log line per event, giving operators an audit trail that survives restarts
// (the durable consumers resume where they left off).
type EventAuditLogger struct {
	natsClient    *NATSClient
	subjectMapper *EventSubjectMapper
}

// NewEventAuditLogger creates a new audit logger over the given NATS client
func NewEventAuditLogger(natsClient *NATSClient, subjectMapper *EventSubjectMapper) *EventAuditLogger {
	return &EventAuditLogger{
		natsClient:    natsClient,
		subjectMapper: subjectMapper,
	}
}

// Start subscribes to every lottery event subject
func (l *EventAuditLogger) Start() error {
	for _, subject := range l.subjectMapper.GetAllSubjects() {
		if err := l.natsClient.Subscribe(subject, func(data []byte) error {
			return l.handleMessage(subject, data)
		}); err != nil {
			return fmt.Errorf("failed to subscribe audit logger to %s: %w", subject, err)
		}
	}
	return nil
}

// handleMessage decodes an event envelope and logs it. A decode failure is
// returned so the message is NAKed and redelivered up to the delivery cap.
func (l *EventAuditLogger) handleMessage(subject string, data []byte) error {
	var envelope EventEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return fmt.Errorf("failed to decode event envelope on %s: %w", subject, err)
	}

	log.WithFields(log.Fields{
		"subject":   subject,
		"eventId":   envelope.EventID,
		"eventType": envelope.EventType,
		"source":    envelope.SourceService,
		"timestamp": envelope.Timestamp,
		"payload":   string(envelope.Payload),
	}).Info("Lottery event")

	return nil
}
