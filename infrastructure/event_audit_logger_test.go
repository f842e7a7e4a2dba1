package infrastructure

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventAuditLogger_HandleMessage(t *testing.T) {
	logger := NewEventAuditLogger(nil, NewEventSubjectMapper())

	t.Run("accepts a well-formed envelope", func(t *testing.T) {
		envelope := EventEnvelope{
			EventID:       "b0c1d2e3-0000-0000-0000-000000000001",
			EventType:     "ticket_purchased",
			Timestamp:     time.Now().UTC(),
			SourceService: "lotto",
			Payload:       json.RawMessage(`{"participant_id":42,"quantity":3}`),
		}
		data, err := json.Marshal(envelope)
		require.NoError(t, err)

		assert.NoError(t, logger.handleMessage("lottery.tickets.purchased", data))
	})

	t.Run("rejects malformed payloads for redelivery", func(t *testing.T) {
		err := logger.handleMessage("lottery.tickets.purchased", []byte("not json"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to decode event envelope")
	})
}
