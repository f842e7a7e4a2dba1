package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLedger_TicketsOf(t *testing.T) {
	t.Parallel()

	ledger := NewLedger()
	ledger.Tickets[100] = 3
	ledger.Tickets[200] = 0

	assert.Equal(t, int64(3), ledger.TicketsOf(100))
	assert.Equal(t, int64(0), ledger.TicketsOf(200))
	assert.Equal(t, int64(0), ledger.TicketsOf(999), "unknown participant holds zero tickets")
}

func TestLedger_TotalTickets(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		tickets map[int64]int64
		want    int64
	}{
		{
			name:    "empty ledger",
			tickets: map[int64]int64{},
			want:    0,
		},
		{
			name:    "single participant",
			tickets: map[int64]int64{100: 5},
			want:    5,
		},
		{
			name:    "multiple participants",
			tickets: map[int64]int64{100: 1, 200: 9, 300: 2},
			want:    12,
		},
		{
			name:    "zero entries ignored in total",
			tickets: map[int64]int64{100: 4, 200: 0},
			want:    4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ledger := &Ledger{Tickets: tt.tickets}
			assert.Equal(t, tt.want, ledger.TotalTickets())
		})
	}
}

func TestLedger_ParticipantCount(t *testing.T) {
	t.Parallel()

	ledger := &Ledger{Tickets: map[int64]int64{100: 4, 200: 0, 300: 1}}
	assert.Equal(t, 2, ledger.ParticipantCount(), "zero-ticket entries are treated as absent")
}

func TestLedger_PayoutAmount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		pot        int64
		percentage int64
		want       int64
	}{
		{
			name:       "full payout returns entire pot",
			pot:        1000,
			percentage: 100,
			want:       1000,
		},
		{
			name:       "zero payout returns nothing",
			pot:        1000,
			percentage: 0,
			want:       0,
		},
		{
			name:       "90 percent of 500",
			pot:        500,
			percentage: 90,
			want:       450,
		},
		{
			name:       "integer division truncates",
			pot:        333,
			percentage: 90,
			want:       299,
		},
		{
			name:       "empty pot",
			pot:        0,
			percentage: 90,
			want:       0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ledger := &Ledger{Tickets: map[int64]int64{}, Pot: tt.pot}
			assert.Equal(t, tt.want, ledger.PayoutAmount(tt.percentage))
		})
	}
}

func TestLedger_PayoutAmount_Monotonic(t *testing.T) {
	t.Parallel()

	ledger := &Ledger{Tickets: map[int64]int64{}, Pot: 12345}

	prev := int64(-1)
	for pct := int64(0); pct <= 100; pct++ {
		payout := ledger.PayoutAmount(pct)
		assert.GreaterOrEqual(t, payout, prev, "payout must not decrease as percentage grows")
		prev = payout
	}
}

func TestLedger_Reset(t *testing.T) {
	t.Parallel()

	ledger := &Ledger{
		Tickets: map[int64]int64{100: 3, 200: 7},
		Pot:     5000,
	}

	fresh := ledger.Reset()

	assert.Equal(t, int64(0), fresh.Pot)
	assert.Empty(t, fresh.Tickets)

	// Reset has no side effect on the original snapshot
	assert.Equal(t, int64(5000), ledger.Pot)
	assert.Equal(t, int64(3), ledger.TicketsOf(100))
}
