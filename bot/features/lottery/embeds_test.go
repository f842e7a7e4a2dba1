package lottery

import (
	"strings"
	"testing"
	"time"

	"lotto/domain/entities"
)

func TestFormatParticipants(t *testing.T) {
	tests := []struct {
		name     string
		tickets  map[int64]int64
		contains []string
		excludes []string
	}{
		{
			name:     "empty ledger",
			tickets:  map[int64]int64{},
			contains: []string{"No participants yet"},
		},
		{
			name:     "zero-ticket entries ignored",
			tickets:  map[int64]int64{100: 0},
			contains: []string{"No participants yet"},
		},
		{
			name:    "sorted by ticket count",
			tickets: map[int64]int64{100: 2, 200: 5},
			contains: []string{
				"<@200>: 5 tickets",
				"<@100>: 2 tickets",
			},
		},
		{
			name: "truncated past five holders",
			tickets: map[int64]int64{
				1: 7, 2: 6, 3: 5, 4: 4, 5: 3, 6: 2, 7: 1,
			},
			contains: []string{"<@1>: 7 tickets", "...and 2 more"},
			excludes: []string{"<@6>", "<@7>"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatParticipants(tt.tickets)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("formatParticipants() = %q, want it to contain %q", got, want)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("formatParticipants() = %q, should not contain %q", got, unwanted)
				}
			}
		})
	}
}

func TestCreateDrawResultEmbed(t *testing.T) {
	next := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("postponed draw", func(t *testing.T) {
		embed := CreateDrawResultEmbed(&entities.DrawResult{
			Postponed:    true,
			NextDrawTime: next,
		})
		if embed.Title != "Lottery Draw Postponed" {
			t.Errorf("unexpected title: %q", embed.Title)
		}
		if !strings.Contains(embed.Description, "Nobody bought tickets") {
			t.Errorf("unexpected description: %q", embed.Description)
		}
	})

	t.Run("completed draw mentions winner and payout", func(t *testing.T) {
		embed := CreateDrawResultEmbed(&entities.DrawResult{
			Record: &entities.DrawRecord{
				WinnerID:      42,
				Payout:        9000,
				Pot:           10000,
				TotalTickets:  10,
				WinnerTickets: 3,
			},
			NextDrawTime:  next,
			WinnerBalance: 9000,
		})
		if !strings.Contains(embed.Description, "<@42>") {
			t.Errorf("description should mention winner: %q", embed.Description)
		}
		if !strings.Contains(embed.Description, "9,000") {
			t.Errorf("description should contain formatted payout: %q", embed.Description)
		}
	})
}

func TestCreateHistoryEmbed(t *testing.T) {
	t.Run("no draws", func(t *testing.T) {
		embed := CreateHistoryEmbed(nil)
		if embed.Description != "No draws yet" {
			t.Errorf("unexpected description: %q", embed.Description)
		}
	})

	t.Run("lists each draw", func(t *testing.T) {
		embed := CreateHistoryEmbed([]*entities.DrawRecord{
			{WinnerID: 1, Payout: 900, Pot: 1000, DrawnAt: time.Now()},
			{WinnerID: 2, Payout: 450, Pot: 500, DrawnAt: time.Now()},
		})
		if len(strings.Split(embed.Description, "\n")) != 2 {
			t.Errorf("expected two lines, got %q", embed.Description)
		}
	})
}
