package entities

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLotterySettings_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		modify  func(*LotterySettings)
		wantErr string
	}{
		{
			name:   "defaults are valid",
			modify: func(s *LotterySettings) {},
		},
		{
			name:    "zero draw interval rejected",
			modify:  func(s *LotterySettings) { s.DrawInterval = 0 },
			wantErr: "draw interval",
		},
		{
			name:    "negative draw interval rejected",
			modify:  func(s *LotterySettings) { s.DrawInterval = -time.Hour },
			wantErr: "draw interval",
		},
		{
			name:    "non-positive ticket cost rejected",
			modify:  func(s *LotterySettings) { s.TicketCost = 0 },
			wantErr: "ticket cost",
		},
		{
			name:    "payout percentage above 100 rejected",
			modify:  func(s *LotterySettings) { s.PayoutPercentage = 101 },
			wantErr: "payout percentage",
		},
		{
			name:    "negative payout percentage rejected",
			modify:  func(s *LotterySettings) { s.PayoutPercentage = -1 },
			wantErr: "payout percentage",
		},
		{
			name:   "payout percentage boundaries allowed",
			modify: func(s *LotterySettings) { s.PayoutPercentage = 0 },
		},
		{
			name:    "non-positive max tickets rejected",
			modify:  func(s *LotterySettings) { s.MaxTickets = 0 },
			wantErr: "max tickets",
		},
		{
			name:    "non-positive max deposit rejected",
			modify:  func(s *LotterySettings) { s.MaxDeposit = -5 },
			wantErr: "max deposit",
		},
		{
			name:   "zero broadcast interval allowed (disabled)",
			modify: func(s *LotterySettings) { s.BroadcastInterval = 0 },
		},
		{
			name:    "negative broadcast interval rejected",
			modify:  func(s *LotterySettings) { s.BroadcastInterval = -time.Minute },
			wantErr: "broadcast interval",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			settings := NewDefaultLotterySettings()
			tt.modify(settings)

			err := settings.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
			} else {
				assert.ErrorContains(t, err, tt.wantErr)
			}
		})
	}
}

func TestLotterySettings_AnnounceChannel(t *testing.T) {
	t.Parallel()

	settings := NewDefaultLotterySettings()
	assert.False(t, settings.HasAnnounceChannel())
	assert.Equal(t, int64(0), settings.GetAnnounceChannelID())

	channelID := int64(123456789)
	settings.AnnounceChannelID = &channelID
	assert.True(t, settings.HasAnnounceChannel())
	assert.Equal(t, channelID, settings.GetAnnounceChannelID())
}

func TestLotterySettings_BroadcastsEnabled(t *testing.T) {
	t.Parallel()

	settings := NewDefaultLotterySettings()
	assert.True(t, settings.BroadcastsEnabled())

	settings.BroadcastInterval = 0
	assert.False(t, settings.BroadcastsEnabled())
}

func TestNewCapacityExceededError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		maxTickets    int64
		current       int64
		wantRemaining int64
		wantContains  string
	}{
		{
			name:          "partial capacity remaining",
			maxTickets:    5,
			current:       3,
			wantRemaining: 2,
			wantContains:  "only 2 more",
		},
		{
			name:          "no capacity remaining",
			maxTickets:    5,
			current:       5,
			wantRemaining: 0,
			wantContains:  "maximum of 5",
		},
		{
			name:          "remaining floored at zero",
			maxTickets:    5,
			current:       7,
			wantRemaining: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			err := NewCapacityExceededError(tt.maxTickets, tt.current)
			assert.Equal(t, tt.wantRemaining, err.Remaining)
			if tt.wantContains != "" {
				assert.Contains(t, err.Error(), tt.wantContains)
			}
		})
	}
}
