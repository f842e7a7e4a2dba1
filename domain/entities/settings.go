package entities

import (
	"fmt"
	"time"
)

// Default lottery settings, applied when no row exists yet
const (
	DefaultDrawInterval      = 3 * time.Hour
	DefaultTicketCost        = int64(100)
	DefaultPayoutPercentage  = int64(90)
	DefaultMaxTickets        = int64(5)
	DefaultMaxDeposit        = int64(10000)
	DefaultBroadcastInterval = 30 * time.Minute
)

// LotterySettings holds the live lottery configuration. It is persisted so
// admin edits take effect on the next operation or worker tick without a
// restart.
type LotterySettings struct {
	DrawInterval      time.Duration `db:"draw_interval"`
	TicketCost        int64         `db:"ticket_cost"`
	PayoutPercentage  int64         `db:"payout_percentage"`
	MaxTickets        int64         `db:"max_tickets"`
	MaxDeposit        int64         `db:"max_deposit"`
	BroadcastInterval time.Duration `db:"broadcast_interval"` // 0 disables pot broadcasts
	AnnounceChannelID *int64        `db:"announce_channel_id"`
}

// NewDefaultLotterySettings returns settings with default values
func NewDefaultLotterySettings() *LotterySettings {
	return &LotterySettings{
		DrawInterval:      DefaultDrawInterval,
		TicketCost:        DefaultTicketCost,
		PayoutPercentage:  DefaultPayoutPercentage,
		MaxTickets:        DefaultMaxTickets,
		MaxDeposit:        DefaultMaxDeposit,
		BroadcastInterval: DefaultBroadcastInterval,
	}
}

// Validate checks that the settings are internally consistent
func (s *LotterySettings) Validate() error {
	if s.DrawInterval < time.Second {
		return fmt.Errorf("draw interval must be at least one second, got %v", s.DrawInterval)
	}
	if s.TicketCost <= 0 {
		return fmt.Errorf("ticket cost must be positive, got %d", s.TicketCost)
	}
	if s.PayoutPercentage < 0 || s.PayoutPercentage > 100 {
		return fmt.Errorf("payout percentage must be within [0,100], got %d", s.PayoutPercentage)
	}
	if s.MaxTickets <= 0 {
		return fmt.Errorf("max tickets must be positive, got %d", s.MaxTickets)
	}
	if s.MaxDeposit <= 0 {
		return fmt.Errorf("max deposit must be positive, got %d", s.MaxDeposit)
	}
	if s.BroadcastInterval < 0 {
		return fmt.Errorf("broadcast interval must not be negative, got %v", s.BroadcastInterval)
	}
	return nil
}

// HasAnnounceChannel checks if an announcement channel is configured
func (s *LotterySettings) HasAnnounceChannel() bool {
	return s.AnnounceChannelID != nil && *s.AnnounceChannelID > 0
}

// GetAnnounceChannelID returns the announcement channel ID, 0 if unset
func (s *LotterySettings) GetAnnounceChannelID() int64 {
	if s.AnnounceChannelID == nil {
		return 0
	}
	return *s.AnnounceChannelID
}

// BroadcastsEnabled reports whether periodic pot broadcasts are enabled
func (s *LotterySettings) BroadcastsEnabled() bool {
	return s.BroadcastInterval > 0
}
