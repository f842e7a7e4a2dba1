package lottery

import (
	"errors"
	"strings"
	"testing"

	"lotto/domain/entities"
)

func TestPurchaseErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{
			name:     "invalid amount",
			err:      entities.ErrInvalidAmount,
			contains: "positive number",
		},
		{
			name:     "insufficient funds",
			err:      entities.ErrInsufficientFunds,
			contains: "enough coins",
		},
		{
			name:     "capacity with remaining",
			err:      entities.NewCapacityExceededError(5, 3),
			contains: "2 more ticket(s)",
		},
		{
			name:     "capacity at cap",
			err:      entities.NewCapacityExceededError(5, 5),
			contains: "maximum of 5 tickets",
		},
		{
			name:     "wrapped domain error",
			err:      errors.Join(errors.New("purchase failed"), entities.ErrInsufficientFunds),
			contains: "enough coins",
		},
		{
			name:     "unknown error",
			err:      errors.New("connection reset"),
			contains: "Failed to purchase",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := purchaseErrorMessage(tt.err)
			if !strings.Contains(got, tt.contains) {
				t.Errorf("purchaseErrorMessage(%v) = %q, want it to contain %q", tt.err, got, tt.contains)
			}
		})
	}
}

func TestDepositErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		contains string
	}{
		{
			name:     "invalid amount",
			err:      entities.ErrInvalidAmount,
			contains: "positive amount",
		},
		{
			name:     "insufficient funds",
			err:      entities.ErrInsufficientFunds,
			contains: "enough coins",
		},
		{
			name:     "deposit limit",
			err:      entities.ErrDepositLimitExceeded,
			contains: "maximum allowed",
		},
		{
			name:     "unknown error",
			err:      errors.New("connection reset"),
			contains: "Failed to process",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := depositErrorMessage(tt.err)
			if !strings.Contains(got, tt.contains) {
				t.Errorf("depositErrorMessage(%v) = %q, want it to contain %q", tt.err, got, tt.contains)
			}
		})
	}
}
