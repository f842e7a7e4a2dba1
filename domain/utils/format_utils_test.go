package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatShortNotation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value int64
		want  string
	}{
		{name: "small number unchanged", value: 999, want: "999"},
		{name: "zero", value: 0, want: "0"},
		{name: "thousands keep one decimal", value: 1500, want: "1.5k"},
		{name: "ten thousands drop decimals", value: 50000, want: "50k"},
		{name: "millions", value: 2_500_000, want: "2.50M"},
		{name: "billions", value: 3_000_000_000, want: "3.00B"},
		{name: "negative value keeps sign", value: -1500, want: "-1.5k"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FormatShortNotation(tt.value))
		})
	}
}

func TestFormatDuration(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		d    time.Duration
		want string
	}{
		{name: "days and hours", d: 26 * time.Hour, want: "1d 2h"},
		{name: "hours and minutes", d: 2*time.Hour + 30*time.Minute, want: "2h 30m"},
		{name: "minutes only", d: 45 * time.Minute, want: "45m"},
		{name: "sub-minute", d: 20 * time.Second, want: "less than a minute"},
		{name: "negative clamped", d: -time.Hour, want: "less than a minute"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, FormatDuration(tt.d))
		})
	}
}
