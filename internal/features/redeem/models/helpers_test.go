package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTypeLabels(t *testing.T) {
	want := map[RedeemType]string{
		RedeemTypeTimed:   "Timed",
		RedeemTypeBanked:  "Banked",
		RedeemTypeInstant: "Instant",
		RedeemTypeCounter: "Counter",
		RedeemTypeToggle:  "Toggle",
	}
	for typ, label := range want {
		assert.Equal(t, label, typ.Label())
		assert.NotEmpty(t, typ.Icon())
	}

	// Unknown values fall back to the raw string rather than guessing.
	assert.Equal(t, "mystery", RedeemType("mystery").Label())
	assert.Empty(t, RedeemType("mystery").Icon())
}

func TestStatusTones(t *testing.T) {
	assert.Equal(t, "success", RedeemStatusActive.Tone())
	assert.Equal(t, "warning", RedeemStatusPaused.Tone())
	assert.Equal(t, "neutral", RedeemStatusCompleted.Tone())
}

func TestRelativeTime(t *testing.T) {
	now := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{"seconds", 30 * time.Second, "just now"},
		{"minutes", 5 * time.Minute, "5m ago"},
		{"just under an hour", 59 * time.Minute, "59m ago"},
		{"hours", 3 * time.Hour, "3h ago"},
		{"days", 49 * time.Hour, "2d ago"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, RelativeTime(now.Add(-tc.ago), now))
		})
	}
}
