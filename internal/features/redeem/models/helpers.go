package models

import (
	"fmt"
	"time"
)

// Label returns the display name of the variant.
func (t RedeemType) Label() string {
	switch t {
	case RedeemTypeTimed:
		return "Timed"
	case RedeemTypeBanked:
		return "Banked"
	case RedeemTypeInstant:
		return "Instant"
	case RedeemTypeCounter:
		return "Counter"
	case RedeemTypeToggle:
		return "Toggle"
	}
	return string(t)
}

// Icon returns the lucide icon slug used by overlay surfaces.
func (t RedeemType) Icon() string {
	switch t {
	case RedeemTypeTimed:
		return "i-lucide-timer"
	case RedeemTypeBanked:
		return "i-lucide-piggy-bank"
	case RedeemTypeInstant:
		return "i-lucide-zap"
	case RedeemTypeCounter:
		return "i-lucide-hash"
	case RedeemTypeToggle:
		return "i-lucide-toggle-left"
	}
	return ""
}

// Tone maps a status onto the badge tone used by overlay surfaces.
func (s RedeemStatus) Tone() string {
	switch s {
	case RedeemStatusActive:
		return "success"
	case RedeemStatusPaused:
		return "warning"
	default:
		return "neutral"
	}
}

// RelativeTime renders how long ago t was, relative to now.
func RelativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff >= 24*time.Hour:
		return fmt.Sprintf("%dd ago", int(diff.Hours())/24)
	case diff >= time.Hour:
		return fmt.Sprintf("%dh ago", int(diff.Hours()))
	case diff >= time.Minute:
		return fmt.Sprintf("%dm ago", int(diff.Minutes()))
	default:
		return "just now"
	}
}
