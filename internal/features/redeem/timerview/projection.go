// Package timerview projects live elapsed-time state for timed redeems. The
// projection is recomputed from stored fields plus wall-clock time and never
// writes back; only explicit start/pause/complete actions touch stored state.
package timerview

import (
	"fmt"
	"time"

	"streamraiser-backend/internal/features/redeem/models"
)

// Projection is one read-only sample of a timed redeem.
type Projection struct {
	ElapsedMs   int64   `json:"elapsed_ms"`
	RemainingMs int64   `json:"remaining_ms"`
	Progress    float64 `json:"progress"`
	Elapsed     string  `json:"elapsed"`
	Remaining   string  `json:"remaining"`
	IsRunning   bool    `json:"is_running"`
}

// Snapshot projects r at the given instant.
func Snapshot(r *models.Redeem, now time.Time) (Projection, error) {
	if r.Type != models.RedeemTypeTimed {
		return Projection{}, fmt.Errorf("%w: timer projection on %s redeem", models.ErrTypeMismatch, r.Type)
	}

	elapsed := r.AccumulatedMs
	if r.TimerStartedAt != nil {
		elapsed += now.Sub(*r.TimerStartedAt).Milliseconds()
	}

	remaining := r.RequiredMs - elapsed
	if remaining < 0 {
		remaining = 0
	}

	progress := 100.0
	if r.RequiredMs > 0 {
		progress = float64(elapsed) / float64(r.RequiredMs) * 100
		if progress > 100 {
			progress = 100
		}
	}

	return Projection{
		ElapsedMs:   elapsed,
		RemainingMs: remaining,
		Progress:    progress,
		Elapsed:     FormatDuration(elapsed),
		Remaining:   FormatDuration(remaining),
		IsRunning:   r.TimerStartedAt != nil,
	}, nil
}

// FormatDuration renders ms as H:MM:SS past the hour mark, else M:SS.
func FormatDuration(ms int64) string {
	totalSeconds := ms / 1000
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60

	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}

// FormatCoarse renders ms as a rough "1h 2m" / "3m 4s" / "5s" figure for
// list surfaces.
func FormatCoarse(ms int64) string {
	seconds := ms / 1000
	minutes := seconds / 60
	hours := minutes / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes%60)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, seconds%60)
	}
	return fmt.Sprintf("%ds", seconds)
}
