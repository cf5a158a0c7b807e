package timerview

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamraiser-backend/internal/features/redeem/models"
)

var t0 = time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

func timed(requiredMs, accumulatedMs int64, startedAt *time.Time) *models.Redeem {
	return &models.Redeem{
		ID:            "t1",
		Type:          models.RedeemTypeTimed,
		Category:      models.CategoryFitness,
		Redeemer:      "Viewer1",
		RewardName:    "Sprint Interval",
		Status:        models.RedeemStatusPaused,
		RequiredMs:    requiredMs,
		AccumulatedMs: accumulatedMs,
		TimerStartedAt: startedAt,
	}
}

func TestSnapshotFreshRedeem(t *testing.T) {
	snap, err := Snapshot(timed(30000, 0, nil), t0)
	require.NoError(t, err)
	assert.EqualValues(t, 0, snap.ElapsedMs)
	assert.EqualValues(t, 30000, snap.RemainingMs)
	assert.Zero(t, snap.Progress)
	assert.False(t, snap.IsRunning)
	assert.Equal(t, "0:00", snap.Elapsed)
	assert.Equal(t, "0:30", snap.Remaining)
}

func TestSnapshotWhileRunning(t *testing.T) {
	started := t0
	snap, err := Snapshot(timed(30000, 0, &started), t0.Add(15*time.Second))
	require.NoError(t, err)
	assert.EqualValues(t, 15000, snap.ElapsedMs)
	assert.EqualValues(t, 15000, snap.RemainingMs)
	assert.InDelta(t, 50, snap.Progress, 0.001)
	assert.True(t, snap.IsRunning)
}

func TestSnapshotCombinesAccumulatedAndLiveRun(t *testing.T) {
	started := t0
	snap, err := Snapshot(timed(30000, 5000, &started), t0.Add(2*time.Second))
	require.NoError(t, err)
	assert.EqualValues(t, 7000, snap.ElapsedMs)
}

func TestSnapshotClampsOvershoot(t *testing.T) {
	snap, err := Snapshot(timed(30000, 45000, nil), t0)
	require.NoError(t, err)
	assert.EqualValues(t, 0, snap.RemainingMs)
	assert.EqualValues(t, 100, snap.Progress)
}

func TestSnapshotZeroRequiredIsComplete(t *testing.T) {
	snap, err := Snapshot(timed(0, 0, nil), t0)
	require.NoError(t, err)
	assert.EqualValues(t, 100, snap.Progress)
	assert.EqualValues(t, 0, snap.RemainingMs)
}

func TestSnapshotRejectsOtherVariants(t *testing.T) {
	_, err := Snapshot(&models.Redeem{Type: models.RedeemTypeToggle}, t0)
	assert.ErrorIs(t, err, models.ErrTypeMismatch)
}

func TestFormatDuration(t *testing.T) {
	cases := []struct {
		ms   int64
		want string
	}{
		{0, "0:00"},
		{9000, "0:09"},
		{65000, "1:05"},
		{600000, "10:00"},
		{3599000, "59:59"},
		{3600000, "1:00:00"},
		{3_600_000 + 125_000, "1:02:05"},
		{36_610_000, "10:10:10"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatDuration(tc.ms), "ms=%d", tc.ms)
	}
}

func TestFormatCoarse(t *testing.T) {
	assert.Equal(t, "45s", FormatCoarse(45000))
	assert.Equal(t, "2m 5s", FormatCoarse(125000))
	assert.Equal(t, "1h 1m", FormatCoarse(3_660_000))
}

func TestMonitorTicksOnlyWhileRunning(t *testing.T) {
	started := t0
	r := timed(30000, 0, &started)
	r.Status = models.RedeemStatusActive

	// The monitor reads from its own goroutine, so hand it copies under a lock.
	var mu sync.Mutex
	get := func() *models.Redeem {
		mu.Lock()
		defer mu.Unlock()
		cp := *r
		return &cp
	}

	var emits atomic.Int64
	m := NewMonitor(get, func(Projection) { emits.Add(1) }, time.Millisecond)
	defer m.Close()

	m.Sync()
	assert.Eventually(t, func() bool { return emits.Load() > 3 },
		200*time.Millisecond, time.Millisecond, "running timer must keep refreshing")

	// Pause the redeem: the refresh loop must drain away on its own.
	mu.Lock()
	r.TimerStartedAt = nil
	r.Status = models.RedeemStatusPaused
	mu.Unlock()
	m.Sync()
	time.Sleep(20 * time.Millisecond)
	settled := emits.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, settled, emits.Load(), "paused timer must not refresh")
}

func TestMonitorSyncEmitsImmediateSnapshot(t *testing.T) {
	r := timed(30000, 12000, nil)
	var got atomic.Value
	m := NewMonitor(
		func() *models.Redeem { return r },
		func(p Projection) { got.Store(p) },
		time.Hour, // never ticks during the test
	)
	defer m.Close()

	m.Sync()
	snap, ok := got.Load().(Projection)
	require.True(t, ok, "Sync must emit once even when not running")
	assert.EqualValues(t, 12000, snap.ElapsedMs)
}

func TestMonitorCloseStopsRefreshing(t *testing.T) {
	started := time.Now()
	r := timed(300000, 0, &started)
	r.Status = models.RedeemStatusActive

	var emits atomic.Int64
	m := NewMonitor(
		func() *models.Redeem { return r },
		func(Projection) { emits.Add(1) },
		time.Millisecond,
	)
	m.Sync()
	assert.Eventually(t, func() bool { return emits.Load() > 0 },
		200*time.Millisecond, time.Millisecond)

	m.Close()
	time.Sleep(10 * time.Millisecond)
	settled := emits.Load()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, settled, emits.Load())

	// Sync after Close must not revive the loop.
	m.Sync()
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, settled+1, emits.Load(), "only the immediate Sync snapshot may arrive")
}
