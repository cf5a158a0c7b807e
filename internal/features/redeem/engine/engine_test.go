package engine

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamraiser-backend/internal/features/redeem/models"
)

// testEngine returns an engine with a settable clock and sequential ids.
func testEngine(start time.Time) (*Engine, *time.Time) {
	now := start
	seq := 0
	e := &Engine{
		Now: func() time.Time { return now },
		NewID: func() string {
			seq++
			return fmt.Sprintf("r%d", seq)
		},
	}
	return e, &now
}

var t0 = time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)

func mustCreate(t *testing.T, e *Engine, c *models.Collection, p models.CreatePayload) *models.Redeem {
	t.Helper()
	if p.Category == "" {
		p.Category = models.CategoryFitness
	}
	r, err := e.Create(c, &p)
	require.NoError(t, err)
	return r
}

func TestCreateInitialStates(t *testing.T) {
	e, _ := testEngine(t0)
	var c models.Collection

	timed := mustCreate(t, e, &c, models.CreatePayload{
		Type: models.RedeemTypeTimed, Redeemer: "Viewer1", RewardName: "Sprint Interval", RequiredMs: 30000,
	})
	assert.Equal(t, models.RedeemStatusPaused, timed.Status)
	assert.EqualValues(t, 0, timed.AccumulatedMs)
	assert.Nil(t, timed.TimerStartedAt)

	banked := mustCreate(t, e, &c, models.CreatePayload{
		Type: models.RedeemTypeBanked, Redeemer: "Viewer2", RewardName: "Snack Break", Quantity: 3,
	})
	assert.Equal(t, models.RedeemStatusActive, banked.Status)
	assert.Equal(t, 3, banked.Quantity)
	assert.Equal(t, 3, banked.TotalRedeemed)
	assert.Equal(t, 0, banked.TotalConsumed)

	instant := mustCreate(t, e, &c, models.CreatePayload{
		Type: models.RedeemTypeInstant, Redeemer: "Viewer3", RewardName: "Dad Joke",
	})
	assert.Equal(t, models.RedeemStatusActive, instant.Status)
	assert.Nil(t, instant.CompletedAt)

	counter := mustCreate(t, e, &c, models.CreatePayload{
		Type: models.RedeemTypeCounter, Redeemer: "Viewer4", RewardName: "Power Surge", TargetCount: 5,
	})
	assert.Equal(t, models.RedeemStatusActive, counter.Status)
	assert.Equal(t, 0, counter.CurrentCount)

	toggle := mustCreate(t, e, &c, models.CreatePayload{
		Type: models.RedeemTypeToggle, Redeemer: "Viewer5", RewardName: "Attack Mode",
	})
	assert.Equal(t, models.RedeemStatusActive, toggle.Status)
	assert.Nil(t, toggle.ActivatedAt)
	assert.Nil(t, toggle.DeactivatedAt)

	assert.Len(t, c, 5)
}

func TestCreateRejectsInvalidPayloads(t *testing.T) {
	e, _ := testEngine(t0)
	var c models.Collection

	cases := []models.CreatePayload{
		{Type: "mystery", Category: models.CategoryFitness, Redeemer: "v", RewardName: "x"},
		{Type: models.RedeemTypeTimed, Category: models.CategoryFitness, Redeemer: "v", RewardName: "x"},
		{Type: models.RedeemTypeBanked, Category: models.CategoryFitness, Redeemer: "v", RewardName: "x", Quantity: 0},
		{Type: models.RedeemTypeCounter, Category: models.CategoryFitness, Redeemer: "v", RewardName: "x", TargetCount: -2},
		{Type: models.RedeemTypeInstant, Category: "mystery", Redeemer: "v", RewardName: "x"},
		{Type: models.RedeemTypeInstant, Category: models.CategoryFitness, RewardName: "x"},
		{Type: models.RedeemTypeInstant, Category: models.CategoryFitness, Redeemer: "v"},
	}
	for _, p := range cases {
		p := p
		_, err := e.Create(&c, &p)
		assert.ErrorIs(t, err, models.ErrInvalidPayload)
	}
	assert.Empty(t, c, "rejected payloads must not mutate the collection")
}

func TestCreateBankedMergesSameRedeemerAndReward(t *testing.T) {
	e, _ := testEngine(t0)
	var c models.Collection

	first := mustCreate(t, e, &c, models.CreatePayload{
		Type: models.RedeemTypeBanked, Redeemer: "Viewer2", RewardName: "Hydration Lap", Quantity: 5,
	})
	again := mustCreate(t, e, &c, models.CreatePayload{
		Type: models.RedeemTypeBanked, Redeemer: "Viewer2", RewardName: "Hydration Lap", Quantity: 2,
	})

	assert.Len(t, c, 1)
	assert.Same(t, first, again)
	assert.Equal(t, 7, first.Quantity)
	assert.Equal(t, 7, first.TotalRedeemed)

	// Different redeemer or reward keeps records independent.
	mustCreate(t, e, &c, models.CreatePayload{
		Type: models.RedeemTypeBanked, Redeemer: "Viewer3", RewardName: "Hydration Lap", Quantity: 1,
	})
	mustCreate(t, e, &c, models.CreatePayload{
		Type: models.RedeemTypeBanked, Redeemer: "Viewer2", RewardName: "Snack Break", Quantity: 1,
	})
	assert.Len(t, c, 3)
}

func TestCreateBankedDoesNotMergeIntoCompleted(t *testing.T) {
	e, _ := testEngine(t0)
	var c models.Collection

	first := mustCreate(t, e, &c, models.CreatePayload{
		Type: models.RedeemTypeBanked, Redeemer: "Viewer2", RewardName: "Snack Break", Quantity: 1,
	})
	_, err := e.ConsumeBanked(c, first.ID)
	require.NoError(t, err)
	require.True(t, first.Completed())

	second := mustCreate(t, e, &c, models.CreatePayload{
		Type: models.RedeemTypeBanked, Redeemer: "Viewer2", RewardName: "Snack Break", Quantity: 4,
	})
	assert.NotEqual(t, first.ID, second.ID)
	assert.Len(t, c, 2)
}

func TestTimedAccounting(t *testing.T) {
	e, now := testEngine(t0)
	var c models.Collection
	r := mustCreate(t, e, &c, models.CreatePayload{
		Type: models.RedeemTypeTimed, Redeemer: "Viewer1", RewardName: "Big Climb", RequiredMs: 300000,
	})

	_, err := e.StartTimer(c, r.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RedeemStatusActive, r.Status)
	require.NotNil(t, r.TimerStartedAt)

	*now = t0.Add(5 * time.Second)
	_, err = e.PauseTimer(c, r.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 5000, r.AccumulatedMs)
	assert.Nil(t, r.TimerStartedAt)
	assert.Equal(t, models.RedeemStatusPaused, r.Status)

	t1 := t0.Add(time.Minute)
	*now = t1
	_, err = e.StartTimer(c, r.ID)
	require.NoError(t, err)

	*now = t1.Add(2 * time.Second)
	_, err = e.CompleteTimer(c, r.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 7000, r.AccumulatedMs)
	assert.Nil(t, r.TimerStartedAt)
	assert.Equal(t, models.RedeemStatusCompleted, r.Status)
}

func TestStartTimerWhileRunningKeepsStartMark(t *testing.T) {
	e, now := testEngine(t0)
	var c models.Collection
	r := mustCreate(t, e, &c, models.CreatePayload{
		Type: models.RedeemTypeTimed, Redeemer: "Viewer1", RewardName: "Sprint Interval", RequiredMs: 30000,
	})

	_, err := e.StartTimer(c, r.ID)
	require.NoError(t, err)
	started := *r.TimerStartedAt

	*now = t0.Add(10 * time.Second)
	_, err = e.StartTimer(c, r.ID)
	require.NoError(t, err)
	assert.Equal(t, started, *r.TimerStartedAt, "second start must not move the run start")

	*now = t0.Add(15 * time.Second)
	_, err = e.PauseTimer(c, r.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 15000, r.AccumulatedMs, "no elapsed time may be lost")
}

func TestPauseTimerNotRunningIsNoop(t *testing.T) {
	e, _ := testEngine(t0)
	var c models.Collection
	r := mustCreate(t, e, &c, models.CreatePayload{
		Type: models.RedeemTypeTimed, Redeemer: "Viewer1", RewardName: "Sprint Interval", RequiredMs: 30000,
	})
	_, err := e.PauseTimer(c, r.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, r.AccumulatedMs)
	assert.Equal(t, models.RedeemStatusPaused, r.Status)
}

func TestCompleteTimerFromPaused(t *testing.T) {
	e, _ := testEngine(t0)
	var c models.Collection
	r := mustCreate(t, e, &c, models.CreatePayload{
		Type: models.RedeemTypeTimed, Redeemer: "Viewer1", RewardName: "Sprint Interval", RequiredMs: 30000,
	})
	_, err := e.CompleteTimer(c, r.ID)
	require.NoError(t, err)
	assert.Equal(t, models.RedeemStatusCompleted, r.Status)
	assert.EqualValues(t, 0, r.AccumulatedMs)
}

// bankedInvariant holds after every sequence of consume/add/reset operations.
func bankedInvariant(t *testing.T, r *models.Redeem) {
	t.Helper()
	assert.Equal(t, r.TotalRedeemed-r.TotalConsumed, r.Quantity,
		"quantity must equal totalRedeemed - totalConsumed")
}

func TestBankedLifecycle(t *testing.T) {
	e, _ := testEngine(t0)
	var c models.Collection
	r := mustCreate(t, e, &c, models.CreatePayload{
		Type: models.RedeemTypeBanked, Redeemer: "Viewer2", RewardName: "Snack Break", Quantity: 2,
	})
	bankedInvariant(t, r)

	_, err := e.ConsumeBanked(c, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, r.Quantity)
	assert.Equal(t, models.RedeemStatusActive, r.Status)
	bankedInvariant(t, r)

	_, err = e.ConsumeBanked(c, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, r.Quantity)
	assert.Equal(t, models.RedeemStatusCompleted, r.Status)
	bankedInvariant(t, r)

	// Empty balance: consuming is ignored and quantity never goes negative.
	_, err = e.ConsumeBanked(c, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, r.Quantity)
	assert.Equal(t, 2, r.TotalConsumed)
	bankedInvariant(t, r)

	// Adding re-opens the exhausted redeem.
	_, err = e.AddToBanked(c, r.ID, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, r.Quantity)
	assert.Equal(t, 5, r.TotalRedeemed)
	assert.Equal(t, models.RedeemStatusActive, r.Status)
	bankedInvariant(t, r)
}

func TestAddToBankedRejectsNonPositiveAmount(t *testing.T) {
	e, _ := testEngine(t0)
	var c models.Collection
	r := mustCreate(t, e, &c, models.CreatePayload{
		Type: models.RedeemTypeBanked, Redeemer: "Viewer2", RewardName: "Snack Break", Quantity: 2,
	})
	for _, amount := range []int{0, -1, -10} {
		_, err := e.AddToBanked(c, r.ID, amount)
		assert.ErrorIs(t, err, models.ErrInvalidPayload)
	}
	assert.Equal(t, 2, r.Quantity)
}

func TestCounterLifecycle(t *testing.T) {
	e, _ := testEngine(t0)
	var c models.Collection
	r := mustCreate(t, e, &c, models.CreatePayload{
		Type: models.RedeemTypeCounter, Redeemer: "Viewer4", RewardName: "Power Surge", TargetCount: 2,
	})

	_, err := e.IncrementCounter(c, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, r.CurrentCount)
	assert.Equal(t, models.RedeemStatusActive, r.Status)

	_, err = e.IncrementCounter(c, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, r.CurrentCount)
	assert.Equal(t, models.RedeemStatusCompleted, r.Status)

	// Completed counters ignore further increments: count never passes target.
	_, err = e.IncrementCounter(c, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, r.CurrentCount)

	// Decrementing a completed counter re-opens it.
	_, err = e.DecrementCounter(c, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, r.CurrentCount)
	assert.Equal(t, models.RedeemStatusActive, r.Status)

	_, err = e.DecrementCounter(c, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, r.CurrentCount)

	// At zero decrement is a no-op.
	_, err = e.DecrementCounter(c, r.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, r.CurrentCount)
}

func TestInstantAndToggle(t *testing.T) {
	e, now := testEngine(t0)
	var c models.Collection
	instant := mustCreate(t, e, &c, models.CreatePayload{
		Type: models.RedeemTypeInstant, Redeemer: "Viewer5", RewardName: "Dad Joke",
	})
	toggle := mustCreate(t, e, &c, models.CreatePayload{
		Type: models.RedeemTypeToggle, Redeemer: "Viewer5", RewardName: "Attack Mode",
	})

	_, err := e.CompleteInstant(c, instant.ID)
	require.NoError(t, err)
	require.NotNil(t, instant.CompletedAt)
	assert.Equal(t, t0, *instant.CompletedAt)
	assert.Equal(t, models.RedeemStatusCompleted, instant.Status)

	_, err = e.ActivateToggle(c, toggle.ID)
	require.NoError(t, err)
	require.NotNil(t, toggle.ActivatedAt)
	assert.Nil(t, toggle.DeactivatedAt)
	assert.Equal(t, models.RedeemStatusActive, toggle.Status)

	*now = t0.Add(time.Minute)
	_, err = e.DeactivateToggle(c, toggle.ID)
	require.NoError(t, err)
	require.NotNil(t, toggle.DeactivatedAt)
	assert.Equal(t, models.RedeemStatusCompleted, toggle.Status)
}

func TestResetIsIdempotentForEveryVariant(t *testing.T) {
	e, now := testEngine(t0)
	var c models.Collection

	timed := mustCreate(t, e, &c, models.CreatePayload{
		Type: models.RedeemTypeTimed, Redeemer: "a", RewardName: "t", RequiredMs: 30000,
	})
	banked := mustCreate(t, e, &c, models.CreatePayload{
		Type: models.RedeemTypeBanked, Redeemer: "b", RewardName: "b", Quantity: 3,
	})
	instant := mustCreate(t, e, &c, models.CreatePayload{
		Type: models.RedeemTypeInstant, Redeemer: "c", RewardName: "i",
	})
	counter := mustCreate(t, e, &c, models.CreatePayload{
		Type: models.RedeemTypeCounter, Redeemer: "d", RewardName: "c", TargetCount: 4,
	})
	toggle := mustCreate(t, e, &c, models.CreatePayload{
		Type: models.RedeemTypeToggle, Redeemer: "e", RewardName: "g",
	})

	// Drive every redeem away from its baseline.
	_, _ = e.StartTimer(c, timed.ID)
	*now = t0.Add(3 * time.Second)
	_, _ = e.CompleteTimer(c, timed.ID)
	_, _ = e.ConsumeBanked(c, banked.ID)
	_, _ = e.CompleteInstant(c, instant.ID)
	_, _ = e.IncrementCounter(c, counter.ID)
	_, _ = e.ActivateToggle(c, toggle.ID)
	_, _ = e.DeactivateToggle(c, toggle.ID)

	for _, r := range c {
		_, err := e.Reset(c, r.ID)
		require.NoError(t, err)
		once := *r
		_, err = e.Reset(c, r.ID)
		require.NoError(t, err)
		assert.Equal(t, once, *r, "double reset must equal single reset for %s", r.Type)
	}

	assert.Equal(t, models.RedeemStatusPaused, timed.Status)
	assert.EqualValues(t, 0, timed.AccumulatedMs)
	assert.Nil(t, timed.TimerStartedAt)

	assert.Equal(t, models.RedeemStatusActive, banked.Status)
	assert.Equal(t, 3, banked.Quantity, "reset restores the full lifetime balance")
	assert.Equal(t, 3, banked.TotalRedeemed, "lifetime high-water mark is kept")
	assert.Equal(t, 0, banked.TotalConsumed)
	bankedInvariant(t, banked)

	assert.Equal(t, models.RedeemStatusActive, instant.Status)
	assert.Nil(t, instant.CompletedAt)

	assert.Equal(t, models.RedeemStatusActive, counter.Status)
	assert.Equal(t, 0, counter.CurrentCount)
	assert.Equal(t, 4, counter.TargetCount)

	assert.Equal(t, models.RedeemStatusActive, toggle.Status)
	assert.Nil(t, toggle.ActivatedAt)
	assert.Nil(t, toggle.DeactivatedAt)
}

func TestTypeMismatchAndNotFound(t *testing.T) {
	e, _ := testEngine(t0)
	var c models.Collection
	toggle := mustCreate(t, e, &c, models.CreatePayload{
		Type: models.RedeemTypeToggle, Redeemer: "Viewer3", RewardName: "Attack Mode",
	})

	_, err := e.PauseTimer(c, toggle.ID)
	assert.ErrorIs(t, err, models.ErrTypeMismatch)
	_, err = e.ConsumeBanked(c, toggle.ID)
	assert.ErrorIs(t, err, models.ErrTypeMismatch)
	_, err = e.IncrementCounter(c, toggle.ID)
	assert.ErrorIs(t, err, models.ErrTypeMismatch)

	_, err = e.StartTimer(c, "missing")
	assert.ErrorIs(t, err, models.ErrRedeemNotFound)
	_, err = e.Reset(c, "missing")
	assert.ErrorIs(t, err, models.ErrRedeemNotFound)
	_, err = e.UpdateNote(c, "missing", "n")
	assert.ErrorIs(t, err, models.ErrRedeemNotFound)
}

func TestDeleteAbsentIsNoop(t *testing.T) {
	e, _ := testEngine(t0)
	var c models.Collection
	r := mustCreate(t, e, &c, models.CreatePayload{
		Type: models.RedeemTypeInstant, Redeemer: "Viewer5", RewardName: "Dad Joke",
	})

	assert.False(t, e.Delete(&c, "missing"))
	assert.Len(t, c, 1)

	assert.True(t, e.Delete(&c, r.ID))
	assert.Empty(t, c)
}

func TestUpdateNote(t *testing.T) {
	e, now := testEngine(t0)
	var c models.Collection
	r := mustCreate(t, e, &c, models.CreatePayload{
		Type: models.RedeemTypeInstant, Redeemer: "Viewer5", RewardName: "Dad Joke",
	})
	*now = t0.Add(time.Second)
	_, err := e.UpdateNote(c, r.ID, "make it about bicycles")
	require.NoError(t, err)
	assert.Equal(t, "make it about bicycles", r.Note)
	assert.Equal(t, t0.Add(time.Second), r.UpdatedAt)
}

func TestApplyDispatch(t *testing.T) {
	e, _ := testEngine(t0)
	var c models.Collection
	r := mustCreate(t, e, &c, models.CreatePayload{
		Type: models.RedeemTypeBanked, Redeemer: "Viewer2", RewardName: "Snack Break", Quantity: 1,
	})

	// Omitted amount defaults to 1.
	got, err := e.Apply(&c, r.ID, ActionAddToBanked, ActionParams{})
	require.NoError(t, err)
	assert.Equal(t, 2, got.Quantity)

	_, err = e.Apply(&c, r.ID, "explode", ActionParams{})
	assert.ErrorIs(t, err, models.ErrUnknownAction)

	deleted, err := e.Apply(&c, r.ID, ActionDelete, ActionParams{})
	require.NoError(t, err)
	assert.Nil(t, deleted)
	assert.Empty(t, c)
}

func TestApplyLenientSwallowsStaleViewErrors(t *testing.T) {
	e, _ := testEngine(t0)
	var c models.Collection
	toggle := mustCreate(t, e, &c, models.CreatePayload{
		Type: models.RedeemTypeToggle, Redeemer: "Viewer3", RewardName: "Attack Mode",
	})

	r, err := e.ApplyLenient(&c, "missing", ActionStartTimer, ActionParams{})
	assert.NoError(t, err)
	assert.Nil(t, r)

	r, err = e.ApplyLenient(&c, toggle.ID, ActionPauseTimer, ActionParams{})
	assert.NoError(t, err)
	assert.Nil(t, r)

	// Payload errors still surface on the lenient path.
	_, err = e.ApplyLenient(&c, toggle.ID, "explode", ActionParams{})
	assert.ErrorIs(t, err, models.ErrUnknownAction)
}
