// Package engine holds the redeem state machine: pure, synchronous
// transitions over a borrowed collection. The engine retains no references
// and does no locking; callers serialize access per collection. It also does
// no authorization and no persistence, both belong to its callers.
package engine

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"streamraiser-backend/internal/features/redeem/models"
)

// Engine applies redeem actions. Now and NewID are injectable for tests.
type Engine struct {
	Now   func() time.Time
	NewID func() string
}

// New returns an Engine with the wall clock and uuid ids.
func New() *Engine {
	return &Engine{
		Now:   time.Now,
		NewID: func() string { return uuid.New().String() },
	}
}

// get resolves id to a record of the wanted variant.
func (e *Engine) get(c models.Collection, id string, want models.RedeemType) (*models.Redeem, error) {
	r := c.Find(id)
	if r == nil {
		return nil, models.ErrRedeemNotFound
	}
	if r.Type != want {
		return nil, fmt.Errorf("%w: %s action on %s redeem", models.ErrTypeMismatch, want, r.Type)
	}
	return r, nil
}

// Create validates the payload and appends a new redeem to the collection.
// Banked redeems stack instead: an existing non-completed banked redeem for
// the same redeemer and reward absorbs the new quantity. The merge lookup and
// the insert must stay atomic with respect to other creates for the same
// redeemer+reward; the service layer guarantees that by serializing per
// fundraiser.
func (e *Engine) Create(c *models.Collection, p *models.CreatePayload) (*models.Redeem, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	now := e.Now()

	if p.Type == models.RedeemTypeBanked {
		for _, r := range *c {
			if r.Type == models.RedeemTypeBanked && !r.Completed() &&
				r.Redeemer == p.Redeemer && r.RewardName == p.RewardName {
				r.Quantity += p.Quantity
				r.TotalRedeemed += p.Quantity
				r.UpdatedAt = now
				return r, nil
			}
		}
	}

	r := &models.Redeem{
		ID:         e.NewID(),
		Type:       p.Type,
		Category:   p.Category,
		Redeemer:   p.Redeemer,
		RewardName: p.RewardName,
		Note:       p.Note,
		Status:     models.RedeemStatusActive,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	switch p.Type {
	case models.RedeemTypeTimed:
		r.Status = models.RedeemStatusPaused
		r.RequiredMs = p.RequiredMs
	case models.RedeemTypeBanked:
		r.Quantity = p.Quantity
		r.TotalRedeemed = p.Quantity
	case models.RedeemTypeCounter:
		r.TargetCount = p.TargetCount
	case models.RedeemTypeInstant, models.RedeemTypeToggle:
		// timestamps stay nil until acted on
	}

	*c = append(*c, r)
	return r, nil
}

// StartTimer begins a run. Starting an already-running timer is a no-op so
// that a double tap cannot discard elapsed time since the previous start.
func (e *Engine) StartTimer(c models.Collection, id string) (*models.Redeem, error) {
	r, err := e.get(c, id, models.RedeemTypeTimed)
	if err != nil {
		return nil, err
	}
	if r.TimerStartedAt != nil {
		return r, nil
	}
	now := e.Now()
	r.TimerStartedAt = &now
	r.Status = models.RedeemStatusActive
	r.UpdatedAt = now
	return r, nil
}

// PauseTimer folds the current run into AccumulatedMs. Pausing a timer that
// is not running is a no-op.
func (e *Engine) PauseTimer(c models.Collection, id string) (*models.Redeem, error) {
	r, err := e.get(c, id, models.RedeemTypeTimed)
	if err != nil {
		return nil, err
	}
	if r.TimerStartedAt == nil {
		return r, nil
	}
	now := e.Now()
	r.AccumulatedMs += now.Sub(*r.TimerStartedAt).Milliseconds()
	r.TimerStartedAt = nil
	r.Status = models.RedeemStatusPaused
	r.UpdatedAt = now
	return r, nil
}

// CompleteTimer finishes the challenge, folding any in-flight run first.
// Works from both the running and the paused state.
func (e *Engine) CompleteTimer(c models.Collection, id string) (*models.Redeem, error) {
	r, err := e.get(c, id, models.RedeemTypeTimed)
	if err != nil {
		return nil, err
	}
	now := e.Now()
	if r.TimerStartedAt != nil {
		r.AccumulatedMs += now.Sub(*r.TimerStartedAt).Milliseconds()
		r.TimerStartedAt = nil
	}
	r.Status = models.RedeemStatusCompleted
	r.UpdatedAt = now
	return r, nil
}

// ConsumeBanked spends one use. Consuming from an empty balance is a no-op;
// Quantity never goes negative. Exhausting the balance completes the redeem.
func (e *Engine) ConsumeBanked(c models.Collection, id string) (*models.Redeem, error) {
	r, err := e.get(c, id, models.RedeemTypeBanked)
	if err != nil {
		return nil, err
	}
	if r.Quantity <= 0 {
		return r, nil
	}
	r.Quantity--
	r.TotalConsumed++
	if r.Quantity == 0 {
		r.Status = models.RedeemStatusCompleted
	}
	r.UpdatedAt = e.Now()
	return r, nil
}

// AddToBanked grants amount more uses and re-opens an exhausted redeem.
func (e *Engine) AddToBanked(c models.Collection, id string, amount int) (*models.Redeem, error) {
	if amount < 1 {
		return nil, fmt.Errorf("%w: amount must be at least 1", models.ErrInvalidPayload)
	}
	r, err := e.get(c, id, models.RedeemTypeBanked)
	if err != nil {
		return nil, err
	}
	r.Quantity += amount
	r.TotalRedeemed += amount
	if r.Completed() {
		r.Status = models.RedeemStatusActive
	}
	r.UpdatedAt = e.Now()
	return r, nil
}

// CompleteInstant marks a one-shot redeem done. The only way back is Reset.
func (e *Engine) CompleteInstant(c models.Collection, id string) (*models.Redeem, error) {
	r, err := e.get(c, id, models.RedeemTypeInstant)
	if err != nil {
		return nil, err
	}
	now := e.Now()
	r.CompletedAt = &now
	r.Status = models.RedeemStatusCompleted
	r.UpdatedAt = now
	return r, nil
}

// IncrementCounter advances progress by one. Once the target is reached the
// counter completes and further increments are no-ops, so CurrentCount never
// passes TargetCount.
func (e *Engine) IncrementCounter(c models.Collection, id string) (*models.Redeem, error) {
	r, err := e.get(c, id, models.RedeemTypeCounter)
	if err != nil {
		return nil, err
	}
	if r.Completed() {
		return r, nil
	}
	r.CurrentCount++
	if r.CurrentCount >= r.TargetCount {
		r.Status = models.RedeemStatusCompleted
	}
	r.UpdatedAt = e.Now()
	return r, nil
}

// DecrementCounter rolls progress back by one and re-opens a completed
// counter. Decrementing at zero is a no-op.
func (e *Engine) DecrementCounter(c models.Collection, id string) (*models.Redeem, error) {
	r, err := e.get(c, id, models.RedeemTypeCounter)
	if err != nil {
		return nil, err
	}
	if r.CurrentCount <= 0 {
		return r, nil
	}
	r.CurrentCount--
	if r.Completed() {
		r.Status = models.RedeemStatusActive
	}
	r.UpdatedAt = e.Now()
	return r, nil
}

// ActivateToggle switches the redeem on.
func (e *Engine) ActivateToggle(c models.Collection, id string) (*models.Redeem, error) {
	r, err := e.get(c, id, models.RedeemTypeToggle)
	if err != nil {
		return nil, err
	}
	now := e.Now()
	r.ActivatedAt = &now
	r.DeactivatedAt = nil
	r.Status = models.RedeemStatusActive
	r.UpdatedAt = now
	return r, nil
}

// DeactivateToggle switches the redeem off and completes it.
func (e *Engine) DeactivateToggle(c models.Collection, id string) (*models.Redeem, error) {
	r, err := e.get(c, id, models.RedeemTypeToggle)
	if err != nil {
		return nil, err
	}
	now := e.Now()
	r.DeactivatedAt = &now
	r.Status = models.RedeemStatusCompleted
	r.UpdatedAt = now
	return r, nil
}

// Reset restores the "just created but already engaged" baseline. Identity,
// type, category, redeemer, reward name, note and CreatedAt are untouched.
// For banked redeems the full lifetime balance comes back: Quantity is
// restored to TotalRedeemed, which itself is never reset. Idempotent.
func (e *Engine) Reset(c models.Collection, id string) (*models.Redeem, error) {
	r := c.Find(id)
	if r == nil {
		return nil, models.ErrRedeemNotFound
	}
	switch r.Type {
	case models.RedeemTypeTimed:
		r.Status = models.RedeemStatusPaused
		r.AccumulatedMs = 0
		r.TimerStartedAt = nil
	case models.RedeemTypeBanked:
		r.Status = models.RedeemStatusActive
		r.Quantity = r.TotalRedeemed
		r.TotalConsumed = 0
	case models.RedeemTypeInstant:
		r.Status = models.RedeemStatusActive
		r.CompletedAt = nil
	case models.RedeemTypeCounter:
		r.Status = models.RedeemStatusActive
		r.CurrentCount = 0
	case models.RedeemTypeToggle:
		r.Status = models.RedeemStatusActive
		r.ActivatedAt = nil
		r.DeactivatedAt = nil
	}
	r.UpdatedAt = e.Now()
	return r, nil
}

// UpdateNote replaces the note unconditionally.
func (e *Engine) UpdateNote(c models.Collection, id, note string) (*models.Redeem, error) {
	r := c.Find(id)
	if r == nil {
		return nil, models.ErrRedeemNotFound
	}
	r.Note = note
	r.UpdatedAt = e.Now()
	return r, nil
}

// Delete removes the record from the collection. Removing an absent id is a
// no-op; the return value reports whether anything was removed.
func (e *Engine) Delete(c *models.Collection, id string) bool {
	for i, r := range *c {
		if r.ID == id {
			*c = append((*c)[:i], (*c)[i+1:]...)
			return true
		}
	}
	return false
}
