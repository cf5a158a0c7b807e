package engine

import (
	"errors"

	"streamraiser-backend/internal/features/redeem/models"
)

// Action names accepted by Apply. These are the external names used by the
// PATCH endpoint and by overlay clients.
const (
	ActionStartTimer       = "startTimer"
	ActionPauseTimer       = "pauseTimer"
	ActionCompleteTimer    = "completeTimer"
	ActionConsumeBanked    = "consumeBanked"
	ActionAddToBanked      = "addToBanked"
	ActionCompleteInstant  = "completeInstant"
	ActionIncrementCounter = "incrementCounter"
	ActionDecrementCounter = "decrementCounter"
	ActionActivateToggle   = "activateToggle"
	ActionDeactivateToggle = "deactivateToggle"
	ActionReset            = "resetRedeem"
	ActionUpdateNote       = "updateNote"
	ActionDelete           = "deleteRedeem"
)

// ActionParams carries the optional parameters of an action. Amount defaults
// to 1 for addToBanked when omitted.
type ActionParams struct {
	Amount int    `json:"amount,omitempty"`
	Note   string `json:"note,omitempty"`
}

// Apply dispatches one named action against the collection and returns the
// mutated record (nil for deleteRedeem). Unknown names fail with
// ErrUnknownAction before any mutation.
func (e *Engine) Apply(c *models.Collection, id, action string, p ActionParams) (*models.Redeem, error) {
	switch action {
	case ActionStartTimer:
		return e.StartTimer(*c, id)
	case ActionPauseTimer:
		return e.PauseTimer(*c, id)
	case ActionCompleteTimer:
		return e.CompleteTimer(*c, id)
	case ActionConsumeBanked:
		return e.ConsumeBanked(*c, id)
	case ActionAddToBanked:
		amount := p.Amount
		if amount == 0 {
			amount = 1
		}
		return e.AddToBanked(*c, id, amount)
	case ActionCompleteInstant:
		return e.CompleteInstant(*c, id)
	case ActionIncrementCounter:
		return e.IncrementCounter(*c, id)
	case ActionDecrementCounter:
		return e.DecrementCounter(*c, id)
	case ActionActivateToggle:
		return e.ActivateToggle(*c, id)
	case ActionDeactivateToggle:
		return e.DeactivateToggle(*c, id)
	case ActionReset:
		return e.Reset(*c, id)
	case ActionUpdateNote:
		return e.UpdateNote(*c, id, p.Note)
	case ActionDelete:
		e.Delete(c, id)
		return nil, nil
	default:
		return nil, models.ErrUnknownAction
	}
}

// ApplyLenient is the tolerance path for optimistic UI callers acting on a
// possibly stale view: missing records and wrong-variant actions degrade to
// no-ops instead of errors. Payload problems still surface.
func (e *Engine) ApplyLenient(c *models.Collection, id, action string, p ActionParams) (*models.Redeem, error) {
	r, err := e.Apply(c, id, action, p)
	if errors.Is(err, models.ErrRedeemNotFound) || errors.Is(err, models.ErrTypeMismatch) {
		return nil, nil
	}
	return r, err
}
