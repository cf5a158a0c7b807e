package models

import "fmt"

// CreatePayload carries the fully resolved values for a new redeem. Preset
// defaults are resolved by the catalog before this point; the engine never
// sees catalog templates.
type CreatePayload struct {
	Type       RedeemType     `json:"type"`
	Category   RewardCategory `json:"category"`
	Redeemer   string         `json:"redeemer"`
	RewardName string         `json:"reward_name"`
	Note       string         `json:"note"`

	RequiredMs  int64 `json:"required_ms,omitempty"`  // timed
	Quantity    int   `json:"quantity,omitempty"`     // banked
	TargetCount int   `json:"target_count,omitempty"` // counter
}

// Validate rejects unknown types and missing or non-positive type-specific
// fields before any mutation happens.
func (p *CreatePayload) Validate() error {
	if !p.Type.Valid() {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidPayload, p.Type)
	}
	if !p.Category.Valid() {
		return fmt.Errorf("%w: unknown category %q", ErrInvalidPayload, p.Category)
	}
	if p.Redeemer == "" {
		return fmt.Errorf("%w: redeemer is required", ErrInvalidPayload)
	}
	if p.RewardName == "" {
		return fmt.Errorf("%w: reward_name is required", ErrInvalidPayload)
	}

	switch p.Type {
	case RedeemTypeTimed:
		if p.RequiredMs <= 0 {
			return fmt.Errorf("%w: required_ms must be positive", ErrInvalidPayload)
		}
	case RedeemTypeBanked:
		if p.Quantity < 1 {
			return fmt.Errorf("%w: quantity must be at least 1", ErrInvalidPayload)
		}
	case RedeemTypeCounter:
		if p.TargetCount < 1 {
			return fmt.Errorf("%w: target_count must be at least 1", ErrInvalidPayload)
		}
	}
	return nil
}
