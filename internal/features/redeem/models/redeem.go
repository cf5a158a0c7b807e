package models

import (
	"time"
)

// RedeemType selects the variant of a redeem. Immutable after creation.
type RedeemType string

const (
	RedeemTypeTimed   RedeemType = "timed"
	RedeemTypeBanked  RedeemType = "banked"
	RedeemTypeInstant RedeemType = "instant"
	RedeemTypeCounter RedeemType = "counter"
	RedeemTypeToggle  RedeemType = "toggle"
)

// RedeemTypes lists every variant in display order.
var RedeemTypes = []RedeemType{
	RedeemTypeTimed,
	RedeemTypeBanked,
	RedeemTypeInstant,
	RedeemTypeCounter,
	RedeemTypeToggle,
}

// Valid reports whether t is a known variant.
func (t RedeemType) Valid() bool {
	switch t {
	case RedeemTypeTimed, RedeemTypeBanked, RedeemTypeInstant, RedeemTypeCounter, RedeemTypeToggle:
		return true
	}
	return false
}

// RedeemStatus is the cached lifecycle state of a redeem. The legal subset
// depends on the variant: only timed redeems may be paused.
type RedeemStatus string

const (
	RedeemStatusActive    RedeemStatus = "active"
	RedeemStatusPaused    RedeemStatus = "paused"
	RedeemStatusCompleted RedeemStatus = "completed"
)

// RewardCategory classifies a redeem within the reward catalog.
type RewardCategory string

const (
	CategoryChallenge     RewardCategory = "challenge"
	CategoryFitness       RewardCategory = "fitness"
	CategoryCosmetic      RewardCategory = "cosmetic"
	CategoryEntertainment RewardCategory = "entertainment"
	CategoryPerformance   RewardCategory = "performance"
	CategorySocial        RewardCategory = "social"
	CategoryWellness      RewardCategory = "wellness"
)

// RewardCategories lists every category in display order.
var RewardCategories = []RewardCategory{
	CategoryChallenge,
	CategoryFitness,
	CategoryCosmetic,
	CategoryEntertainment,
	CategoryPerformance,
	CategorySocial,
	CategoryWellness,
}

// Valid reports whether c is a known category.
func (c RewardCategory) Valid() bool {
	for _, known := range RewardCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Redeem is one tracked instance of a viewer reward. The variant is selected
// by Type; only the field group of the matching variant is meaningful, the
// others stay at their zero values. This mirrors the wire format and the
// original single-table row, while the engine switches exhaustively on Type.
type Redeem struct {
	ID         string         `json:"id"`
	Type       RedeemType     `json:"type"`
	Category   RewardCategory `json:"category"`
	Redeemer   string         `json:"redeemer"`
	RewardName string         `json:"reward_name"`
	Note       string         `json:"note"`
	Status     RedeemStatus   `json:"status"`

	// Timed
	RequiredMs     int64      `json:"required_ms,omitempty"`
	AccumulatedMs  int64      `json:"accumulated_ms,omitempty"`
	TimerStartedAt *time.Time `json:"timer_started_at,omitempty"`

	// Banked
	Quantity      int `json:"quantity,omitempty"`
	TotalRedeemed int `json:"total_redeemed,omitempty"`
	TotalConsumed int `json:"total_consumed,omitempty"`

	// Instant
	CompletedAt *time.Time `json:"completed_at,omitempty"`

	// Counter
	TargetCount  int `json:"target_count,omitempty"`
	CurrentCount int `json:"current_count,omitempty"`

	// Toggle
	ActivatedAt   *time.Time `json:"activated_at,omitempty"`
	DeactivatedAt *time.Time `json:"deactivated_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Completed reports whether the redeem has reached its terminal state.
func (r *Redeem) Completed() bool {
	return r.Status == RedeemStatusCompleted
}

// Collection is the ordered redeem collection owned by one fundraiser.
// Insertion order is meaningful for default display.
type Collection []*Redeem

// Find returns the redeem with the given id, or nil.
func (c Collection) Find(id string) *Redeem {
	for _, r := range c {
		if r.ID == id {
			return r
		}
	}
	return nil
}
