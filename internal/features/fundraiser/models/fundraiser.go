package models

import (
	"errors"
	"time"

	redeemmodels "streamraiser-backend/internal/features/redeem/models"
)

var (
	ErrFundraiserNotFound = errors.New("fundraiser not found")
	ErrAlreadyJoined      = errors.New("user has already joined this event")
	ErrNotOwner           = errors.New("fundraiser belongs to another user")
	ErrInvalidAmount      = errors.New("donation amount must be positive")
)

// AvatarColors is the palette cycled through when fundraisers join an event.
var AvatarColors = []string{
	"blue", "emerald", "amber", "violet", "rose", "cyan", "orange", "teal",
}

// Fundraiser is one participant of a charity event: a person streaming and
// collecting donations, owning an ordered redeem collection.
type Fundraiser struct {
	ID               string    `json:"id"`
	EventID          string    `json:"event_id"`
	UserID           string    `json:"user_id,omitempty"`
	Name             string    `json:"name"`
	AvatarColor      string    `json:"avatar_color"`
	Goal             int       `json:"goal"`
	Raised           int       `json:"raised"`
	TwitchURL        string    `json:"twitch_url"`
	DonationURL      string    `json:"donation_url"`
	RewardCatalogIDs []string  `json:"reward_catalog_ids"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// FundraiserCreate is the join-event payload.
type FundraiserCreate struct {
	EventID          string   `json:"event_id" binding:"required"`
	Name             string   `json:"name" binding:"required,min=1,max=100"`
	Goal             int      `json:"goal" binding:"required,min=1"`
	TwitchURL        string   `json:"twitch_url"`
	DonationURL      string   `json:"donation_url"`
	RewardCatalogIDs []string `json:"reward_catalog_ids"`
}

// FundraiserUpdate carries partial updates; nil fields stay untouched.
type FundraiserUpdate struct {
	Name             *string  `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Goal             *int     `json:"goal,omitempty" binding:"omitempty,min=1"`
	Raised           *int     `json:"raised,omitempty" binding:"omitempty,min=0"`
	TwitchURL        *string  `json:"twitch_url,omitempty"`
	DonationURL      *string  `json:"donation_url,omitempty"`
	RewardCatalogIDs []string `json:"reward_catalog_ids,omitempty"`
}

// FundraiserResponse is a fundraiser with its redeem collection embedded.
type FundraiserResponse struct {
	Fundraiser
	Redeems redeemmodels.Collection `json:"redeems"`
}
