package models

import (
	"errors"
	"time"

	redeemmodels "streamraiser-backend/internal/features/redeem/models"
)

var ErrRewardNotFound = errors.New("reward template not found")

// RewardTemplate is a catalog entry fundraisers pick their reward menu from.
// Creating a redeem from a template copies its defaults into the payload.
type RewardTemplate struct {
	ID          string                      `json:"id"`
	Name        string                      `json:"name"`
	Description string                      `json:"description"`
	Icon        string                      `json:"icon"`
	Type        redeemmodels.RedeemType     `json:"type"`
	Category    redeemmodels.RewardCategory `json:"category"`
	RequiredMs  int64                       `json:"required_ms,omitempty"`
	Quantity    int                         `json:"quantity,omitempty"`
	TargetCount int                         `json:"target_count,omitempty"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}

type RewardTemplateCreate struct {
	ID          string                      `json:"id" binding:"required,min=1,max=64"`
	Name        string                      `json:"name" binding:"required,min=1,max=100"`
	Description string                      `json:"description"`
	Icon        string                      `json:"icon"`
	Type        redeemmodels.RedeemType     `json:"type" binding:"required"`
	Category    redeemmodels.RewardCategory `json:"category" binding:"required"`
	RequiredMs  int64                       `json:"required_ms"`
	Quantity    int                         `json:"quantity"`
	TargetCount int                         `json:"target_count"`
}

type RewardTemplateUpdate struct {
	Name        *string `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Description *string `json:"description,omitempty"`
	Icon        *string `json:"icon,omitempty"`
	RequiredMs  *int64  `json:"required_ms,omitempty"`
	Quantity    *int    `json:"quantity,omitempty"`
	TargetCount *int    `json:"target_count,omitempty"`
}
