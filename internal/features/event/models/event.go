package models

import (
	"errors"
	"time"
)

var ErrEventNotFound = errors.New("event not found")

// EventStatus is the lifecycle of a charity event.
type EventStatus string

const (
	EventStatusDraft     EventStatus = "draft"
	EventStatusActive    EventStatus = "active"
	EventStatusCompleted EventStatus = "completed"
)

// Event is one charity stream event that fundraisers join.
type Event struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Goal        int         `json:"goal"`
	DonationURL string      `json:"donation_url"`
	Status      EventStatus `json:"status"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

type EventCreate struct {
	Name        string      `json:"name" binding:"required,min=1,max=100"`
	Description string      `json:"description"`
	Goal        int         `json:"goal" binding:"required,min=1"`
	DonationURL string      `json:"donation_url"`
	Status      EventStatus `json:"status"`
}

type EventUpdate struct {
	Name        *string      `json:"name,omitempty" binding:"omitempty,min=1,max=100"`
	Description *string      `json:"description,omitempty"`
	Goal        *int         `json:"goal,omitempty" binding:"omitempty,min=1"`
	DonationURL *string      `json:"donation_url,omitempty"`
	Status      *EventStatus `json:"status,omitempty"`
}
