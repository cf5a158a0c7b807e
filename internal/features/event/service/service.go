package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"streamraiser-backend/internal/features/event/models"
	"streamraiser-backend/internal/features/event/repository"
)

type EventService interface {
	Create(ctx context.Context, input *models.EventCreate) (*models.Event, error)
	GetByID(ctx context.Context, id string) (*models.Event, error)
	Update(ctx context.Context, id string, input *models.EventUpdate) (*models.Event, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*models.Event, error)
}

type eventService struct {
	repo repository.EventRepository
}

func NewEventService(repo repository.EventRepository) EventService {
	return &eventService{repo: repo}
}

func (s *eventService) Create(ctx context.Context, input *models.EventCreate) (*models.Event, error) {
	now := time.Now()
	status := input.Status
	if status == "" {
		status = models.EventStatusActive
	}

	e := &models.Event{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Description: input.Description,
		Goal:        input.Goal,
		DonationURL: input.DonationURL,
		Status:      status,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.repo.Create(ctx, e); err != nil {
		return nil, err
	}

	log.Info().Str("event_id", e.ID).Str("name", e.Name).Msg("event created")
	return e, nil
}

func (s *eventService) GetByID(ctx context.Context, id string) (*models.Event, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *eventService) Update(ctx context.Context, id string, input *models.EventUpdate) (*models.Event, error) {
	e, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		e.Name = *input.Name
	}
	if input.Description != nil {
		e.Description = *input.Description
	}
	if input.Goal != nil {
		e.Goal = *input.Goal
	}
	if input.DonationURL != nil {
		e.DonationURL = *input.DonationURL
	}
	if input.Status != nil {
		e.Status = *input.Status
	}
	e.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *eventService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *eventService) List(ctx context.Context) ([]*models.Event, error) {
	return s.repo.List(ctx)
}
