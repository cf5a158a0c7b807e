package repository

import (
	"context"

	"streamraiser-backend/internal/features/event/models"
)

type EventRepository interface {
	Create(ctx context.Context, e *models.Event) error
	GetByID(ctx context.Context, id string) (*models.Event, error)
	Update(ctx context.Context, e *models.Event) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*models.Event, error)
}
