package repository

import (
	"context"

	"streamraiser-backend/internal/features/fundraiser/models"
)

type FundraiserRepository interface {
	Create(ctx context.Context, f *models.Fundraiser) error
	GetByID(ctx context.Context, id string) (*models.Fundraiser, error)
	Update(ctx context.Context, f *models.Fundraiser) error
	Delete(ctx context.Context, id string) error
	ListByEvent(ctx context.Context, eventID string) ([]*models.Fundraiser, error)
	CountByEvent(ctx context.Context, eventID string) (int64, error)
}
