package repository

import (
	"context"

	"streamraiser-backend/internal/features/catalog/models"
)

type RewardRepository interface {
	Upsert(ctx context.Context, t *models.RewardTemplate) error
	GetByID(ctx context.Context, id string) (*models.RewardTemplate, error)
	List(ctx context.Context) ([]*models.RewardTemplate, error)
	ListByIDs(ctx context.Context, ids []string) ([]*models.RewardTemplate, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}
