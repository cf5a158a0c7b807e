package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"streamraiser-backend/internal/features/catalog/models"
	"streamraiser-backend/internal/features/catalog/repository"
	redeemmodels "streamraiser-backend/internal/features/redeem/models"
)

type CatalogService interface {
	Create(ctx context.Context, input *models.RewardTemplateCreate) (*models.RewardTemplate, error)
	GetByID(ctx context.Context, id string) (*models.RewardTemplate, error)
	Update(ctx context.Context, id string, input *models.RewardTemplateUpdate) (*models.RewardTemplate, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*models.RewardTemplate, error)
	ListByIDs(ctx context.Context, ids []string) ([]*models.RewardTemplate, error)
	SeedPresets(ctx context.Context) (int, error)
}

type catalogService struct {
	repo repository.RewardRepository
}

func NewCatalogService(repo repository.RewardRepository) CatalogService {
	return &catalogService{repo: repo}
}

func fromCreate(input *models.RewardTemplateCreate, now time.Time) *models.RewardTemplate {
	icon := input.Icon
	if icon == "" {
		icon = input.Type.Icon()
	}
	return &models.RewardTemplate{
		ID:          input.ID,
		Name:        input.Name,
		Description: input.Description,
		Icon:        icon,
		Type:        input.Type,
		Category:    input.Category,
		RequiredMs:  input.RequiredMs,
		Quantity:    input.Quantity,
		TargetCount: input.TargetCount,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func (s *catalogService) Create(ctx context.Context, input *models.RewardTemplateCreate) (*models.RewardTemplate, error) {
	if !input.Type.Valid() {
		return nil, fmt.Errorf("%w: unknown redeem type %q", redeemmodels.ErrInvalidPayload, input.Type)
	}
	if !input.Category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", redeemmodels.ErrInvalidPayload, input.Category)
	}

	t := fromCreate(input, time.Now())
	if err := s.repo.Upsert(ctx, t); err != nil {
		return nil, err
	}

	log.Info().Str("reward_id", t.ID).Str("type", string(t.Type)).Msg("reward template saved")
	return t, nil
}

func (s *catalogService) GetByID(ctx context.Context, id string) (*models.RewardTemplate, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *catalogService) Update(ctx context.Context, id string, input *models.RewardTemplateUpdate) (*models.RewardTemplate, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		t.Name = *input.Name
	}
	if input.Description != nil {
		t.Description = *input.Description
	}
	if input.Icon != nil {
		t.Icon = *input.Icon
	}
	if input.RequiredMs != nil {
		t.RequiredMs = *input.RequiredMs
	}
	if input.Quantity != nil {
		t.Quantity = *input.Quantity
	}
	if input.TargetCount != nil {
		t.TargetCount = *input.TargetCount
	}
	t.UpdatedAt = time.Now()

	if err := s.repo.Upsert(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *catalogService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *catalogService) List(ctx context.Context) ([]*models.RewardTemplate, error) {
	return s.repo.List(ctx)
}

func (s *catalogService) ListByIDs(ctx context.Context, ids []string) ([]*models.RewardTemplate, error) {
	return s.repo.ListByIDs(ctx, ids)
}

// SeedPresets loads the built-in catalog once. A non-empty table means a
// previous seed (or live edits) already happened and is left alone.
func (s *catalogService) SeedPresets(ctx context.Context) (int, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	now := time.Now()
	for i := range models.Presets {
		t := fromCreate(&models.Presets[i], now)
		if err := s.repo.Upsert(ctx, t); err != nil {
			return i, fmt.Errorf("seed preset %s: %w", t.ID, err)
		}
	}

	log.Info().Int("count", len(models.Presets)).Msg("reward presets seeded")
	return len(models.Presets), nil
}
