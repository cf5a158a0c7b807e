package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	eventrepo "streamraiser-backend/internal/features/event/repository"
	"streamraiser-backend/internal/features/fundraiser/models"
	"streamraiser-backend/internal/features/fundraiser/repository"
	redeemrepo "streamraiser-backend/internal/features/redeem/repository"
	usermodels "streamraiser-backend/internal/features/user/models"
)

type FundraiserService interface {
	Create(ctx context.Context, actor *usermodels.User, input *models.FundraiserCreate) (*models.FundraiserResponse, error)
	GetByID(ctx context.Context, id string) (*models.FundraiserResponse, error)
	Update(ctx context.Context, id string, actor *usermodels.User, input *models.FundraiserUpdate) (*models.Fundraiser, error)
	Delete(ctx context.Context, id string, actor *usermodels.User) error
	Donate(ctx context.Context, id string, amount int) (int, error)
	ListByEvent(ctx context.Context, eventID string) ([]*models.Fundraiser, error)
}

type fundraiserService struct {
	repo        repository.FundraiserRepository
	events      eventrepo.EventRepository
	collections redeemrepo.CollectionRepository
}

func NewFundraiserService(
	repo repository.FundraiserRepository,
	events eventrepo.EventRepository,
	collections redeemrepo.CollectionRepository,
) FundraiserService {
	return &fundraiserService{repo: repo, events: events, collections: collections}
}

// authorize checks the actor owns the fundraiser or is an admin.
func authorize(f *models.Fundraiser, actor *usermodels.User) error {
	if actor == nil || (f.UserID != actor.ID && !actor.IsAdmin) {
		return models.ErrNotOwner
	}
	return nil
}

func (s *fundraiserService) Create(ctx context.Context, actor *usermodels.User, input *models.FundraiserCreate) (*models.FundraiserResponse, error) {
	if _, err := s.events.GetByID(ctx, input.EventID); err != nil {
		return nil, err
	}

	// One fundraiser per user per event.
	existing, err := s.repo.ListByEvent(ctx, input.EventID)
	if err != nil {
		return nil, err
	}
	for _, f := range existing {
		if actor != nil && f.UserID == actor.ID {
			return nil, models.ErrAlreadyJoined
		}
	}

	// Cycle the avatar palette by join order.
	count, err := s.repo.CountByEvent(ctx, input.EventID)
	if err != nil {
		return nil, err
	}
	color := models.AvatarColors[count%int64(len(models.AvatarColors))]

	catalogIDs := input.RewardCatalogIDs
	if catalogIDs == nil {
		catalogIDs = []string{}
	}

	now := time.Now()
	f := &models.Fundraiser{
		ID:               uuid.New().String(),
		EventID:          input.EventID,
		Name:             input.Name,
		AvatarColor:      color,
		Goal:             input.Goal,
		TwitchURL:        input.TwitchURL,
		DonationURL:      input.DonationURL,
		RewardCatalogIDs: catalogIDs,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if actor != nil {
		f.UserID = actor.ID
	}

	if err := s.repo.Create(ctx, f); err != nil {
		return nil, fmt.Errorf("create fundraiser: %w", err)
	}

	log.Info().
		Str("fundraiser_id", f.ID).
		Str("event_id", f.EventID).
		Str("name", f.Name).
		Msg("fundraiser joined event")
	return &models.FundraiserResponse{Fundraiser: *f, Redeems: nil}, nil
}

func (s *fundraiserService) GetByID(ctx context.Context, id string) (*models.FundraiserResponse, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	redeems, err := s.collections.Load(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.FundraiserResponse{Fundraiser: *f, Redeems: redeems}, nil
}

func (s *fundraiserService) Update(ctx context.Context, id string, actor *usermodels.User, input *models.FundraiserUpdate) (*models.Fundraiser, error) {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := authorize(f, actor); err != nil {
		return nil, err
	}

	if input.Name != nil {
		f.Name = *input.Name
	}
	if input.Goal != nil {
		f.Goal = *input.Goal
	}
	if input.Raised != nil {
		f.Raised = *input.Raised
	}
	if input.TwitchURL != nil {
		f.TwitchURL = *input.TwitchURL
	}
	if input.DonationURL != nil {
		f.DonationURL = *input.DonationURL
	}
	if input.RewardCatalogIDs != nil {
		f.RewardCatalogIDs = input.RewardCatalogIDs
	}
	f.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, f); err != nil {
		return nil, err
	}
	return f, nil
}

func (s *fundraiserService) Delete(ctx context.Context, id string, actor *usermodels.User) error {
	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := authorize(f, actor); err != nil {
		return err
	}

	// The redeem collection lives and dies with its fundraiser.
	if err := s.collections.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete redeem collection: %w", err)
	}
	return s.repo.Delete(ctx, id)
}

// Donate is public: anyone may push a fundraiser's raised total forward.
func (s *fundraiserService) Donate(ctx context.Context, id string, amount int) (int, error) {
	if amount <= 0 {
		return 0, models.ErrInvalidAmount
	}

	f, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return 0, err
	}
	f.Raised += amount
	f.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, f); err != nil {
		return 0, err
	}

	log.Info().
		Str("fundraiser_id", id).
		Int("amount", amount).
		Int("raised", f.Raised).
		Msg("donation recorded")
	return f.Raised, nil
}

func (s *fundraiserService) ListByEvent(ctx context.Context, eventID string) ([]*models.Fundraiser, error) {
	if _, err := s.events.GetByID(ctx, eventID); err != nil {
		return nil, err
	}
	return s.repo.ListByEvent(ctx, eventID)
}
