package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	fundraisermodels "streamraiser-backend/internal/features/fundraiser/models"
	fundraiserrepo "streamraiser-backend/internal/features/fundraiser/repository"
	"streamraiser-backend/internal/features/redeem/engine"
	"streamraiser-backend/internal/features/redeem/models"
	"streamraiser-backend/internal/features/redeem/query"
	"streamraiser-backend/internal/features/redeem/repository"
	usermodels "streamraiser-backend/internal/features/user/models"
)

// Stats bundles the derived views served by the stats endpoint.
type Stats struct {
	Totals          query.StatusCounts                           `json:"totals"`
	ByCategory      map[models.RewardCategory]query.StatusCounts `json:"by_category"`
	ByType          map[models.RedeemType]query.StatusCounts     `json:"by_type"`
	Leaderboard     []query.LeaderboardEntry                     `json:"leaderboard"`
	RecentRedeemers []string                                     `json:"recent_redeemers"`
}

// FeedItem is a redeem in the global overlay feed, tagged with its owner and
// carrying the display fields the overlay renders directly.
type FeedItem struct {
	FundraiserID string `json:"fundraiser_id"`
	*models.Redeem

	TypeLabel  string `json:"type_label"`
	TypeIcon   string `json:"type_icon"`
	StatusTone string `json:"status_tone"`
	CreatedAgo string `json:"created_ago"`
}

type RedeemService interface {
	Create(ctx context.Context, fundraiserID string, actor *usermodels.User, payload *models.CreatePayload) (*models.Redeem, error)
	Act(ctx context.Context, fundraiserID, redeemID string, actor *usermodels.User, action string, params engine.ActionParams) (*models.Redeem, error)
	Delete(ctx context.Context, fundraiserID, redeemID string, actor *usermodels.User) error
	Get(ctx context.Context, fundraiserID, redeemID string) (*models.Redeem, error)
	List(ctx context.Context, fundraiserID, q string, category models.RewardCategory, status query.StatusFilter) (models.Collection, error)
	Stats(ctx context.Context, fundraiserID string) (*Stats, error)
	GlobalFeed(ctx context.Context) ([]FeedItem, error)
}

type redeemService struct {
	engine      *engine.Engine
	collections repository.CollectionRepository
	fundraisers fundraiserrepo.FundraiserRepository

	// Per-fundraiser locks serialize the load-mutate-save cycle so the
	// banked-create merge lookup stays atomic with its insert. Single-instance
	// discipline; a multi-writer deployment needs the store to provide it.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewRedeemService(
	eng *engine.Engine,
	collections repository.CollectionRepository,
	fundraisers fundraiserrepo.FundraiserRepository,
) RedeemService {
	return &redeemService{
		engine:      eng,
		collections: collections,
		fundraisers: fundraisers,
		locks:       make(map[string]*sync.Mutex),
	}
}

func (s *redeemService) lock(fundraiserID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[fundraiserID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[fundraiserID] = l
	}
	return l
}

// authorize resolves the fundraiser and checks the actor may act on it.
func (s *redeemService) authorize(ctx context.Context, fundraiserID string, actor *usermodels.User) (*fundraisermodels.Fundraiser, error) {
	f, err := s.fundraisers.GetByID(ctx, fundraiserID)
	if err != nil {
		return nil, err
	}
	if actor == nil || (f.UserID != actor.ID && !actor.IsAdmin) {
		return nil, fundraisermodels.ErrNotOwner
	}
	return f, nil
}

func (s *redeemService) Create(ctx context.Context, fundraiserID string, actor *usermodels.User, payload *models.CreatePayload) (*models.Redeem, error) {
	if _, err := s.authorize(ctx, fundraiserID, actor); err != nil {
		return nil, err
	}

	l := s.lock(fundraiserID)
	l.Lock()
	defer l.Unlock()

	c, err := s.collections.Load(ctx, fundraiserID)
	if err != nil {
		return nil, fmt.Errorf("load collection: %w", err)
	}

	r, err := s.engine.Create(&c, payload)
	if err != nil {
		return nil, err
	}

	if err := s.collections.Save(ctx, fundraiserID, c); err != nil {
		return nil, fmt.Errorf("save collection: %w", err)
	}

	log.Debug().
		Str("fundraiser_id", fundraiserID).
		Str("redeem_id", r.ID).
		Str("type", string(r.Type)).
		Msg("redeem created")
	return r, nil
}

func (s *redeemService) Act(ctx context.Context, fundraiserID, redeemID string, actor *usermodels.User, action string, params engine.ActionParams) (*models.Redeem, error) {
	if _, err := s.authorize(ctx, fundraiserID, actor); err != nil {
		return nil, err
	}

	l := s.lock(fundraiserID)
	l.Lock()
	defer l.Unlock()

	c, err := s.collections.Load(ctx, fundraiserID)
	if err != nil {
		return nil, fmt.Errorf("load collection: %w", err)
	}

	r, err := s.engine.Apply(&c, redeemID, action, params)
	if err != nil {
		return nil, err
	}

	if err := s.collections.Save(ctx, fundraiserID, c); err != nil {
		return nil, fmt.Errorf("save collection: %w", err)
	}

	log.Debug().
		Str("fundraiser_id", fundraiserID).
		Str("redeem_id", redeemID).
		Str("action", action).
		Msg("redeem action applied")
	return r, nil
}

func (s *redeemService) Delete(ctx context.Context, fundraiserID, redeemID string, actor *usermodels.User) error {
	if _, err := s.authorize(ctx, fundraiserID, actor); err != nil {
		return err
	}

	l := s.lock(fundraiserID)
	l.Lock()
	defer l.Unlock()

	c, err := s.collections.Load(ctx, fundraiserID)
	if err != nil {
		return fmt.Errorf("load collection: %w", err)
	}

	if !s.engine.Delete(&c, redeemID) {
		// Removing an absent redeem is a no-op, not an error.
		return nil
	}
	return s.collections.Save(ctx, fundraiserID, c)
}

func (s *redeemService) Get(ctx context.Context, fundraiserID, redeemID string) (*models.Redeem, error) {
	c, err := s.collections.Load(ctx, fundraiserID)
	if err != nil {
		return nil, err
	}
	r := c.Find(redeemID)
	if r == nil {
		return nil, models.ErrRedeemNotFound
	}
	return r, nil
}

func (s *redeemService) List(ctx context.Context, fundraiserID, q string, category models.RewardCategory, status query.StatusFilter) (models.Collection, error) {
	if _, err := s.fundraisers.GetByID(ctx, fundraiserID); err != nil {
		return nil, err
	}
	c, err := s.collections.Load(ctx, fundraiserID)
	if err != nil {
		return nil, err
	}
	if status == "" {
		status = query.StatusAll
	}
	return query.Filter(c, q, category, status), nil
}

func (s *redeemService) Stats(ctx context.Context, fundraiserID string) (*Stats, error) {
	if _, err := s.fundraisers.GetByID(ctx, fundraiserID); err != nil {
		return nil, err
	}
	c, err := s.collections.Load(ctx, fundraiserID)
	if err != nil {
		return nil, err
	}
	return &Stats{
		Totals:          query.Totals(c),
		ByCategory:      query.CountByCategory(c),
		ByType:          query.CountByType(c),
		Leaderboard:     query.Leaderboard(c),
		RecentRedeemers: query.RecentRedeemers(c),
	}, nil
}

// GlobalFeed flattens every collection into one chronological list for the
// cross-fundraiser overlay, oldest first.
func (s *redeemService) GlobalFeed(ctx context.Context) ([]FeedItem, error) {
	all, err := s.collections.LoadAll(ctx)
	if err != nil {
		return nil, err
	}

	now := s.engine.Now()
	feed := make([]FeedItem, 0)
	for fundraiserID, c := range all {
		for _, r := range c {
			feed = append(feed, FeedItem{
				FundraiserID: fundraiserID,
				Redeem:       r,
				TypeLabel:    r.Type.Label(),
				TypeIcon:     r.Type.Icon(),
				StatusTone:   r.Status.Tone(),
				CreatedAgo:   models.RelativeTime(r.CreatedAt, now),
			})
		}
	}
	sortFeed(feed)
	return feed, nil
}
