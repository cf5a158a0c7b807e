// Package seed provisions demo data: the built-in reward catalog, a demo
// event with four fundraisers, their starter redeems, and an admin account.
// Running it against a non-empty store is a no-op.
package seed

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	catalogservice "streamraiser-backend/internal/features/catalog/service"
	eventmodels "streamraiser-backend/internal/features/event/models"
	eventservice "streamraiser-backend/internal/features/event/service"
	fundraisermodels "streamraiser-backend/internal/features/fundraiser/models"
	fundraiserrepo "streamraiser-backend/internal/features/fundraiser/repository"
	"streamraiser-backend/internal/features/redeem/engine"
	redeemmodels "streamraiser-backend/internal/features/redeem/models"
	redeemrepo "streamraiser-backend/internal/features/redeem/repository"
	usermodels "streamraiser-backend/internal/features/user/models"
	userrepo "streamraiser-backend/internal/features/user/repository"
)

type Seeder struct {
	catalog     catalogservice.CatalogService
	events      eventservice.EventService
	fundraisers fundraiserrepo.FundraiserRepository
	collections redeemrepo.CollectionRepository
	users       userrepo.UserRepository

	adminToken string
	sessionTTL time.Duration
}

func NewSeeder(
	catalog catalogservice.CatalogService,
	events eventservice.EventService,
	fundraisers fundraiserrepo.FundraiserRepository,
	collections redeemrepo.CollectionRepository,
	users userrepo.UserRepository,
	adminToken string,
	sessionTTL time.Duration,
) *Seeder {
	return &Seeder{
		catalog:     catalog,
		events:      events,
		fundraisers: fundraisers,
		collections: collections,
		users:       users,
		adminToken:  adminToken,
		sessionTTL:  sessionTTL,
	}
}

type demoFundraiser struct {
	name        string
	goal        int
	raised      int
	twitchURL   string
	donationURL string
	catalogIDs  []string
	redeems     []redeemmodels.CreatePayload
}

var demoFundraisers = []demoFundraiser{
	{
		name: "Alex", goal: 3000, raised: 450,
		twitchURL: "https://twitch.tv/alex", donationURL: "https://example.com/donate/alex",
		catalogIDs: []string{"sprint-interval", "climb-simulation", "no-sit", "power-surge", "cadence-challenge", "hydration-lap", "attack-mode", "aero-tuck"},
		redeems: []redeemmodels.CreatePayload{
			{Type: redeemmodels.RedeemTypeTimed, Category: redeemmodels.CategoryFitness, Redeemer: "Viewer1", RewardName: "Sprint Interval", RequiredMs: 30000},
			{Type: redeemmodels.RedeemTypeCounter, Category: redeemmodels.CategoryFitness, Redeemer: "Viewer2", RewardName: "Power Surge", TargetCount: 5},
			{Type: redeemmodels.RedeemTypeToggle, Category: redeemmodels.CategoryFitness, Redeemer: "Viewer3", RewardName: "Attack Mode"},
		},
	},
	{
		name: "Jordan", goal: 2500, raised: 275,
		twitchURL: "https://twitch.tv/jordan", donationURL: "https://example.com/donate/jordan",
		catalogIDs: []string{"climb-simulation", "no-hands", "low-gear-grind", "one-leg-drill", "push-ups", "squats", "plank", "recovery-spin"},
		redeems: []redeemmodels.CreatePayload{
			{Type: redeemmodels.RedeemTypeTimed, Category: redeemmodels.CategoryChallenge, Redeemer: "Viewer4", RewardName: "Big Climb", RequiredMs: 300000},
			{Type: redeemmodels.RedeemTypeCounter, Category: redeemmodels.CategoryPerformance, Redeemer: "Viewer1", RewardName: "Single Leg Drill", TargetCount: 6},
		},
	},
	{
		name: "Sam", goal: 2000, raised: 180,
		twitchURL: "https://twitch.tv/sam", donationURL: "https://example.com/donate/sam",
		catalogIDs: []string{"sprint-interval", "shortest-path-climb", "song-request", "dad-joke", "truth-dare", "shoutout", "whisper-mode", "snack-break"},
		redeems: []redeemmodels.CreatePayload{
			{Type: redeemmodels.RedeemTypeInstant, Category: redeemmodels.CategoryChallenge, Redeemer: "Viewer5", RewardName: "Shortest Path to Summit"},
			{Type: redeemmodels.RedeemTypeBanked, Category: redeemmodels.CategoryWellness, Redeemer: "Viewer2", RewardName: "Snack Break", Quantity: 3},
		},
	},
	{
		name: "Riley", goal: 2500, raised: 320,
		twitchURL: "https://twitch.tv/riley", donationURL: "https://example.com/donate/riley",
		catalogIDs: []string{"climb-simulation", "no-sit", "cadence-challenge", "low-gear-grind", "recovery-spin", "hydration-lap", "stretch-break", "attack-mode"},
		redeems: []redeemmodels.CreatePayload{
			{Type: redeemmodels.RedeemTypeTimed, Category: redeemmodels.CategoryFitness, Redeemer: "Viewer3", RewardName: "Out of Saddle", RequiredMs: 60000},
			{Type: redeemmodels.RedeemTypeBanked, Category: redeemmodels.CategoryWellness, Redeemer: "Viewer4", RewardName: "Hydration Lap", Quantity: 5},
		},
	},
}

// Run seeds everything and reports what it did.
func (s *Seeder) Run(ctx context.Context) (string, error) {
	if err := s.ensureAdmin(ctx); err != nil {
		return "", err
	}

	seeded, err := s.catalog.SeedPresets(ctx)
	if err != nil {
		return "", fmt.Errorf("seed catalog: %w", err)
	}

	existing, err := s.events.List(ctx)
	if err != nil {
		return "", err
	}
	if len(existing) > 0 {
		if seeded > 0 {
			return "catalog seeded, demo data already present", nil
		}
		return "already seeded", nil
	}

	if err := s.seedDemoEvent(ctx); err != nil {
		return "", err
	}
	return "seeded", nil
}

// ensureAdmin provisions the bootstrap admin account and its session token.
// Without it no admin route is reachable on a fresh install.
func (s *Seeder) ensureAdmin(ctx context.Context) error {
	if s.adminToken == "" {
		return nil
	}
	if _, err := s.users.GetByToken(ctx, s.adminToken); err == nil {
		return nil
	}

	now := time.Now()
	admin := &usermodels.User{
		ID:        uuid.New().String(),
		Email:     "admin@streamraiser.local",
		Name:      "Admin",
		IsAdmin:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.Create(ctx, admin); err != nil {
		return fmt.Errorf("create admin user: %w", err)
	}
	if err := s.users.CreateSession(ctx, s.adminToken, admin.ID, s.sessionTTL); err != nil {
		return fmt.Errorf("create admin session: %w", err)
	}

	log.Info().Str("user_id", admin.ID).Msg("bootstrap admin provisioned")
	return nil
}

func (s *Seeder) seedDemoEvent(ctx context.Context) error {
	event, err := s.events.Create(ctx, &eventmodels.EventCreate{
		Name:        "4K4 2026",
		Description: "Annual 4K4 charity cycling event. Ride hard, raise funds, unlock rewards!",
		Goal:        10000,
		DonationURL: "https://kilometers4kiddos.org/",
		Status:      eventmodels.EventStatusActive,
	})
	if err != nil {
		return fmt.Errorf("seed event: %w", err)
	}

	eng := engine.New()
	now := time.Now()

	for i, d := range demoFundraisers {
		f := &fundraisermodels.Fundraiser{
			ID:               uuid.New().String(),
			EventID:          event.ID,
			Name:             d.name,
			AvatarColor:      fundraisermodels.AvatarColors[i%len(fundraisermodels.AvatarColors)],
			Goal:             d.goal,
			Raised:           d.raised,
			TwitchURL:        d.twitchURL,
			DonationURL:      d.donationURL,
			RewardCatalogIDs: d.catalogIDs,
			CreatedAt:        now,
			UpdatedAt:        now,
		}
		if err := s.fundraisers.Create(ctx, f); err != nil {
			return fmt.Errorf("seed fundraiser %s: %w", d.name, err)
		}

		var collection redeemmodels.Collection
		for j := range d.redeems {
			if _, err := eng.Create(&collection, &d.redeems[j]); err != nil {
				return fmt.Errorf("seed redeem for %s: %w", d.name, err)
			}
		}
		if err := s.collections.Save(ctx, f.ID, collection); err != nil {
			return fmt.Errorf("seed redeems for %s: %w", d.name, err)
		}

		log.Debug().
			Str("fundraiser_id", f.ID).
			Int("redeems", len(collection)).
			Msg("demo fundraiser seeded")
	}

	log.Info().Str("event_id", event.ID).Msg("demo event seeded")
	return nil
}
