package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fundraisermodels "streamraiser-backend/internal/features/fundraiser/models"
	"streamraiser-backend/internal/features/redeem/engine"
	"streamraiser-backend/internal/features/redeem/models"
	"streamraiser-backend/internal/features/redeem/query"
	usermodels "streamraiser-backend/internal/features/user/models"
)

// ---------------------------------------------------------------------------
// Mocks
// ---------------------------------------------------------------------------

type mockCollections struct {
	data  map[string]models.Collection
	saves int
}

func newMockCollections() *mockCollections {
	return &mockCollections{data: make(map[string]models.Collection)}
}

func (m *mockCollections) Load(_ context.Context, fundraiserID string) (models.Collection, error) {
	return m.data[fundraiserID], nil
}

func (m *mockCollections) Save(_ context.Context, fundraiserID string, c models.Collection) error {
	m.saves++
	m.data[fundraiserID] = c
	return nil
}

func (m *mockCollections) Delete(_ context.Context, fundraiserID string) error {
	delete(m.data, fundraiserID)
	return nil
}

func (m *mockCollections) LoadAll(_ context.Context) (map[string]models.Collection, error) {
	return m.data, nil
}

type mockFundraisers struct {
	items map[string]*fundraisermodels.Fundraiser
}

func (m *mockFundraisers) Create(_ context.Context, f *fundraisermodels.Fundraiser) error {
	m.items[f.ID] = f
	return nil
}

func (m *mockFundraisers) GetByID(_ context.Context, id string) (*fundraisermodels.Fundraiser, error) {
	f, ok := m.items[id]
	if !ok {
		return nil, fundraisermodels.ErrFundraiserNotFound
	}
	return f, nil
}

func (m *mockFundraisers) Update(_ context.Context, f *fundraisermodels.Fundraiser) error { return nil }
func (m *mockFundraisers) Delete(_ context.Context, id string) error                     { return nil }
func (m *mockFundraisers) ListByEvent(_ context.Context, eventID string) ([]*fundraisermodels.Fundraiser, error) {
	return nil, nil
}
func (m *mockFundraisers) CountByEvent(_ context.Context, eventID string) (int64, error) {
	return 0, nil
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

var (
	owner    = &usermodels.User{ID: "u1", Name: "Alex"}
	admin    = &usermodels.User{ID: "u9", Name: "Ops", IsAdmin: true}
	stranger = &usermodels.User{ID: "u2", Name: "Drifter"}
)

func newTestService() (RedeemService, *mockCollections) {
	collections := newMockCollections()
	fundraisers := &mockFundraisers{items: map[string]*fundraisermodels.Fundraiser{
		"f1": {ID: "f1", EventID: "e1", UserID: "u1", Name: "Alex"},
	}}
	return NewRedeemService(engine.New(), collections, fundraisers), collections
}

func payload() *models.CreatePayload {
	return &models.CreatePayload{
		Type:        models.RedeemTypeCounter,
		Category:    models.CategoryFitness,
		Redeemer:    "Viewer1",
		RewardName:  "Power Surge",
		TargetCount: 5,
	}
}

// ---------------------------------------------------------------------------
// Tests
// ---------------------------------------------------------------------------

func TestCreatePersistsCollection(t *testing.T) {
	svc, collections := newTestService()

	r, err := svc.Create(context.Background(), "f1", owner, payload())
	require.NoError(t, err)
	require.NotNil(t, r)

	saved := collections.data["f1"]
	require.Len(t, saved, 1)
	assert.Equal(t, r.ID, saved[0].ID)
	assert.Equal(t, 1, collections.saves)
}

func TestCreateChecksOwnership(t *testing.T) {
	svc, collections := newTestService()

	_, err := svc.Create(context.Background(), "f1", stranger, payload())
	assert.ErrorIs(t, err, fundraisermodels.ErrNotOwner)
	assert.Zero(t, collections.saves)

	_, err = svc.Create(context.Background(), "f1", nil, payload())
	assert.ErrorIs(t, err, fundraisermodels.ErrNotOwner)

	// Admins act on anyone's fundraiser.
	_, err = svc.Create(context.Background(), "f1", admin, payload())
	assert.NoError(t, err)
}

func TestCreateUnknownFundraiser(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Create(context.Background(), "nope", owner, payload())
	assert.ErrorIs(t, err, fundraisermodels.ErrFundraiserNotFound)
}

func TestActAppliesAndSaves(t *testing.T) {
	svc, collections := newTestService()
	r, err := svc.Create(context.Background(), "f1", owner, payload())
	require.NoError(t, err)

	got, err := svc.Act(context.Background(), "f1", r.ID, owner, engine.ActionIncrementCounter, engine.ActionParams{})
	require.NoError(t, err)
	assert.Equal(t, 1, got.CurrentCount)

	saved := collections.data["f1"]
	assert.Equal(t, 1, saved[0].CurrentCount)
}

func TestActSurfacesEngineErrors(t *testing.T) {
	svc, _ := newTestService()
	r, err := svc.Create(context.Background(), "f1", owner, payload())
	require.NoError(t, err)

	_, err = svc.Act(context.Background(), "f1", "missing", owner, engine.ActionIncrementCounter, engine.ActionParams{})
	assert.ErrorIs(t, err, models.ErrRedeemNotFound)

	_, err = svc.Act(context.Background(), "f1", r.ID, owner, engine.ActionPauseTimer, engine.ActionParams{})
	assert.ErrorIs(t, err, models.ErrTypeMismatch)

	_, err = svc.Act(context.Background(), "f1", r.ID, owner, "explode", engine.ActionParams{})
	assert.ErrorIs(t, err, models.ErrUnknownAction)
}

func TestDeleteAbsentRedeemIsNoop(t *testing.T) {
	svc, collections := newTestService()
	_, err := svc.Create(context.Background(), "f1", owner, payload())
	require.NoError(t, err)
	savesBefore := collections.saves

	err = svc.Delete(context.Background(), "f1", "missing", owner)
	assert.NoError(t, err)
	assert.Equal(t, savesBefore, collections.saves, "no-op delete must not rewrite the collection")
	assert.Len(t, collections.data["f1"], 1)
}

func TestListFilters(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Create(context.Background(), "f1", owner, payload())
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), "f1", owner, &models.CreatePayload{
		Type:       models.RedeemTypeInstant,
		Category:   models.CategoryEntertainment,
		Redeemer:   "Viewer2",
		RewardName: "Dad Joke",
	})
	require.NoError(t, err)

	all, err := svc.List(context.Background(), "f1", "", "", query.StatusAll)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	jokes, err := svc.List(context.Background(), "f1", "joke", "", query.StatusAll)
	require.NoError(t, err)
	require.Len(t, jokes, 1)
	assert.Equal(t, "Dad Joke", jokes[0].RewardName)
}

func TestStats(t *testing.T) {
	svc, _ := newTestService()
	_, err := svc.Create(context.Background(), "f1", owner, payload())
	require.NoError(t, err)

	stats, err := svc.Stats(context.Background(), "f1")
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Totals.Total)
	assert.Equal(t, 1, stats.ByType[models.RedeemTypeCounter].Total)
	assert.Equal(t, []string{"Viewer1"}, stats.RecentRedeemers)
	require.Len(t, stats.Leaderboard, 1)
	assert.Equal(t, "Viewer1", stats.Leaderboard[0].Redeemer)
}

func TestGlobalFeedIsChronological(t *testing.T) {
	collections := newMockCollections()
	fundraisers := &mockFundraisers{items: map[string]*fundraisermodels.Fundraiser{}}
	svc := NewRedeemService(engine.New(), collections, fundraisers)

	t0 := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	collections.data["f2"] = models.Collection{
		{ID: "b", Type: models.RedeemTypeInstant, CreatedAt: t0.Add(time.Minute)},
	}
	collections.data["f1"] = models.Collection{
		{ID: "a", Type: models.RedeemTypeInstant, CreatedAt: t0},
		{ID: "c", Type: models.RedeemTypeInstant, CreatedAt: t0.Add(2 * time.Minute)},
	}

	feed, err := svc.GlobalFeed(context.Background())
	require.NoError(t, err)
	require.Len(t, feed, 3)
	assert.Equal(t, "a", feed[0].ID)
	assert.Equal(t, "b", feed[1].ID)
	assert.Equal(t, "c", feed[2].ID)
	assert.Equal(t, "f2", feed[1].FundraiserID)
}

func TestGlobalFeedCarriesDisplayFields(t *testing.T) {
	collections := newMockCollections()
	fundraisers := &mockFundraisers{items: map[string]*fundraisermodels.Fundraiser{}}

	t0 := time.Date(2026, 3, 14, 18, 0, 0, 0, time.UTC)
	eng := engine.New()
	eng.Now = func() time.Time { return t0.Add(2 * time.Hour) }
	svc := NewRedeemService(eng, collections, fundraisers)

	collections.data["f1"] = models.Collection{
		{ID: "a", Type: models.RedeemTypeTimed, Status: models.RedeemStatusPaused, CreatedAt: t0},
	}

	feed, err := svc.GlobalFeed(context.Background())
	require.NoError(t, err)
	require.Len(t, feed, 1)
	assert.Equal(t, "Timed", feed[0].TypeLabel)
	assert.Equal(t, "i-lucide-timer", feed[0].TypeIcon)
	assert.Equal(t, "warning", feed[0].StatusTone)
	assert.Equal(t, "2h ago", feed[0].CreatedAgo)
}
