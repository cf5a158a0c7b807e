package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"streamraiser-backend/internal/features/catalog/models"
	redeemmodels "streamraiser-backend/internal/features/redeem/models"
)

type mockRewards struct {
	items map[string]*models.RewardTemplate
}

func newMockRewards() *mockRewards {
	return &mockRewards{items: make(map[string]*models.RewardTemplate)}
}

func (m *mockRewards) Upsert(_ context.Context, t *models.RewardTemplate) error {
	copied := *t
	m.items[t.ID] = &copied
	return nil
}

func (m *mockRewards) GetByID(_ context.Context, id string) (*models.RewardTemplate, error) {
	t, ok := m.items[id]
	if !ok {
		return nil, models.ErrRewardNotFound
	}
	return t, nil
}

func (m *mockRewards) List(_ context.Context) ([]*models.RewardTemplate, error) {
	out := make([]*models.RewardTemplate, 0, len(m.items))
	for _, t := range m.items {
		out = append(out, t)
	}
	return out, nil
}

func (m *mockRewards) ListByIDs(_ context.Context, ids []string) ([]*models.RewardTemplate, error) {
	out := make([]*models.RewardTemplate, 0)
	for _, id := range ids {
		if t, ok := m.items[id]; ok {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockRewards) Delete(_ context.Context, id string) error {
	if _, ok := m.items[id]; !ok {
		return models.ErrRewardNotFound
	}
	delete(m.items, id)
	return nil
}

func (m *mockRewards) Count(_ context.Context) (int64, error) {
	return int64(len(m.items)), nil
}

func TestCreateValidatesEnums(t *testing.T) {
	svc := NewCatalogService(newMockRewards())

	_, err := svc.Create(context.Background(), &models.RewardTemplateCreate{
		ID: "x", Name: "X", Type: "bogus", Category: redeemmodels.CategoryFitness,
	})
	assert.ErrorIs(t, err, redeemmodels.ErrInvalidPayload)

	_, err = svc.Create(context.Background(), &models.RewardTemplateCreate{
		ID: "x", Name: "X", Type: redeemmodels.RedeemTypeTimed, Category: "bogus",
	})
	assert.ErrorIs(t, err, redeemmodels.ErrInvalidPayload)
}

func TestCreateDefaultsIconFromType(t *testing.T) {
	svc := NewCatalogService(newMockRewards())

	created, err := svc.Create(context.Background(), &models.RewardTemplateCreate{
		ID: "wall-sit", Name: "Wall Sit", Type: redeemmodels.RedeemTypeTimed,
		Category: redeemmodels.CategoryFitness, RequiredMs: 60000,
	})
	require.NoError(t, err)
	assert.Equal(t, redeemmodels.RedeemTypeTimed.Icon(), created.Icon)
}

func TestSeedPresetsOnce(t *testing.T) {
	repo := newMockRewards()
	svc := NewCatalogService(repo)

	n, err := svc.SeedPresets(context.Background())
	require.NoError(t, err)
	assert.Equal(t, len(models.Presets), n)
	assert.Len(t, repo.items, len(models.Presets))

	// Second run leaves live edits alone.
	n, err = svc.SeedPresets(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSeedPresetsCoverAllTypes(t *testing.T) {
	repo := newMockRewards()
	svc := NewCatalogService(repo)

	_, err := svc.SeedPresets(context.Background())
	require.NoError(t, err)

	seen := make(map[redeemmodels.RedeemType]bool)
	for _, tmpl := range repo.items {
		seen[tmpl.Type] = true
	}
	for _, typ := range redeemmodels.RedeemTypes {
		assert.True(t, seen[typ], "no preset for type %s", typ)
	}
}

func TestUpdatePatchesFields(t *testing.T) {
	repo := newMockRewards()
	svc := NewCatalogService(repo)

	_, err := svc.Create(context.Background(), &models.RewardTemplateCreate{
		ID: "wall-sit", Name: "Wall Sit", Type: redeemmodels.RedeemTypeTimed,
		Category: redeemmodels.CategoryFitness, RequiredMs: 60000,
	})
	require.NoError(t, err)

	ms := int64(90000)
	updated, err := svc.Update(context.Background(), "wall-sit", &models.RewardTemplateUpdate{RequiredMs: &ms})
	require.NoError(t, err)
	assert.Equal(t, int64(90000), updated.RequiredMs)
	assert.Equal(t, "Wall Sit", updated.Name)
}

func TestDeleteAbsent(t *testing.T) {
	svc := NewCatalogService(newMockRewards())
	assert.ErrorIs(t, svc.Delete(context.Background(), "nope"), models.ErrRewardNotFound)
}
