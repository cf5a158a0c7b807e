package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"streamraiser-backend/internal/features/fundraiser/models"
	"streamraiser-backend/internal/features/fundraiser/repository"
)

type fundraiserRepository struct {
	client *redis.Client
}

func NewFundraiserRepository(client *redis.Client) repository.FundraiserRepository {
	return &fundraiserRepository{client: client}
}

func fundraiserKey(id string) string    { return fmt.Sprintf("fundraiser:%s", id) }
func eventIndexKey(eventID string) string { return fmt.Sprintf("event:%s:fundraisers", eventID) }

func (r *fundraiserRepository) Create(ctx context.Context, f *models.Fundraiser) error {
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, fundraiserKey(f.ID), data, 0)
	pipe.SAdd(ctx, eventIndexKey(f.EventID), f.ID)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *fundraiserRepository) GetByID(ctx context.Context, id string) (*models.Fundraiser, error) {
	data, err := r.client.Get(ctx, fundraiserKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, models.ErrFundraiserNotFound
		}
		return nil, err
	}

	var f models.Fundraiser
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func (r *fundraiserRepository) Update(ctx context.Context, f *models.Fundraiser) error {
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, fundraiserKey(f.ID), data, 0).Err()
}

func (r *fundraiserRepository) Delete(ctx context.Context, id string) error {
	f, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Del(ctx, fundraiserKey(id))
	pipe.SRem(ctx, eventIndexKey(f.EventID), id)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *fundraiserRepository) ListByEvent(ctx context.Context, eventID string) ([]*models.Fundraiser, error) {
	ids, err := r.client.SMembers(ctx, eventIndexKey(eventID)).Result()
	if err != nil {
		return nil, err
	}

	fundraisers := make([]*models.Fundraiser, 0, len(ids))
	for _, id := range ids {
		f, err := r.GetByID(ctx, id)
		if err != nil {
			// Index entries may outlive their record briefly; skip strays.
			continue
		}
		fundraisers = append(fundraisers, f)
	}

	sort.Slice(fundraisers, func(i, j int) bool {
		return fundraisers[i].CreatedAt.Before(fundraisers[j].CreatedAt)
	})
	return fundraisers, nil
}

func (r *fundraiserRepository) CountByEvent(ctx context.Context, eventID string) (int64, error) {
	return r.client.SCard(ctx, eventIndexKey(eventID)).Result()
}
