package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"streamraiser-backend/internal/features/redeem/models"
	"streamraiser-backend/internal/features/redeem/repository"
)

const keyPrefix = "fundraiser:"
const keySuffix = ":redeems"

type collectionRepository struct {
	client *redis.Client
}

func NewCollectionRepository(client *redis.Client) repository.CollectionRepository {
	return &collectionRepository{client: client}
}

func collectionKey(fundraiserID string) string {
	return fmt.Sprintf("%s%s%s", keyPrefix, fundraiserID, keySuffix)
}

func (r *collectionRepository) Load(ctx context.Context, fundraiserID string) (models.Collection, error) {
	data, err := r.client.Get(ctx, collectionKey(fundraiserID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return models.Collection{}, nil
		}
		return nil, err
	}

	var c models.Collection
	if err := json.Unmarshal(data, &c); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *collectionRepository) Save(ctx context.Context, fundraiserID string, c models.Collection) error {
	if c == nil {
		c = models.Collection{}
	}
	data, err := json.Marshal(c)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, collectionKey(fundraiserID), data, 0).Err()
}

func (r *collectionRepository) Delete(ctx context.Context, fundraiserID string) error {
	return r.client.Del(ctx, collectionKey(fundraiserID)).Err()
}

func (r *collectionRepository) LoadAll(ctx context.Context) (map[string]models.Collection, error) {
	result := make(map[string]models.Collection)
	iter := r.client.Scan(ctx, 0, keyPrefix+"*"+keySuffix, 0).Iterator()

	for iter.Next(ctx) {
		key := iter.Val()
		fundraiserID := strings.TrimSuffix(strings.TrimPrefix(key, keyPrefix), keySuffix)

		data, err := r.client.Get(ctx, key).Bytes()
		if err != nil {
			continue
		}
		var c models.Collection
		if err := json.Unmarshal(data, &c); err != nil {
			continue
		}
		result[fundraiserID] = c
	}

	return result, iter.Err()
}
