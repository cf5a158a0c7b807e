package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"streamraiser-backend/internal/features/event/models"
	"streamraiser-backend/internal/features/event/repository"
)

const indexKey = "events"

type eventRepository struct {
	client *redis.Client
}

func NewEventRepository(client *redis.Client) repository.EventRepository {
	return &eventRepository{client: client}
}

func eventKey(id string) string { return fmt.Sprintf("event:%s", id) }

func (r *eventRepository) Create(ctx context.Context, e *models.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, eventKey(e.ID), data, 0)
	pipe.SAdd(ctx, indexKey, e.ID)
	_, err = pipe.Exec(ctx)
	return err
}

func (r *eventRepository) GetByID(ctx context.Context, id string) (*models.Event, error) {
	data, err := r.client.Get(ctx, eventKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, models.ErrEventNotFound
		}
		return nil, err
	}

	var e models.Event
	if err := json.Unmarshal(data, &e); err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *eventRepository) Update(ctx context.Context, e *models.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, eventKey(e.ID), data, 0).Err()
}

func (r *eventRepository) Delete(ctx context.Context, id string) error {
	pipe := r.client.TxPipeline()
	pipe.Del(ctx, eventKey(id))
	pipe.SRem(ctx, indexKey, id)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *eventRepository) List(ctx context.Context) ([]*models.Event, error) {
	ids, err := r.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}

	events := make([]*models.Event, 0, len(ids))
	for _, id := range ids {
		e, err := r.GetByID(ctx, id)
		if err != nil {
			continue
		}
		events = append(events, e)
	}

	sort.Slice(events, func(i, j int) bool {
		return events[i].CreatedAt.Before(events[j].CreatedAt)
	})
	return events, nil
}
