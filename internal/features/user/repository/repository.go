package repository

import (
	"context"
	"time"

	"streamraiser-backend/internal/features/user/models"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id string) (*models.User, error)

	// Sessions map opaque bearer tokens onto user ids.
	CreateSession(ctx context.Context, token, userID string, ttl time.Duration) error
	GetByToken(ctx context.Context, token string) (*models.User, error)
	DeleteSession(ctx context.Context, token string) error
}
