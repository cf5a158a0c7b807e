package repository

import (
	"context"

	"streamraiser-backend/internal/features/redeem/models"
)

// CollectionRepository persists one ordered redeem collection per fundraiser.
// The engine mutates a loaded collection in memory; Save flushes the whole
// collection back. Callers must serialize Load/Save per fundraiser.
type CollectionRepository interface {
	// Load returns the collection, empty (not nil error) when none exists yet.
	Load(ctx context.Context, fundraiserID string) (models.Collection, error)
	Save(ctx context.Context, fundraiserID string, c models.Collection) error
	// Delete drops the whole collection, for fundraiser cascade deletes.
	Delete(ctx context.Context, fundraiserID string) error
	// LoadAll returns every stored collection keyed by fundraiser id.
	LoadAll(ctx context.Context) (map[string]models.Collection, error)
}
