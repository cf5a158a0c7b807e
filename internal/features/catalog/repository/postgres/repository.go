package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"streamraiser-backend/internal/features/catalog/models"
	"streamraiser-backend/internal/features/catalog/repository"
)

type rewardRepository struct {
	db *sql.DB
}

func NewRewardRepository(db *sql.DB) repository.RewardRepository {
	return &rewardRepository{db: db}
}

// EnsureSchema creates the catalog table when it does not exist yet.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	const ddl = `
		CREATE TABLE IF NOT EXISTS reward_templates (
			id           TEXT PRIMARY KEY,
			name         TEXT NOT NULL,
			description  TEXT NOT NULL DEFAULT '',
			icon         TEXT NOT NULL DEFAULT '',
			type         TEXT NOT NULL,
			category     TEXT NOT NULL,
			required_ms  BIGINT NOT NULL DEFAULT 0,
			quantity     INTEGER NOT NULL DEFAULT 0,
			target_count INTEGER NOT NULL DEFAULT 0,
			created_at   TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at   TIMESTAMPTZ NOT NULL DEFAULT now()
		)`
	if _, err := db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("ensure reward_templates schema: %w", err)
	}
	return nil
}

const selectColumns = `id, name, description, icon, type, category, required_ms, quantity, target_count, created_at, updated_at`

func scanTemplate(row interface{ Scan(...any) error }) (*models.RewardTemplate, error) {
	var t models.RewardTemplate
	err := row.Scan(
		&t.ID, &t.Name, &t.Description, &t.Icon, &t.Type, &t.Category,
		&t.RequiredMs, &t.Quantity, &t.TargetCount, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *rewardRepository) Upsert(ctx context.Context, t *models.RewardTemplate) error {
	const query = `
		INSERT INTO reward_templates (id, name, description, icon, type, category, required_ms, quantity, target_count, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			icon = EXCLUDED.icon,
			required_ms = EXCLUDED.required_ms,
			quantity = EXCLUDED.quantity,
			target_count = EXCLUDED.target_count,
			updated_at = EXCLUDED.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.Name, t.Description, t.Icon, t.Type, t.Category,
		t.RequiredMs, t.Quantity, t.TargetCount, t.CreatedAt, t.UpdatedAt,
	)
	return err
}

func (r *rewardRepository) GetByID(ctx context.Context, id string) (*models.RewardTemplate, error) {
	query := fmt.Sprintf(`SELECT %s FROM reward_templates WHERE id = $1`, selectColumns)
	t, err := scanTemplate(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, models.ErrRewardNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *rewardRepository) List(ctx context.Context) ([]*models.RewardTemplate, error) {
	query := fmt.Sprintf(`SELECT %s FROM reward_templates ORDER BY category, name`, selectColumns)
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func (r *rewardRepository) ListByIDs(ctx context.Context, ids []string) ([]*models.RewardTemplate, error) {
	if len(ids) == 0 {
		return []*models.RewardTemplate{}, nil
	}
	query := fmt.Sprintf(`SELECT %s FROM reward_templates WHERE id = ANY($1) ORDER BY category, name`, selectColumns)
	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collect(rows)
}

func (r *rewardRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM reward_templates WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrRewardNotFound
	}
	return nil
}

func (r *rewardRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reward_templates`).Scan(&count)
	return count, err
}

func collect(rows *sql.Rows) ([]*models.RewardTemplate, error) {
	templates := make([]*models.RewardTemplate, 0)
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		templates = append(templates, t)
	}
	return templates, rows.Err()
}
