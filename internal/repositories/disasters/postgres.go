// Package disasters provides the PostgreSQL-backed repository for mirrored
// disaster records.
package disasters

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/disasterpulse/datasync/internal/common"
	"github.com/disasterpulse/datasync/internal/dbx"
	"github.com/disasterpulse/datasync/internal/models"
)

// PostgresRepository implements disaster storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Upsert inserts a disaster by its remote id or replaces every mutable field
// of the existing row. The serving-layer analysis columns are not listed, so
// they survive every sync.
func (r *PostgresRepository) Upsert(ctx context.Context, d *models.Disaster) error {
	query := `
		INSERT INTO disaster (id, name, description, status, glide, url, url_alias,
			date_created, date_changed, date_event,
			primary_country, affected_countries, primary_type, related_glide)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11::jsonb, $12::jsonb, $13::jsonb, $14::jsonb)
		ON CONFLICT (id)
		DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			status = EXCLUDED.status,
			glide = EXCLUDED.glide,
			url = EXCLUDED.url,
			url_alias = EXCLUDED.url_alias,
			date_created = EXCLUDED.date_created,
			date_changed = EXCLUDED.date_changed,
			date_event = EXCLUDED.date_event,
			primary_country = EXCLUDED.primary_country,
			affected_countries = EXCLUDED.affected_countries,
			primary_type = EXCLUDED.primary_type,
			related_glide = EXCLUDED.related_glide;
	`
	_, err := r.db.ExecContext(ctx, query,
		d.ID, d.Name, d.Description, d.Status, d.Glide, d.URL, d.URLAlias,
		d.DateCreated, d.DateChanged, d.DateEvent,
		d.PrimaryCountry, d.AffectedCountries, d.PrimaryType, d.RelatedGlide)
	if err != nil {
		return fmt.Errorf("upserting disaster %d: %w", d.ID, err)
	}
	return nil
}

// GetByID loads one disaster by its remote id.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Disaster, error) {
	query := `
		SELECT id, name, description, status, glide, url, url_alias,
			date_created, date_changed, date_event,
			primary_country, affected_countries, primary_type, related_glide
		FROM disaster WHERE id = $1
	`
	var d models.Disaster
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&d.ID, &d.Name, &d.Description, &d.Status, &d.Glide, &d.URL, &d.URLAlias,
		&d.DateCreated, &d.DateChanged, &d.DateEvent,
		&d.PrimaryCountry, &d.AffectedCountries, &d.PrimaryType, &d.RelatedGlide)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("selecting disaster %d: %w", id, err)
	}
	return &d, nil
}

// DeleteStale removes disasters outside the active set whose creation
// timestamp is strictly older than cutoff. A disaster absent from one fetch
// is kept until it also ages out.
func (r *PostgresRepository) DeleteStale(ctx context.Context, activeIDs []int64, cutoff time.Time) (int64, error) {
	if activeIDs == nil {
		activeIDs = []int64{}
	}
	query := `DELETE FROM disaster WHERE NOT (id = ANY($1)) AND date_created < $2`
	res, err := r.db.ExecContext(ctx, query, activeIDs, cutoff)
	if err != nil {
		return 0, fmt.Errorf("deleting stale disasters: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}
