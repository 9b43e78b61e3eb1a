// Package reports provides the PostgreSQL-backed repository for mirrored
// report records.
package reports

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

// PostgresRepository implements report storage over a dbx.DBTX
// (*sql.DB or *sql.Tx).
type PostgresRepository struct {
	db dbx.DBTX
}

// NewPostgresRepository constructs a repository bound to the given DBTX.
func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Upsert inserts a report by its remote id or replaces every mutable field of
// the existing row, including the owner. The extraction cache columns are not
// listed, so a re-sync never invalidates them.
func (r *PostgresRepository) Upsert(ctx context.Context, rep *models.Report) error {
	query := `
		INSERT INTO report (id, disaster_id, title, body, url, url_alias, status,
			date_created, date_changed, date_original,
			language, source, theme, file, primary_country, affected_countries,
			content_format_id, content_format_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
			$11::jsonb, $12::jsonb, $13::jsonb, $14::jsonb, $15::jsonb, $16::jsonb,
			$17, $18)
		ON CONFLICT (id)
		DO UPDATE SET
			disaster_id = EXCLUDED.disaster_id,
			title = EXCLUDED.title,
			body = EXCLUDED.body,
			url = EXCLUDED.url,
			url_alias = EXCLUDED.url_alias,
			status = EXCLUDED.status,
			date_created = EXCLUDED.date_created,
			date_changed = EXCLUDED.date_changed,
			date_original = EXCLUDED.date_original,
			language = EXCLUDED.language,
			source = EXCLUDED.source,
			theme = EXCLUDED.theme,
			file = EXCLUDED.file,
			primary_country = EXCLUDED.primary_country,
			affected_countries = EXCLUDED.affected_countries,
			content_format_id = EXCLUDED.content_format_id,
			content_format_name = EXCLUDED.content_format_name;
	`
	_, err := r.db.ExecContext(ctx, query,
		rep.ID, rep.DisasterID, rep.Title, rep.Body, rep.URL, rep.URLAlias, rep.Status,
		rep.DateCreated, rep.DateChanged, rep.DateOriginal,
		rep.Language, rep.Source, rep.Theme, rep.File, rep.PrimaryCountry, rep.AffectedCountries,
		rep.ContentFormatID, rep.ContentFormatName)
	if err != nil {
		return fmt.Errorf("upserting report %d: %w", rep.ID, err)
	}
	return nil
}

// GetByID loads one report by its remote id.
func (r *PostgresRepository) GetByID(ctx context.Context, id int64) (*models.Report, error) {
	query := `
		SELECT id, disaster_id, title, body, url, url_alias, status,
			date_created, date_changed, date_original,
			language, source, theme, file, primary_country, affected_countries,
			content_format_id, content_format_name
		FROM report WHERE id = $1
	`
	var rep models.Report
	var formatName sql.NullString
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&rep.ID, &rep.DisasterID, &rep.Title, &rep.Body, &rep.URL, &rep.URLAlias, &rep.Status,
		&rep.DateCreated, &rep.DateChanged, &rep.DateOriginal,
		&rep.Language, &rep.Source, &rep.Theme, &rep.File, &rep.PrimaryCountry, &rep.AffectedCountries,
		&rep.ContentFormatID, &formatName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("selecting report %d: %w", id, err)
	}
	rep.ContentFormatName = formatName.String
	return &rep, nil
}

// DeleteAbsent prunes one disaster's reports down to the just-synced id set.
func (r *PostgresRepository) DeleteAbsent(ctx context.Context, disasterID int64, syncedIDs []int64) (int64, error) {
	if syncedIDs == nil {
		syncedIDs = []int64{}
	}
	query := `DELETE FROM report WHERE disaster_id = $1 AND NOT (id = ANY($2))`
	res, err := r.db.ExecContext(ctx, query, disasterID, syncedIDs)
	if err != nil {
		return 0, fmt.Errorf("deleting absent reports for disaster %d: %w", disasterID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}

// DeleteOlderThan ages out reports past the retention cutoff. Intentionally
// unscoped: a report older than the cutoff is removed even when its disaster
// is still active.
func (r *PostgresRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `DELETE FROM report WHERE date_created < $1`
	res, err := r.db.ExecContext(ctx, query, cutoff)
	if err != nil {
		return 0, fmt.Errorf("deleting aged reports: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected error: %w", err)
	}
	return n, nil
}
