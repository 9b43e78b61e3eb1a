package reports

import (
	"context"
	"time"

	"github.com/disasterpulse/datasync/internal/models"
)

type Repository interface {
	// Upsert inserts the report or fully replaces the mutable fields of an
	// existing row with the same id. Report ids are globally unique upstream,
	// so an id collision always means "same report".
	Upsert(ctx context.Context, r *models.Report) error

	// GetByID returns the stored report or common.ErrorNotFound.
	GetByID(ctx context.Context, id int64) (*models.Report, error)

	// DeleteAbsent removes reports of one disaster whose ids are not in
	// syncedIDs. Scoped strictly to disasterID; other disasters' reports are
	// never touched. Returns the number of deleted rows.
	DeleteAbsent(ctx context.Context, disasterID int64, syncedIDs []int64) (int64, error)

	// DeleteOlderThan removes every report created strictly before cutoff,
	// regardless of its owning disaster. Returns the number of deleted rows.
	DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}
