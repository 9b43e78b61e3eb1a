package disasters

import (
	"context"
	"time"

	"github.com/disasterpulse/datasync/internal/models"
)

type Repository interface {
	// Upsert inserts the disaster or fully replaces the mutable fields of an
	// existing row with the same id.
	Upsert(ctx context.Context, d *models.Disaster) error

	// GetByID returns the stored disaster or common.ErrorNotFound.
	GetByID(ctx context.Context, id int64) (*models.Disaster, error)

	// DeleteStale removes disasters that are not in activeIDs and were
	// created strictly before cutoff. Returns the number of deleted rows.
	DeleteStale(ctx context.Context, activeIDs []int64, cutoff time.Time) (int64, error)
}
