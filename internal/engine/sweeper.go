package engine

import (
	"context"
	"database/sql"
	"time"

	"github.com/disasterpulse/datasync/internal/dbx"
	"github.com/disasterpulse/datasync/internal/logging"
	"github.com/disasterpulse/datasync/internal/repositories/repomanager"
)

// Sweeper enforces the retention window. Disasters are deleted only when
// both inactive and older than the cutoff; reports age out on creation date
// alone, so a still-active disaster keeps its row while its oldest reports
// are removed.
type Sweeper struct {
	db        *sql.DB
	repos     repomanager.Manager
	retention time.Duration
	logger    logging.Logger

	now func() time.Time
}

func NewSweeper(db *sql.DB, repos repomanager.Manager, retention time.Duration, logger logging.Logger) *Sweeper {
	return &Sweeper{
		db:        db,
		repos:     repos,
		retention: retention,
		logger:    logger,
		now:       time.Now,
	}
}

// Sweep deletes aged-out records in one transaction. A record created
// exactly at the cutoff is retained; one created any instant earlier is
// deleted. Sweep failure never affects sync work already committed.
func (s *Sweeper) Sweep(ctx context.Context, activeDisasterIDs []int64) error {
	cutoff := s.now().UTC().Add(-s.retention)

	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		nd, err := s.repos.Disasters(tx).DeleteStale(ctx, activeDisasterIDs, cutoff)
		if err != nil {
			return err
		}
		nr, err := s.repos.Reports(tx).DeleteOlderThan(ctx, cutoff)
		if err != nil {
			return err
		}
		if nd > 0 || nr > 0 {
			s.logger.Info(ctx, "retention sweep removed records", "disasters", nd, "reports", nr, "cutoff", cutoff)
		}
		return nil
	})
}
