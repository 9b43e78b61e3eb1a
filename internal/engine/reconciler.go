// Package engine implements the reconciliation engine: it pulls the current
// set of active disasters from the remote feed, merges disasters and their
// reports into local storage, prunes report rows that vanished upstream,
// expires aged-out records and fans out enrichment triggers.
package engine

import (
	"context"
	"database/sql"

	"github.com/disasterpulse/datasync/internal/dbx"
	"github.com/disasterpulse/datasync/internal/logging"
	"github.com/disasterpulse/datasync/internal/models"
	"github.com/disasterpulse/datasync/internal/reliefweb"
	"github.com/disasterpulse/datasync/internal/repositories/repomanager"
)

// SourceClient is the remote feed boundary the engine pulls from.
type SourceClient interface {
	Disasters(ctx context.Context, req reliefweb.Request) ([]reliefweb.DisasterFields, error)
	Reports(ctx context.Context, req reliefweb.Request) ([]reliefweb.ReportFields, error)
}

// Reconciler merges one remote disaster and its report set into storage.
// Each disaster is one transaction: the disaster upsert, the report upserts
// and the scoped diff-delete commit or roll back together.
type Reconciler struct {
	db     *sql.DB
	repos  repomanager.Manager
	source SourceClient
	policy *Policy
	logger logging.Logger

	reportFormats []int64
	reportLimit   int
}

func NewReconciler(db *sql.DB, repos repomanager.Manager, source SourceClient, policy *Policy,
	logger logging.Logger, reportFormats []int64, reportLimit int) *Reconciler {
	return &Reconciler{
		db:            db,
		repos:         repos,
		source:        source,
		policy:        policy,
		logger:        logger,
		reportFormats: reportFormats,
		reportLimit:   reportLimit,
	}
}

// SyncDisaster reconciles one remote disaster record: upsert the disaster,
// fetch its situation-report/map set, upsert those reports and delete the
// local reports that no longer appear upstream. Returns the disaster id and
// the synced reports.
//
// A failed report fetch does not fail the disaster: the disaster row is
// still written and the local report set is left untouched, since an
// unreachable remote says nothing about which reports were removed.
func (r *Reconciler) SyncDisaster(ctx context.Context, fields reliefweb.DisasterFields) (int64, []*models.Report, error) {
	d, err := models.DisasterFromFields(fields)
	if err != nil {
		return 0, nil, err
	}

	remoteReports, fetchErr := r.fetchReports(ctx, d.ID)
	if fetchErr != nil {
		r.policy.HandleFetchError(ctx, r.logger.With("disaster", d.ID), fetchErr)
	}

	var synced []*models.Report
	err = dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := r.repos.Disasters(tx).Upsert(ctx, d); err != nil {
			return err
		}
		if fetchErr != nil {
			// nothing to reconcile this cycle
			return nil
		}
		reps, err := r.reconcileReports(ctx, tx, d.ID, remoteReports)
		if err != nil {
			return err
		}
		synced = reps
		return nil
	})
	if err != nil {
		return 0, nil, err
	}

	r.logger.Info(ctx, "disaster synchronized", "disaster", d.ID, "reports", len(synced))
	return d.ID, synced, nil
}

func (r *Reconciler) fetchReports(ctx context.Context, disasterID int64) ([]reliefweb.ReportFields, error) {
	req := reliefweb.Request{
		Filter: reliefweb.And(
			reliefweb.Filter{Field: "disaster.id", Value: disasterID},
			reliefweb.Filter{Field: "format.id", Value: r.reportFormats},
		),
		Profile: "full",
		Sort:    []string{"date:desc"},
		Limit:   r.reportLimit,
	}
	return r.source.Reports(ctx, req)
}

// reconcileReports upserts the fetched report set for one disaster and then
// prunes that disaster's local reports down to the just-synced ids. The
// owner is forced on every report regardless of the payload.
func (r *Reconciler) reconcileReports(ctx context.Context, tx dbx.DBTX, disasterID int64, fields []reliefweb.ReportFields) ([]*models.Report, error) {
	repo := r.repos.Reports(tx)

	synced := make([]*models.Report, 0, len(fields))
	syncedIDs := make([]int64, 0, len(fields))
	for _, f := range fields {
		rep, err := models.ReportFromFields(disasterID, f)
		if err != nil {
			return nil, err
		}
		if err := repo.Upsert(ctx, rep); err != nil {
			return nil, err
		}
		r.logger.Debug(ctx, "report synchronized", "report", rep.ID, "disaster", disasterID)
		synced = append(synced, rep)
		syncedIDs = append(syncedIDs, rep.ID)
	}

	if _, err := repo.DeleteAbsent(ctx, disasterID, syncedIDs); err != nil {
		return nil, err
	}
	return synced, nil
}
