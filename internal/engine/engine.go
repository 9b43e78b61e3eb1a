package engine

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/disasterpulse/datasync/internal/logging"
	"github.com/disasterpulse/datasync/internal/models"
	"github.com/disasterpulse/datasync/internal/reliefweb"
)

// activeStatuses are the remote statuses treated as "active" at fetch time.
var activeStatuses = []string{"alert", "ongoing"}

// Mirror copies a synced report's attachments into object storage.
type Mirror interface {
	MirrorReport(ctx context.Context, rep *models.Report) int
}

// NopMirror disables attachment mirroring.
type NopMirror struct{}

func (NopMirror) MirrorReport(ctx context.Context, rep *models.Report) int { return 0 }

// Engine drives the reconciliation loop: fetch active disasters, reconcile
// each one independently, sweep the retention window, dispatch enrichment,
// mirror attachments, sleep, repeat. No failure inside a cycle is fatal; the
// only way the engine stops is context cancellation.
type Engine struct {
	source     SourceClient
	reconciler *Reconciler
	sweeper    *Sweeper
	dispatcher Dispatcher
	mirror     Mirror
	policy     *Policy
	logger     logging.Logger

	disasterLimit int
	interval      time.Duration
}

func NewEngine(source SourceClient, reconciler *Reconciler, sweeper *Sweeper,
	dispatcher Dispatcher, mirror Mirror, policy *Policy, logger logging.Logger,
	disasterLimit int, interval time.Duration) *Engine {
	return &Engine{
		source:        source,
		reconciler:    reconciler,
		sweeper:       sweeper,
		dispatcher:    dispatcher,
		mirror:        mirror,
		policy:        policy,
		logger:        logger,
		disasterLimit: disasterLimit,
		interval:      interval,
	}
}

// Run executes cycles until ctx is canceled. A cycle error is logged and the
// loop proceeds to the next scheduled tick.
func (e *Engine) Run(ctx context.Context) error {
	for {
		if err := e.RunOnce(ctx); err != nil {
			e.logger.Error(ctx, "sync cycle failed", "error", err.Error())
		} else {
			e.logger.Info(ctx, "sync cycle completed")
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(e.interval):
		}
	}
}

// RunOnce executes one full synchronization pass.
func (e *Engine) RunOnce(ctx context.Context) error {
	log := e.logger.With("cycle", uuid.NewString())
	started := time.Now()

	req := reliefweb.Request{
		Filter:  &reliefweb.Filter{Field: "status", Value: activeStatuses},
		Profile: "full",
		Sort:    []string{"date:desc"},
		Limit:   e.disasterLimit,
	}
	remoteDisasters, err := e.source.Disasters(ctx, req)
	if err != nil {
		e.policy.HandleFetchError(ctx, log, err)
		return nil // nothing to sync this cycle
	}

	// Disasters are independent: one bad record is logged and excluded from
	// the active set, the pass continues.
	activeIDs := make([]int64, 0, len(remoteDisasters))
	var syncedReports []*models.Report
	for _, fields := range remoteDisasters {
		id, reps, err := e.reconciler.SyncDisaster(ctx, fields)
		if err != nil {
			log.Error(ctx, "disaster sync failed", "disaster", fields.ID, "error", err.Error())
			continue
		}
		activeIDs = append(activeIDs, id)
		syncedReports = append(syncedReports, reps...)
	}

	if err := e.sweeper.Sweep(ctx, activeIDs); err != nil {
		log.Error(ctx, "retention sweep failed", "error", err.Error())
	}

	for _, id := range activeIDs {
		e.dispatcher.Dispatch(ctx, id)
	}

	mirrored := 0
	for _, rep := range syncedReports {
		mirrored += e.mirror.MirrorReport(ctx, rep)
	}

	log.Info(ctx, "cycle finished",
		"fetched", len(remoteDisasters),
		"active", len(activeIDs),
		"reports", len(syncedReports),
		"mirrored", mirrored,
		"elapsed", time.Since(started).String())
	return nil
}
