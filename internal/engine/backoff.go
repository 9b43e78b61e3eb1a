package engine

import (
	"context"
	"errors"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/disasterpulse/datasync/internal/logging"
	"github.com/disasterpulse/datasync/internal/reliefweb"
)

// Policy is the engine's failure stance toward the remote source: no retries
// and no retry budget, a fixed pause after an HTTP status error (crude
// rate-limit relief), nothing extra for transport errors. It is the single
// decision point for remote-fetch failures, so the stance can be swapped
// without touching the orchestrator.
type Policy struct {
	backoff retry.Backoff
}

// NewConstantPolicy builds a Policy that pauses a fixed delay after every
// status error.
func NewConstantPolicy(delay time.Duration) *Policy {
	return &Policy{backoff: retry.NewConstant(delay)}
}

// Pause blocks for the policy delay or until ctx is canceled.
func (p *Policy) Pause(ctx context.Context) error {
	d, stop := p.backoff.Next()
	if stop {
		return nil
	}

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// HandleFetchError logs a failed remote fetch and applies the pause when the
// failure was an HTTP status error. Callers treat the fetch as having
// returned no data either way.
func (p *Policy) HandleFetchError(ctx context.Context, logger logging.Logger, err error) {
	var statusErr *reliefweb.StatusError
	if errors.As(err, &statusErr) {
		logger.Error(ctx, "remote source returned error status", "status", statusErr.Status)
		_ = p.Pause(ctx)
		return
	}
	logger.Error(ctx, "remote source request failed", "error", err.Error())
}
