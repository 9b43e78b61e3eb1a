package engine

import (
	"context"

	"github.com/disasterpulse/datasync/internal/logging"
)

// Dispatcher triggers downstream enrichment for one synced disaster.
type Dispatcher interface {
	Dispatch(ctx context.Context, disasterID int64)
}

// AnalysisClient is the serving-layer boundary used by the enrichment
// dispatcher.
type AnalysisClient interface {
	UpdateAnalysis(ctx context.Context, disasterID int64, analysisType, language string) error
}

// EnrichmentDispatcher asks the serving layer to compute every configured
// analysis kind and language for a disaster. Each kind/language pair is
// awaited and fails independently: a failure is logged as a warning and the
// dispatcher moves on.
type EnrichmentDispatcher struct {
	client    AnalysisClient
	kinds     []string
	languages []string
	logger    logging.Logger
}

func NewEnrichmentDispatcher(client AnalysisClient, kinds, languages []string, logger logging.Logger) *EnrichmentDispatcher {
	if len(languages) == 0 {
		languages = []string{""}
	}
	return &EnrichmentDispatcher{client: client, kinds: kinds, languages: languages, logger: logger}
}

func (d *EnrichmentDispatcher) Dispatch(ctx context.Context, disasterID int64) {
	for _, kind := range d.kinds {
		for _, lang := range d.languages {
			if err := d.client.UpdateAnalysis(ctx, disasterID, kind, lang); err != nil {
				d.logger.Warn(ctx, "analysis update failed",
					"disaster", disasterID, "kind", kind, "language", lang, "error", err.Error())
				continue
			}
			d.logger.Info(ctx, "analysis updated", "disaster", disasterID, "kind", kind, "language", lang)
		}
	}
}

// NopDispatcher is the self-contained mode: reconciliation without any
// enrichment fan-out.
type NopDispatcher struct{}

func (NopDispatcher) Dispatch(ctx context.Context, disasterID int64) {}
