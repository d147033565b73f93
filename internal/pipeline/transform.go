package pipeline

import (
	"context"
	"log/slog"

	"github.com/couchcryptid/nordic-etl/internal/domain"
	"github.com/couchcryptid/nordic-etl/internal/nordic"
	"github.com/couchcryptid/nordic-etl/internal/observability"
)

// BulletinTransformer implements Transformer. Each bulletin gets its own
// assembler; geocoding enrichment is optional.
type BulletinTransformer struct {
	mode     nordic.Mode
	geocoder domain.Geocoder
	logger   *slog.Logger
	metrics  *observability.Metrics
}

// NewTransformer creates a BulletinTransformer. Pass a nil geocoder to
// disable geocoding enrichment.
func NewTransformer(mode nordic.Mode, geocoder domain.Geocoder, logger *slog.Logger, metrics *observability.Metrics) *BulletinTransformer {
	return &BulletinTransformer{
		mode:     mode,
		geocoder: geocoder,
		logger:   logger,
		metrics:  metrics,
	}
}

// Transform decodes the bulletin and builds one SeismicEvent per sealed
// event. In lenient mode an event without a valid origin time is dropped
// and counted; in strict mode it fails the bulletin.
func (t *BulletinTransformer) Transform(ctx context.Context, raw domain.RawBulletin) ([]domain.SeismicEvent, error) {
	source := raw.Source()
	logger := t.logger.With("source", source)

	events, err := domain.DecodeBulletin(raw, nordic.Options{
		Mode:         t.mode,
		Logger:       logger,
		OnDiagnostic: t.countDiagnostic,
	})
	if err != nil {
		t.metrics.DecodeDiagnostics.WithLabelValues(nordic.ErrorKind(err)).Inc()
		return nil, err
	}

	out := make([]domain.SeismicEvent, 0, len(events))
	for _, ev := range events {
		event, err := domain.BuildSeismicEvent(source, ev)
		if err != nil {
			t.metrics.DecodeDiagnostics.WithLabelValues(nordic.ErrorKind(err)).Inc()
			if t.mode == nordic.Strict {
				return nil, err
			}
			logger.Warn("skipping event", "line", ev.Line, "error", err)
			continue
		}
		event = domain.EnrichSeismicEvent(event)
		event = domain.EnrichWithGeocoding(ctx, event, t.geocoder, logger)
		out = append(out, event)
	}

	t.metrics.EventsPerBulletin.Observe(float64(len(out)))
	logger.Debug("bulletin decoded", "events", len(out))
	return out, nil
}

func (t *BulletinTransformer) countDiagnostic(d nordic.Diagnostic) {
	t.metrics.DecodeDiagnostics.WithLabelValues(d.Kind()).Inc()
}
