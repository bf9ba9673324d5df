// Package metrics defines the OpenTelemetry instruments recorded by the
// checker. The meter provider is backed by a Prometheus exporter so the
// instruments surface on the /metrics endpoint.
package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// Recorder holds the instruments recorded during availability checks.
// A nil *Recorder is valid and records nothing, so callers don't need to
// special-case tests or disabled metrics.
type Recorder struct {
	lookups        metric.Int64Counter
	lookupDuration metric.Float64Histogram
	notifications  metric.Int64Counter
}

// NewRecorder creates the checker instruments on the provided meter.
func NewRecorder(meter metric.Meter) (*Recorder, error) {
	lookups, err := meter.Int64Counter("checker_lookups_total",
		metric.WithDescription("Domain availability lookups by verdict"))
	if err != nil {
		return nil, fmt.Errorf("could not create lookups counter: %w", err)
	}

	lookupDuration, err := meter.Float64Histogram("checker_lookup_duration_seconds",
		metric.WithDescription("Duration of a single DNS-over-HTTPS lookup"),
		metric.WithExplicitBucketBoundaries(DefaultBuckets...))
	if err != nil {
		return nil, fmt.Errorf("could not create lookup duration histogram: %w", err)
	}

	notifications, err := meter.Int64Counter("checker_notifications_total",
		metric.WithDescription("Webhook notification attempts by outcome"))
	if err != nil {
		return nil, fmt.Errorf("could not create notifications counter: %w", err)
	}

	return &Recorder{
		lookups:        lookups,
		lookupDuration: lookupDuration,
		notifications:  notifications,
	}, nil
}

// Lookup records one finished lookup with its verdict and duration.
func (r *Recorder) Lookup(ctx context.Context, verdict string, seconds float64) {
	if r == nil {
		return
	}
	attrs := metric.WithAttributes(attribute.String("verdict", verdict))
	r.lookups.Add(ctx, 1, attrs)
	r.lookupDuration.Record(ctx, seconds, attrs)
}

// Notification records one webhook delivery attempt. Outcome is "ok" or "error".
func (r *Recorder) Notification(ctx context.Context, outcome string) {
	if r == nil {
		return
	}
	r.notifications.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
