// Package monitor runs availability batches over the configured domain list
// and pushes a webhook notification when anything becomes available. It backs
// both the scheduled tick and the on-demand HTTP check.
package monitor

import (
	"context"
	"time"

	"checker/internal/checker"
	"checker/internal/config"
	"checker/pkg/domain"
	"checker/pkg/logger"
	"checker/pkg/metrics"
	"checker/pkg/notify"
	"checker/pkg/serrors"

	"go.uber.org/zap"
)

// Options configure the monitor.
type Options struct {
	// Domains is the ordered, parsed domain list to watch.
	Domains []string
	// Interval is the period between scheduled batches; 0 disables Start.
	Interval time.Duration
}

// NewOptions constructs an Options value from the application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Domains:  domain.ParseList(cfg.Checker.Domains),
		Interval: cfg.Checker.Interval,
	}
}

// Monitor owns one domain list and coordinates batch evaluation with
// notification delivery. It holds no state between runs.
type Monitor struct {
	options  Options
	checker  checker.Checker
	notifier notify.Notifier
	recorder *metrics.Recorder
}

// Run performs one batch over the configured list. An empty list is a
// configuration error and short-circuits before any lookup. Notification
// failures are logged and counted but never fail the run.
func (m *Monitor) Run(ctx context.Context) (checker.Report, error) {
	if len(m.options.Domains) == 0 {
		return checker.Report{}, serrors.With(serrors.ErrConfig, "no domains configured")
	}

	report := m.checker.Check(ctx, m.options.Domains)

	if msg := report.Message(); msg != "" && m.notifier != nil {
		if err := m.notifier.Send(ctx, msg); err != nil {
			logger.Warn(ctx, "could not deliver notification", zap.Error(err))
			m.recorder.Notification(ctx, "error")
		} else {
			m.recorder.Notification(ctx, "ok")
		}
	}

	return report, nil
}

// Start runs batches on the configured interval until ctx is canceled.
// Per-tick failures are logged, never fatal.
func (m *Monitor) Start(ctx context.Context) {
	if m.options.Interval <= 0 {
		return
	}

	logger.Info(ctx, "starting availability monitor",
		zap.Duration("interval", m.options.Interval),
		zap.Int("domains", len(m.options.Domains)))

	ticker := time.NewTicker(m.options.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			report, err := m.Run(ctx)
			if err != nil {
				logger.Error(ctx, "scheduled check failed", zap.Error(err))

				continue
			}
			logger.Info(ctx, "scheduled check finished",
				zap.Int("domains", len(report.Results)),
				zap.Int("available", len(report.Available())),
				zap.Bool("hasErrors", report.HasErrors()))
		case <-ctx.Done():
			logger.Info(ctx, "stopping availability monitor")

			return
		}
	}
}

// New creates a Monitor. notifier and recorder may be nil, which disables
// notifications and metrics respectively.
func New(chk checker.Checker, notifier notify.Notifier, recorder *metrics.Recorder, options Options) *Monitor {
	return &Monitor{
		options:  options,
		checker:  chk,
		notifier: notifier,
		recorder: recorder,
	}
}
