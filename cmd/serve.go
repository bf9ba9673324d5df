package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"checker/internal/api"
	"checker/internal/api/handler/v1handler"
	"checker/internal/checker"
	"checker/internal/config"
	"checker/internal/monitor"
	"checker/pkg/doh/dnsjson"
	"checker/pkg/logger"
	"checker/pkg/metrics"
	"checker/pkg/notify"
	"checker/pkg/notify/webhook"

	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/zap"

	"github.com/spf13/cobra"
)

// getRecorder wires the OpenTelemetry meter into the default Prometheus
// registerer so instruments surface on the metrics endpoint.
func getRecorder(ctx context.Context) *metrics.Recorder {
	exporter, err := otelprom.New()
	if err != nil {
		logger.Fatal(ctx, "could not create prometheus exporter", zap.Error(err))
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	recorder, err := metrics.NewRecorder(provider.Meter("checker"))
	if err != nil {
		logger.Fatal(ctx, "could not create metrics recorder", zap.Error(err))
	}

	return recorder
}

// getMonitor assembles the DoH resolver, the batch checker and the optional
// webhook notifier into a monitor ready to serve scheduled and on-demand runs.
func getMonitor(cfg *config.Config, recorder *metrics.Recorder) *monitor.Monitor {
	resolver := dnsjson.New(&http.Client{}, cfg.Checker.DoHEndpoint)
	chk := checker.New(resolver, recorder, checker.NewOptions(cfg))

	var notifier notify.Notifier
	if cfg.Notifier.WebhookURL != "" {
		notifier = webhook.New(&http.Client{Timeout: cfg.Notifier.Timeout}, cfg.Notifier.WebhookURL)
	}

	return monitor.New(chk, notifier, recorder, monitor.NewOptions(cfg))
}

func setupServer(ctx context.Context, cfg *config.Config, mon *monitor.Monitor) func(ctx context.Context) {
	server, err := api.NewServer(api.Deps{
		Deps: v1handler.Deps{Runner: mon},
	}, api.NewOptions(cfg))
	if err != nil {
		logger.Fatal(ctx, "could not create webserver", zap.Error(err))
	}

	go func() {
		logger.Info(ctx, "starting webserver...")
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start webserver", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping webserver...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop webserver", zap.Error(err))
		}
	}
}

func serveCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Starts API server and the scheduled availability monitor",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, _ := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

			mon := getMonitor(cfg, getRecorder(ctx))
			go mon.Start(ctx)

			stopWebserver := setupServer(ctx, cfg, mon)

			// wait for interrupt
			<-ctx.Done()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.GracefulShutdownTimeout)
			defer cancel()

			stopWebserver(shutdownCtx)
		},
	}

	return cmd
}
