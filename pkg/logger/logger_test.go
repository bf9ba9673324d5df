package logger_test

import (
	"context"
	"testing"

	"checker/pkg/logger"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestGet_FallsBackToDefault(t *testing.T) {
	logger.Setup(logger.DevelopmentEnvironment)

	if logger.Get(context.Background()) == nil {
		t.Fatal("expected default logger, got nil")
	}
}

func TestWithLogger_RoundTrip(t *testing.T) {
	core, _ := observer.New(zap.InfoLevel)
	l := zap.New(core)

	ctx := logger.WithLogger(context.Background(), l)
	if logger.Get(ctx) != l {
		t.Fatal("expected the logger stored in context")
	}
}

func TestWithFields_AttachesFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	ctx := logger.WithLogger(context.Background(), zap.New(core))
	ctx = logger.WithFields(ctx, zap.String("domain", "example.com"))

	logger.Info(ctx, "checked")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 log entry, got %d", len(entries))
	}
	if got := entries[0].ContextMap()["domain"]; got != "example.com" {
		t.Fatalf("expected domain field, got %v", got)
	}
}
