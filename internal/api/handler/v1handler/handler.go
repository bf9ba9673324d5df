// Package v1handler implements the v1 HTTP handlers of the checker API.
package v1handler

import (
	"context"
	"net/http"

	"checker/internal/checker"
)

// Runner triggers one availability batch over the configured domain list.
// It is satisfied by *monitor.Monitor.
type Runner interface {
	Run(ctx context.Context) (checker.Report, error)
}

// Deps carries the collaborators the handlers need.
type Deps struct {
	Runner Runner
}

// Handler serves the v1 endpoints.
type Handler struct {
	deps Deps
}

// New creates a Handler with the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{deps: deps}
}

// Register mounts the v1 routes on mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/v1/check", h.Check)
}
