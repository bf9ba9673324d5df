package v1handler

import (
	"crypto/rsa"
	"net/http"
	"strings"

	"checker/internal/config"
	"checker/pkg/logger"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

// SecHandlerOptions configure bearer-token verification for the v1 endpoints.
type SecHandlerOptions struct {
	// PublicKey is the PEM-encoded RSA public key used to verify tokens.
	// Empty disables authentication.
	PublicKey string
}

// NewSecHandlerOptions constructs SecHandlerOptions from the application config.
func NewSecHandlerOptions(cfg *config.Config) *SecHandlerOptions {
	return &SecHandlerOptions{PublicKey: cfg.JWT.PublicKey}
}

// SecHandler verifies RS256 bearer tokens on protected routes.
type SecHandler struct {
	publicKey *rsa.PublicKey // nil when authentication is disabled
}

// NewSecHandler parses the configured public key. A nil or empty key yields a
// handler that lets every request through.
func NewSecHandler(opts *SecHandlerOptions) (*SecHandler, error) {
	if opts == nil || opts.PublicKey == "" {
		return &SecHandler{}, nil
	}

	key, err := jwt.ParseRSAPublicKeyFromPEM([]byte(opts.PublicKey))
	if err != nil {
		return nil, err
	}

	return &SecHandler{publicKey: key}, nil
}

// Wrap returns a middleware enforcing a valid bearer token when a public key
// is configured.
func (s *SecHandler) Wrap(next http.Handler) http.Handler {
	if s.publicKey == nil {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		raw := strings.TrimSpace(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer"))
		if raw == "" {
			unauthorized(w)

			return
		}

		_, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
			return s.publicKey, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}))
		if err != nil {
			logger.Warn(ctx, "rejected bearer token", zap.Error(err))
			unauthorized(w)

			return
		}

		next.ServeHTTP(w, r)
	})
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"status":"error","error":"unauthorized"}`))
}
