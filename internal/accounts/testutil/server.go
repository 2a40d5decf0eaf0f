package testutil

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"finitefield.org/hanko-accounts/internal/accounts/forms"
	"finitefield.org/hanko-accounts/internal/accounts/httpserver"
)

// ServerOption customises the HTTP server configuration for tests.
type ServerOption func(*httpserver.Config)

// WithSubmitter overrides the simulated request.
func WithSubmitter(submit forms.Submitter) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Submitter = submit
	}
}

// WithEnvironment sets the environment label rendered by the layout.
func WithEnvironment(env string) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Environment = env
	}
}

// WithLogger routes server logs to logger.
func WithLogger(logger *zap.Logger) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.Logger = logger
	}
}

// WithTracerProvider records request spans on provider.
func WithTracerProvider(provider trace.TracerProvider) ServerOption {
	return func(cfg *httpserver.Config) {
		cfg.TracerProvider = provider
	}
}

// NewServer constructs an httptest server running the accounts HTTP stack
// with an instant submitter.
func NewServer(t testing.TB, opts ...ServerOption) *httptest.Server {
	t.Helper()

	cfg := httpserver.Config{
		Address:     ":0",
		Environment: "Test",
		Submitter:   forms.Instant,
		Logger:      zap.NewNop(),
	}

	for _, opt := range opts {
		opt(&cfg)
	}

	srv := httpserver.New(cfg)
	ts := httptest.NewServer(srv.Handler)
	t.Cleanup(ts.Close)
	return ts
}

// NoRedirectClient returns a client that surfaces redirects instead of following them.
func NoRedirectClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}
