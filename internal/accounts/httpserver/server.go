package httpserver

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"finitefield.org/hanko-accounts/internal/accounts/forms"
	custommw "finitefield.org/hanko-accounts/internal/accounts/httpserver/middleware"
	"finitefield.org/hanko-accounts/internal/accounts/legal"
	"finitefield.org/hanko-accounts/internal/accounts/observability"
	"finitefield.org/hanko-accounts/public"
)

// Config holds runtime options for the accounts HTTP server.
type Config struct {
	Address      string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	// SubmitDelay is the simulated request latency used when Submitter is
	// nil. Zero submits instantly.
	SubmitDelay time.Duration
	// Submitter overrides the simulated request, e.g. forms.Instant in tests.
	Submitter forms.Submitter

	Logger *zap.Logger
	// TracerProvider receives a server span per request; nil uses the
	// global provider.
	TracerProvider trace.TracerProvider
	// Legal serves /terms and /privacy; nil uses the embedded documents.
	Legal *legal.Store
}

// New constructs the HTTP server with middleware stack and embedded assets.
func New(cfg Config) *http.Server {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	router := chi.NewRouter()
	router.Use(chimw.RequestID)
	router.Use(chimw.RealIP)
	router.Use(observability.TraceMiddleware(cfg.TracerProvider))
	router.Use(observability.InjectLoggerMiddleware(logger))
	router.Use(observability.RequestLoggerMiddleware())
	router.Use(observability.RecoveryMiddleware())
	router.Use(chimw.Timeout(60 * time.Second))
	router.Use(custommw.Environment(cfg.Environment))
	router.Use(custommw.HTMX())

	staticContent, err := public.StaticFS()
	if err != nil {
		log.Fatalf("embed static: %v", err)
	}
	router.Handle("/public/static/*", http.StripPrefix("/public/static/", http.FileServer(http.FS(staticContent))))

	router.Get("/healthz", healthHandler)

	submitter := cfg.Submitter
	if submitter == nil {
		submitter = forms.Delay(cfg.SubmitDelay)
	}

	legalStore := cfg.Legal
	if legalStore == nil {
		legalStore = legal.NewStore(nil)
	}

	mountRoutes(router, routeOptions{
		Auth:  newAuthHandlers(submitter),
		Pages: newPageHandlers(legalStore),
	})

	return &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  durationOr(cfg.ReadTimeout, 10*time.Second),
		WriteTimeout: durationOr(cfg.WriteTimeout, 30*time.Second),
		IdleTimeout:  durationOr(cfg.IdleTimeout, 60*time.Second),
	}
}

type routeOptions struct {
	Auth  *authHandlers
	Pages *pageHandlers
}

func mountRoutes(router chi.Router, opts routeOptions) {
	router.Get(forms.RouteHome, opts.Pages.Home)
	router.Get("/terms", opts.Pages.Legal("terms"))
	router.Get("/privacy", opts.Pages.Legal("privacy"))

	router.Group(func(r chi.Router) {
		r.Use(custommw.NoStore())

		r.Get(forms.RouteLogin, opts.Auth.LoginForm)
		r.Post(forms.RouteLogin, opts.Auth.LoginSubmit)
		r.Get(forms.RouteSignup, opts.Auth.SignupForm)
		r.Post(forms.RouteSignup, opts.Auth.SignupSubmit)
	})
}

func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func durationOr(d, fallback time.Duration) time.Duration {
	if d > 0 {
		return d
	}
	return fallback
}
