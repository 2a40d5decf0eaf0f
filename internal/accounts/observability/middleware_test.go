package observability

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLoggerRecordsStatus(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	logger := zap.New(core)

	router := chi.NewRouter()
	router.Use(InjectLoggerMiddleware(logger))
	router.Use(RequestLoggerMiddleware())
	router.Get("/login", func(w http.ResponseWriter, r *http.Request) {
		FromContext(r.Context()).Info("inside handler")
		w.WriteHeader(http.StatusUnprocessableEntity)
	})

	req := httptest.NewRequest(http.MethodGet, "/login", nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	require.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	entries := logs.All()
	require.Len(t, entries, 2)
	require.Equal(t, "inside handler", entries[0].Message)
	require.Equal(t, "/login", entries[0].ContextMap()["path"])

	completed := entries[1]
	require.Equal(t, "request completed", completed.Message)
	require.Equal(t, zap.WarnLevel, completed.Level)
	require.EqualValues(t, http.StatusUnprocessableEntity, completed.ContextMap()["status"])
	require.Equal(t, "/login", completed.ContextMap()["route"])
}

func TestRecoveryMiddleware(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.ErrorLevel)
	handler := InjectLoggerMiddleware(zap.New(core))(RecoveryMiddleware()(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestFromContextDefaultsToNoop(t *testing.T) {
	t.Parallel()

	require.NotNil(t, FromContext(httptest.NewRequest(http.MethodGet, "/", nil).Context()))
}

func TestNewLoggerFallsBackOnInvalidLevel(t *testing.T) {
	t.Parallel()

	logger, err := NewLogger("loud")
	require.NoError(t, err)
	require.True(t, logger.Core().Enabled(zap.InfoLevel))
	require.False(t, logger.Core().Enabled(zap.DebugLevel))
}
