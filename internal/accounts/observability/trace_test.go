package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTracedRouter(t *testing.T, status int) (http.Handler, *tracetest.SpanRecorder, *observer.ObservedLogs) {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	core, logs := observer.New(zap.InfoLevel)

	router := chi.NewRouter()
	router.Use(TraceMiddleware(provider))
	router.Use(InjectLoggerMiddleware(zap.New(core)))
	router.Use(RequestLoggerMiddleware())
	router.Post("/login", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
	})
	return router, recorder, logs
}

func attributeValue(attrs []attribute.KeyValue, key attribute.Key) (attribute.Value, bool) {
	for _, kv := range attrs {
		if kv.Key == key {
			return kv.Value, true
		}
	}
	return attribute.Value{}, false
}

func TestTraceMiddlewareRecordsServerSpan(t *testing.T) {
	t.Parallel()

	router, spans, logs := newTracedRouter(t, http.StatusUnprocessableEntity)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/login", nil))

	ended := spans.Ended()
	require.Len(t, ended, 1)
	span := ended[0]
	require.Equal(t, "POST /login", span.Name())
	require.Equal(t, trace.SpanKindServer, span.SpanKind())
	require.Equal(t, codes.Unset, span.Status().Code)

	status, ok := attributeValue(span.Attributes(), "http.response.status_code")
	require.True(t, ok)
	require.EqualValues(t, http.StatusUnprocessableEntity, status.AsInt64())
	route, ok := attributeValue(span.Attributes(), "http.route")
	require.True(t, ok)
	require.Equal(t, "/login", route.AsString())

	completed := logs.FilterMessage("request completed").All()
	require.Len(t, completed, 1)
	require.Equal(t, span.SpanContext().TraceID().String(), completed[0].ContextMap()["trace_id"])
}

func TestTraceMiddlewareContinuesIncomingTrace(t *testing.T) {
	t.Parallel()

	router, spans, _ := newTracedRouter(t, http.StatusOK)

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.Header.Set("traceparent", "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01")
	router.ServeHTTP(httptest.NewRecorder(), req)

	ended := spans.Ended()
	require.Len(t, ended, 1)
	require.Equal(t, "4bf92f3577b34da6a3ce929d0e0e4736", ended[0].SpanContext().TraceID().String())
	require.Equal(t, "00f067aa0ba902b7", ended[0].Parent().SpanID().String())
}

func TestTraceMiddlewareMarksServerErrors(t *testing.T) {
	t.Parallel()

	router, spans, _ := newTracedRouter(t, http.StatusInternalServerError)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/login", nil))

	ended := spans.Ended()
	require.Len(t, ended, 1)
	require.Equal(t, codes.Error, ended[0].Status().Code)
}
