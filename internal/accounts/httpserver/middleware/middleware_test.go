package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHTMXMiddleware(t *testing.T) {
	var got HTMXInfo
	handler := HTMX()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = HTMXInfoFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodPost, "/login", nil)
	req.Header.Set("HX-Request", "true")
	req.Header.Set("HX-Target", "login-form")
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if !got.IsHTMX {
		t.Fatalf("expected htmx request to be detected")
	}
	if got.Target != "login-form" {
		t.Fatalf("unexpected target: %s", got.Target)
	}
	if rr.Header().Get("Vary") != "HX-Request" {
		t.Fatalf("expected Vary: HX-Request, got %q", rr.Header().Get("Vary"))
	}
}

func TestIsFragmentRequest(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
		want    bool
	}{
		{name: "plain", want: false},
		{name: "htmx", headers: map[string]string{"HX-Request": "true"}, want: true},
		{name: "boosted", headers: map[string]string{"HX-Request": "true", "HX-Boosted": "true"}, want: false},
		{name: "history restore", headers: map[string]string{"HX-Request": "true", "HX-History-Restore-Request": "true"}, want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got bool
			handler := HTMX()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = IsFragmentRequest(r.Context())
			}))
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

func TestRedirect(t *testing.T) {
	handler := HTMX()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		Redirect(w, r, "/login")
	}))

	t.Run("plain request gets 303", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/signup", nil))
		if rr.Code != http.StatusSeeOther {
			t.Fatalf("expected 303, got %d", rr.Code)
		}
		if location := rr.Header().Get("Location"); location != "/login" {
			t.Fatalf("expected redirect to /login, got %s", location)
		}
	})

	t.Run("htmx request gets HX-Redirect", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/signup", nil)
		req.Header.Set("HX-Request", "true")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		if rr.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rr.Code)
		}
		if rr.Header().Get("HX-Redirect") != "/login" {
			t.Fatalf("expected HX-Redirect header to /login")
		}
	})
}

func TestNoStoreMiddleware(t *testing.T) {
	handler := NoStore()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)

	if got := rr.Header().Get("Cache-Control"); got != "no-store, max-age=0" {
		t.Fatalf("unexpected Cache-Control: %s", got)
	}
	if got := rr.Header().Get("Pragma"); got != "no-cache" {
		t.Fatalf("unexpected Pragma: %s", got)
	}
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}
}

func TestEnvironmentMiddleware(t *testing.T) {
	var got string
	handler := Environment("  ")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = EnvironmentFromContext(r.Context())
	}))
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	if got != "Development" {
		t.Fatalf("expected Development default, got %s", got)
	}

	if !IsProduction(" production ") {
		t.Fatalf("expected production label to match case-insensitively")
	}
	if IsProduction("Staging") {
		t.Fatalf("staging is not production")
	}
}

func TestIsSwapTarget(t *testing.T) {
	cases := []struct {
		name    string
		headers map[string]string
		want    bool
	}{
		{name: "plain", want: false},
		{name: "htmx without target", headers: map[string]string{"HX-Request": "true"}, want: true},
		{name: "matching target", headers: map[string]string{"HX-Request": "true", "HX-Target": "login-form"}, want: true},
		{name: "selector target", headers: map[string]string{"HX-Request": "true", "HX-Target": "#login-form"}, want: true},
		{name: "other target", headers: map[string]string{"HX-Request": "true", "HX-Target": "main"}, want: false},
		{name: "boosted", headers: map[string]string{"HX-Request": "true", "HX-Boosted": "true", "HX-Target": "login-form"}, want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got bool
			handler := HTMX()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = IsSwapTarget(r.Context(), "login-form")
			}))
			req := httptest.NewRequest(http.MethodPost, "/login", nil)
			for k, v := range tc.headers {
				req.Header.Set(k, v)
			}
			handler.ServeHTTP(httptest.NewRecorder(), req)
			if got != tc.want {
				t.Fatalf("expected %v, got %v", tc.want, got)
			}
		})
	}
}
