package httpserver_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"finitefield.org/hanko-accounts/internal/accounts/forms"
	"finitefield.org/hanko-accounts/internal/accounts/testutil"
)

func postForm(t *testing.T, target string, values url.Values, htmx bool) *http.Response {
	t.Helper()

	req, err := http.NewRequest(http.MethodPost, target, strings.NewReader(values.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if htmx {
		req.Header.Set("HX-Request", "true")
	}

	resp, err := testutil.NoRedirectClient().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func readDoc(t *testing.T, resp *http.Response) *goquery.Document {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return testutil.ParseHTML(t, body)
}

func TestLoginPageRenders(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)

	resp, err := http.Get(ts.URL + "/login")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, "no-store, max-age=0", resp.Header.Get("Cache-Control"))
	require.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	doc := readDoc(t, resp)
	require.Equal(t, "Sign in | Hanko Accounts", doc.Find("title").Text())
	require.Equal(t, 1, doc.Find("form#login-form").Length())
	require.Equal(t, "Test", strings.TrimSpace(doc.Find(".env-badge").Text()))
}

func TestLoginWithMissingFieldsShowsError(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)

	for _, values := range []url.Values{
		{},
		{"username": {"alice"}},
		{"password": {"secret"}},
	} {
		resp := postForm(t, ts.URL+"/login", values, false)
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
		require.Empty(t, resp.Header.Get("Location"))

		doc := readDoc(t, resp)
		require.Equal(t, forms.MsgLoginMissingCredentials, doc.Find(`[role="alert"]`).Text())
		require.Equal(t, values.Get("username"), doc.Find("input#username").AttrOr("value", ""))
		require.Equal(t, "Welcome back", doc.Find("h1").Text(), "plain posts re-render the whole page")
	}
}

func TestLoginSuccessRedirectsHome(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)

	resp := postForm(t, ts.URL+"/login", url.Values{
		"username": {"alice"},
		"password": {"secret"},
		"remember": {"on"},
	}, false)

	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))
}

func TestLoginHTMXSwapsFragment(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)

	resp := postForm(t, ts.URL+"/login", url.Values{"username": {"alice"}}, true)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	doc := readDoc(t, resp)
	require.Zero(t, doc.Find("title").Length())
	require.Equal(t, 1, doc.Find("form#login-form").Length())
	require.Equal(t, forms.MsgLoginMissingCredentials, doc.Find(`[role="alert"]`).Text())

	resp = postForm(t, ts.URL+"/login", url.Values{"username": {"alice"}, "password": {"secret"}}, true)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("HX-Redirect"))
}

func TestLoginHTMXOtherTargetGetsFullPage(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/login", strings.NewReader(url.Values{"username": {"alice"}}.Encode()))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")
	req.Header.Set("HX-Target", "main")

	resp, err := testutil.NoRedirectClient().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	doc := readDoc(t, resp)
	require.Equal(t, "Sign in | Hanko Accounts", doc.Find("title").Text())
	require.Equal(t, forms.MsgLoginMissingCredentials, doc.Find(`[role="alert"]`).Text())
}

func TestLoginSubmitterFailureShowsGenericMessage(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t, testutil.WithSubmitter(forms.Failing(errors.New("offline"))))

	resp := postForm(t, ts.URL+"/login", url.Values{"username": {"alice"}, "password": {"secret"}}, false)
	require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
	require.Equal(t, forms.MsgLoginFailed, readDoc(t, resp).Find(`[role="alert"]`).Text())
}

func TestSignupValidationMessages(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	ts := testutil.NewServer(t, testutil.WithSubmitter(func(context.Context) error {
		calls.Add(1)
		return nil
	}))

	cases := []struct {
		values url.Values
		want   string
	}{
		{
			values: url.Values{"username": {"u"}, "password": {"abcdef"}, "confirmPassword": {"abcdef"}},
			want:   forms.MsgSignupMissingFields,
		},
		{
			values: url.Values{"username": {"u"}, "email": {"a@b.com"}, "password": {"abcdef"}, "confirmPassword": {"abcxyz"}},
			want:   forms.MsgSignupPasswordMismatch,
		},
		{
			values: url.Values{"username": {"u"}, "email": {"a@b.com"}, "password": {"abc"}, "confirmPassword": {"abc"}},
			want:   forms.MsgSignupPasswordTooShort,
		},
	}

	for _, tc := range cases {
		resp := postForm(t, ts.URL+"/signup", tc.values, false)
		require.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

		doc := readDoc(t, resp)
		require.Equal(t, tc.want, doc.Find(`[role="alert"]`).Text())
		require.Equal(t, tc.values.Get("email"), doc.Find("input#email").AttrOr("value", ""))
		_, echoed := doc.Find("input#password").Attr("value")
		require.False(t, echoed)
	}
	require.Zero(t, calls.Load(), "validation failures must not run the simulated request")
}

func TestSignupSuccessRedirectsToLogin(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)
	values := url.Values{
		"username":        {"u"},
		"email":           {"a@b.com"},
		"password":        {"abcdef"},
		"confirmPassword": {"abcdef"},
	}

	resp := postForm(t, ts.URL+"/signup", values, false)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/login", resp.Header.Get("Location"))

	resp = postForm(t, ts.URL+"/signup", values, true)
	require.Equal(t, http.StatusNoContent, resp.StatusCode)
	require.Equal(t, "/login", resp.Header.Get("HX-Redirect"))
}

func TestSubmitAttemptsAreLoggedWithoutCredentials(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zap.InfoLevel)
	ts := testutil.NewServer(t, testutil.WithLogger(zap.New(core)))

	postForm(t, ts.URL+"/login", url.Values{"username": {"alice"}, "password": {"hunter22"}}, false)

	accepted := logs.FilterMessage("login accepted").All()
	require.Len(t, accepted, 1)
	fields := accepted[0].ContextMap()
	require.Equal(t, "login", fields["form"])
	require.NotEmpty(t, fields["attempt_id"])
	for _, entry := range logs.All() {
		for _, value := range entry.ContextMap() {
			require.NotEqual(t, "hunter22", value)
		}
	}
}

func TestSubmitRequestsAreTraced(t *testing.T) {
	t.Parallel()

	spans := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(spans))
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	core, logs := observer.New(zap.InfoLevel)
	ts := testutil.NewServer(t, testutil.WithTracerProvider(provider), testutil.WithLogger(zap.New(core)))

	resp := postForm(t, ts.URL+"/signup", url.Values{
		"username":        {"u"},
		"email":           {"a@b.com"},
		"password":        {"abcdef"},
		"confirmPassword": {"abcdef"},
	}, false)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)

	ended := spans.Ended()
	require.Len(t, ended, 1)
	require.Equal(t, "POST /signup", ended[0].Name())

	accepted := logs.FilterMessage("signup accepted").All()
	require.Len(t, accepted, 1)
	require.Equal(t, ended[0].SpanContext().TraceID().String(), accepted[0].ContextMap()["trace_id"])
}

func TestCrossLinksAndLegalPages(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t)

	resp, err := http.Get(ts.URL + "/signup")
	require.NoError(t, err)
	defer resp.Body.Close()
	doc := readDoc(t, resp)
	require.Equal(t, "/login", doc.Find("a.switch-link").AttrOr("href", ""))

	for path, title := range map[string]string{"/terms": "Terms of Service", "/privacy": "Privacy Policy"} {
		resp, err := http.Get(ts.URL + path)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		doc := readDoc(t, resp)
		resp.Body.Close()
		require.Equal(t, title, doc.Find("h1").Text())
		require.Greater(t, doc.Find(".prose h2").Length(), 0)
	}
}

func TestHomeHealthAndStatic(t *testing.T) {
	t.Parallel()

	ts := testutil.NewServer(t, testutil.WithEnvironment("Production"))

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	doc := readDoc(t, resp)
	require.Zero(t, doc.Find(".env-badge").Length(), "production hides the environment badge")
	require.Equal(t, 1, doc.Find(`a[href="/login"]`).Length())

	health, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer health.Body.Close()
	body, err := io.ReadAll(health.Body)
	require.NoError(t, err)
	require.Equal(t, "ok", string(body))

	css, err := http.Get(ts.URL + "/public/static/app.css")
	require.NoError(t, err)
	defer css.Body.Close()
	require.Equal(t, http.StatusOK, css.StatusCode)
}
