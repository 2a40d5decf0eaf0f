package httpserver

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"finitefield.org/hanko-accounts/internal/accounts/forms"
	custommw "finitefield.org/hanko-accounts/internal/accounts/httpserver/middleware"
	"finitefield.org/hanko-accounts/internal/accounts/observability"
	"finitefield.org/hanko-accounts/internal/accounts/templates/auth"
)

// authHandlers serves the login and sign-up pages. Every request gets a fresh
// form so no state is shared between page instances.
type authHandlers struct {
	submit forms.Submitter
}

func newAuthHandlers(submit forms.Submitter) *authHandlers {
	if submit == nil {
		panic("auth: submitter is required")
	}
	return &authHandlers{submit: submit}
}

func (h *authHandlers) LoginForm(w http.ResponseWriter, r *http.Request) {
	h.renderLogin(w, r, auth.LoginPageData{}, http.StatusOK)
}

func (h *authHandlers) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	logger := attemptLogger(r, "login")

	if err := r.ParseForm(); err != nil {
		logger.Warn("login form parse failed", zap.Error(err))
		h.renderLogin(w, r, auth.LoginPageData{Error: forms.MsgLoginFailed}, http.StatusBadRequest)
		return
	}

	nav := &forms.RecordingNavigator{}
	form := forms.NewLoginForm(nav, h.submit)
	bindLogin(form, r.PostForm)

	outcome, err := form.Submit(r.Context())
	if err != nil {
		logger.Error("login submit failed", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	state := form.State()
	if target, ok := nav.Last(); ok {
		logger.Info("login accepted", zap.Bool("remember", state.Remember), zap.String("target", target))
		custommw.Redirect(w, r, target)
		return
	}

	logger.Info("login rejected", zap.String("reason", outcome.Error))
	h.renderLogin(w, r, auth.LoginPageData{
		Username:  state.Username,
		Remember:  state.Remember,
		Error:     state.Error,
		IsLoading: state.IsLoading,
	}, http.StatusUnprocessableEntity)
}

func (h *authHandlers) SignupForm(w http.ResponseWriter, r *http.Request) {
	h.renderSignup(w, r, auth.SignupPageData{}, http.StatusOK)
}

func (h *authHandlers) SignupSubmit(w http.ResponseWriter, r *http.Request) {
	logger := attemptLogger(r, "signup")

	if err := r.ParseForm(); err != nil {
		logger.Warn("signup form parse failed", zap.Error(err))
		h.renderSignup(w, r, auth.SignupPageData{Error: forms.MsgSignupFailed}, http.StatusBadRequest)
		return
	}

	nav := &forms.RecordingNavigator{}
	form := forms.NewSignupForm(nav, h.submit)
	bindSignup(form, r.PostForm)

	outcome, err := form.Submit(r.Context())
	if err != nil {
		logger.Error("signup submit failed", zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	if target, ok := nav.Last(); ok {
		logger.Info("signup accepted", zap.String("target", target))
		custommw.Redirect(w, r, target)
		return
	}

	state := form.State()
	logger.Info("signup rejected", zap.String("reason", outcome.Error))
	h.renderSignup(w, r, auth.SignupPageData{
		Username:  state.Username,
		Email:     state.Email,
		Error:     state.Error,
		IsLoading: state.IsLoading,
	}, http.StatusUnprocessableEntity)
}

func bindLogin(form *forms.LoginForm, values url.Values) {
	form.SetUsername(values.Get("username"))
	form.SetPassword(values.Get("password"))
	form.SetRemember(parseCheckbox(values.Get("remember")))
}

func bindSignup(form *forms.SignupForm, values url.Values) {
	form.SetUsername(values.Get("username"))
	form.SetEmail(values.Get("email"))
	form.SetPassword(values.Get("password"))
	form.SetConfirmPassword(values.Get("confirmPassword"))
}

func (h *authHandlers) renderLogin(w http.ResponseWriter, r *http.Request, data auth.LoginPageData, status int) {
	if isFormSwap(r, auth.LoginFormID) {
		render(w, r, auth.LoginForm(data), http.StatusOK)
		return
	}
	render(w, r, auth.LoginPage(data), status)
}

func (h *authHandlers) renderSignup(w http.ResponseWriter, r *http.Request, data auth.SignupPageData, status int) {
	if isFormSwap(r, auth.SignupFormID) {
		render(w, r, auth.SignupForm(data), http.StatusOK)
		return
	}
	render(w, r, auth.SignupPage(data), status)
}

// isFormSwap reports whether the response replaces the form in place. htmx
// does not swap error statuses by default, so swaps are answered with 200.
func isFormSwap(r *http.Request, formID string) bool {
	return r.Method == http.MethodPost && custommw.IsSwapTarget(r.Context(), formID)
}

func render(w http.ResponseWriter, r *http.Request, component templ.Component, status int) {
	templ.Handler(component, templ.WithStatus(status)).ServeHTTP(w, r)
}

// attemptLogger tags the request logger with the form name and a fresh
// attempt id. Submitted values are never logged.
func attemptLogger(r *http.Request, formName string) *zap.Logger {
	return observability.FromContext(r.Context()).With(
		zap.String("form", formName),
		zap.String("attempt_id", ulid.Make().String()),
	)
}

func parseCheckbox(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "true", "1", "on", "yes":
		return true
	default:
		return false
	}
}
