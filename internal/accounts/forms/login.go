package forms

import (
	"context"
	"sync"
	"sync/atomic"
)

// LoginFormState is the per-page state of the login form.
type LoginFormState struct {
	Username  string
	Password  string
	Remember  bool
	IsLoading bool
	Error     string
}

// LoginForm binds LoginFormState to its submit handler.
type LoginForm struct {
	nav    Navigator
	submit Submitter

	busy  atomic.Bool
	mu    sync.Mutex
	state LoginFormState
}

// NewLoginForm returns an empty login form. A nil navigator discards
// navigation and a nil submitter waits DefaultSubmitDelay.
func NewLoginForm(nav Navigator, submit Submitter) *LoginForm {
	if nav == nil {
		nav = NopNavigator{}
	}
	return &LoginForm{nav: nav, submit: submit}
}

// State returns a snapshot of the form state.
func (f *LoginForm) State() LoginFormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *LoginForm) SetUsername(v string) { f.input(func(s *LoginFormState) { s.Username = v }) }
func (f *LoginForm) SetPassword(v string) { f.input(func(s *LoginFormState) { s.Password = v }) }
func (f *LoginForm) SetRemember(v bool)   { f.input(func(s *LoginFormState) { s.Remember = v }) }

// input applies a field edit unless the form is loading; inputs are disabled
// while a submit is pending.
func (f *LoginForm) input(apply func(*LoginFormState)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state.IsLoading {
		return
	}
	apply(&f.state)
}

func (f *LoginForm) update(apply func(*LoginFormState)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	apply(&f.state)
}

// Submit runs the login handler: wait for the simulated request, then either
// navigate home or show an error. Credentials are only checked for presence,
// and only after the request completes.
func (f *LoginForm) Submit(ctx context.Context) (Outcome, error) {
	if !f.busy.CompareAndSwap(false, true) {
		return Outcome{}, ErrSubmitInProgress
	}
	defer f.busy.Store(false)

	f.update(func(s *LoginFormState) {
		s.Error = ""
		s.IsLoading = true
	})
	defer f.update(func(s *LoginFormState) { s.IsLoading = false })

	if err := f.submit.run(ctx); err != nil {
		return f.fail(MsgLoginFailed), nil
	}

	state := f.State()
	if state.Username == "" || state.Password == "" {
		return f.fail(MsgLoginMissingCredentials), nil
	}

	f.nav.Navigate(ctx, RouteHome)
	return Outcome{Navigated: true, Target: RouteHome}, nil
}

func (f *LoginForm) fail(msg string) Outcome {
	f.update(func(s *LoginFormState) { s.Error = msg })
	return Outcome{Error: msg}
}
