package forms

import (
	"context"
	"sync"
	"sync/atomic"
)

// SignupFormState is the per-page state of the sign-up form.
type SignupFormState struct {
	Username        string
	Email           string
	Password        string
	ConfirmPassword string
	IsLoading       bool
	Error           string
}

// SignupForm binds SignupFormState to its submit handler.
type SignupForm struct {
	nav    Navigator
	submit Submitter

	busy  atomic.Bool
	mu    sync.Mutex
	state SignupFormState
}

// NewSignupForm returns an empty sign-up form. A nil navigator discards
// navigation and a nil submitter waits DefaultSubmitDelay.
func NewSignupForm(nav Navigator, submit Submitter) *SignupForm {
	if nav == nil {
		nav = NopNavigator{}
	}
	return &SignupForm{nav: nav, submit: submit}
}

// State returns a snapshot of the form state.
func (f *SignupForm) State() SignupFormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *SignupForm) SetUsername(v string) { f.input(func(s *SignupFormState) { s.Username = v }) }
func (f *SignupForm) SetEmail(v string)    { f.input(func(s *SignupFormState) { s.Email = v }) }
func (f *SignupForm) SetPassword(v string) { f.input(func(s *SignupFormState) { s.Password = v }) }
func (f *SignupForm) SetConfirmPassword(v string) {
	f.input(func(s *SignupFormState) { s.ConfirmPassword = v })
}

func (f *SignupForm) input(apply func(*SignupFormState)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state.IsLoading {
		return
	}
	apply(&f.state)
}

func (f *SignupForm) update(apply func(*SignupFormState)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	apply(&f.state)
}

// Submit validates locally, then waits for the simulated request and
// navigates to the login page. Validation failures return immediately
// without touching IsLoading or the submitter.
func (f *SignupForm) Submit(ctx context.Context) (Outcome, error) {
	if !f.busy.CompareAndSwap(false, true) {
		return Outcome{}, ErrSubmitInProgress
	}
	defer f.busy.Store(false)

	f.update(func(s *SignupFormState) { s.Error = "" })

	if msg := ValidateSignup(f.State()); msg != "" {
		return f.fail(msg), nil
	}

	f.update(func(s *SignupFormState) { s.IsLoading = true })
	defer f.update(func(s *SignupFormState) { s.IsLoading = false })

	if err := f.submit.run(ctx); err != nil {
		return f.fail(MsgSignupFailed), nil
	}

	f.nav.Navigate(ctx, RouteLogin)
	return Outcome{Navigated: true, Target: RouteLogin}, nil
}

func (f *SignupForm) fail(msg string) Outcome {
	f.update(func(s *SignupFormState) { s.Error = msg })
	return Outcome{Error: msg}
}
