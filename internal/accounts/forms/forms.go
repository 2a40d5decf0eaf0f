// Package forms holds the state and submit handlers behind the login and
// sign-up pages. Nothing here knows about HTTP: navigation and the simulated
// request are injected so the same logic can be driven by handlers or tests.
package forms

import (
	"errors"
	"time"
)

// Routes the forms navigate between.
const (
	RouteHome   = "/"
	RouteLogin  = "/login"
	RouteSignup = "/signup"
)

// Display strings. Each form shows at most one of these at a time.
const (
	MsgLoginMissingCredentials = "Please enter username and password"
	MsgLoginFailed             = "Login failed, please try again"

	MsgSignupMissingFields    = "Please fill in all fields"
	MsgSignupPasswordMismatch = "Passwords do not match"
	MsgSignupPasswordTooShort = "Password must be at least 6 characters"
	MsgSignupFailed           = "Signup failed, please try again"
)

const (
	// MinPasswordLength is counted in UTF-16 code units, like a browser's
	// String.length.
	MinPasswordLength = 6

	DefaultSubmitDelay = time.Second
)

// ErrSubmitInProgress is returned when Submit is called on a form whose
// previous submit has not finished yet.
var ErrSubmitInProgress = errors.New("forms: submit already in progress")

// Outcome summarises a single submit attempt.
type Outcome struct {
	Navigated bool
	Target    string
	Error     string
}
