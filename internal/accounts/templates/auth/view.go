package auth

import "github.com/a-h/templ"

// Element ids of the forms; each form is its own htmx swap target.
const (
	LoginFormID  = "login-form"
	SignupFormID = "signup-form"
)

// pageFrame describes the card chrome around a form.
type pageFrame struct {
	Title        string
	Heading      string
	Lead         string
	SwitchPrompt string
	SwitchLabel  string
	SwitchHref   templ.SafeURL
	AgreeVerb    string
}

type formFrame struct {
	ID        string
	Action    templ.SafeURL
	IsLoading bool
	Error     string
	Idle      string
	Busy      string
}

type inputField struct {
	ID           string
	Label        string
	Type         string
	Placeholder  string
	Value        string
	Autocomplete string
}

const passwordPlaceholder = "••••••••"

var loginFrame = pageFrame{
	Title:        "Sign in",
	Heading:      "Welcome back",
	Lead:         "Sign in to your account to continue",
	SwitchPrompt: "Don't have an account?",
	SwitchLabel:  "Sign up",
	SwitchHref:   templ.SafeURL("/signup"),
	AgreeVerb:    "signing in",
}

var signupFrame = pageFrame{
	Title:        "Sign up",
	Heading:      "Create an account",
	Lead:         "Sign up to get started",
	SwitchPrompt: "Already have an account?",
	SwitchLabel:  "Sign in",
	SwitchHref:   templ.SafeURL("/login"),
	AgreeVerb:    "signing up",
}

func loginForm(data LoginPageData) formFrame {
	return formFrame{
		ID:        LoginFormID,
		Action:    templ.SafeURL("/login"),
		IsLoading: data.IsLoading,
		Error:     data.Error,
		Idle:      "Sign in",
		Busy:      "Signing in...",
	}
}

func signupForm(data SignupPageData) formFrame {
	return formFrame{
		ID:        SignupFormID,
		Action:    templ.SafeURL("/signup"),
		IsLoading: data.IsLoading,
		Error:     data.Error,
		Idle:      "Sign up",
		Busy:      "Creating account...",
	}
}

func usernameField(value string) inputField {
	return inputField{
		ID:           "username",
		Label:        "Username",
		Type:         "text",
		Placeholder:  "Enter your username",
		Value:        value,
		Autocomplete: "username",
	}
}

func passwordField(id, label, autocomplete string) inputField {
	return inputField{
		ID:           id,
		Label:        label,
		Type:         "password",
		Placeholder:  passwordPlaceholder,
		Autocomplete: autocomplete,
	}
}
