package auth

// LoginPageData encapsulates rendering state for the login screen. Passwords
// are never echoed back.
type LoginPageData struct {
	Username  string
	Remember  bool
	Error     string
	IsLoading bool
}

// SignupPageData encapsulates rendering state for the sign-up screen.
type SignupPageData struct {
	Username  string
	Email     string
	Error     string
	IsLoading bool
}
