package auth

import (
	"bytes"
	"context"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/a-h/templ"
	"github.com/stretchr/testify/require"
)

func render(t *testing.T, c templ.Component) *goquery.Document {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, c.Render(context.Background(), &buf))
	doc, err := goquery.NewDocumentFromReader(&buf)
	require.NoError(t, err)
	return doc
}

func TestLoginPageStructure(t *testing.T) {
	t.Parallel()

	doc := render(t, LoginPage(LoginPageData{}))

	require.Equal(t, "Sign in | Hanko Accounts", doc.Find("title").Text())
	require.Equal(t, "Welcome back", doc.Find("h1").Text())

	form := doc.Find("form#" + LoginFormID)
	require.Equal(t, 1, form.Length())
	require.Equal(t, "/login", form.AttrOr("action", ""))
	require.Equal(t, "post", form.AttrOr("method", ""))

	for _, id := range []string{"username", "password"} {
		input := form.Find("input#" + id)
		require.Equal(t, 1, input.Length(), id)
		_, required := input.Attr("required")
		require.True(t, required, id)
		require.Equal(t, 1, form.Find(`label[for="`+id+`"]`).Length(), id)
	}

	require.Equal(t, 1, form.Find(`input[type="checkbox"][name="remember"]`).Length())
	require.Zero(t, doc.Find(`[role="alert"]`).Length())
	require.Equal(t, "/signup", doc.Find("a.switch-link").AttrOr("href", ""))
	require.Equal(t, 1, doc.Find(`a[href="/terms"]`).Length())
	require.Equal(t, 1, doc.Find(`a[href="/privacy"]`).Length())
	require.Equal(t, "Sign in", form.Find(".submit-idle").Text())
	require.Equal(t, "Signing in...", form.Find(".submit-busy").Text())
}

func TestLoginFormErrorAndEcho(t *testing.T) {
	t.Parallel()

	doc := render(t, LoginForm(LoginPageData{
		Username: `<b>"alice"</b>`,
		Remember: true,
		Error:    "Please enter username and password",
	}))

	require.Zero(t, doc.Find("title").Length(), "fragment must not include layout")
	require.Equal(t, "Please enter username and password", doc.Find(`[role="alert"]`).Text())
	require.Equal(t, `<b>"alice"</b>`, doc.Find("input#username").AttrOr("value", ""))
	_, hasValue := doc.Find("input#password").Attr("value")
	require.False(t, hasValue, "password must not be echoed")
	_, checked := doc.Find(`input[name="remember"]`).Attr("checked")
	require.True(t, checked)
}

func TestLoginFormLoadingDisablesControls(t *testing.T) {
	t.Parallel()

	doc := render(t, LoginForm(LoginPageData{IsLoading: true}))

	_, disabled := doc.Find("fieldset").Attr("disabled")
	require.True(t, disabled)
	_, disabled = doc.Find("button[type=submit]").Attr("disabled")
	require.True(t, disabled)
	require.Equal(t, "Signing in...", doc.Find(".submit-busy").Text())
	require.Zero(t, doc.Find(".submit-idle").Length())
}

func TestSignupPageStructure(t *testing.T) {
	t.Parallel()

	doc := render(t, SignupPage(SignupPageData{
		Username: "u",
		Email:    "a@b.com",
		Error:    "Passwords do not match",
	}))

	require.Equal(t, "Create an account", doc.Find("h1").Text())

	form := doc.Find("form#" + SignupFormID)
	require.Equal(t, "/signup", form.AttrOr("action", ""))
	for _, id := range []string{"username", "email", "password", "confirmPassword"} {
		require.Equal(t, 1, form.Find("input#"+id).Length(), id)
	}
	require.Equal(t, "email", form.Find("input#email").AttrOr("type", ""))
	require.Equal(t, "a@b.com", form.Find("input#email").AttrOr("value", ""))
	require.Equal(t, "Passwords do not match", form.Find(`[role="alert"]`).Text())
	require.Equal(t, "/login", doc.Find("a.switch-link").AttrOr("href", ""))
	require.Equal(t, "Creating account...", form.Find(".submit-busy").Text())
	require.Contains(t, doc.Find("p.legal").Text(), "By signing up")
}
