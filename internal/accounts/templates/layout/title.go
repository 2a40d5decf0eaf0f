package layout

import (
	"context"

	"finitefield.org/hanko-accounts/internal/accounts/httpserver/middleware"
)

const siteName = "Hanko Accounts"

// Title formats a document title with the site suffix.
func Title(page string) string {
	if page == "" {
		return siteName
	}
	return page + " | " + siteName
}

// environmentBadgeLabel returns the label shown in the environment badge, or
// "" in production.
func environmentBadgeLabel(ctx context.Context) string {
	env := middleware.EnvironmentFromContext(ctx)
	if middleware.IsProduction(env) {
		return ""
	}
	return env
}
