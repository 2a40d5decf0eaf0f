package httpserver

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"finitefield.org/hanko-accounts/internal/accounts/legal"
	"finitefield.org/hanko-accounts/internal/accounts/observability"
	"finitefield.org/hanko-accounts/internal/accounts/templates/home"
	legalpage "finitefield.org/hanko-accounts/internal/accounts/templates/legal"
)

type pageHandlers struct {
	legal *legal.Store
}

func newPageHandlers(store *legal.Store) *pageHandlers {
	return &pageHandlers{legal: store}
}

func (h *pageHandlers) Home(w http.ResponseWriter, r *http.Request) {
	render(w, r, home.Page(home.PageData{
		Title:   "Hanko Accounts",
		Message: "Welcome to Hanko Accounts",
	}), http.StatusOK)
}

// Legal returns a handler rendering the legal document for slug.
func (h *pageHandlers) Legal(slug string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		doc, err := h.legal.Load(slug)
		if errors.Is(err, legal.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		if err != nil {
			observability.FromContext(r.Context()).Error("legal document failed", zap.String("slug", slug), zap.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		render(w, r, legalpage.Page(legalpage.PageData{
			Title:     doc.Title,
			UpdatedAt: doc.UpdatedAt,
			HTML:      doc.HTML,
		}), http.StatusOK)
	}
}
