package legal

import "time"

// PageData is the view model for a legal document. HTML must already be
// sanitised.
type PageData struct {
	Title     string
	UpdatedAt time.Time
	HTML      string
}
