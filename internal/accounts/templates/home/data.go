package home

// PageData is the view model for the landing page.
type PageData struct {
	Title   string
	Message string
}
