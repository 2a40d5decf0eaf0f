package helpers

import "time"

const defaultDateLayout = "January 2, 2006"

// Date formats the timestamp in the provided layout (defaults to January 2, 2006).
func Date(ts time.Time, layout string) string {
	if ts.IsZero() {
		return ""
	}
	if layout == "" {
		layout = defaultDateLayout
	}
	return ts.Format(layout)
}

// ISODate formats the timestamp for machine-readable attributes such as
// <time datetime>.
func ISODate(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.Format("2006-01-02")
}
