package reportfmt

import (
	"fmt"

	"deprecheck/internal/reconcile"
	"deprecheck/internal/report"
	"deprecheck/internal/source"
)

func limitRows(a report.Artifact, maxRows int) []reconcile.Finding {
	rows := a.Details.Rows
	if maxRows > 0 && maxRows < len(rows) {
		return rows[:maxRows]
	}
	return rows
}

// FormatLocation renders the deployed position as url:line:column.
func FormatLocation(loc source.Location, mode source.URLMode) string {
	return fmt.Sprintf("%s:%d:%d", displayURL(loc.URL, mode), loc.Line, loc.Column)
}

// FormatOriginal renders the original position, or "" when there is none.
func FormatOriginal(loc source.Location, mode source.URLMode) string {
	if loc.Original == nil {
		return ""
	}
	return fmt.Sprintf("%s:%d:%d", displayURL(loc.Original.URL, mode), loc.Original.Line, loc.Original.Column)
}

func displayURL(raw string, mode source.URLMode) string {
	if raw == "" {
		return "<unknown>"
	}
	return source.FormatURL(raw, mode)
}
