package source

import (
	"net/url"
	"path"
	"strings"
)

// URLMode selects how location URLs are displayed.
type URLMode uint8

const (
	// URLModeAuto keeps short URLs and trims long ones to their basename.
	URLModeAuto URLMode = iota
	// URLModeFull always prints the URL as recorded.
	URLModeFull
	URLModePath
	URLModeBasename
)

// ParseURLMode converts a flag value to URLMode.
func ParseURLMode(s string) (URLMode, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return URLModeAuto, true
	case "full":
		return URLModeFull, true
	case "path":
		return URLModePath, true
	case "basename":
		return URLModeBasename, true
	}
	return URLModeAuto, false
}

func (m URLMode) String() string {
	switch m {
	case URLModeAuto:
		return "auto"
	case URLModeFull:
		return "full"
	case URLModePath:
		return "path"
	case URLModeBasename:
		return "basename"
	}
	return "unknown"
}

// FormatURL renders raw according to mode. Unparseable URLs are returned
// unchanged.
func FormatURL(raw string, mode URLMode) string {
	if raw == "" {
		return ""
	}
	switch mode {
	case URLModeFull:
		return raw
	case URLModePath:
		u, err := url.Parse(raw)
		if err != nil || u.Path == "" {
			return raw
		}
		return u.Path
	case URLModeBasename:
		return BaseName(raw)
	default:
		// короткие оставляем как есть
		if len(raw) < 60 {
			return raw
		}
		return BaseName(raw)
	}
}

// BaseName returns the last path segment of a URL or file path, without
// query or fragment.
func BaseName(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	p := u.Path
	if p == "" {
		p = u.Opaque
	}
	if p == "" || p == "/" {
		return raw
	}
	return path.Base(p)
}
