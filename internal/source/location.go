package source

import (
	"encoding/json"
	"fmt"
)

// LocationType is the stable token renderers use to recognise a
// structured source position in report tables.
const LocationType = "source-location"

// URLProviderNetwork marks locations whose URL came from the page's
// network records rather than from a source map.
const URLProviderNetwork = "network"

// Position is a code position in an original (pre-bundling) source.
type Position struct {
	URL    string `json:"url" msgpack:"url"`
	Line   uint32 `json:"line" msgpack:"line"`     // 0-based
	Column uint32 `json:"column" msgpack:"column"` // 0-based
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.URL, p.Line, p.Column)
}

// Location is a resolved, display-ready code position. URL/Line/Column
// always describe the deployed script; Original is set only when a bundle
// mapped the position back to its authored source.
type Location struct {
	URL      string    `json:"url"`
	Line     uint32    `json:"line"`   // 0-based
	Column   uint32    `json:"column"` // 0-based
	Original *Position `json:"originalPosition,omitempty"`
}

// Raw builds an unresolved location.
func Raw(url string, line, column uint32) Location {
	return Location{URL: url, Line: line, Column: column}
}

// Resolved reports whether the location carries an original position.
func (l Location) Resolved() bool {
	return l.Original != nil
}

// WithOriginal returns a copy of l pointing at the given original position.
func (l Location) WithOriginal(p Position) Location {
	orig := p
	l.Original = &orig
	return l
}

// Deployed returns the minified position as a Position.
func (l Location) Deployed() Position {
	return Position{URL: l.URL, Line: l.Line, Column: l.Column}
}

func (l Location) String() string {
	if l.Original == nil {
		return fmt.Sprintf("%s:%d:%d", l.URL, l.Line, l.Column)
	}
	return fmt.Sprintf("%s:%d:%d (%s)", l.URL, l.Line, l.Column, l.Original)
}

// MarshalJSON tags the location with its value type so renderers can treat
// it as a structured position rather than text.
func (l Location) MarshalJSON() ([]byte, error) {
	type location Location
	return json.Marshal(struct {
		Type string `json:"type"`
		location
		URLProvider string `json:"urlProvider"`
	}{
		Type:        LocationType,
		location:    location(l),
		URLProvider: URLProviderNetwork,
	})
}
