// Package locate turns raw (url, line, column) positions into display-ready
// source locations, mapping them through a bundle when one is available.
//
// Resolution is best effort: any failure inside a bundle's resolver,
// including a panic, degrades to the raw location.
package locate

import (
	"errors"
	"fmt"

	"deprecheck/internal/bundle"
	"deprecheck/internal/signal"
	"deprecheck/internal/source"
)

// ErrNoResolver is reported by TryResolve when the bundle has no map.
var ErrNoResolver = errors.New("bundle has no source map")

// Resolve returns the location for (url, line, column), enriched with the
// original position when b maps it. Columns must already be 0-based.
func Resolve(url string, line, column uint32, b *bundle.Bundle) source.Location {
	loc, _ := TryResolve(url, line, column, b)
	return loc
}

// TryResolve is Resolve that also reports why enrichment did not happen.
// The returned location is always usable; a non-nil error only explains a
// fallback to the raw position. A nil bundle is not an error.
func TryResolve(url string, line, column uint32, b *bundle.Bundle) (loc source.Location, err error) {
	loc = source.Raw(url, line, column)
	if b == nil {
		return loc, nil
	}
	if !b.HasMap() {
		return loc, ErrNoResolver
	}

	orig, err := lookup(b.Resolver, line, column)
	if err != nil {
		return loc, err
	}
	return loc.WithOriginal(orig), nil
}

func lookup(r bundle.Resolver, line, column uint32) (pos source.Position, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			pos = source.Position{}
			err = fmt.Errorf("%w: resolver panicked: %v", bundle.ErrMalformedMapping, rec)
		}
	}()
	return r.Lookup(line, column)
}

// FromLegacyEntry builds the location of a console entry. Console entries
// carry no script identity, so no bundle can be matched and the raw
// position is returned.
func FromLegacyEntry(entry signal.ConsoleEntry) source.Location {
	return source.Raw(entry.URL, entry.LineNumber, entry.ColumnNumber)
}
