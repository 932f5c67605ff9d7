package bundle

import (
	"errors"

	"deprecheck/internal/source"
)

var (
	// ErrNoMapping is returned when a position has no mapping entry.
	ErrNoMapping = errors.New("no mapping for position")
	// ErrMalformedMapping is returned when the matching entry cannot be
	// turned into an original position.
	ErrMalformedMapping = errors.New("malformed mapping entry")
)

// Resolver maps a deployed (minified) position to its original position.
// Line and column are 0-based.
type Resolver interface {
	Lookup(line, column uint32) (source.Position, error)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(line, column uint32) (source.Position, error)

// Lookup calls f.
func (f ResolverFunc) Lookup(line, column uint32) (source.Position, error) {
	return f(line, column)
}

// Bundle ties one script to an optional resolver.
type Bundle struct {
	ScriptID  string
	ScriptURL string
	Resolver  Resolver // nil when the script has no usable source map
}

// HasMap reports whether the bundle can resolve positions at all.
func (b *Bundle) HasMap() bool {
	return b != nil && b.Resolver != nil
}
