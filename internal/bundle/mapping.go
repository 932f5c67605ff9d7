package bundle

import (
	"fmt"
	"sort"

	"deprecheck/internal/source"
)

// Mapping is one pre-decoded source-map segment: a deployed position and
// the original position it came from.
type Mapping struct {
	Line         uint32 `json:"line" msgpack:"line"`
	Column       uint32 `json:"column" msgpack:"column"`
	SourceURL    string `json:"sourceUrl" msgpack:"source_url"`
	SourceLine   uint32 `json:"sourceLine" msgpack:"source_line"`
	SourceColumn uint32 `json:"sourceColumn" msgpack:"source_column"`
}

// MappingTable resolves positions against a sorted list of mappings.
// A position maps to the closest entry on the same line whose column is
// not after it.
type MappingTable struct {
	entries []Mapping
}

// NewMappingTable copies and sorts entries. It returns nil for an empty
// list so that bundles without mappings report HasMap() == false.
func NewMappingTable(entries []Mapping) *MappingTable {
	if len(entries) == 0 {
		return nil
	}
	sorted := append([]Mapping(nil), entries...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Line != sorted[j].Line {
			return sorted[i].Line < sorted[j].Line
		}
		return sorted[i].Column < sorted[j].Column
	})
	return &MappingTable{entries: sorted}
}

// Len returns the number of mapping entries.
func (t *MappingTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Lookup implements Resolver.
func (t *MappingTable) Lookup(line, column uint32) (source.Position, error) {
	if t == nil || len(t.entries) == 0 {
		return source.Position{}, ErrNoMapping
	}
	// первый элемент строго после (line, column)
	idx := sort.Search(len(t.entries), func(i int) bool {
		e := t.entries[i]
		if e.Line != line {
			return e.Line > line
		}
		return e.Column > column
	})
	if idx == 0 || t.entries[idx-1].Line != line {
		return source.Position{}, fmt.Errorf("%w: %d:%d", ErrNoMapping, line, column)
	}
	e := t.entries[idx-1]
	if e.SourceURL == "" {
		return source.Position{}, fmt.Errorf("%w: entry at %d:%d has no source", ErrMalformedMapping, e.Line, e.Column)
	}
	return source.Position{URL: e.SourceURL, Line: e.SourceLine, Column: e.SourceColumn}, nil
}

// Entries returns the sorted entries. Do not modify the result.
func (t *MappingTable) Entries() []Mapping {
	if t == nil {
		return nil
	}
	return t.entries
}
