package locate

import (
	"errors"
	"testing"

	"deprecheck/internal/bundle"
	"deprecheck/internal/signal"
	"deprecheck/internal/source"
)

func mapsTo(wantLine, wantCol uint32, pos source.Position) bundle.ResolverFunc {
	return func(line, column uint32) (source.Position, error) {
		if line == wantLine && column == wantCol {
			return pos, nil
		}
		return source.Position{}, bundle.ErrNoMapping
	}
}

func TestResolve(t *testing.T) {
	orig := source.Position{URL: "orig.js", Line: 2, Column: 1}
	mapped := &bundle.Bundle{ScriptID: "S1", Resolver: mapsTo(10, 4, orig)}
	panicking := &bundle.Bundle{ScriptID: "S2", Resolver: bundle.ResolverFunc(func(uint32, uint32) (source.Position, error) {
		panic("index out of range")
	})}

	tests := []struct {
		name    string
		b       *bundle.Bundle
		line    uint32
		column  uint32
		want    source.Location
		wantErr error
	}{
		{
			name: "no bundle keeps raw location",
			b:    nil, line: 10, column: 4,
			want: source.Location{URL: "app.js", Line: 10, Column: 4},
		},
		{
			name: "bundle maps position",
			b:    mapped, line: 10, column: 4,
			want: source.Location{URL: "app.js", Line: 10, Column: 4, Original: &orig},
		},
		{
			name: "unmapped position falls back",
			b:    mapped, line: 11, column: 0,
			want:    source.Location{URL: "app.js", Line: 11, Column: 0},
			wantErr: bundle.ErrNoMapping,
		},
		{
			name: "bundle without map falls back",
			b:    &bundle.Bundle{ScriptID: "S3"}, line: 1, column: 1,
			want:    source.Location{URL: "app.js", Line: 1, Column: 1},
			wantErr: ErrNoResolver,
		},
		{
			name: "panicking resolver falls back",
			b:    panicking, line: 3, column: 3,
			want:    source.Location{URL: "app.js", Line: 3, Column: 3},
			wantErr: bundle.ErrMalformedMapping,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TryResolve("app.js", tt.line, tt.column, tt.b)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
			if !sameLocation(got, tt.want) {
				t.Fatalf("TryResolve = %s, want %s", got, tt.want)
			}
			if plain := Resolve("app.js", tt.line, tt.column, tt.b); !sameLocation(plain, tt.want) {
				t.Fatalf("Resolve = %s, want %s", plain, tt.want)
			}
		})
	}
}

func TestFromLegacyEntry(t *testing.T) {
	entry := signal.ConsoleEntry{Source: signal.SourceDeprecation, Text: "foo", URL: "b.js", LineNumber: 1, ColumnNumber: 0}
	got := FromLegacyEntry(entry)
	want := source.Location{URL: "b.js", Line: 1, Column: 0}
	if !sameLocation(got, want) {
		t.Fatalf("FromLegacyEntry = %s, want %s", got, want)
	}
}

func sameLocation(a, b source.Location) bool {
	if a.URL != b.URL || a.Line != b.Line || a.Column != b.Column {
		return false
	}
	if (a.Original == nil) != (b.Original == nil) {
		return false
	}
	return a.Original == nil || *a.Original == *b.Original
}
