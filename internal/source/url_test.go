package source

import (
	"encoding/json"
	"testing"
)

func TestFormatURL(t *testing.T) {
	long := "https://cdn.example.com/static/js/vendor/some/really/deep/path/app.min.js?v=123"
	tests := []struct {
		name string
		raw  string
		mode URLMode
		want string
	}{
		{name: "empty", raw: "", mode: URLModeFull, want: ""},
		{name: "full keeps query", raw: long, mode: URLModeFull, want: long},
		{name: "path drops origin", raw: "https://example.com/js/a.js?x=1", mode: URLModePath, want: "/js/a.js"},
		{name: "basename", raw: "https://example.com/js/a.js?x=1", mode: URLModeBasename, want: "a.js"},
		{name: "basename of bare file", raw: "a.js", mode: URLModeBasename, want: "a.js"},
		{name: "auto short", raw: "https://example.com/a.js", mode: URLModeAuto, want: "https://example.com/a.js"},
		{name: "auto long", raw: long, mode: URLModeAuto, want: "app.min.js"},
		{name: "origin only", raw: "https://example.com/", mode: URLModeBasename, want: "https://example.com/"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatURL(tt.raw, tt.mode); got != tt.want {
				t.Fatalf("FormatURL(%q, %s) = %q, want %q", tt.raw, tt.mode, got, tt.want)
			}
		})
	}
}

func TestParseURLMode(t *testing.T) {
	for _, s := range []string{"auto", "full", "path", "basename", ""} {
		if _, ok := ParseURLMode(s); !ok {
			t.Fatalf("ParseURLMode(%q) rejected", s)
		}
	}
	if _, ok := ParseURLMode("relative"); ok {
		t.Fatalf("ParseURLMode accepted unknown mode")
	}
}

func TestLocationWithOriginal(t *testing.T) {
	raw := Raw("a.js", 10, 4)
	if raw.Resolved() {
		t.Fatalf("raw location must not be resolved")
	}
	got := raw.WithOriginal(Position{URL: "orig.js", Line: 2, Column: 1})
	if !got.Resolved() || got.Original.URL != "orig.js" {
		t.Fatalf("unexpected original: %+v", got.Original)
	}
	if raw.Original != nil {
		t.Fatalf("WithOriginal mutated receiver")
	}
	if got.Deployed() != (Position{URL: "a.js", Line: 10, Column: 4}) {
		t.Fatalf("deployed position changed: %+v", got.Deployed())
	}
	if s := got.String(); s != "a.js:10:4 (orig.js:2:1)" {
		t.Fatalf("String() = %q", s)
	}
}

func TestLocationJSON(t *testing.T) {
	loc := Raw("a.js", 5, 9).WithOriginal(Position{URL: "orig.js", Line: 2, Column: 1})
	data, err := json.Marshal(loc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	want := `{"type":"source-location","url":"a.js","line":5,"column":9,"originalPosition":{"url":"orig.js","line":2,"column":1},"urlProvider":"network"}`
	if string(data) != want {
		t.Fatalf("json = %s\nwant  %s", data, want)
	}

	var back Location
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if back.URL != "a.js" || back.Column != 9 || back.Original == nil || back.Original.URL != "orig.js" {
		t.Fatalf("unexpected decoded location: %+v", back)
	}
}
