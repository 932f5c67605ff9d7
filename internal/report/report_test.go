package report

import (
	"encoding/json"
	"strings"
	"testing"

	"deprecheck/internal/reconcile"
	"deprecheck/internal/source"
)

func findings(n int) []reconcile.Finding {
	out := make([]reconcile.Finding, n)
	for i := range out {
		out[i] = reconcile.Finding{Value: "w", Source: source.Raw("a.js", 0, 0)}
	}
	return out
}

func TestBuildEmptyPasses(t *testing.T) {
	a := Build(nil)
	if a.Score != 1 || !a.Passed() {
		t.Fatalf("empty findings must pass, got score %d", a.Score)
	}
	if a.DisplayValue != "" {
		t.Fatalf("display value must be absent, got %q", a.DisplayValue)
	}
	if a.Details.Rows == nil || len(a.Details.Rows) != 0 {
		t.Fatalf("rows must be an empty list, got %#v", a.Details.Rows)
	}

	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if strings.Contains(string(data), "displayValue") {
		t.Fatalf("displayValue must be omitted: %s", data)
	}
	if !strings.Contains(string(data), `"rows":[]`) {
		t.Fatalf("rows must serialise as []: %s", data)
	}
}

func TestBuildScoreAndDisplayValue(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{n: 1, want: "1 warning found"},
		{n: 2, want: "2 warnings found"},
		{n: 3, want: "3 warnings found"},
		{n: 11, want: "11 warnings found"},
	}
	for _, tt := range tests {
		a := Build(findings(tt.n))
		if a.Score != 0 || a.Passed() {
			t.Fatalf("%d findings must fail, got score %d", tt.n, a.Score)
		}
		if a.DisplayValue != tt.want {
			t.Fatalf("%d findings: display value %q, want %q", tt.n, a.DisplayValue, tt.want)
		}
		if len(a.Details.Rows) != tt.n {
			t.Fatalf("%d findings: got %d rows", tt.n, len(a.Details.Rows))
		}
	}
}

func TestDisplayValueZeroIsPlural(t *testing.T) {
	if got := DisplayValue(0); got != "0 warnings found" {
		t.Fatalf("DisplayValue(0) = %q", got)
	}
}

func TestBuildKeepsOrderAndColumns(t *testing.T) {
	in := []reconcile.Finding{
		{Value: "z", Source: source.Raw("z.js", 1, 1)},
		{Value: "a", Source: source.Raw("a.js", 2, 2)},
		{Value: "z", Source: source.Raw("z.js", 1, 1)},
	}
	a := Build(in)
	for i := range in {
		if a.Details.Rows[i].Value != in[i].Value || a.Details.Rows[i].Source.URL != in[i].Source.URL {
			t.Fatalf("row %d reordered: %+v", i, a.Details.Rows[i])
		}
	}
	h := a.Details.Headings
	if len(h) != 2 || h[0].Key != KeyValue || h[0].ValueType != "text" || h[1].Key != KeySource || h[1].ValueType != "source-location" {
		t.Fatalf("unexpected headings: %+v", h)
	}
	if a.Details.Type != "table" || a.ID != ID {
		t.Fatalf("unexpected table/id: %q %q", a.Details.Type, a.ID)
	}
}
