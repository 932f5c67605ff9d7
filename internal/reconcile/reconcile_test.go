package reconcile

import (
	"context"
	"testing"

	"deprecheck/internal/bundle"
	"deprecheck/internal/signal"
	"deprecheck/internal/source"
	"deprecheck/internal/trace"
)

var legacyFeed = []signal.ConsoleEntry{
	{Source: signal.SourceDeprecation, Text: "foo", URL: "b.js", LineNumber: 1, ColumnNumber: 0},
	{Source: "other", Text: "bar", URL: "c.js", LineNumber: 2, ColumnNumber: 3},
	{Source: signal.SourceDeprecation, Text: "baz", URL: "d.js", LineNumber: 7, ColumnNumber: 8},
}

func TestStructuredIssuesWinOverLegacy(t *testing.T) {
	issues := []signal.Issue{
		{Message: "A", ScriptID: "S1", URL: "a.js", LineNumber: 1, ColumnNumber: 1},
		{Message: "B", ScriptID: "S2", URL: "a.js", LineNumber: 2, ColumnNumber: 5},
	}
	findings := Reconcile(context.Background(), issues, legacyFeed, indexOf())
	if len(findings) != len(issues) {
		t.Fatalf("expected %d findings, got %d", len(issues), len(findings))
	}
	for i, f := range findings {
		if f.Value != issues[i].Message {
			t.Fatalf("finding %d = %q, want %q (order must follow input)", i, f.Value, issues[i].Message)
		}
	}
}

func TestLegacyFallbackFiltersProvenance(t *testing.T) {
	findings := Reconcile(context.Background(), nil, legacyFeed, indexOf())
	if len(findings) != 2 {
		t.Fatalf("expected 2 deprecation findings, got %d: %+v", len(findings), findings)
	}
	if findings[0].Value != "foo" || findings[1].Value != "baz" {
		t.Fatalf("unexpected values: %+v", findings)
	}
	want := source.Location{URL: "b.js", Line: 1, Column: 0}
	if findings[0].Source != want {
		t.Fatalf("legacy location = %+v, want %+v", findings[0].Source, want)
	}
}

func TestColumnIsNormalizedToZeroBased(t *testing.T) {
	issues := []signal.Issue{
		{Message: "m", ScriptID: "S1", URL: "a.js", LineNumber: 5, ColumnNumber: 1},
		{Message: "n", ScriptID: "S1", URL: "a.js", LineNumber: 5, ColumnNumber: 10},
		{Message: "zero", ScriptID: "S1", URL: "a.js", LineNumber: 5, ColumnNumber: 0},
	}
	findings := Reconcile(context.Background(), issues, nil, nil)
	for i, want := range []uint32{0, 9, 0} {
		if findings[i].Source.Column != want {
			t.Fatalf("finding %d column = %d, want %d", i, findings[i].Source.Column, want)
		}
		if findings[i].Source.Line != 5 {
			t.Fatalf("finding %d line changed to %d", i, findings[i].Source.Line)
		}
	}
}

func TestBundleResolvesOriginalPosition(t *testing.T) {
	table := bundle.NewMappingTable([]bundle.Mapping{
		{Line: 10, Column: 4, SourceURL: "orig.js", SourceLine: 2, SourceColumn: 1},
	})
	idx := indexOf(bundle.Bundle{ScriptID: "S1", Resolver: table})
	issues := []signal.Issue{
		{Message: "mapped", ScriptID: "S1", URL: "app.min.js", LineNumber: 10, ColumnNumber: 5},
		{Message: "other script", ScriptID: "S2", URL: "vendor.js", LineNumber: 10, ColumnNumber: 5},
		{Message: "unmapped line", ScriptID: "S1", URL: "app.min.js", LineNumber: 99, ColumnNumber: 1},
	}

	findings := Reconcile(context.Background(), issues, nil, idx)
	if len(findings) != 3 {
		t.Fatalf("resolution failures must not drop findings, got %d", len(findings))
	}
	orig := findings[0].Source.Original
	if orig == nil || *orig != (source.Position{URL: "orig.js", Line: 2, Column: 1}) {
		t.Fatalf("original position = %+v", orig)
	}
	if findings[0].Source.Line != 10 || findings[0].Source.Column != 4 {
		t.Fatalf("deployed position must be kept, got %+v", findings[0].Source)
	}
	if findings[1].Source.Original != nil || findings[2].Source.Original != nil {
		t.Fatalf("unexpected original positions: %+v / %+v", findings[1].Source, findings[2].Source)
	}
}

func TestMissingMessageBecomesEmptyValue(t *testing.T) {
	findings := Reconcile(context.Background(), []signal.Issue{{ScriptID: "S1", URL: "a.js", ColumnNumber: 1}}, nil, nil)
	if len(findings) != 1 || findings[0].Value != "" {
		t.Fatalf("expected one finding with empty value, got %+v", findings)
	}
}

func TestEmptyFeedsYieldNoFindings(t *testing.T) {
	if findings := Reconcile(context.Background(), nil, nil, nil); len(findings) != 0 {
		t.Fatalf("expected no findings, got %+v", findings)
	}
	sel := Select(nil, nil)
	if sel.Branch != BranchLegacy {
		t.Fatalf("empty structured feed must select legacy branch, got %s", sel.Branch)
	}
}

func TestResolverFailureIsTracedNotDropped(t *testing.T) {
	rec := trace.NewRecorder(16, trace.LevelDetail)
	ctx := trace.WithTracer(context.Background(), rec)
	broken := bundle.Bundle{
		ScriptID: "S1",
		Resolver: bundle.ResolverFunc(func(line, column uint32) (source.Position, error) {
			panic("corrupt segment")
		}),
	}
	issues := []signal.Issue{{Message: "A", ScriptID: "S1", URL: "a.js", LineNumber: 4, ColumnNumber: 2}}

	findings := Reconcile(ctx, issues, nil, indexOf(broken))
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	if want := source.Raw("a.js", 4, 1); findings[0].Source != want {
		t.Fatalf("source = %+v, want raw %+v", findings[0].Source, want)
	}

	var fallback *trace.Event
	events := rec.Events()
	for i := range events {
		if events[i].Name == "locate.fallback" {
			fallback = &events[i]
		}
	}
	if fallback == nil {
		t.Fatalf("no locate.fallback event in %+v", events)
	}
	if fallback.Extra["script"] != "S1" || fallback.Extra["item"] != "0" {
		t.Fatalf("unexpected fallback extra: %+v", fallback.Extra)
	}
}

func indexOf(bundles ...bundle.Bundle) *bundle.Index {
	return bundle.NewIndex(bundles)
}
