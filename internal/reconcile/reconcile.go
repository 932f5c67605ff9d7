// Package reconcile picks which upstream deprecation feed to trust for a run
// and turns its items into findings with resolved locations.
//
// Structured issues are authoritative. Legacy console entries are consulted
// only when the structured feed is empty; the two are never merged, so an
// event reported through both channels is counted once.
package reconcile

import (
	"context"
	"fmt"
	"strconv"

	"deprecheck/internal/bundle"
	"deprecheck/internal/locate"
	"deprecheck/internal/signal"
	"deprecheck/internal/source"
	"deprecheck/internal/trace"
)

// Finding is one normalized deprecation occurrence.
type Finding struct {
	Value  string          `json:"value"`
	Source source.Location `json:"source"`
}

// Branch names the feed a run was reconciled from.
type Branch uint8

const (
	// BranchStructured: findings come from structured issues.
	BranchStructured Branch = iota + 1
	// BranchLegacy: findings come from deprecation-tagged console entries.
	BranchLegacy
)

func (b Branch) String() string {
	switch b {
	case BranchStructured:
		return "structured"
	case BranchLegacy:
		return "legacy"
	}
	return "unknown"
}

// Selection is the feed chosen for a run. Exactly one of Issues/Legacy is
// meaningful, as named by Branch.
type Selection struct {
	Branch Branch
	Issues []signal.Issue
	Legacy []signal.ConsoleEntry
}

// Select chooses the feed: structured issues when there are any, otherwise
// the console entries.
func Select(issues []signal.Issue, legacy []signal.ConsoleEntry) Selection {
	if len(issues) > 0 {
		return Selection{Branch: BranchStructured, Issues: issues}
	}
	return Selection{Branch: BranchLegacy, Legacy: legacy}
}

// Reconcile selects a feed and emits findings in input order. Per-item
// resolution problems degrade the location and never drop a finding.
func Reconcile(ctx context.Context, issues []signal.Issue, legacy []signal.ConsoleEntry, idx *bundle.Index) []Finding {
	return ReconcileSelection(ctx, Select(issues, legacy), idx)
}

// ReconcileSelection emits findings for an already selected feed.
func ReconcileSelection(ctx context.Context, sel Selection, idx *bundle.Index) []Finding {
	t := trace.FromContext(ctx)
	span := trace.Begin(t, trace.ScopePass, "reconcile", trace.CurrentSpan(ctx))

	var findings []Finding
	switch sel.Branch {
	case BranchStructured:
		findings = fromIssues(t, sel.Issues, idx)
	case BranchLegacy:
		findings = fromLegacy(sel.Legacy)
	}

	span.WithExtra("branch", sel.Branch.String()).End(fmt.Sprintf("%d findings", len(findings)))
	return findings
}

func fromIssues(t trace.Tracer, issues []signal.Issue, idx *bundle.Index) []Finding {
	findings := make([]Finding, 0, len(issues))
	for i, issue := range issues {
		b, _ := idx.Find(issue.ScriptID)
		loc, err := locate.TryResolve(issue.URL, issue.LineNumber, zeroBased(issue.ColumnNumber), b)
		if err != nil {
			trace.Point(t, trace.ScopeItem, "locate.fallback", err.Error(), map[string]string{
				"item":   strconv.Itoa(i),
				"script": issue.ScriptID,
			})
		}
		findings = append(findings, Finding{Value: issue.Message, Source: loc})
	}
	return findings
}

func fromLegacy(entries []signal.ConsoleEntry) []Finding {
	findings := make([]Finding, 0, len(entries))
	for _, entry := range entries {
		if !entry.IsDeprecation() {
			continue
		}
		findings = append(findings, Finding{Value: entry.Text, Source: locate.FromLegacyEntry(entry)})
	}
	return findings
}

// zeroBased converts a 1-based column; 0 (already invalid) stays 0.
func zeroBased(column uint32) uint32 {
	if column == 0 {
		return 0
	}
	return column - 1
}
