// Package audit drives one deprecations check: it loads the collected
// signals, awaits the bundle collection, reconciles, and scores.
package audit

import (
	"context"
	"fmt"
	"strconv"

	"golang.org/x/sync/errgroup"

	"deprecheck/internal/bundle"
	"deprecheck/internal/observ"
	"deprecheck/internal/reconcile"
	"deprecheck/internal/report"
	"deprecheck/internal/signal"
	"deprecheck/internal/trace"
)

// Options configures a run.
type Options struct {
	IssuesPath    string          // structured issues artifact ("" - none)
	ConsolePath   string          // console entries artifact ("" - none)
	Bundles       bundle.Provider // nil - no bundles
	EnableTimings bool
}

// Result is the outcome of a successful run.
type Result struct {
	Artifact report.Artifact
	Findings []reconcile.Finding
	Branch   reconcile.Branch
	Inputs   Inputs
	Timing   *observ.Report
}

// Inputs are the collected artifacts a run works on.
type Inputs struct {
	Issues  []signal.Issue
	Console []signal.ConsoleEntry
	Bundles []bundle.Bundle
}

// Run executes the check. Failing to load an input or to obtain the bundle
// collection fails the whole run; no partial artifact is returned.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	t := trace.FromContext(ctx)
	span := trace.Begin(t, trace.ScopeDriver, "audit", 0)
	ctx = trace.WithSpan(ctx, span)

	var timer *observ.Timer
	if opts.EnableTimings {
		timer = observ.NewTimer()
	}

	stopLoad := timer.Start("load")
	in, err := load(ctx, opts)
	if err != nil {
		stopLoad("failed")
		span.End("failed")
		return nil, err
	}
	stopLoad(fmt.Sprintf("%d issues, %d console, %d bundles", len(in.Issues), len(in.Console), len(in.Bundles)))

	res := evaluate(ctx, in, timer)
	if timer != nil {
		rep := timer.Report()
		res.Timing = &rep
	}
	span.WithExtra("branch", res.Branch.String()).
		WithExtra("findings", strconv.Itoa(len(res.Findings))).
		End(res.Artifact.DisplayValue)
	return res, nil
}

// Evaluate runs the check over already collected inputs.
func Evaluate(ctx context.Context, in Inputs) *Result {
	return evaluate(ctx, in, nil)
}

func evaluate(ctx context.Context, in Inputs, timer *observ.Timer) *Result {
	stop := timer.Start("index")
	idx := bundle.NewIndex(in.Bundles)
	stop(fmt.Sprintf("%d scripts", idx.Len()))

	stop = timer.Start("reconcile")
	sel := reconcile.Select(in.Issues, in.Console)
	findings := reconcile.ReconcileSelection(ctx, sel, idx)
	stop(sel.Branch.String())

	stop = timer.Start("report")
	artifact := report.Build(findings)
	stop(artifact.DisplayValue)

	return &Result{
		Artifact: artifact,
		Findings: findings,
		Branch:   sel.Branch,
		Inputs:   in,
	}
}

// load reads both signal artifacts and awaits the bundle provider
// concurrently. The first failure cancels the rest.
func load(ctx context.Context, opts Options) (Inputs, error) {
	t := trace.FromContext(ctx)
	span := trace.Begin(t, trace.ScopePass, "load", trace.CurrentSpan(ctx))
	ctx = trace.WithSpan(ctx, span)

	var in Inputs
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		issues, err := signal.LoadIssues(gctx, opts.IssuesPath)
		if err != nil {
			return fmt.Errorf("failed to load issues: %w", err)
		}
		in.Issues = issues
		return nil
	})
	g.Go(func() error {
		entries, err := signal.LoadConsole(gctx, opts.ConsolePath)
		if err != nil {
			return fmt.Errorf("failed to load console entries: %w", err)
		}
		in.Console = entries
		return nil
	})
	if opts.Bundles != nil {
		g.Go(func() error {
			bundles, err := opts.Bundles.Bundles(gctx)
			if err != nil {
				return fmt.Errorf("failed to fetch bundles: %w", err)
			}
			in.Bundles = bundles
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.End(err.Error())
		return Inputs{}, err
	}
	span.End("")
	return in, nil
}
