// Package trace is the structured event log of a deprecheck run.
//
// A run is traced as nested spans: the driver span wraps the audit, pass
// spans wrap each phase (load, index, reconcile, report), and item-level
// point events record per-finding degradations such as a bundle mapping
// that could not be applied.
//
//	deprecheck audit --trace=- --trace-level=detail
//
// Events go to a Stream (written as they happen), a Recorder (the last N
// events, dumped when a run fails) or both. Tracers travel in the context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "reconcile", trace.CurrentSpan(ctx))
//	defer span.End("")
package trace
