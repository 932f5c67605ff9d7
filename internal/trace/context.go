package trace

import "context"

type ctxKey struct{}

// state is what a context carries: the tracer and the innermost span.
type state struct {
	tracer Tracer
	span   uint64
}

func stateOf(ctx context.Context) state {
	if ctx != nil {
		if st, ok := ctx.Value(ctxKey{}).(state); ok {
			return st
		}
	}
	return state{tracer: Nop}
}

// FromContext returns the context's tracer, or Nop.
func FromContext(ctx context.Context) Tracer {
	return stateOf(ctx).tracer
}

// WithTracer attaches t to ctx. The current span is reset.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, ctxKey{}, state{tracer: t})
}

// CurrentSpan returns the id of the innermost span set by WithSpan, or 0.
func CurrentSpan(ctx context.Context) uint64 {
	return stateOf(ctx).span
}

// WithSpan makes span the parent of spans begun from the returned context.
func WithSpan(ctx context.Context, span *Span) context.Context {
	st := stateOf(ctx)
	st.span = span.ID()
	return context.WithValue(ctx, ctxKey{}, st)
}
