package trace

import "context"

type tracerKey struct{}

type parentKey struct{}

// WithTracer attaches t to ctx; nil means Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// FromContext returns the tracer attached to ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx != nil {
		if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
			return t
		}
	}
	return Nop
}

// WithParent records the span id new spans started from ctx should nest under.
func WithParent(ctx context.Context, spanID uint64) context.Context {
	return context.WithValue(ctx, parentKey{}, spanID)
}

// ParentFrom returns the span id stored by WithParent, or 0.
func ParentFrom(ctx context.Context) uint64 {
	if ctx == nil {
		return 0
	}
	id, _ := ctx.Value(parentKey{}).(uint64)
	return id
}
