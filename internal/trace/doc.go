// Package trace records structured events for pl0lex runs: one span per run,
// phase spans (load, lex, render), one span per source file and, at debug
// level, a point per token. Lexical and I/O errors are error events and pass
// every enabled level.
//
// Tracers:
//
//   - Nop discards everything (tracing off)
//   - StreamTracer writes text or NDJSON to stderr or a file
//   - RingTracer keeps the last N events and is dumped when a run fails
//   - MultiTracer combines a stream and a ring (--trace-mode both)
//
// Usage:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, "file:gcd.pl0", trace.ParentFrom(ctx))
//	defer span.End("")
package trace
