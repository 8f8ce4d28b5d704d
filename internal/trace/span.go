package trace

import (
	"sync/atomic"
	"time"
)

var (
	seqCounter  atomic.Uint64
	spanCounter atomic.Uint64
)

// Span is an open interval started by Begin. A Span from a disabled tracer is
// inert; all methods are safe on it.
type Span struct {
	tracer  Tracer
	id      uint64
	parent  uint64
	scope   Scope
	name    string
	started time.Time
	attrs   []Attr
}

// Begin opens a span under parent (0 for a root span).
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if t == nil || !t.Level().ShouldEmit(scope) {
		return &Span{parent: parent}
	}
	s := &Span{
		tracer:  t,
		id:      spanCounter.Add(1),
		parent:  parent,
		scope:   scope,
		name:    name,
		started: time.Now(),
	}
	t.Emit(&Event{Time: s.started, Kind: KindBegin, Scope: scope, SpanID: s.id, ParentID: parent, Name: name})
	return s
}

// Attr records an annotation emitted with the end event.
func (s *Span) Attr(key, value string) *Span {
	if s.tracer != nil {
		s.attrs = append(s.attrs, Attr{Key: key, Value: value})
	}
	return s
}

// End closes the span and returns its duration.
func (s *Span) End(detail string) time.Duration {
	if s.tracer == nil {
		return 0
	}
	dur := time.Since(s.started)
	s.tracer.Emit(&Event{
		Time:     time.Now(),
		Kind:     KindEnd,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		Name:     s.name,
		Detail:   detail,
		Attrs:    append(s.attrs, Attr{Key: "dur", Value: dur.String()}),
	})
	s.tracer = nil
	return dur
}

// ID returns the span id; inert spans report their parent so children still nest.
func (s *Span) ID() uint64 {
	if s.tracer == nil && s.id == 0 {
		return s.parent
	}
	return s.id
}

// Point emits an instant event.
func Point(t Tracer, scope Scope, name, detail string, parent uint64) {
	if t == nil || !t.Level().ShouldEmit(scope) {
		return
	}
	t.Emit(&Event{Time: time.Now(), Kind: KindPoint, Scope: scope, ParentID: parent, Name: name, Detail: detail})
}

// Error emits an error event; it passes every enabled level.
func Error(t Tracer, name, detail string, parent uint64, attrs ...Attr) {
	if t == nil || !t.Enabled() {
		return
	}
	t.Emit(&Event{Time: time.Now(), Kind: KindError, Scope: ScopeToken, ParentID: parent, Name: name, Detail: detail, Attrs: attrs})
}

func nextSeq() uint64 {
	return seqCounter.Add(1)
}
