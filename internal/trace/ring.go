package trace

import (
	"io"
	"sync"
)

// RingTracer keeps the last N events in memory; it is dumped after a failed run.
type RingTracer struct {
	mu     sync.Mutex
	events []Event
	next   int // индекс для следующей записи, когда буфер заполнен
	level  Level
}

// NewRingTracer creates a RingTracer holding up to capacity events.
func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = DefaultRingSize
	}
	return &RingTracer{events: make([]Event, 0, capacity), level: level}
}

func (t *RingTracer) Emit(ev *Event) {
	if !t.level.Allows(ev) {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	stored := *ev
	stored.Seq = nextSeq()
	stored.Attrs = append([]Attr(nil), ev.Attrs...)
	if len(t.events) < cap(t.events) {
		t.events = append(t.events, stored)
		return
	}
	t.events[t.next] = stored
	t.next = (t.next + 1) % len(t.events)
}

// Snapshot returns the stored events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Event, 0, len(t.events))
	out = append(out, t.events[t.next:]...)
	return append(out, t.events[:t.next]...)
}

// Dump writes the snapshot to w.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	var buf []byte
	for _, ev := range t.Snapshot() {
		buf = AppendEvent(buf, &ev, format)
	}
	_, err := w.Write(buf)
	return err
}

func (t *RingTracer) Flush() error  { return nil }
func (t *RingTracer) Close() error  { return nil }
func (t *RingTracer) Level() Level  { return t.level }
func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
