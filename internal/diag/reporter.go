package diag

import "pl0lex/internal/source"

// Reporter receives diagnostics from whoever produces them. The lexer calls it
// once per lexical error; the driver decides where the diagnostics end up.
type Reporter interface {
	Report(code Code, sev Severity, primary source.Span, msg string, notes []Note)
}

// ReporterFunc adapts a plain function to Reporter.
type ReporterFunc func(code Code, sev Severity, primary source.Span, msg string, notes []Note)

func (f ReporterFunc) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	f(code, sev, primary, msg, notes)
}

// BagReporter складывает диагностики в Bag; при переполнении лишние молча теряются.
type BagReporter struct{ Bag *Bag }

func (r BagReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r.Bag == nil {
		return
	}
	d := New(sev, code, primary, msg)
	d.Notes = notes
	r.Bag.Add(d)
}

type reportKey struct {
	code Code
	sev  Severity
	span source.Span
	msg  string
}

// DedupReporter drops a diagnostic when one with the same code, severity,
// span and message has already passed through.
type DedupReporter struct {
	next Reporter
	seen map[reportKey]struct{}
}

func NewDedupReporter(next Reporter) *DedupReporter {
	return &DedupReporter{next: next, seen: map[reportKey]struct{}{}}
}

func (r *DedupReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note) {
	if r == nil || r.next == nil {
		return
	}
	key := reportKey{code: code, sev: sev, span: primary, msg: msg}
	if _, dup := r.seen[key]; dup {
		return
	}
	r.seen[key] = struct{}{}
	r.next.Report(code, sev, primary, msg, notes)
}

// Seen returns how many distinct diagnostics were forwarded.
func (r *DedupReporter) Seen() int {
	if r == nil {
		return 0
	}
	return len(r.seen)
}
