package diag

import (
	"cmp"

	"pl0lex/internal/source"
)

// Severity упорядочена по возрастанию важности, SevError старше всех.
type Severity uint8

const (
	SevInfo Severity = iota
	SevWarning
	SevError
)

var severityNames = [...]string{
	SevInfo:    "INFO",
	SevWarning: "WARNING",
	SevError:   "ERROR",
}

func (s Severity) String() string {
	if int(s) < len(severityNames) {
		return severityNames[s]
	}
	return "UNKNOWN"
}

// Note points at a secondary location, e.g. where an unterminated comment began.
type Note struct {
	Span source.Span
	Msg  string
}

// Diagnostic is a single finding about one source file.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
}

func New(sev Severity, code Code, primary source.Span, msg string) Diagnostic {
	return Diagnostic{Severity: sev, Code: code, Primary: primary, Message: msg}
}

// NewError - сокращение для SevError, лексер других уровней не выдаёт.
func NewError(code Code, primary source.Span, msg string) Diagnostic {
	return New(SevError, code, primary, msg)
}

// WithNote returns a copy of d with one more note attached.
func (d Diagnostic) WithNote(sp source.Span, msg string) Diagnostic {
	d.Notes = append(d.Notes[:len(d.Notes):len(d.Notes)], Note{Span: sp, Msg: msg})
	return d
}

// compare задаёт порядок вывода: файл, начало, конец, затем более серьёзные раньше.
func compare(a, b Diagnostic) int {
	return cmp.Or(
		cmp.Compare(a.Primary.File, b.Primary.File),
		cmp.Compare(a.Primary.Start, b.Primary.Start),
		cmp.Compare(a.Primary.End, b.Primary.End),
		cmp.Compare(b.Severity, a.Severity),
		cmp.Compare(a.Code, b.Code),
	)
}
