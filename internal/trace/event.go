package trace

import "time"

// Kind represents the type of trace event.
type Kind uint8

const (
	KindBegin Kind = iota + 1 // span start
	KindEnd                   // span end
	KindPoint                 // instant event
	KindError                 // lexical or I/O error
)

var kindNames = [...]string{KindBegin: "begin", KindEnd: "end", KindPoint: "point", KindError: "error"}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// Scope is the granularity of an event; smaller values are coarser.
type Scope uint8

const (
	// ScopeRun covers a whole CLI invocation.
	ScopeRun Scope = iota + 1
	// ScopePhase covers load, lex and render of a run.
	ScopePhase
	// ScopeFile covers one source file.
	ScopeFile
	// ScopeToken covers single tokens and lexical errors.
	ScopeToken
)

var scopeNames = [...]string{ScopeRun: "run", ScopePhase: "phase", ScopeFile: "file", ScopeToken: "token"}

func (s Scope) String() string {
	if int(s) < len(scopeNames) && scopeNames[s] != "" {
		return scopeNames[s]
	}
	return "unknown"
}

// Attr is one key/value annotation; order of Attrs is preserved in output.
type Attr struct {
	Key   string `json:"k"`
	Value string `json:"v"`
}

// Event is a single trace record.
type Event struct {
	Time     time.Time
	Seq      uint64
	Kind     Kind
	Scope    Scope
	SpanID   uint64
	ParentID uint64
	Name     string // "tokenize", "lex", "file:gcd.pl0", "identsym"
	Detail   string
	Attrs    []Attr
}
