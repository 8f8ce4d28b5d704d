package lexer

import (
	"fmt"
	"math"
	"strings"

	"pl0lex/internal/diag"
	"pl0lex/internal/source"
)

const (
	// DefaultMaxIdentLength bounds identifiers and numeric literals.
	DefaultMaxIdentLength = 255
	// DefaultMaxNumber is the largest literal value (a 16-bit signed word).
	DefaultMaxNumber int64 = math.MaxInt16
	// MinIdentLength is the smallest accepted length bound.
	MinIdentLength = 1
	// MaxIdentLimit is the largest accepted length bound.
	MaxIdentLimit = 1 << 16
)

// Mode selects what happens after a lexical error.
type Mode uint8

const (
	// ModeHalt stops at the first lexical error.
	ModeHalt Mode = iota
	// ModeRecover emits an Invalid token and resumes at the next trivia boundary.
	ModeRecover
)

func (m Mode) String() string {
	switch m {
	case ModeHalt:
		return "halt"
	case ModeRecover:
		return "recover"
	}
	return "unknown"
}

// ParseMode converts "halt" or "recover" to a Mode.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "halt":
		return ModeHalt, nil
	case "recover":
		return ModeRecover, nil
	}
	return ModeHalt, fmt.Errorf("invalid lexer mode %q (expected halt|recover)", s)
}

type Options struct {
	Reporter       diag.Reporter // может быть nil - тогда ошибки только возвращаются
	Mode           Mode
	MaxIdentLength int   // 0 - DefaultMaxIdentLength, больше MaxIdentLimit урезается
	MaxNumber      int64 // 0 - DefaultMaxNumber
	File           source.FileID
	Filename       string
}

// WithDefaults fills zero limits and the filename with their defaults.
func (o Options) WithDefaults() Options {
	if o.MaxIdentLength <= 0 {
		o.MaxIdentLength = DefaultMaxIdentLength
	}
	o.MaxIdentLength = min(o.MaxIdentLength, MaxIdentLimit)
	if o.MaxNumber <= 0 {
		o.MaxNumber = DefaultMaxNumber
	}
	if o.Filename == "" {
		o.Filename = "<input>"
	}
	return o
}

func (lx *Lexer) report(e *Error) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(e.Code, diag.SevError, e.Span, e.Msg, nil)
	}
}
