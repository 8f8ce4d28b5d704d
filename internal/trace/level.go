package trace

import (
	"fmt"
	"strings"
)

// Level controls tracing verbosity.
type Level uint8

const (
	LevelOff    Level = iota // no tracing
	LevelError               // only error events
	LevelPhase               // run and phase spans
	LevelDetail              // plus per-file spans
	LevelDebug               // plus every token
)

var levelNames = [...]string{"off", "error", "phase", "detail", "debug"}

// maxScope - самый мелкий scope, который проходит на уровне.
var maxScope = [...]Scope{LevelOff: 0, LevelError: 0, LevelPhase: ScopePhase, LevelDetail: ScopeFile, LevelDebug: ScopeToken}

func (l Level) String() string {
	if int(l) < len(levelNames) {
		return levelNames[l]
	}
	return "unknown"
}

// ParseLevel converts off|error|phase|detail|debug to a Level. Empty means off.
func ParseLevel(s string) (Level, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return LevelOff, nil
	}
	for i, name := range levelNames {
		if name == s {
			return Level(i), nil
		}
	}
	return LevelOff, fmt.Errorf("invalid trace level: %q (expected: %s)", s, strings.Join(levelNames[:], "|"))
}

// ShouldEmit reports whether spans and points of scope pass this level.
func (l Level) ShouldEmit(scope Scope) bool {
	return int(l) < len(maxScope) && scope != 0 && scope <= maxScope[l]
}

// Allows reports whether ev passes this level. Errors pass every enabled level.
func (l Level) Allows(ev *Event) bool {
	if l == LevelOff || ev == nil {
		return false
	}
	return ev.Kind == KindError || l.ShouldEmit(ev.Scope)
}
