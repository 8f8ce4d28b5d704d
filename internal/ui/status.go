package ui

import (
	"github.com/charmbracelet/lipgloss"

	"pl0lex/internal/driver"
)

// fileState - что видит пользователь в строке файла.
type fileState uint8

const (
	stateQueued fileState = iota
	stateLoading
	stateCache
	stateLexing
	stateDone
	stateCached
	stateFailed
)

type stateInfo struct {
	label  string
	color  lipgloss.Color
	weight float64 // доля файла в общей полосе прогресса
}

var stateTable = [...]stateInfo{
	stateQueued:  {"queued", "7", 0},
	stateLoading: {"loading", "6", 0},
	stateCache:   {"cache", "6", 0.2},
	stateLexing:  {"lexing", "6", 0.5},
	stateDone:    {"done", "2", 1},
	stateCached:  {"cached", "2", 1},
	stateFailed:  {"error", "1", 1},
}

func (s fileState) String() string { return stateTable[s].label }

func (s fileState) final() bool { return s >= stateDone }

func (s fileState) style() lipgloss.Style {
	return lipgloss.NewStyle().Foreground(stateTable[s].color)
}

// stateOf maps a driver event to a row state; ok is false for events the UI ignores.
func stateOf(ev driver.ProgressEvent) (fileState, bool) {
	switch ev.Status {
	case driver.StatusQueued:
		return stateQueued, true
	case driver.StatusDone:
		if ev.Cached {
			return stateCached, true
		}
		return stateDone, true
	case driver.StatusError:
		return stateFailed, true
	case driver.StatusWorking:
		switch ev.Stage {
		case driver.StageLoad:
			return stateLoading, true
		case driver.StageCache:
			return stateCache, true
		case driver.StageLex:
			return stateLexing, true
		}
	}
	return stateQueued, false
}
