package model

import "fmt"

// Mode selects which phases the window runs through.
type Mode int

const (
	// ModeLoad runs the occupancy monitor on the saved region list.
	ModeLoad Mode = iota
	// ModeGenerate runs the region editor and then the monitor.
	ModeGenerate
	// ModeEdit runs the region editor only.
	ModeEdit
)

func (m Mode) String() string {
	switch m {
	case ModeLoad:
		return "load"
	case ModeGenerate:
		return "generate"
	case ModeEdit:
		return "edit"
	default:
		return "unknown"
	}
}

// ParseMode maps the --mode flag value to a Mode. The editor-only mode has its
// own command and is not accepted here.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "load", "":
		return ModeLoad, nil
	case "generate":
		return ModeGenerate, nil
	default:
		return ModeLoad, fmt.Errorf("unknown mode %q (want load or generate)", s)
	}
}

// FirstPhase is the phase the window opens in.
func (m Mode) FirstPhase() Phase {
	if m == ModeLoad {
		return PhaseMonitoring
	}
	return PhaseEditing
}
