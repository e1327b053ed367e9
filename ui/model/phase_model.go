package model

import (
	"sync/atomic"
)

// Phase is the stage of the application shown in the window.
type Phase int32

const (
	PhaseIdle Phase = iota
	PhaseEditing
	PhaseMonitoring
	PhaseStopped
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseEditing:
		return "editing"
	case PhaseMonitoring:
		return "monitoring"
	case PhaseStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// PhaseModel tracks the current phase. The zero value is idle and usable.
// Concurrency-safe because the interrupt path and Tk callbacks may race.
type PhaseModel struct{ phase atomic.Int32 }

// Phase returns the current phase.
func (m *PhaseModel) Phase() Phase {
	if m == nil {
		return PhaseStopped
	}
	return Phase(m.phase.Load())
}

// SetPhase moves to p and reports whether the phase changed.
// Stopped is terminal: once reached, later transitions are ignored.
func (m *PhaseModel) SetPhase(p Phase) bool {
	if m == nil {
		return false
	}
	for {
		prev := m.phase.Load()
		if Phase(prev) == p || Phase(prev) == PhaseStopped {
			return false
		}
		if m.phase.CompareAndSwap(prev, int32(p)) {
			return true
		}
	}
}

// Stopped reports whether the stopped phase was reached.
func (m *PhaseModel) Stopped() bool { return m.Phase() == PhaseStopped }
