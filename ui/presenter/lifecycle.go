package presenter

import (
	"context"
	"errors"

	"github.com/soocke/parking-watch-go/ui/model"
)

// ErrInterrupted is returned by the app when the context was cancelled by a signal.
var ErrInterrupted = errors.New("interrupted")

// InterruptedMessage is printed when a signal ends the program.
const InterruptedMessage = "Program terminated by keyboard interrupt"

// Event is something that may move the window to another phase.
type Event int

const (
	// EventQuit is the quit key or the window close button.
	EventQuit Event = iota
	// EventInterrupt is a SIGINT or SIGTERM seen by the update loop.
	EventInterrupt
	// EventMonitorFailed is a frame read error while monitoring.
	EventMonitorFailed
	// EventSetupFailed is a failure to open the monitor after leaving the editor.
	EventSetupFailed
)

// Step is the reaction to an Event: the phase to enter and, when that phase is
// PhaseStopped, the error the app returns.
type Step struct {
	Next model.Phase
	Err  error
}

// Decide maps an event in the given phase and mode to the next step. err is the
// cause carried by EventMonitorFailed and EventSetupFailed.
func Decide(ev Event, phase model.Phase, mode model.Mode, err error) Step {
	if phase == model.PhaseStopped {
		return Step{Next: model.PhaseStopped}
	}
	switch ev {
	case EventQuit:
		if phase == model.PhaseEditing && mode == model.ModeGenerate {
			return Step{Next: model.PhaseMonitoring}
		}
		return Step{Next: model.PhaseStopped}
	case EventInterrupt:
		return Step{Next: model.PhaseStopped, Err: ErrInterrupted}
	case EventMonitorFailed:
		// a broken stream ends monitoring the same way the quit key does
		return Step{Next: model.PhaseStopped}
	case EventSetupFailed:
		return Step{Next: model.PhaseStopped, Err: err}
	default:
		return Step{Next: phase}
	}
}

// ExitStatus maps the error a run ended with to the message to print and the error
// the command returns. Interrupts print InterruptedMessage and exit cleanly.
func ExitStatus(err error) (string, error) {
	if errors.Is(err, ErrInterrupted) || errors.Is(err, context.Canceled) {
		return InterruptedMessage, nil
	}
	return "", err
}
