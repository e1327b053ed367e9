package presenter

import (
	"context"
	"errors"
	"fmt"
	"image"
	"testing"

	"github.com/soocke/parking-watch-go/domain/parking"
	"github.com/soocke/parking-watch-go/ui/model"
)

func TestDecide(t *testing.T) {
	readErr := errors.New("decode failed")
	openErr := errors.New("no regions")
	tests := []struct {
		name  string
		ev    Event
		phase model.Phase
		mode  model.Mode
		cause error
		want  Step
	}{
		{"generate quit in editor starts monitor", EventQuit, model.PhaseEditing, model.ModeGenerate, nil, Step{Next: model.PhaseMonitoring}},
		{"edit quit in editor stops", EventQuit, model.PhaseEditing, model.ModeEdit, nil, Step{Next: model.PhaseStopped}},
		{"generate quit while monitoring stops", EventQuit, model.PhaseMonitoring, model.ModeGenerate, nil, Step{Next: model.PhaseStopped}},
		{"load quit stops", EventQuit, model.PhaseMonitoring, model.ModeLoad, nil, Step{Next: model.PhaseStopped}},
		{"interrupt while editing", EventInterrupt, model.PhaseEditing, model.ModeGenerate, nil, Step{Next: model.PhaseStopped, Err: ErrInterrupted}},
		{"interrupt while monitoring", EventInterrupt, model.PhaseMonitoring, model.ModeLoad, nil, Step{Next: model.PhaseStopped, Err: ErrInterrupted}},
		{"read failure stops cleanly", EventMonitorFailed, model.PhaseMonitoring, model.ModeLoad, readErr, Step{Next: model.PhaseStopped}},
		{"monitor setup failure is returned", EventSetupFailed, model.PhaseEditing, model.ModeGenerate, openErr, Step{Next: model.PhaseStopped, Err: openErr}},
		{"already stopped ignores events", EventInterrupt, model.PhaseStopped, model.ModeLoad, nil, Step{Next: model.PhaseStopped}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.ev, tt.phase, tt.mode, tt.cause)
			if got.Next != tt.want.Next || !errors.Is(got.Err, tt.want.Err) || (got.Err == nil) != (tt.want.Err == nil) {
				t.Fatalf("got %+v want %+v", got, tt.want)
			}
		})
	}
}

func TestExitStatus(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name    string
		in      error
		wantMsg string
		wantErr error
	}{
		{"clean exit", nil, "", nil},
		{"interrupt", ErrInterrupted, InterruptedMessage, nil},
		{"wrapped interrupt", fmt.Errorf("start: %w", ErrInterrupted), InterruptedMessage, nil},
		{"cancelled scan", context.Canceled, InterruptedMessage, nil},
		{"failure", boom, "", boom},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg, err := ExitStatus(tt.in)
			if msg != tt.wantMsg {
				t.Fatalf("message %q want %q", msg, tt.wantMsg)
			}
			if err != tt.wantErr {
				t.Fatalf("err %v want %v", err, tt.wantErr)
			}
		})
	}
}

type brokenSource struct{}

func (brokenSource) Read() (image.Image, error) { return nil, errors.New("corrupt packet") }
func (brokenSource) Loops() int                 { return 0 }

// A decode failure reported through the loop ends monitoring with a nil error.
func TestLoop_DecodeFailureStopsCleanly(t *testing.T) {
	cls := parking.NewClassifier(nil, parking.DefaultSize, parking.DefaultThreshold, nil)
	var step Step
	l := &Loop{
		Monitor: NewMonitorPresenter(brokenSource{}, stubProcessor{}, cls, &mockView{}, nil, nil),
		OnError: func(err error) {
			step = Decide(EventMonitorFailed, model.PhaseMonitoring, model.ModeLoad, err)
		},
		Schedule: func() { t.Fatal("loop rescheduled after read failure") },
	}
	l.Tick()
	if step.Next != model.PhaseStopped || step.Err != nil {
		t.Fatalf("got %+v", step)
	}
	msg, err := ExitStatus(step.Err)
	if msg != "" || err != nil {
		t.Fatalf("exit status %q %v", msg, err)
	}
}
