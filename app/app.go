package app

import (
	"context"
	"image"
	"log/slog"
	"time"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"

	"github.com/soocke/parking-watch-go/config"
	"github.com/soocke/parking-watch-go/domain/parking"
	"github.com/soocke/parking-watch-go/ui/model"
	"github.com/soocke/parking-watch-go/ui/presenter"
	"github.com/soocke/parking-watch-go/ui/view"
)

type app struct {
	title  string
	mode   model.Mode
	config *config.Config
	logger *slog.Logger
	c      *AppContainer

	tick    time.Duration
	afterID string
	loop    *presenter.Loop
	err     error
}

func NewApp(title string, mode model.Mode, cfg *config.Config, logger *slog.Logger) *app {
	a := &app{title: title, mode: mode, config: cfg, logger: logger}
	a.c = BuildContainer(cfg, logger)
	a.tick = time.Duration(a.c.Config.PollIntervalMS) * time.Millisecond
	if a.tick <= 0 {
		a.tick = 10 * time.Millisecond
	}
	return a
}

// Start prepares the first phase, opens the window and blocks until it closes.
// Setup failures are returned before any window is shown. A signal ends it with
// presenter.ErrInterrupted.
func (a *app) Start(ctx context.Context) error {
	first := a.mode.FirstPhase()
	if first == model.PhaseEditing {
		if err := a.c.BuildEditor(); err != nil {
			return err
		}
	} else if err := a.c.BuildMonitor(); err != nil {
		return err
	}

	a.c.RootView.Build(a.title, view.Handlers{
		OnPrimary:   func(p image.Point) { a.onClick(parking.ButtonPrimary, p) },
		OnSecondary: func(p image.Point) { a.onClick(parking.ButtonSecondary, p) },
		OnQuit:      a.exitHandler,
	})
	a.loop = &presenter.Loop{
		Done:        ctx.Done(),
		OnInterrupt: a.interrupt,
		OnError:     a.monitorFailed,
		Schedule:    a.scheduleUpdate,
	}
	a.enter(first)

	// Kick off update loop.
	a.scheduleUpdate()
	App.Wait()

	if err := a.c.Close(); err != nil && a.logger != nil {
		a.logger.Warn("video source close", "error", err)
	}
	return a.err
}

func (a *app) enter(p model.Phase) {
	if !a.c.Phase.SetPhase(p) {
		return
	}
	a.c.RootView.SetMode(p.String())
	switch p {
	case model.PhaseEditing:
		a.loop.Monitor = nil
		a.c.EditorPresenter.Render()
	case model.PhaseMonitoring:
		a.loop.Monitor = a.c.MonitorPresenter
	}
	if a.logger != nil {
		a.logger.Info("phase", "phase", p.String())
	}
}

func (a *app) onClick(b parking.Button, p image.Point) {
	if a.c.Phase.Phase() != model.PhaseEditing {
		return
	}
	a.c.EditorPresenter.OnClick(b, p)
}

func (a *app) update() {
	if a.c.Phase.Stopped() {
		return
	}
	a.loop.Tick()
}

func (a *app) scheduleUpdate() {
	// Schedule the next update using TclAfter to stay on Tk's event loop thread.
	a.afterID = TclAfter(a.tick, func() { a.update() })
}

// exitHandler handles the quit key and window close.
func (a *app) exitHandler() {
	a.apply(presenter.Decide(presenter.EventQuit, a.c.Phase.Phase(), a.mode, nil))
}

func (a *app) interrupt() {
	a.apply(presenter.Decide(presenter.EventInterrupt, a.c.Phase.Phase(), a.mode, nil))
}

func (a *app) monitorFailed(err error) {
	if a.logger != nil {
		a.logger.Error("monitor stopped", "error", err)
	}
	a.apply(presenter.Decide(presenter.EventMonitorFailed, a.c.Phase.Phase(), a.mode, err))
}

// apply carries out a step. Entering the monitor opens the video source first;
// a failure there stops the window with that error.
func (a *app) apply(s presenter.Step) {
	switch s.Next {
	case model.PhaseMonitoring:
		if err := a.c.BuildMonitor(); err != nil {
			a.apply(presenter.Decide(presenter.EventSetupFailed, a.c.Phase.Phase(), a.mode, err))
			return
		}
		a.enter(model.PhaseMonitoring)
	case model.PhaseStopped:
		a.stop(s.Err)
	}
}

func (a *app) stop(err error) {
	if !a.c.Phase.SetPhase(model.PhaseStopped) {
		return
	}
	a.err = err
	// Cancel scheduled after event if any.
	if a.afterID != "" {
		TclAfterCancel(a.afterID)
	}
	a.c.RootView.Release()
	Destroy(App)
}
