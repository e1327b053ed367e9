package view

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/soocke/parking-watch-go/config"
	"github.com/soocke/parking-watch-go/ui/theme"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

const (
	maxStageW = 1600
	maxStageH = 900
)

// Handlers are invoked on user input. Points are already in frame coordinates.
type Handlers struct {
	OnPrimary   func(p image.Point)
	OnSecondary func(p image.Point)
	OnQuit      func()
}

// UI abstracts the subset of view operations needed by presenters.
type UI interface {
	ShowFrame(img image.Image)
	SetMode(text string)
	SetStatus(text string)
}

// RootView composes the window: the stage on top and the status bar below.
type RootView struct {
	cfg    *config.Config
	logger *slog.Logger

	Stage  Stage
	Status StatusBar
}

func NewRootView(cfg *config.Config, logger *slog.Logger) *RootView {
	return &RootView{cfg: cfg, logger: logger}
}

// Build constructs the layout and binds mouse buttons, the quit key and window close.
func (rv *RootView) Build(title string, h Handlers) {
	if rv == nil {
		return
	}
	theme.InitStyles()
	App.WmTitle(title)
	WmProtocol(App, "WM_DELETE_WINDOW", func() {
		if h.OnQuit != nil {
			h.OnQuit()
		}
	})

	rv.Stage = NewStage(0, maxStageW, maxStageH)
	rv.Status = NewStatusBar(1)

	click := func(fn func(image.Point)) any {
		return Command(func(e *Event) {
			if fn == nil || e == nil {
				return
			}
			fn(rv.Stage.ToSource(e.X, e.Y))
		})
	}
	Bind(rv.Stage.Widget(), "<ButtonPress-1>", click(h.OnPrimary))
	Bind(rv.Stage.Widget(), "<ButtonPress-3>", click(h.OnSecondary))

	key := "q"
	if rv.cfg != nil && rv.cfg.QuitKey != "" {
		key = rv.cfg.QuitKey
	}
	Bind(App, fmt.Sprintf("<KeyPress-%s>", key), Command(func() {
		if h.OnQuit != nil {
			h.OnQuit()
		}
	}))
	if rv.logger != nil {
		rv.logger.Debug("window built", "title", title, "quit_key", key)
	}
}

// ShowFrame replaces the displayed frame.
func (rv *RootView) ShowFrame(img image.Image) {
	if rv != nil && rv.Stage != nil {
		rv.Stage.Show(img)
	}
}

// SetMode updates the mode label.
func (rv *RootView) SetMode(text string) {
	if rv != nil && rv.Status != nil {
		rv.Status.SetMode(text)
	}
}

// SetStatus updates the status label.
func (rv *RootView) SetStatus(text string) {
	if rv != nil && rv.Status != nil {
		rv.Status.SetStatus(text)
	}
}

// Release frees the displayed photo.
func (rv *RootView) Release() {
	if rv != nil && rv.Stage != nil {
		rv.Stage.Reset()
	}
}
