package app

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/soocke/parking-watch-go/config"
	"github.com/soocke/parking-watch-go/domain/parking"
	"github.com/soocke/parking-watch-go/domain/video"
	"github.com/soocke/parking-watch-go/domain/vision"
	"github.com/soocke/parking-watch-go/ui/images"
	"github.com/soocke/parking-watch-go/ui/model"
	"github.com/soocke/parking-watch-go/ui/presenter"
	"github.com/soocke/parking-watch-go/ui/view"
)

// AppContainer assembles models, services, presenters and the root view.
type AppContainer struct {
	Config   *config.Config
	Logger   *slog.Logger
	Store    *parking.FileStore
	Size     parking.Size
	Phase    *model.PhaseModel
	Monitor  *model.MonitorModel
	RootView *view.RootView

	// Editor phase
	Editor          *parking.Editor
	Reference       image.Image
	EditorPresenter *presenter.EditorPresenter

	// Monitor phase
	Pipeline         vision.Processor
	Classifier       *parking.Classifier
	Source           video.Source
	Looping          *video.Looping
	MonitorPresenter *presenter.MonitorPresenter
}

// BuildContainer constructs the phase-independent components. It has no side effects.
func BuildContainer(cfg *config.Config, logger *slog.Logger) *AppContainer {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	c := &AppContainer{Config: cfg, Logger: logger}
	c.Store = parking.NewFileStore(cfg.RegionFile)
	c.Size = parking.Size{Width: cfg.RegionWidth, Height: cfg.RegionHeight}
	c.Phase = &model.PhaseModel{}
	c.Monitor = model.NewMonitorModel()
	c.RootView = view.NewRootView(cfg, logger)
	return c
}

// BuildEditor loads the reference image and the current region list.
func (c *AppContainer) BuildEditor() error {
	ref, err := video.LoadImage(c.Config.ReferenceImage)
	if err != nil {
		return fmt.Errorf("reference image: %w", err)
	}
	c.Reference = ref
	c.Editor = parking.NewEditor(c.Store, c.Size, c.Logger)
	c.EditorPresenter = presenter.NewEditorPresenter(c.Editor, c.Reference, c.RootView, c.Logger)
	return nil
}

// BuildMonitor loads the region list, picks the frame pipeline and opens the
// configured video source. A missing region list is fatal here, unlike in the editor.
func (c *AppContainer) BuildMonitor() error {
	cls, err := parking.LoadClassifier(c.Store, c.Config, c.Logger)
	if err != nil {
		return err
	}
	proc, err := vision.NewProcessor(c.Config, c.Logger)
	if err != nil {
		return fmt.Errorf("frame pipeline: %w", err)
	}
	src, err := video.OpenSource(c.Config, c.Logger)
	if err != nil {
		return fmt.Errorf("video source: %w", err)
	}
	c.Pipeline = proc
	c.Classifier = cls
	c.Source = src
	c.Looping = video.Loop(src, c.Logger)
	c.MonitorPresenter = presenter.NewMonitorPresenter(c.Looping, c.Pipeline, cls, c.RootView, c.Monitor, c.Logger)
	c.MonitorPresenter.Thickness = images.Thickness{Free: c.Config.FreeThickness, Occupied: c.Config.OccupiedThickness}
	return nil
}

// Close releases the video source, if one was opened.
func (c *AppContainer) Close() error {
	if c == nil || c.Source == nil {
		return nil
	}
	err := c.Source.Close()
	c.Source = nil
	return err
}
