package presenter

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/soocke/parking-watch-go/domain/parking"
	"github.com/soocke/parking-watch-go/ui/images"
)

// RegionEditor is the subset of parking.Editor the presenter drives.
type RegionEditor interface {
	HandleClick(button parking.Button, p image.Point) (bool, error)
	Regions() []parking.Region
	Size() parking.Size
}

// FrameView displays an annotated frame and a status line.
type FrameView interface {
	ShowFrame(img image.Image)
	SetStatus(text string)
}

// EditorPresenter forwards clicks to the editor and redraws the reference image
// with the current region outlines.
type EditorPresenter struct {
	editor    RegionEditor
	reference image.Image
	view      FrameView
	logger    *slog.Logger
}

func NewEditorPresenter(editor RegionEditor, reference image.Image, view FrameView, logger *slog.Logger) *EditorPresenter {
	return &EditorPresenter{editor: editor, reference: reference, view: view, logger: logger}
}

// Render draws the reference image with every region outlined.
func (p *EditorPresenter) Render() {
	if p == nil || p.editor == nil || p.view == nil || p.reference == nil {
		return
	}
	regions := p.editor.Regions()
	p.view.ShowFrame(images.RenderRegions(p.reference, regions, p.editor.Size()))
	p.view.SetStatus(fmt.Sprintf("Regions: %d   left click adds, right click removes", len(regions)))
}

// OnClick applies a click in reference image coordinates.
func (p *EditorPresenter) OnClick(button parking.Button, pt image.Point) {
	if p == nil || p.editor == nil {
		return
	}
	changed, err := p.editor.HandleClick(button, pt)
	if err != nil && p.logger != nil {
		p.logger.Error("region list not saved", "error", err)
	}
	if changed {
		p.Render()
	}
}
