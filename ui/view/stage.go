package view

import (
	"image"

	"github.com/soocke/parking-watch-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// Stage shows the current frame in a single label and maps clicks on it back to
// frame coordinates.
type Stage interface {
	Show(img image.Image)
	Reset()
	ToSource(x, y int) image.Point
	Widget() *LabelWidget
}

// stageBorder is the label's border and padding. The image is anchored at the
// top-left corner, so this is also its offset inside the label.
const stageBorder = 0

type stage struct {
	label     *LabelWidget
	maxW      int
	maxH      int
	scale     float64
	prevPhoto *Img // last Tk photo, deleted before replacement
}

// NewStage creates the frame label and grids it at the given row.
// Frames larger than maxW×maxH are shrunk for display only.
func NewStage(row, maxW, maxH int) Stage {
	placeholder := image.NewRGBA(image.Rect(0, 0, 320, 180))
	photo := NewPhoto(Data(images.EncodePNG(placeholder)))
	lbl := Label(Image(photo), Anchor("nw"),
		Borderwidth(stageBorder), Highlightthickness(0), Padx(stageBorder), Pady(stageBorder))
	Grid(lbl, Row(row), Column(0), Columnspan(2), Sticky("nw"), Padx("0.4m"), Pady("0.4m"))
	return &stage{label: lbl, maxW: maxW, maxH: maxH, scale: 1, prevPhoto: photo}
}

func (s *stage) Show(img image.Image) {
	if s == nil || s.label == nil || img == nil {
		return
	}
	s.scale = images.ScaleFactor(img.Bounds(), s.maxW, s.maxH)
	pngBytes := images.EncodePNG(images.ScaleToFit(img, s.maxW, s.maxH))
	if s.prevPhoto != nil {
		s.prevPhoto.Delete()
	}
	s.prevPhoto = NewPhoto(Data(pngBytes))
	s.label.Configure(Image(s.prevPhoto))
}

func (s *stage) Reset() {
	if s == nil || s.label == nil {
		return
	}
	if s.prevPhoto != nil {
		s.prevPhoto.Delete()
		s.prevPhoto = nil
	}
	s.scale = 1
}

// ToSource converts label coordinates to frame coordinates.
func (s *stage) ToSource(x, y int) image.Point {
	if s == nil {
		return image.Pt(x, y)
	}
	return images.DisplayToSource(image.Pt(x, y), image.Pt(stageBorder, stageBorder), s.scale)
}

func (s *stage) Widget() *LabelWidget {
	if s == nil {
		return nil
	}
	return s.label
}
