package images

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Overlay palette.
var (
	Green       = color.RGBA{0, 255, 0, 255}
	Red         = color.RGBA{255, 0, 0, 255}
	Magenta     = color.RGBA{255, 0, 255, 255}
	BannerGreen = color.RGBA{0, 200, 0, 255}
	White       = color.RGBA{255, 255, 255, 255}
)

var face font.Face = basicfont.Face7x13

// ToRGBA returns a drawable copy of img whose bounds start at (0,0).
func ToRGBA(img image.Image) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst
}

func fill(dst draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(dst, r.Intersect(dst.Bounds()), &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// DrawRect outlines the rectangle spanning r.Min to r.Max inclusive. Each edge is
// thickness pixels wide and centred on the edge line.
func DrawRect(dst draw.Image, r image.Rectangle, c color.Color, thickness int) {
	if thickness < 1 {
		thickness = 1
	}
	lo := thickness / 2
	hi := thickness - lo
	x0, y0, x1, y1 := r.Min.X, r.Min.Y, r.Max.X, r.Max.Y
	fill(dst, image.Rect(x0-lo, y0-lo, x1+hi, y0+hi), c) // top
	fill(dst, image.Rect(x0-lo, y1-lo, x1+hi, y1+hi), c) // bottom
	fill(dst, image.Rect(x0-lo, y0-lo, x0+hi, y1+hi), c) // left
	fill(dst, image.Rect(x1-lo, y0-lo, x1+hi, y1+hi), c) // right
}

// TextStyle controls PutTextRect.
type TextStyle struct {
	Scale     int
	Thickness int
	Text      color.Color
	Box       color.Color
	Offset    int
}

// TextSize returns the pixel width and cap height of text at the given scale.
func TextSize(text string, scale int) (int, int) {
	if scale < 1 {
		scale = 1
	}
	w := font.MeasureString(face, text).Ceil()
	h := face.Metrics().Ascent.Ceil()
	return w * scale, h * scale
}

// PutTextRect draws text with its baseline starting at pos on top of a filled box
// that extends Offset pixels around the text. It returns the box.
func PutTextRect(dst draw.Image, text string, pos image.Point, st TextStyle) image.Rectangle {
	if st.Scale < 1 {
		st.Scale = 1
	}
	if st.Text == nil {
		st.Text = White
	}
	w, h := TextSize(text, st.Scale)
	box := image.Rect(pos.X-st.Offset, pos.Y-h-st.Offset, pos.X+w+st.Offset, pos.Y+st.Offset)
	if st.Box != nil {
		fill(dst, box, st.Box)
	}

	m := face.Metrics()
	glyphW := font.MeasureString(face, text).Ceil()
	ascent := m.Ascent.Ceil()
	mask := image.NewAlpha(image.Rect(0, 0, glyphW+1, ascent+m.Descent.Ceil()))
	d := &font.Drawer{Dst: mask, Src: image.Opaque, Face: face, Dot: fixed.P(0, ascent)}
	d.DrawString(text)
	if st.Thickness > st.Scale {
		// heavier strokes: overstrike one pixel to the right
		d.Dot = fixed.P(1, ascent)
		d.DrawString(text)
	}

	var scaled image.Image = mask
	if st.Scale > 1 {
		mb := mask.Bounds()
		scaled = imaging.Resize(mask, mb.Dx()*st.Scale, mb.Dy()*st.Scale, imaging.NearestNeighbor)
	}
	sb := scaled.Bounds()
	at := image.Rect(pos.X, pos.Y-h, pos.X+sb.Dx(), pos.Y-h+sb.Dy())
	draw.DrawMask(dst, at, &image.Uniform{C: st.Text}, image.Point{}, scaled, sb.Min, draw.Over)
	return box
}
