package images

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/soocke/parking-watch-go/domain/parking"
)

func TestDrawRect_Thickness(t *testing.T) {
	tests := []struct {
		name      string
		thickness int
		inside    image.Point // pixel just inside the top-left corner
		wantSet   bool
	}{
		{"thin", 2, image.Pt(11, 11), false},
		{"thick", 4, image.Pt(11, 11), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img := image.NewRGBA(image.Rect(0, 0, 50, 50))
			DrawRect(img, image.Rect(10, 10, 30, 20), Red, tt.thickness)
			if img.RGBAAt(10, 10) != Red || img.RGBAAt(30, 20) != Red {
				t.Fatal("corners not drawn")
			}
			if got := img.RGBAAt(tt.inside.X, tt.inside.Y) == Red; got != tt.wantSet {
				t.Fatalf("inner pixel set=%v want %v", got, tt.wantSet)
			}
			if img.RGBAAt(20, 15) == Red {
				t.Fatal("interior filled")
			}
		})
	}
}

func TestDrawRect_ClipsAtEdges(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	DrawRect(img, image.Rect(-5, -5, 50, 50), Green, 4)
	if img.RGBAAt(5, 5) == Green {
		t.Fatal("unexpected fill inside clipped rectangle")
	}
}

func TestPutTextRect_BoxAroundText(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 400, 200))
	box := PutTextRect(img, "Free: 1/1", image.Pt(100, 50), TextStyle{Scale: 3, Thickness: 4, Box: BannerGreen, Offset: 20})
	w, h := TextSize("Free: 1/1", 3)
	want := image.Rect(80, 50-h-20, 100+w+20, 70)
	if box != want {
		t.Fatalf("box %v want %v", box, want)
	}
	if img.RGBAAt(81, 69) != BannerGreen {
		t.Fatal("box not filled")
	}
	white := 0
	for y := box.Min.Y; y < box.Max.Y; y++ {
		for x := box.Min.X; x < box.Max.X; x++ {
			if img.RGBAAt(x, y) == White {
				white++
			}
		}
	}
	if white == 0 {
		t.Fatal("no text drawn")
	}
}

func TestRenderOccupancy_Colours(t *testing.T) {
	frame := image.NewRGBA(image.Rect(0, 0, 640, 480))
	size := parking.DefaultSize
	occ := parking.Occupancy{
		Spaces: []parking.Space{
			{Region: parking.Region{X: 200, Y: 200}, Count: 10, Status: parking.StatusFree},
			{Region: parking.Region{X: 400, Y: 300}, Count: 2000, Status: parking.StatusOccupied},
		},
		Free:  1,
		Total: 2,
	}
	out := RenderOccupancy(frame, occ, size, DefaultThickness)
	if out.RGBAAt(250, 200) != Green {
		t.Fatalf("free outline colour %v", out.RGBAAt(250, 200))
	}
	if out.RGBAAt(450, 300) != Red {
		t.Fatalf("occupied outline colour %v", out.RGBAAt(450, 300))
	}
	// thick outline reaches one pixel further inward than the thin one
	if out.RGBAAt(250, 201) != Green || out.RGBAAt(450, 301) == Red {
		t.Fatal("outline thickness mismatch")
	}
	if frame.RGBAAt(250, 200) != (color.RGBA{}) {
		t.Fatal("source frame was modified")
	}
}

func TestRenderRegions(t *testing.T) {
	ref := image.NewRGBA(image.Rect(0, 0, 300, 200))
	out := RenderRegions(ref, []parking.Region{{X: 10, Y: 10}}, parking.DefaultSize)
	if out.RGBAAt(10, 30) != Magenta || out.RGBAAt(116, 30) != Magenta {
		t.Fatal("region outline missing")
	}
}

func TestScaleToFit(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1000, 500))
	if got := ScaleToFit(src, 2000, 2000); got != image.Image(src) {
		t.Fatal("image that fits should be returned as is")
	}
	got := ScaleToFit(src, 400, 400)
	if got.Bounds().Dx() != 400 || got.Bounds().Dy() != 200 {
		t.Fatalf("scaled bounds %v", got.Bounds())
	}
	if f := ScaleFactor(src.Bounds(), 400, 400); f != 0.4 {
		t.Fatalf("scale factor %v", f)
	}
}

func TestDisplayToSource(t *testing.T) {
	tests := []struct {
		name  string
		p     image.Point
		inset image.Point
		scale float64
		want  image.Point
	}{
		{"unscaled", image.Pt(123, 45), image.Point{}, 1, image.Pt(123, 45)},
		{"inset removed", image.Pt(12, 7), image.Pt(2, 2), 1, image.Pt(10, 5)},
		{"half size", image.Pt(50, 21), image.Point{}, 0.5, image.Pt(100, 42)},
		{"inset before scaling", image.Pt(52, 23), image.Pt(2, 2), 0.5, image.Pt(100, 42)},
		{"fractional scale floors", image.Pt(399, 199), image.Point{}, 0.4, image.Pt(997, 497)},
		{"left of the image", image.Pt(0, 0), image.Pt(1, 1), 0.5, image.Pt(-2, -2)},
		{"invalid scale treated as 1", image.Pt(9, 9), image.Point{}, 0, image.Pt(9, 9)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DisplayToSource(tt.p, tt.inset, tt.scale); got != tt.want {
				t.Fatalf("got %v want %v", got, tt.want)
			}
		})
	}
}

// A click on a displayed pixel lands inside the source pixel it was sampled from.
func TestDisplayToSource_RoundTripsScaleToFit(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 1920, 1080))
	scale := ScaleFactor(src.Bounds(), 1600, 900)
	shown := ScaleToFit(src, 1600, 900).Bounds()
	corner := DisplayToSource(shown.Max.Sub(image.Pt(1, 1)), image.Point{}, scale)
	if !corner.In(src.Bounds()) {
		t.Fatalf("bottom-right display pixel maps outside source: %v", corner)
	}
	if got := DisplayToSource(image.Point{}, image.Point{}, scale); got != (image.Point{}) {
		t.Fatalf("origin maps to %v", got)
	}
}

func TestEncodePNG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 3, 3))
	data := EncodePNG(src)
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil || img.Bounds() != src.Bounds() {
		t.Fatalf("decode: %v %v", err, img)
	}
	if EncodePNG(nil) != nil {
		t.Fatal("nil image should encode to nil")
	}
}
