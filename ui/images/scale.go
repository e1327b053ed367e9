package images

import (
	"bytes"
	"image"
	"image/png"
	"math"

	"github.com/disintegration/imaging"
)

// EncodePNG encodes an image to PNG bytes. Errors are ignored and may return an empty slice.
func EncodePNG(img image.Image) []byte {
	if img == nil {
		return nil
	}
	var buf bytes.Buffer
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	_ = enc.Encode(&buf, img)
	return buf.Bytes()
}

// ScaleToFit shrinks src with nearest-neighbour sampling so it fits within maxW×maxH,
// preserving aspect ratio. Images that already fit are returned unchanged, so click
// coordinates on an unscaled preview map 1:1 onto the source.
func ScaleToFit(src image.Image, maxW, maxH int) image.Image {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	if maxW < 1 || maxH < 1 || (b.Dx() <= maxW && b.Dy() <= maxH) {
		return src
	}
	return imaging.Fit(src, maxW, maxH, imaging.NearestNeighbor)
}

// ScaleFactor returns the ratio between the displayed and source widths for ScaleToFit.
func ScaleFactor(src image.Rectangle, maxW, maxH int) float64 {
	if maxW < 1 || maxH < 1 || (src.Dx() <= maxW && src.Dy() <= maxH) {
		return 1
	}
	rw := float64(maxW) / float64(src.Dx())
	rh := float64(maxH) / float64(src.Dy())
	if rh < rw {
		return rh
	}
	return rw
}

// DisplayToSource maps a point on a widget showing a ScaleToFit preview back to
// source pixels. inset is the offset of the image's top-left corner inside the
// widget and scale is the ScaleFactor the preview was made with.
func DisplayToSource(p, inset image.Point, scale float64) image.Point {
	p = p.Sub(inset)
	if scale <= 0 || scale == 1 {
		return p
	}
	return image.Pt(int(math.Floor(float64(p.X)/scale)), int(math.Floor(float64(p.Y)/scale)))
}
