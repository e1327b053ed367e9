package vision

import (
	"image"
	"image/draw"
)

// Fixed-point BT.601 luma weights (scaled by 1<<14), the same integers OpenCV
// uses for its 8-bit colour-to-gray conversion.
const (
	lumaR     = 4899
	lumaG     = 9617
	lumaB     = 1868
	lumaShift = 14
	lumaRound = 1 << (lumaShift - 1)
)

func luma(r, g, b uint8) uint8 {
	return uint8((uint32(r)*lumaR + uint32(g)*lumaG + uint32(b)*lumaB + lumaRound) >> lumaShift)
}

// Grayscale converts src to an 8-bit single channel image whose bounds start at (0,0).
func Grayscale(src image.Image) *image.Gray {
	if src == nil {
		return nil
	}
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	switch s := src.(type) {
	case *image.RGBA:
		for y := 0; y < h; y++ {
			row := s.Pix[s.PixOffset(b.Min.X, b.Min.Y+y):]
			out := dst.Pix[y*dst.Stride:]
			for x := 0; x < w; x++ {
				i := x * 4
				out[x] = luma(row[i], row[i+1], row[i+2])
			}
		}
	case *image.NRGBA:
		for y := 0; y < h; y++ {
			row := s.Pix[s.PixOffset(b.Min.X, b.Min.Y+y):]
			out := dst.Pix[y*dst.Stride:]
			for x := 0; x < w; x++ {
				i := x * 4
				out[x] = luma(row[i], row[i+1], row[i+2])
			}
		}
	case *image.Gray:
		draw.Draw(dst, dst.Bounds(), s, b.Min, draw.Src)
	default:
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				r, g, bl, _ := src.At(b.Min.X+x, b.Min.Y+y).RGBA()
				dst.Pix[y*dst.Stride+x] = luma(uint8(r>>8), uint8(g>>8), uint8(bl>>8))
			}
		}
	}
	return dst
}
