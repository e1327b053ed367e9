package vision

import (
	"image"
)

// Crop copies the pixels of src inside r into a new image of exactly r.Dx()×r.Dy()
// whose bounds start at (0,0). Pixels of r that fall outside src are left at zero.
// inBounds reports whether r lies entirely within src.
func Crop(src *image.Gray, r image.Rectangle) (crop *image.Gray, inBounds bool) {
	w, h := r.Dx(), r.Dy()
	if w < 0 {
		w = 0
	}
	if h < 0 {
		h = 0
	}
	crop = image.NewGray(image.Rect(0, 0, w, h))
	if src == nil {
		return crop, false
	}
	b := src.Bounds()
	inBounds = r.In(b)
	visible := r.Intersect(b)
	if visible.Empty() {
		return crop, inBounds
	}
	for y := visible.Min.Y; y < visible.Max.Y; y++ {
		from := src.PixOffset(visible.Min.X, y)
		to := (y-r.Min.Y)*crop.Stride + (visible.Min.X - r.Min.X)
		copy(crop.Pix[to:to+visible.Dx()], src.Pix[from:from+visible.Dx()])
	}
	return crop, inBounds
}

// CountNonZero returns the number of pixels in img that are not zero.
func CountNonZero(img *image.Gray) int {
	if img == nil {
		return 0
	}
	w, h := img.Rect.Dx(), img.Rect.Dy()
	n := 0
	for y := 0; y < h; y++ {
		for _, v := range img.Pix[y*img.Stride : y*img.Stride+w] {
			if v != 0 {
				n++
			}
		}
	}
	return n
}
