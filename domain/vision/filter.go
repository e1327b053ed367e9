package vision

import (
	"image"
	"math"
)

// Border selects how pixels outside the image are synthesised.
type Border int

const (
	// BorderReflect101 mirrors around the edge pixel: gfedcb|abcdefgh|gfedcba.
	BorderReflect101 Border = iota
	// BorderReplicate repeats the edge pixel: aaaaaa|abcdefgh|hhhhhhh.
	BorderReplicate
)

func (b Border) index(i, n int) int {
	if i >= 0 && i < n {
		return i
	}
	if n == 1 {
		return 0
	}
	if b == BorderReplicate {
		if i < 0 {
			return 0
		}
		return n - 1
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i
		} else {
			i = 2*n - 2 - i
		}
	}
	return i
}

// GaussianKernel returns a normalised 1-D Gaussian of the given odd size.
// A non-positive sigma is derived from the size the way OpenCV does.
func GaussianKernel(size int, sigma float64) []float64 {
	if size < 1 {
		size = 1
	}
	if sigma <= 0 {
		sigma = 0.3*((float64(size)-1)*0.5-1) + 0.8
	}
	k := make([]float64, size)
	half := (size - 1) / 2
	scale := -0.5 / (sigma * sigma)
	sum := 0.0
	for i := 0; i < size; i++ {
		x := float64(i - half)
		k[i] = math.Exp(scale * x * x)
		sum += k[i]
	}
	for i := range k {
		k[i] /= sum
	}
	return k
}

// kernelBits is the number of fraction bits in a FixedGaussianKernel tap.
const kernelBits = 8

// FixedGaussianKernel quantises GaussianKernel to taps with kernelBits fraction
// bits, diffusing the rounding error from the tails inward. The centre tap takes
// the remainder so the taps sum to exactly 1<<kernelBits. OpenCV blurs 8-bit
// images with the same kernel. size must be odd.
func FixedGaussianKernel(size int, sigma float64) []uint32 {
	k := GaussianKernel(size, sigma)
	n := len(k)
	out := make([]uint32, n)
	one := float64(uint32(1) << kernelBits)
	var carry float64
	var sum uint32
	for i := 0; i < n/2; i++ {
		adj := k[i]*one + carry
		v := math.RoundToEven(adj)
		carry = adj - v
		out[i], out[n-1-i] = uint32(v), uint32(v)
		sum += 2 * uint32(v)
	}
	out[n/2] = uint32(one) - sum
	return out
}

// GaussianBlur applies a separable size×size Gaussian filter in fixed point: the
// row pass keeps kernelBits fraction bits, the column pass twice that, and the
// result is rounded half up.
func GaussianBlur(src *image.Gray, size int, sigma float64, border Border) *image.Gray {
	return separable(src, FixedGaussianKernel(size, sigma), border)
}

func separable(src *image.Gray, k []uint32, border Border) *image.Gray {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return dst
	}
	half := len(k) / 2
	tmp := make([]uint32, w*h)
	for y := 0; y < h; y++ {
		row := src.Pix[y*src.Stride : y*src.Stride+w]
		for x := 0; x < w; x++ {
			var acc uint32
			for i, kv := range k {
				acc += kv * uint32(row[border.index(x+i-half, w)])
			}
			tmp[y*w+x] = acc
		}
	}
	const shift = 2 * kernelBits
	for y := 0; y < h; y++ {
		out := dst.Pix[y*dst.Stride:]
		for x := 0; x < w; x++ {
			var acc uint32
			for i, kv := range k {
				acc += kv * tmp[border.index(y+i-half, h)*w+x]
			}
			out[x] = uint8(min((acc+1<<(shift-1))>>shift, 255))
		}
	}
	return dst
}

// AdaptiveThresholdInv binarises src against a Gaussian-weighted local mean over a
// block×block neighbourhood. A pixel becomes maxVal when it is at least c levels darker
// than its local mean, and 0 otherwise (inverse binary).
func AdaptiveThresholdInv(src *image.Gray, maxVal uint8, block int, c float64) *image.Gray {
	mean := GaussianBlur(src, block, 0, BorderReplicate)
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	delta := int(math.Floor(c))
	for y := 0; y < h; y++ {
		s := src.Pix[y*src.Stride:]
		m := mean.Pix[y*mean.Stride:]
		out := dst.Pix[y*dst.Stride:]
		for x := 0; x < w; x++ {
			if int(s[x])-int(m[x]) <= -delta {
				out[x] = maxVal
			}
		}
	}
	return dst
}

// MedianBlur replaces every pixel with the median of its aperture×aperture
// neighbourhood, replicating edge pixels. It slides a 256-bin histogram along each row.
func MedianBlur(src *image.Gray, aperture int) *image.Gray {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return dst
	}
	if aperture < 1 {
		aperture = 1
	}
	half := aperture / 2
	rank := aperture * aperture / 2
	at := func(x, y int) uint8 {
		return src.Pix[BorderReplicate.index(y, h)*src.Stride+BorderReplicate.index(x, w)]
	}
	var hist [256]int
	for y := 0; y < h; y++ {
		hist = [256]int{}
		for dy := -half; dy <= half; dy++ {
			for dx := -half; dx <= half; dx++ {
				hist[at(dx, y+dy)]++
			}
		}
		out := dst.Pix[y*dst.Stride:]
		for x := 0; x < w; x++ {
			if x > 0 {
				for dy := -half; dy <= half; dy++ {
					hist[at(x-half-1, y+dy)]--
					hist[at(x+half, y+dy)]++
				}
			}
			seen := 0
			for v := 0; v < 256; v++ {
				seen += hist[v]
				if seen > rank {
					out[x] = uint8(v)
					break
				}
			}
		}
	}
	return dst
}

// Dilate grows bright regions with a size×size rectangle of ones, repeated iterations
// times. Pixels outside the image never contribute.
func Dilate(src *image.Gray, size, iterations int) *image.Gray {
	w, h := src.Rect.Dx(), src.Rect.Dy()
	cur := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		copy(cur.Pix[y*cur.Stride:y*cur.Stride+w], src.Pix[y*src.Stride:y*src.Stride+w])
	}
	half := size / 2
	for it := 0; it < iterations; it++ {
		horiz := image.NewGray(cur.Rect)
		for y := 0; y < h; y++ {
			row := cur.Pix[y*cur.Stride:]
			out := horiz.Pix[y*horiz.Stride:]
			for x := 0; x < w; x++ {
				var m uint8
				for xx := max(0, x-half); xx <= min(w-1, x+half); xx++ {
					if row[xx] > m {
						m = row[xx]
					}
				}
				out[x] = m
			}
		}
		next := image.NewGray(cur.Rect)
		for y := 0; y < h; y++ {
			out := next.Pix[y*next.Stride:]
			for x := 0; x < w; x++ {
				var m uint8
				for yy := max(0, y-half); yy <= min(h-1, y+half); yy++ {
					if v := horiz.Pix[yy*horiz.Stride+x]; v > m {
						m = v
					}
				}
				out[x] = m
			}
		}
		cur = next
	}
	return cur
}
