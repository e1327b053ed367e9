//go:build opencv

package vision

import (
	"image"
	"log/slog"

	"gocv.io/x/gocv"
)

// OpenCVAvailable reports whether the binary was built with the opencv tag.
const OpenCVAvailable = true

// OpenCVPipeline runs the Pipeline stages through gocv.
type OpenCVPipeline struct {
	opts     Options
	kernel   gocv.Mat
	fallback *Pipeline
	logger   *slog.Logger
}

// NewOpenCVPipeline builds the dilation kernel once; it lives as long as the process.
func NewOpenCVPipeline(opts Options, logger *slog.Logger) (Processor, error) {
	return &OpenCVPipeline{
		opts:     opts,
		kernel:   gocv.GetStructuringElement(gocv.MorphRect, image.Pt(opts.DilateKernel, opts.DilateKernel)),
		fallback: NewPipeline(opts),
		logger:   logger,
	}, nil
}

// Process returns the final foreground mask for frame. Frames gocv cannot convert
// go through the pure Go pipeline instead.
func (p *OpenCVPipeline) Process(frame image.Image) *image.Gray {
	if frame == nil {
		return nil
	}
	src, err := gocv.ImageToMatRGB(frame)
	if err != nil {
		return p.fallbackProcess(frame, err)
	}
	defer src.Close()

	o := p.opts
	gray := gocv.NewMat()
	defer gray.Close()
	gocv.CvtColor(src, &gray, gocv.ColorBGRToGray)

	blur := gocv.NewMat()
	defer blur.Close()
	gocv.GaussianBlur(gray, &blur, image.Pt(o.BlurKernel, o.BlurKernel), o.BlurSigma, o.BlurSigma, gocv.BorderReflect101)

	mask := gocv.NewMat()
	defer mask.Close()
	gocv.AdaptiveThreshold(blur, &mask, 255, gocv.AdaptiveThresholdGaussian, gocv.ThresholdBinaryInv, o.AdaptiveBlock, float32(o.AdaptiveC))

	median := gocv.NewMat()
	defer median.Close()
	gocv.MedianBlur(mask, &median, o.MedianAperture)

	for i := 0; i < o.DilateIterations; i++ {
		gocv.Dilate(median, &median, p.kernel)
	}

	img, err := median.ToImage()
	if err != nil {
		return p.fallbackProcess(frame, err)
	}
	g, ok := img.(*image.Gray)
	if !ok {
		return p.fallbackProcess(frame, nil)
	}
	return g
}

func (p *OpenCVPipeline) fallbackProcess(frame image.Image, err error) *image.Gray {
	if p.logger != nil {
		p.logger.Warn("opencv pipeline fell back to pure go", "error", err)
	}
	return p.fallback.Process(frame)
}
