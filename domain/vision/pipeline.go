package vision

import (
	"image"

	"github.com/soocke/parking-watch-go/config"
)

// Options configures the occupancy pre-processing pipeline.
type Options struct {
	BlurKernel       int
	BlurSigma        float64
	AdaptiveBlock    int
	AdaptiveC        float64
	MedianAperture   int
	DilateKernel     int
	DilateIterations int
}

// DefaultOptions returns the parameters the pipeline was tuned with.
func DefaultOptions() Options {
	return OptionsFromConfig(config.DefaultConfig())
}

// OptionsFromConfig extracts pipeline options from cfg, falling back to defaults for nil.
func OptionsFromConfig(cfg *config.Config) Options {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	return Options{
		BlurKernel:       cfg.BlurKernel,
		BlurSigma:        cfg.BlurSigma,
		AdaptiveBlock:    cfg.AdaptiveBlock,
		AdaptiveC:        cfg.AdaptiveC,
		MedianAperture:   cfg.MedianAperture,
		DilateKernel:     cfg.DilateKernel,
		DilateIterations: cfg.DilateIterations,
	}
}

// Stages keeps every intermediate image of one pipeline run.
type Stages struct {
	Gray      *image.Gray
	Blur      *image.Gray
	Threshold *image.Gray
	Median    *image.Gray
	Dilate    *image.Gray
}

// Pipeline turns a colour frame into a binary foreground mask. The stage order is
// fixed: grayscale, gaussian blur, inverse adaptive threshold, median blur, dilation.
type Pipeline struct {
	opts Options
}

func NewPipeline(opts Options) *Pipeline { return &Pipeline{opts: opts} }

// Options returns the options the pipeline runs with.
func (p *Pipeline) Options() Options { return p.opts }

// Process returns the final foreground mask for frame.
func (p *Pipeline) Process(frame image.Image) *image.Gray {
	if frame == nil {
		return nil
	}
	return p.Stages(frame).Dilate
}

// Stages runs the pipeline and returns every intermediate image.
func (p *Pipeline) Stages(frame image.Image) Stages {
	var s Stages
	if frame == nil {
		return s
	}
	o := p.opts
	s.Gray = Grayscale(frame)
	s.Blur = GaussianBlur(s.Gray, o.BlurKernel, o.BlurSigma, BorderReflect101)
	s.Threshold = AdaptiveThresholdInv(s.Blur, 255, o.AdaptiveBlock, o.AdaptiveC)
	s.Median = MedianBlur(s.Threshold, o.MedianAperture)
	s.Dilate = Dilate(s.Median, o.DilateKernel, o.DilateIterations)
	return s
}
