package vision

import (
	"image"
	"log/slog"

	"github.com/soocke/parking-watch-go/config"
)

// Processor turns a colour frame into the binary foreground mask.
type Processor interface {
	Process(frame image.Image) *image.Gray
}

// NewProcessor picks the pipeline for cfg: OpenCV's own filters when frames come
// from OpenCV, the pure Go Pipeline otherwise.
func NewProcessor(cfg *config.Config, logger *slog.Logger) (Processor, error) {
	opts := OptionsFromConfig(cfg)
	if cfg != nil && cfg.Source == config.SourceOpenCV {
		p, err := NewOpenCVPipeline(opts, logger)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
	return NewPipeline(opts), nil
}
