//go:build !opencv

package vision

import (
	"errors"
	"log/slog"
)

// OpenCVAvailable reports whether the binary was built with the opencv tag.
const OpenCVAvailable = false

// NewOpenCVPipeline is unavailable without the opencv build tag.
func NewOpenCVPipeline(opts Options, logger *slog.Logger) (Processor, error) {
	return nil, errors.New("vision: built without opencv support (rebuild with -tags opencv)")
}
