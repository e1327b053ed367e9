//go:build !opencv

package video

import (
	"errors"
	"log/slog"
)

// OpenCVAvailable reports whether the binary was built with the opencv tag.
const OpenCVAvailable = false

// OpenOpenCV is unavailable without the opencv build tag.
func OpenOpenCV(path string, logger *slog.Logger) (Source, error) {
	return nil, errors.New("video: built without opencv support (rebuild with -tags opencv)")
}
