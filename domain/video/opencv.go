//go:build opencv

package video

import (
	"errors"
	"fmt"
	"image"
	"log/slog"

	"gocv.io/x/gocv"
)

// OpenCVAvailable reports whether the binary was built with the opencv tag.
const OpenCVAvailable = true

// OpenCVSource decodes a video file with OpenCV's VideoCapture, using the capture's
// own frame position and count properties.
type OpenCVSource struct {
	capture *gocv.VideoCapture
	frame   gocv.Mat
	logger  *slog.Logger
}

// OpenOpenCV opens path with OpenCV.
func OpenOpenCV(path string, logger *slog.Logger) (Source, error) {
	capture, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return nil, fmt.Errorf("open video %s: %w", path, err)
	}
	if !capture.IsOpened() {
		capture.Close()
		return nil, fmt.Errorf("open video %s: capture not opened", path)
	}
	s := &OpenCVSource{capture: capture, frame: gocv.NewMat(), logger: logger}
	if logger != nil {
		logger.Info("video opened", "path", path, "backend", "opencv", "frames", s.Length())
	}
	return s, nil
}

func (s *OpenCVSource) Read() (image.Image, error) {
	if ok := s.capture.Read(&s.frame); !ok || s.frame.Empty() {
		if n := s.Length(); n > 0 && s.Position() >= n {
			return nil, ErrEndOfStream
		}
		return nil, errors.New("opencv: frame decode failed")
	}
	img, err := s.frame.ToImage()
	if err != nil {
		return nil, fmt.Errorf("opencv: convert frame: %w", err)
	}
	return img, nil
}

func (s *OpenCVSource) Position() int {
	return int(s.capture.Get(gocv.VideoCapturePosFrames))
}

func (s *OpenCVSource) Length() int {
	n := int(s.capture.Get(gocv.VideoCaptureFrameCount))
	if n <= 0 {
		return UnknownLength
	}
	return n
}

func (s *OpenCVSource) Rewind() error {
	s.capture.Set(gocv.VideoCapturePosFrames, 0)
	return nil
}

func (s *OpenCVSource) Close() error {
	s.frame.Close()
	return s.capture.Close()
}
