package video

import (
	"errors"
	"fmt"
	"image"

	"github.com/vova616/screenshot"
)

// ScreenSource grabs live frames from the desktop, optionally restricted to a
// rectangle. It never ends, so its length is unknown and it cannot loop.
type ScreenSource struct {
	rect   *image.Rectangle
	grab   func() (*image.RGBA, error)
	pos    int
	closed bool
}

// NewScreenSource captures sel, or the whole screen when sel is empty.
func NewScreenSource(sel image.Rectangle) *ScreenSource {
	s := &ScreenSource{}
	if !sel.Empty() {
		r := sel
		s.rect = &r
		s.grab = func() (*image.RGBA, error) { return screenshot.CaptureRect(r) }
	} else {
		s.grab = screenshot.CaptureScreen
	}
	return s
}

// Rect returns the captured rectangle, nil for full screen.
func (s *ScreenSource) Rect() *image.Rectangle { return s.rect }

func (s *ScreenSource) Read() (image.Image, error) {
	if s.closed {
		return nil, errors.New("video: source closed")
	}
	img, err := s.grab()
	if err != nil {
		return nil, fmt.Errorf("capture screen: %w", err)
	}
	if img == nil {
		return nil, errors.New("capture screen: empty frame")
	}
	s.pos++
	return img, nil
}

func (s *ScreenSource) Position() int { return s.pos }
func (s *ScreenSource) Length() int   { return UnknownLength }

// Rewind only resets the frame counter; a live feed has no start to return to.
func (s *ScreenSource) Rewind() error {
	s.pos = 0
	return nil
}

func (s *ScreenSource) Close() error {
	s.closed = true
	return nil
}
