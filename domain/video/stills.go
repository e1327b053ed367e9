package video

import (
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// Stills serves a fixed set of in-memory frames. It backs the "image" source and tests.
type Stills struct {
	frames []image.Image
	pos    int
	closed bool
}

// NewStills returns a source over frames.
func NewStills(frames ...image.Image) *Stills {
	return &Stills{frames: frames}
}

// OpenImage loads a still image from disk, honouring EXIF orientation, as a one-frame source.
func OpenImage(path string) (*Stills, error) {
	img, err := LoadImage(path)
	if err != nil {
		return nil, err
	}
	return NewStills(img), nil
}

// LoadImage decodes an image file into NRGBA.
func LoadImage(path string) (*image.NRGBA, error) {
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("open image %s: %w", path, err)
	}
	return imaging.Clone(img), nil
}

func (s *Stills) Read() (image.Image, error) {
	if s.closed {
		return nil, errors.New("video: source closed")
	}
	if s.pos >= len(s.frames) {
		return nil, ErrEndOfStream
	}
	img := s.frames[s.pos]
	s.pos++
	return img, nil
}

func (s *Stills) Position() int { return s.pos }
func (s *Stills) Length() int   { return len(s.frames) }

func (s *Stills) Rewind() error {
	s.pos = 0
	return nil
}

func (s *Stills) Close() error {
	s.closed = true
	return nil
}
