package video

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
)

// ErrEndOfStream is returned by Read once a finite source has no more frames.
// It is io.EOF itself, so a bare io.EOF from any Source counts as end of stream.
// Truncated input such as a wrapped io.ErrUnexpectedEOF does not.
var ErrEndOfStream = io.EOF

// UnknownLength is reported by sources that cannot tell how many frames they hold.
const UnknownLength = -1

// Source produces decoded frames in order.
type Source interface {
	// Read decodes the next frame and advances the position by one.
	Read() (image.Image, error)
	// Position is the index of the frame the next Read returns.
	Position() int
	// Length is the number of frames, or UnknownLength.
	Length() int
	// Rewind moves the position back to the first frame.
	Rewind() error
	Close() error
}

// Looping wraps a Source so that reaching its end restarts it from the first frame.
type Looping struct {
	src    Source
	logger *slog.Logger
	loops  int
}

// Loop returns a looping view of src.
func Loop(src Source, logger *slog.Logger) *Looping {
	return &Looping{src: src, logger: logger}
}

// Loops reports how many times the source has been rewound.
func (l *Looping) Loops() int { return l.loops }

// Read returns the next frame, rewinding first when the position equals the length.
// A source that ends before its advertised length is rewound once as well; any other
// failure is returned to the caller.
func (l *Looping) Read() (image.Image, error) {
	if n := l.src.Length(); n > 0 && l.src.Position() >= n {
		if err := l.rewind(); err != nil {
			return nil, err
		}
	}
	img, err := l.src.Read()
	if err == nil {
		return img, nil
	}
	if !errors.Is(err, ErrEndOfStream) || l.src.Position() == 0 {
		return nil, err
	}
	if err := l.rewind(); err != nil {
		return nil, err
	}
	return l.src.Read()
}

func (l *Looping) rewind() error {
	if err := l.src.Rewind(); err != nil {
		return fmt.Errorf("rewind: %w", err)
	}
	l.loops++
	if l.logger != nil {
		l.logger.Debug("video.loop", "loops", l.loops)
	}
	return nil
}

func (l *Looping) Position() int { return l.src.Position() }
func (l *Looping) Length() int   { return l.src.Length() }
func (l *Looping) Rewind() error { return l.src.Rewind() }
func (l *Looping) Close() error  { return l.src.Close() }
