// Package scan runs the occupancy classifier over a source once, without a window.
package scan

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"

	"github.com/soocke/parking-watch-go/domain/parking"
	"github.com/soocke/parking-watch-go/domain/video"
)

// ErrUnbounded is returned when a source has no end and no frame limit was set.
var ErrUnbounded = errors.New("scan: source has no end, set a frame limit")

// Processor turns a frame into the binary occupancy map.
type Processor interface {
	Process(frame image.Image) *image.Gray
}

// Options controls a scan.
type Options struct {
	// Every classifies only every Nth frame; values below 1 mean every frame.
	Every int
	// Limit stops after this many frames have been read; 0 reads to the end.
	Limit int
}

// Result is the classification of one frame.
type Result struct {
	Frame     int
	Occupancy parking.Occupancy
	Image     image.Image
}

// Summary aggregates a finished scan.
type Summary struct {
	FramesRead       int
	FramesClassified int
	MinFree          int
	MaxFree          int
	MeanFree         float64
	Last             parking.Occupancy
}

// Scanner classifies frames of a single pass over a source.
type Scanner struct {
	Source     video.Source
	Pipeline   Processor
	Classifier *parking.Classifier
	Logger     *slog.Logger
	// OnFrame is called after every frame read, classified or not.
	// res is nil for frames that were skipped.
	OnFrame func(read int, res *Result)
}

// Run reads the source until it ends, the limit is reached or ctx is cancelled.
// Cancellation is reported as ctx.Err() alongside the partial summary.
func (s *Scanner) Run(ctx context.Context, opts Options) (Summary, error) {
	var sum Summary
	if s == nil || s.Source == nil || s.Pipeline == nil || s.Classifier == nil {
		return sum, errors.New("scan: scanner not configured")
	}
	if opts.Every < 1 {
		opts.Every = 1
	}
	if opts.Limit <= 0 && s.Source.Length() == video.UnknownLength {
		return sum, ErrUnbounded
	}

	totalFree := 0
	for opts.Limit <= 0 || sum.FramesRead < opts.Limit {
		if err := ctx.Err(); err != nil {
			return finish(sum, totalFree), err
		}
		frame, err := s.Source.Read()
		if errors.Is(err, video.ErrEndOfStream) {
			break
		}
		if err != nil {
			return finish(sum, totalFree), fmt.Errorf("frame %d: %w", sum.FramesRead, err)
		}
		sum.FramesRead++
		if sum.FramesRead%opts.Every != 0 {
			if s.OnFrame != nil {
				s.OnFrame(sum.FramesRead, nil)
			}
			continue
		}

		occ := s.Classifier.Classify(s.Pipeline.Process(frame))
		if sum.FramesClassified == 0 || occ.Free < sum.MinFree {
			sum.MinFree = occ.Free
		}
		if occ.Free > sum.MaxFree {
			sum.MaxFree = occ.Free
		}
		sum.FramesClassified++
		totalFree += occ.Free
		sum.Last = occ
		if s.Logger != nil {
			s.Logger.Debug("frame", "index", sum.FramesRead, "free", occ.Free, "total", occ.Total)
		}
		if s.OnFrame != nil {
			s.OnFrame(sum.FramesRead, &Result{Frame: sum.FramesRead, Occupancy: occ, Image: frame})
		}
	}
	return finish(sum, totalFree), nil
}

func finish(sum Summary, totalFree int) Summary {
	if sum.FramesClassified > 0 {
		sum.MeanFree = float64(totalFree) / float64(sum.FramesClassified)
	}
	return sum
}
