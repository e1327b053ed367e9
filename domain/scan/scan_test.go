package scan

import (
	"context"
	"errors"
	"image"
	"testing"

	"github.com/soocke/parking-watch-go/domain/parking"
	"github.com/soocke/parking-watch-go/domain/video"
)

// valueProcessor maps a frame to a mask filled with the frame's first red value.
type valueProcessor struct{}

func (valueProcessor) Process(frame image.Image) *image.Gray {
	b := frame.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	r, _, _, _ := frame.At(b.Min.X, b.Min.Y).RGBA()
	for i := range out.Pix {
		out.Pix[i] = uint8(r >> 8)
	}
	return out
}

func frame(v uint8) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 300, 200))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

func newScanner(src video.Source) *Scanner {
	regions := []parking.Region{{X: 10, Y: 10}, {X: 150, Y: 100}}
	return &Scanner{
		Source:     src,
		Pipeline:   valueProcessor{},
		Classifier: parking.NewClassifier(regions, parking.DefaultSize, parking.DefaultThreshold, nil),
	}
}

func TestScanner_Run(t *testing.T) {
	tests := []struct {
		name           string
		opts           Options
		wantRead       int
		wantClassified int
		wantMin        int
		wantMax        int
	}{
		{name: "every frame", opts: Options{}, wantRead: 4, wantClassified: 4, wantMin: 0, wantMax: 2},
		{name: "every second", opts: Options{Every: 2}, wantRead: 4, wantClassified: 2, wantMin: 0, wantMax: 0},
		{name: "limited", opts: Options{Limit: 1}, wantRead: 1, wantClassified: 1, wantMin: 2, wantMax: 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// black frames leave both regions free, white frames fill them
			src := video.NewStills(frame(0), frame(255), frame(0), frame(255))
			s := newScanner(src)
			var seen int
			s.OnFrame = func(int, *Result) { seen++ }
			sum, err := s.Run(context.Background(), tt.opts)
			if err != nil {
				t.Fatalf("run: %v", err)
			}
			if sum.FramesRead != tt.wantRead || sum.FramesClassified != tt.wantClassified {
				t.Fatalf("read=%d classified=%d", sum.FramesRead, sum.FramesClassified)
			}
			if sum.MinFree != tt.wantMin || sum.MaxFree != tt.wantMax {
				t.Fatalf("min=%d max=%d", sum.MinFree, sum.MaxFree)
			}
			if seen != tt.wantRead {
				t.Fatalf("callback saw %d frames", seen)
			}
		})
	}
}

func TestScanner_MeanAndLast(t *testing.T) {
	s := newScanner(video.NewStills(frame(0), frame(255)))
	sum, err := s.Run(context.Background(), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if sum.MeanFree != 1 {
		t.Fatalf("mean %v", sum.MeanFree)
	}
	if sum.Last.Free != 0 || sum.Last.Total != 2 {
		t.Fatalf("last %+v", sum.Last)
	}
}

func TestScanner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	s := newScanner(video.NewStills(frame(0)))
	if _, err := s.Run(ctx, Options{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
}

type endless struct{ *video.Stills }

func (endless) Length() int { return video.UnknownLength }

func TestScanner_UnboundedNeedsLimit(t *testing.T) {
	s := newScanner(endless{video.NewStills(frame(0))})
	if _, err := s.Run(context.Background(), Options{}); !errors.Is(err, ErrUnbounded) {
		t.Fatalf("expected ErrUnbounded, got %v", err)
	}
}

func TestScanner_NotConfigured(t *testing.T) {
	var s *Scanner
	if _, err := s.Run(context.Background(), Options{}); err == nil {
		t.Fatal("expected error")
	}
}
