package video

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/soocke/parking-watch-go/config"
)

func frameWithValue(v uint8) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

func valueOf(img image.Image) uint8 {
	r, _, _, _ := img.At(0, 0).RGBA()
	return uint8(r >> 8)
}

func TestLooping_WrapsToFirstFrame(t *testing.T) {
	src := NewStills(frameWithValue(0), frameWithValue(1), frameWithValue(2))
	l := Loop(src, nil)
	want := []uint8{0, 1, 2, 0, 1, 2, 0}
	for i, w := range want {
		img, err := l.Read()
		if err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
		if got := valueOf(img); got != w {
			t.Fatalf("read %d: got frame %d want %d", i, got, w)
		}
	}
	if l.Loops() != 2 {
		t.Fatalf("expected 2 rewinds, got %d", l.Loops())
	}
}

// shortSource advertises more frames than it delivers.
type shortSource struct {
	*Stills
	advertised int
}

func (s *shortSource) Length() int { return s.advertised }

func TestLooping_EarlyEndRewinds(t *testing.T) {
	src := &shortSource{Stills: NewStills(frameWithValue(7), frameWithValue(8)), advertised: 10}
	l := Loop(src, nil)
	var got []uint8
	for i := 0; i < 3; i++ {
		img, err := l.Read()
		if err != nil {
			t.Fatalf("read %d: %v", i, err)
		}
		got = append(got, valueOf(img))
	}
	if !bytes.Equal(got, []byte{7, 8, 7}) {
		t.Fatalf("got %v", got)
	}
}

func TestLooping_EmptySourceStops(t *testing.T) {
	l := Loop(NewStills(), nil)
	if _, err := l.Read(); !errors.Is(err, ErrEndOfStream) {
		t.Fatalf("expected end of stream, got %v", err)
	}
}

type failingSource struct{ Stills }

func (f *failingSource) Read() (image.Image, error) { return nil, errors.New("corrupt packet") }

func TestLooping_DecodeFailureSurfaces(t *testing.T) {
	l := Loop(&failingSource{}, nil)
	if _, err := l.Read(); err == nil || errors.Is(err, ErrEndOfStream) {
		t.Fatalf("expected decode error, got %v", err)
	}
}

// truncatedSource delivers one frame and then fails mid-frame.
type truncatedSource struct{ *Stills }

func (s *truncatedSource) Read() (image.Image, error) {
	if s.Position() > 0 {
		return nil, fmt.Errorf("ffmpeg: short frame: %w", io.ErrUnexpectedEOF)
	}
	return s.Stills.Read()
}

func (s *truncatedSource) Length() int { return UnknownLength }

func TestLooping_TruncatedFrameIsNotEndOfStream(t *testing.T) {
	l := Loop(&truncatedSource{Stills: NewStills(frameWithValue(3), frameWithValue(4))}, nil)
	if _, err := l.Read(); err != nil {
		t.Fatalf("first read: %v", err)
	}
	_, err := l.Read()
	if !errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, ErrEndOfStream) {
		t.Fatalf("expected unexpected EOF, got %v", err)
	}
	if l.Loops() != 0 {
		t.Fatalf("truncated source was rewound %d times", l.Loops())
	}
}

func TestStills_ClosedRead(t *testing.T) {
	s := NewStills(frameWithValue(1))
	_ = s.Close()
	if _, err := s.Read(); err == nil {
		t.Fatal("expected error after close")
	}
}

func TestOpenImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ref.png")
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	img.SetRGBA(1, 1, color.RGBA{200, 10, 10, 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	f.Close()

	src, err := OpenImage(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if src.Length() != 1 {
		t.Fatalf("length %d", src.Length())
	}
	got, err := src.Read()
	if err != nil {
		t.Fatal(err)
	}
	if got.Bounds().Dx() != 4 || got.Bounds().Dy() != 3 {
		t.Fatalf("bounds %v", got.Bounds())
	}
	if _, err := OpenImage(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Fatal("expected error for missing image")
	}
}

func TestReadRGB24(t *testing.T) {
	data := []byte{
		1, 2, 3, 4, 5, 6,
		7, 8, 9, 10, 11, 12,
		99, // start of a truncated frame
	}
	r := bytes.NewReader(data)
	img, err := readRGB24(r, nil, 2, 2)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if c := img.RGBAAt(1, 1); c != (color.RGBA{10, 11, 12, 255}) {
		t.Fatalf("pixel (1,1) = %v", c)
	}
	if _, err := readRGB24(r, nil, 2, 2); !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Fatalf("expected truncated frame error, got %v", err)
	}
	if _, err := readRGB24(bytes.NewReader(nil), nil, 2, 2); !errors.Is(err, ErrEndOfStream) {
		t.Fatalf("expected end of stream, got %v", err)
	}
}

func TestParseProbe(t *testing.T) {
	tests := []struct {
		name   string
		json   string
		want   StreamInfo
		hasErr bool
	}{
		{
			name: "metadata count",
			json: `{"streams":[{"width":1100,"height":720,"nb_frames":"1450","r_frame_rate":"25/1"}]}`,
			want: StreamInfo{Width: 1100, Height: 720, Frames: 1450, FPS: 25},
		},
		{
			name: "missing count",
			json: `{"streams":[{"width":640,"height":480,"nb_frames":"N/A","r_frame_rate":"30000/1001"}]}`,
			want: StreamInfo{Width: 640, Height: 480, Frames: UnknownLength, FPS: 30000.0 / 1001.0},
		},
		{
			name: "packet count",
			json: `{"streams":[{"nb_read_packets":"42"}]}`,
			want: StreamInfo{Frames: 42},
		},
		{name: "no streams", json: `{"streams":[]}`, hasErr: true},
		{name: "garbage", json: `nope`, hasErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseProbe([]byte(tt.json))
			if tt.hasErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("got %+v want %+v", got, tt.want)
			}
		})
	}
}

func TestOpenSource_ImageAndUnknown(t *testing.T) {
	path := filepath.Join(t.TempDir(), "still.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	_ = png.Encode(f, image.NewRGBA(image.Rect(0, 0, 8, 8)))
	f.Close()

	cfg := config.DefaultConfig()
	cfg.Source = config.SourceImage
	cfg.VideoPath = path
	src, err := OpenSource(cfg, nil)
	if err != nil {
		t.Fatalf("open image source: %v", err)
	}
	defer src.Close()
	if src.Length() != 1 {
		t.Fatalf("length %d", src.Length())
	}

	cfg.Source = "webcam"
	if _, err := OpenSource(cfg, nil); err == nil {
		t.Fatal("expected error for unknown source")
	}
}

func TestOpenFFmpeg_MissingFile(t *testing.T) {
	if _, err := OpenFFmpeg(filepath.Join(t.TempDir(), "carPark.mp4"), nil); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected not-exist error, got %v", err)
	}
}
