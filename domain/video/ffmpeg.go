package video

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"io"
	"log/slog"
	"os"
	"os/exec"
)

// FFmpegSource decodes a video file through an ffmpeg child process that streams
// raw RGB24 frames on stdout. Rewinding restarts the process.
type FFmpegSource struct {
	path   string
	info   StreamInfo
	logger *slog.Logger

	cmd    *exec.Cmd
	out    io.ReadCloser
	reader *bufio.Reader
	stderr bytes.Buffer
	buf    []byte
	pos    int
}

// OpenFFmpeg probes path and starts decoding it. A missing file, or missing
// ffmpeg/ffprobe binaries, is an error.
func OpenFFmpeg(path string, logger *slog.Logger) (*FFmpegSource, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("open video: %w", err)
	}
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return nil, fmt.Errorf("ffmpeg not found: %w", err)
	}
	info, err := Probe(path)
	if err != nil {
		return nil, err
	}
	if info.Width <= 0 || info.Height <= 0 {
		return nil, fmt.Errorf("video %s: invalid frame size %dx%d", path, info.Width, info.Height)
	}
	s := &FFmpegSource{path: path, info: info, logger: logger, buf: make([]byte, info.Width*info.Height*3)}
	if err := s.start(); err != nil {
		return nil, err
	}
	if logger != nil {
		logger.Info("video opened", "path", path, "width", info.Width, "height", info.Height, "frames", info.Frames, "fps", info.FPS)
	}
	return s, nil
}

// NewFFmpegCmd builds the decoder command for path.
func NewFFmpegCmd(path string) *exec.Cmd {
	// -loglevel error keeps the stderr buffer small.
	return exec.Command("ffmpeg", "-hide_banner", "-loglevel", "error", "-i", path,
		"-f", "rawvideo", "-pix_fmt", "rgb24", "-")
}

func (s *FFmpegSource) start() error {
	cmd := NewFFmpegCmd(s.path)
	s.stderr.Reset()
	cmd.Stderr = &s.stderr
	out, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("ffmpeg stdout pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start ffmpeg: %w", err)
	}
	s.cmd, s.out = cmd, out
	s.reader = bufio.NewReaderSize(out, len(s.buf))
	s.pos = 0
	return nil
}

func (s *FFmpegSource) stop() error {
	if s.cmd == nil {
		return nil
	}
	s.out.Close()
	if s.cmd.Process != nil {
		_ = s.cmd.Process.Kill()
	}
	err := s.cmd.Wait()
	s.cmd, s.out, s.reader = nil, nil, nil
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		// killed on purpose
		return nil
	}
	return err
}

// Info returns the probed stream description.
func (s *FFmpegSource) Info() StreamInfo { return s.info }

func (s *FFmpegSource) Read() (image.Image, error) {
	if s.reader == nil {
		return nil, errors.New("video: source closed")
	}
	img, err := readRGB24(s.reader, s.buf, s.info.Width, s.info.Height)
	if err != nil {
		if errors.Is(err, ErrEndOfStream) {
			return nil, ErrEndOfStream
		}
		if s.stderr.Len() > 0 {
			return nil, fmt.Errorf("decode frame %d: %w (ffmpeg: %s)", s.pos, err, bytes.TrimSpace(s.stderr.Bytes()))
		}
		return nil, fmt.Errorf("decode frame %d: %w", s.pos, err)
	}
	s.pos++
	return img, nil
}

func (s *FFmpegSource) Position() int { return s.pos }
func (s *FFmpegSource) Length() int   { return s.info.Frames }

func (s *FFmpegSource) Rewind() error {
	if err := s.stop(); err != nil && s.logger != nil {
		s.logger.Warn("ffmpeg stop", "error", err)
	}
	return s.start()
}

func (s *FFmpegSource) Close() error { return s.stop() }

// readRGB24 reads one packed RGB24 frame of w×h pixels from r into an RGBA image.
// A clean end of input before the frame starts yields ErrEndOfStream; a partial
// frame yields io.ErrUnexpectedEOF.
func readRGB24(r io.Reader, buf []byte, w, h int) (*image.RGBA, error) {
	need := w * h * 3
	if len(buf) < need {
		buf = make([]byte, need)
	}
	buf = buf[:need]
	if _, err := io.ReadFull(r, buf); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEndOfStream
		}
		return nil, err
	}
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i, j := 0, 0; i < need; i, j = i+3, j+4 {
		img.Pix[j+0] = buf[i+0]
		img.Pix[j+1] = buf[i+1]
		img.Pix[j+2] = buf[i+2]
		img.Pix[j+3] = 0xFF
	}
	return img, nil
}
