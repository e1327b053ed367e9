package debug

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestLoggers_StopWithContext(t *testing.T) {
	out := &syncBuffer{}
	logger := slog.New(slog.NewJSONHandler(out, nil))
	ctx, cancel := context.WithCancel(context.Background())
	StartGoroutineLogger(ctx, 10*time.Millisecond, logger)
	StartMemLogger(ctx, 10*time.Millisecond, logger)

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		s := out.String()
		if strings.Contains(s, "goroutine-stacks") && strings.Contains(s, "memstats") {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	cancel()
	s := out.String()
	if !strings.Contains(s, "goroutine-stacks") || !strings.Contains(s, "memstats") {
		t.Fatalf("expected both loggers to emit, got %q", s)
	}
}
