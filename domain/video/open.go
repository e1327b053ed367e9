package video

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/soocke/parking-watch-go/config"
)

// OpenSource opens the frame source selected by cfg.Source.
func OpenSource(cfg *config.Config, logger *slog.Logger) (Source, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	switch cfg.Source {
	case config.SourceVideo, "":
		src, err := OpenFFmpeg(cfg.VideoPath, logger)
		if err != nil {
			return nil, err
		}
		return src, nil
	case config.SourceOpenCV:
		return OpenOpenCV(cfg.VideoPath, logger)
	case config.SourceImage:
		src, err := OpenImage(cfg.VideoPath)
		if err != nil {
			return nil, err
		}
		return src, nil
	case config.SourceScreen:
		sel := image.Rect(cfg.ScreenX, cfg.ScreenY, cfg.ScreenX+cfg.ScreenW, cfg.ScreenY+cfg.ScreenH)
		return NewScreenSource(sel), nil
	default:
		return nil, fmt.Errorf("video: unknown source %q", cfg.Source)
	}
}
