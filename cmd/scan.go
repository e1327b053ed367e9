package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/disintegration/imaging"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/soocke/parking-watch-go/domain/parking"
	"github.com/soocke/parking-watch-go/domain/scan"
	"github.com/soocke/parking-watch-go/domain/video"
	"github.com/soocke/parking-watch-go/domain/vision"
	"github.com/soocke/parking-watch-go/ui/images"
	"github.com/soocke/parking-watch-go/ui/presenter"
)

type scanOptions struct {
	Every    int
	Limit    int
	Snapshot string
}

var scanOpts scanOptions

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Classify the video once without a window",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runScan(cmd.Context(), scanOpts)
	},
}

func init() {
	scanCmd.Flags().IntVarP(&scanOpts.Every, "every", "n", 1, "Classify every Nth frame")
	scanCmd.Flags().IntVarP(&scanOpts.Limit, "limit", "l", 0, "Stop after this many frames (required for screen capture)")
	scanCmd.Flags().StringVarP(&scanOpts.Snapshot, "snapshot", "s", "", "Write the last annotated frame to this image file")
	rootCmd.AddCommand(scanCmd)
}

func runScan(ctx context.Context, opts scanOptions) error {
	store := parking.NewFileStore(cfg.RegionFile)
	cls, err := parking.LoadClassifier(store, cfg, logger)
	if err != nil {
		return err
	}
	proc, err := vision.NewProcessor(cfg, logger)
	if err != nil {
		return fmt.Errorf("frame pipeline: %w", err)
	}
	src, err := video.OpenSource(cfg, logger)
	if err != nil {
		return fmt.Errorf("video source: %w", err)
	}
	defer src.Close()

	total := src.Length()
	if opts.Limit > 0 && (total < 0 || opts.Limit < total) {
		total = opts.Limit
	}
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Scanning"),
		progressbar.OptionSetWriter(os.Stderr), // Write bar to Stderr
		progressbar.OptionShowCount(),
	)

	var last *scan.Result
	s := &scan.Scanner{
		Source:     src,
		Pipeline:   proc,
		Classifier: cls,
		Logger:     logger,
		OnFrame: func(read int, res *scan.Result) {
			_ = bar.Add(1)
			if res != nil {
				last = res
			}
		},
	}
	sum, err := s.Run(ctx, scan.Options{Every: opts.Every, Limit: opts.Limit})
	_ = bar.Finish()
	fmt.Fprintln(os.Stderr)
	if err != nil {
		msg, err := presenter.ExitStatus(err)
		if msg != "" {
			fmt.Println(msg)
		}
		return err
	}

	logger.Info("scan complete",
		"frames_read", sum.FramesRead,
		"frames_classified", sum.FramesClassified,
		"min_free", sum.MinFree,
		"max_free", sum.MaxFree,
		"mean_free", sum.MeanFree,
		"total", sum.Last.Total,
	)
	fmt.Printf("Frames: %d read, %d classified\n", sum.FramesRead, sum.FramesClassified)
	fmt.Printf("Free: min %d, max %d, mean %.1f of %d\n", sum.MinFree, sum.MaxFree, sum.MeanFree, sum.Last.Total)

	if opts.Snapshot != "" && last != nil {
		th := images.Thickness{Free: cfg.FreeThickness, Occupied: cfg.OccupiedThickness}
		out := images.RenderOccupancy(last.Image, last.Occupancy, cls.Size(), th)
		if err := imaging.Save(out, opts.Snapshot); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
		logger.Info("snapshot written", "path", opts.Snapshot, "frame", last.Frame)
	}
	return nil
}
