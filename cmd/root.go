package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/soocke/parking-watch-go/app"
	"github.com/soocke/parking-watch-go/config"
	"github.com/soocke/parking-watch-go/debug"
	"github.com/soocke/parking-watch-go/ui/model"
	"github.com/soocke/parking-watch-go/ui/presenter"
)

// Version is the application version.
const Version = "0.1.0"

const title = "Parking Watch"

var (
	cfg        *config.Config
	logger     *slog.Logger
	configPath string
	mode       string
	debugMode  bool
)

var rootCmd = &cobra.Command{
	Use:           "parkwatch",
	Short:         "Parking space occupancy from a fixed camera",
	Version:       Version, // This enables the --version flag
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if debugMode {
			loaded.Debug = true
			loaded.LogLevel = "debug"
		}
		if err := loaded.Validate(); err != nil {
			return fmt.Errorf("invalid config %s: %w", configPath, err)
		}
		cfg = loaded
		logger = NewLogger(parseLevel(cfg.LogLevel), cfg.LogFile)
		if cfg.Debug {
			debug.StartGoroutineLogger(cmd.Context(), 5*time.Second, logger)
			debug.StartMemLogger(cmd.Context(), 5*time.Second, logger)
		}
		logger.Debug("config loaded", "path", configPath, "source", cfg.Source, "regions", cfg.RegionFile)
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := model.ParseMode(mode)
		if err != nil {
			return fmt.Errorf("invalid --mode: %w", err)
		}
		return runApp(cmd.Context(), m)
	},
}

// runApp opens the window in the given mode and blocks until it closes.
func runApp(ctx context.Context, m model.Mode) error {
	msg, err := presenter.ExitStatus(app.NewApp(title, m, cfg, logger).Start(ctx))
	if msg != "" {
		fmt.Println(msg)
	}
	return err
}

func Execute() {
	// Create a context that listens for Ctrl+C (SIGINT) or Kill (SIGTERM)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVarP(&mode, "mode", "m", "load", "load: monitor saved regions; generate: mark regions first, then monitor")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "parkwatch.json", "Path to the JSON config file")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Debug logging and runtime stats")
}
