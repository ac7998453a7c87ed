// Package cmd implements the modalbox command line.
package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/go-drift/modalbox/cmd/modalbox/internal/config"
	"github.com/go-drift/modalbox/pkg/errors"
)

var (
	verbose    bool
	configPath string
	Logger     *slog.Logger

	rootCmd = &cobra.Command{
		Use:   "modalbox",
		Short: "Drive a modal overlay in the terminal",
		Long: `Modalbox runs the modal open/close engine against a terminal host.
Without a subcommand it starts the interactive demo. Options come from
modalbox.yaml, MODALBOX_* environment variables and flags, in that order.`,
		Example: `  modalbox
  modalbox --anchor bottom --easing ease-out
  modalbox simulate --steps open,wait:500ms,swipe:120,wait:500ms`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogger()
		},
		RunE: runDemo,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	defaults := config.Default().Modal

	flags := rootCmd.PersistentFlags()
	flags.BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	flags.StringVarP(&configPath, "config", "c", "", "Options file (default ./"+config.FileName+")")

	flags.String("anchor", defaults.Anchor, "Resting position: top, center or bottom")
	flags.String("entry", defaults.Entry, "Entry edge: auto, top or bottom")
	flags.Bool("swipe", defaults.SwipeToClose, "Enable swipe to close")
	flags.Float64("threshold", defaults.SwipeThreshold, "Swipe distance that commits a close")
	flags.Float64("swipe-area", defaults.SwipeArea, "Capture area below the modal's top edge (0 = unlimited)")
	flags.Bool("backdrop", defaults.Backdrop, "Show the dimming backdrop")
	flags.Float64("opacity", defaults.BackdropOpacity, "Backdrop opacity when open")
	flags.Duration("duration", defaults.AnimationDuration, "Transition duration")
	flags.String("easing", defaults.Easing, "Transition curve")
	flags.Bool("cover-screen", defaults.CoverScreen, "Present on the host instead of inline")
	flags.Bool("start-open", defaults.StartOpen, "Start open without animating")
	flags.Bool("back-button-close", defaults.BackButtonClose, "Close on back presses")
	flags.Int("fps", config.Default().Demo.FPS, "Frame rate")

	setupLogger()
}

// setupLogger configures the global slog logger and routes engine errors
// through it.
func setupLogger() {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts = &slog.HandlerOptions{
			Level:     slog.LevelDebug,
			AddSource: true,
		}
	}

	Logger = slog.New(slog.NewTextHandler(os.Stderr, opts))
	slog.SetDefault(Logger)
	errors.SetHandler(&errors.LogHandler{Logger: Logger, Verbose: verbose})

	if verbose {
		Logger.Debug("verbose logging enabled",
			"level", slog.LevelDebug.String(),
			"pid", os.Getpid())
	}
}

// loadOptions resolves the options file, environment and the flags of cmd.
func loadOptions(cmd *cobra.Command) (*config.File, error) {
	f, err := config.Resolve(configPath, cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("failed to load options: %w", err)
	}
	return f, nil
}
