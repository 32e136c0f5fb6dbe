// Package cli wires the cobra command tree: scan, event, check, version.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/backmassage/cropmaster/internal/config"
	"github.com/backmassage/cropmaster/internal/logging"
)

var (
	version = "dev"
	cfg     = config.Default()
)

// SetVersion sets the application version (called from main).
func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "cropmaster",
	Short: "Letterbox-stripping post-processor for downloaded media",
	Long: `Cropmaster post-processes video files after download: it detects
letterboxing with ffmpeg's cropdetect filter, strips it via a single
re-encode, transcodes lossless TrueHD audio to AC3, and atomically
replaces the original file. A failed encode always leaves the original
untouched.

Run it as a Radarr/Sonarr custom script ("event") or over a directory
tree ("scan").`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the command tree and returns the process exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "cropmaster: %v\n", err)
		return 1
	}
	return 0
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.IntVar(&cfg.CRF, "crf", cfg.CRF, "x264 constant rate factor")
	pf.StringVar(&cfg.Preset, "preset", cfg.Preset, "x264 preset (e.g. slow, medium)")
	pf.BoolVar(&cfg.DryRun, "dry-run", false, "Preview only; do not encode or replace files")
	pf.BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose output")
	pf.StringVar(&cfg.LogFile, "log", "", "Append logs to file")
	pf.StringVar((*string)(&cfg.ColorMode), "color", string(cfg.ColorMode), "Colored logs: auto | always | never")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(eventCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup validates config and builds the logger; shared by the subcommands.
func setup() (*logging.Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return logging.New(&cfg)
}

// signalContext returns a context cancelled on SIGINT/SIGTERM so the
// pipeline can stop between files and subprocesses get killed instead of
// hanging the run.
func signalContext(log *logging.Logger) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Warn("Received interrupt, stopping")
		cancel()
	}()
	return ctx, cancel
}
