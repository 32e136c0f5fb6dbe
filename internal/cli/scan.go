package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/backmassage/cropmaster/internal/check"
	"github.com/backmassage/cropmaster/internal/config"
	"github.com/backmassage/cropmaster/internal/display"
	"github.com/backmassage/cropmaster/internal/pipeline"
)

var scanCmd = &cobra.Command{
	Use:   "scan <dir>",
	Short: "Process every media file under a directory tree",
	Long: `Scan walks the directory for media files (.mp4, .mkv, .avi) and runs the
crop/audio pipeline over each one sequentially. Files whose name already
carries the processed marker are skipped.

Per-file encode failures are logged and the scan continues; only hard
errors (missing tools, invalid directory, subprocess failure) abort the
run with a nonzero exit.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg.ScanDir = config.NormalizeDirArg(args[0])
		cfg.MinCropPixels = scanMinCrop

		log, err := setup()
		if err != nil {
			return err
		}
		defer log.Close()

		display.PrintBanner()

		fi, err := os.Stat(cfg.ScanDir)
		if err != nil || !fi.IsDir() {
			return fmt.Errorf("not a directory: %s", cfg.ScanDir)
		}

		if err := check.Deps(); err != nil {
			return err
		}

		ctx, cancel := signalContext(log)
		defer cancel()

		if _, err := pipeline.Run(ctx, &cfg, log); err != nil {
			log.Error("%v", err)
			return err
		}
		return nil
	},
}

// scanMinCrop is bound per command so scan and event can carry different
// defaults for the same config knob.
var scanMinCrop int

func init() {
	// Scan treats any real removal as significant; the legacy directory
	// variant re-encoded on every non-null crop.
	scanCmd.Flags().IntVar(&scanMinCrop, "min-crop", 1,
		"Minimum vertical pixels a crop must remove to trigger a re-encode")
}
