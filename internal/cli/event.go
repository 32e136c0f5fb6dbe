package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/backmassage/cropmaster/internal/check"
	"github.com/backmassage/cropmaster/internal/event"
	"github.com/backmassage/cropmaster/internal/pipeline"
)

var eventCmd = &cobra.Command{
	Use:   "event",
	Short: "Process the file named by a Radarr/Sonarr download event",
	Long: `Event reads the Radarr/Sonarr custom-script environment variables
(radarr_eventtype / sonarr_eventtype and the matching *file_path) and
processes the downloaded file. Any event kind other than Download is a
soft no-op with exit 0, so the managers' connection tests and unrelated
hooks never fail.

Unlike scan, a failed encode exits nonzero so the manager records the
failure; the original file is still left untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg.MinCropPixels = eventMinCrop

		log, err := setup()
		if err != nil {
			return err
		}
		defer log.Close()

		desc := event.FromEnvironment()
		switch desc.Kind {
		case event.KindTest:
			log.Info("Test event received, nothing to do")
			return nil
		case event.KindDownload:
			// proceed
		default:
			log.Debug("Not a download event (%s), nothing to do", desc.Kind)
			return nil
		}

		if desc.MediaPath == "" {
			return fmt.Errorf("download event without a media file path")
		}
		if _, err := os.Stat(desc.MediaPath); err != nil {
			return fmt.Errorf("media file %q: %w", desc.MediaPath, err)
		}

		if err := check.Deps(); err != nil {
			return err
		}

		ctx, cancel := signalContext(log)
		defer cancel()

		var stats pipeline.RunStats
		if err := pipeline.ProcessFile(ctx, &cfg, log, desc.MediaPath, &stats); err != nil {
			return err
		}
		return nil
	},
}

var eventMinCrop int

func init() {
	// Sub-threshold crops are not worth the transcode cost on the event
	// path; 20 rows matches the legacy hook script.
	eventCmd.Flags().IntVar(&eventMinCrop, "min-crop", 20,
		"Minimum vertical pixels a crop must remove to trigger a re-encode")
}
