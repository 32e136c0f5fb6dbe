package cli

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/backmassage/cropmaster/internal/check"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that ffmpeg and ffprobe are installed and usable",
	Long: `Check verifies both external tools are on PATH and runs short test
encodes for libx264, the AC3 encoder, and the cropdetect filter.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := setup()
		if err != nil {
			return err
		}
		defer log.Close()

		if !check.Run(log) {
			return errors.New("system check failed")
		}
		return nil
	},
}
