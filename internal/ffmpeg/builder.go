// Package ffmpeg builds and executes the single encode command that strips
// the detected letterbox and applies the audio plan.
package ffmpeg

import (
	"fmt"
	"strconv"

	"github.com/backmassage/cropmaster/internal/config"
	"github.com/backmassage/cropmaster/internal/planner"
)

// Build constructs the complete ffmpeg argument slice for an encode. One
// invocation handles everything: crop filter, constant-quality video with a
// bitrate ceiling near the source rate, per-stream audio actions, and
// verbatim subtitle copy. Output goes to the plan's staging path.
func Build(cfg *config.Config, plan *planner.FilePlan) []string {
	args := make([]string, 0, 48)

	// --- Preamble ---
	args = append(args, "ffmpeg", "-hide_banner", "-nostdin", "-y")

	// Loglevel: info when verbose, otherwise error.
	if cfg.Verbose {
		args = append(args, "-loglevel", "info", "-stats")
	} else {
		args = append(args, "-loglevel", "error")
	}

	// --- Input ---
	args = append(args, "-i", plan.InputPath)

	// --- Crop filter ---
	args = append(args, "-vf", plan.Crop.Filter())

	// --- Stream maps ---
	args = append(args, "-map", fmt.Sprintf("0:%d", plan.VideoStreamIdx))
	for i := range plan.Audio {
		args = append(args, "-map", fmt.Sprintf("0:a:%d", i))
	}
	if plan.HasSubtitles {
		args = append(args, "-map", "0:s?")
	}

	// --- Video codec: fixed quality target, capped near the source rate ---
	maxRate := plan.MaxRate.BitsPerSec
	args = append(args,
		"-c:v", "libx264",
		"-crf", strconv.Itoa(cfg.CRF),
		"-preset", cfg.Preset,
		"-maxrate", strconv.FormatInt(maxRate, 10),
		"-bufsize", strconv.FormatInt(maxRate*2, 10),
	)

	// --- Audio codecs, keyed by audio ordinal in plan (= probe) order ---
	for i, a := range plan.Audio {
		if a.Transcode {
			args = append(args,
				fmt.Sprintf("-c:a:%d", i), "ac3",
				fmt.Sprintf("-b:a:%d", i), strconv.Itoa(cfg.AC3BitrateBps),
			)
		} else {
			args = append(args, fmt.Sprintf("-c:a:%d", i), "copy")
		}
	}

	// --- Subtitles copied verbatim ---
	if plan.HasSubtitles {
		args = append(args, "-c:s", "copy")
	}

	// --- Metadata and chapters ---
	args = append(args, "-map_metadata", "0", "-map_chapters", "0")

	// --- Output (staging path; committed by the pipeline) ---
	args = append(args, plan.StagingPath)

	return args
}
