// Package planner turns probe data and detected crop geometry into a
// FilePlan: skip decisions, the per-stream audio strategy, and the bitrate
// cap for the encode.
package planner

import (
	"fmt"

	"github.com/backmassage/cropmaster/internal/config"
	"github.com/backmassage/cropmaster/internal/crop"
	"github.com/backmassage/cropmaster/internal/probe"
)

// BuildPlan produces a complete FilePlan from config, probe data, and the
// detected crop geometry.
//
// Flow:
//  1. No-crop sentinel or sub-threshold crop → ActionSkip (soft)
//  2. Audio plan (TrueHD → AC3, everything else copied)
//  3. Bitrate cap (declared, or size/duration fallback; hard error when
//     the fallback cannot be computed)
//
// A returned error means the file cannot be reasonably processed and the
// run should treat it as fatal, matching the legacy division-by-zero guard.
func BuildPlan(cfg *config.Config, pr *probe.Result, g crop.Geometry) (*FilePlan, error) {
	plan := &FilePlan{
		Crop:         g,
		HasSubtitles: len(pr.SubtitleStreams) > 0,
	}

	if g.IsZero() {
		plan.Action = ActionSkip
		plan.SkipReason = "no crop detected"
		return plan, nil
	}

	if pr.PrimaryVideo == nil {
		plan.Action = ActionSkip
		plan.SkipReason = "no video stream"
		return plan, nil
	}

	plan.RemovedRows = g.RemovedRows(pr.PrimaryVideo.Height)
	if plan.RemovedRows < cfg.MinCropPixels {
		plan.Action = ActionSkip
		plan.SkipReason = fmt.Sprintf("crop removes %d px (below %d px threshold)",
			plan.RemovedRows, cfg.MinCropPixels)
		return plan, nil
	}

	plan.Action = ActionEncode
	plan.VideoStreamIdx = pr.PrimaryVideo.Index
	plan.Audio = BuildAudioPlan(pr)

	est, err := EstimateBitrate(pr)
	if err != nil {
		return nil, err
	}
	plan.MaxRate = est

	return plan, nil
}
