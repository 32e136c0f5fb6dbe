// Package pipeline orchestrates per-file processing: guard → probe → crop
// detection → plan → encode → commit/rollback, plus batch discovery and
// summary reporting for the scan variant.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/backmassage/cropmaster/internal/config"
	"github.com/backmassage/cropmaster/internal/crop"
	"github.com/backmassage/cropmaster/internal/display"
	"github.com/backmassage/cropmaster/internal/ffmpeg"
	"github.com/backmassage/cropmaster/internal/logging"
	"github.com/backmassage/cropmaster/internal/naming"
	"github.com/backmassage/cropmaster/internal/planner"
	"github.com/backmassage/cropmaster/internal/probe"
)

// Files smaller than this are treated as corrupt downloads.
const minFileSize = 1000

// ErrEncodeFailed marks a per-file encode (or commit) failure. The original
// file is already restored to an untouched state when this is returned; the
// scan loop continues past it, the event command exits nonzero.
var ErrEncodeFailed = errors.New("encode failed")

// Run is the scan-variant batch entry point. It discovers files and
// processes each sequentially. The returned error is a hard failure that
// aborted the run; per-file encode failures are counted in stats instead.
func Run(ctx context.Context, cfg *config.Config, log *logging.Logger) (RunStats, error) {
	var stats RunStats

	files, err := Discover(cfg.ScanDir)
	if err != nil {
		return stats, fmt.Errorf("file discovery: %w", err)
	}

	stats.Total = len(files)
	log.Info("Found %d files in %s", stats.Total, cfg.ScanDir)
	if cfg.DryRun {
		log.Warn("DRY RUN: no files will be written")
	}

	for i, path := range files {
		stats.Current = i + 1

		if ctx.Err() != nil {
			log.Warn("Interrupted")
			break
		}

		err := ProcessFile(ctx, cfg, log, path, &stats)
		if errors.Is(err, ErrEncodeFailed) {
			continue
		}
		if err != nil {
			return stats, err
		}
	}

	logSummary(cfg, log, &stats)
	return stats, nil
}

// ProcessFile handles one media file end to end. It returns nil for both
// success and soft skips, ErrEncodeFailed when the encode or commit failed
// (original untouched, stats updated), and any other error for hard
// conditions that should abort the whole run.
func ProcessFile(ctx context.Context, cfg *config.Config, log *logging.Logger, path string, stats *RunStats) error {
	basename := filepath.Base(path)
	if stats.Total > 0 {
		log.Info("[%d/%d] %s", stats.Current, stats.Total, basename)
	} else {
		log.Info("Processing %s", basename)
	}

	// --- Already-processed guard (before any subprocess) ---
	if naming.IsProcessed(path, cfg.ProcessedMarker) {
		log.Info("Skip (already processed): %s", basename)
		stats.Skipped++
		return nil
	}

	// --- Validate ---
	fi, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("input file %q: %w", path, err)
	}
	if fi.Size() < minFileSize {
		log.Error("File too small (possibly corrupt): %s", path)
		stats.Failed++
		return nil
	}

	// --- Probe ---
	pr, err := probe.Probe(ctx, path)
	if err != nil {
		return err
	}
	if pr.PrimaryVideo == nil {
		log.Warn("No video stream found, skipping")
		stats.Skipped++
		return nil
	}
	log.Debug("  Video: %s | %s", pr.Resolution(), display.FormatBitrateLabel(pr.VideoBitRate()))

	// --- Crop detection ---
	g, err := crop.Detect(ctx, path, cfg.DetectStartSecs, cfg.DetectFrameStep)
	if err != nil {
		return err
	}

	// --- Plan ---
	plan, err := planner.BuildPlan(cfg, pr, g)
	if err != nil {
		return err
	}
	if plan.Action == planner.ActionSkip {
		log.Info("Skip (%s): %s", plan.SkipReason, basename)
		stats.Skipped++
		return nil
	}

	plan.InputPath = path
	plan.OutputPath = naming.OutputPath(path, cfg.ProcessedMarker)
	plan.StagingPath = naming.StagingPath(plan.OutputPath)

	log.Info("Cropping %s (removes %d px): %s", plan.Crop.Filter(), plan.RemovedRows, basename)
	log.Info("  -> %s", filepath.Base(plan.OutputPath))
	logAudioPlan(log, pr, plan)
	if plan.MaxRate.Estimated {
		log.Debug("  Max rate %s (estimated from size/duration)", display.FormatBitrateLabel(plan.MaxRate.BitsPerSec))
	} else {
		log.Debug("  Max rate %s (declared)", display.FormatBitrateLabel(plan.MaxRate.BitsPerSec))
	}

	// --- Dry-run ---
	if cfg.DryRun {
		log.Success("[DRY] Would encode")
		stats.Processed++
		return nil
	}

	// --- Encode to staging ---
	start := time.Now()
	result := ffmpeg.Execute(ctx, cfg, plan)
	if result.Err != nil {
		rollback(plan)
		log.Error("Encode failed, original left untouched")
		logStderr(log, result.Stderr)
		stats.Failed++
		return fmt.Errorf("%w: %s", ErrEncodeFailed, basename)
	}

	// --- Commit: validate, rename into place, drop the original ---
	var outSize int64
	if outInfo, err := os.Stat(plan.StagingPath); err == nil {
		outSize = outInfo.Size()
	}
	if err := commit(ctx, plan); err != nil {
		rollback(plan)
		log.Error("Commit failed (%v), original left untouched", err)
		stats.Failed++
		return fmt.Errorf("%w: %s", ErrEncodeFailed, basename)
	}

	elapsed := time.Since(start)
	ratio := int64(100)
	if fi.Size() > 0 {
		ratio = outSize * 100 / fi.Size()
	}
	stats.TotalInputBytes += fi.Size()
	stats.TotalOutputBytes += outSize
	stats.Processed++

	log.Success("Encoded in %ds (%d%% of original)", int(elapsed.Seconds()), ratio)
	return nil
}

func logAudioPlan(log *logging.Logger, pr *probe.Result, plan *planner.FilePlan) {
	for i, a := range plan.Audio {
		codec := ""
		if i < len(pr.AudioStreams) {
			codec = pr.AudioStreams[i].Codec
		}
		action := "copy"
		if a.Transcode {
			action = "transcode to ac3"
		}
		log.Info("  Audio[%d]: %s | %s", a.StreamIndex, codec, action)
	}
}

func logStderr(log *logging.Logger, stderr string) {
	if stderr == "" {
		return
	}
	log.Error("Last ffmpeg output:")
	lines := strings.Split(strings.TrimSpace(stderr), "\n")
	start := 0
	if len(lines) > 20 {
		start = len(lines) - 20
	}
	for _, l := range lines[start:] {
		log.Error("  %s", l)
	}
}

func logSummary(cfg *config.Config, log *logging.Logger, stats *RunStats) {
	log.Info("==============================")
	log.Info("Done: %d encoded, %d skipped, %d failed", stats.Processed, stats.Skipped, stats.Failed)

	if cfg.DryRun {
		log.Info("Total space saved: n/a (dry run)")
		return
	}

	saved := stats.SpaceSaved()
	if saved >= 0 {
		log.Success("Total space saved: %s (input %s -> output %s)",
			display.FormatBytes(saved),
			display.FormatBytes(stats.TotalInputBytes),
			display.FormatBytes(stats.TotalOutputBytes))
	} else {
		log.Warn("Total space saved: -%s (overall output is larger)",
			display.FormatBytes(-saved))
	}
}
