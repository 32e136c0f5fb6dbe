package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/backmassage/cropmaster/internal/planner"
	"github.com/backmassage/cropmaster/internal/probe"
)

// validateOutput confirms the staging file is a complete, probeable media
// file with a video stream before the original is destroyed. Package
// variable so tests can stub it without a real ffprobe binary.
var validateOutput = func(ctx context.Context, path string) error {
	pr, err := probe.Probe(ctx, path)
	if err != nil {
		return err
	}
	if pr.PrimaryVideo == nil {
		return errors.New("no video stream in output")
	}
	return nil
}

// commit finalizes a successful encode: validate the staging file, rename it
// to the final output path, then delete the original. The rename happens
// before the delete, so the directory never lacks a playable copy. A commit
// error leaves the staging file in place for rollback.
func commit(ctx context.Context, plan *planner.FilePlan) error {
	if err := validateOutput(ctx, plan.StagingPath); err != nil {
		return fmt.Errorf("output validation: %w", err)
	}
	if err := os.Rename(plan.StagingPath, plan.OutputPath); err != nil {
		return fmt.Errorf("rename staging output: %w", err)
	}
	if err := os.Remove(plan.InputPath); err != nil {
		return fmt.Errorf("remove original: %w", err)
	}
	return nil
}

// rollback discards the staging file after a failed encode or commit. The
// original was never touched, so this is the whole cleanup.
func rollback(plan *planner.FilePlan) {
	if plan.StagingPath != "" {
		_ = os.Remove(plan.StagingPath)
	}
}
