package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/backmassage/cropmaster/internal/config"
	"github.com/backmassage/cropmaster/internal/crop"
	"github.com/backmassage/cropmaster/internal/logging"
	"github.com/backmassage/cropmaster/internal/naming"
	"github.com/backmassage/cropmaster/internal/planner"
)

// --- Helpers ---

func touch(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func write(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func basenames(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.Base(p)
	}
	return out
}

func sliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func testLogger(t *testing.T) *logging.Logger {
	t.Helper()
	cfg := config.Default()
	cfg.ColorMode = config.ColorNever
	l, err := logging.New(&cfg)
	if err != nil {
		t.Fatal(err)
	}
	return l
}

// --- Discover tests ---

func TestDiscover_FiltersExtensions(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "movie.mkv")
	touch(t, dir, "show.mp4")
	touch(t, dir, "old.avi")
	touch(t, dir, "music.mp3")
	touch(t, dir, "clip.webm")
	touch(t, dir, "readme.txt")

	files, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	want := []string{"movie.mkv", "old.avi", "show.mp4"}
	if got := basenames(files); !sliceEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDiscover_RecursiveAndSorted(t *testing.T) {
	dir := t.TempDir()
	os.MkdirAll(filepath.Join(dir, "Show", "Season 01"), 0o755)
	os.MkdirAll(filepath.Join(dir, "Show", "Season 02"), 0o755)
	touch(t, filepath.Join(dir, "Show", "Season 02"), "ep01.mkv")
	touch(t, filepath.Join(dir, "Show", "Season 01"), "ep02.mkv")
	touch(t, filepath.Join(dir, "Show", "Season 01"), "ep01.mkv")

	files, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("got %d files, want 3", len(files))
	}
	for i := 1; i < len(files); i++ {
		if files[i] < files[i-1] {
			t.Errorf("not sorted: %q before %q", files[i-1], files[i])
		}
	}
}

func TestDiscover_CaseInsensitiveExtension(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "MOVIE.MKV")
	touch(t, dir, "Show.Mp4")

	files, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("got %d files, want 2 (case-insensitive ext matching)", len(files))
	}
}

func TestDiscover_MissingDir(t *testing.T) {
	if _, err := Discover("/nonexistent/path/for/test"); err == nil {
		t.Error("expected error for missing directory")
	}
}

// --- Guard tests ---

func TestProcessFile_ProcessedMarkerSkipsBeforeAnySubprocess(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Heat (1995) [PPd].mkv")
	write(t, path, "original bytes")

	cfg := config.Default()
	var stats RunStats

	// No ffmpeg/ffprobe exists in the test environment; reaching any
	// subprocess would fail, so a nil error proves the guard fired first.
	err := ProcessFile(context.Background(), &cfg, testLogger(t), path, &stats)
	if err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}
	if stats.Skipped != 1 {
		t.Errorf("Skipped = %d, want 1", stats.Skipped)
	}

	b, _ := os.ReadFile(path)
	if string(b) != "original bytes" {
		t.Error("marked file must be untouched")
	}
}

func TestProcessFile_TooSmallCountsFailed(t *testing.T) {
	dir := t.TempDir()
	path := touch(t, dir, "stub.mkv") // 1 byte, below minFileSize

	cfg := config.Default()
	var stats RunStats
	err := ProcessFile(context.Background(), &cfg, testLogger(t), path, &stats)
	if err != nil {
		t.Fatalf("ProcessFile: %v", err)
	}
	if stats.Failed != 1 {
		t.Errorf("Failed = %d, want 1", stats.Failed)
	}
}

func TestProcessFile_MissingFileIsHardError(t *testing.T) {
	cfg := config.Default()
	var stats RunStats
	err := ProcessFile(context.Background(), &cfg, testLogger(t), "/nope/missing.mkv", &stats)
	if err == nil {
		t.Fatal("expected hard error for missing input")
	}
	if errors.Is(err, ErrEncodeFailed) {
		t.Error("missing input must not classify as encode failure")
	}
}

// --- Commit/rollback tests ---

func stagingPlan(t *testing.T, dir string) *planner.FilePlan {
	t.Helper()
	input := filepath.Join(dir, "Heat (1995).mkv")
	write(t, input, "original content")
	output := naming.OutputPath(input, "[PPd]")
	return &planner.FilePlan{
		Action:      planner.ActionEncode,
		Crop:        crop.Geometry{Width: 1920, Height: 800, X: 0, Y: 140},
		InputPath:   input,
		OutputPath:  output,
		StagingPath: naming.StagingPath(output),
	}
}

func TestCommit_ReplacesOriginal(t *testing.T) {
	old := validateOutput
	validateOutput = func(context.Context, string) error { return nil }
	defer func() { validateOutput = old }()

	dir := t.TempDir()
	plan := stagingPlan(t, dir)
	write(t, plan.StagingPath, "encoded content")

	if err := commit(context.Background(), plan); err != nil {
		t.Fatalf("commit: %v", err)
	}

	if _, err := os.Stat(plan.InputPath); !os.IsNotExist(err) {
		t.Error("original must be deleted after commit")
	}
	b, err := os.ReadFile(plan.OutputPath)
	if err != nil || string(b) != "encoded content" {
		t.Errorf("output content: %q, err %v", b, err)
	}
	if _, err := os.Stat(plan.StagingPath); !os.IsNotExist(err) {
		t.Error("staging file must be gone after commit")
	}
}

func TestCommit_ValidationFailureLeavesOriginalIntact(t *testing.T) {
	old := validateOutput
	validateOutput = func(context.Context, string) error { return errors.New("truncated file") }
	defer func() { validateOutput = old }()

	dir := t.TempDir()
	plan := stagingPlan(t, dir)
	write(t, plan.StagingPath, "half-written garbage")

	if err := commit(context.Background(), plan); err == nil {
		t.Fatal("commit must fail when validation fails")
	}
	rollback(plan)

	b, err := os.ReadFile(plan.InputPath)
	if err != nil || string(b) != "original content" {
		t.Errorf("original must be byte-identical, got %q err %v", b, err)
	}
	if _, err := os.Stat(plan.OutputPath); !os.IsNotExist(err) {
		t.Error("no output artifact may exist after a failed run")
	}
	if _, err := os.Stat(plan.StagingPath); !os.IsNotExist(err) {
		t.Error("staging file must be removed by rollback")
	}
}

func TestRollback_ToleratesMissingStaging(t *testing.T) {
	dir := t.TempDir()
	plan := stagingPlan(t, dir)
	rollback(plan) // staging never created; must not panic

	if _, err := os.Stat(plan.InputPath); err != nil {
		t.Error("original must survive rollback")
	}
}

// --- Stats ---

func TestRunStats_SpaceSaved(t *testing.T) {
	s := RunStats{TotalInputBytes: 1000, TotalOutputBytes: 600}
	if s.SpaceSaved() != 400 {
		t.Errorf("SpaceSaved = %d, want 400", s.SpaceSaved())
	}
}
