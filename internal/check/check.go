// Package check provides pre-pipeline dependency validation and the
// interactive `check` diagnostics for ffmpeg and ffprobe.
package check

import (
	"errors"
	"os/exec"
	"strings"
)

// Sentinel errors returned by Deps when a required tool is missing.
var (
	ErrFfmpegNotFound  = errors.New("ffmpeg not found on PATH")
	ErrFfprobeNotFound = errors.New("ffprobe not found on PATH")
)

// Logger is the minimal logging interface needed by Run.
// Defined here (rather than importing the logging package) so that check
// remains dependency-light and testable with a mock logger.
type Logger interface {
	Info(string, ...interface{})
	Success(string, ...interface{})
	Warn(string, ...interface{})
	Error(string, ...interface{})
}

// Deps is the pre-pipeline validation: both external tools must be on PATH.
// Returns a sentinel error on failure.
func Deps() error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return ErrFfmpegNotFound
	}
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return ErrFfprobeNotFound
	}
	return nil
}

// Run runs the interactive diagnostics flow: tool versions, a libx264 test
// encode, an AC3 test encode, and cropdetect filter availability. This is
// informational only; it does not stop on failure. Returns false if any
// required check failed.
func Run(log Logger) bool {
	log.Info("=== System Check ===")

	ok := checkVersion(log, "ffmpeg")
	ok = checkVersion(log, "ffprobe") && ok
	ok = checkX264(log) && ok
	ok = checkAC3(log) && ok
	ok = checkCropdetect(log) && ok
	return ok
}

// checkVersion verifies the tool is on PATH and logs its version string.
func checkVersion(log Logger, tool string) bool {
	if _, err := exec.LookPath(tool); err != nil {
		log.Error("%s not found", tool)
		return false
	}
	out, err := exec.Command(tool, "-version").Output()
	if err != nil {
		log.Warn("%s found but -version failed: %v", tool, err)
		return true
	}
	firstLine := strings.TrimSpace(string(out))
	if idx := strings.Index(firstLine, "\n"); idx > 0 {
		firstLine = firstLine[:idx]
	}
	log.Success("%s: %s", tool, firstLine)
	return true
}

// checkX264 runs a minimal libx264 encode to verify the video encoder works.
func checkX264(log Logger) bool {
	log.Info("Testing libx264...")
	if runSilent("ffmpeg",
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "color=black:s=256x256:d=0.1",
		"-c:v", "libx264",
		"-f", "null", "-",
	) {
		log.Success("libx264 works")
		return true
	}
	log.Error("libx264 test encode failed")
	return false
}

// checkAC3 runs a minimal AC3 encode to verify the audio encoder works.
func checkAC3(log Logger) bool {
	log.Info("Testing AC3 encoder...")
	if runSilent("ffmpeg",
		"-hide_banner", "-nostdin",
		"-f", "lavfi", "-i", "sine=frequency=1000:duration=0.1",
		"-c:a", "ac3", "-f", "null", "-",
	) {
		log.Success("AC3 encoder works")
		return true
	}
	log.Error("AC3 encoder test failed")
	return false
}

// checkCropdetect verifies the cropdetect filter is compiled in.
func checkCropdetect(log Logger) bool {
	log.Info("Testing cropdetect filter...")
	if runSilent("ffmpeg",
		"-hide_banner", "-nostdin", "-loglevel", "error",
		"-f", "lavfi", "-i", "color=black:s=256x256:d=0.1",
		"-vf", "cropdetect",
		"-f", "null", "-",
	) {
		log.Success("cropdetect filter works")
		return true
	}
	log.Error("cropdetect filter unavailable")
	return false
}

// runSilent runs a command and returns true if it exits with status 0.
// Both stdout and stderr are discarded.
func runSilent(name string, args ...string) bool {
	cmd := exec.Command(name, args...)
	cmd.Stdout = nil
	cmd.Stderr = nil
	return cmd.Run() == nil
}
