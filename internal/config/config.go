// Package config holds runtime configuration: defaults and validation.
// All defaults match the legacy post-processing shell scripts for parity.
package config

import (
	"errors"
	"fmt"
	"strings"
)

// ColorMode controls ANSI color output.
type ColorMode string

const (
	ColorAuto   ColorMode = "auto"   // Enable colors when stdout is a TTY (default).
	ColorAlways ColorMode = "always" // Force colors on.
	ColorNever  ColorMode = "never"  // Disable colors entirely.
)

// x264Presets are the speed/quality trade-off presets accepted by --preset.
var x264Presets = map[string]bool{
	"ultrafast": true, "superfast": true, "veryfast": true, "faster": true,
	"fast": true, "medium": true, "slow": true, "slower": true, "veryslow": true,
}

// Config holds all runtime settings. It is populated by [Default] and then
// mutated by the CLI layer before being passed (by pointer) to packages that
// need it.
type Config struct {
	// Scan variant root directory (positional arg).
	ScanDir string

	// Video encoding.
	CRF    int    // Default: 18. Fixed perceptual quality target.
	Preset string // Default: "slow".

	// Audio encoding. TrueHD streams are transcoded to AC3 at this rate;
	// everything else is copied.
	AC3BitrateBps int // Fixed: 640000 bits/s.

	// Crop detection sampling.
	DetectStartSecs int // Default: 120. Seek offset before sampling.
	DetectFrameStep int // Default: 100. Keep every Nth frame.

	// Crop significance threshold, in vertical pixels removed. Crops below
	// this are not worth the transcode cost. The event command defaults to
	// 20, the scan command to 1.
	MinCropPixels int

	// Marker inserted into output filenames; files already containing it
	// are skipped without inspection.
	ProcessedMarker string // Fixed: "[PPd]".

	// Behavior flags.
	DryRun  bool
	Verbose bool

	// Display and logging.
	ColorMode ColorMode // Default: "auto".
	LogFile   string    // Optional log file path.
}

// Default returns a Config with all defaults matching the legacy scripts.
// MinCropPixels is left at the event-variant default; the scan command
// lowers it before parsing flags.
func Default() Config {
	return Config{
		CRF:             18,
		Preset:          "slow",
		AC3BitrateBps:   640_000,
		DetectStartSecs: 120,
		DetectFrameStep: 100,
		MinCropPixels:   20,
		ProcessedMarker: "[PPd]",
		ColorMode:       ColorAuto,
	}
}

// Validate checks numeric ranges and enum fields. Called by the CLI layer
// after flags are bound.
func (c *Config) Validate() error {
	if c.CRF < 0 || c.CRF > 51 {
		return fmt.Errorf("invalid CRF %d (use 0-51)", c.CRF)
	}
	if !x264Presets[strings.ToLower(c.Preset)] {
		return fmt.Errorf("invalid preset %q (use e.g. slow, medium, fast)", c.Preset)
	}
	if c.AC3BitrateBps <= 0 {
		return errors.New("AC3 bitrate must be positive")
	}
	if c.MinCropPixels < 0 {
		return errors.New("minimum crop threshold must not be negative")
	}
	if c.DetectStartSecs < 0 || c.DetectFrameStep < 1 {
		return errors.New("invalid crop detection sampling settings")
	}
	switch c.ColorMode {
	case ColorAuto, ColorAlways, ColorNever:
		// valid
	default:
		return errors.New("invalid color mode (use 'auto', 'always' or 'never')")
	}
	if c.ProcessedMarker == "" {
		return errors.New("processed marker must not be empty")
	}
	return nil
}

// NormalizeDirArg strips trailing slashes from a directory path.
// The filesystem root "/" is returned unchanged so we don't produce an empty string.
func NormalizeDirArg(path string) string {
	if path == "/" {
		return "/"
	}
	return strings.TrimRight(path, "/")
}
