// Package crop runs ffmpeg's cropdetect filter over a sampled subset of
// frames and extracts the detected crop geometry from the diagnostic output.
//
// "Can't determine crop" is deliberately not an error: a wrong crop value
// risks a damaging encode, so an unparseable result degrades to the no-crop
// sentinel and the caller skips the file.
package crop

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
)

// Geometry describes the rectangular sub-region of frames to retain.
// The zero value is the "no crop" sentinel.
type Geometry struct {
	Width  int
	Height int
	X      int
	Y      int
}

// IsZero reports whether g is the no-crop sentinel.
func (g Geometry) IsZero() bool {
	return g == Geometry{}
}

// Filter returns the ffmpeg crop filter expression, e.g. "crop=1920:800:0:140".
func (g Geometry) Filter() string {
	return fmt.Sprintf("crop=%d:%d:%d:%d", g.Width, g.Height, g.X, g.Y)
}

// RemovedRows returns the vertical pixels removed relative to the original
// frame height. Matches the legacy significance formula:
// original height minus crop height minus crop y offset.
func (g Geometry) RemovedRows(origHeight int) int {
	return origHeight - g.Height - g.Y
}

// reCrop matches cropdetect's per-frame suggestion lines on stderr, e.g.
//
//	[Parsed_cropdetect_0 @ 0x...] x1:0 x2:1919 y1:138 y2:941 w:1920 h:800 x:0 y:140 pts:... crop=1920:800:0:140
var reCrop = regexp.MustCompile(`crop=(\d+):(\d+):(\d+):(\d+)`)

// Detect samples the file with cropdetect (every frameStep-th frame starting
// startSecs in) and returns the last crop geometry ffmpeg reports. A failed
// ffmpeg run is a hard error; a clean run with no parseable crop token
// returns the zero Geometry and no error.
func Detect(ctx context.Context, path string, startSecs, frameStep int) (Geometry, error) {
	cmd := exec.CommandContext(ctx, "ffmpeg",
		"-hide_banner", "-nostdin",
		"-ss", strconv.Itoa(startSecs),
		"-i", path,
		"-vf", fmt.Sprintf(`select=not(mod(n\,%d)),cropdetect`, frameStep),
		"-an", "-sn",
		"-f", "null", "-",
	)

	// cropdetect reports on stderr only.
	var stderr bytes.Buffer
	cmd.Stdout = nil
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return Geometry{}, fmt.Errorf("cropdetect %q: %w", path, err)
	}
	return ParseOutput(stderr.String()), nil
}

// ParseOutput extracts the last reported crop geometry from cropdetect
// stderr text. Exported for testing without a real ffmpeg binary.
func ParseOutput(stderr string) Geometry {
	matches := reCrop.FindAllStringSubmatch(stderr, -1)
	if len(matches) == 0 {
		return Geometry{}
	}
	m := matches[len(matches)-1]
	return Geometry{
		Width:  atoi(m[1]),
		Height: atoi(m[2]),
		X:      atoi(m[3]),
		Y:      atoi(m[4]),
	}
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
