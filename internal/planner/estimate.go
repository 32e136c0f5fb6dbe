package planner

import (
	"fmt"
	"math"

	"github.com/backmassage/cropmaster/internal/probe"
)

// EstimateBitrate returns the source video bitrate used as the encode's
// maxrate ceiling. The declared stream bitrate wins; when the container
// does not declare one, the rate is approximated as filesize*8 divided by
// the truncated duration.
//
// The cap deliberately bounds the new file's size near the original rather
// than letting constant-quality encoding grow it.
func EstimateBitrate(pr *probe.Result) (BitrateEstimate, error) {
	if bps := pr.VideoBitRate(); bps > 0 {
		return BitrateEstimate{BitsPerSec: bps}, nil
	}

	secs := int64(math.Floor(pr.Format.Duration))
	if secs <= 0 {
		return BitrateEstimate{}, fmt.Errorf(
			"cannot estimate bitrate: invalid duration %.3fs", pr.Format.Duration)
	}
	if pr.Format.Size <= 0 {
		return BitrateEstimate{}, fmt.Errorf(
			"cannot estimate bitrate: invalid file size %d", pr.Format.Size)
	}

	return BitrateEstimate{
		BitsPerSec: pr.Format.Size * 8 / secs,
		Estimated:  true,
	}, nil
}
