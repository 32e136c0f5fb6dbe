package planner

import (
	"strings"

	"github.com/backmassage/cropmaster/internal/probe"
)

// BuildAudioPlan produces the per-stream audio strategy: lossless TrueHD is
// transcoded to AC3 (AC3 target bitrate comes from config at argument-build
// time), every other codec is copied through untouched.
//
// Plan order matches probe order (stream index ascending). Encoder argument
// ordering is positional and audio-ordinal-keyed, so a misordered plan would
// silently map options to the wrong stream.
func BuildAudioPlan(pr *probe.Result) []AudioStreamPlan {
	plans := make([]AudioStreamPlan, 0, len(pr.AudioStreams))
	for _, a := range pr.AudioStreams {
		plans = append(plans, AudioStreamPlan{
			StreamIndex: a.Index,
			Transcode:   strings.EqualFold(a.Codec, "truehd"),
		})
	}
	return plans
}
