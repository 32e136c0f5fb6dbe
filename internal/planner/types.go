package planner

import "github.com/backmassage/cropmaster/internal/crop"

// Action describes the per-file processing decision.
type Action int

const (
	ActionEncode Action = iota
	ActionSkip
)

// AudioStreamPlan describes the processing for one audio stream.
// StreamIndex is the absolute ffprobe stream index; argument building keys
// options by the stream's position in the plan (audio ordinal), which must
// match probe order.
type AudioStreamPlan struct {
	StreamIndex int
	Transcode   bool // true for TrueHD → AC3; false for stream copy.
}

// BitrateEstimate is the source video bitrate used to cap the encode.
type BitrateEstimate struct {
	BitsPerSec int64
	Estimated  bool // true when derived from size/duration instead of declared.
}

// FilePlan holds the complete set of decisions for processing a single
// media file. It is produced by BuildPlan and consumed by the ffmpeg
// package to construct command arguments.
type FilePlan struct {
	Action     Action
	SkipReason string

	Crop        crop.Geometry
	RemovedRows int

	// Absolute stream index of the primary video stream.
	VideoStreamIdx int

	Audio        []AudioStreamPlan
	HasSubtitles bool

	// Rate cap: MaxRate bounds the encode near the source bitrate,
	// BufSize is double that.
	MaxRate BitrateEstimate

	// Paths (filled in by the pipeline).
	InputPath   string
	StagingPath string
	OutputPath  string
}
