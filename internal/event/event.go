// Package event reads the Radarr/Sonarr custom-script environment contract
// and reduces it to a typed descriptor. Both managers communicate solely via
// environment variables; a missing or unknown event type is "not a download"
// rather than an error.
package event

import "os"

// Kind classifies the invocation.
type Kind int

const (
	KindOther Kind = iota // Unknown/unset event type; soft no-op.
	KindTest              // Connection test from the manager; soft no-op.
	KindDownload
)

// String returns the kind label used in log lines.
func (k Kind) String() string {
	switch k {
	case KindDownload:
		return "Download"
	case KindTest:
		return "Test"
	default:
		return "Other"
	}
}

// Descriptor is the immutable event read from the environment at startup.
// MediaPath is only meaningful when Kind is KindDownload.
type Descriptor struct {
	Kind      Kind
	MediaPath string
}

// Environment variable names set by the media managers.
const (
	envRadarrEvent = "radarr_eventtype"
	envRadarrPath  = "radarr_moviefile_path"
	envSonarrEvent = "sonarr_eventtype"
	envSonarrPath  = "sonarr_episodefile_path"
)

// FromEnvironment builds a Descriptor from the process environment.
// Radarr variables win when both managers' variables are present (the
// managers never set both in practice).
func FromEnvironment() Descriptor {
	return fromLookup(os.LookupEnv)
}

// fromLookup is the testable core of FromEnvironment.
func fromLookup(lookup func(string) (string, bool)) Descriptor {
	if ev, ok := lookup(envRadarrEvent); ok {
		path, _ := lookup(envRadarrPath)
		return Descriptor{Kind: classify(ev), MediaPath: path}
	}
	if ev, ok := lookup(envSonarrEvent); ok {
		path, _ := lookup(envSonarrPath)
		return Descriptor{Kind: classify(ev), MediaPath: path}
	}
	return Descriptor{Kind: KindOther}
}

func classify(eventType string) Kind {
	switch eventType {
	case "Download":
		return KindDownload
	case "Test":
		return KindTest
	default:
		return KindOther
	}
}
