// Package naming builds output and staging paths around the processed
// marker, the idempotence guard against reprocessing a file this tool
// already produced.
package naming

import (
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// IsProcessed reports whether the file's name already carries the marker.
// Marked files are skipped without any inspection.
func IsProcessed(path, marker string) bool {
	return strings.Contains(filepath.Base(path), marker)
}

// OutputPath inserts the marker before the extension, in the same directory:
//
//	/media/Heat (1995).mkv → /media/Heat (1995) [PPd].mkv
//
// Files without an extension get the marker appended.
func OutputPath(path, marker string) string {
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(path, ext)
	return stem + " " + marker + ext
}

// StagingPath returns a collision-free temporary path next to outputPath.
// The encoder always writes here first; the staging file is renamed into
// place only after it is confirmed complete, so a crashed or failed encode
// never leaves a half-written file under the final name.
func StagingPath(outputPath string) string {
	return outputPath + "." + uuid.NewString()[:8] + ".part"
}
