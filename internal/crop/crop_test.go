package crop

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Realistic cropdetect stderr: banner noise, per-frame suggestion lines
// converging on a stable value, trailing mux summary.
const sampleStderr = `Input #0, matroska,webm, from '/media/movies/Heat (1995).mkv':
  Duration: 02:50:34.56, start: 0.000000, bitrate: 9650 kb/s
Output #0, null, to 'pipe:':
[Parsed_cropdetect_1 @ 0x55e1] x1:0 x2:1919 y1:136 y2:943 w:1920 h:802 x:0 y:138 pts:123 t:5.12 crop=1920:802:0:138
[Parsed_cropdetect_1 @ 0x55e1] x1:0 x2:1919 y1:138 y2:941 w:1920 h:800 x:0 y:140 pts:456 t:19.00 crop=1920:800:0:140
[Parsed_cropdetect_1 @ 0x55e1] x1:0 x2:1919 y1:138 y2:941 w:1920 h:800 x:0 y:140 pts:789 t:32.88 crop=1920:800:0:140
frame=  240 fps= 41 q=-0.0 Lsize=N/A time=00:13:20.00 bitrate=N/A speed= 136x
`

func TestParseOutput_LastCropWins(t *testing.T) {
	g := ParseOutput(sampleStderr)
	assert.Equal(t, Geometry{Width: 1920, Height: 800, X: 0, Y: 140}, g)
}

func TestParseOutput_NoCropToken(t *testing.T) {
	stderr := "Input #0, matroska, from 'x.mkv':\nframe=  240 fps=41\n"
	g := ParseOutput(stderr)
	assert.True(t, g.IsZero(), "no token must yield the no-crop sentinel")
}

func TestParseOutput_Empty(t *testing.T) {
	assert.True(t, ParseOutput("").IsZero())
}

func TestParseOutput_IgnoresNegativeSuggestions(t *testing.T) {
	// cropdetect emits negative dimensions on all-black sample windows;
	// those lines must not parse, but a later sane line must.
	stderr := "crop=-ast nonsense\n" +
		"[Parsed_cropdetect_1 @ 0x1] ... crop=1280:692:0:14\n"
	g := ParseOutput(stderr)
	assert.Equal(t, Geometry{Width: 1280, Height: 692, X: 0, Y: 14}, g)
}

func TestGeometryFilter(t *testing.T) {
	g := Geometry{Width: 1920, Height: 800, X: 0, Y: 140}
	assert.Equal(t, "crop=1920:800:0:140", g.Filter())
}

func TestRemovedRows(t *testing.T) {
	g := Geometry{Width: 1920, Height: 800, X: 0, Y: 140}
	assert.Equal(t, 140, g.RemovedRows(1080))

	full := Geometry{Width: 1920, Height: 1080, X: 0, Y: 0}
	assert.Equal(t, 0, full.RemovedRows(1080))
}
