// Package dislike detects and repairs the dark yellow-greens that people
// consistently rate as unpleasant (bile, mould, vomit).
package dislike

import (
	"math"

	"github.com/jmylchreest/tonal/pkg/colour/hct"
)

const fixedTone = 70

// IsDisliked reports whether c falls in the disliked band: a yellow-green
// hue, more than a little chroma and a dark tone.
func IsDisliked(c hct.HCT) bool {
	hue := math.Round(c.Hue)
	huePasses := hue >= 90 && hue <= 111
	chromaPasses := math.Round(c.Chroma) > 16
	tonePasses := math.Round(c.Tone) < 65
	return huePasses && chromaPasses && tonePasses
}

// Fix lightens a disliked colour to tone 70, leaving other colours alone.
func Fix(c hct.HCT) hct.HCT {
	if IsDisliked(c) {
		return hct.NewA(c.Hue, c.Chroma, fixedTone, c.Alpha)
	}
	return c
}
