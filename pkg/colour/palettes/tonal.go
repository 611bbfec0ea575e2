// Package palettes builds tonal palettes: every tone of a single hue and
// chroma, and the core set of palettes a scheme is drawn from.
package palettes

import (
	"fmt"
	"math"

	"github.com/jmylchreest/tonal/pkg/colour/cie"
	"github.com/jmylchreest/tonal/pkg/colour/hct"
	"github.com/jmylchreest/tonal/pkg/colour/mathutil"
)

const (
	keyStartTone     = 50
	keySearchSteps   = 49
	keyChromaEpsilon = 5e-5
)

// TonalPalette is a hue and chroma from which any tone can be produced.
// It is a value type and safe to share.
type TonalPalette struct {
	Hue    float64 `json:"hue"`
	Chroma float64 `json:"chroma"`
	// KeyColor is the tone at which the requested chroma is best achieved.
	KeyColor hct.HCT `json:"key_color"`
}

// NewTonalPalette returns the palette for a hue and chroma.
func NewTonalPalette(hue, chroma float64) TonalPalette {
	hue = mathutil.SanitizeDegrees(hue)
	chroma = max(0, chroma)
	return TonalPalette{
		Hue:      hue,
		Chroma:   chroma,
		KeyColor: keyColor(hue, chroma),
	}
}

// FromHCT returns the palette containing c, with c as its key colour.
func FromHCT(c hct.HCT) TonalPalette {
	return TonalPalette{Hue: c.Hue, Chroma: c.Chroma, KeyColor: c}
}

// FromRGBA returns the palette containing c.
func FromRGBA(c cie.RGBA) TonalPalette {
	return FromHCT(hct.FromRGBA(c))
}

// keyColor searches outward from tone 50 for the tone whose achieved chroma
// is closest to the requested one.
func keyColor(hue, chroma float64) hct.HCT {
	best := hct.New(hue, chroma, keyStartTone).Normalize()
	bestDelta := math.Abs(best.Chroma - chroma)
	for delta := 1; delta <= keySearchSteps; delta++ {
		if bestDelta < keyChromaEpsilon {
			break
		}
		for _, tone := range [2]float64{keyStartTone + float64(delta), keyStartTone - float64(delta)} {
			candidate := hct.New(hue, chroma, tone).Normalize()
			if d := math.Abs(candidate.Chroma - chroma); d < bestDelta {
				best, bestDelta = candidate, d
			}
		}
	}
	return best
}

// Tone returns the device colour at a tone.
func (p TonalPalette) Tone(tone float64) cie.RGBA {
	return hct.SolveToRGBA(p.Hue, p.Chroma, tone)
}

// GetWithTone returns the displayable HCT colour at a tone.
func (p TonalPalette) GetWithTone(tone float64) hct.HCT {
	return hct.FromRGBA(p.Tone(tone))
}

// Tones returns the device colours for each requested tone, in order.
func (p TonalPalette) Tones(tones ...float64) []cie.RGBA {
	out := make([]cie.RGBA, len(tones))
	for i, t := range tones {
		out[i] = p.Tone(t)
	}
	return out
}

func (p TonalPalette) String() string {
	return fmt.Sprintf("palette(%.2f, %.2f)", p.Hue, p.Chroma)
}

// StandardTones are the tones conventionally shown for a palette.
var StandardTones = []float64{0, 5, 10, 15, 20, 25, 30, 35, 40, 50, 60, 70, 80, 90, 95, 98, 99, 100}
