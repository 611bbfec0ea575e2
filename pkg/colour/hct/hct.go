// Package hct implements the HCT (hue, chroma, tone) colour system: CAM16
// hue and chroma combined with the CIE L* tone.
//
// Converting an HCT value to a device colour is the hard direction because a
// hue, chroma and tone triple may describe a colour the sRGB cube cannot
// show; SolveToRGBA then returns the closest colour on the gamut surface
// along the same hue.
package hct

import (
	"fmt"

	"github.com/jmylchreest/tonal/pkg/colour/cam16"
	"github.com/jmylchreest/tonal/pkg/colour/cie"
	"github.com/jmylchreest/tonal/pkg/colour/mathutil"
)

// HCT is an immutable colour value. Hue wraps into [0, 360), chroma is
// clamped to be non-negative and tone and alpha are clamped to [0, 100].
// The components are what was requested, which is not necessarily what the
// device can display; Normalize returns the displayable colour.
type HCT struct {
	Hue    float64 `json:"hue"`
	Chroma float64 `json:"chroma"`
	Tone   float64 `json:"tone"`
	Alpha  float64 `json:"alpha"`
}

// New returns an opaque HCT value.
func New(hue, chroma, tone float64) HCT {
	return NewA(hue, chroma, tone, 100)
}

// NewA returns an HCT value with the given alpha (0-100). The values are
// stored as requested, after clamping; call Normalize for the colour the
// device will actually show.
func NewA(hue, chroma, tone, alpha float64) HCT {
	return HCT{
		Hue:    mathutil.SanitizeDegrees(hue),
		Chroma: max(0, chroma),
		Tone:   mathutil.Clamp(0, 100, tone),
		Alpha:  mathutil.Clamp(0, 100, alpha),
	}
}

// FromRGBA measures the hue, chroma and tone of a device colour.
func FromRGBA(c cie.RGBA) HCT {
	cam := cam16.FromRGBA(c)
	return HCT{
		Hue:    cam.Hue,
		Chroma: cam.Chroma,
		Tone:   cie.LStarFromRGBA(c),
		Alpha:  mathutil.Clamp(0, 100, c.A),
	}
}

// FromHex parses a hex colour and measures it.
func FromHex(s string) (HCT, error) {
	c, err := cie.FromHex(s)
	if err != nil {
		return HCT{}, err
	}
	return FromRGBA(c), nil
}

// ToRGBA solves for the device colour.
func (h HCT) ToRGBA() cie.RGBA {
	return SolveToRGBA(h.Hue, h.Chroma, h.Tone).WithAlpha(h.Alpha)
}

// Normalize returns the colour as it will actually be displayed: the
// measured hue, chroma and tone of ToRGBA. Normalizing twice gives the same
// value as normalizing once.
func (h HCT) Normalize() HCT {
	return FromRGBA(h.ToRGBA())
}

// IsAchievable reports whether the requested chroma survives the round trip
// through a device colour to within a rounding unit.
func (h HCT) IsAchievable() bool {
	n := h.Normalize()
	return n.Chroma+1 >= h.Chroma
}

// WithHue returns a copy with a different hue.
func (h HCT) WithHue(hue float64) HCT {
	return NewA(hue, h.Chroma, h.Tone, h.Alpha)
}

// WithChroma returns a copy with a different chroma.
func (h HCT) WithChroma(chroma float64) HCT {
	return NewA(h.Hue, chroma, h.Tone, h.Alpha)
}

// WithTone returns a copy with a different tone.
func (h HCT) WithTone(tone float64) HCT {
	return NewA(h.Hue, h.Chroma, tone, h.Alpha)
}

// WithAlpha returns a copy with a different alpha.
func (h HCT) WithAlpha(alpha float64) HCT {
	return NewA(h.Hue, h.Chroma, h.Tone, alpha)
}

// Equal reports whether every component matches exactly.
func (h HCT) Equal(o HCT) bool {
	return h == o
}

func (h HCT) String() string {
	return fmt.Sprintf("hct(%.2f, %.2f, %.2f, %.0f%%)", h.Hue, h.Chroma, h.Tone, h.Alpha)
}

// InViewingConditions returns how this colour, seen under vc, appears under
// the default viewing conditions.
func (h HCT) InViewingConditions(vc cam16.ViewingConditions) HCT {
	cam := cam16.FromRGBA(h.ToRGBA())
	viewed := cam.XYZInViewingConditions(vc)
	recast := cam16.FromXYZInViewingConditions(viewed, cam16.Default())
	return NewA(recast.Hue, recast.Chroma, cie.LStarFromY(viewed[1]), h.Alpha).Normalize()
}
