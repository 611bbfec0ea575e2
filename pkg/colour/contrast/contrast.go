// Package contrast implements the WCAG contrast ratio expressed in HCT tones.
//
// The ratio between two relative luminances y1 >= y2 (0-100 scale) is
// (y1 + 5) / (y2 + 5), which ranges from 1 to 21. Tone is L*, so any tone maps
// to exactly one luminance and the ratio can be solved for in either
// direction.
package contrast

import (
	"errors"
	"fmt"

	"github.com/jmylchreest/tonal/pkg/colour/cie"
	"github.com/jmylchreest/tonal/pkg/colour/mathutil"
)

const (
	MinRatio = 1.0
	MaxRatio = 21.0

	// Solutions may miss the requested ratio by this much due to the
	// nonlinear tone to luminance curve.
	ratioSlack = 0.04
)

// ErrRatioOutOfRange is raised when a ratio outside [MinRatio, MaxRatio] is
// requested.
var ErrRatioOutOfRange = errors.New("contrast ratio out of range")

// CheckRatio validates a ratio supplied by a caller.
func CheckRatio(ratio float64) error {
	if ratio < MinRatio || ratio > MaxRatio {
		return fmt.Errorf("%w: %v is not in [%v, %v]", ErrRatioOutOfRange, ratio, MinRatio, MaxRatio)
	}
	return nil
}

func mustRatio(ratio float64) {
	if err := CheckRatio(ratio); err != nil {
		panic(err)
	}
}

// RatioOfYs returns the contrast ratio of two relative luminances.
func RatioOfYs(y1, y2 float64) float64 {
	lighter, darker := max(y1, y2), min(y1, y2)
	return (lighter + 5) / (darker + 5)
}

// RatioOfTones returns the contrast ratio of two tones. Tones are clamped to
// [0, 100] first.
func RatioOfTones(a, b float64) float64 {
	a = mathutil.Clamp(0, 100, a)
	b = mathutil.Clamp(0, 100, b)
	return RatioOfYs(cie.YFromLStar(a), cie.YFromLStar(b))
}

// Lighter returns a tone at least ratio above tone. It reports false when
// no such tone exists. Ratios outside [1, 21] panic.
func Lighter(tone, ratio float64) (float64, bool) {
	mustRatio(ratio)
	if tone < 0 || tone > 100 {
		return -1, false
	}
	darkY := cie.YFromLStar(tone)
	lightY := ratio*(darkY+5) - 5
	if lightY < 0 || lightY > 100 {
		return -1, false
	}
	if got := RatioOfYs(lightY, darkY); got < ratio && ratio-got > ratioSlack {
		return -1, false
	}
	value := cie.LStarFromY(lightY)
	if value < 0 || value > 100 {
		return -1, false
	}
	return value, true
}

// Darker returns a tone at least ratio below tone. It reports false when no
// such tone exists. Ratios outside [1, 21] panic.
func Darker(tone, ratio float64) (float64, bool) {
	mustRatio(ratio)
	if tone < 0 || tone > 100 {
		return -1, false
	}
	lightY := cie.YFromLStar(tone)
	darkY := (lightY+5)/ratio - 5
	if darkY < 0 || darkY > 100 {
		return -1, false
	}
	if got := RatioOfYs(lightY, darkY); got < ratio && ratio-got > ratioSlack {
		return -1, false
	}
	value := cie.LStarFromY(darkY)
	if value < 0 || value > 100 {
		return -1, false
	}
	return value, true
}

// LighterUnsafe is Lighter, falling back to white when the ratio is
// unreachable.
func LighterUnsafe(tone, ratio float64) float64 {
	if v, ok := Lighter(tone, ratio); ok {
		return v
	}
	return 100
}

// DarkerUnsafe is Darker, falling back to black when the ratio is
// unreachable.
func DarkerUnsafe(tone, ratio float64) float64 {
	if v, ok := Darker(tone, ratio); ok {
		return v
	}
	return 0
}

// ForTone finds a tone at ratio from tone, preferring the darker side for
// light tones and the lighter side for dark ones, and trying the other side
// when the preferred one is unreachable.
func ForTone(tone, ratio float64) (float64, bool) {
	if tone > 50 {
		if v, ok := Darker(tone, ratio); ok {
			return v, true
		}
		return Lighter(tone, ratio)
	}
	if v, ok := Lighter(tone, ratio); ok {
		return v, true
	}
	return Darker(tone, ratio)
}

// Meets reports whether two tones are at least ratio apart.
func Meets(a, b, ratio float64) bool {
	return RatioOfTones(a, b) >= ratio-ratioSlack
}
