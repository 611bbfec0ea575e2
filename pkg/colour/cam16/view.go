// Package cam16 implements the CAM16 colour appearance model and its
// CAM16-UCS uniform colour space.
package cam16

import (
	"math"

	"github.com/jmylchreest/tonal/pkg/colour/cie"
	"github.com/jmylchreest/tonal/pkg/colour/mathutil"
)

// XYZToCAM16RGB converts XYZ to the CAM16 cone response space.
var XYZToCAM16RGB = mathutil.Mat3{
	{0.401288, 0.650173, -0.051461},
	{-0.250268, 1.204414, 0.045854},
	{-0.002079, 0.048952, 0.953127},
}

// CAM16RGBToXYZ is the inverse of XYZToCAM16RGB.
var CAM16RGBToXYZ = mathutil.Mat3{
	{1.8620678, -1.0112547, 0.14918678},
	{0.38752654, 0.62144744, -0.00897398},
	{-0.01584150, -0.03412294, 1.0499644},
}

// ViewingConditions describe the environment a colour is seen in. Every
// field besides the inputs is derived once by NewViewingConditions and the
// value is never modified afterwards.
type ViewingConditions struct {
	// WhitePoint is the reference white in XYZ (0-100).
	WhitePoint mathutil.Vec3

	// AdaptingLuminance is the luminance of the adapting field in cd/m².
	AdaptingLuminance float64

	// BackgroundLStar is the L* of the area surrounding the colour.
	BackgroundLStar float64

	// Surround is 0 (dark) to 2 (average).
	Surround float64

	// Discounting is true when the eye has fully adapted to the illuminant.
	Discounting bool

	N     float64
	Aw    float64
	Nbb   float64
	Ncb   float64
	C     float64
	Nc    float64
	RGBD  mathutil.Vec3
	Fl    float64
	FlRt  float64
	Z     float64
	tCoef float64
}

// NewViewingConditions derives the CAM16 parameters for an environment.
func NewViewingConditions(whitePoint mathutil.Vec3, adaptingLuminance, backgroundLStar, surround float64, discounting bool) ViewingConditions {
	vc := ViewingConditions{
		WhitePoint:        whitePoint,
		AdaptingLuminance: adaptingLuminance,
		// A pure black background is non-physical and leads to infinities.
		BackgroundLStar: math.Max(0.1, backgroundLStar),
		Surround:        mathutil.Clamp(0, 2, surround),
		Discounting:     discounting,
	}

	rgbW := mathutil.MatMul(whitePoint, XYZToCAM16RGB)

	f := 0.8 + vc.Surround/10
	if f >= 0.9 {
		vc.C = mathutil.Lerp(0.59, 0.69, (f-0.9)*10)
	} else {
		vc.C = mathutil.Lerp(0.525, 0.59, (f-0.8)*10)
	}

	d := 1.0
	if !discounting {
		d = f * (1 - (1/3.6)*math.Exp((-adaptingLuminance-42)/92))
	}
	d = mathutil.Clamp(0, 1, d)
	vc.Nc = f

	for i := range 3 {
		vc.RGBD[i] = d*(100/rgbW[i]) + 1 - d
	}

	k := 1 / (5*adaptingLuminance + 1)
	k4 := k * k * k * k
	k4F := 1 - k4
	vc.Fl = k4*adaptingLuminance + 0.1*k4F*k4F*math.Cbrt(5*adaptingLuminance)
	vc.FlRt = math.Pow(vc.Fl, 0.25)

	vc.N = cie.YFromLStar(vc.BackgroundLStar) / whitePoint[1]
	vc.Z = 1.48 + math.Sqrt(vc.N)
	vc.Nbb = 0.725 / math.Pow(vc.N, 0.2)
	vc.Ncb = vc.Nbb

	var rgbA mathutil.Vec3
	for i := range 3 {
		factor := math.Pow(vc.Fl*vc.RGBD[i]*rgbW[i]/100, 0.42)
		rgbA[i] = 400 * factor / (factor + 27.13)
	}
	vc.Aw = (2*rgbA[0] + rgbA[1] + 0.05*rgbA[2]) * vc.Nbb
	vc.tCoef = math.Pow(1.64-math.Pow(0.29, vc.N), 0.73)
	return vc
}

// WithBackground returns the standard conditions with a different
// background L*.
func WithBackground(backgroundLStar float64) ViewingConditions {
	return NewViewingConditions(
		cie.WhiteD65,
		200/math.Pi*cie.YFromLStar(50)/100,
		backgroundLStar,
		2,
		false,
	)
}

var defaultConditions = WithBackground(50)

// Default returns the standard viewing conditions: D65, an adapting
// luminance of 200/π·Y(50)/100, a mid-grey background and average surround.
func Default() ViewingConditions {
	return defaultConditions
}
