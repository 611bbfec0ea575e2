package cie

import (
	"math"

	"github.com/jmylchreest/tonal/pkg/colour/mathutil"
	"github.com/lucasb-eyer/go-colorful"
)

// LAB is a CIE L*a*b* colour relative to the D65 white point.
type LAB struct {
	L, A, B float64
}

// LABFromXYZ converts XYZ (0-100) to L*a*b*.
func LABFromXYZ(xyz mathutil.Vec3) LAB {
	fx := labF(xyz[0] / WhiteD65[0])
	fy := labF(xyz[1] / WhiteD65[1])
	fz := labF(xyz[2] / WhiteD65[2])
	return LAB{L: 116*fy - 16, A: 500 * (fx - fy), B: 200 * (fy - fz)}
}

// XYZ converts back to XYZ (0-100).
func (l LAB) XYZ() mathutil.Vec3 {
	fy := (l.L + 16) / 116
	fx := l.A/500 + fy
	fz := fy - l.B/200
	return mathutil.Vec3{
		labInvF(fx) * WhiteD65[0],
		labInvF(fy) * WhiteD65[1],
		labInvF(fz) * WhiteD65[2],
	}
}

// LABFromRGBA converts a colour to L*a*b*.
func LABFromRGBA(c RGBA) LAB {
	return LABFromXYZ(XYZFromRGBA(c))
}

// RGBA converts to the nearest opaque device colour.
func (l LAB) RGBA() RGBA {
	return RGBAFromXYZ(l.XYZ())
}

// Chroma is the distance from the neutral axis.
func (l LAB) Chroma() float64 {
	return math.Hypot(l.A, l.B)
}

// Hue is the a*b* angle in degrees, in [0, 360).
func (l LAB) Hue() float64 {
	return mathutil.SanitizeDegrees(mathutil.RadToDeg(math.Atan2(l.B, l.A)))
}

// DeltaE returns the squared Euclidean distance between two L*a*b* colours.
// It is monotonic with the true distance and avoids the square root in hot
// loops.
func DeltaE(a, b LAB) float64 {
	dl := a.L - b.L
	da := a.A - b.A
	db := a.B - b.B
	return dl*dl + da*da + db*db
}

// EuclideanDistance is the CIE76 colour difference.
func EuclideanDistance(a, b LAB) float64 {
	return math.Sqrt(DeltaE(a, b))
}

// CIEDE2000 returns the CIEDE2000 colour difference between two colours with
// the parametric factors kL, kC and kH set to 1. go-colorful works on a 0-1
// L* scale, hence the scaling on the way in and out.
func CIEDE2000(lab1, lab2 LAB) float64 {
	c1 := colorful.Lab(lab1.L/100, lab1.A/100, lab1.B/100)
	c2 := colorful.Lab(lab2.L/100, lab2.A/100, lab2.B/100)
	return c1.DistanceCIEDE2000(c2) * 100
}
