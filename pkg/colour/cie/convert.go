package cie

import (
	"math"

	"github.com/jmylchreest/tonal/pkg/colour/mathutil"
)

// SRGBToXYZ converts linear sRGB (0-100) to XYZ (0-100).
var SRGBToXYZ = mathutil.Mat3{
	{0.41233895, 0.35762064, 0.18051042},
	{0.2126, 0.7152, 0.0722},
	{0.01932141, 0.11916382, 0.95034478},
}

// XYZToSRGB converts XYZ (0-100) to linear sRGB (0-100).
var XYZToSRGB = mathutil.Mat3{
	{3.2413774792388685, -1.5376652402851851, -0.49885366846268053},
	{-0.9691452513005321, 1.8758853451067872, 0.04156585616912061},
	{0.05562093689691305, -0.20395524564742123, 1.0571799111220335},
}

// WhiteD65 is the standard D65 white point in XYZ (0-100).
var WhiteD65 = mathutil.Vec3{95.047, 100.0, 108.883}

const (
	labEpsilon = 216.0 / 24389.0
	labKappa   = 24389.0 / 27.0
)

// Linearize converts a gamma encoded sRGB byte into a linear component on a
// 0-100 scale.
func Linearize(component uint8) float64 {
	normalized := float64(component) / 255
	if normalized <= 0.040449936 {
		return normalized / 12.92 * 100
	}
	return math.Pow((normalized+0.055)/1.055, 2.4) * 100
}

// Delinearize converts a linear 0-100 component into a gamma encoded byte.
// Out of range input is clamped; rounding is half-up.
func Delinearize(component float64) uint8 {
	normalized := component / 100
	var v float64
	if normalized <= 0.0031308 {
		v = normalized * 12.92
	} else {
		v = 1.055*math.Pow(normalized, 1/2.4) - 0.055
	}
	return uint8(mathutil.ClampInt(0, 255, roundHalfUp(v*255)))
}

// LinearFromRGBA returns the linear components of c on a 0-100 scale.
func LinearFromRGBA(c RGBA) mathutil.Vec3 {
	return mathutil.Vec3{Linearize(c.R), Linearize(c.G), Linearize(c.B)}
}

// RGBAFromLinear delinearizes linear 0-100 components into an opaque colour.
func RGBAFromLinear(lin mathutil.Vec3) RGBA {
	return Opaque(Delinearize(lin[0]), Delinearize(lin[1]), Delinearize(lin[2]))
}

// XYZFromRGBA converts a colour to XYZ (0-100).
func XYZFromRGBA(c RGBA) mathutil.Vec3 {
	return mathutil.MatMul(LinearFromRGBA(c), SRGBToXYZ)
}

// RGBAFromXYZ converts XYZ (0-100) to an opaque colour.
func RGBAFromXYZ(xyz mathutil.Vec3) RGBA {
	return RGBAFromLinear(mathutil.MatMul(xyz, XYZToSRGB))
}

// YFromLStar converts an L* value to the Y component of XYZ (0-100).
func YFromLStar(lstar float64) float64 {
	return 100 * labInvF((lstar+16)/116)
}

// LStarFromY converts the Y component of XYZ (0-100) to L*.
func LStarFromY(y float64) float64 {
	return labF(y/100)*116 - 16
}

// LStarFromRGBA returns the L* of a colour, which is its HCT tone.
func LStarFromRGBA(c RGBA) float64 {
	return LStarFromY(XYZFromRGBA(c)[1])
}

// RGBAFromLStar returns the grey with the given L*.
func RGBAFromLStar(lstar float64) RGBA {
	v := Delinearize(YFromLStar(lstar))
	return Opaque(v, v, v)
}

func labF(t float64) float64 {
	if t > labEpsilon {
		return math.Cbrt(t)
	}
	return (labKappa*t + 16) / 116
}

func labInvF(ft float64) float64 {
	ft3 := ft * ft * ft
	if ft3 > labEpsilon {
		return ft3
	}
	return (116*ft - 16) / labKappa
}

// roundHalfUp rounds to the nearest integer, with halves going up.
func roundHalfUp(v float64) int {
	return int(math.Floor(v + 0.5))
}
