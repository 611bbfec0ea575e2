package hct

import (
	"math"

	"github.com/jmylchreest/tonal/pkg/colour/cam16"
	"github.com/jmylchreest/tonal/pkg/colour/cie"
	"github.com/jmylchreest/tonal/pkg/colour/mathutil"
)

const maxBisectSteps = 8

var noVertex = mathutil.Vec3{-1, -1, -1}

// SolveToRGBA finds the device colour for a hue (degrees), chroma and tone.
// When the request is outside the sRGB gamut, the result keeps the hue and
// tone and has the most chroma available on the gamut surface.
func SolveToRGBA(hue, chroma, tone float64) cie.RGBA {
	if chroma < 0.0001 || tone < 0.0001 || tone > 99.9999 {
		return cie.RGBAFromLStar(tone)
	}
	hueRadians := mathutil.DegToRad(mathutil.SanitizeDegrees(hue))
	y := cie.YFromLStar(tone)
	if exact, ok := cam16.SolveViaJ(hueRadians, chroma, y); ok {
		return exact
	}
	return cie.RGBAFromLinear(bisectToLimit(y, hueRadians))
}

func isBounded(x float64) bool {
	return 0 <= x && x <= 100
}

// nthVertex returns the nth of the 12 possible vertices of the polygon where
// the plane of constant y cuts the RGB cube, in linear RGB. Vertices that
// fall outside the cube are reported as noVertex.
func nthVertex(y float64, n int) mathutil.Vec3 {
	kR, kG, kB := cam16.YFromLinRGB[0], cam16.YFromLinRGB[1], cam16.YFromLinRGB[2]
	coordA := 0.0
	if n%4 > 1 {
		coordA = 100
	}
	coordB := 0.0
	if n%2 != 0 {
		coordB = 100
	}
	switch {
	case n < 4:
		g, b := coordA, coordB
		r := (y - g*kG - b*kB) / kR
		if isBounded(r) {
			return mathutil.Vec3{r, g, b}
		}
	case n < 8:
		b, r := coordA, coordB
		g := (y - r*kR - b*kB) / kG
		if isBounded(g) {
			return mathutil.Vec3{r, g, b}
		}
	default:
		r, g := coordA, coordB
		b := (y - r*kR - g*kG) / kB
		if isBounded(b) {
			return mathutil.Vec3{r, g, b}
		}
	}
	return noVertex
}

// bisectToSegment finds the edge of the constant-y polygon whose endpoints
// bracket targetHue (radians).
func bisectToSegment(y, targetHue float64) (left, right mathutil.Vec3) {
	left, right = noVertex, noVertex
	var leftHue, rightHue float64
	initialized := false
	uncut := true
	for n := range 12 {
		mid := nthVertex(y, n)
		if mid[0] < 0 {
			continue
		}
		midHue := cam16.HueOfLinear(mid)
		if !initialized {
			left, right = mid, mid
			leftHue, rightHue = midHue, midHue
			initialized = true
			continue
		}
		if uncut || mathutil.InCyclicOrder(leftHue, midHue, rightHue) {
			uncut = false
			if mathutil.InCyclicOrder(leftHue, targetHue, midHue) {
				right, rightHue = mid, midHue
			} else {
				left, leftHue = mid, midHue
			}
		}
	}
	return left, right
}

// setCoordinate intersects the segment source-target with the plane where
// the given axis equals coord.
func setCoordinate(source, target mathutil.Vec3, coord float64, axis int) mathutil.Vec3 {
	t := (coord - source[axis]) / (target[axis] - source[axis])
	return mathutil.LerpVec3(source, target, t)
}

func criticalPlaneBelow(x float64) int { return int(math.Floor(x - 0.5)) }

func criticalPlaneAbove(x float64) int { return int(math.Ceil(x - 0.5)) }

// trueDelinearized maps a linear 0-100 channel onto the unrounded 0-255
// gamma encoded scale.
func trueDelinearized(component float64) float64 {
	normalized := component / 100
	var v float64
	if normalized <= 0.0031308 {
		v = normalized * 12.92
	} else {
		v = 1.055*math.Pow(normalized, 1/2.4) - 0.055
	}
	return v * 255
}

// bisectToLimit finds the colour on the surface of the RGB cube with the
// given y and hue (radians), in linear RGB.
func bisectToLimit(y, targetHue float64) mathutil.Vec3 {
	left, right := bisectToSegment(y, targetHue)
	leftHue := cam16.HueOfLinear(left)
	for axis := range 3 {
		if left[axis] == right[axis] {
			continue
		}
		var lPlane, rPlane int
		if left[axis] < right[axis] {
			lPlane = criticalPlaneBelow(trueDelinearized(left[axis]))
			rPlane = criticalPlaneAbove(trueDelinearized(right[axis]))
		} else {
			lPlane = criticalPlaneAbove(trueDelinearized(left[axis]))
			rPlane = criticalPlaneBelow(trueDelinearized(right[axis]))
		}
		for range maxBisectSteps {
			if abs(rPlane-lPlane) <= 1 {
				break
			}
			mPlane := int(math.Floor(float64(lPlane+rPlane) / 2))
			mid := setCoordinate(left, right, criticalPlanes[mPlane], axis)
			midHue := cam16.HueOfLinear(mid)
			if mathutil.InCyclicOrder(leftHue, targetHue, midHue) {
				right = mid
				rPlane = mPlane
			} else {
				left, leftHue = mid, midHue
				lPlane = mPlane
			}
		}
	}
	return mathutil.Midpoint(left, right)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
