package cam16

import (
	"math"

	"github.com/jmylchreest/tonal/pkg/colour/cie"
	"github.com/jmylchreest/tonal/pkg/colour/mathutil"
)

// The scaled-discount matrices fold the sRGB->XYZ->CAM16 RGB transforms and
// the default conditions' RGBD and Fl factors into a single step.
var (
	scaledDiscountFromLinRGB = mathutil.Mat3{
		{0.001200833568784504, 0.002389694492170889, 0.0002795742885861124},
		{0.0005891086651375999, 0.0029785502573438758, 0.0003270666104008398},
		{0.00010146692491640572, 0.0005364214359186694, 0.0032979401770712076},
	}
	linRGBFromScaledDiscount = mathutil.Mat3{
		{1373.2198709594231, -1100.4251190754821, -7.278681089101213},
		{-271.815969077903, 559.6580465940733, -32.46047482791194},
		{1.9622899599665666, -57.173814538844006, 308.7233197812385},
	}
)

// YFromLinRGB holds the luminance weights of linear sRGB.
var YFromLinRGB = mathutil.Vec3{0.2126, 0.7152, 0.0722}

const (
	maxSolveIterations = 5
	solveTolerance     = 0.002
)

func chromaticAdaptation(component float64) float64 {
	af := math.Pow(math.Abs(component), 0.42)
	return mathutil.Signum(component) * 400 * af / (af + 27.13)
}

func inverseChromaticAdaptation(adapted float64) float64 {
	abs := math.Abs(adapted)
	base := math.Max(0, 27.13*abs/(400-abs))
	return mathutil.Signum(adapted) * math.Pow(base, 1/0.42)
}

// HueOfLinear returns the CAM16 hue, in radians, of a linear sRGB (0-100)
// colour under the default viewing conditions.
func HueOfLinear(linrgb mathutil.Vec3) float64 {
	sd := mathutil.MatMul(linrgb, scaledDiscountFromLinRGB)
	rA := chromaticAdaptation(sd[0])
	gA := chromaticAdaptation(sd[1])
	bA := chromaticAdaptation(sd[2])
	a := (11*rA + -12*gA + bA) / 11
	b := (rA + gA - 2*bA) / 9
	return math.Atan2(b, a)
}

// SolveViaJ inverts the model for a hue (radians), a chroma and a target
// relative luminance y (0-100) under the default viewing conditions. It runs
// a Newton iteration on J and reports false when an intermediate linear
// channel leaves the sRGB cube, in which case the caller has to search the
// gamut boundary instead.
func SolveViaJ(hueRadians, chroma, y float64) (cie.RGBA, bool) {
	vc := defaultConditions
	// Initial estimate of j.
	j := math.Sqrt(y) * 11

	tInnerCoeff := 1 / vc.tCoef
	eHue := 0.25 * (math.Cos(hueRadians+2) + 3.8)
	p1 := eHue * (50000.0 / 13.0) * vc.Nc * vc.Ncb
	hSin := math.Sin(hueRadians)
	hCos := math.Cos(hueRadians)

	for round := range maxSolveIterations {
		jNormalized := j / 100
		alpha := 0.0
		if chroma != 0 && j != 0 {
			alpha = chroma / math.Sqrt(jNormalized)
		}
		t := math.Pow(alpha*tInnerCoeff, 1/0.9)
		ac := vc.Aw * math.Pow(jNormalized, 1/vc.C/vc.Z)
		p2 := ac / vc.Nbb
		gamma := 23 * (p2 + 0.305) * t / (23*p1 + 11*t*hCos + 108*t*hSin)
		a := gamma * hCos
		b := gamma * hSin
		rA := (460*p2 + 451*a + 288*b) / 1403
		gA := (460*p2 - 891*a - 261*b) / 1403
		bA := (460*p2 - 220*a - 6300*b) / 1403

		scaled := mathutil.Vec3{
			inverseChromaticAdaptation(rA),
			inverseChromaticAdaptation(gA),
			inverseChromaticAdaptation(bA),
		}
		linrgb := mathutil.MatMul(scaled, linRGBFromScaledDiscount)
		if linrgb[0] < 0 || linrgb[1] < 0 || linrgb[2] < 0 {
			return cie.RGBA{}, false
		}
		fnj := YFromLinRGB[0]*linrgb[0] + YFromLinRGB[1]*linrgb[1] + YFromLinRGB[2]*linrgb[2]
		if fnj <= 0 {
			return cie.RGBA{}, false
		}
		if round == maxSolveIterations-1 || math.Abs(fnj-y) < solveTolerance {
			if linrgb[0] > 100.01 || linrgb[1] > 100.01 || linrgb[2] > 100.01 {
				return cie.RGBA{}, false
			}
			return cie.RGBAFromLinear(linrgb), true
		}
		// Iterates with Newton's method, using 2 * fn(j) / j as the
		// approximation of fn'(j).
		j -= (fnj - y) * j / (2 * fnj)
	}
	return cie.RGBA{}, false
}
