package cam16

import (
	"math"

	"github.com/jmylchreest/tonal/pkg/colour/cie"
	"github.com/jmylchreest/tonal/pkg/colour/mathutil"
)

// CAM16 is a colour described by the CAM16 appearance model, plus its
// CAM16-UCS coordinates.
type CAM16 struct {
	// Hue in degrees, [0, 360).
	Hue float64
	// Chroma relative to the brightness of white.
	Chroma float64
	// J is lightness.
	J float64
	// Q is brightness.
	Q float64
	// M is colourfulness.
	M float64
	// S is saturation.
	S float64

	// JStar, AStar and BStar are the CAM16-UCS coordinates.
	JStar float64
	AStar float64
	BStar float64
}

// FromRGBA returns the appearance of c under the default viewing conditions.
func FromRGBA(c cie.RGBA) CAM16 {
	return FromRGBAInViewingConditions(c, defaultConditions)
}

// FromRGBAInViewingConditions returns the appearance of c under vc.
func FromRGBAInViewingConditions(c cie.RGBA, vc ViewingConditions) CAM16 {
	return FromXYZInViewingConditions(cie.XYZFromRGBA(c), vc)
}

// FromXYZInViewingConditions returns the appearance of an XYZ (0-100)
// colour under vc.
func FromXYZInViewingConditions(xyz mathutil.Vec3, vc ViewingConditions) CAM16 {
	rgbT := mathutil.MatMul(xyz, XYZToCAM16RGB)

	var rgbA mathutil.Vec3
	for i := range 3 {
		d := vc.RGBD[i] * rgbT[i]
		af := math.Pow(vc.Fl*math.Abs(d)/100, 0.42)
		rgbA[i] = mathutil.Signum(d) * 400 * af / (af + 27.13)
	}
	rA, gA, bA := rgbA[0], rgbA[1], rgbA[2]

	// redness-greenness
	a := (11*rA + -12*gA + bA) / 11
	// yellowness-blueness
	b := (rA + gA - 2*bA) / 9
	u := (20*rA + 20*gA + 21*bA) / 20
	p2 := (40*rA + 20*gA + bA) / 20

	hue := mathutil.SanitizeDegrees(mathutil.RadToDeg(math.Atan2(b, a)))
	hueRadians := mathutil.DegToRad(hue)

	ac := p2 * vc.Nbb
	j := 100 * math.Pow(ac/vc.Aw, vc.C*vc.Z)
	q := 4 / vc.C * math.Sqrt(j/100) * (vc.Aw + 4) * vc.FlRt

	huePrime := hue
	if hue < 20.14 {
		huePrime += 360
	}
	eHue := 0.25 * (math.Cos(mathutil.DegToRad(huePrime)+2) + 3.8)
	p1 := 50000.0 / 13.0 * eHue * vc.Nc * vc.Ncb
	t := p1 * math.Hypot(a, b) / (u + 0.305)
	alpha := vc.tCoef * math.Pow(t, 0.9)

	c := alpha * math.Sqrt(j/100)
	m := c * vc.FlRt
	s := 50 * math.Sqrt(alpha*vc.C/(vc.Aw+4))

	jstar := (1 + 100*0.007) * j / (1 + 0.007*j)
	mstar := 1 / 0.0228 * math.Log1p(0.0228*m)
	return CAM16{
		Hue:    hue,
		Chroma: c,
		J:      j,
		Q:      q,
		M:      m,
		S:      s,
		JStar:  jstar,
		AStar:  mstar * math.Cos(hueRadians),
		BStar:  mstar * math.Sin(hueRadians),
	}
}

// FromJCH builds a colour from lightness, chroma and hue under the default
// viewing conditions.
func FromJCH(j, c, h float64) CAM16 {
	return FromJCHInViewingConditions(j, c, h, defaultConditions)
}

// FromJCHInViewingConditions builds a colour from lightness, chroma and hue.
func FromJCHInViewingConditions(j, c, h float64, vc ViewingConditions) CAM16 {
	q := 4 / vc.C * math.Sqrt(j/100) * (vc.Aw + 4) * vc.FlRt
	m := c * vc.FlRt
	alpha := c / math.Sqrt(j/100)
	s := 50 * math.Sqrt(alpha*vc.C/(vc.Aw+4))

	hueRadians := mathutil.DegToRad(h)
	jstar := (1 + 100*0.007) * j / (1 + 0.007*j)
	mstar := 1 / 0.0228 * math.Log1p(0.0228*m)
	return CAM16{
		Hue:    h,
		Chroma: c,
		J:      j,
		Q:      q,
		M:      m,
		S:      s,
		JStar:  jstar,
		AStar:  mstar * math.Cos(hueRadians),
		BStar:  mstar * math.Sin(hueRadians),
	}
}

// FromUCS builds a colour from CAM16-UCS coordinates under the default
// viewing conditions.
func FromUCS(jstar, astar, bstar float64) CAM16 {
	return FromUCSInViewingConditions(jstar, astar, bstar, defaultConditions)
}

// FromUCSInViewingConditions builds a colour from CAM16-UCS coordinates.
func FromUCSInViewingConditions(jstar, astar, bstar float64, vc ViewingConditions) CAM16 {
	m := math.Hypot(astar, bstar)
	m2 := math.Expm1(m*0.0228) / 0.0228
	c := m2 / vc.FlRt
	h := math.Atan2(bstar, astar) * (180 / math.Pi)
	if h < 0 {
		h += 360
	}
	j := jstar / (1 - (jstar-100)*0.007)
	return FromJCHInViewingConditions(j, c, h, vc)
}

// Distance is the CAM16-UCS colour difference between two colours.
func (c CAM16) Distance(other CAM16) float64 {
	dJ := c.JStar - other.JStar
	dA := c.AStar - other.AStar
	dB := c.BStar - other.BStar
	dEPrime := math.Sqrt(dJ*dJ + dA*dA + dB*dB)
	return 1.41 * math.Pow(dEPrime, 0.63)
}

// ToRGBA converts the colour back to a device colour under the default
// viewing conditions.
func (c CAM16) ToRGBA() cie.RGBA {
	return c.ToRGBAInViewingConditions(defaultConditions)
}

// ToRGBAInViewingConditions converts the colour back to a device colour.
func (c CAM16) ToRGBAInViewingConditions(vc ViewingConditions) cie.RGBA {
	return cie.RGBAFromXYZ(c.XYZInViewingConditions(vc))
}

// XYZInViewingConditions returns the XYZ (0-100) coordinates that produce
// this appearance under vc.
func (c CAM16) XYZInViewingConditions(vc ViewingConditions) mathutil.Vec3 {
	alpha := 0.0
	if c.Chroma != 0 && c.J != 0 {
		alpha = c.Chroma / math.Sqrt(c.J/100)
	}
	t := math.Pow(alpha/vc.tCoef, 1/0.9)
	hRad := mathutil.DegToRad(c.Hue)

	eHue := 0.25 * (math.Cos(hRad+2) + 3.8)
	ac := vc.Aw * math.Pow(c.J/100, 1/vc.C/vc.Z)
	p1 := eHue * (50000.0 / 13.0) * vc.Nc * vc.Ncb
	p2 := ac / vc.Nbb

	hSin := math.Sin(hRad)
	hCos := math.Cos(hRad)

	gamma := 23 * (p2 + 0.305) * t / (23*p1 + 11*t*hCos + 108*t*hSin)
	a := gamma * hCos
	b := gamma * hSin
	rgbA := mathutil.Vec3{
		(460*p2 + 451*a + 288*b) / 1403,
		(460*p2 - 891*a - 261*b) / 1403,
		(460*p2 - 220*a - 6300*b) / 1403,
	}

	var rgbF mathutil.Vec3
	for i := range 3 {
		base := math.Max(0, 27.13*math.Abs(rgbA[i])/(400-math.Abs(rgbA[i])))
		rc := mathutil.Signum(rgbA[i]) * (100 / vc.Fl) * math.Pow(base, 1/0.42)
		rgbF[i] = rc / vc.RGBD[i]
	}
	return mathutil.MatMul(rgbF, CAM16RGBToXYZ)
}
