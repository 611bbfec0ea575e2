// Package cie converts between device sRGB, linear RGB, CIE XYZ and CIE L*a*b*.
//
// Linear RGB and XYZ values use a 0-100 scale, matching the conventions of
// the CAM16 and HCT packages built on top of this one.
package cie

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/jmylchreest/tonal/pkg/colour/mathutil"
)

// RGBA is a device sRGB colour. R, G and B are gamma encoded bytes and A is
// the opacity on a 0-100 scale. The components are not premultiplied.
type RGBA struct {
	R uint8   `json:"r"`
	G uint8   `json:"g"`
	B uint8   `json:"b"`
	A float64 `json:"a"`
}

// Opaque returns a fully opaque colour.
func Opaque(r, g, b uint8) RGBA {
	return RGBA{R: r, G: g, B: b, A: 100}
}

// A8 returns the alpha component on the 0-255 byte scale.
func (c RGBA) A8() uint8 {
	return uint8(mathutil.ClampInt(0, 255, roundHalfUp(c.A*255/100)))
}

// WithAlpha returns c with its alpha replaced, clamped to [0, 100].
func (c RGBA) WithAlpha(a float64) RGBA {
	c.A = mathutil.Clamp(0, 100, a)
	return c
}

// RGBA implements color.Color. Components are premultiplied by alpha as the
// interface requires.
func (c RGBA) RGBA() (r, g, b, a uint32) {
	fa := mathutil.Clamp(0, 100, c.A) / 100
	r = uint32(float64(c.R)*257*fa + 0.5)
	g = uint32(float64(c.G)*257*fa + 0.5)
	b = uint32(float64(c.B)*257*fa + 0.5)
	a = uint32(fa*65535 + 0.5)
	return
}

// FromColor converts any color.Color, undoing its alpha premultiplication.
func FromColor(c color.Color) RGBA {
	if v, ok := c.(RGBA); ok {
		return v
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return RGBA{R: n.R, G: n.G, B: n.B, A: float64(n.A) * 100 / 255}
}

// FromARGB unpacks a 0xAARRGGBB integer.
func FromARGB(argb uint32) RGBA {
	return RGBA{
		R: uint8(argb >> 16),
		G: uint8(argb >> 8),
		B: uint8(argb),
		A: float64(uint8(argb>>24)) * 100 / 255,
	}
}

// ARGB packs the colour as 0xAARRGGBB.
func (c RGBA) ARGB() uint32 {
	return uint32(c.A8())<<24 | uint32(c.R)<<16 | uint32(c.G)<<8 | uint32(c.B)
}

// Hex returns "#rrggbb", or "#rrggbbaa" when the colour is translucent.
func (c RGBA) Hex() string {
	if c.A8() == 255 {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A8())
}

func (c RGBA) String() string {
	return c.Hex()
}

// FromHex parses "#rgb", "#rrggbb" or "#rrggbbaa"; the leading '#' is optional.
func FromHex(s string) (RGBA, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) == 6 {
		h += "ff"
	}
	if len(h) != 8 {
		return RGBA{}, fmt.Errorf("invalid hex colour %q", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return RGBA{}, fmt.Errorf("invalid hex colour %q: %w", s, err)
	}
	return RGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: float64(uint8(v)) * 100 / 255,
	}, nil
}
