package palettes

import (
	"github.com/jmylchreest/tonal/pkg/colour/hct"
)

// Error palette constants, shared by every scheme.
const (
	ErrorHue    = 25
	ErrorChroma = 84
)

// CorePalette is the set of tonal palettes derived from one seed colour.
type CorePalette struct {
	Primary        TonalPalette `json:"primary"`
	Secondary      TonalPalette `json:"secondary"`
	Tertiary       TonalPalette `json:"tertiary"`
	Neutral        TonalPalette `json:"neutral"`
	NeutralVariant TonalPalette `json:"neutral_variant"`
	Error          TonalPalette `json:"error"`
}

// NewCorePalette derives the core palettes from a seed. In content mode the
// palettes keep the seed's own chroma so the result stays faithful to the
// source image; otherwise chroma follows fixed Material levels.
func NewCorePalette(seed hct.HCT, content bool) CorePalette {
	h, c := seed.Hue, seed.Chroma
	p := CorePalette{Error: ErrorPalette()}
	if content {
		p.Primary = NewTonalPalette(h, c)
		p.Secondary = NewTonalPalette(h, c/3)
		p.Tertiary = NewTonalPalette(h+60, c/2)
		p.Neutral = NewTonalPalette(h, min(c/12, 4))
		p.NeutralVariant = NewTonalPalette(h, min(c/6, 8))
		return p
	}
	p.Primary = NewTonalPalette(h, max(48, c))
	p.Secondary = NewTonalPalette(h, 16)
	p.Tertiary = NewTonalPalette(h+60, 24)
	p.Neutral = NewTonalPalette(h, 4)
	p.NeutralVariant = NewTonalPalette(h, 8)
	return p
}

// ErrorPalette returns the red palette used for error roles.
func ErrorPalette() TonalPalette {
	return NewTonalPalette(ErrorHue, ErrorChroma)
}
