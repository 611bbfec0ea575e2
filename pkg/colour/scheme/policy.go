package scheme

import (
	"github.com/jmylchreest/tonal/pkg/colour/dislike"
	"github.com/jmylchreest/tonal/pkg/colour/hct"
	"github.com/jmylchreest/tonal/pkg/colour/mathutil"
	"github.com/jmylchreest/tonal/pkg/colour/palettes"
	"github.com/jmylchreest/tonal/pkg/colour/temperature"
)

// hueRotation maps ranges of source hue to the rotation applied to it: a
// source hue strictly between hues[i] and hues[i+1] is rotated by
// rotations[i].
type hueRotation struct {
	hues      []float64
	rotations []float64
}

func (r hueRotation) apply(source hct.HCT) float64 {
	if len(r.rotations) == 1 {
		return mathutil.SanitizeDegrees(source.Hue + r.rotations[0])
	}
	for i := 0; i < len(r.hues)-1; i++ {
		if r.hues[i] < source.Hue && source.Hue < r.hues[i+1] {
			return mathutil.SanitizeDegrees(source.Hue + r.rotations[i])
		}
	}
	return source.Hue
}

var (
	vibrantHues      = []float64{0, 41, 61, 101, 131, 181, 251, 301, 360}
	vibrantSecondary = hueRotation{vibrantHues, []float64{18, 15, 10, 12, 15, 18, 15, 12, 12}}
	vibrantTertiary  = hueRotation{vibrantHues, []float64{35, 30, 20, 25, 30, 35, 30, 25, 25}}

	expressiveHues      = []float64{0, 21, 51, 121, 151, 191, 271, 321, 360}
	expressiveSecondary = hueRotation{expressiveHues, []float64{45, 95, 45, 20, 45, 90, 45, 45, 45}}
	expressiveTertiary  = hueRotation{expressiveHues, []float64{120, 120, 20, 45, 20, 15, 20, 120, 120}}
)

func tp(hue, chroma float64) palettes.TonalPalette {
	return palettes.NewTonalPalette(hue, chroma)
}

// variantPalettes holds the palette policy of every built-in variant.
var variantPalettes = map[Variant]func(source hct.HCT) palettes.CorePalette{
	Monochrome: func(s hct.HCT) palettes.CorePalette {
		grey := tp(s.Hue, 0)
		return palettes.CorePalette{
			Primary: grey, Secondary: grey, Tertiary: grey,
			Neutral: grey, NeutralVariant: grey,
			Error: palettes.ErrorPalette(),
		}
	},
	Neutral: func(s hct.HCT) palettes.CorePalette {
		return palettes.CorePalette{
			Primary:        tp(s.Hue, 12),
			Secondary:      tp(s.Hue, 8),
			Tertiary:       tp(s.Hue+60, 16),
			Neutral:        tp(s.Hue, 2),
			NeutralVariant: tp(s.Hue, 2),
			Error:          palettes.ErrorPalette(),
		}
	},
	TonalSpot: func(s hct.HCT) palettes.CorePalette {
		return palettes.CorePalette{
			Primary:        tp(s.Hue, 36),
			Secondary:      tp(s.Hue, 16),
			Tertiary:       tp(s.Hue+60, 24),
			Neutral:        tp(s.Hue, 6),
			NeutralVariant: tp(s.Hue, 8),
			Error:          palettes.ErrorPalette(),
		}
	},
	Vibrant: func(s hct.HCT) palettes.CorePalette {
		return palettes.CorePalette{
			Primary:        tp(s.Hue, 200),
			Secondary:      tp(vibrantSecondary.apply(s), 24),
			Tertiary:       tp(vibrantTertiary.apply(s), 32),
			Neutral:        tp(s.Hue, 10),
			NeutralVariant: tp(s.Hue, 12),
			Error:          palettes.ErrorPalette(),
		}
	},
	Expressive: func(s hct.HCT) palettes.CorePalette {
		return palettes.CorePalette{
			Primary:        tp(s.Hue+240, 40),
			Secondary:      tp(expressiveSecondary.apply(s), 24),
			Tertiary:       tp(expressiveTertiary.apply(s), 32),
			Neutral:        tp(s.Hue+15, 8),
			NeutralVariant: tp(s.Hue+15, 12),
			Error:          palettes.ErrorPalette(),
		}
	},
	Fidelity: func(s hct.HCT) palettes.CorePalette {
		tertiary := dislike.Fix(temperature.Build(s).Complement())
		return faithfulPalettes(s, palettes.FromHCT(tertiary))
	},
	Content: func(s hct.HCT) palettes.CorePalette {
		tertiary := dislike.Fix(temperature.Build(s).Analogous(3, 6)[2])
		return faithfulPalettes(s, palettes.FromHCT(tertiary))
	},
	Rainbow: func(s hct.HCT) palettes.CorePalette {
		return palettes.CorePalette{
			Primary:        tp(s.Hue, 48),
			Secondary:      tp(s.Hue, 16),
			Tertiary:       tp(s.Hue+60, 24),
			Neutral:        tp(s.Hue, 0),
			NeutralVariant: tp(s.Hue, 0),
			Error:          palettes.ErrorPalette(),
		}
	},
	FruitSalad: func(s hct.HCT) palettes.CorePalette {
		return palettes.CorePalette{
			Primary:        tp(s.Hue-50, 48),
			Secondary:      tp(s.Hue-50, 36),
			Tertiary:       tp(s.Hue, 36),
			Neutral:        tp(s.Hue, 10),
			NeutralVariant: tp(s.Hue, 16),
			Error:          palettes.ErrorPalette(),
		}
	},
}

// faithfulPalettes keeps the source chroma for primary and scales the rest
// from it.
func faithfulPalettes(s hct.HCT, tertiary palettes.TonalPalette) palettes.CorePalette {
	return palettes.CorePalette{
		Primary:        tp(s.Hue, s.Chroma),
		Secondary:      tp(s.Hue, max(s.Chroma-32, s.Chroma*0.5)),
		Tertiary:       tertiary,
		Neutral:        tp(s.Hue, s.Chroma/8),
		NeutralVariant: tp(s.Hue, s.Chroma/8+4),
		Error:          palettes.ErrorPalette(),
	}
}
