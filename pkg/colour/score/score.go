// Package score ranks quantized colours by how well they would work as the
// source colour of a user interface theme.
package score

import (
	"math"
	"slices"

	"github.com/jmylchreest/tonal/pkg/colour/cie"
	"github.com/jmylchreest/tonal/pkg/colour/hct"
	"github.com/jmylchreest/tonal/pkg/colour/mathutil"
	"github.com/jmylchreest/tonal/pkg/colour/quantize"
)

const (
	targetChroma = 48.0

	weightProportion  = 0.6
	weightChromaAbove = 0.3
	weightChromaBelow = 0.1
	weightCloseness   = 0.2

	cutoffChroma            = 5.0
	cutoffExcitedProportion = 0.01

	maxHueDistance = 90
	minHueDistance = 15
)

// Fallback is returned when no colour survives filtering.
var Fallback = cie.Opaque(0x42, 0x85, 0xf4)

// Options controls ranking.
type Options struct {
	// Desired is the maximum number of colours returned.
	Desired int
	// FallbackColor is returned alone when nothing qualifies.
	FallbackColor cie.RGBA
	// Filter drops colours that are nearly grey or whose hue region is
	// barely present in the image.
	Filter bool
}

// DefaultOptions returns four colours, the blue fallback and filtering on.
func DefaultOptions() Options {
	return Options{Desired: 4, FallbackColor: Fallback, Filter: true}
}

type scored struct {
	colour hct.HCT
	score  float64
}

// Score ranks the colours of a quantizer result, best first. The result
// holds at most opts.Desired colours whose hues are spread as far apart as
// the input allows, and is never empty.
func Score(colours *quantize.FrequencyMap[cie.RGBA], opts Options) []hct.HCT {
	desired := max(opts.Desired, 1)

	var (
		candidates    []hct.HCT
		labs          []cie.LAB
		populations   []int
		huePopulation [360]float64
		mean          cie.LAB
		total         float64
	)
	for c, n := range colours.All() {
		h := hct.FromRGBA(c)
		lab := cie.LABFromRGBA(c)
		candidates = append(candidates, h)
		labs = append(labs, lab)
		populations = append(populations, n)

		w := float64(n)
		huePopulation[mathutil.SanitizeDegreesInt(int(math.Floor(h.Hue)))] += w
		mean.L += lab.L * w
		mean.A += lab.A * w
		mean.B += lab.B * w
		total += w
	}

	var ranked []scored
	if total > 0 {
		mean = cie.LAB{L: mean.L / total, A: mean.A / total, B: mean.B / total}

		// Each hue bucket spreads its share over a 30 degree window.
		var excited [360]float64
		for hue, pop := range huePopulation {
			if pop == 0 {
				continue
			}
			proportion := pop / total
			for i := hue - 14; i < hue+16; i++ {
				excited[mathutil.SanitizeDegreesInt(i)] += proportion
			}
		}

		for i, h := range candidates {
			proportion := excited[mathutil.SanitizeDegreesInt(int(math.Round(h.Hue)))]
			if opts.Filter && (h.Chroma < cutoffChroma || proportion <= cutoffExcitedProportion) {
				continue
			}
			chromaWeight := weightChromaAbove
			if h.Chroma < targetChroma {
				chromaWeight = weightChromaBelow
			}
			s := proportion*100*weightProportion +
				(h.Chroma-targetChroma)*chromaWeight -
				cie.CIEDE2000(labs[i], mean)*weightCloseness
			ranked = append(ranked, scored{colour: h, score: s})
		}
	}
	slices.SortStableFunc(ranked, func(a, b scored) int {
		switch {
		case a.score > b.score:
			return -1
		case a.score < b.score:
			return 1
		}
		return 0
	})

	chosen := pickSpread(ranked, desired)
	if len(chosen) == 0 {
		return []hct.HCT{hct.FromRGBA(opts.FallbackColor)}
	}
	return chosen
}

// pickSpread walks the ranking greedily, keeping colours at least the
// current hue distance from everything already kept, and relaxes the
// distance one degree at a time until enough colours are found.
func pickSpread(ranked []scored, desired int) []hct.HCT {
	var chosen []hct.HCT
	for distance := maxHueDistance; distance >= minHueDistance; distance-- {
		chosen = chosen[:0]
		for _, r := range ranked {
			ok := true
			for _, c := range chosen {
				if mathutil.DifferenceDegrees(r.colour.Hue, c.Hue) < float64(distance) {
					ok = false
					break
				}
			}
			if ok {
				chosen = append(chosen, r.colour)
			}
			if len(chosen) >= desired {
				break
			}
		}
		if len(chosen) >= desired {
			break
		}
	}
	return chosen
}
