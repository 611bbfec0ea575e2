// Package temperature orders hues by a warm/cool heuristic and uses that
// ordering to pick complementary and analogous colours.
//
// A Cache is built once for an input colour and is read-only afterwards, so
// a single Cache may be shared between goroutines.
package temperature

import (
	"math"
	"slices"

	"github.com/jmylchreest/tonal/pkg/colour/cie"
	"github.com/jmylchreest/tonal/pkg/colour/hct"
	"github.com/jmylchreest/tonal/pkg/colour/mathutil"
)

const hueCount = 361

// Request describes the colour a Cache is built for.
type Request struct {
	Input hct.HCT
}

// Build computes the cache for the request.
func (r Request) Build() *Cache {
	return Build(r.Input)
}

// Cache holds the temperature of every integer hue at the input's chroma
// and tone.
type Cache struct {
	input     hct.HCT
	inputTemp float64

	byHue   [hueCount]hct.HCT
	tempHue [hueCount]float64

	byTemp  []hct.HCT
	coldest float64
	warmest float64
}

// Build precomputes the hue and temperature tables for input.
func Build(input hct.HCT) *Cache {
	c := &Cache{input: input, inputTemp: RawTemperature(input)}
	for hue := range hueCount {
		h := hct.New(float64(hue), input.Chroma, input.Tone).Normalize()
		c.byHue[hue] = h
		c.tempHue[hue] = RawTemperature(h)
	}

	type entry struct {
		hct  hct.HCT
		temp float64
	}
	entries := make([]entry, 0, hueCount+1)
	for i := range hueCount {
		entries = append(entries, entry{c.byHue[i], c.tempHue[i]})
	}
	entries = append(entries, entry{input, c.inputTemp})
	slices.SortStableFunc(entries, func(a, b entry) int {
		switch {
		case a.temp < b.temp:
			return -1
		case a.temp > b.temp:
			return 1
		}
		return 0
	})
	c.byTemp = make([]hct.HCT, len(entries))
	for i, e := range entries {
		c.byTemp[i] = e.hct
	}
	c.coldest = entries[0].temp
	c.warmest = entries[len(entries)-1].temp
	return c
}

// Input returns the colour the cache was built for.
func (c *Cache) Input() hct.HCT { return c.input }

// ByTemperature returns the cached colours, coldest first.
func (c *Cache) ByTemperature() []hct.HCT {
	return slices.Clone(c.byTemp)
}

// Coldest returns the coldest cached colour.
func (c *Cache) Coldest() hct.HCT { return c.byTemp[0] }

// Warmest returns the warmest cached colour.
func (c *Cache) Warmest() hct.HCT { return c.byTemp[len(c.byTemp)-1] }

// RelativeTemperature places h on a 0 (coldest) to 1 (warmest) scale
// relative to the cached range. A flat range yields 0.5.
func (c *Cache) RelativeTemperature(h hct.HCT) float64 {
	return c.relative(RawTemperature(h))
}

func (c *Cache) relative(temp float64) float64 {
	span := c.warmest - c.coldest
	if span == 0 {
		return 0.5
	}
	return (temp - c.coldest) / span
}

// Complement returns the colour whose relative temperature is closest to
// one minus the input's, searching the arc between the coldest and warmest
// hues that does not contain the input.
func (c *Cache) Complement() hct.HCT {
	coldestHue := c.Coldest().Hue
	warmestHue := c.Warmest().Hue

	startHue, endHue := coldestHue, warmestHue
	if isBetween(c.input.Hue, coldestHue, warmestHue) {
		startHue, endHue = warmestHue, coldestHue
	}

	target := 1 - c.relative(c.inputTemp)
	answer := c.byHue[int(math.Round(c.input.Hue))%360]
	smallest := 1000.0
	for addend := 0; addend <= 360; addend++ {
		hue := mathutil.SanitizeDegrees(startHue + float64(addend))
		if !isBetween(hue, startHue, endHue) {
			continue
		}
		idx := int(math.Round(hue))
		if e := math.Abs(target - c.relative(c.tempHue[idx])); e < smallest {
			smallest = e
			answer = c.byHue[idx]
		}
	}
	return answer
}

// Analogous returns count colours centred on the input, chosen from
// divisions steps of equal temperature change around the hue circle. The
// input is always included; extra colours are split between the cooler
// and warmer side, with the odd one out on the clockwise side.
func (c *Cache) Analogous(count, divisions int) []hct.HCT {
	if count < 1 || divisions < 1 {
		return nil
	}
	startHue := int(math.Round(c.input.Hue)) % 360
	start := c.byHue[startHue]
	lastTemp := c.relative(c.tempHue[startHue])
	all := []hct.HCT{start}

	totalDelta := 0.0
	for i := range 360 {
		hue := mathutil.SanitizeDegreesInt(startHue + i)
		temp := c.relative(c.tempHue[hue])
		totalDelta += math.Abs(temp - lastTemp)
		lastTemp = temp
	}

	step := totalDelta / float64(divisions)
	accumulated := 0.0
	lastTemp = c.relative(c.tempHue[startHue])
	for addend := 1; len(all) < divisions; addend++ {
		hue := mathutil.SanitizeDegreesInt(startHue + addend)
		h := c.byHue[hue]
		temp := c.relative(c.tempHue[hue])
		accumulated += math.Abs(temp - lastTemp)
		lastTemp = temp

		desired := float64(len(all)) * step
		satisfied := accumulated >= desired
		for indexAddend := 1; satisfied && len(all) < divisions; indexAddend++ {
			all = append(all, h)
			desired = float64(len(all)+indexAddend) * step
			satisfied = accumulated >= desired
		}

		if addend >= 360 {
			for len(all) < divisions {
				all = append(all, h)
			}
		}
	}

	answers := make([]hct.HCT, 0, count)
	ccw := (count - 1) / 2
	for i := ccw; i >= 1; i-- {
		answers = append(answers, all[wrapIndex(-i, len(all))])
	}
	answers = append(answers, c.input)
	cw := count - ccw - 1
	for i := 1; i <= cw; i++ {
		answers = append(answers, all[wrapIndex(i, len(all))])
	}
	return answers
}

func wrapIndex(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// isBetween reports whether angle lies on the clockwise arc from a to b,
// all in degrees.
func isBetween(angle, a, b float64) bool {
	if a < b {
		return a <= angle && angle <= b
	}
	return a <= angle || angle <= b
}

// RawTemperature estimates how warm a colour looks from its L*a*b* hue and
// chroma. Results run roughly from -0.5 (cool) to 3 (warm).
func RawTemperature(h hct.HCT) float64 {
	lab := cie.LABFromRGBA(h.ToRGBA())
	hue := lab.Hue()
	chroma := lab.Chroma()
	return -0.5 + 0.02*math.Pow(chroma, 1.07)*math.Cos(mathutil.DegToRad(mathutil.SanitizeDegrees(hue-50)))
}
