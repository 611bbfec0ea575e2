package score

import (
	"testing"

	"github.com/jmylchreest/tonal/pkg/colour/cie"
	"github.com/jmylchreest/tonal/pkg/colour/hct"
	"github.com/jmylchreest/tonal/pkg/colour/mathutil"
	"github.com/jmylchreest/tonal/pkg/colour/quantize"
)

func frequencies(pairs map[uint32]int) *quantize.FrequencyMap[cie.RGBA] {
	m := quantize.NewFrequencyMap[cie.RGBA]()
	for argb, n := range pairs {
		m.Add(cie.FromARGB(argb), n)
	}
	return m
}

func hexes(cs []hct.HCT) map[string]bool {
	out := make(map[string]bool, len(cs))
	for _, c := range cs {
		out[c.ToRGBA().Hex()] = true
	}
	return out
}

func TestScorePrefersChroma(t *testing.T) {
	got := Score(frequencies(map[uint32]int{
		0xff000000: 1,
		0xffffffff: 1,
		0xff0000ff: 1,
	}), DefaultOptions())
	if len(got) != 1 || got[0].ToRGBA().Hex() != "#0000ff" {
		t.Errorf("Score() = %v, want only blue", hexes(got))
	}
}

func TestScoreWellSeparatedHues(t *testing.T) {
	got := Score(frequencies(map[uint32]int{
		0xffff0000: 1,
		0xff00ff00: 1,
		0xff0000ff: 1,
	}), DefaultOptions())
	want := map[string]bool{"#ff0000": true, "#00ff00": true, "#0000ff": true}
	h := hexes(got)
	if len(got) != 3 || len(h) != 3 {
		t.Fatalf("Score() = %v, want three colours", h)
	}
	for k := range want {
		if !h[k] {
			t.Errorf("Score() missing %s, got %v", k, h)
		}
	}
}

func TestScorePopulationFirst(t *testing.T) {
	got := Score(frequencies(map[uint32]int{
		0xffff0000: 10,
		0xff0000ff: 1,
	}), DefaultOptions())
	if len(got) != 2 {
		t.Fatalf("Score() returned %d colours, want 2", len(got))
	}
	if got[0].ToRGBA().Hex() != "#ff0000" {
		t.Errorf("Score()[0] = %s, want #ff0000", got[0].ToRGBA().Hex())
	}
}

func TestScoreFallback(t *testing.T) {
	tests := []struct {
		name string
		in   map[uint32]int
		opts Options
		want string
	}{
		{"only black", map[uint32]int{0xff000000: 1}, DefaultOptions(), "#4285f4"},
		{"empty", map[uint32]int{}, DefaultOptions(), "#4285f4"},
		{
			"custom fallback",
			map[uint32]int{0xff808080: 3},
			Options{Desired: 2, FallbackColor: cie.Opaque(0xff, 0, 0xff), Filter: true},
			"#ff00ff",
		},
		{"unfiltered grey", map[uint32]int{0xff808080: 3}, Options{Desired: 4, FallbackColor: Fallback}, "#808080"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Score(frequencies(tt.in), tt.opts)
			if len(got) != 1 {
				t.Fatalf("Score() returned %d colours, want 1", len(got))
			}
			if hex := got[0].ToRGBA().Hex(); hex != tt.want {
				t.Errorf("Score() = %s, want %s", hex, tt.want)
			}
		})
	}
}

func TestScoreDedupesNearbyHues(t *testing.T) {
	got := Score(frequencies(map[uint32]int{
		0xff008772: 1,
		0xff318477: 1,
	}), DefaultOptions())
	if len(got) != 1 {
		t.Fatalf("Score() returned %v, want one colour", hexes(got))
	}
	if hex := got[0].ToRGBA().Hex(); hex != "#008772" && hex != "#318477" {
		t.Errorf("Score() = %s, want one of the inputs", hex)
	}
}

func TestScoreSpreadsHues(t *testing.T) {
	in := map[uint32]int{
		0xff008772: 1,
		0xff008587: 1,
		0xff007ebc: 1,
	}
	got := Score(frequencies(in), Options{Desired: 2, FallbackColor: Fallback, Filter: true})
	if len(got) != 2 {
		t.Fatalf("Score() returned %d colours, want 2", len(got))
	}
	if d := mathutil.DifferenceDegrees(got[0].Hue, got[1].Hue); d < minHueDistance {
		t.Errorf("chosen hues are %.1f degrees apart, want at least %d", d, minHueDistance)
	}
}

func TestScoreNeverExceedsDesired(t *testing.T) {
	in := map[uint32]int{}
	for hue := 0; hue < 360; hue += 10 {
		in[hct.New(float64(hue), 60, 50).ToRGBA().ARGB()] = hue + 1
	}
	for desired := 1; desired <= 8; desired++ {
		got := Score(frequencies(in), Options{Desired: desired, FallbackColor: Fallback, Filter: true})
		if len(got) == 0 || len(got) > desired {
			t.Errorf("Score(desired=%d) returned %d colours", desired, len(got))
		}
	}
}
