package dislike

import (
	"testing"

	"github.com/jmylchreest/tonal/pkg/colour/cie"
	"github.com/jmylchreest/tonal/pkg/colour/hct"
)

func TestIsDisliked(t *testing.T) {
	tests := []struct {
		name string
		in   hct.HCT
		want bool
	}{
		{"dark olive", hct.New(100, 30, 40), true},
		{"band edge low", hct.New(90, 17, 64), true},
		{"band edge high", hct.New(111, 17, 64), true},
		{"hue below band", hct.New(89, 30, 40), false},
		{"hue above band", hct.New(112, 30, 40), false},
		{"too grey", hct.New(100, 16, 40), false},
		{"light enough", hct.New(100, 30, 65), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsDisliked(tt.in); got != tt.want {
				t.Errorf("IsDisliked(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMonkPalette(t *testing.T) {
	// Skin tones from the Monk scale are never disliked.
	for _, hex := range []string{
		"#f6ede4", "#f3e7db", "#f7ead0", "#eadaba", "#d7bd96",
		"#a07e56", "#825c43", "#604134", "#3a312a", "#292420",
	} {
		c, err := cie.FromHex(hex)
		if err != nil {
			t.Fatal(err)
		}
		if IsDisliked(hct.FromRGBA(c)) {
			t.Errorf("IsDisliked(%s) = true", hex)
		}
	}
}

func TestFix(t *testing.T) {
	bile := hct.New(100, 30, 40)
	fixed := Fix(bile)
	if fixed.Tone != 70 || fixed.Hue != bile.Hue || fixed.Chroma != bile.Chroma {
		t.Errorf("Fix(%v) = %v, want tone 70 with hue and chroma kept", bile, fixed)
	}
	if IsDisliked(fixed) {
		t.Errorf("Fix(%v) is still disliked", bile)
	}

	ok := hct.New(200, 30, 40)
	if got := Fix(ok); !got.Equal(ok) {
		t.Errorf("Fix(%v) = %v, want unchanged", ok, got)
	}
}
