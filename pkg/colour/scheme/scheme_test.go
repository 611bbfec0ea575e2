package scheme

import (
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jmylchreest/tonal/pkg/colour/cie"
	"github.com/jmylchreest/tonal/pkg/colour/contrast"
	"github.com/jmylchreest/tonal/pkg/colour/hct"
	"github.com/jmylchreest/tonal/pkg/colour/mathutil"
)

var seeds = []cie.RGBA{
	cie.Opaque(0x42, 0x85, 0xf4),
	cie.Opaque(0xff, 0x00, 0x00),
	cie.Opaque(0x6b, 0x6e, 0x17), // olive, inside the disliked band
	cie.Opaque(0x80, 0x80, 0x80),
}

func mustNew(t *testing.T, source cie.RGBA, v Variant, dark bool) *Scheme {
	t.Helper()
	s, err := FromRGBA(source, v, dark)
	if err != nil {
		t.Fatalf("FromRGBA(%v, %v, %v) error: %v", source, v, dark, err)
	}
	return s
}

func TestRolesComplete(t *testing.T) {
	s := mustNew(t, seeds[0], TonalSpot, false)
	roles := s.Roles()
	if len(roles) != 49 {
		t.Fatalf("Roles() returned %d roles, want 49", len(roles))
	}
	names := make([]Role, len(roles))
	for i, r := range roles {
		names[i] = r.Role
	}
	if diff := cmp.Diff(AllRoles(), names); diff != "" {
		t.Errorf("role order mismatch (-want +got):\n%s", diff)
	}
	if _, ok := s.Get("not-a-role"); ok {
		t.Error("Get(unknown) reported ok")
	}
}

func TestOnColoursMeetContrast(t *testing.T) {
	for _, seed := range seeds {
		for _, v := range BuiltinVariants() {
			for _, dark := range []bool{false, true} {
				s := mustNew(t, seed, v, dark)
				for _, r := range toneRules {
					if r.on == "" {
						continue
					}
					fg, bg := s.Tone(r.role), s.Tone(r.on)
					if !contrast.Meets(fg, bg, MinTextContrast) {
						t.Errorf("%v %v dark=%v: %s (%.1f) on %s (%.1f) = %.2f",
							seed, v, dark, r.role, fg, r.on, bg, contrast.RatioOfTones(fg, bg))
					}
				}
			}
		}
	}
}

func TestTonalSpotTones(t *testing.T) {
	tests := []struct {
		dark bool
		want map[Role]float64
	}{
		{false, map[Role]float64{
			RolePrimary: 40, RoleOnPrimary: 100, RolePrimaryContainer: 90,
			RoleBackground: 98, RoleSurfaceDim: 87, RoleOutline: 50, RoleInversePrimary: 80,
		}},
		{true, map[Role]float64{
			RolePrimary: 80, RoleOnPrimary: 20, RolePrimaryContainer: 30,
			RoleBackground: 6, RoleSurfaceBright: 24, RoleOutline: 60, RoleInversePrimary: 40,
		}},
	}
	for _, tt := range tests {
		s := mustNew(t, seeds[0], TonalSpot, tt.dark)
		for role, want := range tt.want {
			if got := s.Tone(role); got != want {
				t.Errorf("dark=%v: Tone(%s) = %v, want %v", tt.dark, role, got, want)
			}
			if got := s.Colour(role).Tone; math.Abs(got-want) > 0.5 {
				t.Errorf("dark=%v: Colour(%s).Tone = %v, want ~%v", tt.dark, role, got, want)
			}
		}
	}
}

func TestTonalSpotPalettes(t *testing.T) {
	source := hct.FromRGBA(seeds[0])
	s, err := New(source, TonalSpot, false)
	if err != nil {
		t.Fatal(err)
	}
	p := s.Palettes
	if p.Primary.Chroma != 36 || p.Secondary.Chroma != 16 || p.Tertiary.Chroma != 24 {
		t.Errorf("chromas = %v/%v/%v, want 36/16/24", p.Primary.Chroma, p.Secondary.Chroma, p.Tertiary.Chroma)
	}
	if want := mathutil.SanitizeDegrees(source.Hue + 60); math.Abs(p.Tertiary.Hue-want) > 1e-9 {
		t.Errorf("tertiary hue = %v, want %v", p.Tertiary.Hue, want)
	}
	primary := s.Colour(RolePrimary)
	if mathutil.DifferenceDegrees(primary.Hue, source.Hue) > 2 || math.Abs(primary.Chroma-36) > 1.5 {
		t.Errorf("primary = %v, want hue %v chroma ~36", primary, source.Hue)
	}
}

func TestMonochrome(t *testing.T) {
	light := mustNew(t, seeds[1], Monochrome, false)
	if got := light.Colour(RolePrimary).ToRGBA(); got != cie.Opaque(0, 0, 0) {
		t.Errorf("light primary = %v, want black", got)
	}
	dark := mustNew(t, seeds[1], Monochrome, true)
	if got := dark.Colour(RolePrimary).ToRGBA(); got != cie.Opaque(255, 255, 255) {
		t.Errorf("dark primary = %v, want white", got)
	}
	for _, c := range light.Roles() {
		if c.Role == RoleError || c.Role == RoleOnError || c.Role == RoleErrorContainer || c.Role == RoleOnErrorContainer {
			continue
		}
		rgb := c.Colour.ToRGBA()
		if rgb.R != rgb.G || rgb.G != rgb.B {
			t.Errorf("%s = %v, want grey", c.Role, rgb)
		}
	}
	if got := light.Tone(RoleTertiaryContainer); got != 49 {
		t.Errorf("Tone(tertiary-container) = %v, want 49", got)
	}
}

func TestVibrantRotation(t *testing.T) {
	source := hct.New(50, 60, 50).Normalize()
	s, err := New(source, Vibrant, false)
	if err != nil {
		t.Fatal(err)
	}
	if source.Hue <= 41 || source.Hue >= 61 {
		t.Fatalf("normalized source hue %v left the test band", source.Hue)
	}
	if want := source.Hue + 15; math.Abs(s.Palettes.Secondary.Hue-want) > 1e-9 {
		t.Errorf("secondary hue = %v, want %v", s.Palettes.Secondary.Hue, want)
	}
	if want := source.Hue + 30; math.Abs(s.Palettes.Tertiary.Hue-want) > 1e-9 {
		t.Errorf("tertiary hue = %v, want %v", s.Palettes.Tertiary.Hue, want)
	}
	if s.Palettes.Primary.Chroma != 200 {
		t.Errorf("primary chroma = %v, want 200", s.Palettes.Primary.Chroma)
	}
}

func TestExpressivePrimaryHue(t *testing.T) {
	source := hct.FromRGBA(seeds[0])
	s, err := New(source, Expressive, true)
	if err != nil {
		t.Fatal(err)
	}
	want := mathutil.SanitizeDegrees(source.Hue + 240)
	if math.Abs(s.Palettes.Primary.Hue-want) > 1e-9 {
		t.Errorf("primary hue = %v, want %v", s.Palettes.Primary.Hue, want)
	}
}

func TestFidelityKeepsSource(t *testing.T) {
	for _, v := range []Variant{Fidelity, Content} {
		source := hct.FromRGBA(seeds[1])
		s, err := New(source, v, false)
		if err != nil {
			t.Fatal(err)
		}
		if s.Palettes.Primary.Chroma != source.Chroma {
			t.Errorf("%v: primary chroma = %v, want %v", v, s.Palettes.Primary.Chroma, source.Chroma)
		}
		if got := s.Tone(RolePrimaryContainer); got != source.Tone {
			t.Errorf("%v: container tone = %v, want source tone %v", v, got, source.Tone)
		}
	}
}

func TestFidelityTertiaryNotDisliked(t *testing.T) {
	for _, seed := range seeds {
		for _, v := range []Variant{Fidelity, Content} {
			s := mustNew(t, seed, v, false)
			key := s.Palettes.Tertiary.KeyColor
			hue := math.Round(key.Hue)
			if hue >= 90 && hue <= 111 && math.Round(key.Chroma) > 16 && math.Round(key.Tone) < 65 {
				t.Errorf("%v %v: tertiary key %v is in the disliked band", seed, v, key)
			}
		}
	}
}

func TestDeterministic(t *testing.T) {
	for _, v := range BuiltinVariants() {
		a := mustNew(t, seeds[2], v, true)
		b := mustNew(t, seeds[2], v, true)
		if diff := cmp.Diff(a.Hex(), b.Hex()); diff != "" {
			t.Errorf("%v: repeated builds differ (-first +second):\n%s", v, diff)
		}
	}
}

func TestNewRejectsCustomAndUnknown(t *testing.T) {
	source := hct.FromRGBA(DefaultSource)
	for _, v := range []Variant{Custom, Variant(99)} {
		if _, err := New(source, v, false); !errors.Is(err, ErrUnknownVariant) {
			t.Errorf("New(%v) error = %v, want ErrUnknownVariant", v, err)
		}
	}
}

func TestParseVariant(t *testing.T) {
	tests := []struct {
		in      string
		want    Variant
		wantErr bool
	}{
		{in: "tonal_spot", want: TonalSpot},
		{in: "tonal-spot", want: TonalSpot},
		{in: "TonalSpot", want: TonalSpot},
		{in: "fruit salad", want: FruitSalad},
		{in: "MONOCHROME", want: Monochrome},
		{in: "custom", want: Custom},
		{in: "sepia", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVariant(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseVariant(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if tt.wantErr {
				if !errors.Is(err, ErrUnknownVariant) {
					t.Errorf("error %v does not wrap ErrUnknownVariant", err)
				}
				return
			}
			if got != tt.want {
				t.Errorf("ParseVariant(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestVariantText(t *testing.T) {
	for _, v := range append(BuiltinVariants(), Custom) {
		text, err := v.MarshalText()
		if err != nil {
			t.Fatal(err)
		}
		var back Variant
		if err := back.UnmarshalText(text); err != nil || back != v {
			t.Errorf("UnmarshalText(%q) = %v, %v, want %v", text, back, err, v)
		}
	}
}
