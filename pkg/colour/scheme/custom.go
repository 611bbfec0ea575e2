package scheme

import (
	"errors"
	"fmt"
	"math/bits"
	"strings"

	"github.com/jmylchreest/tonal/pkg/colour/contrast"
	"github.com/jmylchreest/tonal/pkg/colour/hct"
	"github.com/jmylchreest/tonal/pkg/colour/palettes"
)

// Shift is a set of flags describing how an accent palette departs from
// the source colour.
type Shift uint16

const (
	HueShiftSmall Shift = 1 << iota
	HueShiftMedium
	HueShiftWide
	// HueShiftNegative rotates counter-clockwise instead.
	HueShiftNegative
	SaturateSmall
	SaturateMedium
	SaturateLarge
	DesaturateSmall
	DesaturateMedium
	DesaturateLarge
	// HueOverride uses Adjust.Hue as an absolute hue.
	HueOverride
	// ChromaOverride uses Adjust.Chroma as an absolute chroma.
	ChromaOverride
)

const (
	hueSizes    = HueShiftSmall | HueShiftMedium | HueShiftWide
	chromaSizes = SaturateSmall | SaturateMedium | SaturateLarge | DesaturateSmall | DesaturateMedium | DesaturateLarge
	allShifts   = hueSizes | HueShiftNegative | chromaSizes | HueOverride | ChromaOverride
)

var shiftDegrees = map[Shift]float64{
	HueShiftSmall:  15,
	HueShiftMedium: 30,
	HueShiftWide:   60,
}

var chromaDeltas = map[Shift]float64{
	SaturateSmall:    8,
	SaturateMedium:   16,
	SaturateLarge:    24,
	DesaturateSmall:  -8,
	DesaturateMedium: -16,
	DesaturateLarge:  -24,
}

var shiftNames = []struct {
	flag Shift
	name string
}{
	{HueShiftSmall, "hue-small"},
	{HueShiftMedium, "hue-medium"},
	{HueShiftWide, "hue-wide"},
	{HueShiftNegative, "hue-negative"},
	{SaturateSmall, "saturate-small"},
	{SaturateMedium, "saturate-medium"},
	{SaturateLarge, "saturate-large"},
	{DesaturateSmall, "desaturate-small"},
	{DesaturateMedium, "desaturate-medium"},
	{DesaturateLarge, "desaturate-large"},
	{HueOverride, "hue-override"},
	{ChromaOverride, "chroma-override"},
}

func (f Shift) String() string {
	if f == 0 {
		return "none"
	}
	var parts []string
	for _, n := range shiftNames {
		if f&n.flag != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// ParseShift parses flag names joined by '|' or ','.
func ParseShift(s string) (Shift, error) {
	var f Shift
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == '|' || r == ',' }) {
		part = strings.TrimSpace(strings.ToLower(part))
		if part == "" || part == "none" {
			continue
		}
		found := false
		for _, n := range shiftNames {
			if n.name == part {
				f |= n.flag
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("%w: unknown shift %q", ErrInvalidOptions, part)
		}
	}
	return f, nil
}

// MarshalText implements encoding.TextMarshaler.
func (f Shift) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (f *Shift) UnmarshalText(text []byte) error {
	parsed, err := ParseShift(string(text))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Validate reports flags that cannot be combined.
func (f Shift) Validate() error {
	var errs []error
	if f&^allShifts != 0 {
		errs = append(errs, fmt.Errorf("unknown shift bits %#x", uint16(f&^allShifts)))
	}
	if bits.OnesCount16(uint16(f&hueSizes)) > 1 {
		errs = append(errs, errors.New("more than one hue shift size"))
	}
	if bits.OnesCount16(uint16(f&chromaSizes)) > 1 {
		errs = append(errs, errors.New("more than one saturation change"))
	}
	if f&HueOverride != 0 && f&(hueSizes|HueShiftNegative) != 0 {
		errs = append(errs, errors.New("hue override combined with a hue shift"))
	}
	if f&ChromaOverride != 0 && f&chromaSizes != 0 {
		errs = append(errs, errors.New("chroma override combined with a saturation change"))
	}
	if f&HueShiftNegative != 0 && f&hueSizes == 0 {
		errs = append(errs, errors.New("negative hue shift without a size"))
	}
	return errors.Join(errs...)
}

// Adjust describes one accent palette relative to the source.
type Adjust struct {
	Flags Shift `json:"flags"`
	// Hue is used with HueOverride.
	Hue float64 `json:"hue,omitempty"`
	// Chroma is used with ChromaOverride.
	Chroma float64 `json:"chroma,omitempty"`
}

func (a Adjust) apply(source hct.HCT) (hue, chroma float64) {
	hue, chroma = source.Hue, source.Chroma
	if a.Flags&HueOverride != 0 {
		hue = a.Hue
	} else if size := a.Flags & hueSizes; size != 0 {
		deg := shiftDegrees[size]
		if a.Flags&HueShiftNegative != 0 {
			deg = -deg
		}
		hue += deg
	}
	if a.Flags&ChromaOverride != 0 {
		chroma = a.Chroma
	} else if size := a.Flags & chromaSizes; size != 0 {
		chroma += chromaDeltas[size]
	}
	return hue, max(0, chroma)
}

// Gap is a preset contrast ratio between two related tones.
type Gap int

const (
	GapMinimal Gap = iota
	GapNarrow
	GapBroad
	GapWide
)

var gapRatios = [...]float64{
	GapMinimal: 4.5,
	GapNarrow:  6.6,
	GapBroad:   9.0,
	GapWide:    12.3,
}

var gapNames = [...]string{
	GapMinimal: "minimal",
	GapNarrow:  "narrow",
	GapBroad:   "broad",
	GapWide:    "wide",
}

// Ratio returns the contrast ratio of the preset.
func (g Gap) Ratio() float64 {
	if g < 0 || int(g) >= len(gapRatios) {
		return gapRatios[GapMinimal]
	}
	return gapRatios[g]
}

func (g Gap) String() string {
	if g < 0 || int(g) >= len(gapNames) {
		return fmt.Sprintf("gap(%d)", int(g))
	}
	return gapNames[g]
}

// MarshalText implements encoding.TextMarshaler.
func (g Gap) MarshalText() ([]byte, error) {
	if g < GapMinimal || g > GapWide {
		return nil, fmt.Errorf("%w: gap %d is not a preset", ErrInvalidOptions, int(g))
	}
	return []byte(g.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (g *Gap) UnmarshalText(text []byte) error {
	parsed, err := ParseGap(string(text))
	if err != nil {
		return err
	}
	*g = parsed
	return nil
}

// ParseGap parses a preset name.
func ParseGap(s string) (Gap, error) {
	for g, name := range gapNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return Gap(g), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown gap %q", ErrInvalidOptions, s)
}

// CustomOptions configures a custom scheme.
type CustomOptions struct {
	Secondary Adjust `json:"secondary"`
	Tertiary  Adjust `json:"tertiary"`

	// CoreGap separates each accent from the text drawn on it.
	CoreGap Gap `json:"core_gap"`
	// ContainerGap separates each accent from its container.
	ContainerGap Gap `json:"container_gap"`
	// ModeGap separates the light scheme accent from the dark one.
	ModeGap Gap `json:"mode_gap"`

	// LightCoreTone is the accent tone of the light scheme.
	LightCoreTone float64 `json:"light_core_tone"`
}

// DefaultCustomOptions returns options that reproduce the standard accent
// tones with the secondary and tertiary hues rotated.
func DefaultCustomOptions() CustomOptions {
	return CustomOptions{
		Secondary:     Adjust{Flags: DesaturateMedium},
		Tertiary:      Adjust{Flags: HueShiftWide | DesaturateSmall},
		LightCoreTone: 40,
	}
}

// accentTones is the resolved tone of each accent role for one mode.
type accentTones struct {
	core, onCore, container, onContainer float64
}

// Validate checks the flags and that every gap can be met.
func (o CustomOptions) Validate() error {
	_, _, err := o.tones()
	return err
}

func (o CustomOptions) tones() (light, dark accentTones, err error) {
	var errs []error
	if e := o.Secondary.Flags.Validate(); e != nil {
		errs = append(errs, fmt.Errorf("secondary: %w", e))
	}
	if e := o.Tertiary.Flags.Validate(); e != nil {
		errs = append(errs, fmt.Errorf("tertiary: %w", e))
	}
	for _, g := range []struct {
		name string
		gap  Gap
	}{{"core", o.CoreGap}, {"container", o.ContainerGap}, {"mode", o.ModeGap}} {
		if g.gap < GapMinimal || g.gap > GapWide {
			errs = append(errs, fmt.Errorf("%s gap %d is not a preset", g.name, int(g.gap)))
		}
	}
	if o.LightCoreTone < 0 || o.LightCoreTone > 100 {
		errs = append(errs, fmt.Errorf("light core tone %v outside [0, 100]", o.LightCoreTone))
	}
	if len(errs) > 0 {
		return light, dark, fmt.Errorf("%w: %w", ErrInvalidOptions, errors.Join(errs...))
	}

	light.core = o.LightCoreTone
	darkCore, ok := contrast.Lighter(light.core, o.ModeGap.Ratio())
	if !ok {
		return light, dark, fmt.Errorf("%w: no dark tone is %v from light tone %v", ErrInvalidOptions, o.ModeGap.Ratio(), light.core)
	}
	dark.core = darkCore

	for _, m := range []struct {
		name       string
		tones      *accentTones
		containers func(float64, float64) (float64, bool)
		onContains func(float64, float64) (float64, bool)
	}{
		{"light", &light, contrast.Lighter, contrast.Darker},
		{"dark", &dark, contrast.Darker, contrast.Lighter},
	} {
		t := m.tones
		if t.onCore, ok = contrast.ForTone(t.core, o.CoreGap.Ratio()); !ok {
			return light, dark, fmt.Errorf("%w: %s accent tone %.1f has no on-colour at %v", ErrInvalidOptions, m.name, t.core, o.CoreGap.Ratio())
		}
		if t.container, ok = m.containers(t.core, o.ContainerGap.Ratio()); !ok {
			return light, dark, fmt.Errorf("%w: %s accent tone %.1f has no container at %v", ErrInvalidOptions, m.name, t.core, o.ContainerGap.Ratio())
		}
		if t.onContainer, ok = m.onContains(t.container, o.CoreGap.Ratio()); !ok {
			return light, dark, fmt.Errorf("%w: %s container tone %.1f has no on-colour at %v", ErrInvalidOptions, m.name, t.container, o.CoreGap.Ratio())
		}
	}
	return light, dark, nil
}

// NewCustom builds a custom scheme.
func NewCustom(source hct.HCT, opts CustomOptions, isDark bool) (*Scheme, error) {
	light, dark, err := opts.tones()
	if err != nil {
		return nil, err
	}
	t := light
	if isDark {
		t = dark
	}

	secondaryHue, secondaryChroma := opts.Secondary.apply(source)
	tertiaryHue, tertiaryChroma := opts.Tertiary.apply(source)
	s := &Scheme{
		Source:  source,
		Variant: Custom,
		IsDark:  isDark,
		Palettes: palettes.CorePalette{
			Primary:        palettes.NewTonalPalette(source.Hue, source.Chroma),
			Secondary:      palettes.NewTonalPalette(secondaryHue, secondaryChroma),
			Tertiary:       palettes.NewTonalPalette(tertiaryHue, tertiaryChroma),
			Neutral:        palettes.NewTonalPalette(source.Hue, 6),
			NeutralVariant: palettes.NewTonalPalette(source.Hue, 8),
			Error:          palettes.ErrorPalette(),
		},
		name: Custom.String(),
	}

	overrides := make(map[Role]float64, 13)
	for _, group := range [][4]Role{
		{RolePrimary, RoleOnPrimary, RolePrimaryContainer, RoleOnPrimaryContainer},
		{RoleSecondary, RoleOnSecondary, RoleSecondaryContainer, RoleOnSecondaryContainer},
		{RoleTertiary, RoleOnTertiary, RoleTertiaryContainer, RoleOnTertiaryContainer},
	} {
		overrides[group[0]] = t.core
		overrides[group[1]] = t.onCore
		overrides[group[2]] = t.container
		overrides[group[3]] = t.onContainer
	}
	overrides[RoleSurfaceTint] = t.core
	if isDark {
		overrides[RoleInversePrimary] = light.core
	} else {
		overrides[RoleInversePrimary] = dark.core
	}
	s.resolve(overrides)
	return s, nil
}
