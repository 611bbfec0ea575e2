// Package scheme turns a source colour into a complete set of named colour
// roles for a light or dark user interface.
//
// A Scheme is built in one step from a source colour, a Variant and the
// light or dark flag. Every role is derived from the scheme's palettes, and
// the result is immutable; switching between light and dark means building
// a second Scheme from the same inputs.
package scheme

import (
	"errors"
	"fmt"
	"math"

	"github.com/jmylchreest/tonal/pkg/colour/cie"
	"github.com/jmylchreest/tonal/pkg/colour/hct"
	"github.com/jmylchreest/tonal/pkg/colour/palettes"
)

var (
	// ErrUnknownVariant is returned for variants and registry names that
	// have no constructor.
	ErrUnknownVariant = errors.New("unknown scheme variant")
	// ErrInvalidOptions is returned when custom scheme options contradict
	// each other or cannot be satisfied.
	ErrInvalidOptions = errors.New("invalid scheme options")
)

// DefaultSource is the seed used when none is given.
var DefaultSource = cie.Opaque(0x42, 0x85, 0xf4)

// Colour is a role together with its resolved colour.
type Colour struct {
	Role   Role    `json:"role"`
	Colour hct.HCT `json:"hct"`
}

// Hex returns the device colour of the role.
func (c Colour) Hex() string {
	return c.Colour.ToRGBA().Hex()
}

// Scheme is a resolved set of colour roles.
type Scheme struct {
	Source   hct.HCT              `json:"source"`
	Variant  Variant              `json:"variant"`
	IsDark   bool                 `json:"is_dark"`
	Palettes palettes.CorePalette `json:"palettes"`

	name   string
	tones  map[Role]float64
	colors []Colour
}

// New builds a scheme with one of the built-in variants. Custom schemes are
// built with NewCustom.
func New(source hct.HCT, variant Variant, isDark bool) (*Scheme, error) {
	build, ok := variantPalettes[variant]
	if !ok {
		if variant == Custom {
			return nil, fmt.Errorf("%w: custom schemes are built with NewCustom", ErrUnknownVariant)
		}
		return nil, fmt.Errorf("%w: %v", ErrUnknownVariant, variant)
	}
	s := &Scheme{
		Source:   source,
		Variant:  variant,
		IsDark:   isDark,
		Palettes: build(source),
		name:     variant.String(),
	}
	s.resolve(nil)
	return s, nil
}

// FromRGBA is New for a device colour.
func FromRGBA(source cie.RGBA, variant Variant, isDark bool) (*Scheme, error) {
	return New(hct.FromRGBA(source), variant, isDark)
}

func (s *Scheme) resolve(overrides map[Role]float64) {
	s.tones = resolveTones(s, overrides)
	s.colors = make([]Colour, len(toneRules))
	for i, r := range toneRules {
		s.colors[i] = Colour{
			Role:   r.role,
			Colour: r.palette.of(s.Palettes).GetWithTone(s.tones[r.role]),
		}
	}
}

// Name is the identifier the scheme was built under: the variant name, or
// the name it was registered with.
func (s *Scheme) Name() string {
	return s.name
}

// Roles returns every role in a fixed order.
func (s *Scheme) Roles() []Colour {
	out := make([]Colour, len(s.colors))
	copy(out, s.colors)
	return out
}

// Get returns the colour of a role.
func (s *Scheme) Get(role Role) (hct.HCT, bool) {
	for _, c := range s.colors {
		if c.Role == role {
			return c.Colour, true
		}
	}
	return hct.HCT{}, false
}

// Colour returns the colour of a role, or the zero value for an unknown
// role.
func (s *Scheme) Colour(role Role) hct.HCT {
	c, _ := s.Get(role)
	return c
}

// Tone returns the tone a role was placed at.
func (s *Scheme) Tone(role Role) float64 {
	return s.tones[role]
}

// Hex returns every role as a hex string keyed by role.
func (s *Scheme) Hex() map[Role]string {
	out := make(map[Role]string, len(s.colors))
	for _, c := range s.colors {
		out[c.Role] = c.Hex()
	}
	return out
}

// Descriptor reduces the scheme to the values needed to rebuild it.
func (s *Scheme) Descriptor() Descriptor {
	origin := s.Source.ToRGBA()
	return Descriptor{Origin: &origin, IsDark: s.IsDark, Variant: s.name}
}

func abs(v float64) float64 { return math.Abs(v) }

func round(v float64) float64 { return math.Round(v) }
