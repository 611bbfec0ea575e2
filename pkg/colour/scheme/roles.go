package scheme

import (
	"github.com/jmylchreest/tonal/pkg/colour/contrast"
	"github.com/jmylchreest/tonal/pkg/colour/dislike"
	"github.com/jmylchreest/tonal/pkg/colour/palettes"
)

// Role names a colour slot in a scheme.
type Role string

// Surface roles.
const (
	RoleBackground              Role = "background"
	RoleOnBackground            Role = "on-background"
	RoleSurface                 Role = "surface"
	RoleSurfaceDim              Role = "surface-dim"
	RoleSurfaceBright           Role = "surface-bright"
	RoleSurfaceContainerLowest  Role = "surface-container-lowest"
	RoleSurfaceContainerLow     Role = "surface-container-low"
	RoleSurfaceContainer        Role = "surface-container"
	RoleSurfaceContainerHigh    Role = "surface-container-high"
	RoleSurfaceContainerHighest Role = "surface-container-highest"
	RoleOnSurface               Role = "on-surface"
	RoleSurfaceVariant          Role = "surface-variant"
	RoleOnSurfaceVariant        Role = "on-surface-variant"
	RoleInverseSurface          Role = "inverse-surface"
	RoleInverseOnSurface        Role = "inverse-on-surface"
	RoleOutline                 Role = "outline"
	RoleOutlineVariant          Role = "outline-variant"
	RoleShadow                  Role = "shadow"
	RoleScrim                   Role = "scrim"
	RoleSurfaceTint             Role = "surface-tint"
)

// Accent roles.
const (
	RolePrimary              Role = "primary"
	RoleOnPrimary            Role = "on-primary"
	RolePrimaryContainer     Role = "primary-container"
	RoleOnPrimaryContainer   Role = "on-primary-container"
	RoleInversePrimary       Role = "inverse-primary"
	RoleSecondary            Role = "secondary"
	RoleOnSecondary          Role = "on-secondary"
	RoleSecondaryContainer   Role = "secondary-container"
	RoleOnSecondaryContainer Role = "on-secondary-container"
	RoleTertiary             Role = "tertiary"
	RoleOnTertiary           Role = "on-tertiary"
	RoleTertiaryContainer    Role = "tertiary-container"
	RoleOnTertiaryContainer  Role = "on-tertiary-container"
	RoleError                Role = "error"
	RoleOnError              Role = "on-error"
	RoleErrorContainer       Role = "error-container"
	RoleOnErrorContainer     Role = "on-error-container"
)

// Fixed roles keep the same tone in light and dark schemes.
const (
	RolePrimaryFixed            Role = "primary-fixed"
	RolePrimaryFixedDim         Role = "primary-fixed-dim"
	RoleOnPrimaryFixed          Role = "on-primary-fixed"
	RoleOnPrimaryFixedVariant   Role = "on-primary-fixed-variant"
	RoleSecondaryFixed          Role = "secondary-fixed"
	RoleSecondaryFixedDim       Role = "secondary-fixed-dim"
	RoleOnSecondaryFixed        Role = "on-secondary-fixed"
	RoleOnSecondaryFixedVariant Role = "on-secondary-fixed-variant"
	RoleTertiaryFixed           Role = "tertiary-fixed"
	RoleTertiaryFixedDim        Role = "tertiary-fixed-dim"
	RoleOnTertiaryFixed         Role = "on-tertiary-fixed"
	RoleOnTertiaryFixedVariant  Role = "on-tertiary-fixed-variant"
)

// MinTextContrast is the ratio every on-colour keeps against the role it
// sits on.
const MinTextContrast = 4.5

type paletteKey int

const (
	primaryPalette paletteKey = iota
	secondaryPalette
	tertiaryPalette
	neutralPalette
	neutralVariantPalette
	errorPalette
)

func (k paletteKey) of(p palettes.CorePalette) palettes.TonalPalette {
	switch k {
	case secondaryPalette:
		return p.Secondary
	case tertiaryPalette:
		return p.Tertiary
	case neutralPalette:
		return p.Neutral
	case neutralVariantPalette:
		return p.NeutralVariant
	case errorPalette:
		return p.Error
	default:
		return p.Primary
	}
}

// toneRule is the default placement of a role.
type toneRule struct {
	role        Role
	palette     paletteKey
	light, dark float64
	// on is the role this one is drawn on top of, if any.
	on Role
}

var toneRules = []toneRule{
	{RoleBackground, neutralPalette, 98, 6, ""},
	{RoleOnBackground, neutralPalette, 10, 90, RoleBackground},
	{RoleSurface, neutralPalette, 98, 6, ""},
	{RoleSurfaceDim, neutralPalette, 87, 6, ""},
	{RoleSurfaceBright, neutralPalette, 98, 24, ""},
	{RoleSurfaceContainerLowest, neutralPalette, 100, 4, ""},
	{RoleSurfaceContainerLow, neutralPalette, 96, 10, ""},
	{RoleSurfaceContainer, neutralPalette, 94, 12, ""},
	{RoleSurfaceContainerHigh, neutralPalette, 92, 17, ""},
	{RoleSurfaceContainerHighest, neutralPalette, 90, 22, ""},
	{RoleOnSurface, neutralPalette, 10, 90, RoleSurface},
	{RoleSurfaceVariant, neutralVariantPalette, 90, 30, ""},
	{RoleOnSurfaceVariant, neutralVariantPalette, 30, 80, RoleSurfaceVariant},
	{RoleInverseSurface, neutralPalette, 20, 90, ""},
	{RoleInverseOnSurface, neutralPalette, 95, 20, RoleInverseSurface},
	{RoleOutline, neutralVariantPalette, 50, 60, ""},
	{RoleOutlineVariant, neutralVariantPalette, 80, 30, ""},
	{RoleShadow, neutralPalette, 0, 0, ""},
	{RoleScrim, neutralPalette, 0, 0, ""},
	{RoleSurfaceTint, primaryPalette, 40, 80, ""},

	{RolePrimary, primaryPalette, 40, 80, ""},
	{RoleOnPrimary, primaryPalette, 100, 20, RolePrimary},
	{RolePrimaryContainer, primaryPalette, 90, 30, ""},
	{RoleOnPrimaryContainer, primaryPalette, 10, 90, RolePrimaryContainer},
	{RoleInversePrimary, primaryPalette, 80, 40, ""},
	{RoleSecondary, secondaryPalette, 40, 80, ""},
	{RoleOnSecondary, secondaryPalette, 100, 20, RoleSecondary},
	{RoleSecondaryContainer, secondaryPalette, 90, 30, ""},
	{RoleOnSecondaryContainer, secondaryPalette, 10, 90, RoleSecondaryContainer},
	{RoleTertiary, tertiaryPalette, 40, 80, ""},
	{RoleOnTertiary, tertiaryPalette, 100, 20, RoleTertiary},
	{RoleTertiaryContainer, tertiaryPalette, 90, 30, ""},
	{RoleOnTertiaryContainer, tertiaryPalette, 10, 90, RoleTertiaryContainer},
	{RoleError, errorPalette, 40, 80, ""},
	{RoleOnError, errorPalette, 100, 20, RoleError},
	{RoleErrorContainer, errorPalette, 90, 30, ""},
	{RoleOnErrorContainer, errorPalette, 10, 90, RoleErrorContainer},

	{RolePrimaryFixed, primaryPalette, 90, 90, ""},
	{RolePrimaryFixedDim, primaryPalette, 80, 80, ""},
	{RoleOnPrimaryFixed, primaryPalette, 10, 10, RolePrimaryFixed},
	{RoleOnPrimaryFixedVariant, primaryPalette, 30, 30, RolePrimaryFixed},
	{RoleSecondaryFixed, secondaryPalette, 90, 90, ""},
	{RoleSecondaryFixedDim, secondaryPalette, 80, 80, ""},
	{RoleOnSecondaryFixed, secondaryPalette, 10, 10, RoleSecondaryFixed},
	{RoleOnSecondaryFixedVariant, secondaryPalette, 30, 30, RoleSecondaryFixed},
	{RoleTertiaryFixed, tertiaryPalette, 90, 90, ""},
	{RoleTertiaryFixedDim, tertiaryPalette, 80, 80, ""},
	{RoleOnTertiaryFixed, tertiaryPalette, 10, 10, RoleTertiaryFixed},
	{RoleOnTertiaryFixedVariant, tertiaryPalette, 30, 30, RoleTertiaryFixed},
}

// AllRoles returns every role in the order schemes report them.
func AllRoles() []Role {
	out := make([]Role, len(toneRules))
	for i, r := range toneRules {
		out[i] = r.role
	}
	return out
}

// monochromeTones overrides the accent tones of monochrome schemes,
// as {light, dark}.
var monochromeTones = map[Role][2]float64{
	RolePrimary:                 {0, 100},
	RoleOnPrimary:               {90, 10},
	RolePrimaryContainer:        {25, 85},
	RoleOnPrimaryContainer:      {100, 0},
	RoleTertiary:                {25, 90},
	RoleOnTertiary:              {90, 10},
	RoleTertiaryContainer:       {49, 60},
	RoleOnTertiaryContainer:     {100, 0},
	RolePrimaryFixed:            {40, 40},
	RolePrimaryFixedDim:         {30, 30},
	RoleOnPrimaryFixed:          {100, 100},
	RoleOnPrimaryFixedVariant:   {90, 90},
	RoleSecondaryFixed:          {80, 80},
	RoleSecondaryFixedDim:       {70, 70},
	RoleOnSecondaryFixed:        {10, 10},
	RoleOnSecondaryFixedVariant: {25, 25},
	RoleTertiaryFixed:           {40, 40},
	RoleTertiaryFixedDim:        {30, 30},
	RoleOnTertiaryFixed:         {100, 100},
	RoleOnTertiaryFixedVariant:  {90, 90},
}

// resolveTones computes the tone of every role for a scheme. overrides, when
// non-nil, replace the table tone for the roles it names.
func resolveTones(s *Scheme, overrides map[Role]float64) map[Role]float64 {
	tones := make(map[Role]float64, len(toneRules))
	pick := func(light, dark float64) float64 {
		if s.IsDark {
			return dark
		}
		return light
	}

	for _, r := range toneRules {
		tone := pick(r.light, r.dark)
		switch s.Variant {
		case Monochrome:
			if t, ok := monochromeTones[r.role]; ok {
				tone = pick(t[0], t[1])
			}
		case Fidelity, Content:
			switch r.role {
			case RolePrimaryContainer:
				tone = s.Source.Tone
			case RoleTertiaryContainer:
				tone = dislike.Fix(s.Palettes.Tertiary.GetWithTone(s.Source.Tone)).Tone
			case RoleOnPrimaryContainer, RoleOnTertiaryContainer:
				tone = foregroundTone(tones[r.on], MinTextContrast)
			}
		}
		if t, ok := overrides[r.role]; ok {
			tone = t
		}
		if r.on != "" {
			if bg := tones[r.on]; !contrast.Meets(tone, bg, MinTextContrast) {
				tone = foregroundTone(bg, MinTextContrast)
			}
		}
		tones[r.role] = tone
	}
	return tones
}

// foregroundTone picks the tone for text drawn on a background tone,
// favouring light text on dark backgrounds and taking whichever side gets
// closer to the ratio when neither reaches it.
func foregroundTone(bg, ratio float64) float64 {
	lighter := contrast.LighterUnsafe(bg, ratio)
	darker := contrast.DarkerUnsafe(bg, ratio)
	lighterRatio := contrast.RatioOfTones(lighter, bg)
	darkerRatio := contrast.RatioOfTones(darker, bg)

	if prefersLightForeground(bg) {
		negligible := abs(lighterRatio-darkerRatio) < 0.1 && lighterRatio < ratio && darkerRatio < ratio
		if lighterRatio >= ratio || lighterRatio >= darkerRatio || negligible {
			return lighter
		}
		return darker
	}
	if darkerRatio >= ratio || darkerRatio >= lighterRatio {
		return darker
	}
	return lighter
}

func prefersLightForeground(tone float64) bool {
	return round(tone) < 60
}
