package scheme

import (
	"fmt"
	"strings"
)

// Variant selects how the palettes of a scheme are derived from its source
// colour.
type Variant int

const (
	// Monochrome is greyscale throughout.
	Monochrome Variant = iota
	// Neutral is close to greyscale with a hint of the source hue.
	Neutral
	// TonalSpot is the default: a calm, low chroma scheme.
	TonalSpot
	// Vibrant maximises primary chroma and rotates the accent hues.
	Vibrant
	// Expressive moves the primary hue away from the source.
	Expressive
	// Fidelity keeps the source colour as primary, even when it is intense.
	Fidelity
	// Content is Fidelity with an analogous tertiary.
	Content
	// Rainbow is a playful scheme with grey surfaces.
	Rainbow
	// FruitSalad rotates primary and secondary off the source hue.
	FruitSalad
	// Custom schemes are configured with CustomOptions.
	Custom
)

var variantNames = [...]string{
	Monochrome: "monochrome",
	Neutral:    "neutral",
	TonalSpot:  "tonal_spot",
	Vibrant:    "vibrant",
	Expressive: "expressive",
	Fidelity:   "fidelity",
	Content:    "content",
	Rainbow:    "rainbow",
	FruitSalad: "fruit_salad",
	Custom:     "custom",
}

func (v Variant) String() string {
	if v < 0 || int(v) >= len(variantNames) {
		return fmt.Sprintf("variant(%d)", int(v))
	}
	return variantNames[v]
}

// BuiltinVariants lists the variants New accepts, in declaration order.
func BuiltinVariants() []Variant {
	return []Variant{Monochrome, Neutral, TonalSpot, Vibrant, Expressive, Fidelity, Content, Rainbow, FruitSalad}
}

// ParseVariant accepts a variant name in snake, kebab or camel case.
func ParseVariant(s string) (Variant, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "", "_", "", " ", "").Replace(norm)
	for v, name := range variantNames {
		if strings.ReplaceAll(name, "_", "") == norm {
			return Variant(v), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownVariant, s)
}

// MarshalText implements encoding.TextMarshaler.
func (v Variant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Variant) UnmarshalText(text []byte) error {
	parsed, err := ParseVariant(string(text))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}
