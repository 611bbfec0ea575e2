package theme

import (
	"fmt"
	"math"
	"strings"

	"github.com/jmylchreest/tonal/pkg/colour/hct"
	"github.com/jmylchreest/tonal/pkg/colour/scheme"
)

// RoleColour is one role of an exported scheme.
type RoleColour struct {
	Role   scheme.Role `json:"role"`
	Hex    string      `json:"hex"`
	Hue    float64     `json:"hue"`
	Chroma float64     `json:"chroma"`
	Tone   float64     `json:"tone"`
}

// SchemeDocument is the exported form of a scheme. Descriptor is enough to
// rebuild it; Roles are derived values included for consumers.
type SchemeDocument struct {
	Name       string            `json:"name"`
	Mode       Mode              `json:"mode"`
	Descriptor scheme.Descriptor `json:"descriptor"`
	Roles      []RoleColour      `json:"roles"`
}

// Document is the exported form of a theme.
type Document struct {
	Source     string           `json:"source"`
	Candidates []string         `json:"candidates,omitempty"`
	Schemes    []SchemeDocument `json:"schemes"`
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ExportScheme converts a scheme to its exported form.
func ExportScheme(s *scheme.Scheme) SchemeDocument {
	doc := SchemeDocument{
		Name:       s.Name(),
		Mode:       modeOf(s),
		Descriptor: s.Descriptor(),
	}
	for _, c := range s.Roles() {
		doc.Roles = append(doc.Roles, RoleColour{
			Role:   c.Role,
			Hex:    c.Hex(),
			Hue:    round2(c.Colour.Hue),
			Chroma: round2(c.Colour.Chroma),
			Tone:   round2(c.Colour.Tone),
		})
	}
	return doc
}

// Document converts a theme to its exported form.
func (t *Theme) Document() Document {
	doc := Document{Source: t.Source.ToRGBA().Hex()}
	if t.Extraction != nil {
		doc.Candidates = HexList(t.Extraction.Candidates)
	}
	for _, s := range t.Schemes {
		doc.Schemes = append(doc.Schemes, ExportScheme(s))
	}
	return doc
}

// HexList returns the hex form of each colour.
func HexList(colours []hct.HCT) []string {
	out := make([]string, len(colours))
	for i, c := range colours {
		out[i] = c.ToRGBA().Hex()
	}
	return out
}

func modeOf(s *scheme.Scheme) Mode {
	if s.IsDark {
		return ModeDark
	}
	return ModeLight
}

// CSS renders schemes as custom properties. The light scheme goes on
// :root, the dark one on :root when alone and under a
// prefers-color-scheme media query when both are present.
func CSS(schemes []*scheme.Scheme, prefix string) string {
	if prefix == "" {
		prefix = "--tonal-"
	}
	var b strings.Builder
	hasLight := false
	for _, s := range schemes {
		if !s.IsDark {
			hasLight = true
		}
	}
	for i, s := range schemes {
		if i > 0 {
			b.WriteString("\n")
		}
		indent := "  "
		if s.IsDark && hasLight {
			b.WriteString("@media (prefers-color-scheme: dark) {\n  :root {\n")
			indent = "    "
		} else {
			b.WriteString(":root {\n")
		}
		fmt.Fprintf(&b, "%s/* %s, %s */\n", indent, s.Name(), modeOf(s))
		for _, c := range s.Roles() {
			fmt.Fprintf(&b, "%s%s%s: %s;\n", indent, prefix, c.Role, c.Hex())
		}
		if s.IsDark && hasLight {
			b.WriteString("  }\n")
		}
		b.WriteString("}\n")
	}
	return b.String()
}
