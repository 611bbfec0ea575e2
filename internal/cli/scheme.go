package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jmylchreest/tonal/internal/theme"
	"github.com/jmylchreest/tonal/pkg/colour/scheme"
	"github.com/spf13/cobra"
)

var (
	// Scheme command flags
	schemeSeed           string
	schemeImage          string
	schemeVariant        string
	schemeFormat         string
	schemeOutput         string
	schemeCSSPrefix      string
	schemeCustomFile     string
	schemeFromDescriptor string
	schemeDescriptor     bool
	schemeShowPreview    bool
)

// schemeCmd represents the scheme command
var schemeCmd = &cobra.Command{
	Use:   "scheme",
	Short: "Build colour schemes from a seed colour or an image",
	Long: `Build light and dark colour schemes.

The source colour comes from --seed, from the best candidate of --image, or
from a descriptor previously written with --format json. Every role is
derived again from the source, so a descriptor is all that needs storing.

Variants: ` + strings.Join(scheme.DefaultRegistry().Names(), ", ") + `, custom

Examples:
  # Light and dark tonal spot schemes from a seed colour
  tonal scheme --seed "#3366cc"

  # A dark vibrant scheme from a wallpaper as CSS custom properties
  tonal scheme --image wallpaper.jpg --variant vibrant --theme dark -f css

  # A custom scheme described by a JSON file
  tonal scheme --seed "#3366cc" --custom accents.json

  # Store just what is needed to rebuild, then rebuild it
  tonal scheme --seed "#3366cc" --descriptor -o schemes.json
  tonal scheme --from-descriptor schemes.json`,
	Args: cobra.NoArgs,
	RunE: runScheme,
}

func init() {
	schemeCmd.Flags().StringVarP(&schemeSeed, "seed", "s", "", "seed colour (#rgb, #rrggbb)")
	schemeCmd.Flags().StringVarP(&schemeImage, "image", "i", "", "image, directory or URL to take the seed from")
	schemeCmd.Flags().StringVar(&schemeVariant, "variant", scheme.TonalSpot.String(), "scheme variant")
	schemeCmd.Flags().StringVarP(&schemeFormat, "format", "f", "text", "output format (text, json, css)")
	schemeCmd.Flags().StringVarP(&schemeOutput, "output", "o", "", "output file (default: stdout)")
	schemeCmd.Flags().StringVar(&schemeCSSPrefix, "css-prefix", "--tonal-", "custom property prefix for --format css")
	schemeCmd.Flags().StringVar(&schemeCustomFile, "custom", "", "JSON file of custom scheme options; selects the custom variant")
	schemeCmd.Flags().StringVar(&schemeFromDescriptor, "from-descriptor", "", "JSON export or descriptor to rebuild schemes from")
	schemeCmd.Flags().BoolVar(&schemeDescriptor, "descriptor", false, "print only the descriptors needed to rebuild the schemes (JSON)")
	schemeCmd.Flags().BoolVar(&schemeShowPreview, "preview", false, "show colour swatches (default: when stdout is a terminal)")

	schemeCmd.MarkFlagsMutuallyExclusive("seed", "image", "from-descriptor")
}

// loadCustomOptions reads custom scheme options, filling unset fields from
// the defaults.
func loadCustomOptions(path string) (*scheme.CustomOptions, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path is given by the user
	if err != nil {
		return nil, fmt.Errorf("failed to read custom options: %w", err)
	}
	opts := scheme.DefaultCustomOptions()
	if err := json.Unmarshal(data, &opts); err != nil {
		return nil, fmt.Errorf("failed to parse custom options: %w", err)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &opts, nil
}

// loadDescriptors reads either a full JSON export, a single scheme export,
// a list of descriptors or a single descriptor.
func loadDescriptors(path string) ([]scheme.Descriptor, error) {
	data, err := os.ReadFile(path) // #nosec G304 - path is given by the user
	if err != nil {
		return nil, fmt.Errorf("failed to read descriptor: %w", err)
	}

	var doc theme.Document
	if err := json.Unmarshal(data, &doc); err == nil && len(doc.Schemes) > 0 {
		out := make([]scheme.Descriptor, len(doc.Schemes))
		for i, s := range doc.Schemes {
			out[i] = s.Descriptor
		}
		return out, nil
	}
	var one theme.SchemeDocument
	if err := json.Unmarshal(data, &one); err == nil && one.Descriptor.Variant != "" {
		return []scheme.Descriptor{one.Descriptor}, nil
	}
	var list []scheme.Descriptor
	if err := json.Unmarshal(data, &list); err == nil && len(list) > 0 {
		return list, nil
	}
	var d scheme.Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("failed to parse descriptor: %w", err)
	}
	if d.Variant == "" {
		return nil, errors.New("descriptor has no variant")
	}
	return []scheme.Descriptor{d}, nil
}

func schemeConfig(cmd *cobra.Command) func(*theme.Config) error {
	return func(c *theme.Config) error {
		if isFlagSet(cmd, "variant") {
			c.Variant = schemeVariant
		}
		if schemeCustomFile != "" {
			opts, err := loadCustomOptions(schemeCustomFile)
			if err != nil {
				return err
			}
			c.Custom = opts
			if !isFlagSet(cmd, "variant") {
				c.Variant = "custom"
			}
		}
		return nil
	}
}

// buildSchemes resolves the source from the flags and returns the theme.
func buildSchemes(cmd *cobra.Command, p *theme.Pipeline) (*theme.Theme, error) {
	switch {
	case schemeFromDescriptor != "":
		descriptors, err := loadDescriptors(schemeFromDescriptor)
		if err != nil {
			return nil, err
		}
		t := &theme.Theme{}
		for _, d := range descriptors {
			s, err := p.Rebuild(d)
			if err != nil {
				return nil, fmt.Errorf("failed to rebuild %s scheme: %w", d.Variant, err)
			}
			t.Schemes = append(t.Schemes, s)
		}
		t.Source = t.Schemes[0].Source
		return t, nil
	case schemeImage != "":
		return p.FromImage(cmd.Context(), schemeImage)
	default:
		source := scheme.DefaultSource
		if schemeSeed != "" {
			c, err := parseColour(schemeSeed)
			if err != nil {
				return nil, err
			}
			source = c
		} else {
			logger.Info("no seed given, using default", "seed", source.Hex())
		}
		return p.FromSeed(source)
	}
}

// runScheme executes the scheme command.
func runScheme(cmd *cobra.Command, _ []string) error {
	p, err := newPipeline(cmd, schemeConfig(cmd))
	if err != nil {
		return fmt.Errorf("failed to configure: %w", err)
	}

	t, err := buildSchemes(cmd, p)
	if err != nil {
		return fmt.Errorf("failed to build schemes: %w", err)
	}

	if schemeDescriptor {
		descriptors := make([]scheme.Descriptor, len(t.Schemes))
		for i, s := range t.Schemes {
			descriptors[i] = s.Descriptor()
		}
		var b strings.Builder
		if err := writeJSON(&b, descriptors); err != nil {
			return err
		}
		return writeOutput(cmd.OutOrStdout(), schemeOutput, b.String())
	}

	preview := previewByDefault()
	if isFlagSet(cmd, "preview") {
		preview = schemeShowPreview
	}

	var b strings.Builder
	switch lower(schemeFormat) {
	case "text":
		writeSchemesText(&b, t, preview)
	case "json":
		if err := writeJSON(&b, t.Document()); err != nil {
			return err
		}
	case "css":
		b.WriteString(theme.CSS(t.Schemes, schemeCSSPrefix))
	default:
		return fmt.Errorf("unknown format %q (valid: text, json, css)", schemeFormat)
	}
	return writeOutput(cmd.OutOrStdout(), schemeOutput, b.String())
}

func writeSchemesText(b *strings.Builder, t *theme.Theme, preview bool) {
	fmt.Fprintf(b, "Source: %s (%s)\n", t.Source.ToRGBA().Hex(), t.Source)
	if t.Extraction != nil {
		fmt.Fprintf(b, "Image:  %s\n", t.Extraction.Path)
	}
	for _, s := range t.Schemes {
		fmt.Fprintf(b, "\n%s (%s)\n", s.Name(), modeName(s))
		headers := []string{"Role", "Hex", "Tone"}
		if preview {
			headers = append(headers, "")
		}
		table := NewTable(headers...)
		for _, c := range s.Roles() {
			row := []string{string(c.Role), c.Hex(), formatFloat(c.Colour.Tone)}
			if preview {
				row = append(row, swatch(c.Colour, ""))
			}
			table.AddRow(row...)
		}
		b.WriteString(table.Render())
	}
}

func modeName(s *scheme.Scheme) string {
	if s.IsDark {
		return string(theme.ModeDark)
	}
	return string(theme.ModeLight)
}
