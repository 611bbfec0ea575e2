package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jmylchreest/tonal/pkg/colour/hct"
	"github.com/jmylchreest/tonal/pkg/colour/palettes"
	"github.com/spf13/cobra"
)

// defaultTones are the tones printed when --tones is not given.
const defaultTones = "0,5,10,15,20,25,30,35,40,50,60,70,80,90,95,98,99,100"

var (
	// Palette command flags
	paletteSeed        string
	paletteHue         float64
	paletteChroma      float64
	paletteTones       string
	paletteCore        bool
	paletteContent     bool
	paletteFormat      string
	paletteShowPreview bool
)

// paletteCmd represents the palette command
var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "Print the tones of a tonal palette",
	Long: `Print a tonal palette: one hue and chroma rendered at many tones.

The palette comes from --seed, or from --hue and --chroma. With --core the
six palettes a scheme is drawn from are printed instead.

Examples:
  # Tones of the palette containing a colour
  tonal palette --seed "#3366cc"

  # A palette by hue and chroma at chosen tones
  tonal palette --hue 270 --chroma 36 --tones 10,40,90

  # The core palettes of a seed as JSON
  tonal palette --seed "#3366cc" --core -f json`,
	Args: cobra.NoArgs,
	RunE: runPalette,
}

func init() {
	paletteCmd.Flags().StringVarP(&paletteSeed, "seed", "s", "", "seed colour (#rgb, #rrggbb)")
	paletteCmd.Flags().Float64Var(&paletteHue, "hue", 0, "palette hue in degrees")
	paletteCmd.Flags().Float64Var(&paletteChroma, "chroma", 48, "palette chroma")
	paletteCmd.Flags().StringVar(&paletteTones, "tones", defaultTones, "comma separated tones (0-100)")
	paletteCmd.Flags().BoolVar(&paletteCore, "core", false, "print the core palettes of the seed")
	paletteCmd.Flags().BoolVar(&paletteContent, "content", false, "keep the seed chroma in --core palettes")
	paletteCmd.Flags().StringVarP(&paletteFormat, "format", "f", "table", "output format (table, json)")
	paletteCmd.Flags().BoolVar(&paletteShowPreview, "preview", false, "show colour swatches (default: when stdout is a terminal)")

	paletteCmd.MarkFlagsMutuallyExclusive("seed", "hue")
}

// parseTones parses a comma separated list of tones.
func parseTones(s string) ([]float64, error) {
	var tones []float64
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid tone %q: %w", part, err)
		}
		if v < 0 || v > 100 {
			return nil, fmt.Errorf("tone %v out of range 0-100", v)
		}
		tones = append(tones, v)
	}
	if len(tones) == 0 {
		return nil, fmt.Errorf("no tones given")
	}
	return tones, nil
}

type namedPalette struct {
	Name    string
	Palette palettes.TonalPalette
}

func selectPalettes() ([]namedPalette, error) {
	var seed hct.HCT
	switch {
	case paletteSeed != "":
		c, err := parseColour(paletteSeed)
		if err != nil {
			return nil, err
		}
		seed = hct.FromRGBA(c)
	default:
		if paletteChroma < 0 {
			return nil, fmt.Errorf("chroma must not be negative")
		}
		p := palettes.NewTonalPalette(paletteHue, paletteChroma)
		if !paletteCore {
			return []namedPalette{{Name: "palette", Palette: p}}, nil
		}
		seed = p.KeyColor
	}

	if !paletteCore {
		return []namedPalette{{Name: "palette", Palette: palettes.FromHCT(seed)}}, nil
	}
	core := palettes.NewCorePalette(seed, paletteContent)
	return []namedPalette{
		{"primary", core.Primary},
		{"secondary", core.Secondary},
		{"tertiary", core.Tertiary},
		{"neutral", core.Neutral},
		{"neutral-variant", core.NeutralVariant},
		{"error", core.Error},
	}, nil
}

type paletteJSON struct {
	Name   string            `json:"name"`
	Hue    float64           `json:"hue"`
	Chroma float64           `json:"chroma"`
	Key    string            `json:"key"`
	Tones  map[string]string `json:"tones"`
}

// runPalette executes the palette command.
func runPalette(cmd *cobra.Command, _ []string) error {
	tones, err := parseTones(paletteTones)
	if err != nil {
		return err
	}
	selected, err := selectPalettes()
	if err != nil {
		return err
	}

	preview := previewByDefault()
	if isFlagSet(cmd, "preview") {
		preview = paletteShowPreview
	}

	out := cmd.OutOrStdout()
	switch lower(paletteFormat) {
	case "json":
		docs := make([]paletteJSON, len(selected))
		for i, np := range selected {
			doc := paletteJSON{
				Name:   np.Name,
				Hue:    round1(np.Palette.Hue),
				Chroma: round1(np.Palette.Chroma),
				Key:    np.Palette.KeyColor.ToRGBA().Hex(),
				Tones:  make(map[string]string, len(tones)),
			}
			for _, t := range tones {
				doc.Tones[strconv.FormatFloat(t, 'f', -1, 64)] = np.Palette.Tone(t).Hex()
			}
			docs[i] = doc
		}
		return writeJSON(out, docs)
	case "table":
		headers := []string{"Tone"}
		for _, np := range selected {
			headers = append(headers, np.Name)
		}
		table := NewTable(headers...)
		for _, t := range tones {
			row := []string{strconv.FormatFloat(t, 'f', -1, 64)}
			for _, np := range selected {
				cell := np.Palette.Tone(t).Hex()
				if preview {
					cell = swatch(np.Palette.GetWithTone(t), "") + " " + cell
				}
				row = append(row, cell)
			}
			table.AddRow(row...)
		}
		_, err := fmt.Fprint(out, table.Render())
		return err
	default:
		return fmt.Errorf("unknown format %q (valid: table, json)", paletteFormat)
	}
}
