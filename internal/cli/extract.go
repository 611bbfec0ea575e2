package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jmylchreest/tonal/internal/seed"
	"github.com/jmylchreest/tonal/internal/theme"
	"github.com/spf13/cobra"
)

var (
	// Extract command flags
	extractColours     int
	extractQuantize    int
	extractSampleSize  int
	extractFormat      string
	extractOutput      string
	extractSeedMode    string
	extractSeedValue   int64
	extractShowPreview bool
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract <image|directory|url>",
	Short: "Extract seed colours from an image",
	Long: `Extract ranked seed colours from an image.

The image is downsampled, quantized and every resulting colour is scored
for how well it would serve as the source of a theme. The best candidates
are printed first. A directory picks one of its images at random.

Supported image formats: JPEG, PNG, GIF, WebP, BMP, TIFF

Examples:
  # Extract 4 seed colours (default)
  tonal extract wallpaper.jpg

  # Extract 8 candidates as JSON
  tonal extract -c 8 -f json wallpaper.png

  # Show the candidates with their population and scores
  tonal extract -f table --preview wallpaper.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	extractCmd.Flags().IntVarP(&extractColours, "colours", "c", 4, fmt.Sprintf("number of seed candidates (1-%d)", theme.MaxCandidates))
	extractCmd.Flags().IntVar(&extractQuantize, "quantize", 128, fmt.Sprintf("colours kept by the quantizer (1-%d)", theme.MaxQuantized))
	extractCmd.Flags().IntVar(&extractSampleSize, "sample-size", 128, "edge length images are reduced to before quantizing")
	extractCmd.Flags().StringVarP(&extractFormat, "format", "f", "hex", "output format (hex, json, table)")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "output file (default: stdout)")
	extractCmd.Flags().StringVar(&extractSeedMode, "seed-mode", string(seed.ModeContent), "k-means seed mode (content, filepath, manual, random)")
	extractCmd.Flags().Int64Var(&extractSeedValue, "seed-value", 0, "seed for --seed-mode manual")
	extractCmd.Flags().BoolVar(&extractShowPreview, "preview", false, "show colour swatches (default: when stdout is a terminal)")
}

// extractConfig applies the extract flags that were set.
func extractConfig(cmd *cobra.Command) func(*theme.Config) error {
	return func(c *theme.Config) error {
		if isFlagSet(cmd, "colours") {
			c.Candidates = extractColours
		}
		if isFlagSet(cmd, "quantize") {
			c.Quantized = extractQuantize
		}
		if isFlagSet(cmd, "sample-size") {
			c.SampleSize = extractSampleSize
		}
		if isFlagSet(cmd, "seed-mode") {
			m, err := seed.ParseMode(extractSeedMode)
			if err != nil {
				return err
			}
			c.Seed.Mode = m
		}
		if isFlagSet(cmd, "seed-value") {
			v := extractSeedValue
			c.Seed.Value = &v
			if !isFlagSet(cmd, "seed-mode") {
				c.Seed.Mode = seed.ModeManual
			}
		}
		return nil
	}
}

// runExtract executes the extract command.
func runExtract(cmd *cobra.Command, args []string) error {
	p, err := newPipeline(cmd, extractConfig(cmd))
	if err != nil {
		return fmt.Errorf("failed to configure: %w", err)
	}

	ex, err := p.Extract(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to extract colours: %w", err)
	}
	logger.Info("extracted colours", "path", ex.Path, "pixels", ex.Pixels, "quantized", ex.Quantized.Len(), "candidates", len(ex.Candidates))

	preview := previewByDefault()
	if isFlagSet(cmd, "preview") {
		preview = extractShowPreview
	}

	var b strings.Builder
	switch lower(extractFormat) {
	case "hex":
		for _, c := range ex.Candidates {
			if preview {
				b.WriteString(swatch(c, "") + " ")
			}
			b.WriteString(c.ToRGBA().Hex() + "\n")
		}
	case "json":
		if err := writeJSON(&b, extractDocument(ex)); err != nil {
			return err
		}
	case "table":
		b.WriteString(extractTable(ex, preview).Render())
	default:
		return fmt.Errorf("unknown format %q (valid: hex, json, table)", extractFormat)
	}
	return writeOutput(cmd.OutOrStdout(), extractOutput, b.String())
}

type candidateJSON struct {
	Hex        string  `json:"hex"`
	Hue        float64 `json:"hue"`
	Chroma     float64 `json:"chroma"`
	Tone       float64 `json:"tone"`
	Population int     `json:"population"`
}

type extractionJSON struct {
	Path       string          `json:"path"`
	Pixels     int             `json:"pixels"`
	Quantized  int             `json:"quantized"`
	Candidates []candidateJSON `json:"candidates"`
}

func extractDocument(ex *theme.Extraction) extractionJSON {
	doc := extractionJSON{
		Path:      ex.Path,
		Pixels:    ex.Pixels,
		Quantized: ex.Quantized.Len(),
	}
	for _, c := range ex.Candidates {
		doc.Candidates = append(doc.Candidates, candidateJSON{
			Hex:        c.ToRGBA().Hex(),
			Hue:        round1(c.Hue),
			Chroma:     round1(c.Chroma),
			Tone:       round1(c.Tone),
			Population: ex.Quantized.Count(c.ToRGBA()),
		})
	}
	return doc
}

func extractTable(ex *theme.Extraction, preview bool) *Table {
	headers := []string{"#", "Hex", "Hue", "Chroma", "Tone", "Population"}
	if preview {
		headers = append([]string{""}, headers...)
	}
	table := NewTable(headers...)
	for i, c := range ex.Candidates {
		row := []string{
			strconv.Itoa(i + 1),
			c.ToRGBA().Hex(),
			formatFloat(c.Hue),
			formatFloat(c.Chroma),
			formatFloat(c.Tone),
			strconv.Itoa(ex.Quantized.Count(c.ToRGBA())),
		}
		if preview {
			row = append([]string{swatch(c, "")}, row...)
		}
		table.AddRow(row...)
	}
	return table
}

func round1(v float64) float64 {
	f, _ := strconv.ParseFloat(formatFloat(v), 64)
	return f
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}
