package cli

import (
	"fmt"
	"strconv"

	"github.com/jmylchreest/tonal/pkg/colour/cie"
	"github.com/jmylchreest/tonal/pkg/colour/contrast"
	"github.com/spf13/cobra"
)

// contrastCmd represents the contrast command
var contrastCmd = &cobra.Command{
	Use:   "contrast",
	Short: "Contrast ratios between colours and tones",
	Long: `Work with WCAG contrast ratios.

WCAG asks for 4.5:1 between body text and its background and 3:1 for large
text. Tones are HCT tones (L*), from 0 for black to 100 for white.`,
}

var contrastRatioCmd = &cobra.Command{
	Use:   "ratio <colour|tone> <colour|tone>",
	Short: "Print the contrast ratio of two colours or tones",
	Example: `  tonal contrast ratio "#ffffff" "#3366cc"
  tonal contrast ratio 90 40`,
	Args: cobra.ExactArgs(2),
	RunE: runContrastRatio,
}

var contrastToneCmd = &cobra.Command{
	Use:     "tone <tone> <ratio>",
	Short:   "Find the tones that reach a ratio against a tone",
	Example: `  tonal contrast tone 40 4.5`,
	Args:    cobra.ExactArgs(2),
	RunE:    runContrastTone,
}

func init() {
	contrastCmd.AddCommand(contrastRatioCmd)
	contrastCmd.AddCommand(contrastToneCmd)
}

// parseToneOrColour accepts a bare number as a tone, anything else as a
// colour whose L* is used.
func parseToneOrColour(s string) (float64, error) {
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		if v < 0 || v > 100 {
			return 0, fmt.Errorf("tone %v out of range 0-100", v)
		}
		return v, nil
	}
	c, err := parseColour(s)
	if err != nil {
		return 0, err
	}
	return cie.LStarFromRGBA(c), nil
}

func wcagLevel(ratio float64) string {
	switch {
	case ratio >= 7:
		return "AAA"
	case ratio >= 4.5:
		return "AA"
	case ratio >= 3:
		return "AA large"
	default:
		return "fail"
	}
}

func runContrastRatio(cmd *cobra.Command, args []string) error {
	a, err := parseToneOrColour(args[0])
	if err != nil {
		return err
	}
	b, err := parseToneOrColour(args[1])
	if err != nil {
		return err
	}
	ratio := contrast.RatioOfTones(a, b)
	fmt.Fprintf(cmd.OutOrStdout(), "%.2f:1 (%s)\n", ratio, wcagLevel(ratio))
	return nil
}

func runContrastTone(cmd *cobra.Command, args []string) error {
	tone, err := strconv.ParseFloat(args[0], 64)
	if err != nil || tone < 0 || tone > 100 {
		return fmt.Errorf("invalid tone %q (0-100)", args[0])
	}
	ratio, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return fmt.Errorf("invalid ratio %q", args[1])
	}
	if err := contrast.CheckRatio(ratio); err != nil {
		return err
	}

	show := func(v float64, ok bool) string {
		if !ok {
			return "unreachable"
		}
		return formatFloat(v)
	}
	table := NewTable("Direction", "Tone")
	lighter, lok := contrast.Lighter(tone, ratio)
	darker, dok := contrast.Darker(tone, ratio)
	best, bok := contrast.ForTone(tone, ratio)
	table.AddRow("lighter", show(lighter, lok))
	table.AddRow("darker", show(darker, dok))
	table.AddRow("preferred", show(best, bok))
	table.AddRow("lighter (clamped)", formatFloat(contrast.LighterUnsafe(tone, ratio)))
	table.AddRow("darker (clamped)", formatFloat(contrast.DarkerUnsafe(tone, ratio)))
	_, err = fmt.Fprint(cmd.OutOrStdout(), table.Render())
	return err
}
