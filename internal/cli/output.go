package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jmylchreest/tonal/pkg/colour/cie"
	"github.com/jmylchreest/tonal/pkg/colour/contrast"
	"github.com/jmylchreest/tonal/pkg/colour/hct"
	"golang.org/x/term"
)

const swatchWidth = 8

// parseColour accepts #rgb, #rrggbb and #rrggbbaa, with or without the
// leading hash.
func parseColour(s string) (cie.RGBA, error) {
	if strings.TrimSpace(s) == "" {
		return cie.RGBA{}, fmt.Errorf("empty colour")
	}
	return cie.FromHex(s)
}

// previewByDefault reports whether stdout is a terminal, which is when
// swatches are shown unless --preview says otherwise.
func previewByDefault() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// swatch renders a block of the colour with its tone printed in a
// readable foreground.
func swatch(c hct.HCT, label string) string {
	fg := "#000000"
	if contrast.RatioOfTones(c.Tone, 100) >= contrast.RatioOfTones(c.Tone, 0) {
		fg = "#ffffff"
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(c.ToRGBA().Hex()[:7])).
		Foreground(lipgloss.Color(fg)).
		Width(swatchWidth).
		Align(lipgloss.Center).
		Render(label)
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	return nil
}

// writeOutput writes to path, or to w when path is empty.
func writeOutput(w io.Writer, path, content string) error {
	if path == "" {
		_, err := io.WriteString(w, content)
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil { // #nosec G306 - output files are meant to be readable
		return fmt.Errorf("failed to write output file: %w", err)
	}
	logger.Info("wrote output", "path", path)
	return nil
}
