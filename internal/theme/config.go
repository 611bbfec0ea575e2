// Package theme runs the host pipeline: an image or a seed colour goes in,
// ranked seed candidates and light and dark schemes come out.
package theme

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jmylchreest/tonal/internal/seed"
	"github.com/jmylchreest/tonal/pkg/colour/scheme"
)

// Mode selects which schemes are built.
type Mode string

const (
	ModeLight Mode = "light"
	ModeDark  Mode = "dark"
	ModeBoth  Mode = "both"
)

// ValidModes returns the accepted theme modes.
func ValidModes() []Mode {
	return []Mode{ModeLight, ModeDark, ModeBoth}
}

// ParseMode converts a string to a Mode.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(ValidModes(), m) {
		return m, nil
	}
	return "", fmt.Errorf("invalid theme mode: %s (valid: light, dark, both)", s)
}

// darkness lists the isDark values a mode asks for, light first.
func (m Mode) darkness() []bool {
	switch m {
	case ModeLight:
		return []bool{false}
	case ModeDark:
		return []bool{true}
	default:
		return []bool{false, true}
	}
}

// Limits for Config fields.
const (
	MaxCandidates = 16
	MaxQuantized  = 256
	MinSampleSize = 16
	MaxSampleSize = 1024
)

// Config holds pipeline configuration.
type Config struct {
	// Variant names a registered scheme, e.g. "tonal_spot".
	Variant string
	// Mode selects light, dark or both schemes.
	Mode Mode
	// Candidates is the number of ranked seed colours kept from an image.
	Candidates int
	// Quantized is the colour count handed to the quantizer.
	Quantized int
	// SampleSize is the edge length images are reduced to.
	SampleSize int
	// Seed controls k-means initialisation.
	Seed seed.Config
	// Custom, when set, is registered as the "custom" scheme.
	Custom *scheme.CustomOptions
}

// DefaultConfig returns the default pipeline configuration.
func DefaultConfig() Config {
	return Config{
		Variant:    scheme.TonalSpot.String(),
		Mode:       ModeBoth,
		Candidates: 4,
		Quantized:  128,
		SampleSize: 128,
		Seed:       seed.Config{Mode: seed.ModeContent},
	}
}

// Validate validates the pipeline configuration. Whether Variant names a
// registered scheme is checked when the pipeline is built.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Variant) == "" {
		return fmt.Errorf("variant cannot be empty")
	}
	if !slices.Contains(ValidModes(), c.Mode) {
		return fmt.Errorf("invalid theme mode: %q", c.Mode)
	}
	if c.Candidates < 1 || c.Candidates > MaxCandidates {
		return fmt.Errorf("candidate count must be between 1 and %d, got %d", MaxCandidates, c.Candidates)
	}
	if c.Quantized < 1 || c.Quantized > MaxQuantized {
		return fmt.Errorf("quantized colour count must be between 1 and %d, got %d", MaxQuantized, c.Quantized)
	}
	if c.SampleSize < MinSampleSize || c.SampleSize > MaxSampleSize {
		return fmt.Errorf("sample size must be between %d and %d, got %d", MinSampleSize, MaxSampleSize, c.SampleSize)
	}
	if c.Seed.Mode != "" && !slices.Contains(seed.ValidModes(), c.Seed.Mode) {
		return fmt.Errorf("invalid seed mode: %q", c.Seed.Mode)
	}
	if c.Seed.Mode == seed.ModeManual && c.Seed.Value == nil {
		return fmt.Errorf("manual seed mode requires a seed value")
	}
	if c.Custom != nil {
		if err := c.Custom.Validate(); err != nil {
			return fmt.Errorf("invalid custom scheme: %w", err)
		}
	}
	return nil
}
