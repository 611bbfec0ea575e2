// Package seed derives the random seed used to initialise k-means
// refinement, so that the same image yields the same theme on every run.
package seed

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"slices"
	"strings"

	"github.com/jmylchreest/tonal/pkg/colour/cie"
)

// Mode determines how the seed is generated.
type Mode string

const (
	// ModeContent hashes the sampled pixels (default, deterministic by content).
	ModeContent Mode = "content"
	// ModeFilepath hashes the absolute file path.
	ModeFilepath Mode = "filepath"
	// ModeManual uses a user-provided value.
	ModeManual Mode = "manual"
	// ModeRandom differs on every run.
	ModeRandom Mode = "random"
)

// Config holds configuration for seed generation.
type Config struct {
	Mode  Mode
	Value *int64 // only used by ModeManual
}

// Calculate returns the seed for an image given its sampled pixels and the
// path it was loaded from. A zero result is never returned, since zero
// selects the quantizer's built-in default.
func Calculate(pixels []cie.RGBA, imagePath string, config Config) (int64, error) {
	var v int64
	switch config.Mode {
	case ModeContent, "":
		if len(pixels) == 0 {
			return 0, fmt.Errorf("pixels are required for content-based seed mode")
		}
		v = ContentSeed(pixels)
	case ModeFilepath:
		if imagePath == "" {
			return 0, fmt.Errorf("image path is required for filepath-based seed mode")
		}
		v = FilepathSeed(imagePath)
	case ModeManual:
		if config.Value == nil {
			return 0, fmt.Errorf("seed value is required for manual seed mode")
		}
		v = *config.Value
	case ModeRandom:
		v = rand.Int64() // #nosec G404 -- not used for security
	default:
		return 0, fmt.Errorf("unknown seed mode: %s", config.Mode)
	}
	if v == 0 {
		v = 1
	}
	return v, nil
}

// ContentSeed hashes pixel bytes, alpha included.
func ContentSeed(pixels []cie.RGBA) int64 {
	hasher := sha256.New()
	buf := make([]byte, 4)
	for _, p := range pixels {
		buf[0], buf[1], buf[2], buf[3] = p.R, p.G, p.B, p.A8()
		hasher.Write(buf)
	}
	return int64(binary.LittleEndian.Uint64(hasher.Sum(nil)[:8])) // #nosec G115 -- hash conversion is safe
}

// FilepathSeed hashes the absolute form of a path. URLs are hashed as given.
func FilepathSeed(imagePath string) int64 {
	key := imagePath
	if !strings.HasPrefix(imagePath, "http://") && !strings.HasPrefix(imagePath, "https://") {
		if abs, err := filepath.Abs(imagePath); err == nil {
			key = abs
		}
	}
	hash := sha256.Sum256([]byte(key))
	return int64(binary.LittleEndian.Uint64(hash[:8])) // #nosec G115 -- hash conversion is safe
}

// ValidModes returns a list of valid seed modes.
func ValidModes() []Mode {
	return []Mode{ModeContent, ModeFilepath, ModeManual, ModeRandom}
}

// ParseMode converts a string to a Mode.
func ParseMode(s string) (Mode, error) {
	mode := Mode(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(ValidModes(), mode) {
		return mode, nil
	}
	return "", fmt.Errorf("invalid seed mode: %s (valid: content, filepath, manual, random)", s)
}
