package quantize

import (
	"github.com/jmylchreest/tonal/pkg/colour/cie"
)

// MinOpaqueAlpha is the lowest alpha byte a pixel needs to take part in
// quantization.
const MinOpaqueAlpha = 80

// Celebi quantizes pixels by running Wu and refining its output with
// WSMeans. Pixels with an alpha byte below MinOpaqueAlpha are ignored.
func Celebi(pixels []cie.RGBA, maxColors int) (*FrequencyMap[cie.RGBA], error) {
	return CelebiWithOptions(pixels, maxColors, WSMeansOptions{})
}

// CelebiWithOptions is Celebi with explicit refinement options.
func CelebiWithOptions(pixels []cie.RGBA, maxColors int, opts WSMeansOptions) (*FrequencyMap[cie.RGBA], error) {
	opaque := make([]cie.RGBA, 0, len(pixels))
	for _, p := range pixels {
		if p.A8() >= MinOpaqueAlpha {
			opaque = append(opaque, p)
		}
	}
	wu, err := Wu(opaque, maxColors)
	if err != nil {
		return nil, err
	}
	return WSMeans(opaque, wu, maxColors, opts), nil
}
