package theme

import (
	"context"
	"fmt"
	"time"

	"github.com/hashicorp/go-hclog"
	"github.com/jmylchreest/tonal/internal/image"
	"github.com/jmylchreest/tonal/internal/seed"
	"github.com/jmylchreest/tonal/pkg/colour/cie"
	"github.com/jmylchreest/tonal/pkg/colour/hct"
	"github.com/jmylchreest/tonal/pkg/colour/quantize"
	"github.com/jmylchreest/tonal/pkg/colour/scheme"
	"github.com/jmylchreest/tonal/pkg/colour/score"
)

// Pipeline turns images and seed colours into schemes. It is safe for
// concurrent use once built.
type Pipeline struct {
	config   Config
	logger   hclog.Logger
	registry *scheme.Registry
	loader   image.Loader
}

// Extraction is the result of analysing one image.
type Extraction struct {
	// Path is the image that was analysed, after directory resolution.
	Path string
	// Pixels is the number of sampled pixels.
	Pixels int
	// Quantized maps the quantized colours to their pixel counts.
	Quantized *quantize.FrequencyMap[cie.RGBA]
	// Candidates are the ranked seed colours, best first; never empty.
	Candidates []hct.HCT
}

// Theme is a source colour with the schemes built from it.
type Theme struct {
	Source     hct.HCT
	Extraction *Extraction
	Schemes    []*scheme.Scheme
}

// Config returns the validated configuration.
func (p *Pipeline) Config() Config {
	return p.config
}

// Registry returns the scheme registry in use.
func (p *Pipeline) Registry() *scheme.Registry {
	return p.registry
}

// Extract loads an image, samples it, quantizes it and ranks the result.
// A directory path picks one of its images at random.
func (p *Pipeline) Extract(ctx context.Context, path string) (*Extraction, error) {
	resolved, err := image.ResolveImagePath(path)
	if err != nil {
		return nil, err
	}
	if err := image.ValidateImagePath(resolved); err != nil {
		return nil, err
	}

	start := time.Now()
	img, err := p.loader.Load(ctx, resolved)
	if err != nil {
		return nil, fmt.Errorf("failed to load image: %w", err)
	}
	bounds := img.Bounds()
	p.logger.Debug("loaded image", "path", resolved, "width", bounds.Dx(), "height", bounds.Dy())

	pixels, err := image.Pixels(img, p.config.SampleSize)
	if err != nil {
		return nil, fmt.Errorf("failed to sample %s: %w", resolved, err)
	}
	ex, err := p.ExtractPixels(ctx, resolved, pixels)
	if err != nil {
		return nil, err
	}
	p.logger.Debug("extraction complete", "candidates", len(ex.Candidates), "elapsed", time.Since(start))
	return ex, nil
}

// ExtractPixels runs quantization and scoring on already sampled pixels.
// path only feeds the filepath seed mode and may be empty otherwise.
func (p *Pipeline) ExtractPixels(ctx context.Context, path string, pixels []cie.RGBA) (*Extraction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s, err := seed.Calculate(pixels, path, p.config.Seed)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate seed: %w", err)
	}

	quantized, err := quantize.CelebiWithOptions(pixels, p.config.Quantized, quantize.WSMeansOptions{Seed: s})
	if err != nil {
		return nil, fmt.Errorf("failed to quantize: %w", err)
	}
	p.logger.Debug("quantized pixels", "pixels", len(pixels), "colours", quantized.Len(), "seed", s)

	opts := score.DefaultOptions()
	opts.Desired = p.config.Candidates
	candidates := score.Score(quantized, opts)

	if p.logger.IsTrace() {
		for i, c := range candidates {
			p.logger.Trace("candidate", "rank", i+1, "hex", c.ToRGBA().Hex(), "hct", c.String())
		}
	}

	return &Extraction{
		Path:       path,
		Pixels:     len(pixels),
		Quantized:  quantized,
		Candidates: candidates,
	}, nil
}

// Schemes builds the configured variant from source in each configured
// mode, light first.
func (p *Pipeline) Schemes(source hct.HCT) ([]*scheme.Scheme, error) {
	var out []*scheme.Scheme
	for _, dark := range p.config.Mode.darkness() {
		s, err := p.registry.New(p.config.Variant, source, dark)
		if err != nil {
			return nil, err
		}
		p.logger.Debug("built scheme", "variant", s.Name(), "dark", dark, "source", source.ToRGBA().Hex())
		out = append(out, s)
	}
	return out, nil
}

// FromSeed builds a theme from a seed colour.
func (p *Pipeline) FromSeed(source cie.RGBA) (*Theme, error) {
	h := hct.FromRGBA(source)
	schemes, err := p.Schemes(h)
	if err != nil {
		return nil, err
	}
	return &Theme{Source: h, Schemes: schemes}, nil
}

// FromImage builds a theme from the best candidate of an image.
func (p *Pipeline) FromImage(ctx context.Context, path string) (*Theme, error) {
	ex, err := p.Extract(ctx, path)
	if err != nil {
		return nil, err
	}
	source := ex.Candidates[0]
	schemes, err := p.Schemes(source)
	if err != nil {
		return nil, err
	}
	return &Theme{Source: source, Extraction: ex, Schemes: schemes}, nil
}

// Rebuild reconstructs a scheme from its descriptor with this pipeline's
// registry.
func (p *Pipeline) Rebuild(d scheme.Descriptor) (*scheme.Scheme, error) {
	return p.registry.Build(d)
}
