package theme

import (
	"context"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jmylchreest/tonal/internal/seed"
	"github.com/jmylchreest/tonal/pkg/colour/cie"
	"github.com/jmylchreest/tonal/pkg/colour/scheme"
)

func TestConfigValidate(t *testing.T) {
	manual := int64(7)
	badCustom := scheme.DefaultCustomOptions()
	badCustom.LightCoreTone = 150
	goodCustom := scheme.DefaultCustomOptions()

	tests := []struct {
		name    string
		mod     func(*Config)
		wantErr bool
	}{
		{"default", func(*Config) {}, false},
		{"empty variant", func(c *Config) { c.Variant = " " }, true},
		{"bad mode", func(c *Config) { c.Mode = "dim" }, true},
		{"no candidates", func(c *Config) { c.Candidates = 0 }, true},
		{"too many candidates", func(c *Config) { c.Candidates = MaxCandidates + 1 }, true},
		{"too many quantized", func(c *Config) { c.Quantized = 1000 }, true},
		{"tiny sample", func(c *Config) { c.SampleSize = 4 }, true},
		{"bad seed mode", func(c *Config) { c.Seed.Mode = "dice" }, true},
		{"manual seed without value", func(c *Config) { c.Seed.Mode = seed.ModeManual }, true},
		{"manual seed", func(c *Config) { c.Seed = seed.Config{Mode: seed.ModeManual, Value: &manual} }, false},
		{"bad custom", func(c *Config) { c.Custom = &badCustom }, true},
		{"good custom", func(c *Config) { c.Custom = &goodCustom }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.mod(&c)
			if err := c.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	for _, in := range []string{"light", "DARK", " both "} {
		if _, err := ParseMode(in); err != nil {
			t.Errorf("ParseMode(%q) error = %v", in, err)
		}
	}
	if _, err := ParseMode("auto"); err == nil {
		t.Error("ParseMode(auto) succeeded")
	}
}

func TestBuilderEnv(t *testing.T) {
	env := map[string]string{
		EnvVariant:  "vibrant",
		EnvTheme:    "dark",
		EnvColours:  "6",
		EnvSeedMode: "filepath",
	}
	p, err := NewBuilder().
		WithEnvConfig().
		WithEnvLookup(func(k string) string { return env[k] }).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	want := DefaultConfig()
	want.Variant = "vibrant"
	want.Mode = ModeDark
	want.Candidates = 6
	want.Seed.Mode = seed.ModeFilepath
	if diff := cmp.Diff(want, p.Config()); diff != "" {
		t.Errorf("Config() mismatch (-want +got):\n%s", diff)
	}
}

func TestBuilderEnvIgnoredWithoutOptIn(t *testing.T) {
	p, err := NewBuilder().
		WithEnvLookup(func(string) string { return "dark" }).
		Build()
	if err != nil {
		t.Fatal(err)
	}
	if p.Config().Mode != ModeBoth {
		t.Errorf("Mode = %q, want %q", p.Config().Mode, ModeBoth)
	}
}

func TestBuilderOverrideWinsOverEnv(t *testing.T) {
	env := map[string]string{EnvTheme: "dark", EnvColours: "8"}
	p, err := NewBuilder().
		WithEnvConfig().
		WithEnvLookup(func(k string) string { return env[k] }).
		WithOverride(func(c *Config) { c.Mode = ModeLight }).
		Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	got := p.Config()
	if got.Mode != ModeLight {
		t.Errorf("Mode = %s, want %s", got.Mode, ModeLight)
	}
	if got.Candidates != 8 {
		t.Errorf("Candidates = %d, want 8 from the environment", got.Candidates)
	}
}

func TestBuilderLeavesRegistryUntouched(t *testing.T) {
	shared := scheme.DefaultRegistry()
	config := DefaultConfig()
	custom := scheme.DefaultCustomOptions()
	config.Custom = &custom
	config.Variant = "custom"

	p, err := NewBuilder().WithConfig(config).WithRegistry(shared).Build()
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if _, ok := p.Registry().Lookup("custom"); !ok {
		t.Error("pipeline registry is missing the custom scheme")
	}
	if _, ok := shared.Lookup("custom"); ok {
		t.Error("Build() registered custom on the caller's registry")
	}
}

func TestBuilderCustomCollision(t *testing.T) {
	shared := scheme.DefaultRegistry()
	if err := shared.Register("custom", scheme.VariantConstructor(scheme.Vibrant)); err != nil {
		t.Fatal(err)
	}
	config := DefaultConfig()
	custom := scheme.DefaultCustomOptions()
	config.Custom = &custom

	_, err := NewBuilder().WithConfig(config).WithRegistry(shared).Build()
	if !errors.Is(err, scheme.ErrInvalidOptions) {
		t.Errorf("Build() error = %v, want ErrInvalidOptions for a taken custom name", err)
	}

	config.Custom = nil
	config.Variant = "custom"
	if _, err := NewBuilder().WithConfig(config).WithRegistry(shared).Build(); err != nil {
		t.Errorf("Build() without custom options should use the registered entry: %v", err)
	}
}

func TestBuilderErrors(t *testing.T) {
	tests := []struct {
		name string
		b    *Builder
		is   error
	}{
		{"bad env theme", NewBuilder().WithEnvConfig().WithEnvLookup(func(k string) string {
			if k == EnvTheme {
				return "dim"
			}
			return ""
		}), nil},
		{"bad env colours", NewBuilder().WithEnvConfig().WithEnvLookup(func(k string) string {
			if k == EnvColours {
				return "many"
			}
			return ""
		}), nil},
		{"unknown variant", NewBuilder().WithConfig(func() Config {
			c := DefaultConfig()
			c.Variant = "sepia"
			return c
		}()), scheme.ErrUnknownVariant},
		{"custom without options", NewBuilder().WithConfig(func() Config {
			c := DefaultConfig()
			c.Variant = "custom"
			return c
		}()), scheme.ErrUnknownVariant},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.b.Build()
			if err == nil {
				t.Fatal("Build() succeeded, want error")
			}
			if tt.is != nil && !errors.Is(err, tt.is) {
				t.Errorf("Build() error = %v, want %v", err, tt.is)
			}
		})
	}
}

func TestFromSeed(t *testing.T) {
	tests := []struct {
		mode      Mode
		wantDark  []bool
		wantCount int
	}{
		{ModeLight, []bool{false}, 1},
		{ModeDark, []bool{true}, 1},
		{ModeBoth, []bool{false, true}, 2},
	}
	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			c := DefaultConfig()
			c.Mode = tt.mode
			p, err := NewBuilder().WithConfig(c).Build()
			if err != nil {
				t.Fatal(err)
			}
			th, err := p.FromSeed(scheme.DefaultSource)
			if err != nil {
				t.Fatal(err)
			}
			if len(th.Schemes) != tt.wantCount {
				t.Fatalf("got %d schemes, want %d", len(th.Schemes), tt.wantCount)
			}
			for i, s := range th.Schemes {
				if s.IsDark != tt.wantDark[i] || s.Name() != "tonal_spot" {
					t.Errorf("scheme %d: dark=%v name=%q", i, s.IsDark, s.Name())
				}
			}
		})
	}
}

func TestCustomScheme(t *testing.T) {
	custom := scheme.DefaultCustomOptions()
	c := DefaultConfig()
	c.Variant = "custom"
	c.Custom = &custom
	p, err := NewBuilder().WithConfig(c).Build()
	if err != nil {
		t.Fatal(err)
	}
	th, err := p.FromSeed(cie.Opaque(0x88, 0x22, 0x44))
	if err != nil {
		t.Fatal(err)
	}
	for _, s := range th.Schemes {
		if s.Variant != scheme.Custom || s.Name() != "custom" {
			t.Errorf("scheme = %v / %q, want custom", s.Variant, s.Name())
		}
	}

	rebuilt, err := p.Rebuild(th.Schemes[1].Descriptor())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(th.Schemes[1].Hex(), rebuilt.Hex()); diff != "" {
		t.Errorf("Rebuild() mismatch (-want +got):\n%s", diff)
	}
}

// twoTone returns pixels that are mostly blue with some orange.
func twoTone() []cie.RGBA {
	var px []cie.RGBA
	for i := range 100 {
		if i < 90 {
			px = append(px, cie.Opaque(0x33, 0x66, 0xcc))
		} else {
			px = append(px, cie.Opaque(0xff, 0x88, 0x00))
		}
	}
	return px
}

func TestExtractPixels(t *testing.T) {
	p, err := NewBuilder().Build()
	if err != nil {
		t.Fatal(err)
	}
	ex, err := p.ExtractPixels(context.Background(), "", twoTone())
	if err != nil {
		t.Fatal(err)
	}
	if ex.Pixels != 100 || ex.Quantized.Sum() != 100 {
		t.Errorf("Pixels = %d, quantized sum = %d, want 100", ex.Pixels, ex.Quantized.Sum())
	}
	if len(ex.Candidates) == 0 || ex.Candidates[0].ToRGBA().Hex() != "#3366cc" {
		t.Errorf("Candidates = %v, want #3366cc first", HexList(ex.Candidates))
	}

	again, err := p.ExtractPixels(context.Background(), "", twoTone())
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(HexList(ex.Candidates), HexList(again.Candidates)); diff != "" {
		t.Errorf("extraction is not deterministic (-first +second):\n%s", diff)
	}
}

func TestExtractPixelsCancelled(t *testing.T) {
	p, err := NewBuilder().Build()
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.ExtractPixels(ctx, "", twoTone()); !errors.Is(err, context.Canceled) {
		t.Errorf("ExtractPixels() error = %v, want context.Canceled", err)
	}
}

func TestFromImage(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 40, 40))
	for y := 0; y < 40; y++ {
		for x := 0; x < 40; x++ {
			c := color.NRGBA{R: 0x33, G: 0x66, B: 0xcc, A: 255}
			if y >= 36 {
				c = color.NRGBA{R: 0xff, G: 0x88, A: 255}
			}
			img.SetNRGBA(x, y, c)
		}
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "wall.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	p, err := NewBuilder().Build()
	if err != nil {
		t.Fatal(err)
	}
	th, err := p.FromImage(context.Background(), dir)
	if err != nil {
		t.Fatalf("FromImage() error = %v", err)
	}
	if th.Extraction.Path != path {
		t.Errorf("Path = %q, want %q", th.Extraction.Path, path)
	}
	if got := th.Source.ToRGBA().Hex(); got != "#3366cc" {
		t.Errorf("Source = %s, want #3366cc", got)
	}
	if len(th.Schemes) != 2 {
		t.Errorf("got %d schemes, want 2", len(th.Schemes))
	}

	if _, err := p.FromImage(context.Background(), filepath.Join(dir, "missing.png")); err == nil {
		t.Error("FromImage(missing) succeeded")
	}

	fake := filepath.Join(t.TempDir(), "fake.png")
	if err := os.WriteFile(fake, []byte("not a png"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := p.FromImage(context.Background(), fake); err == nil {
		t.Error("FromImage(fake) succeeded")
	}
}

func TestDocument(t *testing.T) {
	p, err := NewBuilder().Build()
	if err != nil {
		t.Fatal(err)
	}
	th, err := p.FromSeed(scheme.DefaultSource)
	if err != nil {
		t.Fatal(err)
	}
	doc := th.Document()
	if doc.Source != "#4285f4" || len(doc.Schemes) != 2 || doc.Candidates != nil {
		t.Fatalf("Document() = %+v", doc)
	}
	if doc.Schemes[0].Mode != ModeLight || doc.Schemes[1].Mode != ModeDark {
		t.Errorf("modes = %q, %q", doc.Schemes[0].Mode, doc.Schemes[1].Mode)
	}
	if len(doc.Schemes[0].Roles) != len(scheme.AllRoles()) {
		t.Errorf("got %d roles, want %d", len(doc.Schemes[0].Roles), len(scheme.AllRoles()))
	}

	data, err := json.Marshal(doc)
	if err != nil {
		t.Fatal(err)
	}
	var back Document
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatal(err)
	}
	rebuilt, err := p.Rebuild(back.Schemes[1].Descriptor)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(th.Schemes[1].Hex(), rebuilt.Hex()); diff != "" {
		t.Errorf("descriptor round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCSS(t *testing.T) {
	p, err := NewBuilder().Build()
	if err != nil {
		t.Fatal(err)
	}
	th, err := p.FromSeed(scheme.DefaultSource)
	if err != nil {
		t.Fatal(err)
	}
	css := CSS(th.Schemes, "")
	primary := th.Schemes[0].Colour(scheme.RolePrimary).ToRGBA().Hex()
	for _, want := range []string{
		":root {\n",
		"@media (prefers-color-scheme: dark)",
		"--tonal-primary: " + primary + ";",
		"--tonal-on-primary:",
	} {
		if !strings.Contains(css, want) {
			t.Errorf("CSS() missing %q", want)
		}
	}

	dark := CSS(th.Schemes[1:], "--x-")
	if strings.Contains(dark, "@media") || !strings.Contains(dark, "--x-primary:") {
		t.Errorf("CSS(dark only) = %q", dark)
	}
}
