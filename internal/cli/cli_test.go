package cli

import (
	"bytes"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jmylchreest/tonal/internal/theme"
	"github.com/jmylchreest/tonal/internal/version"
	"github.com/jmylchreest/tonal/pkg/colour/scheme"
)

// clearEnv stops TONAL_* variables from the caller's shell leaking into
// command tests.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{theme.EnvVariant, theme.EnvTheme, theme.EnvColours, theme.EnvSeedMode, theme.EnvCacheDir, theme.EnvLogLevel} {
		t.Setenv(k, "")
	}
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	clearEnv(t)
	cmd := NewRootCmd()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeSolidPNG(t *testing.T, dir string, c color.NRGBA) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			img.SetNRGBA(x, y, c)
		}
	}
	path := filepath.Join(dir, "solid.png")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestVersionJSON(t *testing.T) {
	out, _, err := execute(t, "version", "--json")
	if err != nil {
		t.Fatalf("version --json: %v", err)
	}
	var info version.Info
	if err := json.Unmarshal([]byte(out), &info); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if diff := cmp.Diff(version.GetInfo(), info); diff != "" {
		t.Errorf("info mismatch (-want +got):\n%s", diff)
	}
}

func TestVerboseAndQuiet(t *testing.T) {
	_, _, err := execute(t, "-v", "-q", "version")
	if err == nil {
		t.Fatal("expected an error for --verbose with --quiet")
	}
}

func TestSchemeJSON(t *testing.T) {
	out, _, err := execute(t, "scheme", "--seed", "#3366cc", "--theme", "light", "-f", "json")
	if err != nil {
		t.Fatalf("scheme: %v", err)
	}
	var doc theme.Document
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if doc.Source != "#3366cc" {
		t.Errorf("source = %s, want #3366cc", doc.Source)
	}
	if len(doc.Schemes) != 1 {
		t.Fatalf("got %d schemes, want 1", len(doc.Schemes))
	}
	s := doc.Schemes[0]
	if s.Mode != theme.ModeLight || s.Name != scheme.TonalSpot.String() {
		t.Errorf("got %s %s, want tonal_spot light", s.Name, s.Mode)
	}
	if len(s.Roles) != len(scheme.AllRoles()) {
		t.Errorf("got %d roles, want %d", len(s.Roles), len(scheme.AllRoles()))
	}
}

func TestSchemeFlagsOverrideEnv(t *testing.T) {
	clearEnv(t)
	cmd := NewRootCmd()
	t.Setenv(theme.EnvTheme, "dark")
	t.Setenv(theme.EnvVariant, "vibrant")
	var stdout bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"scheme", "--seed", "#3366cc", "--theme", "light", "-f", "json"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("scheme: %v", err)
	}
	var doc theme.Document
	if err := json.Unmarshal(stdout.Bytes(), &doc); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if len(doc.Schemes) != 1 || doc.Schemes[0].Mode != theme.ModeLight {
		t.Fatalf("--theme light should win over %s=dark", theme.EnvTheme)
	}
	if doc.Schemes[0].Name != scheme.Vibrant.String() {
		t.Errorf("variant = %s, want %s from the environment", doc.Schemes[0].Name, scheme.Vibrant)
	}
}

func TestSchemeFormats(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    []string
		wantErr bool
	}{
		{
			name: "text",
			args: []string{"scheme", "--seed", "#3366cc", "--preview=false"},
			want: []string{"Source: #3366cc", "tonal_spot (light)", "tonal_spot (dark)", "on-primary"},
		},
		{
			name: "css",
			args: []string{"scheme", "--seed", "3366cc", "-f", "css"},
			want: []string{":root {", "--tonal-primary:", "@media (prefers-color-scheme: dark)"},
		},
		{
			name: "css prefix",
			args: []string{"scheme", "--seed", "#36c", "-f", "css", "--css-prefix", "--x-", "--theme", "dark"},
			want: []string{"--x-surface:"},
		},
		{
			name:    "unknown format",
			args:    []string{"scheme", "--seed", "#3366cc", "-f", "yaml"},
			wantErr: true,
		},
		{
			name:    "unknown variant",
			args:    []string{"scheme", "--seed", "#3366cc", "--variant", "pastel"},
			wantErr: true,
		},
		{
			name:    "bad seed",
			args:    []string{"scheme", "--seed", "#zzzzzz"},
			wantErr: true,
		},
		{
			name:    "bad theme",
			args:    []string{"scheme", "--theme", "dim"},
			wantErr: true,
		},
		{
			name:    "seed and image",
			args:    []string{"scheme", "--seed", "#3366cc", "--image", "x.png"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, tt.args...)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			for _, w := range tt.want {
				if !strings.Contains(out, w) {
					t.Errorf("output missing %q:\n%s", w, out)
				}
			}
		})
	}
}

func TestSchemeFromDescriptor(t *testing.T) {
	dir := t.TempDir()
	exported := filepath.Join(dir, "theme.json")
	if _, _, err := execute(t, "scheme", "--seed", "#b33b15", "--variant", "expressive", "-f", "json", "-o", exported); err != nil {
		t.Fatalf("export: %v", err)
	}
	first, err := os.ReadFile(exported)
	if err != nil {
		t.Fatal(err)
	}

	second, _, err := execute(t, "scheme", "--from-descriptor", exported, "-f", "json")
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	var a, b theme.Document
	if err := json.Unmarshal(first, &a); err != nil {
		t.Fatal(err)
	}
	if err := json.Unmarshal([]byte(second), &b); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(a, b); diff != "" {
		t.Errorf("rebuilt theme differs (-export +rebuild):\n%s", diff)
	}
}

func TestSchemeDescriptorOnly(t *testing.T) {
	out, _, err := execute(t, "scheme", "--seed", "#3366cc", "--variant", "fidelity", "--descriptor")
	if err != nil {
		t.Fatalf("scheme --descriptor: %v", err)
	}
	var got []scheme.Descriptor
	if err := json.Unmarshal([]byte(out), &got); err != nil {
		t.Fatalf("invalid JSON %q: %v", out, err)
	}
	if len(got) != 2 || got[0].IsDark || !got[1].IsDark {
		t.Fatalf("got %+v, want a light and a dark descriptor", got)
	}
	for _, d := range got {
		if d.Variant != "fidelity" || d.Origin == nil || d.Origin.Hex() != "#3366cc" {
			t.Errorf("descriptor = %+v", d)
		}
	}

	path := filepath.Join(t.TempDir(), "d.json")
	if err := os.WriteFile(path, []byte(out), 0o600); err != nil {
		t.Fatal(err)
	}
	rebuilt, _, err := execute(t, "scheme", "--from-descriptor", path, "--descriptor")
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if rebuilt != out {
		t.Errorf("rebuilt descriptors differ:\n%s\nwant:\n%s", rebuilt, out)
	}
}

func TestLoadDescriptorsSingle(t *testing.T) {
	path := filepath.Join(t.TempDir(), "d.json")
	if err := os.WriteFile(path, []byte(`{"variant":"monochrome","is_dark":true}`), 0o600); err != nil {
		t.Fatal(err)
	}
	got, err := loadDescriptors(path)
	if err != nil {
		t.Fatalf("loadDescriptors: %v", err)
	}
	want := []scheme.Descriptor{{Variant: "monochrome", IsDark: true}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("descriptors mismatch (-want +got):\n%s", diff)
	}

	if err := os.WriteFile(path, []byte(`{"is_dark":true}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := loadDescriptors(path); err == nil {
		t.Error("expected an error for a descriptor without a variant")
	}
}

func TestSchemeCustom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.json")
	if err := os.WriteFile(path, []byte(`{}`), 0o600); err != nil {
		t.Fatal(err)
	}
	out, _, err := execute(t, "scheme", "--seed", "#3366cc", "--custom", path, "-f", "json")
	if err != nil {
		t.Fatalf("scheme --custom: %v", err)
	}
	var doc theme.Document
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatal(err)
	}
	for _, s := range doc.Schemes {
		if s.Name != "custom" {
			t.Errorf("scheme name = %s, want custom", s.Name)
		}
	}

	if err := os.WriteFile(path, []byte(`{"core_gap":"enormous"}`), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, _, err := execute(t, "scheme", "--custom", path); err == nil {
		t.Error("expected an error for an unknown gap preset")
	}
}

func TestExtract(t *testing.T) {
	path := writeSolidPNG(t, t.TempDir(), color.NRGBA{R: 0x33, G: 0x66, B: 0xcc, A: 0xff})

	out, _, err := execute(t, "extract", "--preview=false", path)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if out != "#3366cc\n" {
		t.Errorf("hex output = %q, want %q", out, "#3366cc\n")
	}

	out, _, err = execute(t, "extract", "-f", "json", "--seed-value", "7", path)
	if err != nil {
		t.Fatalf("extract json: %v", err)
	}
	var doc extractionJSON
	if err := json.Unmarshal([]byte(out), &doc); err != nil {
		t.Fatal(err)
	}
	if doc.Pixels != 32*32 || len(doc.Candidates) != 1 {
		t.Fatalf("got %d pixels and %d candidates, want 1024 and 1", doc.Pixels, len(doc.Candidates))
	}
	if c := doc.Candidates[0]; c.Hex != "#3366cc" || c.Population != 32*32 {
		t.Errorf("candidate = %+v", c)
	}

	out, _, err = execute(t, "extract", "-f", "table", "--preview=false", path)
	if err != nil {
		t.Fatalf("extract table: %v", err)
	}
	if !strings.Contains(out, "Population") || !strings.Contains(out, "#3366cc") {
		t.Errorf("unexpected table:\n%s", out)
	}
}

func TestExtractErrors(t *testing.T) {
	path := writeSolidPNG(t, t.TempDir(), color.NRGBA{R: 0xff, A: 0xff})
	tests := []struct {
		name string
		args []string
	}{
		{"missing file", []string{"extract", filepath.Join(t.TempDir(), "nope.png")}},
		{"bad format", []string{"extract", "-f", "xml", path}},
		{"too many colours", []string{"extract", "-c", "99", path}},
		{"bad seed mode", []string{"extract", "--seed-mode", "lunar", path}},
		{"no args", []string{"extract"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := execute(t, tt.args...); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestPaletteJSON(t *testing.T) {
	out, _, err := execute(t, "palette", "--hue", "270", "--chroma", "36", "--tones", "0, 100", "-f", "json")
	if err != nil {
		t.Fatalf("palette: %v", err)
	}
	var docs []paletteJSON
	if err := json.Unmarshal([]byte(out), &docs); err != nil {
		t.Fatal(err)
	}
	if len(docs) != 1 {
		t.Fatalf("got %d palettes, want 1", len(docs))
	}
	want := map[string]string{"0": "#000000", "100": "#ffffff"}
	if diff := cmp.Diff(want, docs[0].Tones); diff != "" {
		t.Errorf("tones mismatch (-want +got):\n%s", diff)
	}
}

func TestPaletteCoreTable(t *testing.T) {
	out, _, err := execute(t, "palette", "--seed", "#3366cc", "--core", "--tones", "40,90", "--preview=false")
	if err != nil {
		t.Fatalf("palette --core: %v", err)
	}
	for _, w := range []string{"primary", "neutral-variant", "error"} {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q:\n%s", w, out)
		}
	}
	if lines := strings.Count(out, "\n"); lines != 4 {
		t.Errorf("got %d lines, want header, separator and 2 tones", lines)
	}
}

func TestParseTones(t *testing.T) {
	tests := []struct {
		in      string
		want    []float64
		wantErr bool
	}{
		{in: "0,50,100", want: []float64{0, 50, 100}},
		{in: " 12.5 , 99 ,", want: []float64{12.5, 99}},
		{in: "", wantErr: true},
		{in: "101", wantErr: true},
		{in: "ten", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseTones(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseTones(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("parseTones(%q) mismatch (-want +got):\n%s", tt.in, diff)
		}
	}
}

func TestContrastRatio(t *testing.T) {
	tests := []struct {
		a, b string
		want string
	}{
		{"#ffffff", "#000000", "21.00:1 (AAA)"},
		{"100", "0", "21.00:1 (AAA)"},
		{"50", "50", "1.00:1 (fail)"},
	}
	for _, tt := range tests {
		out, _, err := execute(t, "contrast", "ratio", tt.a, tt.b)
		if err != nil {
			t.Fatalf("ratio %s %s: %v", tt.a, tt.b, err)
		}
		if got := strings.TrimSpace(out); got != tt.want {
			t.Errorf("ratio %s %s = %q, want %q", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestContrastTone(t *testing.T) {
	out, _, err := execute(t, "contrast", "tone", "50", "4.5")
	if err != nil {
		t.Fatalf("tone: %v", err)
	}
	for _, w := range []string{"lighter", "darker", "preferred"} {
		if !strings.Contains(out, w) {
			t.Errorf("output missing %q:\n%s", w, out)
		}
	}

	out, _, err = execute(t, "contrast", "tone", "0", "21")
	if err != nil {
		t.Fatalf("tone 0 21: %v", err)
	}
	if !strings.Contains(out, "unreachable") {
		t.Errorf("darker than black should be unreachable:\n%s", out)
	}

	for _, args := range [][]string{
		{"contrast", "tone", "50", "30"},
		{"contrast", "tone", "150", "3"},
		{"contrast", "tone", "50", "x"},
	} {
		if _, _, err := execute(t, args...); err == nil {
			t.Errorf("%v: expected an error", args)
		}
	}
}

func TestParseColour(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "#3366cc", want: "#3366cc"},
		{in: "3366CC", want: "#3366cc"},
		{in: "#abc", want: "#aabbcc"},
		{in: "#3366cc80", want: "#3366cc80"},
		{in: "", wantErr: true},
		{in: "#12345", wantErr: true},
	}
	for _, tt := range tests {
		got, err := parseColour(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseColour(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got.Hex() != tt.want {
			t.Errorf("parseColour(%q) = %s, want %s", tt.in, got.Hex(), tt.want)
		}
	}
}

func TestWCAGLevel(t *testing.T) {
	tests := map[float64]string{21: "AAA", 7: "AAA", 4.5: "AA", 3.2: "AA large", 2.9: "fail"}
	for ratio, want := range tests {
		if got := wcagLevel(ratio); got != want {
			t.Errorf("wcagLevel(%v) = %q, want %q", ratio, got, want)
		}
	}
}
