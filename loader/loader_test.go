package loader

import (
	"encoding/binary"
	"errors"
	"math"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/gogpu/saver"
	"github.com/gogpu/saver/shader"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

const solarized = `
description = "Solarized plasma"
base = "plasmula"

[options]
palette = ["#002b36", "#268bd2", "#2aa198", "#859900", "#b58900"]
time_scale = 0.3
`

const redFragment = `
description = "Red screen"
base = "blank"
fragment = """
@fragment
fn fs_main(input: VertexOutput) -> @location(0) vec4<f32> {
    return vec4<f32>(1.0, 0.0, 0.0, 1.0);
}
"""

[options]
color = "#ff0000"
`

func TestLoadFile_OptionsOnly(t *testing.T) {
	path := writeFile(t, t.TempDir(), "solarized.toml", solarized)

	e, err := LoadFile(path, nil)
	if err != nil {
		t.Fatalf("LoadFile() = %v", err)
	}
	if e.Name != "solarized" || e.Description != "Solarized plasma" || e.Source != path {
		t.Errorf("LoadFile() = %+v", e)
	}

	p, ok := e.Effect.(*saver.Plasma)
	if !ok {
		t.Fatalf("Effect is %T, want *saver.Plasma", e.Effect)
	}
	if cfg := p.Config(); cfg.TimeScale != 0.3 || cfg.Palette.Len() != 5 {
		t.Errorf("config TimeScale=%v palette=%d, want 0.3 and 5", cfg.TimeScale, cfg.Palette.Len())
	}

	builtin, _ := saver.NewBuiltinRegistry().Lookup("plasmula")
	if e.Fragment != builtin.Fragment {
		t.Error("entry without fragment should reuse the base shader")
	}
}

func TestLoadFile_OptionsReachUniforms(t *testing.T) {
	path := writeFile(t, t.TempDir(), "solarized.toml", solarized)
	e, err := LoadFile(path, nil)
	if err != nil {
		t.Fatalf("LoadFile() = %v", err)
	}

	b := saver.FrameUniforms(e.Effect, saver.NewFrameContext(1, 640, 480)).Bytes()
	if len(b) != shader.UniformSize {
		t.Fatalf("len(Bytes()) = %d, want %d", len(b), shader.UniformSize)
	}
	word := func(offset int) float64 {
		return float64(math.Float32frombits(binary.LittleEndian.Uint32(b[offset:])))
	}

	tests := []struct {
		name   string
		offset int
		want   float64
	}{
		{"speed from time_scale", 12, 0.3},
		{"palette length", 28, 5},
		{"palette[0] #002b36 green", 80 + 4, 43.0 / 255},
		{"palette[0] #002b36 blue", 80 + 8, 54.0 / 255},
		{"palette[4] #b58900 red", 80 + 4*16, 181.0 / 255},
	}
	for _, tt := range tests {
		if got := word(tt.offset); math.Abs(got-tt.want) > 1e-6 {
			t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
		}
	}

	builtin, _ := saver.NewBuiltinRegistry().Lookup("plasmula")
	if got := saver.FrameUniforms(builtin.Effect, saver.NewFrameContext(1, 640, 480)).Palette[0]; got == [4]float32{0, 43.0 / 255, 54.0 / 255, 1} {
		t.Error("built-in plasmula should keep its own palette")
	}
}

func TestLoadFile_WithFragment(t *testing.T) {
	path := writeFile(t, t.TempDir(), "red.toml", redFragment)

	e, err := LoadFile(path, nil)
	if err != nil {
		t.Fatalf("LoadFile() = %v", err)
	}
	if !strings.Contains(e.Fragment, "vec4<f32>(1.0, 0.0, 0.0, 1.0)") {
		t.Errorf("Fragment = %q, want the descriptor source", e.Fragment)
	}
	got := saver.Sample(e.Effect, saver.NewFrameContext(1, 10, 10), saver.V2(0.5, 0.5))
	if got != saver.NewRGB(1, 0, 0).Opaque() {
		t.Errorf("Sample() = %v, want red", got)
	}
}

func TestLoadFile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		target  error
	}{
		{"syntax", "base = ", nil},
		{"no base", `description = "x"`, ErrMissingBase},
		{"unknown base", `base = "aurora"`, saver.ErrNotFound},
		{"bad option", "base = \"matrix\"\n[options]\ncolor = \"chartreuse\"\n", nil},
		{"missing entry", "base = \"blank\"\nfragment = \"fn helper() -> f32 { return 1.0; }\"\n", nil},
		{"bad wgsl", "base = \"blank\"\nfragment = \"\"\"\n@fragment\nfn fs_main(input: VertexOutput) -> @location(0) vec4<f32> { return nope; }\n\"\"\"\n", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, t.TempDir(), "broken.toml", tt.content)
			_, err := LoadFile(path, nil)
			if err == nil {
				t.Fatal("LoadFile() = nil, want error")
			}
			var le *saver.LoadError
			if !errors.As(err, &le) {
				t.Fatalf("LoadFile() error %T, want *saver.LoadError", err)
			}
			if le.Name != "broken" || le.Path != path {
				t.Errorf("LoadError = {%q, %q}, want {broken, %q}", le.Name, le.Path, path)
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("LoadFile() = %v, want %v", err, tt.target)
			}
		})
	}
}

func TestLoadDir_MissingDirectory(t *testing.T) {
	entries, errs := LoadDir(filepath.Join(t.TempDir(), "absent"), nil)
	if len(entries) != 0 || len(errs) != 0 {
		t.Errorf("LoadDir(missing) = %v, %v, want nothing", entries, errs)
	}
}

func TestLoadDir_SkipsAndOrders(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.toml", `base = "starfield"`)
	writeFile(t, dir, "a.toml", `base = "matrix"`)
	writeFile(t, dir, "notes.txt", "not an effect")
	writeFile(t, dir, "broken.toml", `base = "aurora"`)
	if err := os.Mkdir(filepath.Join(dir, "sub.toml"), 0o700); err != nil {
		t.Fatal(err)
	}

	entries, errs := LoadDir(dir, nil)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name)
	}
	if want := []string{"a", "b"}; !slices.Equal(names, want) {
		t.Errorf("LoadDir() names = %v, want %v", names, want)
	}
	if len(errs) != 1 {
		t.Fatalf("LoadDir() errs = %v, want 1", errs)
	}
}

func TestApply_OverridesBuiltin(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Matrix.toml", "base = \"matrix\"\n[options]\ncolor = \"#ff0000\"\n")
	writeFile(t, dir, "plasmula.toml", `base = "aurora"`)

	reg := saver.NewBuiltinRegistry()
	err := Apply(reg, dir)

	var le *saver.LoadError
	if !errors.As(err, &le) || le.Name != "plasmula" {
		t.Fatalf("Apply() = %v, want LoadError for plasmula", err)
	}

	if got, want := reg.List(), []string{"blank", "Matrix", "starfield", "plasmula", "plasmula-alt"}; !slices.Equal(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}

	e, _ := reg.Lookup("matrix")
	if e.Source == saver.SourceBuiltin {
		t.Error("matrix should be overridden by the custom file")
	}
	rain, ok := e.Effect.(*saver.Rain)
	if !ok || rain.Config().Trail != saver.NewRGB(1, 0, 0) {
		t.Errorf("custom matrix effect = %#v, want red trail", e.Effect)
	}

	// The failed override leaves the built-in authoritative.
	p, _ := reg.Lookup("plasmula")
	if p.Source != saver.SourceBuiltin {
		t.Errorf("plasmula Source = %q, want builtin", p.Source)
	}
}

func TestApply_FrozenRegistry(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "extra.toml", `base = "blank"`)

	reg := saver.NewBuiltinRegistry()
	reg.Freeze()
	if err := Apply(reg, dir); !errors.Is(err, saver.ErrFrozen) {
		t.Errorf("Apply() on frozen registry = %v, want ErrFrozen", err)
	}
}
