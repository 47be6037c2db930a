package cli

import (
	"bytes"
	"context"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/spritepack/pkg/atlas"
	"github.com/matzehuels/spritepack/pkg/config"
	"github.com/matzehuels/spritepack/pkg/errors"
	"github.com/matzehuels/spritepack/pkg/io"
	"github.com/matzehuels/spritepack/pkg/pack"
	"github.com/matzehuels/spritepack/pkg/raster"
)

func writeIcons(t *testing.T, dir string) {
	t.Helper()
	for _, f := range []struct {
		name string
		w, h int
	}{
		{"home.png", 16, 16},
		{"home@2x.png", 32, 32},
		{"search.png", 24, 12},
		{"search@2x.png", 48, 24},
	} {
		path := filepath.Join(dir, f.name)
		if err := os.MkdirAll(dir, 0o755); err != nil {
			t.Fatal(err)
		}
		file, err := os.Create(path)
		if err != nil {
			t.Fatal(err)
		}
		if err := png.Encode(file, raster.Create(f.w, f.h, color.NRGBA{B: 200, A: 255})); err != nil {
			t.Fatal(err)
		}
		file.Close()
	}
}

func execute(t *testing.T, args ...string) error {
	t.Helper()
	root := New(&bytes.Buffer{}, log.InfoLevel).RootCommand()
	root.SetArgs(args)
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	return root.ExecuteContext(context.Background())
}

func TestGenerateEndToEnd(t *testing.T) {
	dir := t.TempDir()
	icons := filepath.Join(dir, "icons")
	writeIcons(t, icons)
	out := filepath.Join(dir, "dist", "sprite.png")
	manifest := filepath.Join(dir, "dist", "sprite.json")

	err := execute(t, "generate", "-s", icons, "-o", out, "-m", "2", "--out-json", manifest, "--style-banner", "--style-banner-text", "test")
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}

	for _, path := range []string{out, filepath.Join(dir, "dist", "sprite@2x.png"), manifest} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected output %s: %v", path, err)
		}
	}

	css, err := os.ReadFile(filepath.Join(dir, "dist", "sprite.css"))
	if err != nil {
		t.Fatalf("stylesheet not written: %v", err)
	}
	for _, want := range []string{"* test\n", ".icon-home", ".icon-search", "url(sprite.png)", "url(sprite@2x.png)"} {
		if !strings.Contains(string(css), want) {
			t.Errorf("stylesheet missing %q:\n%s", want, css)
		}
	}

	res, err := io.ImportJSON(manifest)
	if err != nil {
		t.Fatalf("ImportJSON() error: %v", err)
	}
	if len(res.Normal.Sprites) != 2 {
		t.Errorf("normal sprites = %d, want 2", len(res.Normal.Sprites))
	}
	if res.Retina == nil || len(res.Retina.Sprites) != 2 {
		t.Fatalf("retina atlas = %+v, want 2 sprites", res.Retina)
	}
	if res.Retina.Width != 2*res.Normal.Width || res.Retina.Height != 2*res.Normal.Height {
		t.Errorf("retina size %dx%d, want double of %dx%d",
			res.Retina.Width, res.Retina.Height, res.Normal.Width, res.Normal.Height)
	}

	restyled := filepath.Join(dir, "restyled.css")
	if err := execute(t, "style", manifest, "-o", restyled, "--prefix", "sp"); err != nil {
		t.Fatalf("style error: %v", err)
	}
	css, err = os.ReadFile(restyled)
	if err != nil {
		t.Fatalf("restyled stylesheet not written: %v", err)
	}
	if !strings.Contains(string(css), ".sp-home") {
		t.Errorf("restyled stylesheet should use the new prefix:\n%s", css)
	}

	if err := execute(t, "inspect", manifest, "--retina"); err != nil {
		t.Errorf("inspect error: %v", err)
	}
}

func TestGenerateNoRetinaNoStyle(t *testing.T) {
	dir := t.TempDir()
	icons := filepath.Join(dir, "icons")
	writeIcons(t, icons)
	out := filepath.Join(dir, "dist", "sprite.png")

	if err := execute(t, "generate", "-s", icons, "-o", out, "--no-retina", "--no-style"); err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if _, err := os.Stat(out); err != nil {
		t.Errorf("atlas not written: %v", err)
	}
	for _, name := range []string{"sprite@2x.png", "sprite.css"} {
		if _, err := os.Stat(filepath.Join(dir, "dist", name)); !os.IsNotExist(err) {
			t.Errorf("%s should not be written", name)
		}
	}
}

func TestGenerateConfigFile(t *testing.T) {
	dir := t.TempDir()
	icons := filepath.Join(dir, "icons")
	writeIcons(t, icons)
	out := filepath.Join(dir, "dist", "sprite.png")
	cfgPath := filepath.Join(dir, config.FileName)
	cfg := "[sprite]\nsources = [" + quote(icons) + "]\nout = " + quote(out) + "\nretina = false\narrangement = \"vertical\"\n"
	if err := os.WriteFile(cfgPath, []byte(cfg), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := execute(t, "--config", cfgPath, "generate", "--no-style", "--out-json", filepath.Join(dir, "m.json")); err != nil {
		t.Fatalf("generate error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "dist", "sprite@2x.png")); !os.IsNotExist(err) {
		t.Error("retina = false in config should skip the retina atlas")
	}
	res, err := io.ImportJSON(filepath.Join(dir, "m.json"))
	if err != nil {
		t.Fatal(err)
	}
	// With retina off and no filter every source, @2x included, is packed
	// into the normal atlas: 48 wide, 16+32+12+24 high.
	if res.Normal.Width != 48 || res.Normal.Height != 84 {
		t.Errorf("vertical atlas = %dx%d, want 48x84", res.Normal.Width, res.Normal.Height)
	}
	if len(res.Normal.Sprites) != 4 {
		t.Errorf("normal sprites = %d, want 4", len(res.Normal.Sprites))
	}
}

func quote(s string) string {
	return "'" + s + "'"
}

func TestGenerateErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		args []string
		code errors.Code
	}{
		{"missing source", []string{"generate", "-o", filepath.Join(dir, "s.png")}, errors.ErrCodeInvalidInput},
		{"missing out", []string{"generate", "-s", dir}, errors.ErrCodeInvalidInput},
		{"bad arrangement", []string{"generate", "-s", dir, "-o", "s.png", "--arrangement", "diagonal"}, errors.ErrCodeInvalidArrangement},
		{"bad compression", []string{"generate", "-s", dir, "-o", "s.png", "-c", "max"}, errors.ErrCodeInvalidCompression},
		{"no matches", []string{"generate", "-s", filepath.Join(dir, "*.png"), "-o", "s.png"}, errors.ErrCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := execute(t, tt.args...)
			if !errors.Is(err, tt.code) {
				t.Errorf("error = %v, want code %s", err, tt.code)
			}
		})
	}
}

func TestGenerateOptsDefaults(t *testing.T) {
	o := generateOpts{
		sources:     []string{"icons"},
		out:         "dist/sprite.png",
		compression: string(raster.DefaultCompression),
		arrangement: string(pack.DefaultArrangement),
	}
	opts, err := o.spriteOptions()
	if err != nil {
		t.Fatalf("spriteOptions() error: %v", err)
	}
	if !opts.RetinaEnabled() {
		t.Error("retina should be on by default")
	}
	if !opts.Interlace {
		t.Error("interlace should be on by default")
	}
	if opts.Compression != raster.CompressionHigh {
		t.Errorf("compression = %s, want high", opts.Compression)
	}
	if got := o.stylePath(); got != "dist/sprite.css" {
		t.Errorf("stylePath() = %q, want dist/sprite.css", got)
	}
	o.outStyle = "css/icons.css"
	if got := o.stylePath(); got != "css/icons.css" {
		t.Errorf("stylePath() = %q, want css/icons.css", got)
	}
}

func TestCoverage(t *testing.T) {
	tests := []struct {
		atlas atlas.Atlas
		want  string
	}{
		{atlas.Atlas{}, "0%"},
		{atlas.Atlas{Width: 10, Height: 10, Sprites: []atlas.Sprite{{Width: 5, Height: 10}}}, "50.0%"},
		{atlas.Atlas{Width: 4, Height: 4, Sprites: []atlas.Sprite{{Width: 4, Height: 4}}}, "100.0%"},
	}
	for _, tt := range tests {
		if got := coverage(&tt.atlas); got != tt.want {
			t.Errorf("coverage(%dx%d) = %q, want %q", tt.atlas.Width, tt.atlas.Height, got, tt.want)
		}
	}
}

func TestCorruptManifest(t *testing.T) {
	manifest := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(manifest, []byte(`{"image":`), 0o644); err != nil {
		t.Fatal(err)
	}
	for _, cmd := range []string{"inspect", "style"} {
		if err := execute(t, cmd, manifest); !errors.IsInvalid(err) {
			t.Errorf("%s on a corrupt manifest: error = %v, want an INVALID_* code", cmd, err)
		}
	}
}
