package executor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jmylchreest/colorific/internal/colour"
	pkgplugin "github.com/jmylchreest/colorific/pkg/plugin"
)

// helperEnv makes the test binary act as an output plugin.
const helperEnv = "COLORIFIC_TEST_PLUGIN"

// cssPlugin renders palettes as CSS custom properties.
type cssPlugin struct{}

func (cssPlugin) Generate(_ context.Context, palette pkgplugin.PaletteData) (map[string][]byte, error) {
	if len(palette.Colors) == 0 {
		return nil, fmt.Errorf("no colours in %s", palette.Source)
	}

	var b strings.Builder
	b.WriteString(":root {\n")
	for i, c := range palette.Colors {
		fmt.Fprintf(&b, "  --colour-%d: #%s;\n", i+1, c.Hex)
	}
	if palette.Background != nil {
		fmt.Fprintf(&b, "  --background: #%s;\n", palette.Background.Hex)
	}
	b.WriteString("}\n")
	return map[string][]byte{"palette.css": []byte(b.String())}, nil
}

func (cssPlugin) GetMetadata() pkgplugin.PluginInfo {
	return pkgplugin.PluginInfo{
		Name:            "css",
		Version:         "0.1.0",
		ProtocolVersion: pkgplugin.ProtocolVersion,
		Description:     "CSS custom properties",
	}
}

func TestMain(m *testing.M) {
	if os.Getenv(helperEnv) == "1" {
		pkgplugin.Serve(cssPlugin{})
		os.Exit(0)
	}
	os.Exit(m.Run())
}

// newHelperExecutor returns an executor that runs this test binary as a
// plugin.
func newHelperExecutor(t *testing.T) *PluginExecutor {
	t.Helper()
	t.Setenv(helperEnv, "1")

	e, err := New(os.Args[0], nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	t.Cleanup(e.Close)
	return e
}

func testPalette() *colour.Palette {
	return colour.NewPalette(
		[]colour.Color{
			{Value: colour.RGB{G: 255}, Prominence: 0.35},
			{Value: colour.RGB{B: 255}, Prominence: 0.29},
		},
		&colour.Color{Value: colour.RGB{R: 255}, Prominence: 0.36},
	)
}

func TestNew(t *testing.T) {
	dir := t.TempDir()

	if _, err := New(filepath.Join(dir, "missing"), nil); err == nil {
		t.Error("Expected error for nonexistent plugin")
	}

	if _, err := New(dir, nil); !errors.Is(err, ErrNotExecutable) {
		t.Errorf("New(dir) error = %v, want ErrNotExecutable", err)
	}

	plain := filepath.Join(dir, "plain")
	if err := os.WriteFile(plain, []byte("#!/bin/sh\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	if _, err := New(plain, nil); !errors.Is(err, ErrNotExecutable) {
		t.Errorf("New(non-executable) error = %v, want ErrNotExecutable", err)
	}
}

func TestPaletteData(t *testing.T) {
	data := PaletteData("photo.jpg", testPalette())

	if data.Source != "photo.jpg" {
		t.Errorf("Source = %q, want photo.jpg", data.Source)
	}
	if len(data.Colors) != 2 {
		t.Fatalf("len(Colors) = %d, want 2", len(data.Colors))
	}
	want := pkgplugin.ColorData{Hex: "00ff00", G: 255, Prominence: 0.35}
	if data.Colors[0] != want {
		t.Errorf("Colors[0] = %+v, want %+v", data.Colors[0], want)
	}
	if data.Background == nil || data.Background.Hex != "ff0000" {
		t.Errorf("Background = %+v, want ff0000", data.Background)
	}

	if got := PaletteData("x", colour.NewPalette(nil, nil)); got.Background != nil || len(got.Colors) != 0 {
		t.Errorf("PaletteData(empty) = %+v, want no colours", got)
	}
}

func TestExecutorGenerate(t *testing.T) {
	if testing.Short() {
		t.Skip("starts a plugin subprocess")
	}

	e := newHelperExecutor(t)

	info, err := e.Metadata()
	if err != nil {
		t.Fatalf("Metadata() error: %v", err)
	}
	if info.Name != "css" {
		t.Errorf("Metadata().Name = %q, want css", info.Name)
	}

	files, err := e.Generate(context.Background(), PaletteData("photo.jpg", testPalette()))
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	css := string(files["palette.css"])
	for _, want := range []string{"--colour-1: #00ff00;", "--colour-2: #0000ff;", "--background: #ff0000;"} {
		if !strings.Contains(css, want) {
			t.Errorf("palette.css missing %q:\n%s", want, css)
		}
	}

	_, err = e.Generate(context.Background(), PaletteData("grey.png", colour.NewPalette(nil, nil)))
	if err == nil || !strings.Contains(err.Error(), "no colours in grey.png") {
		t.Errorf("Generate(empty) error = %v, want plugin error", err)
	}
}

func TestExecutorCancelledContext(t *testing.T) {
	e, err := New(os.Args[0], nil)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer e.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := e.Generate(ctx, PaletteData("x", testPalette())); !errors.Is(err, context.Canceled) {
		t.Errorf("Generate() error = %v, want context.Canceled", err)
	}
}
