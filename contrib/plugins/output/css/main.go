// Command css is a colorific output plugin that renders each palette as a
// stylesheet of CSS custom properties.
//
// Build it and pass the binary to colorific:
//
//	go build -o colorific-css .
//	colorific extract --plugin ./colorific-css photo.jpg
package main

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/jmylchreest/colorific/pkg/plugin"
)

const (
	Version = "0.1.0"
	Name    = "css"
)

var stylesheet = template.Must(template.New("css").Funcs(template.FuncMap{
	"inc":     func(i int) int { return i + 1 },
	"percent": func(p float64) string { return fmt.Sprintf("%.1f%%", p*100) },
}).Parse(`/* Generated by colorific from {{ .Source }} */
:root {
{{- range $i, $c := .Colors }}
  --colour-{{ inc $i }}: #{{ $c.Hex }}; /* {{ percent $c.Prominence }} */
{{- end }}
{{- with .Background }}
  --background: #{{ .Hex }};
{{- end }}
}
`))

// CSSPlugin implements plugin.OutputPlugin.
type CSSPlugin struct{}

// Generate renders palette into <image name>.css.
func (p *CSSPlugin) Generate(_ context.Context, palette plugin.PaletteData) (map[string][]byte, error) {
	var buf bytes.Buffer
	if err := stylesheet.Execute(&buf, palette); err != nil {
		return nil, fmt.Errorf("failed to render stylesheet: %w", err)
	}
	return map[string][]byte{outputName(palette.Source): buf.Bytes()}, nil
}

// GetMetadata returns plugin metadata.
func (p *CSSPlugin) GetMetadata() plugin.PluginInfo {
	return plugin.PluginInfo{
		Name:            Name,
		Version:         Version,
		ProtocolVersion: plugin.ProtocolVersion,
		Description:     "Render palettes as CSS custom properties",
	}
}

// outputName derives a stylesheet name from an image path or URL.
func outputName(source string) string {
	base := filepath.Base(source)
	if i := strings.IndexAny(base, "?#"); i != -1 {
		base = base[:i]
	}
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == "/" {
		base = "palette"
	}
	return base + ".css"
}

func main() {
	plugin.Serve(&CSSPlugin{})
}
