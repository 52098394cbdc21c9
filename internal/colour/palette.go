package colour

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Palette is the result of an extraction: foreground colours ordered by
// descending prominence and an optional background colour.
type Palette struct {
	Colors     []Color
	Background *Color
}

// NewPalette creates a new Palette with the given colours and background.
func NewPalette(colors []Color, bg *Color) *Palette {
	return &Palette{
		Colors:     colors,
		Background: bg,
	}
}

// Len returns the number of foreground colours in the palette.
func (p *Palette) Len() int {
	return len(p.Colors)
}

// OutputSize returns how many of n foreground colours are reported: up to
// five when there are at least five, otherwise up to three.
func OutputSize(n int) int {
	if n < 5 {
		return min(n, 3)
	}
	return 5
}

// Reported returns the foreground colours that are part of the public
// output, truncated according to OutputSize.
func (p *Palette) Reported() []Color {
	return p.Colors[:OutputSize(len(p.Colors))]
}

// Hex returns the reported colours as lowercase hex strings without "#".
func (p *Palette) Hex() []string {
	reported := p.Reported()
	hexColors := make([]string, len(reported))
	for i, c := range reported {
		hexColors[i] = c.Value.Hex()
	}
	return hexColors
}

// ColorJSON represents a colour in JSON output format.
type ColorJSON struct {
	Hex        string  `json:"hex"`
	RGB        RGB     `json:"rgb"`
	Prominence float64 `json:"prominence"`
}

// PaletteJSON represents the palette in JSON format.
type PaletteJSON struct {
	Count      int         `json:"count"`
	Colors     []ColorJSON `json:"colors"`
	Background *ColorJSON  `json:"background,omitempty"`
}

func toColorJSON(c Color) ColorJSON {
	return ColorJSON{
		Hex:        c.Value.Hex(),
		RGB:        c.Value,
		Prominence: c.Prominence,
	}
}

// ToJSON converts the reported colours and background to JSON.
func (p *Palette) ToJSON() ([]byte, error) {
	reported := p.Reported()
	colors := make([]ColorJSON, len(reported))
	for i, c := range reported {
		colors[i] = toColorJSON(c)
	}

	paletteJSON := PaletteJSON{
		Count:  len(colors),
		Colors: colors,
	}
	if p.Background != nil {
		bg := toColorJSON(*p.Background)
		paletteJSON.Background = &bg
	}

	return json.MarshalIndent(paletteJSON, "", "  ")
}

// String returns a human-readable string representation of the palette.
func (p *Palette) String() string {
	if len(p.Colors) == 0 && p.Background == nil {
		return "Empty palette"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Palette with %d colours:\n", len(p.Colors))
	for i, c := range p.Colors {
		fmt.Fprintf(&b, "  %2d: %s %5.1f%% (%s)\n", i+1, c.Value.Hex(), c.Prominence*100, c.Value.String())
	}
	if p.Background != nil {
		fmt.Fprintf(&b, "  bg: %s %5.1f%% (%s)\n", p.Background.Value.Hex(), p.Background.Prominence*100, p.Background.Value.String())
	}
	return b.String()
}
