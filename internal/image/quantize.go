package image

import (
	"fmt"
	"image"
	"image/color"

	"github.com/ericpauley/go-quantize/quantize"
	"golang.org/x/image/draw"

	"github.com/jmylchreest/colorific/internal/colour"
)

// Preprocessor crops a uniform border and reduces an image to an adaptive
// palette. It implements colour.Preprocessor.
type Preprocessor struct {
	// Quantizer chooses the adaptive palette.
	Quantizer draw.Quantizer

	// Border is the colour of the border to crop away.
	Border color.RGBA
}

// NewPreprocessor returns a Preprocessor that crops white borders and
// quantises with median cut.
func NewPreprocessor() *Preprocessor {
	return &Preprocessor{
		Quantizer: quantize.MedianCutQuantizer{},
		Border:    colour.White.RGBA(),
	}
}

// Preprocess converts img to RGB, crops its border and quantises it to at
// most n colours.
func (p *Preprocessor) Preprocess(img image.Image, n int) (*colour.Quantized, error) {
	if n < 1 {
		return nil, fmt.Errorf("colour count must be at least 1, got %d", n)
	}

	cropped := Autocrop(ToRGB(img), p.Border)
	bounds := cropped.Bounds()
	if bounds.Empty() {
		src := colour.NewPixelSource(cropped)
		return &colour.Quantized{Pixels: src, Counts: colour.Histogram(src)}, nil
	}

	palette := p.Quantizer.Quantize(make(color.Palette, 0, n), cropped)
	if len(palette) == 0 {
		return nil, fmt.Errorf("quantiser returned an empty palette")
	}
	if len(palette) > n {
		return nil, fmt.Errorf("quantiser returned %d colours, limit is %d", len(palette), n)
	}

	dst := image.NewPaletted(bounds, palette)
	draw.Draw(dst, bounds, cropped, bounds.Min, draw.Src)

	src := newPalettedSource(dst)
	return &colour.Quantized{Pixels: src, Counts: src.counts()}, nil
}

// palettedSource reads a paletted image as RGB.
type palettedSource struct {
	img     *image.Paletted
	palette []colour.RGB
}

func newPalettedSource(img *image.Paletted) *palettedSource {
	palette := make([]colour.RGB, len(img.Palette))
	for i, c := range img.Palette {
		palette[i] = colour.ToRGB(c)
	}
	return &palettedSource{img: img, palette: palette}
}

func (s *palettedSource) Bounds() image.Rectangle {
	return s.img.Bounds()
}

func (s *palettedSource) RGBAt(x, y int) colour.RGB {
	return s.palette[s.img.ColorIndexAt(x, y)]
}

// counts returns the histogram of the image in palette index order.
// Palette entries with the same colour are merged and unused ones skipped.
func (s *palettedSource) counts() []colour.Count {
	perIndex := make([]int, len(s.palette))
	bounds := s.img.Bounds()
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		row := s.img.Pix[s.img.PixOffset(bounds.Min.X, y):]
		for _, idx := range row[:bounds.Dx()] {
			perIndex[idx]++
		}
	}

	position := make(map[colour.RGB]int)
	var counts []colour.Count
	for i, n := range perIndex {
		if n == 0 {
			continue
		}
		c := s.palette[i]
		if j, ok := position[c]; ok {
			counts[j].N += n
			continue
		}
		position[c] = len(counts)
		counts = append(counts, colour.Count{Colour: c, N: n})
	}
	return counts
}
