package colour

import "image"

// Count is a histogram entry: a colour and the number of pixels it covers.
type Count struct {
	Colour RGB
	N      int
}

// PixelSource gives read access to a decoded RGB pixel grid.
type PixelSource interface {
	Bounds() image.Rectangle
	RGBAt(x, y int) RGB
}

// Histogram counts the pixels of src. Entries are returned in the order each
// colour is first seen in a row-major scan so that the result is
// deterministic.
func Histogram(src PixelSource) []Count {
	bounds := src.Bounds()
	index := make(map[RGB]int)
	var counts []Count
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := src.RGBAt(x, y)
			if i, ok := index[c]; ok {
				counts[i].N++
				continue
			}
			index[c] = len(counts)
			counts = append(counts, Count{Colour: c, N: 1})
		}
	}
	return counts
}

// TotalPixels sums the counts of a histogram.
func TotalPixels(counts []Count) int {
	total := 0
	for _, c := range counts {
		total += c.N
	}
	return total
}

// imageSource adapts an image.Image to PixelSource.
type imageSource struct {
	image.Image
}

// NewPixelSource wraps img so its pixels can be read as RGB.
func NewPixelSource(img image.Image) PixelSource {
	if src, ok := img.(PixelSource); ok {
		return src
	}
	return imageSource{img}
}

// RGBAt returns the pixel at (x, y) without alpha.
func (s imageSource) RGBAt(x, y int) RGB {
	return ToRGB(s.At(x, y))
}
