package colour

import (
	"errors"
	"fmt"
	"image"
)

// DefaultBackgroundProminence is the share of the image above which the
// most prominent colour is taken to be a flat background fill.
const DefaultBackgroundProminence = 0.4

// borderMajority is how many of the sampled border points must agree for
// their colour to count as background.
const borderMajority = 3

// ErrBackgroundNotFound means the colour found on the image border has no
// canonical representative among the ranked colours.
var ErrBackgroundNotFound = errors.New("border colour missing from ranked colours")

// borderPoints returns the four corners and four edge midpoints of bounds.
func borderPoints(bounds image.Rectangle) []image.Point {
	w, h := bounds.Dx(), bounds.Dy()
	points := []image.Point{
		{0, 0}, {0, h / 2}, {0, h - 1}, {w / 2, h - 1},
		{w - 1, h - 1}, {w - 1, h / 2}, {w - 1, 0}, {w / 2, 0},
	}
	for i := range points {
		points[i] = points[i].Add(bounds.Min)
	}
	return points
}

// DetectBackground separates a background colour from ranked colours.
//
// If the top colour covers at least threshold of the image it is the
// background. Otherwise eight border points of src are sampled and a raw
// colour seen at least three times is mapped through canonical to find the
// background. The returned foreground keeps the ranked order; bg is nil
// when no background was detected.
func DetectBackground(colors []Color, canonical CanonicalMap, src PixelSource, threshold float64) ([]Color, *Color, error) {
	if len(colors) == 0 {
		return colors, nil, nil
	}

	if colors[0].Prominence >= threshold {
		bg := colors[0]
		return colors[1:], &bg, nil
	}

	bounds := src.Bounds()
	if bounds.Empty() {
		return colors, nil, nil
	}

	majority, count := borderMajorityColour(src, bounds)
	if count < borderMajority {
		return colors, nil, nil
	}

	rep, ok := canonical[majority]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s has no canonical colour", ErrBackgroundNotFound, majority)
	}

	var (
		bg         *Color
		foreground = make([]Color, 0, len(colors))
	)
	for _, c := range colors {
		if c.Value == rep {
			found := c
			bg = &found
			continue
		}
		foreground = append(foreground, c)
	}
	if bg == nil {
		return nil, nil, fmt.Errorf("%w: %s (canonical %s)", ErrBackgroundNotFound, majority, rep)
	}

	return foreground, bg, nil
}

// borderMajorityColour returns the most frequent colour among the border
// samples. Ties go to the colour sampled first.
func borderMajorityColour(src PixelSource, bounds image.Rectangle) (RGB, int) {
	counts := make(map[RGB]int)
	var order []RGB
	for _, p := range borderPoints(bounds) {
		c := src.RGBAt(p.X, p.Y)
		if counts[c] == 0 {
			order = append(order, c)
		}
		counts[c]++
	}

	var best RGB
	bestCount := 0
	for _, c := range order {
		if counts[c] > bestCount {
			best, bestCount = c, counts[c]
		}
	}
	return best, bestCount
}
