package colour

import (
	"errors"
	"fmt"
	"slices"
)

// ErrPixelCountMismatch means the aggregated counts do not add up to the
// number of pixels in the image they were taken from.
var ErrPixelCountMismatch = errors.New("aggregated pixel count does not match image size")

// Color is a canonical colour together with the fraction of the image it
// represents.
type Color struct {
	Value      RGB     `json:"value"`
	Prominence float64 `json:"prominence"`
}

// Rank converts aggregated counts into prominences and orders them from
// most to least prominent. Equal prominences keep aggregation order.
// Canonical colours that cover no pixels, such as unused sentinels, are
// left out.
func Rank(agg *Aggregation, totalPixels int) ([]Color, error) {
	if total := agg.Total(); total != totalPixels {
		return nil, fmt.Errorf("%w: counted %d, expected %d", ErrPixelCountMismatch, total, totalPixels)
	}

	colors := make([]Color, 0, len(agg.Colours))
	for _, c := range agg.Colours {
		if c.N == 0 {
			continue
		}
		colors = append(colors, Color{
			Value:      c.Colour,
			Prominence: float64(c.N) / float64(totalPixels),
		})
	}

	slices.SortStableFunc(colors, func(a, b Color) int {
		switch {
		case a.Prominence > b.Prominence:
			return -1
		case a.Prominence < b.Prominence:
			return 1
		default:
			return 0
		}
	})

	return colors, nil
}
