package colour

// Filter defaults.
const (
	// DefaultMinSaturation drops greyish colours.
	DefaultMinSaturation = 0.05

	// DefaultMinProminence keeps colours within two orders of magnitude of
	// the most prominent one.
	DefaultMinProminence = 0.01

	// DefaultMaxColors caps the filtered foreground.
	DefaultMaxColors = 5
)

// Saturation returns the HSV saturation of c in [0,1].
func Saturation(c RGB) float64 {
	_, s, _ := c.colorful().Hsv()
	return s
}

// meetsSaturation reports whether c is strictly more saturated than threshold.
func meetsSaturation(c Color, threshold float64) bool {
	return Saturation(c.Value) > threshold
}

// FilterSaturation keeps the colours more saturated than threshold. When none
// qualify, the first (most prominent) colour is kept alone so the result is
// only empty for empty input.
func FilterSaturation(colors []Color, threshold float64) []Color {
	kept := make([]Color, 0, len(colors))
	for _, c := range colors {
		if meetsSaturation(c, threshold) {
			kept = append(kept, c)
		}
	}
	if len(kept) == 0 && len(colors) > 0 {
		return colors[:1:1]
	}
	return kept
}

// SaturatedBackground returns bg, or nil if bg is not saturated enough to be
// worth reporting.
func SaturatedBackground(bg *Color, threshold float64) *Color {
	if bg == nil || !meetsSaturation(*bg, threshold) {
		return nil
	}
	return bg
}

// FilterProminence drops colours less prominent than minProminence times the
// top colour's prominence, then keeps at most maxColors. colors must be
// sorted by descending prominence.
func FilterProminence(colors []Color, minProminence float64, maxColors int) []Color {
	if len(colors) == 0 {
		return colors
	}

	cutoff := colors[0].Prominence * minProminence
	kept := make([]Color, 0, min(len(colors), maxColors))
	for _, c := range colors {
		if len(kept) == maxColors {
			break
		}
		if c.Prominence >= cutoff {
			kept = append(kept, c)
		}
	}
	return kept
}
