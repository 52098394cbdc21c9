package colour

import "math"

// CMC l:c weighting. 2:1 is the acceptability setting.
const (
	cmcLightness = 2.0
	cmcChroma    = 1.0
)

// DefaultMinDistance is the CMC distance below which two colours are
// considered the same. It is tuned to the scale of Distance.
const DefaultMinDistance = 10.0

// lab holds CIE L*a*b* coordinates on the usual 0-100 lightness scale.
type lab struct {
	L, A, B float64
}

// toLab converts through go-colorful (sRGB, D65). go-colorful reports
// lightness in [0,1], so everything is scaled by 100.
func toLab(c RGB) lab {
	l, a, b := c.colorful().Lab()
	return lab{L: l * 100, A: a * 100, B: b * 100}
}

// Distance returns the perceptual difference between two colours using the
// CMC l:c formula. CMC weights by its reference colour, so both directions
// are averaged to make the result symmetric.
func Distance(c1, c2 RGB) float64 {
	if c1 == c2 {
		return 0
	}
	l1, l2 := toLab(c1), toLab(c2)
	return (cmc(l1, l2) + cmc(l2, l1)) / 2
}

// cmc computes the CMC l:c difference of sample from reference.
func cmc(reference, sample lab) float64 {
	c1 := math.Hypot(reference.A, reference.B)
	c2 := math.Hypot(sample.A, sample.B)

	dL := reference.L - sample.L
	dC := c1 - c2
	da := reference.A - sample.A
	db := reference.B - sample.B
	dH2 := max(da*da+db*db-dC*dC, 0)

	h1 := math.Atan2(reference.B, reference.A) * 180 / math.Pi
	if h1 < 0 {
		h1 += 360
	}

	var t float64
	if h1 >= 164 && h1 <= 345 {
		t = 0.56 + math.Abs(0.2*math.Cos((h1+168)*math.Pi/180))
	} else {
		t = 0.36 + math.Abs(0.4*math.Cos((h1+35)*math.Pi/180))
	}

	c1Pow4 := c1 * c1 * c1 * c1
	f := math.Sqrt(c1Pow4 / (c1Pow4 + 1900))

	sl := 0.511
	if reference.L >= 16 {
		sl = 0.040975 * reference.L / (1 + 0.01765*reference.L)
	}
	sc := 0.0638*c1/(1+0.0131*c1) + 0.638
	sh := sc * (f*t + 1 - f)

	termL := dL / (cmcLightness * sl)
	termC := dC / (cmcChroma * sc)
	return math.Sqrt(termL*termL + termC*termC + dH2/(sh*sh))
}
