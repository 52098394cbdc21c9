package colour

import "testing"

var distanceSamples = []RGB{
	White,
	Black,
	{R: 255, G: 0, B: 0},
	{R: 0, G: 255, B: 0},
	{R: 0, G: 0, B: 255},
	{R: 128, G: 128, B: 128},
	{R: 255, G: 165, B: 0},
	{R: 12, G: 200, B: 190},
	{R: 250, G: 250, B: 250},
	{R: 90, G: 30, B: 140},
}

func TestDistanceIdentity(t *testing.T) {
	for _, c := range distanceSamples {
		if d := Distance(c, c); d != 0 {
			t.Errorf("Distance(%v, %v) = %g, want 0", c, c, d)
		}
	}
}

func TestDistanceSymmetricAndPositive(t *testing.T) {
	for i, a := range distanceSamples {
		for j, b := range distanceSamples {
			if i == j {
				continue
			}
			ab, ba := Distance(a, b), Distance(b, a)
			if ab != ba {
				t.Errorf("Distance(%v, %v) = %g but Distance(%v, %v) = %g", a, b, ab, b, a, ba)
			}
			if ab <= 0 {
				t.Errorf("Distance(%v, %v) = %g, want > 0", a, b, ab)
			}
		}
	}
}

func TestDistanceScale(t *testing.T) {
	tests := []struct {
		name  string
		a, b  RGB
		close bool
	}{
		{name: "near white", a: White, b: RGB{R: 250, G: 250, B: 250}, close: true},
		{name: "near red", a: RGB{R: 255, G: 0, B: 0}, b: RGB{R: 252, G: 3, B: 2}, close: true},
		{name: "near black", a: Black, b: RGB{R: 1, G: 1, B: 1}, close: true},
		{name: "red and blue", a: RGB{R: 255, G: 0, B: 0}, b: RGB{R: 0, G: 0, B: 255}},
		{name: "white and black", a: White, b: Black},
		{name: "red and orange", a: RGB{R: 255, G: 0, B: 0}, b: RGB{R: 255, G: 165, B: 0}},
		{name: "green and teal", a: RGB{R: 0, G: 255, B: 0}, b: RGB{R: 12, G: 200, B: 190}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Distance(tt.a, tt.b)
			if tt.close && d >= DefaultMinDistance {
				t.Errorf("Distance(%v, %v) = %g, want < %g", tt.a, tt.b, d, DefaultMinDistance)
			}
			if !tt.close && d < DefaultMinDistance {
				t.Errorf("Distance(%v, %v) = %g, want >= %g", tt.a, tt.b, d, DefaultMinDistance)
			}
		})
	}
}
