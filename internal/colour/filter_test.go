package colour

import (
	"math"
	"testing"
)

func TestSaturation(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		want float64
	}{
		{name: "black", rgb: Black, want: 0},
		{name: "white", rgb: White, want: 0},
		{name: "grey", rgb: RGB{R: 128, G: 128, B: 128}, want: 0},
		{name: "red", rgb: red, want: 1},
		{name: "pastel", rgb: RGB{R: 255, G: 204, B: 204}, want: 0.2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Saturation(tt.rgb); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Saturation(%v) = %g, want %g", tt.rgb, got, tt.want)
			}
		})
	}
}

func TestFilterSaturation(t *testing.T) {
	grey := RGB{R: 120, G: 120, B: 120}
	offWhite := RGB{R: 250, G: 248, B: 248}

	tests := []struct {
		name   string
		colors []Color
		want   []RGB
	}{
		{
			name:   "drops unsaturated colours",
			colors: []Color{{Value: grey, Prominence: 0.5}, {Value: red, Prominence: 0.3}, {Value: White, Prominence: 0.1}, {Value: blue, Prominence: 0.1}},
			want:   []RGB{red, blue},
		},
		{
			name:   "falls back to most prominent",
			colors: []Color{{Value: grey, Prominence: 0.6}, {Value: offWhite, Prominence: 0.3}, {Value: Black, Prominence: 0.1}},
			want:   []RGB{grey},
		},
		{
			name:   "empty input",
			colors: nil,
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterSaturation(tt.colors, DefaultMinSaturation)
			if len(got) != len(tt.want) {
				t.Fatalf("FilterSaturation() = %v, want %v", got, tt.want)
			}
			for i := range tt.want {
				if got[i].Value != tt.want[i] {
					t.Errorf("FilterSaturation()[%d] = %v, want %v", i, got[i].Value, tt.want[i])
				}
			}
		})
	}
}

func TestFilterSaturationThresholdIsExclusive(t *testing.T) {
	pastel := Color{Value: RGB{R: 255, G: 204, B: 204}, Prominence: 0.4}
	vivid := Color{Value: red, Prominence: 0.2}

	got := FilterSaturation([]Color{pastel, vivid}, Saturation(pastel.Value))
	if len(got) != 1 || got[0] != vivid {
		t.Errorf("Expected only %v to pass, got %v", vivid, got)
	}
}

func TestSaturatedBackground(t *testing.T) {
	white := &Color{Value: White, Prominence: 0.7}
	if got := SaturatedBackground(white, DefaultMinSaturation); got != nil {
		t.Errorf("Expected white background to be discarded, got %v", got)
	}

	green := &Color{Value: RGB{R: 0, G: 160, B: 0}, Prominence: 0.5}
	if got := SaturatedBackground(green, DefaultMinSaturation); got != green {
		t.Errorf("Expected green background to be kept, got %v", got)
	}

	if got := SaturatedBackground(nil, DefaultMinSaturation); got != nil {
		t.Errorf("Expected nil background to stay nil, got %v", got)
	}
}

func TestFilterProminence(t *testing.T) {
	colors := []Color{
		{Value: red, Prominence: 0.5},
		{Value: blue, Prominence: 0.2},
		{Value: green, Prominence: 0.005},
		{Value: RGB{R: 255, G: 165}, Prominence: 0.0049},
	}

	tests := []struct {
		name      string
		maxColors int
		want      int
	}{
		{name: "relative cutoff", maxColors: 5, want: 3},
		{name: "cap", maxColors: 2, want: 2},
		{name: "single", maxColors: 1, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterProminence(colors, DefaultMinProminence, tt.maxColors)
			if len(got) != tt.want {
				t.Fatalf("FilterProminence() kept %d colours, want %d: %v", len(got), tt.want, got)
			}
			for i := range got {
				if got[i] != colors[i] {
					t.Errorf("FilterProminence()[%d] = %v, want %v", i, got[i], colors[i])
				}
			}
		})
	}

	if got := FilterProminence(nil, DefaultMinProminence, DefaultMaxColors); len(got) != 0 {
		t.Errorf("Expected empty result for empty input, got %v", got)
	}
}
