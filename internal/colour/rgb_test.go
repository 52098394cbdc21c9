package colour

import (
	"errors"
	"image/color"
	"testing"
)

func TestRGBHex(t *testing.T) {
	tests := []struct {
		name string
		rgb  RGB
		want string
	}{
		{name: "black", rgb: Black, want: "000000"},
		{name: "white", rgb: White, want: "ffffff"},
		{name: "orange", rgb: RGB{R: 255, G: 165, B: 0}, want: "ffa500"},
		{name: "low values", rgb: RGB{R: 1, G: 2, B: 3}, want: "010203"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.rgb.Hex(); got != tt.want {
				t.Errorf("Hex() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    RGB
		wantErr bool
	}{
		{name: "orange", input: "#ffa500", want: RGB{R: 255, G: 165, B: 0}},
		{name: "uppercase", input: "#FFA500", want: RGB{R: 255, G: 165, B: 0}},
		{name: "black", input: "#000000", want: Black},
		{name: "missing hash", input: "ffa500", wantErr: true},
		{name: "too short", input: "#fff", wantErr: true},
		{name: "too long", input: "#ffa5000", wantErr: true},
		{name: "not hex", input: "#gga500", wantErr: true},
		{name: "signed", input: "#+fa500", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHex(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseHex(%q) expected error, got %v", tt.input, got)
				}
				if !errors.Is(err, ErrInvalidHex) {
					t.Errorf("ParseHex(%q) error = %v, want ErrInvalidHex", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseHex(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseHex(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestHexRoundTrip(t *testing.T) {
	step := 1
	if testing.Short() {
		step = 15
	}

	for r := 0; r < 256; r += step {
		for g := 0; g < 256; g += step {
			for b := 0; b < 256; b += step {
				c := RGB{R: uint8(r), G: uint8(g), B: uint8(b)}
				got, err := ParseHex("#" + c.Hex())
				if err != nil {
					t.Fatalf("ParseHex(#%s) unexpected error: %v", c.Hex(), err)
				}
				if got != c {
					t.Fatalf("round trip of %v gave %v", c, got)
				}
			}
		}
	}
}

func TestToRGB(t *testing.T) {
	tests := []struct {
		name  string
		color color.Color
		want  RGB
	}{
		{name: "rgba", color: color.RGBA{R: 10, G: 20, B: 30, A: 255}, want: RGB{R: 10, G: 20, B: 30}},
		{name: "nrgba opaque", color: color.NRGBA{R: 200, G: 100, B: 50, A: 255}, want: RGB{R: 200, G: 100, B: 50}},
		{name: "gray", color: color.Gray{Y: 128}, want: RGB{R: 128, G: 128, B: 128}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToRGB(tt.color); got != tt.want {
				t.Errorf("ToRGB() = %v, want %v", got, tt.want)
			}
		})
	}
}
