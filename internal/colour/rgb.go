// Package colour implements perceptual palette extraction: greedy colour
// aggregation, prominence ranking, background detection and filtering.
package colour

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"

	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidHex is returned when a string is not a "#rrggbb" colour.
var ErrInvalidHex = errors.New("invalid hex colour")

// RGB represents an opaque 8-bit colour. It is comparable and safe to use
// as a map key.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

var (
	// White is always seeded as a canonical colour; it commonly comes from
	// cropped or background regions.
	White = RGB{R: 255, G: 255, B: 255}

	// Black is always seeded as a canonical colour; it commonly comes from
	// text and outlines.
	Black = RGB{R: 0, G: 0, B: 0}
)

// String returns the colour in the format "rgb(r, g, b)".
func (rgb RGB) String() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", rgb.R, rgb.G, rgb.B)
}

// Hex returns the colour as six lowercase hex digits without a leading "#".
func (rgb RGB) Hex() string {
	return fmt.Sprintf("%02x%02x%02x", rgb.R, rgb.G, rgb.B)
}

// RGBA returns the colour as a fully opaque color.RGBA.
func (rgb RGB) RGBA() color.RGBA {
	return color.RGBA{R: rgb.R, G: rgb.G, B: rgb.B, A: 255}
}

// colorful converts to go-colorful's [0,1] float representation.
func (rgb RGB) colorful() colorful.Color {
	return colorful.Color{
		R: float64(rgb.R) / 255.0,
		G: float64(rgb.G) / 255.0,
		B: float64(rgb.B) / 255.0,
	}
}

// ToRGB converts a color.Color to RGB, discarding alpha.
func ToRGB(c color.Color) RGB {
	if rgba, ok := c.(color.RGBA); ok {
		return RGB{R: rgba.R, G: rgba.G, B: rgba.B}
	}
	r, g, b, _ := c.RGBA()
	// RGBA returns values in the range [0, 65535], convert to [0, 255]
	return RGB{
		R: uint8(r >> 8),
		G: uint8(g >> 8),
		B: uint8(b >> 8),
	}
}

// ParseHex parses a colour in the form "#rrggbb".
func ParseHex(s string) (RGB, error) {
	if len(s) != 7 || s[0] != '#' {
		return RGB{}, fmt.Errorf("%w: %q (expected #rrggbb)", ErrInvalidHex, s)
	}

	var channels [3]uint8
	for i := range channels {
		v, err := strconv.ParseUint(s[1+i*2:3+i*2], 16, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("%w: %q: %w", ErrInvalidHex, s, err)
		}
		channels[i] = uint8(v)
	}

	return RGB{R: channels[0], G: channels[1], B: channels[2]}, nil
}
