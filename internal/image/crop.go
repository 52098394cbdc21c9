package image

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// ToRGB copies img into an opaque RGBA image anchored at the origin.
// Alpha is dropped rather than composited, so transparent pixels keep
// whatever colour they carry.
func ToRGB(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))

	if src, ok := img.(*image.RGBA); ok && src.Opaque() {
		draw.Copy(dst, image.Point{}, src, bounds, draw.Src, nil)
		return dst
	}

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			dst.SetRGBA(x-bounds.Min.X, y-bounds.Min.Y, color.RGBA{R: c.R, G: c.G, B: c.B, A: 255})
		}
	}
	return dst
}

// Autocrop trims a uniform border of colour bg. It returns the smallest
// sub-image holding every pixel that differs from bg, or img itself when
// there is no such pixel.
func Autocrop(img *image.RGBA, bg color.RGBA) *image.RGBA {
	bounds := img.Bounds()
	minX, minY := bounds.Max.X, bounds.Max.Y
	maxX, maxY := bounds.Min.X-1, bounds.Min.Y-1

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			if img.RGBAAt(x, y) == bg {
				continue
			}
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}

	if maxX < minX {
		return img
	}
	return img.SubImage(image.Rect(minX, minY, maxX+1, maxY+1)).(*image.RGBA)
}
