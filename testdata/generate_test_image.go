// Sample image generator for trying out colour extraction by hand:
//
//	go run testdata/generate_test_image.go
//	colorific extract testdata/sample.png
//
// The image is a white-margined card on a navy ground holding blocks of
// red, orange, teal and a few near-duplicate shades that should merge.
package main

import (
	"image"
	"image/color"
	"image/png"
	"os"
)

func main() {
	const (
		width  = 400
		height = 300
		margin = 20
	)
	img := image.NewRGBA(image.Rect(0, 0, width, height))

	fill := func(r image.Rectangle, c color.RGBA) {
		for y := r.Min.Y; y < r.Max.Y; y++ {
			for x := r.Min.X; x < r.Max.X; x++ {
				img.SetRGBA(x, y, c)
			}
		}
	}

	fill(img.Bounds(), color.RGBA{R: 255, G: 255, B: 255, A: 255})                                         // White margin, cropped
	fill(image.Rect(margin, margin, width-margin, height-margin), color.RGBA{R: 20, G: 30, B: 90, A: 255}) // Navy background

	blocks := []struct {
		rect image.Rectangle
		c    color.RGBA
	}{
		{image.Rect(60, 60, 160, 160), color.RGBA{R: 220, G: 30, B: 40, A: 255}},    // Red
		{image.Rect(160, 60, 180, 160), color.RGBA{R: 224, G: 32, B: 44, A: 255}},   // Red, merges
		{image.Rect(200, 60, 300, 160), color.RGBA{R: 250, G: 140, B: 20, A: 255}},  // Orange
		{image.Rect(60, 180, 300, 240), color.RGBA{R: 20, G: 160, B: 150, A: 255}},  // Teal
		{image.Rect(310, 60, 350, 240), color.RGBA{R: 128, G: 128, B: 128, A: 255}}, // Grey, filtered
	}
	for _, b := range blocks {
		fill(b.rect, b.c)
	}

	file, err := os.Create("testdata/sample.png")
	if err != nil {
		panic(err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		panic(err)
	}

	println("Sample image created: testdata/sample.png")
}
