package spectral

import (
	"image"
	"image/color"

	"github.com/lucasb-eyer/go-colorful"
)

// Swatch returns the display colour of a wavelength: the raw response treated as linear RGB,
// clamped into gamut and gamma-encoded to sRGB.
func Swatch(l float64) colorful.Color {
	r, g, b := WavelengthToRGB(l)
	return colorful.LinearRgb(r, g, b).Clamped()
}

// Legend draws a horizontal strip with one column per wavelength of the grid.
func Legend(wavelengths []float64, height int) *image.NRGBA {
	if height < 1 {
		height = 1
	}
	im := image.NewNRGBA(image.Rect(0, 0, len(wavelengths), height))
	for i, l := range wavelengths {
		r, g, b := Swatch(l).RGB255()
		c := color.NRGBA{R: r, G: g, B: b, A: 255}
		for j := 0; j < height; j++ {
			im.SetNRGBA(i, j, c)
		}
	}
	return im
}
