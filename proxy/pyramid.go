package proxy

import (
	"errors"
	"image"

	"github.com/disintegration/imaging"
)

var ErrTooSmall = errors.New("image is already smaller than the required minimum")

// Pyramid halves im with a gaussian filter until its short side is no more than minsize.
// Level 0 is im itself.
func Pyramid(im image.Image, minsize int) ([]image.Image, error) {
	h := min(im.Bounds().Dx(), im.Bounds().Dy())
	if h < minsize {
		return nil, ErrTooSmall
	}
	layers := []image.Image{im}
	for h > minsize {
		b := layers[len(layers)-1].Bounds()
		if b.Dx() < 2 || b.Dy() < 2 {
			break
		}
		layers = append(layers, imaging.Resize(layers[len(layers)-1], b.Dx()/2, b.Dy()/2, imaging.Gaussian))
		h /= 2
	}
	return layers, nil
}
