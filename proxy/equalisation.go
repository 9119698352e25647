package proxy

import "image"

// returns a histogram equalised copy of an 8-bit gray image, for previewing dim channels
func Equalise(g *image.Gray) *image.Gray {
	out := image.NewGray(g.Bounds())
	w := g.Bounds().Dx()
	for j := 0; j < g.Bounds().Dy(); j++ {
		src := g.Pix[j*g.Stride : j*g.Stride+w]
		copy(out.Pix[j*out.Stride:j*out.Stride+w], src)
	}
	copy(out.Pix, equaliser(out.Pix))
	return out
}
