package proxy

import (
	"image"

	"gonum.org/v1/gonum/mat"
)

// ImageMatrix is a single image plane held as a gonum matrix, indexed (row, col).
type ImageMatrix struct {
	*mat.Dense
}

func NewImageMatrix(m *mat.Dense) ImageMatrix {
	return ImageMatrix{Dense: m}
}

// linearly maps the data range of a matrix onto 0..255. A flat matrix maps to 0.
func RescaleMatrixTo256(matrix mat.Matrix) mat.Dense {
	r, c := matrix.Dims()
	if r == 0 || c == 0 {
		return mat.Dense{}
	}
	m := mat.NewDense(r, c, nil)
	vmin := mat.Min(matrix)
	vmax := mat.Max(matrix)
	vrange := vmax - vmin
	if vrange == 0 {
		return *m
	}
	m.Apply(func(_, _ int, v float64) float64 {
		return (v - vmin) / vrange * 255
	}, matrix)
	return *m
}

// returns the plane as an 8-bit gray image, stretched to the full gray range
func (imat ImageMatrix) AsGray() *image.Gray {
	scaled := RescaleMatrixTo256(imat.Dense)
	r, c := scaled.Dims()
	g := image.NewGray(image.Rect(0, 0, c, r))
	for j := 0; j < r; j++ {
		for i, v := range scaled.RawRowView(j) {
			g.Pix[j*g.Stride+i] = uint8(v)
		}
	}
	return g
}

// returns the plane as an equalised 8-bit gray image, which shows detail in dim channels
func (imat ImageMatrix) AsEqualisedGray() *image.Gray {
	return Equalise(imat.AsGray())
}
