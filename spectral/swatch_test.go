package spectral

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSwatch(t *testing.T) {
	r, g, b := Swatch(300).RGB255()
	assert.Equal(t, [3]uint8{0, 0, 0}, [3]uint8{r, g, b})

	red := Swatch(620)
	assert.True(t, red.IsValid())
	assert.Greater(t, red.R, red.G)
	assert.Zero(t, red.B)

	blue := Swatch(450)
	assert.Greater(t, blue.B, blue.R)

	for l := 400.0; l < 700; l += 5 {
		assert.True(t, Swatch(l).IsValid(), "swatch at %v", l)
	}
}

func TestLegend(t *testing.T) {
	grid, err := Linspace(400, 700, 31)
	require.NoError(t, err)
	im := Legend(grid, 8)
	assert.Equal(t, 31, im.Bounds().Dx())
	assert.Equal(t, 8, im.Bounds().Dy())
	assert.Equal(t, im.NRGBAAt(5, 0), im.NRGBAAt(5, 7))
	assert.Equal(t, uint8(255), im.NRGBAAt(0, 0).A)

	assert.Equal(t, 1, Legend(grid, 0).Bounds().Dy())
}
