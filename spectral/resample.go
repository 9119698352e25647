package spectral

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Resample linearly interpolates the coarse bands onto the dense wavelength grid.
//
// Band i of coarse is the measurement at coarseGrid[i]. The dense grid is walked once with a
// cursor k into the coarse grid: the first dense point copies band 0, a point at or past
// coarseGrid[k+1] moves the cursor forward and copies that coarse band unchanged, and any other
// point blends bands k and k+1 by its distance between their wavelengths.
func Resample(coarse Stack, coarseGrid, denseGrid []float64) (Stack, error) {
	return resample(coarse, coarseGrid, denseGrid, nil)
}

func resample(coarse Stack, coarseGrid, denseGrid []float64, progress chan<- float64) (Stack, error) {
	if err := checkResample(coarse, coarseGrid, denseGrid); err != nil {
		return nil, err
	}

	size := len(coarseGrid)
	dense := make(Stack, len(denseGrid))
	dense[0] = mat.DenseCopyOf(coarse[0])

	k := 0
	for i := 1; i < len(denseGrid); i++ {
		w := denseGrid[i]
		snapped := false
		for k+1 < size && w >= coarseGrid[k+1] {
			k++
			snapped = true
		}
		if snapped || k == size-1 {
			dense[i] = mat.DenseCopyOf(coarse[k])
		} else {
			frac := (w - coarseGrid[k]) / (coarseGrid[k+1] - coarseGrid[k])
			dense[i] = lerp(coarse[k], coarse[k+1], frac)
		}
		report(progress, float64(i+1)/float64(len(denseGrid)))
	}
	return dense, nil
}

// lerp returns a + (b-a)*frac as a new matrix.
func lerp(a, b *mat.Dense, frac float64) *mat.Dense {
	var out mat.Dense
	out.Sub(b, a)
	out.Scale(frac, &out)
	out.Add(a, &out)
	return &out
}

func checkResample(coarse Stack, coarseGrid, denseGrid []float64) error {
	const op = "resample"
	if len(coarse) != len(coarseGrid) {
		return gridError(op, -1, ErrGridMismatch,
			fmt.Sprintf("%d coarse bands", len(coarseGrid)), fmt.Sprintf("%d", len(coarse)))
	}
	if len(coarseGrid) < 2 {
		return fmt.Errorf("%s: coarse grid of %d points: %w", op, len(coarseGrid), ErrGridTooShort)
	}
	if len(denseGrid) == 0 {
		return fmt.Errorf("%s: empty dense grid: %w", op, ErrGridTooShort)
	}
	if err := coarse.Validate(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := checkIncreasing(op, coarseGrid); err != nil {
		return err
	}
	if err := checkIncreasing(op, denseGrid); err != nil {
		return err
	}
	lo, hi := coarseGrid[0], coarseGrid[len(coarseGrid)-1]
	if denseGrid[0] < lo {
		return gridError(op, 0, ErrGridBounds, fmt.Sprintf(">= %g", lo), fmt.Sprintf("%g", denseGrid[0]))
	}
	if last := len(denseGrid) - 1; denseGrid[last] > hi {
		return gridError(op, last, ErrGridBounds, fmt.Sprintf("<= %g", hi), fmt.Sprintf("%g", denseGrid[last]))
	}
	return nil
}

func checkIncreasing(op string, grid []float64) error {
	for i := 1; i < len(grid); i++ {
		if !(grid[i] > grid[i-1]) {
			return gridError(op, i, ErrGridOrder, fmt.Sprintf("> %g", grid[i-1]), fmt.Sprintf("%g", grid[i]))
		}
	}
	return nil
}

// report sends a progress fraction without blocking the caller.
func report(progress chan<- float64, v float64) {
	if progress == nil {
		return
	}
	select {
	case progress <- v:
	default:
	}
}
