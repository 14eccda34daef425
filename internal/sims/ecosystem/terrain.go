package ecosystem

import opensimplex "github.com/ojrac/opensimplex-go"

// buildTerrain rasterizes the obstacle map from 2D noise: tiles whose
// normalized noise value exceeds the threshold become rock. Returns the
// obstacle grid and the per-tile initial energy fraction.
func buildTerrain(rows, cols int, noise opensimplex.Noise, scale, threshold float64) ([]bool, []float64) {
	obstacles := make([]bool, rows*cols)
	fractions := make([]float64, rows*cols)

	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			idx := row*cols + col
			n := (noise.Eval2(float64(col)*scale, float64(row)*scale) + 1) * 0.5
			if n > threshold {
				obstacles[idx] = true
				continue
			}
			// Richer tiles where the noise sits well below the rock line.
			fractions[idx] = 0.3 + 0.7*(1-n)
		}
	}
	return obstacles, fractions
}
