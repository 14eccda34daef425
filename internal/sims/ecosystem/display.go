package ecosystem

import "image/color"

const (
	displayEnergyLevels = 64
	displayObstacle     = displayEnergyLevels
	displayOrganism     = displayEnergyLevels + 1
)

var ecosystemPalette = buildEcosystemPalette()

// Palette exposes the color palette used for rendering the ecosystem world.
func (w *World) Palette() []color.RGBA {
	return ecosystemPalette
}

func buildEcosystemPalette() []color.RGBA {
	palette := make([]color.RGBA, displayOrganism+1)
	dark := color.RGBA{R: 28, G: 34, B: 22, A: 255}
	lush := color.RGBA{R: 96, G: 212, B: 82, A: 255}
	for i := 0; i < displayEnergyLevels; i++ {
		t := float64(i) / float64(displayEnergyLevels-1)
		palette[i] = lerpRGBA(dark, lush, t)
	}
	palette[displayObstacle] = color.RGBA{R: 110, G: 106, B: 100, A: 255}
	palette[displayOrganism] = color.RGBA{R: 240, G: 226, B: 120, A: 255}
	return palette
}

func lerpRGBA(a, b color.RGBA, t float64) color.RGBA {
	return color.RGBA{
		R: uint8(float64(a.R) + (float64(b.R)-float64(a.R))*t),
		G: uint8(float64(a.G) + (float64(b.G)-float64(a.G))*t),
		B: uint8(float64(a.B) + (float64(b.B)-float64(a.B))*t),
		A: 255,
	}
}

func (w *World) rebuildDisplay() {
	maxEnergy := w.field.Energy.MaxTileEnergy()
	for row := 0; row < w.rows; row++ {
		for col := 0; col < w.cols; col++ {
			idx := row*w.cols + col
			w.display[idx] = w.encodeDisplayValue(row, col, idx, maxEnergy)
		}
	}
}

func (w *World) encodeDisplayValue(row, col, idx int, maxEnergy float64) uint8 {
	if w.obstacles[idx] {
		return displayObstacle
	}
	if w.occupied[idx] {
		return displayOrganism
	}
	frac := w.field.Energy.Get(row, col) / maxEnergy
	level := int(frac * float64(displayEnergyLevels-1))
	if level < 0 {
		level = 0
	}
	if level > displayEnergyLevels-1 {
		level = displayEnergyLevels - 1
	}
	return uint8(level)
}
