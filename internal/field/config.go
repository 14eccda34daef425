package field

import "math"

// Config fixes the grid shape and the per-construction invariants of the
// field engine. Changing Rows/Cols or DensityRadius requires building a new
// Field (or an explicit RecalculateFromOccupancy for the radius).
type Config struct {
	Rows int
	Cols int

	MaxTileEnergy float64
	DensityRadius int
}

// DefaultConfig returns the standard field configuration.
func DefaultConfig() Config {
	return Config{
		Rows:          128,
		Cols:          128,
		MaxTileEnergy: 5,
		DensityRadius: 2,
	}
}

func (c Config) sanitized() Config {
	if c.Rows <= 0 {
		c.Rows = 1
	}
	if c.Cols <= 0 {
		c.Cols = 1
	}
	if !isFinite(c.MaxTileEnergy) || c.MaxTileEnergy <= 0 {
		c.MaxTileEnergy = DefaultConfig().MaxTileEnergy
	}
	if c.DensityRadius < 0 {
		c.DensityRadius = 0
	}
	return c
}

// Tunables are the per-tick knobs supplied by the caller. They are sanitized
// at every use: non-finite or negative values fall back to zero so a bad
// collaborator value can never abort a pass.
type Tunables struct {
	RegenRate                 float64
	DiffusionRate             float64
	EventStrengthMultiplier   float64
	DensityEffectMultiplier   float64
	RegenDensityPenalty       float64
	ConsumptionDensityPenalty float64
}

func (t Tunables) sanitized() Tunables {
	t.RegenRate = saneNonNegative(t.RegenRate)
	t.DiffusionRate = saneNonNegative(t.DiffusionRate)
	t.EventStrengthMultiplier = saneNonNegative(t.EventStrengthMultiplier)
	t.DensityEffectMultiplier = saneNonNegative(t.DensityEffectMultiplier)
	t.RegenDensityPenalty = saneNonNegative(t.RegenDensityPenalty)
	t.ConsumptionDensityPenalty = saneNonNegative(t.ConsumptionDensityPenalty)
	return t
}

func isFinite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func saneNonNegative(v float64) float64 {
	if !isFinite(v) || v < 0 {
		return 0
	}
	return v
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
