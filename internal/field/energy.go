package field

import "ecofield/internal/core"

// Harvester is the accessor surface an organism presents when foraging.
type Harvester interface {
	ForageRate() float64
	HarvestCapMin() float64
	HarvestCapMax() float64
	Energy() float64
	MaxEnergy() float64
	AddEnergy(amount float64)
}

// ObstacleFunc reports whether the tile (row, col) is blocked terrain.
// Obstacle tiles never store energy and never act as diffusion sources.
type ObstacleFunc func(row, col int) bool

// EnergyField owns the double-buffered tile energy grid. The current buffer
// is authoritative at all times; the next buffer is scratch space filled
// during Regenerate and swapped in at the end of the pass.
type EnergyField struct {
	rows, cols int
	maxEnergy  float64

	curr *core.FloatGrid
	next *core.FloatGrid
}

// NewEnergyField allocates both buffers for the given shape.
func NewEnergyField(rows, cols int, maxTileEnergy float64) *EnergyField {
	if rows <= 0 {
		rows = 1
	}
	if cols <= 0 {
		cols = 1
	}
	if !isFinite(maxTileEnergy) || maxTileEnergy <= 0 {
		maxTileEnergy = DefaultConfig().MaxTileEnergy
	}
	return &EnergyField{
		rows:      rows,
		cols:      cols,
		maxEnergy: maxTileEnergy,
		curr:      core.NewFloatGrid(rows, cols),
		next:      core.NewFloatGrid(rows, cols),
	}
}

// MaxTileEnergy reports the per-tile energy ceiling.
func (f *EnergyField) MaxTileEnergy() float64 { return f.maxEnergy }

// Get reads the current buffer. Out-of-range coordinates return 0.
func (f *EnergyField) Get(row, col int) float64 {
	return f.curr.At(row, col)
}

// Set writes the current buffer, clamped to [0, maxTileEnergy]. Invalid
// coordinates are a no-op.
func (f *EnergyField) Set(row, col int, value float64) {
	if !f.curr.InBounds(row, col) {
		return
	}
	if !isFinite(value) {
		return
	}
	f.curr.Set(row, col, clamp(value, 0, f.maxEnergy))
}

// Fill sets every tile of the current buffer to the clamped value.
func (f *EnergyField) Fill(value float64) {
	if !isFinite(value) {
		return
	}
	value = clamp(value, 0, f.maxEnergy)
	cells := f.curr.Cells()
	for i := range cells {
		cells[i] = value
	}
}

// Consume harvests energy from the tile for the given organism. The harvest
// rate derives from the organism's forage parameters, reduced by a crowding
// penalty from the local density, capped, and bounded by what the tile
// holds. The harvested amount is deducted from the tile and credited to the
// organism up to its own energy ceiling. Returns the amount harvested.
func (f *EnergyField) Consume(h Harvester, row, col int, density float64, tun Tunables) float64 {
	if h == nil || !f.curr.InBounds(row, col) {
		return 0
	}
	tun = tun.sanitized()

	rate := h.ForageRate()
	if !isFinite(rate) {
		rate = 0
	}
	rate = clamp(rate, 0.05, 1)

	capMin := saneNonNegative(h.HarvestCapMin())
	capMax := saneNonNegative(h.HarvestCapMax())
	if capMax < capMin {
		capMax = capMin
	}

	crowding := clamp(saneNonNegative(density)*tun.DensityEffectMultiplier, 0, 1)
	penalty := 1 - tun.ConsumptionDensityPenalty*crowding
	if penalty < 0 {
		penalty = 0
	}

	limit := clamp(rate*penalty, capMin, capMax)
	available := f.curr.At(row, col)
	harvested := limit
	if available < harvested {
		harvested = available
	}
	if harvested <= 0 {
		return 0
	}

	f.curr.Set(row, col, available-harvested)

	room := h.MaxEnergy() - h.Energy()
	if !isFinite(room) || room < 0 {
		room = 0
	}
	credit := harvested
	if credit > room {
		credit = room
	}
	if credit > 0 {
		h.AddEnergy(credit)
	}
	return harvested
}

// Regenerate runs one full-grid pass: obstacle tiles are forced to zero on
// both buffers, every other tile diffuses with its non-obstacle cardinal
// neighbors and recovers logistically toward the ceiling, shaped by the
// tile's density and the fold of active event modifiers. After the pass the
// buffers swap and the scratch buffer is zero-filled.
func (f *EnergyField) Regenerate(events []Event, resolver *ModifierResolver, density *core.FloatGrid, isObstacle ObstacleFunc, tun Tunables) {
	tun = tun.sanitized()
	if resolver != nil {
		resolver.BeginPass()
	}

	curr := f.curr.Cells()
	next := f.next.Cells()

	for row := 0; row < f.rows; row++ {
		for col := 0; col < f.cols; col++ {
			idx := row*f.cols + col

			if isObstacle != nil && isObstacle(row, col) {
				curr[idx] = 0
				next[idx] = 0
				continue
			}

			current := curr[idx]

			// Obstacle neighbors are energy sinks: they are left out of the
			// mean entirely, shrinking the diffusion partner count rather
			// than contributing a zero.
			neighborSum := 0.0
			neighborCount := 0
			if row > 0 && !(isObstacle != nil && isObstacle(row-1, col)) {
				neighborSum += curr[idx-f.cols]
				neighborCount++
			}
			if row < f.rows-1 && !(isObstacle != nil && isObstacle(row+1, col)) {
				neighborSum += curr[idx+f.cols]
				neighborCount++
			}
			if col > 0 && !(isObstacle != nil && isObstacle(row, col-1)) {
				neighborSum += curr[idx-1]
				neighborCount++
			}
			if col < f.cols-1 && !(isObstacle != nil && isObstacle(row, col+1)) {
				neighborSum += curr[idx+1]
				neighborCount++
			}

			diffusion := 0.0
			if neighborCount > 0 {
				mean := neighborSum / float64(neighborCount)
				diffusion = tun.DiffusionRate * (mean - current)
			}

			tileDensity := 0.0
			if density != nil {
				tileDensity = clamp(saneNonNegative(density.At(row, col)), 0, 1)
			}

			mod := NeutralModifier()
			if resolver != nil {
				mod = resolver.Resolve(events, row, col, tun.EventStrengthMultiplier)
			}

			headroom := (f.maxEnergy - current) / f.maxEnergy
			regen := tun.RegenRate*(1-tun.RegenDensityPenalty*tileDensity)*mod.RegenMultiplier*headroom +
				mod.RegenAdd - mod.DrainAdd

			next[idx] = clamp(current+diffusion+regen, 0, f.maxEnergy)
		}
	}

	f.curr, f.next = f.next, f.curr
	f.next.Clear()
}

// ClearTile zeroes the tile on both buffers. With preserveCurrent the
// still-rendered current value survives while the scratch buffer is zeroed,
// so the tile empties on the next swap.
func (f *EnergyField) ClearTile(row, col int, preserveCurrent bool) {
	if !f.curr.InBounds(row, col) {
		return
	}
	if !preserveCurrent {
		f.curr.Set(row, col, 0)
	}
	f.next.Set(row, col, 0)
}
