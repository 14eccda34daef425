// Package ecosystem is the demo world around the field engine: noise-built
// terrain, wandering foragers that harvest tile energy, and a spawner for
// the transient environmental events the field consumes.
package ecosystem

import (
	"fmt"
	"math/rand"

	opensimplex "github.com/ojrac/opensimplex-go"

	"ecofield/internal/core"
	"ecofield/internal/field"
)

// World wires a population and an event source to the field engine and
// implements core.Sim.
type World struct {
	cfg Config

	rows, cols int

	field     *field.Field
	obstacles []bool
	occupied  []bool

	organisms []*organism
	events    []field.Event

	tick    uint64
	display []uint8

	rng   *rand.Rand
	noise opensimplex.Noise
}

// New returns an ecosystem world with the provided dimensions using
// defaults.
func New(w, h int) *World {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns an ecosystem world configured from the provided
// options.
func NewWithConfig(cfg Config) *World {
	rows, cols := cfg.Height, cfg.Width
	if rows <= 0 {
		rows = 1
	}
	if cols <= 0 {
		cols = 1
	}
	w := &World{
		cfg:       cfg,
		rows:      rows,
		cols:      cols,
		obstacles: make([]bool, rows*cols),
		occupied:  make([]bool, rows*cols),
		display:   make([]uint8, rows*cols),
		rng:       rand.New(rand.NewSource(cfg.Seed)),
	}
	w.field = field.New(field.Config{
		Rows:          rows,
		Cols:          cols,
		MaxTileEnergy: cfg.MaxTileEnergy,
		DensityRadius: cfg.DensityRadius,
	}, DefaultEffects(), nil)
	return w
}

// Name returns the simulation identifier.
func (w *World) Name() string { return "ecosystem" }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return core.Size{W: w.cols, H: w.rows} }

// Cells exposes the current display buffer.
func (w *World) Cells() []uint8 { return w.display }

// Field exposes the underlying field engine.
func (w *World) Field() *field.Field { return w.field }

// Tick reports the number of completed steps since the last reset.
func (w *World) Tick() uint64 { return w.tick }

// OrganismCount reports the live population size.
func (w *World) OrganismCount() int { return len(w.organisms) }

// ActiveEvents reports how many environmental events are currently live.
func (w *World) ActiveEvents() int { return len(w.events) }

// MeanEnergy reports the average tile energy over non-obstacle tiles.
func (w *World) MeanEnergy() float64 {
	sum := 0.0
	tiles := 0
	for row := 0; row < w.rows; row++ {
		for col := 0; col < w.cols; col++ {
			if w.obstacles[row*w.cols+col] {
				continue
			}
			sum += w.field.Energy.Get(row, col)
			tiles++
		}
	}
	if tiles == 0 {
		return 0
	}
	return sum / float64(tiles)
}

// StatsLines reports the overlay summary for the viewer.
func (w *World) StatsLines() []string {
	return []string{
		fmt.Sprintf("tick %d", w.tick),
		fmt.Sprintf("organisms %d", len(w.organisms)),
		fmt.Sprintf("events %d", len(w.events)),
		fmt.Sprintf("mean energy %0.3f", w.MeanEnergy()),
	}
}

// IsObstacle reports whether the tile is blocked terrain.
func (w *World) IsObstacle(row, col int) bool {
	if row < 0 || row >= w.rows || col < 0 || col >= w.cols {
		return false
	}
	return w.obstacles[row*w.cols+col]
}

// Reset rebuilds terrain, energy and population using deterministic
// randomness.
func (w *World) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = w.cfg.Seed
	}
	w.rng = rand.New(rand.NewSource(effective))
	w.noise = opensimplex.New(effective)

	obstacles, fractions := buildTerrain(w.rows, w.cols, w.noise, w.cfg.Params.TerrainScale, w.cfg.Params.ObstacleThreshold)
	w.obstacles = obstacles

	for row := 0; row < w.rows; row++ {
		for col := 0; col < w.cols; col++ {
			idx := row*w.cols + col
			if obstacles[idx] {
				w.field.Energy.ClearTile(row, col, false)
				continue
			}
			w.field.Energy.Set(row, col, fractions[idx]*w.cfg.MaxTileEnergy)
		}
	}

	w.organisms = w.organisms[:0]
	w.events = w.events[:0]
	for i := range w.occupied {
		w.occupied[i] = false
	}
	for i := 0; i < w.cfg.Params.InitialOrganisms; i++ {
		w.spawnOrganism()
	}
	w.field.Density.RecalculateFromOccupancy(w.occupied, w.cfg.DensityRadius)

	w.tick = 0
	w.rebuildDisplay()
}

// Step advances the world by one tick: events age and spawn, organisms act,
// then the field runs its per-tick pass.
func (w *World) Step() {
	w.advanceEvents()
	w.stepOrganisms()
	if len(w.organisms) < w.cfg.Params.MaxOrganisms && w.rng.Float64() < w.cfg.Params.SpawnChance {
		w.spawnOrganism()
	}

	w.field.PrepareForTick(w.events, w.IsObstacle, w.tunables())

	w.tick++
	w.rebuildDisplay()
}

func (w *World) tunables() field.Tunables {
	p := w.cfg.Params
	return field.Tunables{
		RegenRate:                 p.RegenRate,
		DiffusionRate:             p.DiffusionRate,
		EventStrengthMultiplier:   p.EventStrengthMultiplier,
		DensityEffectMultiplier:   p.DensityEffectMultiplier,
		RegenDensityPenalty:       p.RegenDensityPenalty,
		ConsumptionDensityPenalty: p.ConsumptionDensityPenalty,
	}
}

func (w *World) stepOrganisms() {
	tun := w.tunables()
	alive := w.organisms[:0]
	for _, o := range w.organisms {
		w.moveOrganism(o)

		density := w.field.Density.Get(o.row, o.col)
		w.field.Energy.Consume(o, o.row, o.col, density, tun)

		o.energy -= w.cfg.Params.OrganismUpkeep
		if o.energy <= 0 {
			idx := o.row*w.cols + o.col
			w.occupied[idx] = false
			w.field.Density.ApplyDelta(o.row, o.col, -1)
			w.field.Energy.ClearTile(o.row, o.col, true)
			continue
		}
		alive = append(alive, o)
	}
	w.organisms = alive
}

func (w *World) moveOrganism(o *organism) {
	dir := cardinalSteps[w.rng.Intn(len(cardinalSteps))]
	nr, nc := o.row+dir[0], o.col+dir[1]
	if nr < 0 || nr >= w.rows || nc < 0 || nc >= w.cols {
		return
	}
	nIdx := nr*w.cols + nc
	if w.obstacles[nIdx] || w.occupied[nIdx] {
		return
	}

	oldIdx := o.row*w.cols + o.col
	w.occupied[oldIdx] = false
	w.field.Density.ApplyDelta(o.row, o.col, -1)

	o.row, o.col = nr, nc
	w.occupied[nIdx] = true
	w.field.Density.ApplyDelta(nr, nc, +1)
}

func (w *World) spawnOrganism() {
	p := w.cfg.Params
	for attempt := 0; attempt < 20; attempt++ {
		row := w.rng.Intn(w.rows)
		col := w.rng.Intn(w.cols)
		idx := row*w.cols + col
		if w.obstacles[idx] || w.occupied[idx] {
			continue
		}
		forage := p.ForageRateMin
		if p.ForageRateMax > p.ForageRateMin {
			forage += w.rng.Float64() * (p.ForageRateMax - p.ForageRateMin)
		}
		o := &organism{
			row:        row,
			col:        col,
			energy:     p.OrganismEnergy * 0.5,
			maxEnergy:  p.OrganismEnergy,
			forageRate: forage,
			capMin:     p.HarvestCapMin,
			capMax:     p.HarvestCapMax,
		}
		w.organisms = append(w.organisms, o)
		w.occupied[idx] = true
		w.field.Density.ApplyDelta(row, col, +1)
		return
	}
}

func (w *World) advanceEvents() {
	live := w.events[:0]
	for _, ev := range w.events {
		ev.Duration--
		if ev.Duration > 0 {
			live = append(live, ev)
		}
	}
	w.events = live

	p := w.cfg.Params
	if len(w.events) < p.EventMaxActive && w.rng.Float64() < p.EventSpawnChance {
		w.spawnEvent(w.randomEventType(), 0)
	}
}

func (w *World) randomEventType() field.EventType {
	types := [...]field.EventType{field.EventFlood, field.EventDrought, field.EventHeatwave, field.EventColdwave}
	return types[w.rng.Intn(len(types))]
}

func (w *World) spawnEvent(t field.EventType, strength float64) {
	p := w.cfg.Params
	if strength <= 0 {
		strength = p.EventStrengthMin
		if p.EventStrengthMax > p.EventStrengthMin {
			strength += w.rng.Float64() * (p.EventStrengthMax - p.EventStrengthMin)
		}
	}
	size := p.EventSizeMin
	if p.EventSizeMax > p.EventSizeMin {
		size += w.rng.Intn(p.EventSizeMax - p.EventSizeMin + 1)
	}
	if size < 1 {
		size = 1
	}
	ttl := p.EventTTLMin
	if p.EventTTLMax > p.EventTTLMin {
		ttl += w.rng.Intn(p.EventTTLMax - p.EventTTLMin + 1)
	}
	if ttl < 1 {
		ttl = 1
	}
	w.events = append(w.events, field.Event{
		Type:     t,
		Strength: strength,
		Duration: ttl,
		Area: field.Rect{
			X:      w.rng.Intn(w.cols),
			Y:      w.rng.Intn(w.rows),
			Width:  size,
			Height: size,
		},
	})
}

// ForceEvent spawns an event of the given type at a random location,
// regardless of the spawn chance. Used by the viewer's event keys.
func (w *World) ForceEvent(t field.EventType) {
	if len(w.events) >= w.cfg.Params.EventMaxActive {
		return
	}
	w.spawnEvent(t, w.cfg.Params.EventStrengthMax)
}

// PlaceObstacleAt turns the tile into blocked terrain: its energy is wiped
// on both buffers and any organism standing there is removed.
func (w *World) PlaceObstacleAt(row, col int) {
	if row < 0 || row >= w.rows || col < 0 || col >= w.cols {
		return
	}
	idx := row*w.cols + col
	if w.obstacles[idx] {
		return
	}
	w.obstacles[idx] = true
	w.field.Energy.ClearTile(row, col, false)

	if w.occupied[idx] {
		w.occupied[idx] = false
		w.field.Density.ApplyDelta(row, col, -1)
		for i, o := range w.organisms {
			if o.row == row && o.col == col {
				w.organisms = append(w.organisms[:i], w.organisms[i+1:]...)
				break
			}
		}
	}
}

func init() {
	core.Register("ecosystem", func(cfg map[string]string) core.Sim {
		c := FromMap(cfg)
		return NewWithConfig(c)
	})
}
