package field

import "ecofield/internal/core"

// DensityField maintains the local-occupancy fraction around every tile. It
// is updated incrementally: each occupancy change touches only the tiles
// within the density radius of the changed tile, never the whole grid. The
// externally-read snapshot lags the live values until Sync copies the tiles
// named in the dirty set.
type DensityField struct {
	rows, cols int
	radius     int

	counts   *core.IntGrid
	totals   *core.IntGrid
	live     *core.FloatGrid
	snapshot *core.FloatGrid

	dirty  map[int]struct{}
	synced bool
}

// NewDensityField constructs a density field for the given shape and radius.
func NewDensityField(rows, cols, radius int) *DensityField {
	if rows <= 0 {
		rows = 1
	}
	if cols <= 0 {
		cols = 1
	}
	if radius < 0 {
		radius = 0
	}
	d := &DensityField{
		rows:     rows,
		cols:     cols,
		radius:   radius,
		counts:   core.NewIntGrid(rows, cols),
		totals:   core.NewIntGrid(rows, cols),
		live:     core.NewFloatGrid(rows, cols),
		snapshot: core.NewFloatGrid(rows, cols),
		dirty:    map[int]struct{}{},
	}
	d.buildTotals(radius)
	return d
}

// Radius reports the configured neighborhood radius.
func (d *DensityField) Radius() int { return d.radius }

// Snapshot exposes the externally-read density grid. Consumers must treat
// it as read-only.
func (d *DensityField) Snapshot() *core.FloatGrid { return d.snapshot }

// buildTotals precomputes, for every tile, how many in-bounds neighbors it
// has within the radius (excluding itself). Edge and corner tiles get
// smaller totals. Totals only change on an explicit radius change.
func (d *DensityField) buildTotals(radius int) {
	d.radius = radius
	cells := d.totals.Cells()
	for row := 0; row < d.rows; row++ {
		for col := 0; col < d.cols; col++ {
			total := 0
			for dr := -radius; dr <= radius; dr++ {
				nr := row + dr
				if nr < 0 || nr >= d.rows {
					continue
				}
				for dc := -radius; dc <= radius; dc++ {
					if dr == 0 && dc == 0 {
						continue
					}
					nc := col + dc
					if nc < 0 || nc >= d.cols {
						continue
					}
					total++
				}
			}
			cells[row*d.cols+col] = total
		}
	}
}

// ApplyDelta records one occupancy change at (row, col): +1 on spawn or
// arrival, -1 on death or departure. Every tile within the radius of the
// changed tile (excluding the center) has its neighbor count adjusted and
// its live fraction recomputed; tiles whose fraction changed are marked
// dirty. Cost is O(radius²) per call.
func (d *DensityField) ApplyDelta(row, col, delta int) {
	if delta == 0 || row < 0 || row >= d.rows || col < 0 || col >= d.cols {
		return
	}
	counts := d.counts.Cells()
	totals := d.totals.Cells()
	live := d.live.Cells()

	for dr := -d.radius; dr <= d.radius; dr++ {
		nr := row + dr
		if nr < 0 || nr >= d.rows {
			continue
		}
		for dc := -d.radius; dc <= d.radius; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			nc := col + dc
			if nc < 0 || nc >= d.cols {
				continue
			}
			idx := nr*d.cols + nc
			count := counts[idx] + delta
			if count < 0 {
				count = 0
			}
			counts[idx] = count

			value := 0.0
			if totals[idx] > 0 {
				value = clamp(float64(count)/float64(totals[idx]), 0, 1)
			}
			if value != live[idx] {
				live[idx] = value
				d.dirty[idx] = struct{}{}
			}
		}
	}
}

// Sync copies live values into the snapshot. The common per-tick call with
// force=false copies only dirty tiles; force=true copies the whole grid
// (initialization, radius change). The dirty set is empty afterwards either
// way.
func (d *DensityField) Sync(force bool) {
	if force {
		d.snapshot.CopyFrom(d.live)
		clear(d.dirty)
		d.synced = true
		return
	}
	live := d.live.Cells()
	snap := d.snapshot.Cells()
	for idx := range d.dirty {
		snap[idx] = live[idx]
	}
	clear(d.dirty)
	d.synced = true
}

// RecalculateFromOccupancy rebuilds the whole field from a flat presence
// grid (row-major, length rows*cols). This is the only O(rows·cols·radius²)
// path and runs at initialization or when the radius changes.
func (d *DensityField) RecalculateFromOccupancy(occupied []bool, radius int) {
	if radius < 0 {
		radius = 0
	}
	d.buildTotals(radius)
	d.counts.Clear()
	d.live.Clear()
	clear(d.dirty)

	for row := 0; row < d.rows; row++ {
		for col := 0; col < d.cols; col++ {
			idx := row*d.cols + col
			if idx < len(occupied) && occupied[idx] {
				d.ApplyDelta(row, col, +1)
			}
		}
	}
	d.Sync(true)
}

// Get returns the snapshot density at (row, col). Before the first sync it
// falls back to the live neighbor ratio. Out-of-range coordinates yield 0.
func (d *DensityField) Get(row, col int) float64 {
	if row < 0 || row >= d.rows || col < 0 || col >= d.cols {
		return 0
	}
	if !d.synced {
		return d.live.At(row, col)
	}
	return d.snapshot.At(row, col)
}

// dirtyCount reports how many tiles await a snapshot sync.
func (d *DensityField) dirtyCount() int { return len(d.dirty) }
