package field

import (
	"math"
	"testing"
)

func TestBuildTotalsShrinksAtEdges(t *testing.T) {
	d := NewDensityField(5, 5, 1)

	if got := d.totals.At(0, 0); got != 3 {
		t.Fatalf("corner total with radius 1 must be 3, got %d", got)
	}
	if got := d.totals.At(0, 2); got != 5 {
		t.Fatalf("edge total with radius 1 must be 5, got %d", got)
	}
	if got := d.totals.At(2, 2); got != 8 {
		t.Fatalf("center total with radius 1 must be 8, got %d", got)
	}
}

func TestApplyDeltaTouchesOnlyNeighborhood(t *testing.T) {
	d := NewDensityField(9, 9, 2)
	totalsBefore := append([]int(nil), d.totals.Cells()...)

	d.ApplyDelta(4, 4, +1)

	for row := 0; row < 9; row++ {
		for col := 0; col < 9; col++ {
			dr := row - 4
			if dr < 0 {
				dr = -dr
			}
			dc := col - 4
			if dc < 0 {
				dc = -dc
			}
			within := dr <= 2 && dc <= 2 && !(row == 4 && col == 4)

			count := d.counts.At(row, col)
			if within && count != 1 {
				t.Fatalf("tile (%d,%d) inside radius must count the occupant, got %d", row, col, count)
			}
			if !within && count != 0 {
				t.Fatalf("tile (%d,%d) outside radius must be untouched, got %d", row, col, count)
			}
		}
	}

	for i, v := range d.totals.Cells() {
		if v != totalsBefore[i] {
			t.Fatalf("totals must never change without a radius change, idx %d: %d -> %d", i, totalsBefore[i], v)
		}
	}
}

func TestApplyDeltaRecomputesLiveFraction(t *testing.T) {
	d := NewDensityField(5, 5, 1)

	d.ApplyDelta(2, 2, +1)

	want := 1.0 / 8.0
	if got := d.live.At(2, 1); math.Abs(got-want) > 1e-12 {
		t.Fatalf("expected live fraction %v at neighbor, got %v", want, got)
	}
	if got := d.live.At(2, 2); got != 0 {
		t.Fatalf("center tile is excluded from its own neighborhood, got %v", got)
	}

	d.ApplyDelta(2, 2, -1)
	if got := d.live.At(2, 1); got != 0 {
		t.Fatalf("departure must restore the fraction to 0, got %v", got)
	}
}

func TestApplyDeltaIgnoresInvalidArguments(t *testing.T) {
	d := NewDensityField(4, 4, 1)
	d.ApplyDelta(-1, 0, +1)
	d.ApplyDelta(0, 4, +1)
	d.ApplyDelta(1, 1, 0)
	for _, v := range d.counts.Cells() {
		if v != 0 {
			t.Fatalf("invalid deltas must be no-ops, got count %d", v)
		}
	}

	// A stray negative delta must not drive counts below zero.
	d.ApplyDelta(1, 1, -1)
	for _, v := range d.counts.Cells() {
		if v != 0 {
			t.Fatalf("counts must not go negative, got %d", v)
		}
	}
}

func TestSyncCopiesDirtyTilesAndClearsSet(t *testing.T) {
	d := NewDensityField(6, 6, 1)

	d.ApplyDelta(2, 2, +1)
	d.ApplyDelta(4, 4, +1)
	if d.dirtyCount() == 0 {
		t.Fatal("expected dirty tiles after deltas")
	}

	d.Sync(false)

	if d.dirtyCount() != 0 {
		t.Fatalf("dirty set must be empty after sync, got %d", d.dirtyCount())
	}
	live := d.live.Cells()
	snap := d.snapshot.Cells()
	for i := range live {
		if snap[i] != live[i] {
			t.Fatalf("snapshot must equal live after sync, idx %d: %v vs %v", i, snap[i], live[i])
		}
	}
}

func TestSnapshotLagsLiveUntilNextSync(t *testing.T) {
	d := NewDensityField(6, 6, 1)

	d.ApplyDelta(2, 2, +1)
	d.Sync(false)
	before := d.Get(2, 1)

	// A delta arriving after the sync must not show up in the snapshot
	// until the next sync: readers see values at most one tick old.
	d.ApplyDelta(2, 0, +1)
	if got := d.Get(2, 1); got != before {
		t.Fatalf("snapshot changed without a sync: %v -> %v", before, got)
	}

	d.Sync(false)
	if got := d.Get(2, 1); got == before {
		t.Fatal("next sync must surface the pending delta")
	}
}

func TestSyncForceCopiesWholeGrid(t *testing.T) {
	d := NewDensityField(4, 4, 1)
	d.ApplyDelta(1, 1, +1)
	clear(d.dirty) // simulate a desynced snapshot with no dirty bookkeeping

	d.Sync(false)
	if got := d.Get(1, 0); got != 0 {
		t.Fatalf("non-forced sync should have nothing to copy, got %v", got)
	}

	d.Sync(true)
	if got := d.Get(1, 0); got == 0 {
		t.Fatal("forced sync must copy the whole grid")
	}
}

func TestGetFallsBackToLiveBeforeFirstSync(t *testing.T) {
	d := NewDensityField(5, 5, 1)
	d.ApplyDelta(2, 2, +1)

	if got := d.Get(2, 1); got == 0 {
		t.Fatal("before the first sync Get must compute from live values")
	}
	if got := d.Get(-1, 0); got != 0 {
		t.Fatalf("out-of-range density must be 0, got %v", got)
	}
	if got := d.Get(0, 99); got != 0 {
		t.Fatalf("out-of-range density must be 0, got %v", got)
	}
}

func TestRecalculateFromOccupancyMatchesIncremental(t *testing.T) {
	occupied := make([]bool, 7*7)
	spots := [][2]int{{1, 1}, {3, 4}, {5, 5}, {6, 0}}
	for _, s := range spots {
		occupied[s[0]*7+s[1]] = true
	}

	rebuilt := NewDensityField(7, 7, 2)
	rebuilt.RecalculateFromOccupancy(occupied, 2)

	incremental := NewDensityField(7, 7, 2)
	for _, s := range spots {
		incremental.ApplyDelta(s[0], s[1], +1)
	}
	incremental.Sync(true)

	for i := range rebuilt.snapshot.Cells() {
		a := rebuilt.snapshot.Cells()[i]
		b := incremental.snapshot.Cells()[i]
		if math.Abs(a-b) > 1e-12 {
			t.Fatalf("rebuild and incremental paths disagree at idx %d: %v vs %v", i, a, b)
		}
	}
	if rebuilt.dirtyCount() != 0 {
		t.Fatalf("rebuild must leave an empty dirty set, got %d", rebuilt.dirtyCount())
	}
}

func TestRecalculateFromOccupancyChangesRadius(t *testing.T) {
	d := NewDensityField(5, 5, 1)
	centerTotalBefore := d.totals.At(2, 2)

	d.RecalculateFromOccupancy(make([]bool, 25), 2)

	if d.Radius() != 2 {
		t.Fatalf("radius must update, got %d", d.Radius())
	}
	if got := d.totals.At(2, 2); got == centerTotalBefore {
		t.Fatalf("totals must be rebuilt for the new radius, still %d", got)
	}
	if got := d.totals.At(2, 2); got != 24 {
		t.Fatalf("center total with radius 2 on 5x5 must be 24, got %d", got)
	}
}

func TestDensityStaysNormalized(t *testing.T) {
	d := NewDensityField(4, 4, 1)
	// Over-fill far beyond plausible occupancy.
	for i := 0; i < 10; i++ {
		d.ApplyDelta(1, 1, +1)
		d.ApplyDelta(1, 2, +1)
		d.ApplyDelta(2, 1, +1)
	}
	d.Sync(false)

	for i, v := range d.snapshot.Cells() {
		if v < 0 || v > 1 {
			t.Fatalf("density must stay in [0,1], idx %d got %v", i, v)
		}
	}
}
