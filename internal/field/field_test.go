package field

import (
	"math"
	"testing"
)

func TestPrepareForTickSyncsBeforeRegenerate(t *testing.T) {
	cfg := Config{Rows: 2, Cols: 2, MaxTileEnergy: 5, DensityRadius: 1}
	f := New(cfg, newStubEffects(), nil)
	f.Energy.Fill(2.5)

	// On a 2x2 grid with radius 1, three occupants drive the fourth
	// tile's density to exactly 1.
	f.Density.ApplyDelta(0, 0, +1)
	f.Density.ApplyDelta(0, 1, +1)
	f.Density.ApplyDelta(1, 0, +1)

	tun := Tunables{RegenRate: 0.1, RegenDensityPenalty: 1, EventStrengthMultiplier: 1}
	snapshot := f.PrepareForTick(nil, nil, tun)

	if got := snapshot.At(1, 1); math.Abs(got-1) > 1e-12 {
		t.Fatalf("deltas applied before the tick must be visible to the pass, got density %v", got)
	}
	if got := f.Energy.Get(1, 1); math.Abs(got-2.5) > 1e-12 {
		t.Fatalf("fully crowded tile must not regen this tick, got %v", got)
	}
}

func TestPrepareForTickDensityStalenessBoundedByOneTick(t *testing.T) {
	cfg := Config{Rows: 4, Cols: 4, MaxTileEnergy: 5, DensityRadius: 1}
	f := New(cfg, newStubEffects(), nil)

	snapshot := f.PrepareForTick(nil, nil, Tunables{})
	if got := snapshot.At(1, 1); got != 0 {
		t.Fatalf("expected empty density, got %v", got)
	}

	// A population change landing after this tick's sync is invisible to
	// the current snapshot but must appear on the very next tick.
	f.Density.ApplyDelta(1, 2, +1)
	if got := snapshot.At(1, 1); got != 0 {
		t.Fatalf("late delta leaked into the current tick, got %v", got)
	}

	snapshot = f.PrepareForTick(nil, nil, Tunables{})
	if got := snapshot.At(1, 1); got == 0 {
		t.Fatal("delta older than one tick must be visible")
	}
}

func TestPrepareForTickAppliesEvents(t *testing.T) {
	cfg := Config{Rows: 4, Cols: 4, MaxTileEnergy: 5, DensityRadius: 1}
	effects := newStubEffects()
	effects.table[EventDrought] = Effect{RegenScale: RegenScale{Base: 1, Change: -1, Min: 0}}
	f := New(cfg, effects, nil)
	f.Energy.Fill(2.5)

	events := []Event{{
		Type:     EventDrought,
		Strength: 1,
		Area:     Rect{X: 0, Y: 0, Width: 2, Height: 4},
	}}
	tun := Tunables{RegenRate: 0.1, EventStrengthMultiplier: 1}
	f.PrepareForTick(events, nil, tun)

	inside := f.Energy.Get(0, 0)
	outside := f.Energy.Get(0, 3)
	if math.Abs(inside-2.5) > 1e-12 {
		t.Fatalf("drought at full strength must zero regen inside its area, got %v", inside)
	}
	if outside <= 2.5 {
		t.Fatalf("tiles outside the event must regen normally, got %v", outside)
	}
}

func TestNewSanitizesConfig(t *testing.T) {
	f := New(Config{Rows: -3, Cols: 0, MaxTileEnergy: math.NaN(), DensityRadius: -2}, newStubEffects(), nil)
	cfg := f.Config()
	if cfg.Rows <= 0 || cfg.Cols <= 0 {
		t.Fatalf("shape must be sanitized, got %dx%d", cfg.Rows, cfg.Cols)
	}
	if !isFinite(cfg.MaxTileEnergy) || cfg.MaxTileEnergy <= 0 {
		t.Fatalf("max tile energy must fall back to the default, got %v", cfg.MaxTileEnergy)
	}
	if cfg.DensityRadius != 0 {
		t.Fatalf("negative radius must floor at 0, got %d", cfg.DensityRadius)
	}
}
