// Package field implements the per-tick environmental field engine: the
// double-buffered tile energy grid, the incrementally maintained local
// population-density field, and the resolver that folds transient event
// effects into per-tile regeneration modifiers.
package field

import "ecofield/internal/core"

// Field composes the energy grid, the density field and the event modifier
// resolver behind a single per-tick entry point. Occupancy deltas arrive on
// the density field continuously; PrepareForTick synchronizes them into the
// read snapshot before the energy pass consumes it.
type Field struct {
	cfg Config

	Energy   *EnergyField
	Density  *DensityField
	resolver *ModifierResolver
}

// New constructs a Field. effects is the pluggable event-effect lookup;
// affects may be nil for rectangle containment.
func New(cfg Config, effects EffectResolver, affects AffectsFunc) *Field {
	cfg = cfg.sanitized()
	return &Field{
		cfg:      cfg,
		Energy:   NewEnergyField(cfg.Rows, cfg.Cols, cfg.MaxTileEnergy),
		Density:  NewDensityField(cfg.Rows, cfg.Cols, cfg.DensityRadius),
		resolver: NewModifierResolver(effects, affects),
	}
}

// Config reports the construction-time configuration.
func (f *Field) Config() Config { return f.cfg }

// Resolver exposes the event modifier resolver for callers that run the
// energy pass manually.
func (f *Field) Resolver() *ModifierResolver { return f.resolver }

// PrepareForTick runs the per-tick composition: density deltas accumulated
// since the last tick are synced into the snapshot, then the full energy
// regeneration pass reads that snapshot. Deltas applied after the sync are
// picked up next tick, so density read during the pass is at most one tick
// stale. Returns the snapshot other subsystems read for the rest of the
// tick.
func (f *Field) PrepareForTick(events []Event, isObstacle ObstacleFunc, tun Tunables) *core.FloatGrid {
	f.Density.Sync(false)
	f.Energy.Regenerate(events, f.resolver, f.Density.Snapshot(), isObstacle, tun)
	return f.Density.Snapshot()
}
