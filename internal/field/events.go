package field

import (
	"fmt"
	"log"
)

// EventType names one of the closed set of transient environmental events.
type EventType string

const (
	EventFlood    EventType = "flood"
	EventDrought  EventType = "drought"
	EventHeatwave EventType = "heatwave"
	EventColdwave EventType = "coldwave"
)

// Rect is an axis-aligned rectangle in tile coordinates. X/Y name the
// top-left corner with X along columns and Y along rows.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Contains reports whether the tile (row, col) lies inside the rectangle.
func (r Rect) Contains(row, col int) bool {
	return col >= r.X && col < r.X+r.Width && row >= r.Y && row < r.Y+r.Height
}

// Event is one active environmental event as reported by the event source.
// Duration is bookkeeping for the producer; the resolver only reads Type,
// Strength and Area.
type Event struct {
	Type     EventType
	Strength float64
	Duration int
	Area     Rect
}

// RegenScale describes the multiplicative part of an event effect. The
// per-event contribution is Base + Change*strength, floored at Min.
type RegenScale struct {
	Base   float64
	Change float64
	Min    float64
}

// Effect is the static per-type configuration an EffectResolver returns.
type Effect struct {
	RegenScale RegenScale
	RegenAdd   float64
	DrainAdd   float64
}

// EffectResolver maps an event type to its effect configuration. Resolvers
// are pluggable collaborator code; errors and panics are contained per type.
type EffectResolver interface {
	EffectFor(t EventType) (Effect, error)
}

// AffectsFunc decides whether an event touches a tile. A nil AffectsFunc
// means rectangle containment against the event's Area.
type AffectsFunc func(ev Event, row, col int) (bool, error)

// Modifier is the fold of all applicable event effects for one tile.
type Modifier struct {
	RegenMultiplier float64
	RegenAdd        float64
	DrainAdd        float64
}

// NeutralModifier returns the fold identity: no events applied.
func NeutralModifier() Modifier {
	return Modifier{RegenMultiplier: 1}
}

type cachedEffect struct {
	effect Effect
	ok     bool
}

// ModifierResolver translates the active event list into per-tile modifier
// folds. Effect lookups are memoized per pass so repeated resolution across
// tiles costs one collaborator call per event type; a failing resolver is
// cached as "no effect" so the failure is not retried every tile.
type ModifierResolver struct {
	effects EffectResolver
	affects AffectsFunc

	cache  map[EventType]cachedEffect
	warned map[string]bool
}

// NewModifierResolver constructs a resolver around the injected effect
// lookup. affects may be nil to use rectangle containment.
func NewModifierResolver(effects EffectResolver, affects AffectsFunc) *ModifierResolver {
	return &ModifierResolver{
		effects: effects,
		affects: affects,
		cache:   map[EventType]cachedEffect{},
		warned:  map[string]bool{},
	}
}

// BeginPass discards the per-pass memo cache. Call once per regenerate pass
// so stale effect configuration is never retained across ticks.
func (r *ModifierResolver) BeginPass() {
	clear(r.cache)
}

// Resolve folds every applicable event for the tile (row, col) into a
// Modifier. Scale terms compose multiplicatively, add terms additively. A
// failing predicate or effect lookup disables that single event or type and
// is logged once; it never aborts the fold.
func (r *ModifierResolver) Resolve(events []Event, row, col int, strengthMultiplier float64) Modifier {
	mod := NeutralModifier()
	if len(events) == 0 {
		return mod
	}
	strengthMultiplier = saneNonNegative(strengthMultiplier)

	for _, ev := range events {
		affecting, err := r.eventAffects(ev, row, col)
		if err != nil {
			r.warnOnce(fmt.Sprintf("field: affect predicate failed for event %q: %v", ev.Type, err))
			continue
		}
		if !affecting {
			continue
		}

		strength := ev.Strength * strengthMultiplier
		if !isFinite(strength) || strength == 0 {
			continue
		}

		effect, ok := r.effectFor(ev.Type)
		if !ok {
			continue
		}

		scale := effect.RegenScale.Base + effect.RegenScale.Change*strength
		if scale < effect.RegenScale.Min {
			scale = effect.RegenScale.Min
		}
		mod.RegenMultiplier *= scale
		mod.RegenAdd += effect.RegenAdd * strength
		mod.DrainAdd += effect.DrainAdd * strength
	}
	return mod
}

func (r *ModifierResolver) eventAffects(ev Event, row, col int) (affecting bool, err error) {
	if r.affects == nil {
		return ev.Area.Contains(row, col), nil
	}
	defer func() {
		if rec := recover(); rec != nil {
			affecting = false
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return r.affects(ev, row, col)
}

func (r *ModifierResolver) effectFor(t EventType) (Effect, bool) {
	if cached, hit := r.cache[t]; hit {
		return cached.effect, cached.ok
	}
	effect, err := r.lookupEffect(t)
	if err != nil {
		r.warnOnce(fmt.Sprintf("field: effect resolver failed for type %q: %v", t, err))
		r.cache[t] = cachedEffect{}
		return Effect{}, false
	}
	r.cache[t] = cachedEffect{effect: effect, ok: true}
	return effect, true
}

func (r *ModifierResolver) lookupEffect(t EventType) (effect Effect, err error) {
	if r.effects == nil {
		return Effect{}, fmt.Errorf("no effect resolver configured")
	}
	defer func() {
		if rec := recover(); rec != nil {
			effect = Effect{}
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return r.effects.EffectFor(t)
}

func (r *ModifierResolver) warnOnce(msg string) {
	if r.warned[msg] {
		return
	}
	r.warned[msg] = true
	log.Print(msg)
}
