package field

import (
	"fmt"
	"math"
	"testing"
)

type stubEffects struct {
	table map[EventType]Effect
	fail  map[EventType]bool
	panic map[EventType]bool
	calls map[EventType]int
}

func newStubEffects() *stubEffects {
	return &stubEffects{
		table: map[EventType]Effect{},
		fail:  map[EventType]bool{},
		panic: map[EventType]bool{},
		calls: map[EventType]int{},
	}
}

func (s *stubEffects) EffectFor(t EventType) (Effect, error) {
	s.calls[t]++
	if s.panic[t] {
		panic("effect table corrupted")
	}
	if s.fail[t] {
		return Effect{}, fmt.Errorf("unknown event type %q", t)
	}
	eff, ok := s.table[t]
	if !ok {
		return Effect{}, fmt.Errorf("no entry for %q", t)
	}
	return eff, nil
}

func wholeGridEvent(t EventType, strength float64) Event {
	return Event{Type: t, Strength: strength, Duration: 5, Area: Rect{X: 0, Y: 0, Width: 100, Height: 100}}
}

func TestResolveNeutralWithoutEvents(t *testing.T) {
	r := NewModifierResolver(newStubEffects(), nil)
	mod := r.Resolve(nil, 3, 4, 1)
	if mod.RegenMultiplier != 1 || mod.RegenAdd != 0 || mod.DrainAdd != 0 {
		t.Fatalf("expected neutral fold, got %+v", mod)
	}
}

func TestResolveSkipsEventsOutsideArea(t *testing.T) {
	effects := newStubEffects()
	effects.table[EventFlood] = Effect{RegenScale: RegenScale{Base: 1, Change: 1}}

	r := NewModifierResolver(effects, nil)
	ev := Event{Type: EventFlood, Strength: 1, Area: Rect{X: 2, Y: 2, Width: 3, Height: 3}}

	mod := r.Resolve([]Event{ev}, 0, 0, 1)
	if mod.RegenMultiplier != 1 {
		t.Fatalf("event outside its rectangle must not apply, got %+v", mod)
	}

	mod = r.Resolve([]Event{ev}, 2, 2, 1)
	if mod.RegenMultiplier != 2 {
		t.Fatalf("event inside its rectangle must apply, got %+v", mod)
	}
}

func TestResolveComposesMultiplicativelyAndAdditively(t *testing.T) {
	effects := newStubEffects()
	effects.table[EventFlood] = Effect{RegenScale: RegenScale{Base: 1, Change: 0.2, Min: 0}, RegenAdd: 0.01}
	effects.table[EventDrought] = Effect{RegenScale: RegenScale{Base: 1, Change: -0.1, Min: 0}, DrainAdd: 0.02}

	r := NewModifierResolver(effects, nil)
	events := []Event{
		wholeGridEvent(EventFlood, 1),
		wholeGridEvent(EventDrought, 1),
	}

	mod := r.Resolve(events, 0, 0, 1)
	if math.Abs(mod.RegenMultiplier-1.08) > 1e-12 {
		t.Fatalf("expected multiplier 1.2*0.9=1.08, got %v", mod.RegenMultiplier)
	}
	if math.Abs(mod.RegenAdd-0.01) > 1e-12 {
		t.Fatalf("expected regen add 0.01, got %v", mod.RegenAdd)
	}
	if math.Abs(mod.DrainAdd-0.02) > 1e-12 {
		t.Fatalf("expected drain add 0.02, got %v", mod.DrainAdd)
	}

	again := r.Resolve(events, 0, 0, 1)
	if again != mod {
		t.Fatalf("resolution must be deterministic: %+v vs %+v", mod, again)
	}
}

func TestResolveFloorsEachEventBeforeMultiplying(t *testing.T) {
	effects := newStubEffects()
	effects.table[EventHeatwave] = Effect{RegenScale: RegenScale{Base: 0.5, Change: -1, Min: 0.4}}
	effects.table[EventColdwave] = Effect{RegenScale: RegenScale{Base: 0.5, Change: -1, Min: 0.4}}

	r := NewModifierResolver(effects, nil)
	events := []Event{
		wholeGridEvent(EventHeatwave, 1),
		wholeGridEvent(EventColdwave, 1),
	}

	// Each contribution clamps to its own floor first; the combined
	// product is 0.4*0.4, not a single clamp at 0.4.
	mod := r.Resolve(events, 0, 0, 1)
	if math.Abs(mod.RegenMultiplier-0.16) > 1e-12 {
		t.Fatalf("expected per-event floors to multiply to 0.16, got %v", mod.RegenMultiplier)
	}
}

func TestResolveSkipsZeroAndNonFiniteStrength(t *testing.T) {
	effects := newStubEffects()
	effects.table[EventFlood] = Effect{RegenScale: RegenScale{Base: 1, Change: 1}, RegenAdd: 1}

	r := NewModifierResolver(effects, nil)

	mod := r.Resolve([]Event{wholeGridEvent(EventFlood, 0)}, 0, 0, 1)
	if mod != NeutralModifier() {
		t.Fatalf("zero strength must skip the event, got %+v", mod)
	}

	mod = r.Resolve([]Event{wholeGridEvent(EventFlood, math.NaN())}, 0, 0, 1)
	if mod != NeutralModifier() {
		t.Fatalf("non-finite strength must skip the event, got %+v", mod)
	}

	mod = r.Resolve([]Event{wholeGridEvent(EventFlood, 1)}, 0, 0, 0)
	if mod != NeutralModifier() {
		t.Fatalf("zero strength multiplier must skip every event, got %+v", mod)
	}
}

func TestResolveIsolatesFailingTypes(t *testing.T) {
	effects := newStubEffects()
	effects.fail[EventDrought] = true
	effects.table[EventFlood] = Effect{RegenScale: RegenScale{Base: 1, Change: 0.5}, RegenAdd: 0.1}

	r := NewModifierResolver(effects, nil)
	events := []Event{
		wholeGridEvent(EventDrought, 1),
		wholeGridEvent(EventFlood, 1),
	}

	mod := r.Resolve(events, 0, 0, 1)
	if math.Abs(mod.RegenMultiplier-1.5) > 1e-12 || math.Abs(mod.RegenAdd-0.1) > 1e-12 {
		t.Fatalf("flood must apply in full despite drought failing, got %+v", mod)
	}
}

func TestResolvePanicInResolverTreatedAsNoEffect(t *testing.T) {
	effects := newStubEffects()
	effects.panic[EventHeatwave] = true
	effects.table[EventFlood] = Effect{RegenScale: RegenScale{Base: 1, Change: 1}}

	r := NewModifierResolver(effects, nil)
	events := []Event{
		wholeGridEvent(EventHeatwave, 1),
		wholeGridEvent(EventFlood, 1),
	}

	mod := r.Resolve(events, 0, 0, 1)
	if mod.RegenMultiplier != 2 {
		t.Fatalf("panicking type must be inert while others apply, got %+v", mod)
	}
}

func TestResolvePanicInPredicateSkipsEvent(t *testing.T) {
	effects := newStubEffects()
	effects.table[EventFlood] = Effect{RegenScale: RegenScale{Base: 1, Change: 1}}
	effects.table[EventDrought] = Effect{RegenScale: RegenScale{Base: 1, Change: -0.5}}

	affects := func(ev Event, row, col int) (bool, error) {
		if ev.Type == EventDrought {
			panic("bad predicate")
		}
		return true, nil
	}

	r := NewModifierResolver(effects, affects)
	events := []Event{
		wholeGridEvent(EventDrought, 1),
		wholeGridEvent(EventFlood, 1),
	}

	mod := r.Resolve(events, 0, 0, 1)
	if mod.RegenMultiplier != 2 {
		t.Fatalf("event with panicking predicate must be skipped, got %+v", mod)
	}
}

func TestEffectLookupMemoizedPerPass(t *testing.T) {
	effects := newStubEffects()
	effects.table[EventFlood] = Effect{RegenScale: RegenScale{Base: 1, Change: 0.1}}
	effects.fail[EventDrought] = true

	r := NewModifierResolver(effects, nil)
	r.BeginPass()

	events := []Event{
		wholeGridEvent(EventFlood, 1),
		wholeGridEvent(EventDrought, 1),
	}
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			r.Resolve(events, row, col, 1)
		}
	}

	if effects.calls[EventFlood] != 1 {
		t.Fatalf("expected one flood lookup per pass, got %d", effects.calls[EventFlood])
	}
	if effects.calls[EventDrought] != 1 {
		t.Fatalf("failed lookup must be cached, got %d calls", effects.calls[EventDrought])
	}

	r.BeginPass()
	r.Resolve(events, 0, 0, 1)
	if effects.calls[EventFlood] != 2 {
		t.Fatalf("new pass must resolve afresh, got %d calls", effects.calls[EventFlood])
	}
}

func TestRectContainsHalfOpenBounds(t *testing.T) {
	r := Rect{X: 2, Y: 3, Width: 4, Height: 2}
	if !r.Contains(3, 2) {
		t.Fatal("top-left corner must be inside")
	}
	if r.Contains(3, 6) {
		t.Fatal("x+width must be outside")
	}
	if r.Contains(5, 3) {
		t.Fatal("y+height must be outside")
	}
	if (Rect{X: 1, Y: 1, Width: 0, Height: 3}).Contains(1, 1) {
		t.Fatal("degenerate rectangle must contain nothing")
	}
}
