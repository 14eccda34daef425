package ecosystem

import (
	"fmt"

	"ecofield/internal/field"
)

// effectTable is a static event-effect lookup satisfying
// field.EffectResolver.
type effectTable map[field.EventType]field.Effect

func (t effectTable) EffectFor(typ field.EventType) (field.Effect, error) {
	eff, ok := t[typ]
	if !ok {
		return field.Effect{}, fmt.Errorf("no effect configured for event type %q", typ)
	}
	return eff, nil
}

// DefaultEffects returns the stock effect configuration for the four event
// types. Floods boost regeneration, the other three suppress it to varying
// degrees; droughts and heatwaves additionally drain standing energy.
func DefaultEffects() field.EffectResolver {
	return effectTable{
		field.EventFlood: {
			RegenScale: field.RegenScale{Base: 1, Change: 0.5, Min: 0.1},
			RegenAdd:   0.01,
		},
		field.EventDrought: {
			RegenScale: field.RegenScale{Base: 1, Change: -0.8, Min: 0.05},
			DrainAdd:   0.01,
		},
		field.EventHeatwave: {
			RegenScale: field.RegenScale{Base: 1, Change: -0.4, Min: 0.1},
			DrainAdd:   0.005,
		},
		field.EventColdwave: {
			RegenScale: field.RegenScale{Base: 1, Change: -0.25, Min: 0.2},
		},
	}
}
