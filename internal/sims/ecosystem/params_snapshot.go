package ecosystem

import (
	"strconv"

	"ecofield/internal/core"
)

func (w *World) Parameters() core.ParameterSnapshot {
	params := w.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				intParam("w", "Width", w.cfg.Width),
				intParam("h", "Height", w.cfg.Height),
				int64Param("seed", "Seed", w.cfg.Seed),
				floatParam("max_tile_energy", "Max tile energy", w.cfg.MaxTileEnergy),
				intParam("density_radius", "Density radius", w.cfg.DensityRadius),
			},
		},
		{
			Name: "Field",
			Params: []core.Parameter{
				floatParam("regen_rate", "Regen rate", params.RegenRate),
				floatParam("diffusion_rate", "Diffusion rate", params.DiffusionRate),
				floatParam("event_strength_multiplier", "Event strength multiplier", params.EventStrengthMultiplier),
				floatParam("density_effect_multiplier", "Density effect multiplier", params.DensityEffectMultiplier),
				floatParam("regen_density_penalty", "Regen density penalty", params.RegenDensityPenalty),
				floatParam("consumption_density_penalty", "Consumption density penalty", params.ConsumptionDensityPenalty),
			},
		},
		{
			Name: "Population",
			Params: []core.Parameter{
				intParam("initial_organisms", "Initial organisms", params.InitialOrganisms),
				intParam("max_organisms", "Max organisms", params.MaxOrganisms),
				floatParam("organism_upkeep", "Organism upkeep", params.OrganismUpkeep),
				floatParam("spawn_chance", "Spawn chance", params.SpawnChance),
			},
		},
		{
			Name: "Events",
			Params: []core.Parameter{
				floatParam("event_spawn_chance", "Event spawn chance", params.EventSpawnChance),
				intParam("event_max_active", "Event max active", params.EventMaxActive),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the knobs the HUD can adjust live.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "regen_rate", Label: "Regen rate", Type: core.ParamTypeFloat, Step: 0.005, Min: 0, HasMin: true},
		{Key: "diffusion_rate", Label: "Diffusion rate", Type: core.ParamTypeFloat, Step: 0.01, Min: 0, HasMin: true, Max: 1, HasMax: true},
		{Key: "event_strength_multiplier", Label: "Event strength", Type: core.ParamTypeFloat, Step: 0.1, Min: 0, HasMin: true},
		{Key: "regen_density_penalty", Label: "Regen density penalty", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, HasMin: true},
		{Key: "consumption_density_penalty", Label: "Consumption density penalty", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, HasMin: true},
		{Key: "event_spawn_chance", Label: "Event spawn chance", Type: core.ParamTypeFloat, Step: 0.005, Min: 0, HasMin: true, Max: 1, HasMax: true},
		{Key: "density_radius", Label: "Density radius", Type: core.ParamTypeInt, Step: 1, Min: 0, HasMin: true, Max: 8, HasMax: true},
	}
}

// SetFloatParameter updates a floating point tunable. Returns false for
// unknown keys; values clamp at zero.
func (w *World) SetFloatParameter(key string, value float64) bool {
	if value < 0 {
		value = 0
	}
	switch key {
	case "regen_rate":
		w.cfg.Params.RegenRate = value
	case "diffusion_rate":
		if value > 1 {
			value = 1
		}
		w.cfg.Params.DiffusionRate = value
	case "event_strength_multiplier":
		w.cfg.Params.EventStrengthMultiplier = value
	case "density_effect_multiplier":
		w.cfg.Params.DensityEffectMultiplier = value
	case "regen_density_penalty":
		w.cfg.Params.RegenDensityPenalty = value
	case "consumption_density_penalty":
		w.cfg.Params.ConsumptionDensityPenalty = value
	case "event_spawn_chance":
		if value > 1 {
			value = 1
		}
		w.cfg.Params.EventSpawnChance = value
	default:
		return false
	}
	return true
}

// SetIntParameter updates an integer tunable. A density radius change
// triggers the full O(rows·cols·R²) rebuild.
func (w *World) SetIntParameter(key string, value int) bool {
	switch key {
	case "density_radius":
		if value < 0 {
			value = 0
		}
		w.cfg.DensityRadius = value
		w.field.Density.RecalculateFromOccupancy(w.occupied, value)
	case "event_max_active":
		if value < 0 {
			value = 0
		}
		w.cfg.Params.EventMaxActive = value
	default:
		return false
	}
	return true
}

func intParam(key, label string, v int) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.Itoa(v)}
}

func int64Param(key, label string, v int64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.FormatInt(v, 10)}
}

func floatParam(key, label string, v float64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeFloat, Value: strconv.FormatFloat(v, 'g', -1, 64)}
}
