package ecosystem

import "strconv"

// Params holds the tunable rates and probabilities for the ecosystem sim.
// The first block feeds the field engine every tick; the rest drives the
// demo terrain, population and event spawning.
type Params struct {
	RegenRate                 float64
	DiffusionRate             float64
	EventStrengthMultiplier   float64
	DensityEffectMultiplier   float64
	RegenDensityPenalty       float64
	ConsumptionDensityPenalty float64

	TerrainScale      float64
	ObstacleThreshold float64

	InitialOrganisms int
	MaxOrganisms     int
	OrganismUpkeep   float64
	SpawnChance      float64
	ForageRateMin    float64
	ForageRateMax    float64
	HarvestCapMin    float64
	HarvestCapMax    float64
	OrganismEnergy   float64

	EventSpawnChance float64
	EventMaxActive   int
	EventTTLMin      int
	EventTTLMax      int
	EventStrengthMin float64
	EventStrengthMax float64
	EventSizeMin     int
	EventSizeMax     int
}

// Config controls the ecosystem simulation dimensions and field settings.
type Config struct {
	Width  int
	Height int

	Seed int64

	MaxTileEnergy float64
	DensityRadius int

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:         192,
		Height:        192,
		Seed:          1337,
		MaxTileEnergy: 5,
		DensityRadius: 2,
		Params: Params{
			RegenRate:                 0.02,
			DiffusionRate:             0.08,
			EventStrengthMultiplier:   1,
			DensityEffectMultiplier:   1,
			RegenDensityPenalty:       0.7,
			ConsumptionDensityPenalty: 0.5,

			TerrainScale:      0.045,
			ObstacleThreshold: 0.62,

			InitialOrganisms: 120,
			MaxOrganisms:     600,
			OrganismUpkeep:   0.03,
			SpawnChance:      0.35,
			ForageRateMin:    0.2,
			ForageRateMax:    0.6,
			HarvestCapMin:    0.05,
			HarvestCapMax:    0.5,
			OrganismEnergy:   4,

			EventSpawnChance: 0.02,
			EventMaxActive:   3,
			EventTTLMin:      40,
			EventTTLMax:      160,
			EventStrengthMin: 0.3,
			EventStrengthMax: 1,
			EventSizeMin:     16,
			EventSizeMax:     64,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["max_tile_energy"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.MaxTileEnergy = parsed
		}
	}
	if v, ok := cfg["density_radius"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.DensityRadius = parsed
		}
	}
	if v, ok := cfg["regen_rate"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.RegenRate = parsed
		}
	}
	if v, ok := cfg["diffusion_rate"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.DiffusionRate = parsed
		}
	}
	if v, ok := cfg["event_strength_multiplier"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.EventStrengthMultiplier = parsed
		}
	}
	if v, ok := cfg["density_effect_multiplier"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.DensityEffectMultiplier = parsed
		}
	}
	if v, ok := cfg["regen_density_penalty"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.RegenDensityPenalty = parsed
		}
	}
	if v, ok := cfg["consumption_density_penalty"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.ConsumptionDensityPenalty = parsed
		}
	}
	if v, ok := cfg["obstacle_threshold"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			c.Params.ObstacleThreshold = parsed
		}
	}
	if v, ok := cfg["terrain_scale"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Params.TerrainScale = parsed
		}
	}
	if v, ok := cfg["initial_organisms"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.InitialOrganisms = parsed
		}
	}
	if v, ok := cfg["max_organisms"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.MaxOrganisms = parsed
		}
	}
	if v, ok := cfg["organism_upkeep"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.OrganismUpkeep = parsed
		}
	}
	if v, ok := cfg["spawn_chance"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.SpawnChance = parsed
		}
	}
	if v, ok := cfg["event_spawn_chance"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.EventSpawnChance = parsed
		}
	}
	if v, ok := cfg["event_max_active"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.EventMaxActive = parsed
		}
	}
	if v, ok := cfg["event_ttl_min"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.EventTTLMin = parsed
		}
	}
	if v, ok := cfg["event_ttl_max"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.EventTTLMax = parsed
		}
	}
	if c.Params.EventTTLMax < c.Params.EventTTLMin {
		c.Params.EventTTLMax = c.Params.EventTTLMin
	}
	if c.Params.ForageRateMax < c.Params.ForageRateMin {
		c.Params.ForageRateMax = c.Params.ForageRateMin
	}
	if c.Params.EventSizeMax < c.Params.EventSizeMin {
		c.Params.EventSizeMax = c.Params.EventSizeMin
	}
	return c
}
