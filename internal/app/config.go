package app

import (
	"flag"
	"fmt"
	"strings"
)

// Config collects the viewer's command line settings. Sim-specific options
// travel as key=value pairs and feed the sim factory's config map.
type Config struct {
	Sim   string
	Scale int
	TPS   int
	Seed  int64

	Options map[string]string
}

// NewConfig returns the default viewer configuration.
func NewConfig() *Config {
	return &Config{
		Sim:     "ecosystem",
		Scale:   4,
		TPS:     30,
		Seed:    0,
		Options: map[string]string{},
	}
}

// Bind registers the viewer flags on the provided flag set.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixels per tile")
	fs.IntVar(&c.TPS, "tps", c.TPS, "simulation ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "world seed (0 uses the sim default)")
	fs.Var(optionsValue{c}, "opt", "sim option as key=value (repeatable)")
}

type optionsValue struct{ cfg *Config }

func (v optionsValue) String() string { return "" }

func (v optionsValue) Set(s string) error {
	key, value, ok := strings.Cut(s, "=")
	if !ok || key == "" {
		return fmt.Errorf("option %q is not key=value", s)
	}
	v.cfg.Options[key] = value
	return nil
}
