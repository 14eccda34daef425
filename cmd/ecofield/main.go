//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"
	"strconv"

	"ecofield/internal/app"
	"ecofield/internal/core"
	_ "ecofield/internal/sims/ecosystem"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		log.Fatalf("unknown sim %q", cfg.Sim)
	}

	if cfg.Seed != 0 {
		cfg.Options["seed"] = strconv.FormatInt(cfg.Seed, 10)
	}
	sim := factory(cfg.Options)
	sim.Reset(cfg.Seed)

	game := app.New(sim, cfg.Scale, cfg.Seed)
	size := sim.Size()

	ebiten.SetWindowTitle("ecofield — " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}
