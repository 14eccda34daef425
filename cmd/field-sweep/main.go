// Command field-sweep runs headless parameter sweeps over the field
// engine's regeneration and diffusion tunables, ranks the outcomes by how
// well the forager population holds up, and can chart the best runs.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"sort"
	"sync"

	"github.com/wcharczuk/go-chart/v2"

	"ecofield/internal/core"
	"ecofield/internal/sims/ecosystem"
)

type paramSet struct {
	regenRate          float64
	diffusionRate      float64
	regenPenalty       float64
	consumptionPenalty float64
}

func (p paramSet) String() string {
	return fmt.Sprintf("regen=%.3f diffusion=%.3f regenPenalty=%.2f consumptionPenalty=%.2f",
		p.regenRate, p.diffusionRate, p.regenPenalty, p.consumptionPenalty)
}

type scenarioResult struct {
	params paramSet

	finalOrganisms int
	finalMean      float64
	meanSeries     []float64
}

func main() {
	steps := flag.Int("steps", 400, "ticks to simulate per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	chartPath := flag.String("chart", "", "write a PNG chart of the top runs to this path")
	watch := flag.Bool("watch", false, "run one default scenario in real time instead of sweeping")
	tps := flag.Int("tps", 30, "ticks per second in watch mode")
	flag.Parse()

	if *watch {
		runWatch(*tps)
		return
	}

	baseCfg := ecosystem.DefaultConfig()
	baseCfg.Width = 96
	baseCfg.Height = 96
	baseCfg.Params.InitialOrganisms = 150
	baseCfg.Params.EventSpawnChance = 0.03

	regenOptions := []float64{0.01, 0.02, 0.04}
	diffusionOptions := []float64{0, 0.05, 0.12}
	regenPenaltyOptions := []float64{0.4, 0.7}
	consumptionPenaltyOptions := []float64{0.3, 0.6}

	var sets []paramSet
	for _, regen := range regenOptions {
		for _, diff := range diffusionOptions {
			for _, rp := range regenPenaltyOptions {
				for _, cp := range consumptionPenaltyOptions {
					sets = append(sets, paramSet{
						regenRate:          regen,
						diffusionRate:      diff,
						regenPenalty:       rp,
						consumptionPenalty: cp,
					})
				}
			}
		}
	}

	fmt.Printf("Sweeping %d parameter sets (%d workers, %d steps)\n", len(sets), *workers, *steps)

	jobs := make(chan paramSet)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				results <- runScenario(baseCfg, params, *steps)
			}
		}()
	}

	go func() {
		for _, params := range sets {
			jobs <- params
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	var all []scenarioResult
	for res := range results {
		all = append(all, res)
	}

	sort.Slice(all, func(i, j int) bool {
		if all[i].finalOrganisms != all[j].finalOrganisms {
			return all[i].finalOrganisms > all[j].finalOrganisms
		}
		return all[i].finalMean > all[j].finalMean
	})

	fmt.Println("\nTop parameter sets:")
	for i, res := range all {
		if i >= 10 {
			break
		}
		fmt.Printf("%2d. %s -> organisms=%d meanEnergy=%.3f\n",
			i+1, res.params, res.finalOrganisms, res.finalMean)
	}

	if *chartPath != "" {
		if err := writeChart(*chartPath, all); err != nil {
			log.Fatalf("chart: %v", err)
		}
		fmt.Printf("Chart written to %s\n", *chartPath)
	}
}

func runScenario(base ecosystem.Config, params paramSet, steps int) scenarioResult {
	cfg := base
	cfg.Params.RegenRate = params.regenRate
	cfg.Params.DiffusionRate = params.diffusionRate
	cfg.Params.RegenDensityPenalty = params.regenPenalty
	cfg.Params.ConsumptionDensityPenalty = params.consumptionPenalty

	world := ecosystem.NewWithConfig(cfg)
	world.Reset(0)

	res := scenarioResult{params: params, meanSeries: make([]float64, 0, steps)}
	for i := 0; i < steps; i++ {
		world.Step()
		res.meanSeries = append(res.meanSeries, world.MeanEnergy())
	}
	res.finalOrganisms = world.OrganismCount()
	res.finalMean = world.MeanEnergy()
	return res
}

func writeChart(path string, results []scenarioResult) error {
	top := results
	if len(top) > 3 {
		top = top[:3]
	}
	if len(top) == 0 {
		return fmt.Errorf("no results to chart")
	}

	var series []chart.Series
	for _, res := range top {
		xs := make([]float64, len(res.meanSeries))
		for i := range xs {
			xs[i] = float64(i)
		}
		series = append(series, chart.ContinuousSeries{
			Name:    res.params.String(),
			XValues: xs,
			YValues: res.meanSeries,
		})
	}

	graph := chart.Chart{
		Title:  "Mean tile energy over time",
		XAxis:  chart.XAxis{Name: "tick"},
		YAxis:  chart.YAxis{Name: "mean energy"},
		Series: series,
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return graph.Render(chart.PNG, f)
}

func runWatch(tps int) {
	cfg := ecosystem.DefaultConfig()
	cfg.Width = 96
	cfg.Height = 96
	world := ecosystem.NewWithConfig(cfg)
	world.Reset(0)

	fmt.Println("Running default scenario in real time (Ctrl-C to stop)")
	pacer := core.NewFixedStep(tps)
	for {
		pacer.Wait()
		world.Step()
		if world.Tick()%30 == 0 {
			fmt.Printf("tick=%d organisms=%d events=%d meanEnergy=%.3f\n",
				world.Tick(), world.OrganismCount(), world.ActiveEvents(), world.MeanEnergy())
		}
	}
}
