//go:build ebiten

package app

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"ecofield/internal/core"
	"ecofield/internal/field"
	"ecofield/internal/render"
	"ecofield/internal/ui"
)

// PaletteProvider lets a sim supply its own display palette.
type PaletteProvider interface {
	Palette() []color.RGBA
}

// StatsProvider lets a sim supply overlay stat lines.
type StatsProvider interface {
	StatsLines() []string
}

// EventForcer lets the viewer inject environmental events.
type EventForcer interface {
	ForceEvent(t field.EventType)
}

// ObstaclePlacer lets the viewer turn tiles into blocked terrain.
type ObstaclePlacer interface {
	PlaceObstacleAt(row, col int)
}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, scale int, seed int64) *Game {
	gp := render.NewGridPainter(sim.Size().W, sim.Size().H)
	return &Game{
		sim:     sim,
		painter: gp,
		overlay: ui.NewOverlay(),
		hud:     ui.NewHUD(sim),
		scale:   scale,
		seed:    seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}

	if forcer, ok := g.sim.(EventForcer); ok {
		switch {
		case inpututil.IsKeyJustPressed(ebiten.Key1):
			forcer.ForceEvent(field.EventFlood)
		case inpututil.IsKeyJustPressed(ebiten.Key2):
			forcer.ForceEvent(field.EventDrought)
		case inpututil.IsKeyJustPressed(ebiten.Key3):
			forcer.ForceEvent(field.EventHeatwave)
		case inpututil.IsKeyJustPressed(ebiten.Key4):
			forcer.ForceEvent(field.EventColdwave)
		}
	}

	if placer, ok := g.sim.(ObstaclePlacer); ok {
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			x, y := ebiten.CursorPosition()
			placer.PlaceObstacleAt(y/g.scale, x/g.scale)
		}
	}

	g.overlay.Update()
	g.hud.Update(g.sim)

	if !g.paused || g.tickOnce {
		g.sim.Step()
		g.tickOnce = false
	}
	return nil
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	var palette []color.RGBA
	if p, ok := g.sim.(PaletteProvider); ok {
		palette = p.Palette()
	}
	g.painter.Blit(screen, g.sim.Cells(), palette, g.scale)

	var lines []string
	if s, ok := g.sim.(StatsProvider); ok {
		lines = s.StatsLines()
	}
	g.overlay.Draw(screen, lines)
	g.hud.Draw(screen)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W * g.scale, s.H * g.scale
}
