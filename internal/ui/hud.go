//go:build ebiten

package ui

import (
	"fmt"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"ecofield/internal/core"
)

// SnapshotProvider is the optional read side of the HUD contract.
type SnapshotProvider interface {
	Parameters() core.ParameterSnapshot
}

// HUD lets the user walk the sim's adjustable parameters and nudge them
// while the simulation runs. It keeps a local mirror of the values and
// pushes changes through the sim's setter interfaces.
type HUD struct {
	controls []core.ParameterControl
	values   map[string]float64
	selected int
	visible  bool
}

// NewHUD builds a HUD for the given sim. Sims without parameter controls
// get an inert HUD.
func NewHUD(sim core.Sim) *HUD {
	h := &HUD{values: map[string]float64{}}
	provider, ok := sim.(core.ParameterControlsProvider)
	if !ok {
		return h
	}
	h.controls = provider.ParameterControls()

	if snap, ok := sim.(SnapshotProvider); ok {
		for _, group := range snap.Parameters().Groups {
			for _, p := range group.Params {
				if v, err := strconv.ParseFloat(p.Value, 64); err == nil {
					h.values[p.Key] = v
				}
			}
		}
	}
	return h
}

// Update handles selection and adjustment keys and applies changes to sim.
func (h *HUD) Update(sim core.Sim) {
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		h.visible = !h.visible
	}
	if !h.visible || len(h.controls) == 0 {
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyBracketLeft) {
		h.selected = (h.selected - 1 + len(h.controls)) % len(h.controls)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBracketRight) {
		h.selected = (h.selected + 1) % len(h.controls)
	}

	delta := 0.0
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		delta = -1
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		delta = 1
	}
	if delta == 0 {
		return
	}

	ctl := h.controls[h.selected]
	value := h.values[ctl.Key] + delta*ctl.Step
	if ctl.HasMin && value < ctl.Min {
		value = ctl.Min
	}
	if ctl.HasMax && value > ctl.Max {
		value = ctl.Max
	}

	switch ctl.Type {
	case core.ParamTypeInt:
		if setter, ok := sim.(core.IntParameterSetter); ok && setter.SetIntParameter(ctl.Key, int(value)) {
			h.values[ctl.Key] = float64(int(value))
		}
	case core.ParamTypeFloat:
		if setter, ok := sim.(core.FloatParameterSetter); ok && setter.SetFloatParameter(ctl.Key, value) {
			h.values[ctl.Key] = value
		}
	}
}

// Draw renders the control list along the bottom-left edge.
func (h *HUD) Draw(screen *ebiten.Image) {
	if !h.visible || len(h.controls) == 0 {
		return
	}
	y := screen.Bounds().Dy() - (len(h.controls)+1)*16
	ebitenutil.DebugPrintAt(screen, "[ ] select   - = adjust   H hide", 4, y)
	for i, ctl := range h.controls {
		marker := "  "
		if i == h.selected {
			marker = "> "
		}
		line := fmt.Sprintf("%s%s: %0.3f", marker, ctl.Label, h.values[ctl.Key])
		ebitenutil.DebugPrintAt(screen, line, 4, y+(i+1)*16)
	}
}
