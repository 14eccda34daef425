//go:build ebiten

package ui

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Overlay draws the stats panel in the top-left corner of the viewer.
type Overlay struct {
	visible bool
}

// NewOverlay constructs a visible overlay.
func NewOverlay() *Overlay {
	return &Overlay{visible: true}
}

// Update handles the visibility toggle key.
func (o *Overlay) Update() {
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		o.visible = !o.visible
	}
}

// Draw renders the provided stat lines plus the frame rate.
func (o *Overlay) Draw(screen *ebiten.Image, lines []string) {
	if !o.visible {
		return
	}
	all := make([]string, 0, len(lines)+1)
	all = append(all, fmt.Sprintf("fps %0.1f  tps %0.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	all = append(all, lines...)
	ebitenutil.DebugPrint(screen, strings.Join(all, "\n"))
}
