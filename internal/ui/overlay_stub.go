//go:build !ebiten

// Package ui holds the viewer's overlay and parameter HUD. The real
// implementations require the ebiten build tag.
package ui
