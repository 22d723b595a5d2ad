// Package theme holds the colour palette of the editor window.
package theme

import (
	"embed"
	"image/color"
)

// EmbeddedThemes contains the themes shipped with the binary.
//
//go:embed defaults/*.theme
var EmbeddedThemes embed.FS

// Theme defines the colours used around the canvas.
type Theme struct {
	Name string

	Background color.RGBA // behind the canvas
	Foreground color.RGBA

	StatusBackground color.RGBA
	StatusText       color.RGBA

	SidebarBackground color.RGBA
	LayerText         color.RGBA
	LayerHidden       color.RGBA
	LayerActive       color.RGBA

	// Crop selection outline dashes.
	SelectionLight color.RGBA
	SelectionDark  color.RGBA

	CheckerLight color.RGBA
	CheckerDark  color.RGBA
}

// Default returns the built in light theme.
func Default() *Theme {
	return &Theme{
		Name:              "Default",
		Background:        color.RGBA{220, 220, 220, 255},
		Foreground:        color.RGBA{0, 0, 0, 255},
		StatusBackground:  color.RGBA{200, 200, 200, 255},
		StatusText:        color.RGBA{0, 0, 0, 255},
		SidebarBackground: color.RGBA{235, 235, 235, 255},
		LayerText:         color.RGBA{0, 0, 0, 255},
		LayerHidden:       color.RGBA{140, 140, 140, 255},
		LayerActive:       color.RGBA{180, 200, 230, 255},
		SelectionLight:    color.RGBA{255, 255, 255, 255},
		SelectionDark:     color.RGBA{0, 0, 0, 255},
		CheckerLight:      color.RGBA{220, 220, 220, 255},
		CheckerDark:       color.RGBA{192, 192, 192, 255},
	}
}
