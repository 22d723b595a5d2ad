// Package config reads the annotateshot rc file.
package config

import (
	"fmt"
	"sort"
	"strings"

	"github.com/example/annotateshot/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Save bool
	Copy bool
	Crop bool
}

// Defaults seeds the editor before saved user settings are applied.
type Defaults struct {
	Mode           string
	Color          string
	Size           int
	Shape          string
	Fill           string
	LineWidth      int
	CropStyle      string
	ViewportWidth  int
	ViewportHeight int
	DPR            float64
}

// Config holds the application configuration.
type Config struct {
	Store    string
	Locale   string
	SaveDir  string
	Theme    string
	Defaults Defaults
	Notify   Notify
	Themes   map[string]*theme.Theme
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		Defaults: Defaults{
			ViewportWidth:  1280,
			ViewportHeight: 800,
			DPR:            1,
		},
		Themes: make(map[string]*theme.Theme),
	}
}

// String returns the configuration in rc format.
func (c *Config) String() string {
	var sb strings.Builder

	root := [][2]string{{"store", c.Store}, {"locale", c.Locale}, {"save_dir", c.SaveDir}, {"theme", c.Theme}}
	for _, kv := range root {
		if kv[1] != "" {
			fmt.Fprintf(&sb, "%s = %s\n", kv[0], kv[1])
		}
	}
	sb.WriteString("\n")

	d := c.Defaults
	sb.WriteString("[defaults]\n")
	for _, kv := range [][2]string{{"mode", d.Mode}, {"color", d.Color}, {"shape", d.Shape}, {"fill", d.Fill}, {"crop_style", d.CropStyle}} {
		if kv[1] != "" {
			fmt.Fprintf(&sb, "%s = %s\n", kv[0], kv[1])
		}
	}
	if d.Size > 0 {
		fmt.Fprintf(&sb, "size = %d\n", d.Size)
	}
	if d.LineWidth > 0 {
		fmt.Fprintf(&sb, "line_width = %d\n", d.LineWidth)
	}
	fmt.Fprintf(&sb, "viewport_width = %d\n", d.ViewportWidth)
	fmt.Fprintf(&sb, "viewport_height = %d\n", d.ViewportHeight)
	fmt.Fprintf(&sb, "dpr = %g\n", d.DPR)
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	fmt.Fprintf(&sb, "copy = %v\n", c.Notify.Copy)
	fmt.Fprintf(&sb, "crop = %v\n", c.Notify.Crop)
	sb.WriteString("\n")

	var names []string
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		t := c.Themes[name]
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		fmt.Fprintf(&sb, "Name: %s\n", t.Name)
		for _, f := range theme.Fields(t) {
			fmt.Fprintf(&sb, "%s: %s\n", f.Name, theme.Hex(f.Color))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
