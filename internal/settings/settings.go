// Package settings persists the editor's tool preferences and the last
// annotation list under the userSettings key.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/example/annotateshot/internal/annotation"
	"github.com/example/annotateshot/internal/storage"
)

// KV is the subset of the key-value store used here.
type KV interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// UserSettings is the JSON document stored under storage.KeyUserSettings.
type UserSettings struct {
	Mode       string                   `json:"mode"`
	Color      string                   `json:"color"`
	Size       int                      `json:"size"`
	Shape      string                   `json:"shape"`
	FillType   string                   `json:"fillType"`
	LineWidth  int                      `json:"lineWidth"`
	CropStyle  string                   `json:"cropStyle"`
	Clicks     []*annotation.Annotation `json:"clicks"`
	ClickCount int                      `json:"clickCount"`
	ShapeCount int                      `json:"shapeCount"`
}

// Defaults are used when nothing has been saved yet.
func Defaults() UserSettings {
	return UserSettings{
		Mode:      "number",
		Color:     "#FF0000",
		Size:      20,
		Shape:     "rectangle",
		FillType:  "none",
		LineWidth: 3,
		CropStyle: "basic",
	}
}

// Overlay returns base with every non-zero preference of top applied.
// Annotations and counters are taken from top as they are.
func Overlay(base, top UserSettings) UserSettings {
	out := base
	if top.Mode != "" {
		out.Mode = top.Mode
	}
	if top.Color != "" {
		out.Color = top.Color
	}
	if top.Size > 0 {
		out.Size = top.Size
	}
	if top.Shape != "" {
		out.Shape = top.Shape
	}
	if top.FillType != "" {
		out.FillType = top.FillType
	}
	if top.LineWidth > 0 {
		out.LineWidth = top.LineWidth
	}
	if top.CropStyle != "" {
		out.CropStyle = top.CropStyle
	}
	out.Clicks = top.Clicks
	out.ClickCount = top.ClickCount
	out.ShapeCount = top.ShapeCount
	return out
}

// Load reads the stored settings and overlays them on base. A missing entry
// yields base unchanged. A corrupt entry yields base and an error.
func Load(ctx context.Context, kv KV, base UserSettings) (UserSettings, error) {
	raw, err := kv.Get(ctx, storage.KeyUserSettings)
	if errors.Is(err, storage.ErrNotFound) {
		return base, nil
	}
	if err != nil {
		return base, err
	}
	var stored UserSettings
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return base, fmt.Errorf("decode %s: %w", storage.KeyUserSettings, err)
	}
	return Overlay(base, stored), nil
}

// Save writes u under storage.KeyUserSettings.
func Save(ctx context.Context, kv KV, u UserSettings) error {
	if u.Clicks == nil {
		u.Clicks = []*annotation.Annotation{}
	}
	data, err := json.Marshal(u)
	if err != nil {
		return fmt.Errorf("encode settings: %w", err)
	}
	return kv.Set(ctx, storage.KeyUserSettings, string(data))
}
