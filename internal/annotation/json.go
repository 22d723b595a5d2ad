package annotation

import (
	"encoding/json"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// record is the flat, type-tagged form written to local storage under the
// "clicks" key of the user settings.
type record struct {
	Type          string   `json:"type"`
	ID            int64    `json:"id,omitempty"`
	X             *float64 `json:"x,omitempty"`
	Y             *float64 `json:"y,omitempty"`
	StartX        *float64 `json:"startX,omitempty"`
	StartY        *float64 `json:"startY,omitempty"`
	EndX          *float64 `json:"endX,omitempty"`
	EndY          *float64 `json:"endY,omitempty"`
	Color         string   `json:"color,omitempty"`
	Size          int      `json:"size,omitempty"`
	DisplayNumber int      `json:"displayNumber,omitempty"`
	Shape         string   `json:"shape,omitempty"`
	FillType      string   `json:"fillType,omitempty"`
	LineWidth     int      `json:"lineWidth,omitempty"`
	Text          string   `json:"text,omitempty"`
	Emoji         string   `json:"emoji,omitempty"`
	Visible       *bool    `json:"visible,omitempty"`
	LayerName     string   `json:"layerName,omitempty"`
}

func fp(v float64) *float64 { return &v }

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

// MarshalJSON encodes the annotation as a flat type-tagged record.
func (a *Annotation) MarshalJSON() ([]byte, error) {
	r := record{ID: a.ID, Color: HexColor(a.Color), Size: a.Size}
	if a.Layer.Tracked {
		v := a.Layer.Visible
		r.Visible = &v
		r.LayerName = a.Layer.Name
	}
	switch p := a.Payload.(type) {
	case *Number:
		r.Type = KindNumber.String()
		r.X, r.Y = fp(p.X), fp(p.Y)
		r.DisplayNumber = p.Display
	case *Shape:
		r.Type = KindShape.String()
		r.StartX, r.StartY = fp(p.StartX), fp(p.StartY)
		r.EndX, r.EndY = fp(p.EndX), fp(p.EndY)
		r.Shape = p.Shape.String()
		r.FillType = p.Fill.String()
		r.LineWidth = p.LineWidth
	case *Text:
		r.Type = KindText.String()
		r.X, r.Y = fp(p.X), fp(p.Y)
		r.Text = p.Text
	case *Emoji:
		r.Type = KindEmoji.String()
		r.X, r.Y = fp(p.X), fp(p.Y)
		r.Emoji = p.Glyph
	default:
		return nil, fmt.Errorf("annotation %d has no payload", a.ID)
	}
	return json.Marshal(r)
}

// UnmarshalJSON decodes a type-tagged record. Records without layer fields
// come from state saved before layers existed and decode as untracked.
func (a *Annotation) UnmarshalJSON(data []byte) error {
	var r record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	k, err := ParseKind(r.Type)
	if err != nil {
		return err
	}
	col := color.RGBA{255, 0, 0, 255}
	if r.Color != "" {
		if col, err = ParseHexColor(r.Color); err != nil {
			return err
		}
	}
	*a = Annotation{ID: r.ID, Color: col, Size: r.Size}
	switch k {
	case KindNumber:
		a.Payload = &Number{X: deref(r.X), Y: deref(r.Y), Display: r.DisplayNumber}
	case KindShape:
		sk, err := ParseShape(r.Shape)
		if err != nil {
			return err
		}
		fill, err := ParseFill(r.FillType)
		if err != nil {
			return err
		}
		a.Payload = &Shape{
			Shape: sk, Fill: fill, LineWidth: r.LineWidth,
			StartX: deref(r.StartX), StartY: deref(r.StartY),
			EndX: deref(r.EndX), EndY: deref(r.EndY),
		}
	case KindText:
		a.Payload = &Text{X: deref(r.X), Y: deref(r.Y), Text: r.Text}
	case KindEmoji:
		a.Payload = &Emoji{X: deref(r.X), Y: deref(r.Y), Glyph: r.Emoji}
	}
	if r.Visible != nil {
		a.Layer = LayerMeta{Visible: *r.Visible, Name: r.LayerName, Tracked: true}
	}
	return nil
}

// HexColor formats c as #RRGGBB, or #RRGGBBAA when it is not opaque.
func HexColor(c color.RGBA) string {
	if c.A == 255 {
		return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// ParseHexColor parses #RGB, #RRGGBB or #RRGGBBAA.
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	switch len(hex) {
	case 6:
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}, nil
	case 8:
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
		}
		return color.RGBA{uint8(v >> 24), uint8(v >> 16), uint8(v >> 8), uint8(v)}, nil
	}
	return color.RGBA{}, fmt.Errorf("invalid color %q", s)
}
