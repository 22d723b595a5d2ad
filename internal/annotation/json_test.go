package annotation

import (
	"encoding/json"
	"image/color"
	"strings"
	"testing"
)

func TestDecodeLegacyRecord(t *testing.T) {
	data := `[{"type":"number","x":10,"y":20,"color":"#00ff00","size":15,"displayNumber":3},
	{"type":"shape","startX":1,"startY":2,"endX":30,"endY":40,"shape":"circle","fillType":"mosaic","color":"#000000","size":3}]`
	var list []*Annotation
	if err := json.Unmarshal([]byte(data), &list); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 annotations, got %d", len(list))
	}
	n, ok := list[0].Payload.(*Number)
	if !ok || n.Display != 3 || n.X != 10 || n.Y != 20 {
		t.Fatalf("unexpected number payload %+v", list[0].Payload)
	}
	if list[0].Color != (color.RGBA{0, 255, 0, 255}) {
		t.Fatalf("unexpected color %+v", list[0].Color)
	}
	if list[0].Layer.Tracked {
		t.Fatalf("record without layer fields should be untracked")
	}
	sh, ok := list[1].Payload.(*Shape)
	if !ok || sh.Shape != ShapeCircle || sh.Fill != FillMosaic || sh.EndY != 40 {
		t.Fatalf("unexpected shape payload %+v", list[1].Payload)
	}
}

func TestEncodeKeepsLayerMeta(t *testing.T) {
	s := loadedStore()
	a, _ := s.Add(&Emoji{X: 4, Y: 5, Glyph: "*"}, color.RGBA{1, 2, 3, 128}, 9)
	s.SetVisible(a.ID, false)
	data, err := json.Marshal(a)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, want := range []string{`"type":"emoji"`, `"emoji":"*"`, `"visible":false`, `"layerName":"Emoji 1"`, `"color":"#01020380"`} {
		if !strings.Contains(string(data), want) {
			t.Errorf("encoded %s missing %s", data, want)
		}
	}
	var back Annotation
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !back.Layer.Tracked || back.Layer.Visible || back.Layer.Name != "Emoji 1" {
		t.Fatalf("layer meta lost: %+v", back.Layer)
	}
}

func TestDecodeRejectsUnknownType(t *testing.T) {
	var a Annotation
	if err := json.Unmarshal([]byte(`{"type":"sticker"}`), &a); err == nil {
		t.Fatalf("expected error for unknown type")
	}
}

func TestParseHexColor(t *testing.T) {
	c, err := ParseHexColor("#f80")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if c != (color.RGBA{0xff, 0x88, 0x00, 0xff}) {
		t.Fatalf("unexpected color %+v", c)
	}
	if _, err := ParseHexColor("#12"); err == nil {
		t.Fatalf("expected error for short color")
	}
}
