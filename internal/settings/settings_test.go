package settings

import (
	"context"
	"image/color"
	"strings"
	"testing"

	"github.com/example/annotateshot/internal/annotation"
	"github.com/example/annotateshot/internal/storage"
)

func TestLoadMissingReturnsBase(t *testing.T) {
	kv := storage.OpenTest(t)
	got, err := Load(context.Background(), kv, Defaults())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Mode != "number" || got.Size != 20 {
		t.Fatalf("unexpected defaults %+v", got)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := storage.OpenTest(t)
	u := Defaults()
	u.Mode = "shape"
	u.FillType = "mosaic"
	u.Clicks = []*annotation.Annotation{{
		ID: 3, Color: color.RGBA{0, 0, 255, 255}, Size: 4,
		Payload: &annotation.Shape{Shape: annotation.ShapeArrow, EndX: 10, EndY: 10},
	}}
	u.ShapeCount = 1
	if err := Save(ctx, kv, u); err != nil {
		t.Fatalf("save: %v", err)
	}
	raw, _ := kv.Get(ctx, storage.KeyUserSettings)
	for _, want := range []string{`"mode":"shape"`, `"fillType":"mosaic"`, `"clicks":[{"type":"shape"`, `"shapeCount":1`} {
		if !strings.Contains(raw, want) {
			t.Errorf("stored %s missing %s", raw, want)
		}
	}
	got, err := Load(ctx, kv, Defaults())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Mode != "shape" || got.LineWidth != 3 || len(got.Clicks) != 1 {
		t.Fatalf("unexpected settings %+v", got)
	}
	if _, ok := got.Clicks[0].Payload.(*annotation.Shape); !ok {
		t.Fatalf("click payload not decoded: %T", got.Clicks[0].Payload)
	}
}

func TestLoadCorruptKeepsBase(t *testing.T) {
	ctx := context.Background()
	kv := storage.OpenTest(t)
	kv.Set(ctx, storage.KeyUserSettings, "{not json")
	got, err := Load(ctx, kv, Defaults())
	if err == nil {
		t.Fatal("expected decode error")
	}
	if got.Mode != "number" {
		t.Fatalf("base not returned: %+v", got)
	}
}
