package notify

import (
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/example/annotateshot/internal/platform"
)

type sent struct {
	title, body string
	opts        platform.Options
	iconExisted bool
}

func recording(n *Notifier) *[]sent {
	var out []sent
	n.send = func(title, body string, opts platform.Options) error {
		_, err := os.Stat(opts.IconPath)
		out = append(out, sent{title, body, opts, opts.IconPath != "" && err == nil})
		return nil
	}
	return &out
}

func TestDisabledEventsAreSilent(t *testing.T) {
	n := New(DefaultPreferences())
	got := recording(n)
	n.Save("x.png")
	n.Copy("")
	n.Crop(image.NewRGBA(image.Rect(0, 0, 2, 2)))
	if len(*got) != 0 {
		t.Fatalf("unexpected notifications %+v", *got)
	}
	var nilNotifier *Notifier
	nilNotifier.Enable(EventSave, true)
	nilNotifier.Save("x.png")
}

func TestSaveUsesAbsolutePathAndIcon(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shot.png")
	if err := os.WriteFile(path, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}
	n := New(DefaultPreferences())
	n.Enable(EventSave, true)
	got := recording(n)
	n.Save(path)
	if len(*got) != 1 {
		t.Fatalf("expected one notification, got %d", len(*got))
	}
	s := (*got)[0]
	if s.title != "AnnotateShot" || s.body != "Saved "+path || s.opts.IconPath != path {
		t.Fatalf("unexpected notification %+v", s)
	}
}

func TestCropPreviewIsRemoved(t *testing.T) {
	n := New(DefaultPreferences())
	n.Enable(EventCrop, true)
	got := recording(n)
	n.Crop(image.NewRGBA(image.Rect(0, 0, 30, 20)))
	if len(*got) != 1 {
		t.Fatalf("expected one notification, got %d", len(*got))
	}
	s := (*got)[0]
	if s.body != "Cropped to 30x20" || !s.iconExisted {
		t.Fatalf("unexpected notification %+v", s)
	}
	if _, err := os.Stat(s.opts.IconPath); !os.IsNotExist(err) {
		t.Fatalf("preview not cleaned up: %v", err)
	}
}

func TestEnvironmentTemplates(t *testing.T) {
	env := map[string]string{
		"ANNOTATESHOT_NOTIFY_TITLE":     "Shots",
		"ANNOTATESHOT_NOTIFY_COPY_TEXT": "%s on the clipboard",
	}
	n := New(LoadPreferences(func(k string) string { return env[k] }))
	n.Enable(EventCopy, true)
	got := recording(n)
	n.Copy("")
	if len(*got) != 1 || (*got)[0].title != "Shots" || (*got)[0].body != "image on the clipboard" {
		t.Fatalf("unexpected notifications %+v", *got)
	}
}
