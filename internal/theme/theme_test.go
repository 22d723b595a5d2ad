package theme

import (
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestParseKeepsDefaults(t *testing.T) {
	th, err := Parse(strings.NewReader("Name: mine\nstatusbackground: #102030\nUnknown: #FFFFFF\n"))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if th.Name != "mine" {
		t.Errorf("unexpected name %q", th.Name)
	}
	if th.StatusBackground != (color.RGBA{0x10, 0x20, 0x30, 255}) {
		t.Errorf("unexpected status background %+v", th.StatusBackground)
	}
	if th.CheckerDark != Default().CheckerDark {
		t.Errorf("default colour lost: %+v", th.CheckerDark)
	}
}

func TestParseRejectsBadColor(t *testing.T) {
	if _, err := Parse(strings.NewReader("Foreground: red\n")); err == nil {
		t.Fatal("expected error for colour without #")
	}
}

func TestColorRoundTrip(t *testing.T) {
	for _, s := range []string{"#0A0B0C", "#0A0B0C80"} {
		c, err := ParseColor(s)
		if err != nil {
			t.Fatalf("parse %s: %v", s, err)
		}
		if got := Hex(c); got != s {
			t.Errorf("Hex(%s) = %s", s, got)
		}
	}
}

func TestLoaderOrder(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "ocean.theme"), []byte("Name: Ocean\nBackground: #000080\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	l := &Loader{ConfigDir: dir, Custom: map[string]*Theme{"inline": {Name: "inline"}}}

	if th, err := l.Load("dark"); err != nil || th.Name != "Dark" {
		t.Fatalf("embedded dark theme: %v %v", th, err)
	}
	if th, err := l.Load("ocean"); err != nil || th.Background != (color.RGBA{0, 0, 0x80, 255}) {
		t.Fatalf("config dir theme: %v %v", th, err)
	}
	if th, err := l.Load("inline"); err != nil || th.Name != "inline" {
		t.Fatalf("inline theme: %v %v", th, err)
	}
	if _, err := l.Load("missing"); err == nil {
		t.Fatal("expected error for missing theme")
	}
	if th, _ := l.Load(""); th.Name != "Default" {
		t.Fatalf("empty name should give default, got %q", th.Name)
	}
}

func TestFieldsListsColours(t *testing.T) {
	fields := Fields(Default())
	if len(fields) != 12 || fields[0].Name != "Background" {
		t.Fatalf("unexpected fields %+v", fields)
	}
}
