package platform

import "testing"

func TestTimeoutDefault(t *testing.T) {
	if got := (Options{}).timeout(); got != 5000 {
		t.Fatalf("default timeout %d", got)
	}
	if got := (Options{TimeoutMillis: 1200}).timeout(); got != 1200 {
		t.Fatalf("explicit timeout %d", got)
	}
}

func TestHints(t *testing.T) {
	h := (Options{}).hints()
	if h["desktop-entry"] != desktopEntry || h["urgency"] != byte(0) {
		t.Fatalf("unexpected hints %v", h)
	}
	if _, ok := h["image-path"]; ok {
		t.Fatal("image-path set without an icon")
	}
	h = (Options{IconPath: "/tmp/preview.png"}).hints()
	if h["image-path"] != "/tmp/preview.png" {
		t.Fatalf("image-path missing: %v", h)
	}
}
