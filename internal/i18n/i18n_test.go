package i18n

import (
	"testing"

	"golang.org/x/text/language"
)

func TestEnglishWithParams(t *testing.T) {
	tr := New("en")
	if got := tr.Tf("status.cropApplied", "Width", 300, "Height", 200); got != "Cropped to 300x200" {
		t.Fatalf("unexpected translation %q", got)
	}
}

func TestChineseMatch(t *testing.T) {
	tr := New("zh-Hans-CN")
	if got := tr.T("layer.background", nil); got != "背景" {
		t.Fatalf("unexpected translation %q (lang %v)", got, tr.Language())
	}
	if got := tr.Tf("layer.number", "N", 2); got != "数字 2" {
		t.Fatalf("unexpected translation %q", got)
	}
}

func TestFallbacks(t *testing.T) {
	if tag := Match("fr-FR"); tag != language.English {
		t.Fatalf("expected english fallback, got %v", tag)
	}
	tr := New()
	if got := tr.T("no.such.key", nil); got != "no.such.key" {
		t.Fatalf("missing key should echo id, got %q", got)
	}
	var nilTr *Translator
	if got := nilTr.T("status.ready", nil); got != "status.ready" {
		t.Fatalf("nil translator should echo id, got %q", got)
	}
}

func TestLanguagesListed(t *testing.T) {
	langs := Languages()
	if len(langs) != 2 {
		t.Fatalf("expected 2 languages, got %v", langs)
	}
}
