// Package i18n translates user-facing strings. Locale files are embedded YAML
// message catalogues.
package i18n

import (
	"embed"
	"fmt"
	"log"
	"sort"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

//go:embed locales/*.yaml
var localesFS embed.FS

// Supported lists the locales shipped with the binary.
var Supported = []string{"en", "zh-CN"}

var bundle = newBundle()

func newBundle() *i18n.Bundle {
	b := i18n.NewBundle(language.English)
	b.RegisterUnmarshalFunc("yaml", yaml.Unmarshal)
	for _, locale := range Supported {
		name := "locales/" + locale + ".yaml"
		data, err := localesFS.ReadFile(name)
		if err != nil {
			log.Printf("i18n: read %s: %v", name, err)
			continue
		}
		if _, err := b.ParseMessageFileBytes(data, locale+".yaml"); err != nil {
			log.Printf("i18n: parse %s: %v", name, err)
		}
	}
	return b
}

// Translator resolves message IDs for one preferred language.
type Translator struct {
	localizer *i18n.Localizer
	lang      language.Tag
}

// New returns a translator for the given language preferences, such as
// "zh-CN" or "zh-Hans,en;q=0.8". Unknown languages fall back to English.
func New(langs ...string) *Translator {
	tag := Match(langs...)
	return &Translator{localizer: i18n.NewLocalizer(bundle, tag.String()), lang: tag}
}

// Match picks the supported language closest to the preferences.
func Match(langs ...string) language.Tag {
	tags := bundle.LanguageTags()
	matcher := language.NewMatcher(tags)
	var prefs []language.Tag
	for _, l := range langs {
		parsed, _, err := language.ParseAcceptLanguage(l)
		if err != nil {
			continue
		}
		prefs = append(prefs, parsed...)
	}
	_, idx, conf := matcher.Match(prefs...)
	if conf == language.No {
		return language.English
	}
	return tags[idx]
}

// Language is the tag the translator resolved to.
func (t *Translator) Language() language.Tag { return t.lang }

// T translates id, filling template fields from params. Missing messages
// return the id itself.
func (t *Translator) T(id string, params map[string]any) string {
	if t == nil {
		return id
	}
	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: params,
	})
	if err != nil {
		return id
	}
	return msg
}

// Tf is T with alternating key/value arguments.
func (t *Translator) Tf(id string, kv ...any) string {
	if len(kv) == 0 {
		return t.T(id, nil)
	}
	params := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		params[fmt.Sprint(kv[i])] = kv[i+1]
	}
	return t.T(id, params)
}

// Languages returns the locale tags present in the bundle, sorted.
func Languages() []string {
	var out []string
	for _, tag := range bundle.LanguageTags() {
		out = append(out, tag.String())
	}
	sort.Strings(out)
	return out
}
