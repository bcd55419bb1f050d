package i18n

import (
	"embed"
	"encoding/json"
	"fmt"

	"github.com/RandalBristow/pizza-palace-sub000/internal/model"
	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var locales embed.FS

type Translator struct {
	bundle *goi18n.Bundle
}

// New builds a translator with the embedded en and es messages.
func New() (*Translator, error) {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	for _, name := range []string{"active.en.json", "active.es.json"} {
		data, err := locales.ReadFile("locales/" + name)
		if err != nil {
			return nil, fmt.Errorf("read locale %s: %w", name, err)
		}
		if _, err := bundle.ParseMessageFileBytes(data, name); err != nil {
			return nil, fmt.Errorf("parse locale %s: %w", name, err)
		}
	}
	return &Translator{bundle: bundle}, nil
}

// Load adds an extra message file, e.g. active.fr.json.
func (t *Translator) Load(path string) error {
	_, err := t.bundle.LoadMessageFile(path)
	return err
}

// Labels returns the placeholder labels for lang, falling back to English
// per message.
func (t *Translator) Labels(lang string) model.Labels {
	loc := goi18n.NewLocalizer(t.bundle, lang, language.English.String())
	return model.Labels{
		UnknownSize:    t.localize(loc, "UnknownSize", model.DefaultLabels.UnknownSize),
		UnknownTopping: t.localize(loc, "UnknownTopping", model.DefaultLabels.UnknownTopping),
	}
}

func (t *Translator) localize(loc *goi18n.Localizer, id, fallback string) string {
	msg, err := loc.Localize(&goi18n.LocalizeConfig{MessageID: id})
	if err != nil || msg == "" {
		return fallback
	}
	return msg
}
