// Package locale translates report text and formats numbers for a language.
package locale

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed locales/*.json
var localeFS embed.FS

// DefaultLanguage is used when no locale is configured.
const DefaultLanguage = "pt-BR"

// Translator resolves message ids for one language.
type Translator struct {
	lang      string
	localizer *i18n.Localizer
	printer   *message.Printer
	log       *slog.Logger
}

// New builds a Translator for lang (a BCP 47 tag such as "en" or "pt-BR").
func New(lang string) (*Translator, error) {
	tag, err := language.Parse(lang)
	if err != nil {
		return nil, fmt.Errorf("locale.New: %w", err)
	}

	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	files, err := messageFiles()
	if err != nil {
		return nil, fmt.Errorf("locale.New: %w", err)
	}
	for _, name := range files {
		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			return nil, fmt.Errorf("locale.New: load %s: %w", name, err)
		}
	}

	return &Translator{
		lang:      tag.String(),
		localizer: i18n.NewLocalizer(bundle, tag.String()),
		printer:   message.NewPrinter(tag),
		log:       slog.New(slog.DiscardHandler),
	}, nil
}

// WithLogger returns a copy of t that reports missing translations to logger.
func (t *Translator) WithLogger(logger *slog.Logger) *Translator {
	c := *t
	c.log = logger.With("component", "locale")
	return &c
}

// Lang returns the canonical tag the translator was built for.
func (t *Translator) Lang() string {
	return t.lang
}

// T translates id, filling template fields from data. A missing
// translation falls back to the id itself.
func (t *Translator) T(id string, data map[string]any) string {
	msg, err := t.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
	if err != nil {
		t.log.Debug("translation missing",
			"key", id,
			"lang", t.lang,
			"error", err,
		)
		return id
	}
	return msg
}

// Number formats d with one decimal place using the language's separators.
func (t *Translator) Number(d decimal.Decimal) string {
	f, _ := d.Round(1).Float64()
	return t.printer.Sprintf("%.1f", f)
}

// Amount formats d with as many decimal places as it carries, so 10 stays
// "10" while 2.5 becomes "2,5" in pt-BR.
func (t *Translator) Amount(d decimal.Decimal) string {
	places := 0
	if _, frac, ok := strings.Cut(d.String(), "."); ok {
		places = len(frac)
	}
	f, _ := d.Float64()
	return t.printer.Sprintf("%."+strconv.Itoa(places)+"f", f)
}

// Supported lists the languages with an embedded message catalog.
func Supported() []string {
	files, err := messageFiles()
	if err != nil {
		return nil
	}
	var langs []string
	for _, name := range files {
		langs = append(langs, strings.TrimSuffix(strings.TrimPrefix(name, "active."), ".json"))
	}
	sort.Strings(langs)
	return langs
}

func messageFiles() ([]string, error) {
	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, "active.") && strings.HasSuffix(name, ".json") {
			names = append(names, name)
		}
	}
	return names, nil
}
