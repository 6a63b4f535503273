// Package locale picks the display strings for opening-hours statuses.
package locale

import (
	"github.com/mikey/cafe-hours/internal/core"
	"golang.org/x/text/language"
)

// supported lists the catalog languages; the first one is the fallback
var supported = []language.Tag{
	language.English,
	language.German,
	language.French,
	language.Spanish,
}

var catalogs = map[language.Tag]core.StatusTexts{
	language.English: core.DefaultStatusTexts,
	language.German: {
		core.StatusOpen:    "Jetzt geöffnet",
		core.StatusClosed:  "Geschlossen",
		core.StatusUnknown: "Öffnungszeiten unbekannt",
	},
	language.French: {
		core.StatusOpen:    "Ouvert",
		core.StatusClosed:  "Fermé",
		core.StatusUnknown: "Horaires indisponibles",
	},
	language.Spanish: {
		core.StatusOpen:    "Abierto ahora",
		core.StatusClosed:  "Cerrado",
		core.StatusUnknown: "Horario no disponible",
	},
}

// Catalog matches requested languages to status texts
type Catalog struct {
	matcher language.Matcher
}

// NewCatalog creates a catalog over the built-in languages
func NewCatalog() *Catalog {
	return &Catalog{matcher: language.NewMatcher(supported)}
}

// Lookup returns the status texts best matching the given preferences.
// Each preference may be a BCP 47 tag or a full Accept-Language header.
func (c *Catalog) Lookup(preferences ...string) core.StatusTexts {
	var tags []language.Tag
	for _, pref := range preferences {
		if pref == "" {
			continue
		}
		parsed, _, err := language.ParseAcceptLanguage(pref)
		if err != nil {
			continue
		}
		tags = append(tags, parsed...)
	}
	if len(tags) == 0 {
		return catalogs[supported[0]]
	}

	_, index, _ := c.matcher.Match(tags...)
	return catalogs[supported[index]]
}

// Relabel replaces the status text of result with the text for texts
func Relabel(result core.EvaluationResult, texts core.StatusTexts) core.EvaluationResult {
	if text, ok := texts[result.Status]; ok {
		result.StatusText = text
	}
	return result
}
