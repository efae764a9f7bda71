// Package i18n translates the shell's display texts.
package i18n

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"
)

// Supported lists the available languages; the first is the fallback.
var Supported = []language.Tag{language.English, language.Spanish}

var (
	cat     = buildCatalog()
	matcher = language.NewMatcher(Supported)
)

// Texts used by the shell. Category labels from the configuration may also
// have entries.
var spanish = map[string]string{
	"Dashboard":      "Panel",
	"Search By Menu": "Buscar en el menú",
	"Sign Out":       "Cerrar sesión",
	"Sign In":        "Iniciar sesión",
	"View on site":   "Ver en el sitio",
	"No data":        "Sin datos",
	"Username":       "Usuario",
	"Password":       "Contraseña",
	"Toggle menu":    "Alternar menú",
	"Models":         "Modelos",
	"Auth":           "Autenticación",
	"Settings":       "Ajustes",
	"Sales":          "Ventas",

	"Invalid username or password": "Usuario o contraseña incorrectos",
}

func buildCatalog() *catalog.Builder {
	b := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, text := range spanish {
		_ = b.SetString(language.Spanish, key, text)
	}
	return b
}

// Translator renders texts in one language.
type Translator struct {
	tag     language.Tag
	printer *message.Printer
}

// New returns a translator for the given tag.
func New(tag language.Tag) *Translator {
	return &Translator{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(cat)),
	}
}

// Match picks the best supported language for an Accept-Language header,
// falling back to preferred (a BCP 47 tag, may be empty) and then English.
func Match(acceptLanguage, preferred string) language.Tag {
	var wanted []language.Tag
	if tags, _, err := language.ParseAcceptLanguage(acceptLanguage); err == nil {
		wanted = append(wanted, tags...)
	}
	if preferred != "" {
		if tag, err := language.Parse(preferred); err == nil {
			wanted = append(wanted, tag)
		}
	}
	if len(wanted) == 0 {
		return Supported[0]
	}
	_, idx, _ := matcher.Match(wanted...)
	return Supported[idx]
}

// Tag returns the translator's language.
func (t *Translator) Tag() language.Tag { return t.tag }

// T returns the translation of key, or key itself when none exists.
func (t *Translator) T(key string) string {
	if t == nil || strings.Contains(key, "%") {
		return key
	}
	return t.printer.Sprintf(key)
}
