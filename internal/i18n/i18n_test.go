package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestTranslator_T(t *testing.T) {
	tests := []struct {
		name     string
		tag      language.Tag
		key      string
		expected string
	}{
		{"english passthrough", language.English, "Dashboard", "Dashboard"},
		{"spanish translation", language.Spanish, "Dashboard", "Panel"},
		{"spanish category", language.Spanish, "Sales", "Ventas"},
		{"missing key is verbatim", language.Spanish, "Billing Reports", "Billing Reports"},
		{"percent is not a verb", language.Spanish, "100% Done", "100% Done"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, New(tt.tag).T(tt.key))
		})
	}
}

func TestTranslator_NilIsIdentity(t *testing.T) {
	var tr *Translator
	assert.Equal(t, "Sign Out", tr.T("Sign Out"))
}

func TestMatch(t *testing.T) {
	tests := []struct {
		name      string
		accept    string
		preferred string
		expected  language.Tag
	}{
		{"empty falls back to english", "", "", language.English},
		{"spanish header", "es-MX,es;q=0.9", "", language.Spanish},
		{"unsupported header", "de-DE", "", language.English},
		{"preferred used without header", "", "es", language.Spanish},
		{"header beats preferred", "en-US", "es", language.English},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Match(tt.accept, tt.preferred))
		})
	}
}
