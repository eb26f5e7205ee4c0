package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestMatchLanguage(t *testing.T) {
	tests := []struct {
		accept   string
		expected language.Tag
	}{
		{"en-US,en;q=0.9", language.English},
		{"de-DE,de;q=0.9", language.German},
		{"fr-FR", language.English}, // Fallback
		{"", language.English},      // Empty
	}

	for _, tt := range tests {
		got := MatchLanguage(tt.accept)
		base, _ := got.Base()
		exp, _ := tt.expected.Base()
		assert.Equal(t, exp, base, "Accept: %s", tt.accept)
	}
}

func TestTagForLocale(t *testing.T) {
	tests := []struct {
		locale   string
		expected language.Tag
	}{
		{"", language.English},
		{"C", language.English},
		{"de_DE", language.German},
		{"en_GB", language.English},
		{"ja_JP", language.English},
	}

	for _, tt := range tests {
		base, _ := TagForLocale(tt.locale).Base()
		exp, _ := tt.expected.Base()
		assert.Equal(t, exp, base, "locale: %q", tt.locale)
	}
}

func TestLocaleFromEnv(t *testing.T) {
	t.Setenv("LC_ALL", "")
	t.Setenv("LANG", "de_DE.UTF-8")
	assert.Equal(t, "de_DE", LocaleFromEnv())

	t.Setenv("LC_ALL", "en_US.UTF-8")
	assert.Equal(t, "en_US", LocaleFromEnv())
}
