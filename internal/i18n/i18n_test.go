package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestT(t *testing.T) {
	assert.Equal(t, "All", T("en", KeyAllGroup))
	assert.Equal(t, "Tous", T("fr", KeyAllGroup))

	// Unknown locale falls back to English
	assert.Equal(t, "All", T("de", KeyAllGroup))
	assert.Equal(t, "All", T("", KeyAllGroup))

	// Unknown key falls back to the key itself
	assert.Equal(t, "commons.unknown", T("en", "commons.unknown"))
}

func TestMatch(t *testing.T) {
	testCases := []struct {
		header string
		want   string
	}{
		{"en", "en"},
		{"en-US,en;q=0.9", "en"},
		{"fr", "fr"},
		{"fr-FR,fr;q=0.9,en;q=0.8", "fr"},
		{"fr-CA", "fr"},
		{"de-DE,de;q=0.9", "en"},
		{"", "en"},
		{"garbage;;;", "en"},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, Match(tc.header), "header %q", tc.header)
	}
}
