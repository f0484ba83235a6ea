// Package i18n holds the small set of server-side labels that must follow
// the user's locale, most importantly the name of the synthetic "all" group.
package i18n

import (
	"golang.org/x/text/language"
)

// Message keys
const (
	KeyAllGroup = "commons.all"
)

var supported = []language.Tag{
	language.English, // first entry is the fallback
	language.French,
}

var matcher = language.NewMatcher(supported)

var catalog = map[language.Tag]map[string]string{
	language.English: {
		KeyAllGroup: "All",
	},
	language.French: {
		KeyAllGroup: "Tous",
	},
}

// Match resolves an Accept-Language header (or bare locale string) to the
// best supported locale. Unknown or empty input falls back to English.
func Match(acceptLanguage string) string {
	tag, _ := language.MatchStrings(matcher, acceptLanguage)

	// MatchStrings can return a regional variant; collapse to the base
	// language we keep catalogs for.
	base, _ := tag.Base()
	switch base.String() {
	case "fr":
		return language.French.String()
	default:
		return language.English.String()
	}
}

// T translates a message key for the given locale, falling back to English
// and then to the key itself.
func T(locale, key string) string {
	tag := language.Make(locale)

	if messages, ok := catalog[tag]; ok {
		if msg, ok := messages[key]; ok {
			return msg
		}
	}

	if msg, ok := catalog[language.English][key]; ok {
		return msg
	}

	return key
}
