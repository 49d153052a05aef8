// Package deckurl normalizes Yu-Gi-Oh! Card Database deck URLs.
//
// The database renders card names, types and attributes in the locale given
// by the request_locale query parameter. Extraction matches English keywords
// ("SPELL", "Tuner", ...), so every URL is forced to the English locale
// before navigation.
package deckurl

import (
	"regexp"
	"strings"
)

const (
	// LocaleParam is the query parameter the database reads the locale from.
	LocaleParam = "request_locale"

	// EnglishLocale is the locale value extraction depends on.
	EnglishLocale = "en"
)

// localePattern matches the locale parameter with any (possibly empty) value.
var localePattern = regexp.MustCompile(LocaleParam + `=\w*`)

// Normalize returns rawURL with request_locale=en.
// An existing locale value is replaced; otherwise the parameter is appended
// with "?" or "&" as appropriate. A trailing #fragment stays at the end.
// Normalize is idempotent.
func Normalize(rawURL string) string {
	u := strings.TrimSpace(rawURL)

	base, fragment, hasFragment := strings.Cut(u, "#")

	if strings.Contains(base, LocaleParam+"=") {
		base = localePattern.ReplaceAllString(base, LocaleParam+"="+EnglishLocale)
	} else {
		sep := "?"
		if strings.Contains(base, "?") {
			sep = "&"
			if strings.HasSuffix(base, "?") || strings.HasSuffix(base, "&") {
				sep = ""
			}
		}
		base += sep + LocaleParam + "=" + EnglishLocale
	}

	if hasFragment {
		return base + "#" + fragment
	}
	return base
}

// IsExit reports whether input is the sentinel that ends the prompt loop.
func IsExit(input string) bool {
	return strings.EqualFold(strings.TrimSpace(input), "exit")
}
