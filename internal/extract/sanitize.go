package extract

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// cardNamePattern matches characters that break wiki links and templates.
var cardNamePattern = regexp.MustCompile(`[#<>\[\]{}|]`)

// fileNamePattern matches characters that are invalid in file names on
// Windows, macOS or Linux.
var fileNamePattern = regexp.MustCompile(`[<>:"/\\|?*]`)

// whitespacePattern matches whitespace runs, including non-breaking spaces.
var whitespacePattern = regexp.MustCompile(`[\s\x{00a0}]+`)

// SanitizeCardName removes exactly the characters # < > [ ] { } |.
func SanitizeCardName(name string) string {
	return cardNamePattern.ReplaceAllString(name, "")
}

// SanitizeFileName removes characters that cannot appear in a file name.
func SanitizeFileName(name string) string {
	return fileNamePattern.ReplaceAllString(name, "")
}

// CleanText collapses whitespace runs to a single space, trims the result
// and normalizes it to NFC so that composed and decomposed accents compare
// equal ("Pokémon" typed either way).
func CleanText(text string) string {
	collapsed := whitespacePattern.ReplaceAllString(text, " ")
	return norm.NFC.String(strings.TrimSpace(collapsed))
}

// parseQuantity reads the leading integer of s. Missing, unparseable or
// non-positive counts are treated as a single copy.
func parseQuantity(s string) int {
	s = strings.TrimSpace(s)

	n := 0
	digits := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
		digits++
		if n > 1_000_000 {
			break
		}
	}

	if digits == 0 || n < 1 {
		return 1
	}
	return n
}
