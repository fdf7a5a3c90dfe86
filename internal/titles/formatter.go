package titles

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// acronyms maps the uppercase form of a token to its canonical rendering.
var acronyms = map[string]string{
	"AI":   "AI",
	"API":  "API",
	"ML":   "ML",
	"NLP":  "NLP",
	"IOT":  "IoT",
	"SAAS": "SaaS",
	"CEO":  "CEO",
	"CTO":  "CTO",
	"IT":   "IT",
	"UI":   "UI",
	"UX":   "UX",
	"SEO":  "SEO",
	"ROI":  "ROI",
}

// articlesPrepositions stay lowercase unless they open the title.
var articlesPrepositions = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "and": {}, "or": {}, "but": {},
	"in": {}, "on": {}, "at": {}, "to": {}, "for": {}, "of": {},
	"with": {}, "by": {},
}

var titleQuoteReplacer = strings.NewReplacer(
	`"`, "",
	"`", "'",
	"’", "'",
	"‘", "'",
)

// FormatTitle normalizes a raw generated string into a presentable title.
// Stable under repeated application: formatting formatted output is a no-op.
func FormatTitle(raw string) string {
	if raw == "" {
		return ""
	}

	title := titleQuoteReplacer.Replace(raw)
	title = whitespaceRe.ReplaceAllString(strings.TrimSpace(title), " ")
	title = strings.TrimRight(title, ".")

	words := strings.Fields(title)
	if len(words) == 0 {
		return ""
	}

	formatted := make([]string, 0, len(words))
	for i, word := range words {
		upper := strings.ToUpper(word)

		switch {
		case acronyms[upper] != "":
			formatted = append(formatted, acronyms[upper])
		case i == 0:
			// First word is always capitalized.
			formatted = append(formatted, capitalize(word))
		case isStopword(word):
			formatted = append(formatted, strings.ToLower(word))
		case utf8.RuneCountInString(word) > 3:
			formatted = append(formatted, capitalize(word))
		default:
			formatted = append(formatted, strings.ToLower(word))
		}
	}

	return strings.Join(formatted, " ")
}

func isStopword(word string) bool {
	_, ok := articlesPrepositions[strings.ToLower(word)]
	return ok
}

// capitalize uppercases the first rune and lowercases the rest.
func capitalize(word string) string {
	if word == "" {
		return word
	}
	r, size := utf8.DecodeRuneInString(word)
	return string(unicode.ToUpper(r)) + strings.ToLower(word[size:])
}

// titleCase capitalizes every whitespace-separated word.
func titleCase(s string) string {
	words := strings.Fields(s)
	for i, word := range words {
		words[i] = capitalize(word)
	}
	return strings.Join(words, " ")
}
