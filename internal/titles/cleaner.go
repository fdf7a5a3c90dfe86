package titles

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// maxCleanLength is a conservative bound on cleaned content. The backing
// seq2seq model truncates around 1024 tokens, so anything past this point is
// wasted prompt.
const maxCleanLength = 800

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	// Letters and digits in any script stay; symbols beyond basic
	// punctuation go.
	unsafeCharsRe = regexp.MustCompile(`[^\p{L}\p{N}_\s.,!?-]`)

	quoteReplacer = strings.NewReplacer(
		"’", "'", // right single quote
		"‘", "'", // left single quote
		"“", `"`, // left double quote
		"”", `"`, // right double quote
	)
)

// CleanContent normalizes raw article text into a model-safe, length-bounded
// string. It never fails; empty input yields an empty string.
func CleanContent(raw string) string {
	if raw == "" {
		return ""
	}

	content := quoteReplacer.Replace(raw)

	// Collapse whitespace runs (including newlines) and trim ends.
	content = whitespaceRe.ReplaceAllString(strings.TrimSpace(content), " ")

	// Drop characters that tend to confuse the model.
	content = unsafeCharsRe.ReplaceAllString(content, "")

	// Length bounds count characters, not bytes.
	if utf8.RuneCountInString(content) > maxCleanLength {
		// Prefer cutting at a sentence boundary.
		sentences := strings.Split(content, ".")

		var b strings.Builder
		kept := 0
		for _, sentence := range sentences {
			n := utf8.RuneCountInString(sentence)
			if kept+n > maxCleanLength {
				break
			}
			b.WriteString(sentence)
			b.WriteString(".")
			kept += n + 1
		}

		if b.Len() == 0 {
			// No usable sentence boundary; hard-truncate on a rune boundary.
			content = string([]rune(content)[:maxCleanLength]) + "..."
		} else {
			content = b.String()
		}
	}

	return content
}
