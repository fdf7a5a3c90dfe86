package titles

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// ruleTemplates are cycled over extracted key phrases when the model cannot
// be used as the primary generator.
var ruleTemplates = []string{
	"Understanding %s",
	"A Complete Guide to %s",
	"Everything You Need to Know About %s",
	"The Future of %s",
	"How to Master %s",
	"The Ultimate %s Guide",
	"Exploring %s",
	"The Power of %s",
	"Why %s Matters",
	"Getting Started with %s",
}

// smartPatterns are cycled when topping up a response that came up short.
var smartPatterns = []string{
	"Insights on %s",
	"Understanding %s",
	"A Deep Dive into %s",
	"The Impact of %s",
	"Exploring %s",
}

// smartStopwords are common words skipped during keyword extraction.
var smartStopwords = map[string]struct{}{
	"this": {}, "that": {}, "with": {}, "have": {}, "been": {},
	"will": {}, "from": {}, "they": {}, "were": {}, "said": {},
	"each": {}, "which": {}, "their": {}, "would": {}, "there": {},
	"could": {}, "other": {},
}

// basicTitles is the last-resort tier. It never fails and never comes up
// short of the requested count.
var basicTitles = []string{
	"New Blog Post",
	"Latest Article",
	"Fresh Content",
	"Recent Update",
	"New Insights",
}

// ruleBasedTitles fills templates with 2-word key phrases taken in source
// order. Phrases seen before are skipped without replacement, so the tier may
// produce fewer candidates than requested.
func (e *Engine) ruleBasedTitles(content string, numTitles int) []Candidate {
	words := strings.Fields(content)

	var keyPhrases []string
	for i := 0; i+1 < len(words); i++ {
		phrase := titleCase(words[i] + " " + words[i+1])
		if len(phrase) > 6 {
			keyPhrases = append(keyPhrases, phrase)
		}
	}

	limit := numTitles
	if len(keyPhrases) < limit {
		limit = len(keyPhrases)
	}

	candidates := make([]Candidate, 0, limit)
	used := make(map[string]struct{}, limit)

	for i := 0; i < limit; i++ {
		phrase := keyPhrases[i]
		if _, ok := used[phrase]; ok {
			continue
		}
		used[phrase] = struct{}{}

		// Confidence decays linearly with no floor. Requests are capped at 5
		// titles, so the negative range is unreachable through the API.
		candidates = append(candidates, Candidate{
			Title:      fmt.Sprintf(ruleTemplates[i%len(ruleTemplates)], phrase),
			Confidence: round2(0.7 - 0.1*float64(i)),
			Method:     MethodRuleBased,
		})
	}

	return candidates
}

// smartFallbackTitle builds one keyword-based title for the given position in
// the response.
func (e *Engine) smartFallbackTitle(content string, index int) Candidate {
	words := strings.Fields(content)
	if len(words) > 20 {
		words = words[:20]
	}

	var keywords []string
	for _, word := range words {
		if utf8.RuneCountInString(word) <= 4 {
			continue
		}
		if _, ok := smartStopwords[strings.ToLower(word)]; ok {
			continue
		}
		keywords = append(keywords, capitalize(word))
	}

	var title string
	if len(keywords) > 0 {
		head := keywords
		if len(head) > 2 {
			head = head[:2]
		}
		title = fmt.Sprintf(smartPatterns[index%len(smartPatterns)], strings.Join(head, " "))
	} else {
		title = fmt.Sprintf("Blog Post #%d", index+1)
	}

	return Candidate{
		Title:      title,
		Confidence: 0.6,
		Method:     MethodSmartFallback,
	}
}

// basicFallbackTitles cycles the static title list, suffixing a counter once
// the list wraps so titles stay unique.
func (e *Engine) basicFallbackTitles(numTitles int) []Candidate {
	candidates := make([]Candidate, 0, numTitles)
	for i := 0; i < numTitles; i++ {
		title := basicTitles[i%len(basicTitles)]
		if i >= len(basicTitles) {
			title = fmt.Sprintf("%s #%d", title, i+1)
		}
		candidates = append(candidates, Candidate{
			Title:      title,
			Confidence: 0.4,
			Method:     MethodBasicFallback,
		})
	}
	return candidates
}
