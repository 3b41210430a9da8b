package analytics

import (
	"fmt"
	"strings"
	"unicode"
)

// Filler words skipped when extracting a topic label from sample text.
var stopWords = map[string]bool{
	"a": true, "an": true, "the": true, "of": true, "in": true, "on": true,
	"to": true, "for": true, "and": true, "or": true, "is": true, "are": true,
	"was": true, "were": true, "this": true, "that": true, "with": true,
	"as": true, "by": true, "at": true, "it": true, "its": true, "be": true,
}

// deriveTopicName turns a chunk's sample text into a short human label:
// the first few meaningful words, cleaned of quotes and punctuation. When
// the text yields nothing usable it falls back to "Topic <ordinal>".
func deriveTopicName(sampleText string, ordinal, maxWords int) string {
	text := strings.TrimSpace(sampleText)

	// Prefer quoted content when present; upstream chunkers often wrap
	// the representative excerpt in quotes.
	if start := strings.IndexAny(text, `"'`); start >= 0 {
		quote := text[start]
		if end := strings.IndexByte(text[start+1:], quote); end > 10 {
			text = text[start+1 : start+1+end]
		}
	}

	var words []string
	for _, w := range strings.Fields(text) {
		w = strings.TrimFunc(w, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsNumber(r)
		})
		if w == "" || stopWords[strings.ToLower(w)] {
			continue
		}
		words = append(words, w)
		if len(words) == maxWords {
			break
		}
	}

	if len(words) == 0 {
		return fmt.Sprintf("Topic %d", ordinal)
	}

	// Capitalize the first word if the text is all lowercase prose.
	first := []rune(words[0])
	first[0] = unicode.ToUpper(first[0])
	words[0] = string(first)

	return strings.Join(words, " ")
}
