package textstats

import (
	"sort"
	"strings"
	"unicode"
)

// stopwords are frequent English words ignored when ranking keywords.
var stopwords = map[string]struct{}{
	"a": {}, "about": {}, "after": {}, "all": {}, "also": {}, "an": {}, "and": {},
	"any": {}, "are": {}, "as": {}, "at": {}, "be": {}, "been": {}, "but": {},
	"by": {}, "can": {}, "could": {}, "did": {}, "do": {}, "does": {}, "each": {},
	"for": {}, "from": {}, "had": {}, "has": {}, "have": {}, "he": {}, "her": {},
	"his": {}, "how": {}, "i": {}, "if": {}, "in": {}, "into": {}, "is": {},
	"it": {}, "its": {}, "just": {}, "may": {}, "more": {}, "most": {}, "no": {},
	"not": {}, "of": {}, "on": {}, "one": {}, "only": {}, "or": {}, "other": {},
	"our": {}, "out": {}, "over": {}, "she": {}, "should": {}, "so": {},
	"some": {}, "such": {}, "than": {}, "that": {}, "the": {}, "their": {},
	"them": {}, "then": {}, "there": {}, "these": {}, "they": {}, "this": {},
	"to": {}, "up": {}, "very": {}, "was": {}, "we": {}, "were": {}, "what": {},
	"when": {}, "which": {}, "while": {}, "who": {}, "will": {}, "with": {},
	"would": {}, "you": {}, "your": {},
}

func IsStopword(word string) bool {
	_, ok := stopwords[strings.ToLower(word)]
	return ok
}

// WordFrequency counts lower-cased words, trimming punctuation and skipping
// stopwords and single characters.
func WordFrequency(text string) map[string]int {
	frequencies := make(map[string]int)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.TrimFunc(word, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if len([]rune(word)) < 2 || IsStopword(word) {
			continue
		}
		frequencies[word]++
	}
	return frequencies
}

// TopKeywords returns up to n words ordered by count, ties broken
// alphabetically so output is stable.
func TopKeywords(text string, n int) []string {
	if n <= 0 {
		return nil
	}
	type kv struct {
		word  string
		count int
	}
	freq := WordFrequency(text)
	counts := make([]kv, 0, len(freq))
	for w, c := range freq {
		counts = append(counts, kv{w, c})
	}
	sort.Slice(counts, func(i, j int) bool {
		if counts[i].count != counts[j].count {
			return counts[i].count > counts[j].count
		}
		return counts[i].word < counts[j].word
	})

	if len(counts) < n {
		n = len(counts)
	}
	top := make([]string, n)
	for i := 0; i < n; i++ {
		top[i] = counts[i].word
	}
	return top
}
