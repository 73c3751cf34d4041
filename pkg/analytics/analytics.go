// Package analytics computes keyword and language signals over extracted
// page text.
package analytics

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/pemistahl/lingua-go"
)

type Analytics struct {
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
}

// commonWords is a map of frequently occurring words that should be ignored
// in frequency analysis.
var commonWords = map[string]struct{}{
	"a": {}, "about": {}, "after": {}, "again": {}, "all": {}, "also": {},
	"am": {}, "an": {}, "and": {}, "any": {}, "are": {}, "as": {}, "at": {},

	"back": {}, "be": {}, "because": {}, "been": {}, "before": {}, "being": {},
	"below": {}, "between": {}, "both": {}, "but": {}, "by": {},

	"can": {}, "cannot": {}, "could": {},

	"did": {}, "do": {}, "does": {}, "doing": {}, "down": {}, "during": {},

	"each": {}, "either": {}, "else": {}, "even": {}, "ever": {}, "every": {},

	"few": {}, "for": {}, "from": {}, "further": {},

	"had": {}, "has": {}, "have": {}, "having": {}, "he": {}, "her": {},
	"here": {}, "hers": {}, "herself": {}, "him": {}, "himself": {},
	"his": {}, "how": {}, "however": {},

	"i": {}, "if": {}, "in": {}, "into": {}, "is": {}, "it": {}, "its": {},
	"itself": {},

	"just": {},

	"like": {},

	"made": {}, "make": {}, "many": {}, "may": {}, "me": {}, "might": {},
	"more": {}, "most": {}, "much": {}, "must": {}, "my": {}, "myself": {},

	"never": {}, "no": {}, "none": {}, "nor": {}, "not": {}, "now": {},

	"of": {}, "off": {}, "on": {}, "once": {}, "one": {}, "only": {},
	"onto": {}, "or": {}, "other": {}, "our": {}, "ours": {},
	"ourselves": {}, "out": {}, "over": {}, "own": {},

	"per": {},

	"rather": {},

	"same": {}, "she": {}, "should": {}, "since": {}, "so": {}, "some": {},
	"still": {}, "such": {},

	"than": {}, "that": {}, "the": {}, "their": {}, "theirs": {},
	"them": {}, "themselves": {}, "then": {}, "there": {}, "these": {},
	"they": {}, "this": {}, "those": {}, "through": {}, "thus": {},
	"to": {}, "too": {}, "toward": {}, "towards": {},

	"under": {}, "until": {}, "up": {}, "upon": {}, "us": {}, "use": {},

	"very": {}, "via": {},

	"was": {}, "we": {}, "well": {}, "were": {}, "what": {}, "when": {},
	"where": {}, "whether": {}, "which": {}, "while": {}, "who": {},
	"whose": {}, "why": {}, "will": {}, "with": {}, "within": {},
	"without": {}, "would": {},

	"yet": {}, "you": {}, "your": {}, "yours": {}, "yourself": {},

	// Common web/UI noise words
	"click": {}, "button": {}, "link": {}, "menu": {},
	"page": {}, "pages": {}, "website": {}, "site": {},
	"home": {}, "homepage": {}, "loading": {},
}

// IsStopword checks if a word is a common stopword that should be filtered out.
func IsStopword(word string) bool {
	_, exists := commonWords[strings.ToLower(word)]
	return exists
}

func (a *Analytics) WordFrequency(text string) map[string]int {
	words := strings.Fields(strings.ToLower(text)) // strings.Fields handles multiple spaces and newlines
	frequencies := make(map[string]int)

	for _, word := range words {
		// Remove punctuation from words
		word = strings.TrimFunc(word, func(r rune) bool {
			// Keep only lowercase letters and numbers
			return ('a' > r || r > 'z') && ('0' > r || r > '9')
		})

		// Skip if it's a common word or empty after cleaning
		if _, exists := commonWords[word]; exists || word == "" {
			continue
		}

		frequencies[word]++
	}

	return frequencies
}

type wordCount struct {
	Word  string
	Count int
}

// TopKeywords returns the n most frequent non-stopword words in text,
// formatted as "word:count" and sorted by count descending, then
// alphabetically for ties.
func (a *Analytics) TopKeywords(text string, n int) []string {
	frequencies := a.WordFrequency(text)

	counts := make([]wordCount, 0, len(frequencies))
	for k, v := range frequencies {
		counts = append(counts, wordCount{k, v})
	}

	sort.Slice(counts, func(i, j int) bool {
		if counts[i].Count != counts[j].Count {
			return counts[i].Count > counts[j].Count
		}
		return counts[i].Word < counts[j].Word
	})

	limit := n
	if len(counts) < n {
		limit = len(counts)
	}

	topN := make([]string, limit)
	for i := 0; i < limit; i++ {
		topN[i] = fmt.Sprintf("%s:%d", counts[i].Word, counts[i].Count)
	}

	return topN
}

// detectorLanguages limits the model set loaded by lingua. Loading all
// supported languages costs hundreds of MB.
var detectorLanguages = []lingua.Language{
	lingua.English,
	lingua.Spanish,
	lingua.French,
	lingua.German,
	lingua.Italian,
	lingua.Portuguese,
	lingua.Dutch,
	lingua.Russian,
	lingua.Japanese,
	lingua.Chinese,
}

func (a *Analytics) languageDetector() lingua.LanguageDetector {
	a.detectorOnce.Do(func() {
		a.detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(detectorLanguages...).
			Build()
	})
	return a.detector
}

// DetectLanguage returns the ISO 639-1 code of the most likely language of
// text and the detector's confidence in it. It returns "" with zero
// confidence when no language can be determined.
func (a *Analytics) DetectLanguage(text string) (string, float64) {
	if strings.TrimSpace(text) == "" {
		return "", 0
	}

	detector := a.languageDetector()
	language, exists := detector.DetectLanguageOf(text)
	if !exists {
		return "", 0
	}

	confidence := detector.ComputeLanguageConfidence(text, language)
	return strings.ToLower(language.IsoCode639_1().String()), confidence
}
