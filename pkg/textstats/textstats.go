// Package textstats describes extracted text: size, estimated tokens,
// top keywords and detected language.
package textstats

import (
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/pemistahl/lingua-go"
)

// DefaultKeywords is how many keywords Analyze reports.
const DefaultKeywords = 8

// minLanguageChars is the shortest text worth running detection on.
const minLanguageChars = 20

type Stats struct {
	Characters      int      `json:"characters" yaml:"characters"`
	Words           int      `json:"words" yaml:"words"`
	EstimatedTokens int      `json:"estimated_tokens" yaml:"estimated_tokens"`
	Language        string   `json:"language,omitempty" yaml:"language,omitempty"`
	Keywords        []string `json:"keywords,omitempty" yaml:"keywords,omitempty"`
}

// Languages the detector distinguishes between.
var Languages = []lingua.Language{
	lingua.English,
	lingua.French,
	lingua.German,
	lingua.Spanish,
	lingua.Portuguese,
	lingua.Italian,
	lingua.Dutch,
	lingua.Hindi,
}

// Analyzer builds its language detector on first use; model loading is slow.
type Analyzer struct {
	once     sync.Once
	detector lingua.LanguageDetector
}

func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

func (a *Analyzer) languageDetector() lingua.LanguageDetector {
	a.once.Do(func() {
		a.detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(Languages...).
			Build()
	})
	return a.detector
}

// DetectLanguage returns the language name, or "" when text is too short or
// no language is reliable.
func (a *Analyzer) DetectLanguage(text string) string {
	if utf8.RuneCountInString(strings.TrimSpace(text)) < minLanguageChars {
		return ""
	}
	lang, ok := a.languageDetector().DetectLanguageOf(text)
	if !ok {
		return ""
	}
	return lang.String()
}

// Analyze computes Stats for text. Empty text yields zero Stats.
func (a *Analyzer) Analyze(text string) Stats {
	if text == "" {
		return Stats{}
	}
	chars := utf8.RuneCountInString(text)
	return Stats{
		Characters:      chars,
		Words:           len(strings.Fields(text)),
		EstimatedTokens: EstimateTokens(text),
		Language:        a.DetectLanguage(text),
		Keywords:        TopKeywords(text, DefaultKeywords),
	}
}

// EstimateTokens uses the common four-characters-per-token heuristic.
func EstimateTokens(text string) int {
	n := utf8.RuneCountInString(text)
	if n == 0 {
		return 0
	}
	return (n + 3) / 4
}
