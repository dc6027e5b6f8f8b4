package chunker

import (
	"regexp"
	"strings"
	"unicode"
)

var blankLineRE = regexp.MustCompile(`\r?\n[ \t]*\r?\n`)

// abbreviations that end with a period without ending the sentence.
// Keys are lowercase with the trailing dot stripped.
var abbreviations = map[string]struct{}{
	"mr": {}, "mrs": {}, "ms": {}, "dr": {}, "prof": {}, "rev": {}, "hon": {},
	"sr": {}, "jr": {}, "st": {}, "gen": {}, "rep": {}, "sen": {}, "gov": {},
	"vs": {}, "etc": {}, "e.g": {}, "i.e": {}, "cf": {}, "al": {}, "ca": {},
	"inc": {}, "ltd": {}, "co": {}, "corp": {}, "dept": {}, "univ": {},
	"est": {}, "fig": {}, "no": {}, "vol": {}, "pp": {}, "approx": {},
	"jan": {}, "feb": {}, "mar": {}, "apr": {}, "jun": {}, "jul": {},
	"aug": {}, "sep": {}, "sept": {}, "oct": {}, "nov": {}, "dec": {},
}

func isSentenceEnd(r rune) bool {
	return r == '.' || r == '!' || r == '?' || r == '…'
}

func isOpeningQuote(r rune) bool {
	switch r {
	case '"', '\'', '“', '‘', '«', '(', '[':
		return true
	}
	return false
}

// splitParagraphs splits text on blank-line boundaries, dropping empty parts.
func splitParagraphs(text string) []string {
	parts := blankLineRE.Split(text, -1)
	paragraphs := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			paragraphs = append(paragraphs, p)
		}
	}
	return paragraphs
}

// SplitSentences tokenizes a paragraph into sentences using a rule-based
// scanner. A run of sentence-ending marks closes a sentence unless the
// preceding word is a known abbreviation, the mark sits inside a decimal
// number, or the boundary heuristic decides what follows is a continuation.
func SplitSentences(paragraph string) []string {
	runes := []rune(paragraph)
	var sentences []string
	start := 0
	i := 0

	for i < len(runes) {
		if !isSentenceEnd(runes[i]) {
			i++
			continue
		}

		// Consume the full run of ending marks ("?!", "...", "…").
		j := i + 1
		for j < len(runes) && isSentenceEnd(runes[j]) {
			j++
		}

		if runes[i] == '.' && j == i+1 {
			// "3.14": a bare integer followed immediately by another digit
			// is a decimal point, not a sentence boundary.
			if j < len(runes) && unicode.IsDigit(runes[j]) && isBareInteger(runes, start, i) {
				i = j
				continue
			}
			if _, ok := abbreviations[wordBefore(runes, i)]; ok {
				i = j
				continue
			}
		}

		if isBoundaryAfter(runes, j) {
			s := strings.TrimSpace(string(runes[start:j]))
			if s != "" {
				sentences = append(sentences, s)
			}
			start = j
		}
		i = j
	}

	tail := strings.TrimSpace(string(runes[start:]))
	if tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}

// isBoundaryAfter applies the "what follows" heuristic at position j, the
// first rune after a run of sentence-ending marks.
func isBoundaryAfter(runes []rune, j int) bool {
	if j >= len(runes) {
		return true
	}

	k := j
	sawNewline := false
	for k < len(runes) && unicode.IsSpace(runes[k]) {
		if runes[k] == '\n' {
			sawNewline = true
		}
		k++
	}
	if k >= len(runes) {
		return true
	}

	next := runes[k]
	if unicode.IsUpper(next) || isOpeningQuote(next) {
		return true
	}
	if unicode.IsLower(next) && sawNewline {
		return true
	}
	// A plain trailing space still closes the sentence; a mark glued to
	// a lowercase letter or digit ("v1.2beta") is a continuation.
	return unicode.IsSpace(runes[j])
}

// wordBefore returns the word immediately preceding position i, lowercased
// with any trailing dot stripped.
func wordBefore(runes []rune, i int) string {
	end := i
	start := end
	for start > 0 && !unicode.IsSpace(runes[start-1]) {
		start--
	}
	word := string(runes[start:end])
	word = strings.TrimFunc(word, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '.'
	})
	word = strings.TrimSuffix(word, ".")
	return strings.ToLower(word)
}

// isBareInteger reports whether the token ending at position i (exclusive)
// consists solely of digits.
func isBareInteger(runes []rune, start, i int) bool {
	end := i
	tokStart := end
	for tokStart > start && unicode.IsDigit(runes[tokStart-1]) {
		tokStart--
	}
	if tokStart == end {
		return false
	}
	return tokStart == start || unicode.IsSpace(runes[tokStart-1]) || isOpeningQuote(runes[tokStart-1])
}
