// Package wordfreq turns free text into weighted words for a tag cloud.
//
// Text is split on whitespace (including the CJK separators), links and
// mentions are dropped, punctuation is stripped, and the remaining words are
// counted case-insensitively. Each word keeps the spelling of its last
// occurrence.
package wordfreq

import (
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Word is a counted word.
type Word struct {
	Text  string `json:"text"`
	Count int    `json:"count"`
}

// Options controls tokenization. Lengths are in runes; zero disables a limit.
type Options struct {
	MinLength   int      // drop words shorter than this
	MaxLength   int      // drop words longer than this
	CutLength   int      // truncate words to this length
	IgnoreItems []string // stop words, matched case-insensitively
	MaxItems    int      // keep only the most frequent words

	// Language drives lowercasing; the zero value uses language.Und.
	Language language.Tag
}

// extraSeparators are word separators unicode.IsSpace does not cover.
const extraSeparators = "〱〲〳〴〵゛゜゠ーｰ"

var dropPrefixes = []string{"@", "#", "http://", "https://", "//", "www."}

func isSeparator(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune(extraSeparators, r)
}

// Parse counts the words of text. The result is ordered by descending count,
// ties by first occurrence.
func Parse(text string, opts Options) []Word {
	lower := cases.Lower(opts.Language)
	ignore := make(map[string]bool, len(opts.IgnoreItems))
	for _, w := range opts.IgnoreItems {
		ignore[lower.String(strings.TrimSpace(w))] = true
	}

	type entry struct {
		text  string
		count int
		first int
	}
	counts := make(map[string]*entry)
	for i, tok := range strings.FieldsFunc(text, isSeparator) {
		word, ok := clean(tok)
		if !ok {
			continue
		}
		key := lower.String(word)
		if ignore[key] {
			continue
		}
		n := len([]rune(word))
		if n < opts.MinLength || (opts.MaxLength > 0 && n > opts.MaxLength) {
			continue
		}
		if opts.CutLength > 0 && n > opts.CutLength {
			word = string([]rune(word)[:opts.CutLength])
			key = lower.String(word)
		}

		e, ok := counts[key]
		if !ok {
			e = &entry{first: i}
			counts[key] = e
		}
		e.text = word
		e.count++
	}

	entries := make([]*entry, 0, len(counts))
	for _, e := range counts {
		entries = append(entries, e)
	}
	slices.SortFunc(entries, func(a, b *entry) int {
		if a.count != b.count {
			return b.count - a.count
		}
		return a.first - b.first
	})
	if opts.MaxItems > 0 && len(entries) > opts.MaxItems {
		entries = entries[:opts.MaxItems]
	}

	out := make([]Word, len(entries))
	for i, e := range entries {
		out[i] = Word{Text: e.text, Count: e.count}
	}
	return out
}

// clean strips punctuation from a token and reports whether a word remains.
// Links, mentions and hashtags are dropped, as are tokens without letters.
func clean(tok string) (string, bool) {
	lt := strings.ToLower(tok)
	for _, p := range dropPrefixes {
		if strings.HasPrefix(lt, p) {
			return "", false
		}
	}
	var b strings.Builder
	letters := false
	for _, r := range tok {
		switch {
		case unicode.IsPunct(r) && r != '\'' && r != '-':
			continue
		case unicode.IsLetter(r):
			letters = true
		}
		b.WriteRune(r)
	}
	word := strings.Trim(b.String(), "'-")
	return word, letters && word != ""
}
