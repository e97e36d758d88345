// Package tokenize cleans comment text and extracts frequency-ranked
// keywords. Hashtags and mentions survive every filter; everything else
// passes through the stopword and length rules.
package tokenize

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

var (
	urlRE  = regexp.MustCompile(`(?i)\bhttps?://\S+|\bwww\.\S+`)
	wordRE = regexp.MustCompile(`[#@]?[\p{L}\p{N}_]+`)
)

// StripURLs removes URL spans from text before tokenization.
func StripURLs(text string) string {
	return urlRE.ReplaceAllString(text, "")
}

// Words splits text into raw word/hashtag/mention tokens after URL
// stripping, without any stopword or length filtering.
func Words(text string) []string {
	return wordRE.FindAllString(StripURLs(text), -1)
}

// Tokenize lowercases text and returns the tokens that survive filtering:
// hashtags and mentions are kept unconditionally, purely numeric tokens,
// tokens shorter than 3 runes and stopwords are dropped.
func Tokenize(text string) []string {
	raw := wordRE.FindAllString(StripURLs(strings.ToLower(text)), -1)
	out := make([]string, 0, len(raw))
	for _, tok := range raw {
		if strings.HasPrefix(tok, "#") || strings.HasPrefix(tok, "@") {
			out = append(out, tok)
			continue
		}
		if _, stop := stopwords[tok]; stop {
			continue
		}
		if isNumeric(tok) || utf8.RuneCountInString(tok) < 3 {
			continue
		}
		out = append(out, tok)
	}
	return out
}

func isNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}

// KeywordCount is one entry of a frequency-ranked keyword list.
type KeywordCount struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// TopKeywords tokenizes every text and returns the k most frequent tokens.
// Ties keep encounter order (stable sort on descending count).
func TopKeywords(texts []string, k int) []KeywordCount {
	counts := make(map[string]int)
	order := make(map[string]int)
	for _, text := range texts {
		for _, tok := range Tokenize(text) {
			if _, seen := order[tok]; !seen {
				order[tok] = len(order)
			}
			counts[tok]++
		}
	}

	ranked := make([]KeywordCount, 0, len(counts))
	for word, n := range counts {
		ranked = append(ranked, KeywordCount{Word: word, Count: n})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}
		return order[ranked[i].Word] < order[ranked[j].Word]
	})

	if k > 0 && len(ranked) > k {
		ranked = ranked[:k]
	}
	return ranked
}
