// Package assignment enriches a freshly extracted itinerary: it picks the
// airport/hotel essentials and seeds member votes from keyword presets.
package assignment

import (
	"strings"

	ahocorasick "github.com/petar-dambovaliev/aho-corasick"
	"golang.org/x/text/unicode/norm"
)

// keywordMatcher reports whether a text contains any of a fixed keyword set.
// Text and keywords are NFC-normalised so decomposed Hangul from some
// screenshots still matches.
type keywordMatcher struct {
	ac    *ahocorasick.AhoCorasick
	empty bool
}

func newKeywordMatcher(keywords []string, caseInsensitive bool) *keywordMatcher {
	patterns := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = norm.NFC.String(strings.TrimSpace(k))
		if k != "" {
			patterns = append(patterns, k)
		}
	}
	if len(patterns) == 0 {
		return &keywordMatcher{empty: true}
	}

	builder := ahocorasick.NewAhoCorasickBuilder(ahocorasick.Opts{
		AsciiCaseInsensitive: caseInsensitive,
		MatchOnlyWholeWords:  false,
		MatchKind:            ahocorasick.LeftMostFirstMatch,
		DFA:                  true,
	})
	ac := builder.Build(patterns)
	return &keywordMatcher{ac: &ac}
}

// Contains reports whether text holds at least one keyword as a substring.
func (m *keywordMatcher) Contains(text string) bool {
	if m.empty || text == "" {
		return false
	}
	return len(m.ac.FindAll(norm.NFC.String(text))) > 0
}
