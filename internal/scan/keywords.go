package scan

import (
	"regexp"
	"strings"

	"github.com/jrgordon/spreadscan/internal/domain"
)

// minTokenLen is the shortest base token kept by Keywords; anything at or
// below this length is dropped as noise ("in", "of", "vs").
const minTokenLen = 2

var nonAlnumSpace = regexp.MustCompile(`[^a-z0-9\s]`)

// compoundMarkers are domain terms recognized in the raw lowercased title,
// before punctuation stripping. Each variant hit adds the normalized token to
// the set ("presidential" yields "president", "win"/"winner" yield "winner").
var compoundMarkers = []struct {
	token    string
	variants []string
}{
	{"trump", []string{"trump"}},
	{"biden", []string{"biden"}},
	{"harris", []string{"harris"}},
	{"president", []string{"president", "presidential"}},
	{"election", []string{"election"}},
	{"2024", []string{"2024"}},
	{"2025", []string{"2025"}},
	{"winner", []string{"win", "winner"}},
}

// Keywords turns a free-text market title into a normalized token set: the
// title is lowercased, every rune outside [a-z0-9\s] becomes a space, tokens
// of length <= 2 are dropped, and any compound markers found in the raw
// lowercased text are unioned in. Pure and total; empty text yields an empty
// set.
func Keywords(text string) domain.KeywordSet {
	set := make(domain.KeywordSet)
	lower := strings.ToLower(text)

	stripped := nonAlnumSpace.ReplaceAllString(lower, " ")
	for _, tok := range strings.Fields(stripped) {
		if len(tok) <= minTokenLen {
			continue
		}
		set.Add(tok)
	}

	for _, m := range compoundMarkers {
		for _, v := range m.variants {
			if strings.Contains(lower, v) {
				set.Add(m.token)
				break
			}
		}
	}

	return set
}

// CanonicalKey reduces a display name to its canonical comparison form:
// lowercased, non-alphanumeric-non-space runes removed, whitespace collapsed
// to single spaces, trimmed.
func CanonicalKey(name string) string {
	lower := strings.ToLower(name)
	stripped := nonAlnumSpace.ReplaceAllString(lower, "")
	return strings.Join(strings.Fields(stripped), " ")
}
