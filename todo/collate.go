package todo

import (
	"strings"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// titleComparator orders titles with en-US collation, ignoring case,
// diacritics and punctuation. Byte ordering is deliberately not used: it
// splits "Buy milk" and "buy Bread" onto opposite ends of the list.
type titleComparator struct {
	c *collate.Collator
}

// newTitleComparator builds a comparator for the given locale. Collators
// carry an internal buffer and are not safe for concurrent use, so each sort
// gets its own instance.
func newTitleComparator(tag language.Tag) *titleComparator {
	return &titleComparator{c: collate.New(tag, collate.Loose)}
}

func (tc *titleComparator) Compare(a, b string) int {
	return tc.c.CompareString(stripPunctuation(a), stripPunctuation(b))
}

func stripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) {
			return -1
		}
		return r
	}, s)
}
