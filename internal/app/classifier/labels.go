package classifier

import (
	"strings"

	"github.com/samber/lo"
)

// Label is a species name from the closed vocabulary, or Unknown.
type Label string

const (
	Dog      Label = "dog"
	Cat      Label = "cat"
	Bird     Label = "bird"
	Lion     Label = "lion"
	Elephant Label = "elephant"

	// Unknown is the fallback label. It is never part of the vocabulary.
	Unknown Label = "unknown"
)

// DefaultVocabulary is the ordered label set indexed by `channel mod V`.
func DefaultVocabulary() []Label {
	return []Label{Dog, Cat, Bird, Lion, Elephant}
}

// ParseLabel normalizes s into a label. Anything outside vocab is Unknown.
func ParseLabel(s string, vocab []Label) Label {
	l := Label(strings.ToLower(strings.TrimSpace(s)))
	if lo.Contains(vocab, l) {
		return l
	}
	return Unknown
}

// LabelStrings converts labels for transport.
func LabelStrings(labels []Label) []string {
	return lo.Map(labels, func(l Label, _ int) string { return string(l) })
}
