package generator

import (
	"github.com/samber/lo"

	"habla-jungla/internal/app/classifier"
)

// DefaultFallbackTemplate frames labels without a template of their own.
const DefaultFallbackTemplate = "An animal says: "

// Templates maps labels to the prompt prefix a completion is seeded with.
type Templates struct {
	ByLabel  map[classifier.Label]string
	Fallback string
}

// DefaultTemplates returns one framing phrase per default label.
func DefaultTemplates() Templates {
	return Templates{
		ByLabel: map[classifier.Label]string{
			classifier.Dog:      "A playful dog says: ",
			classifier.Cat:      "A sassy cat declares: ",
			classifier.Bird:     "A chatty bird announces: ",
			classifier.Lion:     "A majestic lion proclaims: ",
			classifier.Elephant: "A wise elephant shares: ",
		},
		Fallback: DefaultFallbackTemplate,
	}
}

// Prompt returns the prefix for label, or the fallback.
func (t Templates) Prompt(label classifier.Label) string {
	if p, ok := t.ByLabel[label]; ok && p != "" {
		return p
	}
	if t.Fallback == "" {
		return DefaultFallbackTemplate
	}
	return t.Fallback
}

// AsStrings returns the templates keyed by label name.
func (t Templates) AsStrings() map[string]string {
	return lo.MapKeys(t.ByLabel, func(_ string, l classifier.Label) string { return string(l) })
}
