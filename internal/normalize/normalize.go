// Package normalize prepares words and text for stemming.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Normalizer brings words to the form a language's stemming algorithm
// expects. A Normalizer is safe for concurrent use.
type Normalizer struct {
	tag            language.Tag
	foldDiacritics bool
	identity       bool
}

type Option func(n *Normalizer)

// WithFoldedDiacritics makes the normalizer strip diacritics, turning
// "café" into "cafe".
func WithFoldedDiacritics() Option {
	return func(n *Normalizer) {
		n.foldDiacritics = true
	}
}

// New creates a normalizer that uses the case mapping rules of the given
// language.
func New(tag language.Tag, opts ...Option) *Normalizer {
	n := Normalizer{
		tag: tag,
	}

	for _, o := range opts {
		o(&n)
	}

	return &n
}

// Identity returns a normalizer that leaves words unchanged.
func Identity() *Normalizer {
	return &Normalizer{
		tag:      language.Und,
		identity: true,
	}
}

var apostrophes = strings.NewReplacer(
	"‘", "'",
	"’", "'",
	"‛", "'",
	"`", "'",
	"´", "'",
)

// Word normalizes a single word: lower cases it, composes it to NFC, maps
// apostrophe variants to "'", optionally folds diacritics and strips
// leading and trailing characters that aren't letters, digits or marks.
// Normalizing an already normalized word doesn't change it.
func (n *Normalizer) Word(word string) string {
	if n.identity || word == "" {
		return word
	}

	// Casers keep state and can't be shared between goroutines.
	s := cases.Lower(n.tag).String(word)

	s = norm.NFC.String(s)
	s = apostrophes.Replace(s)

	if n.foldDiacritics {
		folded, _, err := transform.String(transform.Chain(
			norm.NFD,
			runes.Remove(runes.In(unicode.Mn)),
			norm.NFC,
		), s)
		if err == nil {
			s = folded
		}
	}

	return strings.TrimFunc(s, isEdge)
}

func isEdge(r rune) bool {
	return !unicode.IsLetter(r) && !unicode.IsDigit(r) && !unicode.IsMark(r)
}
