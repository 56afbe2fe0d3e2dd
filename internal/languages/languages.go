// Package languages resolves language identifiers to stemming algorithms.
package languages

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/ttab/elephant-stem/internal/rules"
	"golang.org/x/text/language"
)

// ErrUnknownLanguage is matched by errors for identifiers that don't
// resolve to a language.
var ErrUnknownLanguage = errors.New("unknown language")

// UnknownLanguageError is returned when an identifier doesn't resolve to a
// language.
type UnknownLanguageError struct {
	Identifier string
}

func (e *UnknownLanguageError) Error() string {
	return fmt.Sprintf("unknown language %q", e.Identifier)
}

func (e *UnknownLanguageError) Is(target error) bool {
	return target == ErrUnknownLanguage
}

// Algorithm stems normalized words for a language.
type Algorithm interface {
	Name() string
	Description() string
	Apply(word string) rules.Result
}

// None is the name of the identity language.
const None = "none"

// Language is an entry in the language registry.
type Language struct {
	Name    string
	Aliases []string
	// Tag is used for language aware case mapping.
	Tag language.Tag
	// Native is set for languages implemented as rule engine rulesets.
	Native bool

	algorithm func() (Algorithm, error)
	stopWords func(word string) bool
}

// Algorithm returns the stemming algorithm of the language. Native
// rulesets are built and validated on first use.
func (l Language) Algorithm() (Algorithm, error) {
	return l.algorithm()
}

// HasStopWords reports whether a stop word list is available for the
// language.
func (l Language) HasStopWords() bool {
	return l.stopWords != nil
}

// IsStopWord checks the normalized word against the stop word list of the
// language. Always false for languages without a list.
func (l Language) IsStopWord(word string) bool {
	if l.stopWords == nil {
		return false
	}

	return l.stopWords(word)
}

var (
	registry = sync.OnceValue(buildRegistry)
	byName   = sync.OnceValue(func() map[string]Language {
		m := make(map[string]Language)

		for _, l := range registry() {
			m[l.Name] = l

			for _, a := range l.Aliases {
				m[a] = l
			}
		}

		return m
	})
)

// Select resolves a language name, alias, ISO 639 code or BCP 47 tag.
// Matching ignores case and surrounding whitespace. Returns an error
// matching ErrUnknownLanguage if no language matches.
func Select(identifier string) (Language, error) {
	key := strings.ReplaceAll(
		strings.ToLower(strings.TrimSpace(identifier)),
		"_", "-")

	l, ok := byName()[key]
	if ok {
		return l, nil
	}

	// Only accept tags that name their base language, "und-SE" and the
	// like would otherwise be guessed from the region.
	tag, err := language.Parse(key)
	if key != "" && err == nil {
		base, conf := tag.Base()
		if conf == language.Exact {
			l, ok := byName()[base.String()]
			if ok {
				return l, nil
			}
		}
	}

	return Language{}, &UnknownLanguageError{Identifier: identifier}
}

// List returns all known languages sorted by name.
func List() []Language {
	list := slices.Clone(registry())

	slices.SortFunc(list, func(a, b Language) int {
		return strings.Compare(a.Name, b.Name)
	})

	return list
}

// Validate builds every native ruleset, returning the first construction
// error.
func Validate() error {
	for _, l := range registry() {
		if !l.Native {
			continue
		}

		_, err := l.Algorithm()
		if err != nil {
			return fmt.Errorf("build %s ruleset: %w", l.Name, err)
		}
	}

	return nil
}

func buildRegistry() []Language {
	langs := []Language{
		{
			Name:      "english",
			Aliases:   []string{"en"},
			Tag:       language.English,
			Native:    true,
			algorithm: englishRuleset,
			stopWords: englishStopWord,
		},
		{
			Name:      "porter",
			Tag:       language.English,
			Native:    true,
			algorithm: porterRuleset,
			stopWords: englishStopWord,
		},
		{
			Name:      None,
			Tag:       language.Und,
			algorithm: identityAlgorithm,
		},
	}

	return append(langs, snowballLanguages()...)
}

var identityAlgorithm = func() (Algorithm, error) {
	return identity{}, nil
}

// identity leaves all words unchanged.
type identity struct{}

func (identity) Name() string {
	return None
}

func (identity) Description() string {
	return "identity, words are left unchanged"
}

func (identity) Apply(word string) rules.Result {
	return rules.Result{Word: word, Stem: word}
}

// rulesetOnce builds a native ruleset on first use.
func rulesetOnce(def func() rules.Definition) func() (Algorithm, error) {
	return sync.OnceValues(func() (Algorithm, error) {
		rs, err := rules.New(def())
		if err != nil {
			return nil, err //nolint: wrapcheck
		}

		return rs, nil
	})
}
