package languages

import (
	"github.com/blevesearch/snowballstem"
	"github.com/blevesearch/snowballstem/arabic"
	"github.com/blevesearch/snowballstem/danish"
	"github.com/blevesearch/snowballstem/dutch"
	"github.com/blevesearch/snowballstem/finnish"
	"github.com/blevesearch/snowballstem/french"
	"github.com/blevesearch/snowballstem/german"
	"github.com/blevesearch/snowballstem/hungarian"
	"github.com/blevesearch/snowballstem/irish"
	"github.com/blevesearch/snowballstem/italian"
	"github.com/blevesearch/snowballstem/norwegian"
	"github.com/blevesearch/snowballstem/portuguese"
	"github.com/blevesearch/snowballstem/romanian"
	"github.com/blevesearch/snowballstem/russian"
	"github.com/blevesearch/snowballstem/spanish"
	"github.com/blevesearch/snowballstem/swedish"
	"github.com/blevesearch/snowballstem/tamil"
	"github.com/blevesearch/snowballstem/turkish"
	frenchstop "github.com/kljensen/snowball/french"
	russianstop "github.com/kljensen/snowball/russian"
	spanishstop "github.com/kljensen/snowball/spanish"
	swedishstop "github.com/kljensen/snowball/swedish"
	"github.com/ttab/elephant-stem/internal/rules"
	"golang.org/x/text/language"
)

// snowballAlgorithm runs a generated Snowball stemmer.
type snowballAlgorithm struct {
	name string
	stem func(env *snowballstem.Env) bool
}

func (a snowballAlgorithm) Name() string {
	return a.name
}

func (a snowballAlgorithm) Description() string {
	return "Snowball " + a.name
}

// Apply stems the word. The generated stemmers don't report which rules
// matched, so a rule is considered to have fired when the word changed.
func (a snowballAlgorithm) Apply(word string) rules.Result {
	if word == "" {
		return rules.Result{}
	}

	env := snowballstem.NewEnv(word)

	a.stem(env)

	stem := env.Current()

	return rules.Result{
		Word:  word,
		Stem:  stem,
		Fired: stem != word,
	}
}

func snowballLanguage(
	name string, tag language.Tag,
	stem func(env *snowballstem.Env) bool,
	aliases ...string,
) Language {
	algo := snowballAlgorithm{name: name, stem: stem}

	return Language{
		Name:    name,
		Aliases: aliases,
		Tag:     tag,
		algorithm: func() (Algorithm, error) {
			return algo, nil
		},
	}
}

func withStopWords(l Language, fn func(string) bool) Language {
	l.stopWords = fn

	return l
}

func snowballLanguages() []Language {
	return []Language{
		snowballLanguage("arabic", language.Arabic, arabic.Stem, "ar"),
		snowballLanguage("danish", language.Danish, danish.Stem, "da"),
		snowballLanguage("dutch", language.Dutch, dutch.Stem, "nl"),
		snowballLanguage("finnish", language.Finnish, finnish.Stem, "fi"),
		withStopWords(
			snowballLanguage("french", language.French, french.Stem, "fr"),
			frenchstop.IsStopWord),
		snowballLanguage("german", language.German, german.Stem, "de"),
		snowballLanguage("hungarian", language.Hungarian, hungarian.Stem, "hu"),
		snowballLanguage("irish", language.MustParse("ga"), irish.Stem, "ga"),
		snowballLanguage("italian", language.Italian, italian.Stem, "it"),
		snowballLanguage("norwegian", language.Norwegian, norwegian.Stem,
			"nb", "nn", "no"),
		snowballLanguage("portuguese", language.Portuguese, portuguese.Stem, "pt"),
		snowballLanguage("romanian", language.Romanian, romanian.Stem, "ro"),
		withStopWords(
			snowballLanguage("russian", language.Russian, russian.Stem, "ru"),
			russianstop.IsStopWord),
		withStopWords(
			snowballLanguage("spanish", language.Spanish, spanish.Stem, "es"),
			spanishstop.IsStopWord),
		withStopWords(
			snowballLanguage("swedish", language.Swedish, swedish.Stem, "sv"),
			swedishstop.IsStopWord),
		snowballLanguage("tamil", language.Tamil, tamil.Stem, "ta"),
		snowballLanguage("turkish", language.Turkish, turkish.Stem, "tr"),
	}
}
