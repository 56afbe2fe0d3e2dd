package languages_test

import (
	"testing"
	"unicode/utf8"

	"github.com/ttab/elephant-stem/internal/languages"
	"github.com/ttab/elephantine/test"
)

func mustAlgorithm(t *testing.T, name string) languages.Algorithm {
	t.Helper()

	lang, err := languages.Select(name)
	test.Must(t, err, "select %q", name)

	algo, err := lang.Algorithm()
	test.Must(t, err, "build %q algorithm", name)

	return algo
}

type stemCase struct {
	Word string
	Stem string
}

func runStemCases(t *testing.T, algo languages.Algorithm, cases []stemCase) {
	t.Helper()

	for _, c := range cases {
		res := algo.Apply(c.Word)

		test.Equal(t, c.Stem, res.Stem, "stem of %q", c.Word)
	}
}

func TestEnglishSteps(t *testing.T) {
	algo := mustAlgorithm(t, "english")

	groups := map[string][]stemCase{
		"short words": {
			{"", ""},
			{"a", "a"},
			{"is", "is"},
			{"sky", "sky"},
		},
		"exceptions": {
			{"skies", "sky"},
			{"dying", "die"},
			{"lying", "lie"},
			{"news", "news"},
			{"gently", "gentl"},
			{"only", "onli"},
			{"andes", "andes"},
		},
		"1a": {
			{"caresses", "caress"},
			{"ponies", "poni"},
			{"ties", "tie"},
			{"cries", "cri"},
			{"cats", "cat"},
			{"gas", "gas"},
			{"gaps", "gap"},
			{"kiwis", "kiwi"},
			{"class", "class"},
			{"consensus", "consensus"},
			{"cat's", "cat"},
			{"dogs'", "dog"},
		},
		"exception2": {
			{"inning", "inning"},
			{"herring", "herring"},
			{"succeed", "succeed"},
			{"innings", "inning"},
		},
		"1b": {
			{"feed", "feed"},
			{"agreed", "agre"},
			{"running", "run"},
			{"hopping", "hop"},
			{"hoping", "hope"},
			{"walked", "walk"},
			{"conflated", "conflat"},
			{"troubled", "troubl"},
			{"sized", "size"},
			{"kneeling", "kneel"},
			{"kneeled", "kneel"},
			{"knitted", "knit"},
			{"consolingly", "consol"},
			{"bring", "bring"},
		},
		"1c": {
			{"happy", "happi"},
			{"cry", "cri"},
			{"by", "by"},
			{"say", "say"},
			{"played", "play"},
			{"toys", "toy"},
		},
		"2": {
			{"knightly", "knight"},
			{"consistency", "consist"},
			{"conspicuously", "conspicu"},
			{"conspirator", "conspir"},
			{"consolations", "consol"},
		},
		"3 and 4": {
			{"consolidate", "consolid"},
			{"consonant", "conson"},
			{"consistently", "consist"},
			{"knocker", "knocker"},
			{"generate", "generat"},
			{"communism", "communism"},
			{"databases", "databas"},
		},
		"5": {
			{"knave", "knave"},
			{"machine", "machin"},
			{"constable", "constabl"},
			{"constance", "constanc"},
			{"constancy", "constanc"},
		},
		"y marking": {
			{"yummy", "yummi"},
			{"consolatory", "consolatori"},
			{"knives", "knive"},
			{"boxes", "box"},
		},
	}

	for name, cases := range groups {
		t.Run(name, func(t *testing.T) {
			runStemCases(t, algo, cases)
		})
	}
}

func TestEnglishNeverGrowsBeyondReplacements(t *testing.T) {
	algo := mustAlgorithm(t, "english")

	words := []string{
		"running", "caresses", "conflated", "hoping", "happily",
		"relational", "conditional", "generalizations", "oscillators",
		"knackeries", "consolingly", "rhythm", "aeiou", "zzz", "y",
		"yyyyy", "'''", "eedly", "ingly", "sized",
	}

	for _, w := range words {
		res := algo.Apply(w)

		// The 1b tail may put back an 'e' after removing "ed" or "ing",
		// so a stem is never longer than its word.
		if utf8.RuneCountInString(res.Stem) > utf8.RuneCountInString(w) {
			t.Errorf("stem %q is longer than %q", res.Stem, w)
		}
	}
}

func TestEnglishIsPure(t *testing.T) {
	algo := mustAlgorithm(t, "english")

	first := algo.Apply("generalizations")

	for _, w := range []string{"yummy", "running", "skies", "herring"} {
		_ = algo.Apply(w)
	}

	test.EqualDiff(t, first, algo.Apply("generalizations"),
		"same result after unrelated calls")
}
