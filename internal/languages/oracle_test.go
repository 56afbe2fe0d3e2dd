package languages_test

import (
	"testing"

	porterstemmer "github.com/blevesearch/go-porterstemmer"
	"github.com/kljensen/snowball/english"
	"github.com/ttab/elephantine/test"
)

var englishVocabulary = []string{
	"caresses", "ponies", "ties", "cries", "cats", "gaps", "kiwis", "class",
	"feed", "agreed", "running", "hopping", "hoping", "walked",
	"conflated", "troubled", "sized", "kneeling", "kneeled", "knitted",
	"happy", "cry", "played", "toys", "knightly", "consistency",
	"conspicuously", "conspirator", "consolations", "consolidate",
	"consonant", "consistently", "knocker", "generate", "communism",
	"databases", "knave", "machine", "constable", "constance",
	"constancy", "yummy", "consolatory", "knives", "boxes", "skies",
	"dying", "news", "inning", "innings", "herring", "succeed",
	"consign", "consigned", "consigning", "consignment", "consolingly",
	"knackeries", "kneaded", "knees", "knifes", "knobs", "knocking",
	"conspire", "conspiring", "constant",
}

func TestEnglishMatchesSnowballReference(t *testing.T) {
	algo := mustAlgorithm(t, "english")

	for _, w := range englishVocabulary {
		want := english.Stem(w, true)

		test.Equal(t, want, algo.Apply(w).Stem, "stem of %q", w)
	}
}

var porterVocabulary = []string{
	"caresses", "ponies", "ties", "caress", "cats", "feed", "agreed",
	"plastered", "bled", "motoring", "sing", "conflated", "troubled",
	"sized", "hopping", "tanned", "falling", "hissing", "fizzed",
	"failing", "filing", "happy", "sky", "relational", "conditional",
	"rational", "valenci", "hesitanci", "digitizer", "conformabli",
	"radicalli", "differentli", "vileli", "analogousli",
	"vietnamization", "predication", "operator", "feudalism",
	"decisiveness", "hopefulness", "callousness", "formaliti",
	"sensitiviti", "sensibiliti", "triplicate", "formative", "formalize",
	"electriciti", "electrical", "hopeful", "goodness", "revival",
	"allowance", "inference", "airliner", "gyroscopic", "adjustable",
	"defensible", "irritant", "replacement", "adjustment", "dependent",
	"adoption", "homologou", "communism", "activate", "angulariti",
	"homologous", "effective", "bowdlerize", "probate", "rate", "cease",
	"controlling", "roll", "generalizations", "oscillators",
}

func TestPorterMatchesReference(t *testing.T) {
	algo := mustAlgorithm(t, "porter")

	for _, w := range porterVocabulary {
		want := porterstemmer.StemString(w)

		test.Equal(t, want, algo.Apply(w).Stem, "stem of %q", w)
	}
}
