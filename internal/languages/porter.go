package languages

import (
	"github.com/ttab/elephant-stem/internal/rules"
)

var porterRuleset = rulesetOnce(porterDefinition)

// Porter treats 'y' as a vowel when it follows a consonant, so the vowel
// tests below don't use the grouping of the word.

func porterConsonant(w *rules.Word, i int) bool {
	switch w.At(i) {
	case 'a', 'e', 'i', 'o', 'u':
		return false
	case 'y':
		return i == 0 || !porterConsonant(w, i-1)
	default:
		return true
	}
}

// porterMeasure counts the vowel-consonant sequences in the first end
// characters of the word, the m in [C](VC){m}[V].
func porterMeasure(w *rules.Word, end int) int {
	var m int

	i := 0

	for i < end && porterConsonant(w, i) {
		i++
	}

	for i < end {
		for i < end && !porterConsonant(w, i) {
			i++
		}

		if i >= end {
			break
		}

		for i < end && porterConsonant(w, i) {
			i++
		}

		m++
	}

	return m
}

// porterVowelIn is the *v* condition, the stem contains a vowel.
func porterVowelIn(w *rules.Word, at int) bool {
	for i := range at {
		if !porterConsonant(w, i) {
			return true
		}
	}

	return false
}

// porterCVC is the *o condition, the first end characters of the word end
// consonant-vowel-consonant where the last consonant isn't w, x or y.
func porterCVC(w *rules.Word, end int) bool {
	if end < 3 {
		return false
	}

	switch w.At(end - 1) {
	case 'w', 'x', 'y':
		return false
	}

	return porterConsonant(w, end-3) &&
		!porterConsonant(w, end-2) &&
		porterConsonant(w, end-1)
}

func measureAbove(n int) rules.Condition {
	return func(w *rules.Word, at int) bool {
		return porterMeasure(w, at) > n
	}
}

func porterDefinition() rules.Definition {
	ingTail := rules.Step{
		Name: "1b-tail",
		Rules: []rules.Rule{
			{Suffix: "{at|bl|iz}", Action: rules.Append("e")},
			{
				Suffix: "{bb|cc|dd|ff|gg|hh|jj|kk|mm|nn|pp|qq|rr|tt|vv|ww|xx}",
				Action: rules.DropLast,
			},
			{
				Suffix: "",
				Condition: func(w *rules.Word, at int) bool {
					return porterMeasure(w, at) == 1 && porterCVC(w, at)
				},
				Action: rules.Append("e"),
			},
		},
	}

	return rules.Definition{
		Name:          "porter",
		Description:   "Porter (1980) with the Snowball bli and logi changes",
		Vowels:        "aeiou",
		MinWordLength: 3,
		Steps: []rules.Step{
			{
				Name: "1a",
				Rules: []rules.Rule{
					{Suffix: "sses", Replacement: "ss"},
					{Suffix: "ies", Replacement: "i"},
					{Suffix: "ss", Keep: true},
					{Suffix: "s"},
				},
			},
			{
				Name: "1b",
				Rules: []rules.Rule{
					{
						Suffix:      "eed",
						Condition:   measureAbove(0),
						Replacement: "ee",
					},
					{
						Suffix:    "{ed|ing}",
						Condition: porterVowelIn,
						Then:      &ingTail,
					},
				},
			},
			{
				Name: "1c",
				Rules: []rules.Rule{
					{
						Suffix:      "y",
						Condition:   porterVowelIn,
						Replacement: "i",
					},
				},
			},
			{
				Name:      "2",
				Condition: measureAbove(0),
				Rules: []rules.Rule{
					{Suffix: "ational", Replacement: "ate"},
					{Suffix: "tional", Replacement: "tion"},
					{Suffix: "enci", Replacement: "ence"},
					{Suffix: "anci", Replacement: "ance"},
					{Suffix: "izer", Replacement: "ize"},
					{Suffix: "bli", Replacement: "ble"},
					{Suffix: "alli", Replacement: "al"},
					{Suffix: "entli", Replacement: "ent"},
					{Suffix: "eli", Replacement: "e"},
					{Suffix: "ousli", Replacement: "ous"},
					{Suffix: "ization", Replacement: "ize"},
					{Suffix: "{ation|ator}", Replacement: "ate"},
					{Suffix: "{alism|aliti}", Replacement: "al"},
					{Suffix: "{iveness|iviti}", Replacement: "ive"},
					{Suffix: "fulness", Replacement: "ful"},
					{Suffix: "ousness", Replacement: "ous"},
					{Suffix: "biliti", Replacement: "ble"},
					{Suffix: "logi", Replacement: "log"},
				},
			},
			{
				Name:      "3",
				Condition: measureAbove(0),
				Rules: []rules.Rule{
					{Suffix: "{icate|iciti|ical}", Replacement: "ic"},
					{Suffix: "{ative|ful|ness}"},
					{Suffix: "alize", Replacement: "al"},
				},
			},
			{
				Name:      "4",
				Condition: measureAbove(1),
				Rules: []rules.Rule{
					{
						Suffix: "{al|ance|ence|er|ic|able|ible|ant|ement" +
							"|ment|ent|ou|ism|ate|iti|ous|ive|ize}",
					},
					{Suffix: "ion", Condition: rules.PrecededBy("st")},
				},
			},
			{
				Name: "5a",
				Rules: []rules.Rule{
					{
						Suffix: "e",
						Condition: func(w *rules.Word, at int) bool {
							m := porterMeasure(w, at)

							return m > 1 || (m == 1 && !porterCVC(w, at))
						},
					},
				},
			},
			{
				Name: "5b",
				Rules: []rules.Rule{
					{
						Suffix: "ll",
						Condition: func(w *rules.Word, _ int) bool {
							return porterMeasure(w, w.Len()) > 1
						},
						Action: rules.DropLast,
					},
				},
			},
		},
	}
}
