package languages

import (
	"github.com/kljensen/snowball/english"
	"github.com/ttab/elephant-stem/internal/rules"
)

var englishRuleset = rulesetOnce(englishDefinition)

func englishStopWord(word string) bool {
	return english.IsStopWord(word)
}

// englishVowels are the vowels of the English rulesets. 'Y' marks a 'y'
// that acts as a consonant and is deliberately not a vowel.
const englishVowels = "aeiouy"

var (
	englishVowelsWXY = rules.NewGrouping(englishVowels).With("wxY")
	validLI          = "cdeghkmnrt"
)

// shortSyllable reports whether the first end characters of the word end
// in a short syllable: a non-vowel, a vowel and a non-vowel other than w, x
// or Y, or a vowel followed by a non-vowel at the start of the word.
func shortSyllable(w *rules.Word, end int) bool {
	last, mid := end-1, end-2
	if mid < 0 {
		return false
	}

	if !w.IsVowel(mid) || w.IsVowel(last) {
		return false
	}

	if mid == 0 {
		return true
	}

	return !w.IsVowel(mid-1) && !englishVowelsWXY.Has(w.At(last))
}

func englishDefinition() rules.Definition {
	// Re-examines the word after a past tense or gerund ending has been
	// removed.
	ingTail := rules.Step{
		Name: "1b-tail",
		Rules: []rules.Rule{
			{Suffix: "{at|bl|iz}", Action: rules.Append("e")},
			{
				Suffix: "{bb|dd|ff|gg|mm|nn|pp|rr|tt}",
				Action: rules.DropLast,
			},
			{
				Suffix: "",
				Condition: func(w *rules.Word, _ int) bool {
					return w.R1() == w.Len() &&
						shortSyllable(w, w.Len())
				},
				Action: rules.Append("e"),
			},
		},
	}

	return rules.Definition{
		Name:        "english",
		Description: "Snowball English (Porter2)",
		Vowels:      englishVowels,
		Regions:     rules.StandardRegions("gener", "commun", "arsen"),
		Exceptions: map[string]string{
			"skis":   "ski",
			"skies":  "sky",
			"dying":  "die",
			"lying":  "lie",
			"tying":  "tie",
			"idly":   "idl",
			"gently": "gentl",
			"ugly":   "ugli",
			"early":  "earli",
			"only":   "onli",
			"singly": "singl",
			"sky":    "sky",
			"news":   "news",
			"howe":   "howe",
			"atlas":  "atlas",
			"cosmos": "cosmos",
			"bias":   "bias",
			"andes":  "andes",
		},
		MinWordLength: 3,
		Prelude:       englishPrelude,
		Steps: []rules.Step{
			{
				Name: "1a-apostrophe",
				Rules: []rules.Rule{
					{Suffix: "{'|'s|'s'}"},
				},
			},
			{
				Name: "1a",
				Rules: []rules.Rule{
					{Suffix: "sses", Replacement: "ss"},
					{
						Suffix: "{ied|ies}",
						Action: func(w *rules.Word, at int) {
							if at >= 2 {
								w.Replace(at, "i")
							} else {
								w.Replace(at, "ie")
							}
						},
					},
					{
						Suffix: "s",
						Condition: func(w *rules.Word, at int) bool {
							return w.HasVowel(0, at-1)
						},
					},
					{Suffix: "{us|ss}", Keep: true},
				},
			},
			{
				Name: "exception2",
				Rules: []rules.Rule{
					{
						Suffix: "{inning|outing|canning|herring" +
							"|earring|proceed|exceed|succeed}",
						Condition: rules.AtLimit,
						Keep:      true,
						Flow:      rules.Stop,
					},
				},
			},
			{
				Name: "1b",
				Rules: []rules.Rule{
					{
						Suffix:      "{eed|eedly}",
						Region:      rules.R1,
						Replacement: "ee",
					},
					{
						Suffix:    "{ed|edly|ing|ingly}",
						Condition: rules.VowelBefore,
						Then:      &ingTail,
					},
				},
			},
			{
				Name: "1c",
				Rules: []rules.Rule{
					{
						Suffix: "{y|Y}",
						Condition: func(w *rules.Word, at int) bool {
							return at >= 2 && !w.IsVowel(at-1)
						},
						Replacement: "i",
					},
				},
			},
			{
				Name:   "2",
				Region: rules.R1,
				Rules: []rules.Rule{
					{Suffix: "tional", Replacement: "tion"},
					{Suffix: "enci", Replacement: "ence"},
					{Suffix: "anci", Replacement: "ance"},
					{Suffix: "abli", Replacement: "able"},
					{Suffix: "entli", Replacement: "ent"},
					{Suffix: "{izer|ization}", Replacement: "ize"},
					{Suffix: "{ational|ation|ator}", Replacement: "ate"},
					{Suffix: "{alism|aliti|alli}", Replacement: "al"},
					{Suffix: "fulness", Replacement: "ful"},
					{Suffix: "{ousli|ousness}", Replacement: "ous"},
					{Suffix: "{iveness|iviti}", Replacement: "ive"},
					{Suffix: "{biliti|bli}", Replacement: "ble"},
					{
						Suffix:      "ogi",
						Condition:   rules.PrecededBy("l"),
						Replacement: "og",
					},
					{Suffix: "fulli", Replacement: "ful"},
					{Suffix: "lessli", Replacement: "less"},
					{Suffix: "li", Condition: rules.PrecededBy(validLI)},
				},
			},
			{
				Name:   "3",
				Region: rules.R1,
				Rules: []rules.Rule{
					{Suffix: "tional", Replacement: "tion"},
					{Suffix: "ational", Replacement: "ate"},
					{Suffix: "alize", Replacement: "al"},
					{Suffix: "{icate|iciti|ical}", Replacement: "ic"},
					{Suffix: "{ful|ness}"},
					{Suffix: "ative", Region: rules.R2},
				},
			},
			{
				Name:   "4",
				Region: rules.R2,
				Rules: []rules.Rule{
					{
						Suffix: "{al|ance|ence|er|ic|able|ible|ant|ement" +
							"|ment|ent|ism|ate|iti|ous|ive|ize}",
					},
					{Suffix: "ion", Condition: rules.PrecededBy("st")},
				},
			},
			{
				Name: "5",
				Rules: []rules.Rule{
					{
						Suffix: "e",
						Condition: rules.Any(
							rules.InRegion(rules.R2),
							rules.All(
								rules.InRegion(rules.R1),
								func(w *rules.Word, at int) bool {
									return !shortSyllable(w, at)
								},
							),
						),
					},
					{
						Suffix:    "l",
						Region:    rules.R2,
						Condition: rules.PrecededBy("l"),
					},
				},
			},
		},
		Postlude: func(w *rules.Word) {
			w.ReplaceAll('Y', 'y')
		},
	}
}

// englishPrelude drops a leading apostrophe and marks every 'y' that acts
// as a consonant as 'Y'.
func englishPrelude(w *rules.Word) {
	if w.At(0) == '\'' {
		w.Delete(0)
	}

	if w.At(0) == 'y' {
		w.Set(0, 'Y')
	}

	for i := 1; i < w.Len(); i++ {
		if w.At(i) == 'y' && w.IsVowel(i-1) {
			w.Set(i, 'Y')
		}
	}
}
