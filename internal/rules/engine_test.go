package rules_test

import (
	"testing"

	"github.com/ttab/elephant-stem/internal/rules"
	"github.com/ttab/elephantine/test"
)

func mustRuleset(t *testing.T, def rules.Definition) *rules.Ruleset {
	t.Helper()

	if def.Name == "" {
		def.Name = t.Name()
	}

	if def.Vowels == "" {
		def.Vowels = "aeiouy"
	}

	rs, err := rules.New(def)
	test.Must(t, err, "create ruleset")

	return rs
}

func stemAll(t *testing.T, rs *rules.Ruleset, cases map[string]string) {
	t.Helper()

	for word, want := range cases {
		got := rs.Apply(word)

		test.Equal(t, want, got.Stem, "stem %q", word)
	}
}

func TestLongestSuffixWins(t *testing.T) {
	rs := mustRuleset(t, rules.Definition{
		Steps: []rules.Step{
			{
				Name: "plural",
				Rules: []rules.Rule{
					{Suffix: "s"},
					{Suffix: "es"},
					{Suffix: "ies", Replacement: "y"},
				},
			},
		},
	})

	stemAll(t, rs, map[string]string{
		"ponies": "pony",
		"boxes":  "box",
		"cats":   "cat",
		"cat":    "cat",
	})
}

func TestConditionEndsStep(t *testing.T) {
	rs := mustRuleset(t, rules.Definition{
		Steps: []rules.Step{
			{
				Name: "past",
				Rules: []rules.Rule{
					{
						Suffix:      "eed",
						Region:      rules.R1,
						Replacement: "ee",
					},
					{Suffix: "ed", Condition: rules.VowelBefore},
				},
			},
		},
		Regions: rules.StandardRegions(),
	})

	// "eed" is the longest match but lies outside R1, "ed" must not be
	// tried.
	stemAll(t, rs, map[string]string{
		"feed":    "feed",
		"agreed":  "agree",
		"jumped":  "jump",
		"shed":    "shed",
		"speeded": "speed",
	})
}

func TestGuardFallsBackToShorterSuffix(t *testing.T) {
	rs := mustRuleset(t, rules.Definition{
		Steps: []rules.Step{
			{
				Name: "past",
				Rules: []rules.Rule{
					{
						Suffix:      "eed",
						Guard:       rules.MinPrefix(2),
						Replacement: "ee",
					},
					{Suffix: "ed"},
				},
			},
		},
	})

	stemAll(t, rs, map[string]string{
		"feed":   "fe",
		"agreed": "agree",
	})
}

func TestKeepShieldsShorterSuffixes(t *testing.T) {
	rs := mustRuleset(t, rules.Definition{
		Steps: []rules.Step{
			{
				Name: "plural",
				Rules: []rules.Rule{
					{Suffix: "{ss|us}", Keep: true},
					{Suffix: "s"},
				},
			},
		},
	})

	stemAll(t, rs, map[string]string{
		"class":  "class",
		"bonus":  "bonus",
		"basket": "basket",
		"rates":  "rate",
	})

	res := rs.Apply("class")

	test.Equal(t, false, res.Fired, "kept suffix doesn't fire")
	test.Equal(t, false, res.Changed(), "kept suffix leaves the word as is")
}

func TestStopSkipsRemainingSteps(t *testing.T) {
	rs := mustRuleset(t, rules.Definition{
		Steps: []rules.Step{
			{
				Name: "exceptions",
				Rules: []rules.Rule{
					{
						Suffix:    "herring",
						Condition: rules.AtLimit,
						Keep:      true,
						Flow:      rules.Stop,
					},
				},
			},
			{
				Name: "ing",
				Rules: []rules.Rule{
					{Suffix: "ing", Condition: rules.VowelBefore},
				},
			},
		},
	})

	stemAll(t, rs, map[string]string{
		"herring":    "herring",
		"sherring":   "sherr",
		"flattering": "flatter",
	})
}

func TestRepeatRunsToFixedPoint(t *testing.T) {
	rs := mustRuleset(t, rules.Definition{
		Steps: []rules.Step{
			{
				Name: "particles",
				Rules: []rules.Rule{
					{Suffix: "{ko|pa|han}", Flow: rules.Repeat},
				},
			},
		},
	})

	stemAll(t, rs, map[string]string{
		"talohanko": "talo",
		"talopa":    "talo",
		"talo":      "talo",
	})
}

func TestRepeatStopsWhenWordDoesNotShrink(t *testing.T) {
	rs := mustRuleset(t, rules.Definition{
		Steps: []rules.Step{
			{
				Name: "swap",
				Rules: []rules.Rule{
					{Suffix: "ab", Replacement: "ba", Flow: rules.Repeat},
				},
			},
		},
	})

	stemAll(t, rs, map[string]string{
		"xxab": "xxba",
	})
}

func TestThenSeesRewrittenWord(t *testing.T) {
	tail := rules.Step{
		Name: "tail",
		Rules: []rules.Rule{
			{Suffix: "{at|iz}", Action: rules.Append("e")},
			{Suffix: "{nn|pp|tt}", Action: rules.DropLast},
		},
	}

	rs := mustRuleset(t, rules.Definition{
		Steps: []rules.Step{
			{
				Name: "ing",
				Rules: []rules.Rule{
					{
						Suffix:    "{ed|ing}",
						Condition: rules.VowelBefore,
						Then:      &tail,
					},
				},
			},
		},
	})

	stemAll(t, rs, map[string]string{
		"running":   "run",
		"conflated": "conflate",
		"sized":     "size",
		"jumping":   "jump",
		"bring":     "bring",
	})
}

func TestMinStemLength(t *testing.T) {
	rs := mustRuleset(t, rules.Definition{
		MinStemLength: 3,
		Steps: []rules.Step{
			{
				Name: "ing",
				Rules: []rules.Rule{
					{Suffix: "ing"},
				},
			},
			{
				Name: "y",
				Rules: []rules.Rule{
					{Suffix: "y", Replacement: "i"},
				},
			},
		},
	})

	stemAll(t, rs, map[string]string{
		"singing": "sing",
		"bring":   "bring",
		"sing":    "sing",
		// Same-length rewrites are always allowed.
		"sy": "si",
	})

	res := rs.Apply("bring")

	test.Equal(t, false, res.Fired, "refused rule doesn't fire")
}

func TestStepRegionGate(t *testing.T) {
	rs := mustRuleset(t, rules.Definition{
		Regions: rules.StandardRegions(),
		Steps: []rules.Step{
			{
				Name:   "derivational",
				Region: rules.R2,
				Rules: []rules.Rule{
					{Suffix: "{ment|ness}"},
				},
			},
		},
	})

	stemAll(t, rs, map[string]string{
		"adjustment": "adjust",
		"cement":     "cement",
		"goodness":   "goodness",
		"cleverness": "clever",
	})
}

func TestExceptionsAndShortWords(t *testing.T) {
	rs := mustRuleset(t, rules.Definition{
		MinWordLength: 3,
		Exceptions: map[string]string{
			"news": "news",
			"skis": "ski",
		},
		ShortWord: []rules.Step{
			{
				Name: "short",
				Rules: []rules.Rule{
					{Suffix: "s", Guard: rules.MinPrefix(1)},
				},
			},
		},
		Steps: []rules.Step{
			{
				Name: "plural",
				Rules: []rules.Rule{
					{Suffix: "s"},
				},
			},
		},
	})

	stemAll(t, rs, map[string]string{
		"":     "",
		"news": "news",
		"skis": "ski",
		"as":   "a",
		"s":    "s",
		"cats": "cat",
	})

	res := rs.Apply("news")

	test.Equal(t, false, res.Fired, "identity exception doesn't fire")

	res = rs.Apply("skis")

	test.Equal(t, true, res.Fired, "rewriting exception fires")
}

func TestSingleCharacterClassWords(t *testing.T) {
	rs := mustRuleset(t, rules.Definition{
		Vowels:  "aeiou",
		Regions: rules.StandardRegions(),
		Steps: []rules.Step{
			{
				Name:   "strip",
				Region: rules.R1,
				Rules: []rules.Rule{
					{Suffix: "{m|u|y}"},
				},
			},
		},
	})

	stemAll(t, rs, map[string]string{
		"rhythm": "rhythm",
		"aeiou":  "aeiou",
		"zzz":    "zzz",
		"eau":    "eau",
	})
}

func TestPreludeAndPostlude(t *testing.T) {
	rs := mustRuleset(t, rules.Definition{
		Prelude: func(w *rules.Word) {
			if w.At(0) == 'y' {
				w.Set(0, 'Y')
			}
		},
		Steps: []rules.Step{
			{
				Name: "y",
				Rules: []rules.Rule{
					{Suffix: "y", Replacement: "i"},
				},
			},
		},
		Postlude: func(w *rules.Word) {
			w.ReplaceAll('Y', 'y')
		},
	})

	stemAll(t, rs, map[string]string{
		"yummy": "yummi",
		"you":   "you",
	})
}

func TestApplyIsPure(t *testing.T) {
	tail := rules.Step{
		Name: "tail",
		Rules: []rules.Rule{
			{Suffix: "{nn|pp|tt}", Action: rules.DropLast},
		},
	}

	rs := mustRuleset(t, rules.Definition{
		Steps: []rules.Step{
			{
				Name: "ing",
				Rules: []rules.Rule{
					{Suffix: "ing", Then: &tail},
				},
			},
		},
	})

	first := rs.Apply("hopping")

	for _, w := range []string{"running", "sitting", "hopping", "x"} {
		_ = rs.Apply(w)
	}

	test.EqualDiff(t, first, rs.Apply("hopping"),
		"same result after unrelated calls")
	test.EqualDiff(t, rules.Result{
		Word:  "hopping",
		Stem:  "hop",
		Fired: true,
	}, first, "result for 'hopping'")
}
