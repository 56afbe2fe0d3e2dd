package rules

// Result is the outcome of stemming a single word.
type Result struct {
	// Word is the input as it was given to the ruleset.
	Word string
	Stem string
	// Fired is true if an exception or at least one rule rewrote the
	// word. Identity exceptions and Keep rules match without firing.
	Fired bool
}

// Changed reports whether the stem differs from the input word.
func (r Result) Changed() bool {
	return r.Word != r.Stem
}

// Apply stems a normalized word. Apply is a pure function of the ruleset
// and the word.
func (rs *Ruleset) Apply(word string) Result {
	res := Result{
		Word: word,
		Stem: word,
	}

	if word == "" {
		return res
	}

	if stem, ok := rs.exceptions[word]; ok {
		res.Stem = stem
		res.Fired = stem != word

		return res
	}

	w := NewWord(word, rs.vowels)

	if w.Len() < rs.minWordLength {
		if len(rs.shortWord) == 0 {
			return res
		}

		res.Fired = rs.run(w, rs.shortWord)
		res.Stem = w.String()

		return res
	}

	if rs.prelude != nil {
		rs.prelude(w)
	}

	if rs.regions != nil {
		w.SetRegions(rs.regions(w))
	}

	res.Fired = rs.run(w, rs.steps)

	if rs.postlude != nil {
		rs.postlude(w)
	}

	res.Stem = w.String()

	return res
}

func (rs *Ruleset) run(w *Word, steps []*compiledStep) bool {
	var fired bool

	for _, s := range steps {
		ok, flow := rs.runStep(w, s)
		fired = fired || ok

		if flow == Stop {
			break
		}
	}

	return fired
}

// runStep applies a step and reports if a rule fired and how execution
// should proceed.
func (rs *Ruleset) runStep(w *Word, s *compiledStep) (bool, Flow) {
	var fired bool

	for {
		m := s.match(w)
		if m == nil {
			return fired, Continue
		}

		before := w.Len()

		if !rs.fire(w, s, m) {
			return fired, Continue
		}

		fired = fired || !m.rule.Keep

		flow := m.rule.Flow

		if m.then != nil {
			_, chained := rs.runStep(w, m.then)
			if chained == Stop {
				flow = Stop
			}
		}

		if flow == Repeat {
			if w.Len() < before {
				continue
			}

			flow = Continue
		}

		return fired, flow
	}
}

// match finds the longest suffix of the word that has a rule in the step
// with a passing guard.
func (s *compiledStep) match(w *Word) *compiledRule {
	var candidates []*compiledRule

	// The walk visits suffixes from the shortest to the longest.
	_ = s.index.WalkPath(w.reversed(), func(_ string, v any) error {
		r, ok := v.(*compiledRule)
		if ok {
			candidates = append(candidates, r)
		}

		return nil
	})

	for i := len(candidates) - 1; i >= 0; i-- {
		c := candidates[i]

		if c.rule.Guard != nil && !c.rule.Guard(w, w.Len()-c.length) {
			continue
		}

		return c
	}

	return nil
}

// fire checks the gates of a selected rule and rewrites the word. Returns
// false, leaving the word untouched, if the rule doesn't apply.
func (rs *Ruleset) fire(w *Word, s *compiledStep, m *compiledRule) bool {
	at := w.Len() - m.length
	rule := m.rule

	switch {
	case !s.region.Contains(w, at):
		return false
	case s.condition != nil && !s.condition(w, at):
		return false
	case !rule.Region.Contains(w, at):
		return false
	case rule.Condition != nil && !rule.Condition(w, at):
		return false
	case rule.Keep:
		return true
	}

	var saved []rune

	if rs.minStemLength > 0 {
		saved = w.snapshot()
	}

	before := w.Len()

	if rule.Action != nil {
		rule.Action(w, at)
	} else {
		w.Replace(at, rule.Replacement)
	}

	if saved != nil && w.Len() < before && w.Len() < rs.minStemLength {
		w.restore(saved)

		return false
	}

	return true
}
