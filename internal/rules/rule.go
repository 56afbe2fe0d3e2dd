package rules

import "fmt"

// Condition is a predicate evaluated against a word for a suffix that
// starts at index at.
type Condition func(w *Word, at int) bool

// Action rewrites a word for a suffix that starts at index at.
type Action func(w *Word, at int)

// Flow controls what happens after a rule has fired.
type Flow int

const (
	// Continue moves on to the next step.
	Continue Flow = iota
	// Repeat runs the same step again on the rewritten word, for as long
	// as the word keeps getting shorter.
	Repeat
	// Stop skips all remaining steps. The postlude still runs.
	Stop
)

func (f Flow) String() string {
	switch f {
	case Continue:
		return "continue"
	case Repeat:
		return "repeat"
	case Stop:
		return "stop"
	default:
		return fmt.Sprintf("Flow(%d)", int(f))
	}
}

func (f Flow) valid() bool {
	return f >= Continue && f <= Stop
}

// Rule is a single suffix rule.
//
// The suffix is a pattern that can use "{a|b}" groups. When a rule is
// selected as the longest matching suffix of its step its Region and
// Condition are checked; if either fails the step ends without a change.
// Guard is checked while the longest suffix is selected, so a failing
// guard lets shorter suffixes in the same step compete instead.
//
// A rule rewrites the word by replacing the suffix with Replacement, or by
// running Action. Keep marks a rule that matches without rewriting, used
// to shield suffixes from shorter rules.
type Rule struct {
	Suffix      string
	Replacement string
	Region      Region
	Guard       Condition
	Condition   Condition
	Action      Action
	Keep        bool
	// Then is run on the rewritten word right after the rule fired.
	Then *Step
	Flow Flow
}

// Step is an ordered group of rules where the longest matching suffix
// wins.
type Step struct {
	Name string
	// Region and Condition gate every rule of the step, checked against
	// the selected suffix.
	Region    Region
	Condition Condition
	Rules     []Rule
}

// Replace returns an action that replaces the suffix with s.
func Replace(s string) Action {
	return func(w *Word, at int) {
		w.Replace(at, s)
	}
}

// Append returns an action that leaves the suffix in place and appends s
// to the word.
func Append(s string) Action {
	return func(w *Word, _ int) {
		w.Append(s)
	}
}

// DropLast removes the last character of the word.
func DropLast(w *Word, _ int) {
	w.Truncate(w.Len() - 1)
}

// AtLimit holds when the suffix is the whole word.
func AtLimit(_ *Word, at int) bool {
	return at == 0
}

// VowelBefore holds when there is a vowel before the suffix.
func VowelBefore(w *Word, at int) bool {
	return w.HasVowel(0, at)
}

// InRegion returns a condition that holds when the suffix lies inside the
// region.
func InRegion(r Region) Condition {
	return func(w *Word, at int) bool {
		return r.Contains(w, at)
	}
}

// PrecededBy returns a condition that holds when the character right
// before the suffix is one of chars.
func PrecededBy(chars string) Condition {
	g := NewGrouping(chars)

	return func(w *Word, at int) bool {
		return g.Has(w.At(at - 1))
	}
}

// MinPrefix returns a condition that holds when at least n characters
// precede the suffix.
func MinPrefix(n int) Condition {
	return func(_ *Word, at int) bool {
		return at >= n
	}
}

func Not(c Condition) Condition {
	return func(w *Word, at int) bool {
		return !c(w, at)
	}
}

func All(conds ...Condition) Condition {
	return func(w *Word, at int) bool {
		for _, c := range conds {
			if !c(w, at) {
				return false
			}
		}

		return true
	}
}

func Any(conds ...Condition) Condition {
	return func(w *Word, at int) bool {
		for _, c := range conds {
			if c(w, at) {
				return true
			}
		}

		return false
	}
}
