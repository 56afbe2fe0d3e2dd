package rules

import "strings"

// Grouping is a set of characters, such as the vowels of an alphabet.
type Grouping struct {
	chars string
}

func NewGrouping(chars string) Grouping {
	return Grouping{chars: chars}
}

// Has reports whether r is part of the grouping.
func (g Grouping) Has(r rune) bool {
	return r != 0 && strings.ContainsRune(g.chars, r)
}

// With returns a new grouping that also contains chars.
func (g Grouping) With(chars string) Grouping {
	return Grouping{chars: g.chars + chars}
}

func (g Grouping) String() string {
	return g.chars
}

// Word is the working copy of a word while a ruleset is applied to it.
// Region boundaries are computed once, before the first step, and are not
// moved when the word is rewritten.
type Word struct {
	runes  []rune
	vowels Grouping
	r1     int
	r2     int
}

// NewWord creates a working copy of word. The regions start out empty,
// i.e. at the end of the word.
func NewWord(word string, vowels Grouping) *Word {
	w := Word{
		runes:  []rune(word),
		vowels: vowels,
	}

	w.r1 = len(w.runes)
	w.r2 = len(w.runes)

	return &w
}

func (w *Word) Len() int {
	return len(w.runes)
}

// At returns the rune at i, or 0 if i is out of range.
func (w *Word) At(i int) rune {
	if i < 0 || i >= len(w.runes) {
		return 0
	}

	return w.runes[i]
}

func (w *Word) Set(i int, r rune) {
	if i < 0 || i >= len(w.runes) {
		return
	}

	w.runes[i] = r
}

// IsVowel reports whether the rune at i belongs to the vowel grouping of
// the ruleset.
func (w *Word) IsVowel(i int) bool {
	return w.vowels.Has(w.At(i))
}

// HasVowel reports whether there is a vowel in [from, to).
func (w *Word) HasVowel(from, to int) bool {
	from = max(from, 0)
	to = min(to, len(w.runes))

	for i := from; i < to; i++ {
		if w.IsVowel(i) {
			return true
		}
	}

	return false
}

func (w *Word) HasPrefix(prefix string) bool {
	i := 0

	for _, r := range prefix {
		if w.At(i) != r {
			return false
		}

		i++
	}

	return true
}

func (w *Word) HasSuffix(suffix string) bool {
	s := []rune(suffix)
	if len(s) > len(w.runes) {
		return false
	}

	off := len(w.runes) - len(s)

	for i, r := range s {
		if w.runes[off+i] != r {
			return false
		}
	}

	return true
}

// R1 returns the start of the R1 region.
func (w *Word) R1() int {
	return w.r1
}

// R2 returns the start of the R2 region.
func (w *Word) R2() int {
	return w.r2
}

// SetRegions sets the region starts, clamped to the word length.
func (w *Word) SetRegions(r1, r2 int) {
	w.r1 = clamp(r1, 0, len(w.runes))
	w.r2 = clamp(r2, w.r1, len(w.runes))
}

// Replace replaces everything from index at to the end of the word.
func (w *Word) Replace(at int, replacement string) {
	at = clamp(at, 0, len(w.runes))

	w.runes = append(w.runes[:at], []rune(replacement)...)
}

// Append adds s to the end of the word.
func (w *Word) Append(s string) {
	w.runes = append(w.runes, []rune(s)...)
}

// Truncate shortens the word to n runes.
func (w *Word) Truncate(n int) {
	w.runes = w.runes[:clamp(n, 0, len(w.runes))]
}

// Delete removes the rune at i.
func (w *Word) Delete(i int) {
	if i < 0 || i >= len(w.runes) {
		return
	}

	w.runes = append(w.runes[:i], w.runes[i+1:]...)
}

// ReplaceAll replaces every occurrence of old with r.
func (w *Word) ReplaceAll(old rune, r rune) {
	for i := range w.runes {
		if w.runes[i] == old {
			w.runes[i] = r
		}
	}
}

func (w *Word) String() string {
	return string(w.runes)
}

func (w *Word) snapshot() []rune {
	return append([]rune(nil), w.runes...)
}

func (w *Word) restore(runes []rune) {
	w.runes = runes
}

// reversed returns the word back to front, the key used for suffix
// lookups.
func (w *Word) reversed() string {
	var b strings.Builder

	b.Grow(len(w.runes))

	for i := len(w.runes) - 1; i >= 0; i-- {
		b.WriteRune(w.runes[i])
	}

	return b.String()
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
