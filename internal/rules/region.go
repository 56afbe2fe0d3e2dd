package rules

import "fmt"

// Region names the part of a word a suffix has to lie in.
type Region int

const (
	Anywhere Region = iota
	R1
	R2
)

func (r Region) String() string {
	switch r {
	case Anywhere:
		return "anywhere"
	case R1:
		return "R1"
	case R2:
		return "R2"
	default:
		return fmt.Sprintf("Region(%d)", int(r))
	}
}

func (r Region) valid() bool {
	return r >= Anywhere && r <= R2
}

// Start returns the index where the region starts in w.
func (r Region) Start(w *Word) int {
	switch r {
	case R1:
		return w.R1()
	case R2:
		return w.R2()
	default:
		return 0
	}
}

// Contains reports whether a suffix starting at index at lies entirely
// inside the region.
func (r Region) Contains(w *Word, at int) bool {
	return at >= r.Start(w)
}

// RegionFunc computes the R1 and R2 starts of a word.
type RegionFunc func(w *Word) (r1 int, r2 int)

// StandardRegions returns the Snowball region definition: R1 starts after
// the first non-vowel that follows a vowel, R2 is the same computation
// started at R1. A word that starts with one of the given prefixes gets
// its R1 right after the prefix instead.
func StandardRegions(prefixes ...string) RegionFunc {
	return func(w *Word) (int, int) {
		r1 := -1

		for _, p := range prefixes {
			if w.HasPrefix(p) {
				r1 = len([]rune(p))

				break
			}
		}

		if r1 < 0 {
			r1 = nextRegion(w, 0)
		}

		return r1, nextRegion(w, r1)
	}
}

// nextRegion finds the position just past the first non-vowel that follows
// a vowel, searching from the given index. Returns the word length when
// there is no such position.
func nextRegion(w *Word, from int) int {
	n := w.Len()
	i := from

	for i < n && !w.IsVowel(i) {
		i++
	}

	if i >= n {
		return n
	}

	i++

	for i < n && w.IsVowel(i) {
		i++
	}

	if i >= n {
		return n
	}

	return i + 1
}
