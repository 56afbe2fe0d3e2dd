package rules

import (
	"errors"
	"fmt"
	"strings"
)

// ExpandPattern turns a suffix pattern with "{a|b}" alternation groups into
// the list of suffixes it stands for, in declaration order. "{ed|ing}ly"
// gives "edly" and "ingly". Groups can't be nested.
func ExpandPattern(pattern string) ([]string, error) {
	var (
		groups [][]string
		buf    strings.Builder
		open   bool
	)

	for i, r := range pattern {
		switch r {
		case '{':
			if open {
				return nil, fmt.Errorf("nested group at position %d", i)
			}

			if buf.Len() > 0 {
				groups = append(groups, []string{buf.String()})
				buf.Reset()
			}

			open = true
		case '}':
			if !open {
				return nil, fmt.Errorf("unexpected '}' at position %d", i)
			}

			groups = append(groups, strings.Split(buf.String(), "|"))
			buf.Reset()

			open = false
		case '|':
			if !open {
				return nil, fmt.Errorf("'|' outside of a group at position %d", i)
			}

			buf.WriteRune(r)
		default:
			buf.WriteRune(r)
		}
	}

	if open {
		return nil, errors.New("unclosed group at end of pattern")
	}

	if buf.Len() > 0 {
		groups = append(groups, []string{buf.String()})
	}

	suffixes := []string{""}

	for _, alternatives := range groups {
		next := make([]string, 0, len(suffixes)*len(alternatives))

		for _, head := range suffixes {
			for _, alt := range alternatives {
				next = append(next, head+alt)
			}
		}

		suffixes = next
	}

	return suffixes, nil
}
