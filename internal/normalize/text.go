package normalize

import (
	"bytes"
	"fmt"

	"github.com/blevesearch/segment"
)

// Token is a segment of a text. Concatenating the tokens of a text gives
// back the original text.
type Token struct {
	Text string
	// Word is set for segments that contain letters or ideographs.
	Word bool
}

// Tokenize splits text into word and non-word segments following the
// Unicode word boundary rules.
func Tokenize(text []byte) ([]Token, error) {
	var tokens []Token

	err := EachToken(text, func(t Token) bool {
		tokens = append(tokens, t)

		return true
	})
	if err != nil {
		return nil, err
	}

	return tokens, nil
}

// EachToken calls fn for every segment of the text until fn returns false.
func EachToken(text []byte, fn func(t Token) bool) error {
	seg := segment.NewWordSegmenter(bytes.NewReader(text))

	for seg.Segment() {
		t := Token{
			Text: seg.Text(),
			Word: isWordType(seg.Type()),
		}

		if !fn(t) {
			return nil
		}
	}

	err := seg.Err()
	if err != nil {
		return fmt.Errorf("split into words: %w", err)
	}

	return nil
}

func isWordType(t int) bool {
	switch t {
	case segment.Letter, segment.Kana, segment.Ideo:
		return true
	default:
		return false
	}
}
