package internal

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"unicode"

	"github.com/jackc/puddle/v2"
	"github.com/ttab/elephant-stem/internal/normalize"
	"github.com/ttab/elephant-stem/stemmer"
)

// TextStemmer replaces the words of a text with their stems, leaving
// whitespace and punctuation as they are.
type TextStemmer struct {
	stemmers *stemmer.Facade
	bufs     *puddle.Pool[*bytes.Buffer]
}

func NewTextStemmer(
	stemmers *stemmer.Facade, maxBuffers int32,
) (*TextStemmer, error) {
	bufs, err := puddle.NewPool(&puddle.Config[*bytes.Buffer]{
		MaxSize: max(maxBuffers, 1),
		Constructor: func(_ context.Context) (res *bytes.Buffer, err error) {
			return &bytes.Buffer{}, nil
		},
		Destructor: func(_ *bytes.Buffer) {},
	})
	if err != nil {
		return nil, fmt.Errorf("create text buffer pool: %w", err)
	}

	return &TextStemmer{
		stemmers: stemmers,
		bufs:     bufs,
	}, nil
}

type TextResult struct {
	Language string
	Text     string
	// Words is the number of word segments that were stemmed.
	Words int
	// Dropped is the number of stop words that were removed.
	Dropped int
}

// Stem stems every word of the text. When dropStopWords is set stop
// words are removed together with the whitespace that follows them.
func (ts *TextStemmer) Stem(
	ctx context.Context, language string, text string, dropStopWords bool,
) (*TextResult, error) {
	s, err := ts.stemmers.Open(language)
	if err != nil {
		return nil, err //nolint: wrapcheck
	}

	res := TextResult{
		Language: s.Language(),
	}

	if text == "" {
		return &res, nil
	}

	bufRes, err := ts.bufs.Acquire(ctx)
	if err != nil {
		return nil, fmt.Errorf("acquire buffer: %w", err)
	}

	defer bufRes.Release()

	buf := bufRes.Value()

	buf.Reset()

	var skipSpace bool

	err = normalize.EachToken([]byte(text), func(t normalize.Token) bool {
		if !t.Word {
			if !skipSpace || !isSpace(t.Text) {
				buf.WriteString(t.Text)
			}

			skipSpace = false

			return true
		}

		skipSpace = false

		if dropStopWords && s.IsStopWord(t.Text) {
			res.Dropped++
			skipSpace = true

			return true
		}

		res.Words++

		stem := s.Stem(t.Text)
		if stem == "" {
			stem = t.Text
		}

		buf.WriteString(stem)

		return ctx.Err() == nil
	})
	if err != nil {
		return nil, err //nolint: wrapcheck
	}

	if ctx.Err() != nil {
		return nil, fmt.Errorf("stem text: %w", ctx.Err())
	}

	res.Text = buf.String()

	return &res, nil
}

// Close waits for all buffers to be released.
func (ts *TextStemmer) Close() {
	ts.bufs.Close()
}

func isSpace(s string) bool {
	return strings.TrimFunc(s, unicode.IsSpace) == ""
}
