package internal_test

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"testing"

	"github.com/jackc/puddle/v2"
	"github.com/ttab/elephant-stem/internal"
	"github.com/ttab/elephant-stem/stemmer"
	"github.com/ttab/elephantine/test"
)

func TestTextStemmer(t *testing.T) {
	stemmers := stemmer.New(stemmer.WithCacheSize(50))

	t.Cleanup(func() {
		_ = stemmers.Close()
	})

	ts, err := internal.NewTextStemmer(stemmers, 2)
	test.Must(t, err, "create text stemmer")

	t.Cleanup(ts.Close)

	cases := []struct {
		Language string
		Text     string
		Drop     bool
		Want     internal.TextResult
	}{
		{
			Language: "english",
			Text:     "The cats were running home.",
			Want: internal.TextResult{
				Language: "english",
				Text:     "the cat were run home.",
				Words:    5,
			},
		},
		{
			Language: "en",
			Text:     "The cats were running home.",
			Drop:     true,
			Want: internal.TextResult{
				Language: "english",
				Text:     "cat run home.",
				Words:    3,
				Dropped:  2,
			},
		},
		{
			Language: "english",
			Text:     "",
			Want:     internal.TextResult{Language: "english"},
		},
		{
			Language: "english",
			Text:     "2024, 42!",
			Want: internal.TextResult{
				Language: "english",
				Text:     "2024, 42!",
			},
		},
		{
			Language: "swedish",
			Text:     "Hästarna sprang.",
			Want: internal.TextResult{
				Language: "swedish",
				Text:     "häst sprang.",
				Words:    2,
			},
		},
		{
			Language: "none",
			Text:     "The cats, running.",
			Drop:     true,
			Want: internal.TextResult{
				Language: "none",
				Text:     "The cats, running.",
				Words:    3,
			},
		},
	}

	for _, c := range cases {
		t.Run(fmt.Sprintf("%s %q", c.Language, c.Text), func(t *testing.T) {
			got, err := ts.Stem(t.Context(), c.Language, c.Text, c.Drop)
			test.Must(t, err, "stem text")

			test.EqualDiff(t, c.Want, *got, "result")
		})
	}
}

func TestTextStemmerClose(t *testing.T) {
	stemmers := stemmer.New()

	t.Cleanup(func() {
		_ = stemmers.Close()
	})

	ts, err := internal.NewTextStemmer(stemmers, 2)
	test.Must(t, err, "create text stemmer")

	res, err := ts.Stem(t.Context(), "english", "running cats", false)
	test.Must(t, err, "stem text")
	test.Equal(t, "run cat", res.Text, "stemmed text")

	// Closing destroys the idle buffer that was just released.
	ts.Close()
	ts.Close()

	_, err = ts.Stem(t.Context(), "english", "running cats", false)

	test.Equal(t, true, errors.Is(err, puddle.ErrClosedPool),
		"error %v after close", err)
}

func TestTextStemmerErrors(t *testing.T) {
	stemmers := stemmer.New()

	t.Cleanup(func() {
		_ = stemmers.Close()
	})

	ts, err := internal.NewTextStemmer(stemmers, 1)
	test.Must(t, err, "create text stemmer")

	t.Cleanup(ts.Close)

	_, err = ts.Stem(t.Context(), "klingon", "qapla", false)

	test.Equal(t, true, errors.Is(err, stemmer.ErrUnknownLanguage),
		"unknown language error")

	ctx, cancel := context.WithCancel(t.Context())

	cancel()

	_, err = ts.Stem(ctx, "english", "running cats", false)

	test.Equal(t, true, errors.Is(err, context.Canceled),
		"error %v for a cancelled context", err)
}

func TestStemBatch(t *testing.T) {
	s, err := stemmer.Open("english", stemmer.WithCacheSize(0))
	test.Must(t, err, "open stemmer")

	base := []string{
		"running", "cats", "generalizations", "happily", "", "sky",
	}

	var words []string

	for i := range 2000 {
		words = append(words, base[i%len(base)])
	}

	want := make([]string, len(words))

	for i, w := range words {
		want[i] = s.Stem(w)
	}

	for _, concurrency := range []int{0, 1, 4, 32} {
		got, err := internal.StemBatch(t.Context(), s, words, concurrency)
		test.Must(t, err, "stem batch with concurrency %d", concurrency)

		if !slices.Equal(want, got) {
			t.Fatalf("concurrency %d changed the stems", concurrency)
		}
	}

	ctx, cancel := context.WithCancel(t.Context())

	cancel()

	_, err = internal.StemBatch(ctx, s, words, 4)

	test.Equal(t, true, errors.Is(err, context.Canceled),
		"error %v for a cancelled context", err)

	small, err := internal.StemBatch(ctx, s, []string{"Cats"}, 4)
	test.Must(t, err, "small batches are stemmed inline")
	test.Equal(t, "cat", strings.Join(small, ","), "small batch")
}
