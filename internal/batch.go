package internal

import (
	"context"
	"errors"
	"fmt"

	"github.com/ttab/elephant-stem/stemmer"
	"golang.org/x/sync/errgroup"
)

var ErrBatchTooLarge = errors.New("batch too large")

const batchChunkSize = 256

// StemBatch stems the words using at most concurrency goroutines. The
// stems are returned in the same order as the words.
func StemBatch(
	ctx context.Context, s *stemmer.Stemmer, words []string, concurrency int,
) ([]string, error) {
	stems := make([]string, len(words))

	if len(words) <= batchChunkSize || concurrency <= 1 {
		for i, w := range words {
			stems[i] = s.Stem(w)
		}

		return stems, nil
	}

	grp, gCtx := errgroup.WithContext(ctx)

	grp.SetLimit(concurrency)

	for start := 0; start < len(words); start += batchChunkSize {
		end := min(start+batchChunkSize, len(words))

		grp.Go(func() error {
			err := gCtx.Err()
			if err != nil {
				return fmt.Errorf("stem words %d-%d: %w", start, end, err)
			}

			for i := start; i < end; i++ {
				stems[i] = s.Stem(words[i])
			}

			return nil
		})
	}

	err := grp.Wait()
	if err != nil {
		return nil, err //nolint: wrapcheck
	}

	return stems, nil
}
