// Package stemmer reduces words to their stems.
//
// A Stemmer is a handle for a single language, created with Open and
// released with Close. The Facade and the package level Stem function
// manage handles per language.
package stemmer

import (
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/ttab/elephant-stem/internal/cache"
	"github.com/ttab/elephant-stem/internal/languages"
	"github.com/ttab/elephant-stem/internal/normalize"
	"github.com/ttab/elephant-stem/internal/rules"
)

// DefaultCacheSize is the number of stems cached per handle unless
// WithCacheSize is used.
const DefaultCacheSize = 1024

// StemResult is the outcome of stemming a single word.
type StemResult = rules.Result

// Metrics are the cache counters that can be shared between handles.
type Metrics = cache.Metrics

// NewMetrics creates cache metrics registered with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m, err := cache.NewMetrics(reg)
	if err != nil {
		return nil, fmt.Errorf("create cache metrics: %w", err)
	}

	return m, nil
}

type Option func(o *options)

type options struct {
	cacheSize int
	metrics   *Metrics
	shared    *cache.Cache
}

// WithCacheSize sets the number of stems to cache. Zero disables the
// cache.
func WithCacheSize(n int) Option {
	return func(o *options) {
		o.cacheSize = n
	}
}

// WithMetrics makes the cache report to the given metrics.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

func withSharedCache(c *cache.Cache) Option {
	return func(o *options) {
		o.shared = c
	}
}

func newOptions(opts []Option) options {
	o := options{
		cacheSize: DefaultCacheSize,
	}

	for _, fn := range opts {
		fn(&o)
	}

	return o
}

// Stemmer stems words for one language. It's safe for concurrent use.
type Stemmer struct {
	lang       languages.Language
	algo       languages.Algorithm
	normalizer *normalize.Normalizer
	cache      atomic.Pointer[cache.Cache]
	ownsCache  bool
}

// Open creates a stemmer for a language name, alias or tag. An empty
// language or "none" gives a stemmer that returns words unchanged. Returns
// an error matching ErrUnknownLanguage for unknown languages.
func Open(language string, opts ...Option) (*Stemmer, error) {
	if strings.TrimSpace(language) == "" {
		language = languages.None
	}

	lang, err := languages.Select(language)
	if err != nil {
		return nil, fmt.Errorf("select language: %w", err)
	}

	algo, err := lang.Algorithm()
	if err != nil {
		return nil, fmt.Errorf("load %s stemmer: %w", lang.Name, err)
	}

	o := newOptions(opts)

	s := Stemmer{
		lang:       lang,
		algo:       algo,
		normalizer: normalizerFor(lang),
	}

	switch {
	case lang.Name == languages.None:
	case o.shared != nil:
		s.cache.Store(o.shared)
	case o.cacheSize > 0:
		var copts []cache.Option

		if o.metrics != nil {
			copts = append(copts, cache.WithMetrics(o.metrics))
		}

		s.cache.Store(cache.New(o.cacheSize, copts...))
		s.ownsCache = true
	}

	return &s, nil
}

func normalizerFor(lang languages.Language) *normalize.Normalizer {
	switch lang.Name {
	case languages.None:
		return normalize.Identity()
	case "english", "porter":
		return normalize.New(lang.Tag, normalize.WithFoldedDiacritics())
	default:
		return normalize.New(lang.Tag)
	}
}

// Language returns the name of the language of the stemmer.
func (s *Stemmer) Language() string {
	return s.lang.Name
}

// Description returns a human readable identification of the stemmer,
// "Stemmer(english)".
func (s *Stemmer) Description() string {
	return fmt.Sprintf("Stemmer(%s)", s.lang.Name)
}

// Algorithm describes the stemming algorithm in use.
func (s *Stemmer) Algorithm() string {
	return s.algo.Description()
}

// Normalize returns the word in the form that is passed to the stemming
// algorithm.
func (s *Stemmer) Normalize(word string) string {
	return s.normalizer.Word(word)
}

// Stem returns the stem of the word.
func (s *Stemmer) Stem(word string) string {
	return s.StemResult(word).Stem
}

// StemResult stems the word and reports whether any rule fired. The Word
// of the result is the normalized word.
func (s *Stemmer) StemResult(word string) StemResult {
	norm := s.normalizer.Word(word)

	if norm == "" {
		return StemResult{}
	}

	return s.cache.Load().GetOrCompute(s.lang.Name, norm, s.algo.Apply)
}

// IsStopWord reports whether the word is a stop word in the language of
// the stemmer. Always false for languages without a stop word list.
func (s *Stemmer) IsStopWord(word string) bool {
	return s.lang.IsStopWord(s.normalizer.Word(word))
}

// Close releases the cache of the stemmer. The stemmer can still be used
// after it has been closed, but without caching.
func (s *Stemmer) Close() error {
	c := s.cache.Swap(nil)

	if c != nil && s.ownsCache {
		c.Close()
	}

	return nil
}
