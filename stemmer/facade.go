package stemmer

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/ttab/elephant-stem/internal/cache"
	"github.com/ttab/elephant-stem/internal/languages"
)

// Facade stems words for any language, opening stemmers on demand. All
// stemmers of a facade share one cache. A Facade is safe for concurrent
// use.
type Facade struct {
	opts    []Option
	cache   *cache.Cache
	m       sync.RWMutex
	handles map[string]*Stemmer
}

// New creates a facade. WithCacheSize sets the size of the cache shared by
// all languages.
func New(opts ...Option) *Facade {
	o := newOptions(opts)

	var copts []cache.Option

	if o.metrics != nil {
		copts = append(copts, cache.WithMetrics(o.metrics))
	}

	return &Facade{
		opts:    opts,
		cache:   cache.New(o.cacheSize, copts...),
		handles: make(map[string]*Stemmer),
	}
}

// Open returns the stemmer for a language, creating it on first use. The
// stemmer is owned by the facade and must not be closed by the caller.
func (f *Facade) Open(language string) (*Stemmer, error) {
	if strings.TrimSpace(language) == "" {
		language = languages.None
	}

	lang, err := languages.Select(language)
	if err != nil {
		return nil, fmt.Errorf("select language: %w", err)
	}

	f.m.RLock()
	s, ok := f.handles[lang.Name]
	f.m.RUnlock()

	if ok {
		return s, nil
	}

	f.m.Lock()
	defer f.m.Unlock()

	s, ok = f.handles[lang.Name]
	if ok {
		return s, nil
	}

	opts := append(f.opts[:len(f.opts):len(f.opts)], withSharedCache(f.cache))

	if f.cache == nil {
		opts = append(opts, WithCacheSize(0))
	}

	s, err = Open(lang.Name, opts...)
	if err != nil {
		return nil, err
	}

	f.handles[lang.Name] = s

	return s, nil
}

// Stem returns the stem of the word in the given language.
func (f *Facade) Stem(language string, word string) (string, error) {
	s, err := f.Open(language)
	if err != nil {
		return word, err
	}

	return s.Stem(word), nil
}

// StemResult stems the word and reports whether any rule fired.
func (f *Facade) StemResult(language string, word string) (StemResult, error) {
	s, err := f.Open(language)
	if err != nil {
		return StemResult{Word: word, Stem: word}, err
	}

	return s.StemResult(word), nil
}

// Description returns the description of the stemmer for a language.
func (f *Facade) Description(language string) (string, error) {
	s, err := f.Open(language)
	if err != nil {
		return "", err
	}

	return s.Description(), nil
}

// Close closes all stemmers and releases the shared cache. The facade
// keeps working without a cache after it has been closed.
func (f *Facade) Close() error {
	f.m.Lock()
	defer f.m.Unlock()

	var errs []error

	for name, s := range f.handles {
		err := s.Close()
		if err != nil {
			errs = append(errs, fmt.Errorf("close %s stemmer: %w", name, err))
		}
	}

	clear(f.handles)

	f.cache.Close()
	f.cache = nil

	return errors.Join(errs...)
}

var defaultFacade = sync.OnceValue(func() *Facade {
	return New()
})

// Stem returns the stem of the word in the given language using a process
// wide facade. Fails only for unknown languages, in which case the word is
// returned unchanged together with an error matching ErrUnknownLanguage.
func Stem(language string, word string) (string, error) {
	return defaultFacade().Stem(language, word)
}
