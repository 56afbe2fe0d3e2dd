package cache

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the counters reported by caches, labelled by ruleset.
type Metrics struct {
	hits      *prometheus.CounterVec
	misses    *prometheus.CounterVec
	evictions *prometheus.CounterVec
}

// NewMetrics creates the cache counters and registers them with reg. Uses
// the already registered counters if another cache registered them first.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	hits, err := registerCounter(reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stem_cache_hits_total",
			Help: "Number of stems served from the cache.",
		},
		[]string{"ruleset"},
	))
	if err != nil {
		return nil, err
	}

	misses, err := registerCounter(reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stem_cache_misses_total",
			Help: "Number of stems that had to be computed.",
		},
		[]string{"ruleset"},
	))
	if err != nil {
		return nil, err
	}

	evictions, err := registerCounter(reg, prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stem_cache_evictions_total",
			Help: "Number of cached stems evicted to stay within capacity.",
		},
		[]string{"ruleset"},
	))
	if err != nil {
		return nil, err
	}

	return &Metrics{
		hits:      hits,
		misses:    misses,
		evictions: evictions,
	}, nil
}

func registerCounter(
	reg prometheus.Registerer, c *prometheus.CounterVec,
) (*prometheus.CounterVec, error) {
	err := reg.Register(c)

	var are prometheus.AlreadyRegisteredError

	switch {
	case errors.As(err, &are):
		existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
		if !ok {
			return nil, fmt.Errorf(
				"metric already registered with another type: %w", err)
		}

		return existing, nil
	case err != nil:
		return nil, fmt.Errorf("register metric: %w", err)
	}

	return c, nil
}
