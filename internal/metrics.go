package internal

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

type serviceMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	words    *prometheus.CounterVec
	texts    *prometheus.CounterVec
}

func newServiceMetrics(reg prometheus.Registerer) (*serviceMetrics, error) {
	m := serviceMetrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stem_http_requests_total",
			Help: "Number of HTTP requests by route and status.",
		}, []string{"route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "stem_http_request_duration_seconds",
			Help:    "HTTP request duration by route.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		}, []string{"route"}),
		words: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stem_words_total",
			Help: "Number of words stemmed through the batch endpoint.",
		}, []string{"language"}),
		texts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "stem_texts_total",
			Help: "Number of texts stemmed.",
		}, []string{"language"}),
	}

	collectors := map[string]prometheus.Collector{
		"requests": m.requests,
		"duration": m.duration,
		"words":    m.words,
		"texts":    m.texts,
	}

	for name, c := range collectors {
		err := reg.Register(c)
		if err != nil {
			return nil, fmt.Errorf("register %s metric: %w", name, err)
		}
	}

	return &m, nil
}
