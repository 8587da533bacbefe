package mpath

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type searchOutcome uint8

const (
	outcomeSuccess searchOutcome = iota
	outcomeFailure
	outcomeTrivial
	outcomeCached
	outcomeCount
)

var outcomeLabels = [outcomeCount]string{
	outcomeSuccess: "success",
	outcomeFailure: "failure",
	outcomeTrivial: "trivial",
	outcomeCached:  "cached",
}

// Metrics records search activity. A nil *Metrics records nothing.
type Metrics struct {
	searches    [outcomeCount]prometheus.Counter
	duration    prometheus.Histogram
	expanded    prometheus.Histogram
	length      prometheus.Histogram
	cacheHits   prometheus.Counter
	cacheMisses prometheus.Counter
}

// NewMetrics registers the pathfinding collectors with reg. Pass
// prometheus.DefaultRegisterer to expose them on the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	searches := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mpath",
		Name:      "searches_total",
		Help:      "Path searches by outcome",
	}, []string{"outcome"})

	lookups := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mpath",
		Name:      "cache_lookups_total",
		Help:      "Path cache lookups by result",
	}, []string{"result"})

	m := &Metrics{
		duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mpath",
			Name:      "search_duration_seconds",
			Help:      "Time spent in A* searches that were not answered from cache",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10), // 10µs to ~2.6s
		}),
		expanded: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mpath",
			Name:      "search_expanded_cells",
			Help:      "Cells closed per search",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
		length: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mpath",
			Name:      "path_length_waypoints",
			Help:      "Waypoints per returned path",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50, 100, 250, 1000},
		}),
		cacheHits:   lookups.WithLabelValues("hit"),
		cacheMisses: lookups.WithLabelValues("miss"),
	}
	for outcome, label := range outcomeLabels {
		m.searches[outcome] = searches.WithLabelValues(label)
	}
	return m
}

func (m *Metrics) observeSearch(outcome searchOutcome, took time.Duration, expanded, length int) {
	if m == nil {
		return
	}
	m.searches[outcome].Inc()
	m.length.Observe(float64(length))
	if outcome == outcomeSuccess || outcome == outcomeFailure {
		m.duration.Observe(took.Seconds())
		m.expanded.Observe(float64(expanded))
	}
}

func (m *Metrics) observeCacheLookup(hit bool) {
	if m == nil {
		return
	}
	if hit {
		m.cacheHits.Inc()
	} else {
		m.cacheMisses.Inc()
	}
}
