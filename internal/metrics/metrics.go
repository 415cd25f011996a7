package metrics

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	calculations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tax",
		Name:      "calculations_total",
		Help:      "Tax calculations by outcome.",
	}, []string{"outcome"})

	calculationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "tax",
		Name:      "calculation_duration_seconds",
		Help:      "Time spent resolving the profile and calculating tax.",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
	})

	profileMutations = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tax",
		Name:      "profile_mutations_total",
		Help:      "Profile mutations by operation and outcome.",
	}, []string{"operation", "outcome"})

	versionConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "tax",
		Name:      "profile_version_conflicts_total",
		Help:      "Optimistic concurrency conflicts while persisting profiles.",
	})

	profileCacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tax",
		Name:      "profile_cache_lookups_total",
		Help:      "Profile cache lookups by result.",
	}, []string{"result"})
)

func outcome(err error) string {
	if err != nil {
		return "error"
	}
	return "success"
}

// ObserveCalculation records one calculation that started at start.
func ObserveCalculation(start time.Time, err error) {
	calculations.WithLabelValues(outcome(err)).Inc()
	calculationDuration.Observe(time.Since(start).Seconds())
}

func ObserveMutation(operation string, err error) {
	profileMutations.WithLabelValues(operation, outcome(err)).Inc()
}

func ObserveVersionConflict() {
	versionConflicts.Inc()
}

func ObserveCacheLookup(hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	profileCacheLookups.WithLabelValues(result).Inc()
}

// Handler exposes the default registry for scraping.
func Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.Handler())
}
