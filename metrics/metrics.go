package metrics

import (
	"math/big"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Operation metrics
	operationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "claimnet_operations_total",
		Help: "Total number of state machine operations by outcome",
	}, []string{"operation", "outcome"})

	operationDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "claimnet_operation_duration_seconds",
		Help:    "Duration of state machine operations",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12),
	}, []string{"operation"})

	// Claim metrics
	votesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "claimnet_votes_total",
		Help: "Total number of votes cast by side",
	}, []string{"side"})

	settlementsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "claimnet_settlements_total",
		Help: "Total number of settled claims by outcome",
	}, []string{"outcome"})

	openClaimsGauge = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "claimnet_open_claims",
		Help: "Current number of unsettled claims",
	})

	// Value metrics
	valueTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "claimnet_value_total",
		Help: "Total value moved by kind",
	}, []string{"kind"})

	// Reputation metrics
	oracleFallbacksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "claimnet_oracle_fallbacks_total",
		Help: "Total number of weight computations that fell back to the default score",
	}, []string{"reason"})

	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "claimnet_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)

// RecordOperation records the outcome of a state machine operation; err == nil counts as committed.
func RecordOperation(op string, start time.Time, err error) {
	outcome := "committed"
	if err != nil {
		outcome = "rejected"
	}
	operationsTotal.WithLabelValues(op, outcome).Inc()
	operationDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

func RecordVote(support bool) {
	side := "against"
	if support {
		side = "for"
	}
	votesTotal.WithLabelValues(side).Inc()
}

func RecordSettlement(passed bool) {
	outcome := "failed"
	if passed {
		outcome = "passed"
	}
	settlementsTotal.WithLabelValues(outcome).Inc()
}

func SetOpenClaims(n int) {
	openClaimsGauge.Set(float64(n))
}

// RecordValue adds amount to the counter of kind: deposited, withdrawn, rewarded, returned, slashed.
func RecordValue(kind string, amount *big.Int) {
	if amount == nil || amount.Sign() <= 0 {
		return
	}
	f, _ := new(big.Float).SetInt(amount).Float64()
	valueTotal.WithLabelValues(kind).Add(f)
}

func RecordOracleFallback(reason string) {
	oracleFallbacksTotal.WithLabelValues(reason).Inc()
}

func RecordHTTPRequest(method, path string, status int) {
	httpRequestsTotal.WithLabelValues(method, path, statusClass(status)).Inc()
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
