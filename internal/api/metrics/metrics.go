// Package metrics defines and registers all custom Prometheus metrics for the
// school admin dashboard. It is the single source of truth for metric names,
// labels, and help strings.
//
// Collectors register with the default registry on import; /metrics serves
// them through promhttp.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "dashboard"

// ── Upstream API metrics ──────────────────────────────────────────────────────

// UpstreamRequestsTotal counts requests sent to the remote REST API.
// Labels:
//   - resource: the endpoint name (e.g. "ads", "Teacher")
//   - method: HTTP method
//   - code: response status, or "error" when no response arrived
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of requests sent to the remote REST API.",
	},
	[]string{"resource", "method", "code"},
)

// UpstreamRequestDuration measures round trips to the remote REST API.
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of requests to the remote REST API.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"resource", "method"},
)

// ── Mutation metrics ──────────────────────────────────────────────────────────

// MutationDuration measures how long a queued add, edit or delete took.
// Label:
//   - result: "ok" or "error"
var MutationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "mutation_duration_seconds",
		Help:      "Duration of queued mutations from dequeue to completion.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)

// MutationQueueDepth tracks the number of mutations waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var MutationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "mutation_queue_depth",
		Help:      "Current number of mutations pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Dashboard metrics ─────────────────────────────────────────────────────────

// ToastsTotal counts toasts shown to the operator.
// Labels:
//   - page: "ads", "teachers" or "students"
//   - kind: "success" or "error"
var ToastsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "toasts_total",
		Help:      "Total number of toasts shown, by page and kind.",
	},
	[]string{"page", "kind"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok" or "failed"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ObserveUpstream records one remote API request. Its signature matches
// restclient.Observer.
func ObserveUpstream(resource, method string, status int, elapsed time.Duration, err error) {
	code := "error"
	if status > 0 {
		code = strconv.Itoa(status)
	}
	UpstreamRequestsTotal.WithLabelValues(resource, method, code).Inc()
	UpstreamRequestDuration.WithLabelValues(resource, method).Observe(elapsed.Seconds())
}

// ObserveMutation records one finished mutation. Its signature matches
// queue.Observer.
func ObserveMutation(_ string, elapsed time.Duration, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	MutationDuration.WithLabelValues(result).Observe(elapsed.Seconds())
}

// SetQueueDepth publishes the pending count of every worker.
func SetQueueDepth(pending []int) {
	for i, n := range pending {
		MutationQueueDepth.WithLabelValues(strconv.Itoa(i)).Set(float64(n))
	}
}
