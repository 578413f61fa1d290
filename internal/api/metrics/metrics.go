// Package metrics defines and registers all custom Prometheus metrics for the
// SKY Móvel app core. It is the single source of truth for metric names,
// labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "skymobile"

// ── Gateway metrics ───────────────────────────────────────────────────────────

// GatewayCallsTotal counts calls to the carrier core boundary.
// Labels:
//   - operation: gateway method name (e.g. "GetConsumption")
//   - result: "ok" or the error code (e.g. "AUTH_EXPIRED", "NETWORK_ERROR")
var GatewayCallsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "gateway_calls_total",
		Help:      "Total number of carrier gateway calls, by operation and result.",
	},
	[]string{"operation", "result"},
)

// GatewayCallDuration measures how long a single gateway call takes.
// Label:
//   - operation: gateway method name
var GatewayCallDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "gateway_call_duration_seconds",
		Help:      "Duration of carrier gateway calls.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"operation"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// LoginsTotal counts login attempts.
// Label:
//   - result: "ok", "invalid_credentials", or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── Cache metrics ─────────────────────────────────────────────────────────────

// CacheRefreshTotal counts customer-data refreshes.
// Labels:
//   - scope: "full", "consumption", "plan", or "notifications"
//   - result: "ok" or "error"
var CacheRefreshTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cache_refresh_total",
		Help:      "Total number of customer data refreshes, by scope and result.",
	},
	[]string{"scope", "result"},
)

// ── Flow metrics ──────────────────────────────────────────────────────────────

// FlowsStartedTotal counts guided flows created.
// Label:
//   - flow: "chip_activation" or "cancellation"
var FlowsStartedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "flows_started_total",
		Help:      "Total number of guided flows started, by flow type.",
	},
	[]string{"flow"},
)

// FlowsFinishedTotal counts guided flows that reached a terminal outcome.
// Labels:
//   - flow: "chip_activation" or "cancellation"
//   - outcome: "completed", "exited", or "retained"
var FlowsFinishedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "flows_finished_total",
		Help:      "Total number of guided flows finished, by flow type and outcome.",
	},
	[]string{"flow", "outcome"},
)

// ── Service request metrics ───────────────────────────────────────────────────

// ServiceRequestsTotal counts service requests submitted to the carrier core.
// Labels:
//   - type: request type (e.g. "CANCELLATION", "CHIP_SWAP")
//   - result: "ok" or "error"
var ServiceRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "service_requests_total",
		Help:      "Total number of service requests submitted, by type and result.",
	},
	[]string{"type", "result"},
)
