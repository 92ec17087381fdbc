// Package metrics defines and registers all custom Prometheus metrics for the
// supplier portal gateway. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register themselves with the default Prometheus registry at import
// time via promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portal"

// ── Credential operation metrics ──────────────────────────────────────────────

// CredentialOpsTotal counts login, registration, logout, and role-switch
// attempts.
// Labels:
//   - operation: "login", "register", "logout", "role_switch"
//   - result: "ok" or "failed"
var CredentialOpsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "credential_ops_total",
		Help:      "Total number of credential operations, by operation and result.",
	},
	[]string{"operation", "result"},
)

// ProviderRequestDuration measures the round trip of one identity provider
// call as seen by the session service.
// Label:
//   - operation: "probe", "login", "register", "logout", "role_switch"
var ProviderRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "provider_request_duration_seconds",
		Help:      "Duration of identity provider calls, by operation.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"operation"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// ProbeResultsTotal counts identity probe outcomes.
// Label:
//   - outcome: "authenticated", "unauthenticated" (the normal 401 case), or
//     "error" (probe did not settle)
var ProbeResultsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "probe_results_total",
		Help:      "Total number of identity probes, by outcome.",
	},
	[]string{"outcome"},
)

// ActiveSessions tracks sessions currently holding an identity. Incremented
// when a session becomes authenticated, decremented when it is observed
// leaving that state (logout, probe rejection, expiry on next contact).
var ActiveSessions = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "active_sessions",
		Help:      "Number of sessions currently authenticated.",
	},
)

// ── Route guard metrics ───────────────────────────────────────────────────────

// GuardDecisionsTotal counts route guard evaluations.
// Label:
//   - decision: "allow", "loading", "sign_in", "denied"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard decisions, by outcome.",
	},
	[]string{"decision"},
)
