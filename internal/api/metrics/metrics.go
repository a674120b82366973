// Package metrics defines all custom Prometheus metrics for the marketplace
// API. It is the single source of truth for metric names, labels, and help
// strings.
//
// Metrics are created with promauto and therefore registered with the default
// Prometheus registry on package initialisation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "marketplace"

// ── Account metrics ───────────────────────────────────────────────────────────

// SignupsTotal counts signup attempts.
// Labels:
//   - result: "created", "conflict", "invalid" or "error"
var SignupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "signups_total",
		Help:      "Total number of signup attempts, by result.",
	},
	[]string{"result"},
)

// LoginsTotal counts login attempts.
// Label:
//   - result: "success", "failure", "throttled" or "error"
var LoginsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "logins_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ProfileUpdatesTotal counts PUT /me calls that reached the service.
var ProfileUpdatesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "profile_updates_total",
		Help:      "Total number of profile updates, by result.",
	},
	[]string{"result"},
)

// ── Access control metrics ────────────────────────────────────────────────────

// GuardDecisionsTotal counts route guard outcomes.
// Label:
//   - decision: "allow", "redirect_login" or "redirect_dashboard"
var GuardDecisionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "guard_decisions_total",
		Help:      "Total number of route guard decisions, by outcome.",
	},
	[]string{"decision"},
)

// RoleRedirectsTotal counts requests bounced by a role check.
// Label:
//   - required: comma-separated roles the route asked for
var RoleRedirectsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "role_redirects_total",
		Help:      "Total number of requests redirected for lacking a required role.",
	},
	[]string{"required"},
)

// ── Account event metrics ─────────────────────────────────────────────────────

// AccountEventsTotal counts account events handled by each sink.
// Labels:
//   - sink: sink name (e.g. "amqp", "welcome_mail")
//   - result: "ok" or "error"
var AccountEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "account_events_total",
		Help:      "Total number of account events delivered to sinks, by result.",
	},
	[]string{"sink", "result"},
)

// AccountEventsDroppedTotal counts events discarded because a worker queue was full.
var AccountEventsDroppedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "account_events_dropped_total",
		Help:      "Total number of account events dropped on a full dispatcher queue.",
	},
)

// AccountEventsQueueDepth tracks the number of events waiting in each worker channel.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var AccountEventsQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "account_events_queue_depth",
		Help:      "Current number of events pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)

// ── Leaderboard metrics ───────────────────────────────────────────────────────

// LeaderboardRefreshDuration measures a full leaderboard rebuild.
// Label:
//   - result: "ok" or "error"
var LeaderboardRefreshDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "leaderboard_refresh_duration_seconds",
		Help:      "Duration of leaderboard refreshes from store read to cache write.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"result"},
)
