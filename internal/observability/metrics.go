// Package observability holds the logger factory and the Prometheus metrics
// used across the service. Metric definitions live here so names, labels, and
// help strings have a single source of truth.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "taskservice"

// HTTPRequestsTotal counts completed HTTP requests.
// Labels: path, method, status.
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests handled.",
	},
	[]string{"path", "method", "status"},
)

// HTTPRequestDuration observes request latency in seconds.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"path", "method"},
)

// HTTPErrorsTotal counts requests that resolved to a domain error.
// Label: code is the DomainError code (e.g. "FORBIDDEN").
var HTTPErrorsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_errors_total",
		Help:      "Total number of requests that failed with a domain error.",
	},
	[]string{"path", "method", "code"},
)

// TasksAssignedTotal counts successful task assignments by strategy.
var TasksAssignedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_assigned_total",
		Help:      "Total number of task assignments, labelled by strategy.",
	},
	[]string{"strategy"},
)

// TasksCreatedTotal counts created tasks.
var TasksCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "tasks_created_total",
		Help:      "Total number of tasks created.",
	},
)

// TaskStatusChangesTotal counts status transitions, labelled by new status.
var TaskStatusChangesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "task_status_changes_total",
		Help:      "Total number of task status changes.",
	},
	[]string{"status"},
)

// CommentsTotal counts comment writes and deletions, labelled by action.
var CommentsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "comments_total",
		Help:      "Total number of comment operations (created/deleted).",
	},
	[]string{"action"},
)

// AssignmentEventsTotal counts assignment events seen on the dispatcher,
// labelled by strategy. Driven by the metrics worker, not the services.
var AssignmentEventsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "assignment_events_total",
		Help:      "Total number of task_assigned events observed.",
	},
	[]string{"strategy"},
)

// StatusTransitionsTotal counts observed status transition pairs.
var StatusTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_transitions_total",
		Help:      "Total number of task status transitions by (from, to) pair.",
	},
	[]string{"from", "to"},
)

// AccountActivationsTotal counts account activations and deactivations.
var AccountActivationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "account_activations_total",
		Help:      "Total number of account active-state changes.",
	},
	[]string{"action"},
)

// LoginFailuresTotal counts rejected logins, labelled by reason
// ("bad_credentials" or "deactivated"). Reasons are kept coarse on purpose.
var LoginFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_failures_total",
		Help:      "Total number of failed login attempts.",
	},
	[]string{"reason"},
)
