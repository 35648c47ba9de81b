// Package metrics defines the custom Prometheus metrics for the board API.
// HTTP request metrics come from echoprometheus; the counters here track the
// auth and authorization outcomes those cannot see.
//
// All metrics register with the default registry on package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "board"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts log-in attempts.
// Label:
//   - result: "success" or "failure"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of log-in attempts, by result.",
	},
	[]string{"result"},
)

// RegistrationsTotal counts sign-ups.
// Label:
//   - result: "created", "rejected" or "error"
var RegistrationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "registrations_total",
		Help:      "Total number of sign-up attempts, by result.",
	},
	[]string{"result"},
)

// SessionsStartedTotal counts sessions bound after a successful log-in.
var SessionsStartedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_started_total",
		Help:      "Total number of sessions started.",
	},
)

// SessionsEndedTotal counts log-outs that carried a session handle.
var SessionsEndedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "sessions_ended_total",
		Help:      "Total number of sessions ended by log-out.",
	},
)

// ── Authorization metrics ────────────────────────────────────────────────────

// DenialsTotal counts requests refused for lack of a session or role.
// Labels:
//   - reason: "not_authenticated", "forbidden" or "incorrect_passcode"
//   - route: the echo route path (e.g. "/messages/:id")
var DenialsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "denials_total",
		Help:      "Total number of requests denied by the authorization policy.",
	},
	[]string{"reason", "route"},
)

// MembershipsGrantedTotal counts successful join-club calls.
var MembershipsGrantedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "memberships_granted_total",
		Help:      "Total number of users that joined the club.",
	},
)

// ── Message metrics ──────────────────────────────────────────────────────────

// MessagesCreatedTotal counts new posts.
var MessagesCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_created_total",
		Help:      "Total number of messages created.",
	},
)

// MessagesDeletedTotal counts posts removed by admins.
var MessagesDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_deleted_total",
		Help:      "Total number of messages deleted.",
	},
)
