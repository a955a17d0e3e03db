// Package metrics holds the Prometheus collectors exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthEvents counts authentication outcomes by event and result.
	AuthEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "resmatic",
		Name:      "auth_events_total",
		Help:      "Authentication events by type and outcome.",
	}, []string{"event", "outcome"})

	// AccessDecisions counts tenant access checks by decision.
	AccessDecisions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "resmatic",
		Name:      "access_decisions_total",
		Help:      "Restaurant access decisions.",
	}, []string{"decision"})

	// Invites counts invite lifecycle events.
	Invites = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "resmatic",
		Name:      "invites_total",
		Help:      "Staff invites created and accepted.",
	}, []string{"event", "outcome"})

	// SessionsEvicted counts refresh sessions revoked by the session limit.
	SessionsEvicted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "resmatic",
		Name:      "sessions_evicted_total",
		Help:      "Refresh sessions revoked to enforce the per-user limit.",
	})
)

// Outcome labels.
const (
	OK   = "ok"
	Fail = "fail"
)

// Outcome maps an error to an outcome label.
func Outcome(err error) string {
	if err != nil {
		return Fail
	}
	return OK
}
