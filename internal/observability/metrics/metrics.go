// Package metrics holds Prometheus collectors for SureSight access control.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus collectors for guard and resolver operations.
type Metrics struct {
	GuardDecisions    *prometheus.CounterVec
	GuardCheckSeconds prometheus.Histogram

	ResolverOutcomes *prometheus.CounterVec
	ResolverRepairs  *prometheus.CounterVec

	SessionsStarted prometheus.Counter
	SessionsEnded   prometheus.Counter
}

// New registers collectors on the default registry.
func New() *Metrics {
	return NewWith(prometheus.DefaultRegisterer)
}

// NewWith registers collectors on the given registerer. Tests pass a fresh
// registry so repeated construction never collides.
func NewWith(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		GuardDecisions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "suresight_guard_decisions_total",
			Help: "Access guard decisions by outcome",
		}, []string{"outcome"}),
		GuardCheckSeconds: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "suresight_guard_check_seconds",
			Help:    "Duration of access guard checks in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		ResolverOutcomes: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "suresight_resolver_outcomes_total",
			Help: "Role resolver cascade outcomes by result and source",
		}, []string{"result", "source"}),
		ResolverRepairs: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "suresight_resolver_repairs_total",
			Help: "Stale auth-id repair attempts by result",
		}, []string{"result"}),
		SessionsStarted: factory.NewCounter(prometheus.CounterOpts{
			Name: "suresight_sessions_started_total",
			Help: "Total number of sessions created",
		}),
		SessionsEnded: factory.NewCounter(prometheus.CounterOpts{
			Name: "suresight_sessions_ended_total",
			Help: "Total number of sessions removed by logout",
		}),
	}
}

// Guard decision outcome labels.
const (
	OutcomeAuthorized      = "authorized"
	OutcomeLoginRedirect   = "login_redirect"
	OutcomeDashboard       = "dashboard_redirect"
	OutcomeCompleteProfile = "complete_profile_redirect"
	OutcomeUnauthorized    = "unauthorized_redirect"
)

// ObserveGuardDecision records one guard decision with its check duration.
func (m *Metrics) ObserveGuardDecision(outcome string, seconds float64) {
	m.GuardDecisions.WithLabelValues(outcome).Inc()
	m.GuardCheckSeconds.Observe(seconds)
}

// ObserveResolverOutcome records a resolver cascade outcome and the lookup
// source that produced it.
func (m *Metrics) ObserveResolverOutcome(result, source string) {
	m.ResolverOutcomes.WithLabelValues(result, source).Inc()
}

// ObserveResolverRepair records a stale-link repair attempt.
func (m *Metrics) ObserveResolverRepair(result string) {
	m.ResolverRepairs.WithLabelValues(result).Inc()
}

// IncrementSessionsStarted counts a new session.
func (m *Metrics) IncrementSessionsStarted() {
	m.SessionsStarted.Inc()
}

// IncrementSessionsEnded counts a logout.
func (m *Metrics) IncrementSessionsEnded() {
	m.SessionsEnded.Inc()
}
