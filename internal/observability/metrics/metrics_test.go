package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithRegistersAllCollectors(t *testing.T) {
	t.Parallel()
	reg := prometheus.NewRegistry()
	m := NewWith(reg)

	m.ObserveGuardDecision(OutcomeAuthorized, 0.002)
	m.ObserveResolverOutcome("resolved", "session_metadata")
	m.ObserveResolverRepair("repaired")
	m.IncrementSessionsStarted()
	m.IncrementSessionsEnded()

	families, err := reg.Gather()
	require.NoError(t, err)

	names := make(map[string]bool, len(families))
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{
		"suresight_guard_decisions_total",
		"suresight_guard_check_seconds",
		"suresight_resolver_outcomes_total",
		"suresight_resolver_repairs_total",
		"suresight_sessions_started_total",
		"suresight_sessions_ended_total",
	} {
		assert.True(t, names[want], "expected metric %s to be registered", want)
	}
}

func TestGuardDecisionLabels(t *testing.T) {
	t.Parallel()
	reg := prometheus.NewRegistry()
	m := NewWith(reg)

	m.ObserveGuardDecision(OutcomeLoginRedirect, 0.001)
	m.ObserveGuardDecision(OutcomeLoginRedirect, 0.001)
	m.ObserveGuardDecision(OutcomeUnauthorized, 0.001)

	assert.Equal(t, float64(2), testutil.ToFloat64(m.GuardDecisions.WithLabelValues(OutcomeLoginRedirect)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.GuardDecisions.WithLabelValues(OutcomeUnauthorized)))
	assert.Equal(t, float64(0), testutil.ToFloat64(m.GuardDecisions.WithLabelValues(OutcomeAuthorized)))
}

func TestResolverCounters(t *testing.T) {
	t.Parallel()
	reg := prometheus.NewRegistry()
	m := NewWith(reg)

	m.ObserveResolverOutcome("needs_repair", "email")
	m.ObserveResolverRepair("repaired")
	m.ObserveResolverRepair("error")

	assert.Equal(t, float64(1), testutil.ToFloat64(m.ResolverOutcomes.WithLabelValues("needs_repair", "email")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ResolverRepairs.WithLabelValues("repaired")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ResolverRepairs.WithLabelValues("error")))
}

func TestSessionCounters(t *testing.T) {
	t.Parallel()
	reg := prometheus.NewRegistry()
	m := NewWith(reg)

	m.IncrementSessionsStarted()
	m.IncrementSessionsStarted()
	m.IncrementSessionsEnded()

	assert.Equal(t, float64(2), testutil.ToFloat64(m.SessionsStarted))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.SessionsEnded))
}

func TestNewWithFreshRegistryDoesNotPanic(t *testing.T) {
	t.Parallel()
	assert.NotPanics(t, func() {
		NewWith(prometheus.NewRegistry())
		NewWith(prometheus.NewRegistry())
	})
}
