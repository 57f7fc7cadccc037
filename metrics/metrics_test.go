package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveSubmission(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObserveSubmission(OutcomeAccepted, time.Now())
	m.ObserveSubmission(OutcomeAccepted, time.Now())
	m.ObserveSubmission(OutcomeInvalid, time.Now())

	assert.Equal(t, float64(2), testutil.ToFloat64(m.SubmissionsTotal.WithLabelValues(OutcomeAccepted)))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.SubmissionsTotal.WithLabelValues(OutcomeInvalid)))

	count, err := testutil.GatherAndCount(reg, "awards_nomination_submit_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStepAndProvisionCounters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.IncStepCheck("2", false)
	m.IncStepCheck("2", true)
	m.IncProvisionRun("completed")

	assert.Equal(t, float64(1), testutil.ToFloat64(m.StepChecksTotal.WithLabelValues("2", "invalid")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.StepChecksTotal.WithLabelValues("2", "valid")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ProvisionRunsTotal.WithLabelValues("completed")))
}

func TestSeparateRegistriesDoNotConflict(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
