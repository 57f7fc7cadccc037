package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submission outcomes
const (
	OutcomeAccepted       = "accepted"
	OutcomeInvalid        = "invalid"
	OutcomeStorageFailure = "storage_failure"
	OutcomeError          = "error"
)

// Metrics provides observability for nomination intake and table provisioning.
type Metrics struct {
	SubmissionsTotal   *prometheus.CounterVec
	SubmissionDuration prometheus.Histogram
	StepChecksTotal    *prometheus.CounterVec
	ProvisionRunsTotal *prometheus.CounterVec
}

// New creates a Metrics instance registered with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		SubmissionsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "awards_nominations_submitted_total",
			Help: "Nomination submissions by outcome",
		}, []string{"outcome"}),
		SubmissionDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "awards_nomination_submit_duration_seconds",
			Help:    "Duration of nomination submissions including the store write",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		StepChecksTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "awards_form_step_checks_total",
			Help: "Per-step form checks by step and result",
		}, []string{"step", "result"}),
		ProvisionRunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "awards_table_provision_runs_total",
			Help: "Table provisioning runs by final status",
		}, []string{"status"}),
	}
}

// ObserveSubmission records one submission outcome and its duration.
// Call with time.Now() at the start of the request.
func (m *Metrics) ObserveSubmission(outcome string, start time.Time) {
	m.SubmissionsTotal.WithLabelValues(outcome).Inc()
	m.SubmissionDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) IncStepCheck(step string, valid bool) {
	result := "invalid"
	if valid {
		result = "valid"
	}
	m.StepChecksTotal.WithLabelValues(step, result).Inc()
}

func (m *Metrics) IncProvisionRun(status string) {
	m.ProvisionRunsTotal.WithLabelValues(status).Inc()
}
