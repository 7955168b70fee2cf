package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/goliatone/go-regform/pkg/form"
)

// Submission outcomes.
const (
	outcomeAccepted = "accepted"
	outcomeRejected = "rejected"
	outcomeFailed   = "failed"
)

type metrics struct {
	validations *prometheus.CounterVec
	fieldErrors *prometheus.CounterVec
	submissions *prometheus.CounterVec
	handler     http.Handler
}

func newMetrics(registry *prometheus.Registry) *metrics {
	m := &metrics{
		validations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "regform_validations_total",
				Help: "Validation runs by trigger and outcome.",
			},
			[]string{"trigger", "outcome"},
		),
		fieldErrors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "regform_field_errors_total",
				Help: "Field issues reported by validation runs.",
			},
			[]string{"field", "code"},
		),
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "regform_submissions_total",
				Help: "Submit attempts by outcome.",
			},
			[]string{"outcome"},
		),
	}
	registry.MustRegister(m.validations, m.fieldErrors, m.submissions)
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
	return m
}

// observe is registered as a controller observer. A run triggered by one
// field only counts that field's issues.
func (m *metrics) observe(event form.Event) {
	outcome := "valid"
	if !event.Valid {
		outcome = "invalid"
	}
	m.validations.WithLabelValues(string(event.Trigger), outcome).Inc()
	for _, issue := range event.Issues {
		if event.Path != "" && issue.Path != event.Path {
			continue
		}
		m.fieldErrors.WithLabelValues(issue.Path, issue.Code).Inc()
	}
}

func (m *metrics) submission(outcome string) {
	m.submissions.WithLabelValues(outcome).Inc()
}
