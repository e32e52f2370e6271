package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RunsTotal tracks simulated runs per module and result
	RunsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "selfheal_runs_total",
			Help: "Total number of simulated runs",
		},
		[]string{"module", "result"},
	)

	// ErrorsTotal tracks injected faults per module and kind
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "selfheal_errors_total",
			Help: "Total number of injected faults",
		},
		[]string{"module", "kind"},
	)

	// CorrectionsTotal tracks correction attempts per module and outcome
	CorrectionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "selfheal_corrections_total",
			Help: "Total number of correction attempts",
		},
		[]string{"module", "outcome"},
	)

	// ConsecutiveSuccesses tracks the current success streak per module
	ConsecutiveSuccesses = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "selfheal_consecutive_successes",
			Help: "Current consecutive-success streak",
		},
		[]string{"module"},
	)

	// LoopsTotal tracks finished loops per module and terminal status
	LoopsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "selfheal_loops_total",
			Help: "Total number of finished resilience loops",
		},
		[]string{"module", "status"},
	)

	// PersistFailures counts statistics snapshots that could not be written
	PersistFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "selfheal_persist_failures_total",
			Help: "Total number of failed statistics snapshot writes",
		},
	)
)
