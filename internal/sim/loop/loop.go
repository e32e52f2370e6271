package loop

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tranvk/selfheal/internal/core/domain"
	"github.com/tranvk/selfheal/internal/sim/corrector"
	"github.com/tranvk/selfheal/internal/sim/fault"
	"github.com/tranvk/selfheal/internal/sim/metrics"
)

// Recorder receives every state-changing event of the loop. Flush persists
// the accumulated statistics; a Flush failure is logged and retried on the
// next event, never surfaced to the loop's verdict.
type Recorder interface {
	RecordAttempt(m domain.Module, ok bool)
	RecordError(m domain.Module, kind string)
	RecordCorrection(o domain.CorrectionOutcome)
	Flush() error
}

// Config parameterizes one resilience loop.
type Config struct {
	// Module selects the fault profile. Unrecognized names run as general.
	Module domain.Module

	// TargetSuccesses is the consecutive-success count that terminates the
	// loop as succeeded. Zero succeeds immediately without sampling.
	TargetSuccesses int

	// MaxConsecutiveFailures is the abort threshold. The loop aborts only
	// when the failure streak strictly exceeds it.
	MaxConsecutiveFailures int

	// IterationDelay is the pause between iterations. Zero disables it.
	IterationDelay time.Duration
}

// Loop drives repeated simulated runs against the fault model, invoking the
// corrector on each failure and feeding every outcome into the recorder.
type Loop struct {
	cfg     Config
	sampler fault.Sampler
	fixer   corrector.Fixer
	rec     Recorder
	log     *slog.Logger
	sleep   func(time.Duration)
	now     func() time.Time
}

// Option customizes a Loop.
type Option func(*Loop)

// WithLogger sets the loop's logger.
func WithLogger(log *slog.Logger) Option {
	return func(l *Loop) { l.log = log }
}

// WithSleep replaces the inter-iteration sleep. Test seam.
func WithSleep(sleep func(time.Duration)) Option {
	return func(l *Loop) { l.sleep = sleep }
}

// WithClock replaces the time source. Test seam.
func WithClock(now func() time.Time) Option {
	return func(l *Loop) { l.now = now }
}

// New creates a resilience loop over the given collaborators.
func New(cfg Config, sampler fault.Sampler, fixer corrector.Fixer, rec Recorder, opts ...Option) *Loop {
	l := &Loop{
		cfg:     cfg,
		sampler: sampler,
		fixer:   fixer,
		rec:     rec,
		log:     slog.Default(),
		sleep:   time.Sleep,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Run executes the loop until it terminates. Injected faults and correction
// failures are contained inside the loop; only the terminal status crosses
// this boundary. The returned error is non-nil only when ctx is cancelled.
func (l *Loop) Run(ctx context.Context) (Result, error) {
	module := domain.Normalize(string(l.cfg.Module))
	label := string(module)

	var st State
	if l.cfg.TargetSuccesses <= 0 {
		return l.finish(module, st, StatusSucceeded), nil
	}

	for {
		if err := ctx.Err(); err != nil {
			return Result{Status: StatusRunning, State: st}, fmt.Errorf("loop interrupted: %w", err)
		}

		st.TotalAttempts++
		ok, kind := l.sampler.Sample(module)

		if ok {
			st.ConsecutiveSuccesses++
			st.ConsecutiveFailures = 0
			l.rec.RecordAttempt(module, true)
			metrics.RunsTotal.WithLabelValues(label, "success").Inc()
			metrics.ConsecutiveSuccesses.WithLabelValues(label).Set(float64(st.ConsecutiveSuccesses))
			l.log.Debug("run succeeded",
				"module", module,
				"streak", st.ConsecutiveSuccesses,
				"target", l.cfg.TargetSuccesses)
			l.flush()

			if st.ConsecutiveSuccesses >= l.cfg.TargetSuccesses {
				return l.finish(module, st, StatusSucceeded), nil
			}
		} else {
			event := domain.NewErrorEvent(module, kind, l.now())
			st.ConsecutiveSuccesses = 0
			l.rec.RecordAttempt(module, false)
			l.rec.RecordError(module, kind)
			metrics.RunsTotal.WithLabelValues(label, "failure").Inc()
			metrics.ErrorsTotal.WithLabelValues(label, kind).Inc()
			metrics.ConsecutiveSuccesses.WithLabelValues(label).Set(0)
			l.log.Warn("fault injected", "module", module, "kind", kind)

			fixed, action := l.fixer.AttemptFix(module, kind)
			l.rec.RecordCorrection(domain.CorrectionOutcome{
				Event:     event,
				Action:    action,
				Succeeded: fixed,
				AppliedAt: l.now(),
			})

			if fixed {
				// Recovered: the failure streak clears, the iteration is
				// not a success, the loop proceeds.
				st.ConsecutiveFailures = 0
				metrics.CorrectionsTotal.WithLabelValues(label, "applied").Inc()
				l.log.Info("correction applied", "module", module, "kind", kind, "action", action)
			} else {
				st.ConsecutiveFailures++
				metrics.CorrectionsTotal.WithLabelValues(label, "failed").Inc()
				l.log.Error("correction failed",
					"module", module,
					"kind", kind,
					"consecutive_failures", st.ConsecutiveFailures,
					"max", l.cfg.MaxConsecutiveFailures)

				if st.ConsecutiveFailures > l.cfg.MaxConsecutiveFailures {
					l.flush()
					return l.finish(module, st, StatusAborted), nil
				}
			}
			l.flush()
		}

		if l.cfg.IterationDelay > 0 {
			l.sleep(l.cfg.IterationDelay)
		}
	}
}

func (l *Loop) finish(module domain.Module, st State, to Status) Result {
	if !CanTransition(StatusRunning, to) {
		// Unreachable with the fixed transition table; kept as a guard.
		to = StatusAborted
	}
	metrics.LoopsTotal.WithLabelValues(string(module), string(to)).Inc()

	if to == StatusSucceeded {
		l.log.Info("loop succeeded",
			"module", module,
			"consecutive_successes", st.ConsecutiveSuccesses,
			"total_attempts", st.TotalAttempts)
	} else {
		l.log.Error("loop aborted",
			"module", module,
			"consecutive_failures", st.ConsecutiveFailures,
			"total_attempts", st.TotalAttempts)
	}
	return Result{Status: to, State: st}
}

// flush persists the statistics snapshot. Errors are logged and counted; the
// in-memory state is kept and the next flush retries naturally.
func (l *Loop) flush() {
	if err := l.rec.Flush(); err != nil {
		metrics.PersistFailures.Inc()
		l.log.Warn("failed to persist statistics, keeping in memory", "error", err)
	}
}
