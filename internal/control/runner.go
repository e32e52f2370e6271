package control

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/tranvk/selfheal/internal/core/config"
	"github.com/tranvk/selfheal/internal/core/domain"
	"github.com/tranvk/selfheal/internal/health"
	"github.com/tranvk/selfheal/internal/sim/corrector"
	"github.com/tranvk/selfheal/internal/sim/fault"
	"github.com/tranvk/selfheal/internal/sim/loop"
	"github.com/tranvk/selfheal/internal/sim/optimize"
	"github.com/tranvk/selfheal/internal/stats"
)

// Runner wires the fault model, corrector, statistics and loops together and
// drives single runs and full sweeps. Sweeps are strictly sequential; each
// module's loop completes before the next starts.
type Runner struct {
	cfg      *config.AppConfig
	sampler  fault.Sampler
	fixer    corrector.Fixer
	agg      *stats.Aggregator
	strategy optimize.Strategy
	server   *health.Server
	log      *slog.Logger
}

// SweepResult summarizes a full sweep.
type SweepResult struct {
	Modules       map[domain.Module]loop.Result
	General       loop.Result
	Aborted       []domain.Module
	Optimizations []string
}

// Failed reports whether any phase of the sweep aborted.
func (r SweepResult) Failed() bool {
	return len(r.Aborted) > 0
}

// Option customizes a Runner.
type Option func(*Runner)

// WithSampler replaces the fault model. Test seam.
func WithSampler(s fault.Sampler) Option {
	return func(r *Runner) { r.sampler = s }
}

// WithFixer replaces the corrector. Test seam.
func WithFixer(f corrector.Fixer) Option {
	return func(r *Runner) { r.fixer = f }
}

// WithLogger sets the runner's logger.
func WithLogger(log *slog.Logger) Option {
	return func(r *Runner) { r.log = log }
}

// WithStrategy replaces the AI-analysis strategy. Test seam.
func WithStrategy(s optimize.Strategy) Option {
	return func(r *Runner) { r.strategy = s }
}

// NewRunner creates a Runner with all collaborators initialized from config.
func NewRunner(cfg *config.AppConfig, opts ...Option) (*Runner, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	// 1. Fault model with per-module overrides
	faultOpts := make([]fault.Option, 0, len(cfg.Modules))
	for _, mc := range cfg.Modules {
		faultOpts = append(faultOpts, fault.WithProfile(mc.Module(), fault.Profile{
			FailureRate: mc.FailureRate,
			ErrorKinds:  mc.ErrorKinds,
		}))
	}

	// 2. Corrector from config
	fixer := corrector.New(
		corrector.WithFixRates(cfg.Corrector.KnownFixRate, cfg.Corrector.FallbackFixRate),
		corrector.WithFixDelay(cfg.Corrector.FixDelay),
	)

	r := &Runner{
		cfg:      cfg,
		sampler:  fault.NewModel(faultOpts...),
		fixer:    fixer,
		agg:      stats.NewAggregator(cfg.Stats.Path),
		strategy: optimize.NewRandomSample(cfg.Sweep.Optimizations, nil),
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(r)
	}

	// 3. Opt-in observability listener
	if cfg.Server.Port > 0 {
		r.server = health.NewServer(r.agg, cfg.Server.Port)
	}

	return r, nil
}

// Aggregator exposes the statistics aggregator, the snapshot source for
// external renderers.
func (r *Runner) Aggregator() *stats.Aggregator {
	return r.agg
}

// Start brings up the observability listener when configured.
func (r *Runner) Start() {
	if r.server == nil {
		return
	}
	go func() {
		if err := r.server.Start(); err != nil && err != http.ErrServerClosed {
			r.log.Error("health server failed", "error", err)
		}
	}()
	r.log.Info("observability listener started", "port", r.cfg.Server.Port)
}

// Stop shuts the listener down and performs the final statistics flush. A
// persistence error is returned but does not change any loop verdict.
func (r *Runner) Stop(ctx context.Context) error {
	if r.server != nil {
		shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := r.server.Stop(shutdownCtx); err != nil {
			r.log.Warn("failed to stop health server", "error", err)
		}
	}
	if err := r.agg.Close(ctx); err != nil {
		return fmt.Errorf("final statistics flush failed: %w", err)
	}
	return nil
}

// RunOnce runs a single loop for one module (or the general scope).
func (r *Runner) RunOnce(ctx context.Context, module domain.Module, target, maxFailures int) (loop.Result, error) {
	l := loop.New(loop.Config{
		Module:                 module,
		TargetSuccesses:        target,
		MaxConsecutiveFailures: maxFailures,
		IterationDelay:         r.cfg.Loop.IterationDelay,
	}, r.sampler, r.fixer, r.agg, loop.WithLogger(r.log))

	return l.Run(ctx)
}

// RunSweep tests every module in order, then the general scope, then applies
// the AI-analysis pass. Aborted phases do not stop the sweep; they are
// reported in the result.
func (r *Runner) RunSweep(ctx context.Context, full bool) (SweepResult, error) {
	moduleTarget := r.cfg.Sweep.ModuleTarget
	systemTarget := r.cfg.Sweep.SystemTarget
	if full {
		moduleTarget = r.cfg.Sweep.FullModuleTarget
		systemTarget = r.cfg.Sweep.FullSystemTarget
	}

	result := SweepResult{Modules: make(map[domain.Module]loop.Result, len(domain.Modules))}

	for _, module := range domain.Modules {
		r.log.Info("starting module sweep", "module", module, "target", moduleTarget)
		res, err := r.RunOnce(ctx, module, moduleTarget, r.cfg.Loop.MaxConsecutiveFailures)
		if err != nil {
			return result, err
		}
		result.Modules[module] = res
		if res.Status == loop.StatusAborted {
			result.Aborted = append(result.Aborted, module)
		}
	}

	r.log.Info("starting general sweep", "target", systemTarget)
	general, err := r.RunOnce(ctx, domain.ModuleGeneral, systemTarget, r.cfg.Loop.MaxConsecutiveFailures)
	if err != nil {
		return result, err
	}
	result.General = general
	if general.Status == loop.StatusAborted {
		result.Aborted = append(result.Aborted, domain.ModuleGeneral)
	}

	r.log.Info("starting AI analysis")
	result.Optimizations = optimize.Apply(r.strategy, r.agg, r.log)
	if err := r.agg.Flush(); err != nil {
		r.log.Warn("failed to persist statistics after AI analysis", "error", err)
	}

	return result, nil
}
