package control

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/tranvk/selfheal/internal/core/config"
	"github.com/tranvk/selfheal/internal/core/domain"
	"github.com/tranvk/selfheal/internal/sim/loop"
	"github.com/tranvk/selfheal/internal/sim/optimize"
	"github.com/tranvk/selfheal/internal/stats"
)

type alwaysOK struct{}

func (alwaysOK) Sample(m domain.Module) (bool, string) { return true, "" }

type alwaysFail struct{ kind string }

func (s alwaysFail) Sample(m domain.Module) (bool, string) { return false, s.kind }

type fixedFixer struct{ ok bool }

func (f fixedFixer) AttemptFix(m domain.Module, kind string) (bool, string) {
	return f.ok, "test correction"
}

func testConfig(t *testing.T) *config.AppConfig {
	t.Helper()
	cfg := config.Default()
	cfg.Loop.IterationDelay = 0
	cfg.Corrector.FixDelay = 0
	cfg.Sweep.ModuleTarget = 3
	cfg.Sweep.SystemTarget = 5
	cfg.Loop.MaxConsecutiveFailures = 2
	cfg.Stats.Path = filepath.Join(t.TempDir(), "statistics.json")
	return cfg
}

func TestRunner_SweepAllSucceed(t *testing.T) {
	cfg := testConfig(t)
	r, err := NewRunner(cfg,
		WithSampler(alwaysOK{}),
		WithStrategy(optimize.Fixed{"pinned optimization"}),
	)
	if err != nil {
		t.Fatalf("NewRunner failed: %v", err)
	}

	result, err := r.RunSweep(context.Background(), false)
	if err != nil {
		t.Fatalf("RunSweep failed: %v", err)
	}
	if result.Failed() {
		t.Fatalf("expected clean sweep, aborted: %v", result.Aborted)
	}
	if len(result.Modules) != len(domain.Modules) {
		t.Errorf("expected %d module results, got %d", len(domain.Modules), len(result.Modules))
	}
	for m, res := range result.Modules {
		if res.Status != loop.StatusSucceeded {
			t.Errorf("module %s: status %s", m, res.Status)
		}
		if res.State.ConsecutiveSuccesses != cfg.Sweep.ModuleTarget {
			t.Errorf("module %s: streak %d", m, res.State.ConsecutiveSuccesses)
		}
	}
	if result.General.Status != loop.StatusSucceeded {
		t.Errorf("general sweep status %s", result.General.Status)
	}
	if len(result.Optimizations) != 1 || result.Optimizations[0] != "pinned optimization" {
		t.Errorf("unexpected optimizations %v", result.Optimizations)
	}

	if err := r.Stop(context.Background()); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	// The persisted snapshot round-trips with the sweep's counts.
	loaded, err := stats.Load(cfg.Stats.Path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	for _, m := range domain.Modules {
		b := loaded.Modules[m]
		if b == nil || b.Successes != cfg.Sweep.ModuleTarget || b.Failures != 0 {
			t.Errorf("persisted bucket for %s = %+v", m, b)
		}
	}
	if loaded.General.Successes != cfg.Sweep.SystemTarget {
		t.Errorf("persisted general bucket = %+v", loaded.General)
	}
	if loaded.EndTime == nil {
		t.Error("end_time missing from final snapshot")
	}
	if len(loaded.Optimizations) != 1 {
		t.Errorf("expected 1 persisted optimization, got %d", len(loaded.Optimizations))
	}
}

func TestRunner_SweepReportsAborts(t *testing.T) {
	cfg := testConfig(t)
	r, err := NewRunner(cfg,
		WithSampler(alwaysFail{kind: "System error"}),
		WithFixer(fixedFixer{ok: false}),
		WithStrategy(optimize.Fixed{}),
	)
	if err != nil {
		t.Fatalf("NewRunner failed: %v", err)
	}

	result, err := r.RunSweep(context.Background(), false)
	if err != nil {
		t.Fatalf("RunSweep failed: %v", err)
	}
	if !result.Failed() {
		t.Fatal("expected sweep failure")
	}
	// Every module plus the general phase aborts.
	if len(result.Aborted) != len(domain.Modules)+1 {
		t.Errorf("expected %d aborted phases, got %d", len(domain.Modules)+1, len(result.Aborted))
	}

	if err := r.Stop(context.Background()); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}

	// Persisted after aborts: every bucket shows failures strictly above the
	// threshold and no successes.
	loaded, err := stats.Load(cfg.Stats.Path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	for _, m := range domain.Modules {
		b := loaded.Modules[m]
		if b == nil {
			t.Fatalf("missing persisted bucket for %s", m)
		}
		if b.Failures < cfg.Loop.MaxConsecutiveFailures+1 {
			t.Errorf("module %s: failures %d < threshold+1", m, b.Failures)
		}
		if b.Successes != 0 {
			t.Errorf("module %s: unexpected successes %d", m, b.Successes)
		}
		if b.Errors["System error"] != b.Failures {
			t.Errorf("module %s: error tally %d != failures %d", m, b.Errors["System error"], b.Failures)
		}
	}
	if loaded.General.Successes != 0 || loaded.General.Failures < cfg.Loop.MaxConsecutiveFailures+1 {
		t.Errorf("persisted general bucket = %+v", loaded.General)
	}
	if loaded.CorrectionsFailed == 0 {
		t.Error("expected failed corrections recorded")
	}
}

func TestRunner_RunOnceHonorsExplicitZeroTarget(t *testing.T) {
	cfg := testConfig(t)
	r, err := NewRunner(cfg, WithSampler(alwaysFail{kind: "System error"}), WithFixer(fixedFixer{ok: false}))
	if err != nil {
		t.Fatalf("NewRunner failed: %v", err)
	}

	result, err := r.RunOnce(context.Background(), domain.ModuleGeneral, 0, cfg.Loop.MaxConsecutiveFailures)
	if err != nil {
		t.Fatalf("RunOnce failed: %v", err)
	}
	if result.Status != loop.StatusSucceeded || result.State.TotalAttempts != 0 {
		t.Errorf("target 0 must succeed immediately, got %+v", result)
	}
}

func TestRunner_ModuleOverridesReachFaultModel(t *testing.T) {
	cfg := testConfig(t)
	cfg.Modules = []config.ModuleConfig{{
		Name:        "text_to_speech",
		FailureRate: 1.0,
		ErrorKinds:  []string{"forced failure"},
	}}

	r, err := NewRunner(cfg, WithFixer(fixedFixer{ok: false}))
	if err != nil {
		t.Fatalf("NewRunner failed: %v", err)
	}

	result, err := r.RunOnce(context.Background(), domain.ModuleTextToSpeech, 3, 1)
	if err != nil {
		t.Fatalf("RunOnce failed: %v", err)
	}
	if result.Status != loop.StatusAborted {
		t.Fatalf("expected aborted with forced failure rate, got %s", result.Status)
	}
	if r.Aggregator().Snapshot().Modules[domain.ModuleTextToSpeech].Errors["forced failure"] == 0 {
		t.Error("override error kind not sampled")
	}
}
