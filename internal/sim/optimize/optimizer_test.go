package optimize

import (
	"log/slog"
	"math/rand"
	"testing"

	"github.com/tranvk/selfheal/internal/core/domain"
)

type fakeRecorder struct {
	actions []string
	modules []domain.Module
}

func (r *fakeRecorder) RecordOptimization(m domain.Module, action string) {
	r.modules = append(r.modules, m)
	r.actions = append(r.actions, action)
}

func TestApply_FixedStrategy(t *testing.T) {
	rec := &fakeRecorder{}
	strategy := Fixed{"action one", "action two"}

	applied := Apply(strategy, rec, slog.Default())

	if len(applied) != 2 || applied[0] != "action one" {
		t.Fatalf("unexpected applied actions %v", applied)
	}
	if len(rec.actions) != 2 {
		t.Fatalf("expected 2 recorded actions, got %d", len(rec.actions))
	}
	for _, m := range rec.modules {
		if m != ModuleAIAnalysis {
			t.Errorf("expected module %q, got %q", ModuleAIAnalysis, m)
		}
	}
}

func TestRandomSample_PicksDistinctActions(t *testing.T) {
	s := NewRandomSample(3, rand.New(rand.NewSource(1)))

	actions := s.Analyze()
	if len(actions) != 3 {
		t.Fatalf("expected 3 actions, got %d", len(actions))
	}
	seen := map[string]bool{}
	for _, a := range actions {
		if seen[a] {
			t.Errorf("duplicate action %q", a)
		}
		seen[a] = true
	}
}

func TestRandomSample_CapsAtCatalogSize(t *testing.T) {
	s := NewRandomSample(50, rand.New(rand.NewSource(1)))

	actions := s.Analyze()
	if len(actions) != len(catalog) {
		t.Errorf("expected %d actions, got %d", len(catalog), len(actions))
	}
}

func TestRandomSample_NegativeCountYieldsNothing(t *testing.T) {
	s := NewRandomSample(-1, rand.New(rand.NewSource(1)))

	if actions := s.Analyze(); len(actions) != 0 {
		t.Errorf("expected no actions for a negative count, got %v", actions)
	}
}
