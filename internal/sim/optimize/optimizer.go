package optimize

import (
	"log/slog"
	"math/rand"
	"time"

	"github.com/tranvk/selfheal/internal/core/domain"
)

// ModuleAIAnalysis scopes optimization-log entries produced here.
const ModuleAIAnalysis domain.Module = "ai_analysis"

// catalog is the fixed list of optimization actions the analysis stub picks
// from. There is no model behind this; the system under test only needs
// plausible optimization records.
var catalog = []string{
	"Tuned parameters from detected usage patterns",
	"Optimized API routing from latency analysis",
	"Improved prompts for more precise content generation",
	"Adjusted image pre-processing for better recognition",
	"Refined fallback algorithms from success-rate data",
}

// Strategy selects which optimization actions to apply.
type Strategy interface {
	Analyze() []string
}

// Recorder receives selected optimization actions.
type Recorder interface {
	RecordOptimization(m domain.Module, action string)
}

// RandomSample picks k distinct actions from the fixed catalog.
type RandomSample struct {
	K   int
	rnd *rand.Rand
}

// NewRandomSample creates the default strategy. A nil rnd gets a time-seeded
// source.
func NewRandomSample(k int, rnd *rand.Rand) *RandomSample {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &RandomSample{K: k, rnd: rnd}
}

// Analyze returns k actions in shuffled order. K is clamped to [0, len(catalog)].
func (s *RandomSample) Analyze() []string {
	k := s.K
	if k < 0 {
		k = 0
	}
	if k > len(catalog) {
		k = len(catalog)
	}
	perm := s.rnd.Perm(len(catalog))
	picked := make([]string, 0, k)
	for _, i := range perm[:k] {
		picked = append(picked, catalog[i])
	}
	return picked
}

// Fixed always returns the same actions. Used by tests to assert on injected
// output instead of randomness.
type Fixed []string

// Analyze returns the fixed action list.
func (f Fixed) Analyze() []string {
	return []string(f)
}

// Apply runs the strategy and records each selected action.
func Apply(strategy Strategy, rec Recorder, log *slog.Logger) []string {
	actions := strategy.Analyze()
	for _, action := range actions {
		rec.RecordOptimization(ModuleAIAnalysis, action)
		log.Info("optimization applied", "action", action)
	}
	return actions
}
