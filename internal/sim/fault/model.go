package fault

import (
	"math/rand"
	"time"

	"github.com/tranvk/selfheal/internal/core/domain"
)

// Sampler draws one simulated run for a module. ok is false when a fault was
// injected, in which case kind names the injected error.
type Sampler interface {
	Sample(m domain.Module) (ok bool, kind string)
}

// Profile is the static fault configuration for one module.
type Profile struct {
	FailureRate float64
	ErrorKinds  []string
}

// Model is a table-driven fault sampler. The table is loaded once; sampling is
// memoryless, so there is no correlation between calls.
type Model struct {
	profiles map[domain.Module]Profile
	general  Profile
	rnd      *rand.Rand
}

// Option customizes a Model.
type Option func(*Model)

// WithRand sets the random source. Used by tests for determinism.
func WithRand(rnd *rand.Rand) Option {
	return func(m *Model) { m.rnd = rnd }
}

// WithProfile overrides (or adds) the profile for one module.
func WithProfile(mod domain.Module, p Profile) Option {
	return func(m *Model) {
		if mod == domain.ModuleGeneral {
			m.general = p
			return
		}
		m.profiles[mod] = p
	}
}

// NewModel builds a fault model from the default per-module tables.
func NewModel(opts ...Option) *Model {
	profiles := make(map[domain.Module]Profile, len(defaultProfiles))
	for mod, p := range defaultProfiles {
		profiles[mod] = p
	}

	m := &Model{
		profiles: profiles,
		general:  generalProfile,
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Sample simulates one run of the given module. Unrecognized modules sample
// the general profile.
func (m *Model) Sample(mod domain.Module) (bool, string) {
	profile := m.profile(mod)

	if m.rnd.Float64() >= profile.FailureRate {
		return true, ""
	}

	kinds := profile.ErrorKinds
	if len(kinds) == 0 {
		kinds = generalProfile.ErrorKinds
	}
	return false, kinds[m.rnd.Intn(len(kinds))]
}

// Profile returns the effective profile for a module.
func (m *Model) Profile(mod domain.Module) Profile {
	return m.profile(mod)
}

func (m *Model) profile(mod domain.Module) Profile {
	if p, ok := m.profiles[domain.Normalize(string(mod))]; ok {
		return p
	}
	return m.general
}
