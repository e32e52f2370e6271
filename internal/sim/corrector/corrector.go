package corrector

import (
	"math/rand"
	"time"

	"github.com/tranvk/selfheal/internal/core/domain"
)

// Fixer attempts to remediate an injected fault. It always returns a non-empty
// action description; ok reports whether the remediation took.
type Fixer interface {
	AttemptFix(m domain.Module, kind string) (ok bool, action string)
}

// Default success rates. Known failure modes are easier to fix than ones that
// fall through to the generic path; the asymmetry is intentional.
const (
	DefaultKnownFixRate    = 0.95
	DefaultFallbackFixRate = 0.5
)

// GenericAction is returned when no remediation is configured for the
// (module, kind) pair.
const GenericAction = "Applied generic correction based on pattern analysis"

// Corrector looks up remediations in a fixed nested table and draws a success
// verdict independently of the fault model's draw.
type Corrector struct {
	actions         map[domain.Module]map[string]string
	knownFixRate    float64
	fallbackFixRate float64
	fixDelay        time.Duration
	rnd             *rand.Rand
	sleep           func(time.Duration)
}

// Option customizes a Corrector.
type Option func(*Corrector)

// WithRand sets the random source. Used by tests for determinism.
func WithRand(rnd *rand.Rand) Option {
	return func(c *Corrector) { c.rnd = rnd }
}

// WithFixRates overrides the known and fallback success probabilities.
func WithFixRates(known, fallback float64) Option {
	return func(c *Corrector) {
		c.knownFixRate = known
		c.fallbackFixRate = fallback
	}
}

// WithFixDelay sets the simulated correction delay. Zero disables it.
func WithFixDelay(d time.Duration) Option {
	return func(c *Corrector) { c.fixDelay = d }
}

// WithSleep replaces the sleep function. Test seam.
func WithSleep(sleep func(time.Duration)) Option {
	return func(c *Corrector) { c.sleep = sleep }
}

// New builds a Corrector over the default remediation table.
func New(opts ...Option) *Corrector {
	c := &Corrector{
		actions:         remediations,
		knownFixRate:    DefaultKnownFixRate,
		fallbackFixRate: DefaultFallbackFixRate,
		fixDelay:        500 * time.Millisecond,
		rnd:             rand.New(rand.NewSource(time.Now().UnixNano())),
		sleep:           time.Sleep,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AttemptFix looks up the remediation for (m, kind) and draws a success
// verdict. Unknown pairs use the generic action and the fallback rate.
func (c *Corrector) AttemptFix(m domain.Module, kind string) (bool, string) {
	action, known := c.lookup(m, kind)

	if c.fixDelay > 0 {
		c.sleep(c.fixDelay)
	}

	rate := c.fallbackFixRate
	if known {
		rate = c.knownFixRate
	}
	return c.rnd.Float64() < rate, action
}

func (c *Corrector) lookup(m domain.Module, kind string) (string, bool) {
	if byKind, ok := c.actions[domain.Normalize(string(m))]; ok {
		if action, ok := byKind[kind]; ok {
			return action, true
		}
	}
	return GenericAction, false
}
