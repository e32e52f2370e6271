package corrector

import (
	"testing"
	"time"

	"github.com/tranvk/selfheal/internal/core/domain"
)

func TestAttemptFix_KnownRemediation(t *testing.T) {
	c := New(WithFixRates(1.0, 0.0), WithFixDelay(0))

	ok, action := c.AttemptFix(domain.ModuleContentGeneration, "API timeout")
	if !ok {
		t.Error("known remediation with rate 1.0 must succeed")
	}
	if action != remediations[domain.ModuleContentGeneration]["API timeout"] {
		t.Errorf("unexpected action %q", action)
	}
}

func TestAttemptFix_FallbackPath(t *testing.T) {
	c := New(WithFixRates(1.0, 0.0), WithFixDelay(0))

	// Unknown kind for a known module
	ok, action := c.AttemptFix(domain.ModuleContentGeneration, "never seen before")
	if ok {
		t.Error("fallback with rate 0 must fail")
	}
	if action != GenericAction {
		t.Errorf("expected generic action, got %q", action)
	}

	// Unknown module routes through general, which has no table entries
	ok, action = c.AttemptFix(domain.Module("bogus"), "API timeout")
	if ok {
		t.Error("unknown module must take the fallback path")
	}
	if action != GenericAction {
		t.Errorf("expected generic action, got %q", action)
	}
}

func TestAttemptFix_ActionNeverEmpty(t *testing.T) {
	c := New(WithFixRates(0.0, 0.0), WithFixDelay(0))

	for m, byKind := range remediations {
		for kind := range byKind {
			if _, action := c.AttemptFix(m, kind); action == "" {
				t.Errorf("empty action for %s/%s", m, kind)
			}
		}
	}
	if _, action := c.AttemptFix(domain.ModuleGeneral, "System error"); action == "" {
		t.Error("empty action on the generic path")
	}
}

func TestAttemptFix_DelaySeam(t *testing.T) {
	var slept time.Duration
	c := New(
		WithFixRates(1.0, 1.0),
		WithFixDelay(250*time.Millisecond),
		WithSleep(func(d time.Duration) { slept = d }),
	)

	c.AttemptFix(domain.ModuleVideoGeneration, "FFmpeg error")
	if slept != 250*time.Millisecond {
		t.Errorf("expected 250ms simulated delay, got %v", slept)
	}

	slept = 0
	c2 := New(WithFixDelay(0), WithSleep(func(d time.Duration) { slept = d }))
	c2.AttemptFix(domain.ModuleVideoGeneration, "FFmpeg error")
	if slept != 0 {
		t.Errorf("zero delay must not sleep, slept %v", slept)
	}
}

func TestRemediationTable_CoversFaultVocabulary(t *testing.T) {
	// Every module with a remediation table keys it by real error kinds.
	for m, byKind := range remediations {
		if !domain.IsKnown(m) {
			t.Errorf("remediation table keyed by unknown module %q", m)
		}
		if len(byKind) == 0 {
			t.Errorf("module %q has an empty remediation table", m)
		}
	}
}
