package stats

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/tranvk/selfheal/internal/core/domain"
)

// Bucket accumulates run outcomes for one scope (a module or the general
// sweep). Counters are increment-only.
type Bucket struct {
	Attempts  int            `json:"attempts"`
	Successes int            `json:"successes"`
	Failures  int            `json:"failures"`
	Errors    map[string]int `json:"errors"`
}

func newBucket() *Bucket {
	return &Bucket{Errors: make(map[string]int)}
}

func (b *Bucket) clone() *Bucket {
	c := &Bucket{
		Attempts:  b.Attempts,
		Successes: b.Successes,
		Failures:  b.Failures,
		Errors:    make(map[string]int, len(b.Errors)),
	}
	for kind, n := range b.Errors {
		c.Errors[kind] = n
	}
	return c
}

// Optimization is one entry in the optimization log: either a correction
// outcome or an AI-analysis action.
type Optimization struct {
	ID        string        `json:"id"`
	Timestamp time.Time     `json:"timestamp"`
	Module    domain.Module `json:"module"`
	Error     string        `json:"error,omitempty"`
	Action    string        `json:"action"`
	Succeeded bool          `json:"succeeded"`
}

// Statistics is the durable snapshot shape. Field names match the persisted
// JSON document.
type Statistics struct {
	StartTime          time.Time                 `json:"start_time"`
	EndTime            *time.Time                `json:"end_time,omitempty"`
	Modules            map[domain.Module]*Bucket `json:"modules_tested"`
	General            *Bucket                   `json:"general_tests"`
	CorrectionsApplied int                       `json:"corrections_applied"`
	CorrectionsFailed  int                       `json:"corrections_failed"`
	Optimizations      []Optimization            `json:"optimizations_applied"`
}

func newStatistics(start time.Time) Statistics {
	return Statistics{
		StartTime:     start,
		Modules:       make(map[domain.Module]*Bucket),
		General:       newBucket(),
		Optimizations: []Optimization{},
	}
}

// clone deep-copies the statistics so callers can hand out read-only views.
func (s Statistics) clone() Statistics {
	c := s
	c.Modules = make(map[domain.Module]*Bucket, len(s.Modules))
	for m, b := range s.Modules {
		c.Modules[m] = b.clone()
	}
	c.General = s.General.clone()
	c.Optimizations = append([]Optimization(nil), s.Optimizations...)
	if s.EndTime != nil {
		end := *s.EndTime
		c.EndTime = &end
	}
	return c
}

// TotalAttempts sums attempts across all buckets.
func (s Statistics) TotalAttempts() int {
	total := s.General.Attempts
	for _, b := range s.Modules {
		total += b.Attempts
	}
	return total
}

// Aggregator owns the mutable statistics for a run. Mutation is additive;
// nothing is ever decremented or deleted. Safe for concurrent use: the loop
// writes while the observability server reads snapshots.
type Aggregator struct {
	stats Statistics
	path  string
	now   func() time.Time
	newID func() string
	mu    sync.RWMutex
}

// AggregatorOption customizes an Aggregator.
type AggregatorOption func(*Aggregator)

// WithClock replaces the time source. Test seam.
func WithClock(now func() time.Time) AggregatorOption {
	return func(a *Aggregator) { a.now = now }
}

// WithIDFunc replaces the optimization-record id generator. Test seam.
func WithIDFunc(newID func() string) AggregatorOption {
	return func(a *Aggregator) { a.newID = newID }
}

// NewAggregator creates an Aggregator persisting to path.
func NewAggregator(path string, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		path:  path,
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(a)
	}
	a.stats = newStatistics(a.now())
	return a
}

// Path returns the snapshot file location.
func (a *Aggregator) Path() string {
	return a.path
}

func (a *Aggregator) bucket(m domain.Module) *Bucket {
	m = domain.Normalize(string(m))
	if m == domain.ModuleGeneral {
		return a.stats.General
	}
	b, ok := a.stats.Modules[m]
	if !ok {
		b = newBucket()
		a.stats.Modules[m] = b
	}
	return b
}

// RecordAttempt tallies one sampled run for a module.
func (a *Aggregator) RecordAttempt(m domain.Module, ok bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	b := a.bucket(m)
	b.Attempts++
	if ok {
		b.Successes++
	} else {
		b.Failures++
	}
}

// RecordError tallies the error kind of a failed run.
func (a *Aggregator) RecordError(m domain.Module, kind string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.bucket(m).Errors[kind]++
}

// RecordCorrection appends a correction outcome to the optimization log and
// updates the correction totals.
func (a *Aggregator) RecordCorrection(o domain.CorrectionOutcome) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if o.Succeeded {
		a.stats.CorrectionsApplied++
	} else {
		a.stats.CorrectionsFailed++
	}
	a.stats.Optimizations = append(a.stats.Optimizations, Optimization{
		ID:        a.newID(),
		Timestamp: o.AppliedAt,
		Module:    o.Event.Module,
		Error:     o.Event.Kind,
		Action:    o.Action,
		Succeeded: o.Succeeded,
	})
}

// RecordOptimization appends a standalone optimization action, such as an
// AI-analysis result.
func (a *Aggregator) RecordOptimization(m domain.Module, action string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stats.Optimizations = append(a.stats.Optimizations, Optimization{
		ID:        a.newID(),
		Timestamp: a.now(),
		Module:    m,
		Action:    action,
		Succeeded: true,
	})
}

// Snapshot returns a deep copy of the current statistics.
func (a *Aggregator) Snapshot() Statistics {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.stats.clone()
}
