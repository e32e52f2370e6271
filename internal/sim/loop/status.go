package loop

// Status is the loop's lifecycle state.
type Status string

const (
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusAborted   Status = "aborted"
)

// validTransitions defines allowed status transitions. Terminal statuses have
// no successors.
var validTransitions = map[Status][]Status{
	StatusRunning: {StatusSucceeded, StatusAborted},
}

// CanTransition checks if a transition from one status to another is valid.
func CanTransition(from, to Status) bool {
	for _, target := range validTransitions[from] {
		if target == to {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status ends the loop.
func (s Status) IsTerminal() bool {
	return s == StatusSucceeded || s == StatusAborted
}

// State carries the loop's streak counters. Exactly one of the two streaks is
// ever positive; a failure resets the success streak, a success or recovered
// failure resets the failure streak.
type State struct {
	ConsecutiveSuccesses int
	ConsecutiveFailures  int
	TotalAttempts        int
}

// Result is the terminal outcome of a loop run.
type Result struct {
	Status Status
	State  State
}
