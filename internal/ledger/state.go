package ledger

import "fmt"

// State is a step of a single sale attempt.
type State string

const (
	Idle               State = "idle"
	Validating         State = "validating"
	Rejected           State = "rejected"
	Committing         State = "committing"
	Committed          State = "committed"
	PartiallyCommitted State = "partially_committed"
)

var transitions = map[State][]State{
	Idle:       {Validating},
	Validating: {Rejected, Committing},
	Committing: {Rejected, Committed, PartiallyCommitted},
}

// Terminal reports whether no further transition is possible from s.
func (s State) Terminal() bool {
	return s == Rejected || s == Committed || s == PartiallyCommitted
}

// CanTransition reports whether the table allows moving from s to next.
func (s State) CanTransition(next State) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// attempt tracks one pass through the state machine.
type attempt struct {
	state State
	trail []State
}

func newAttempt() *attempt {
	return &attempt{state: Idle, trail: []State{Idle}}
}

func (a *attempt) moveTo(next State) {
	if !a.state.CanTransition(next) {
		panic(fmt.Sprintf("ledger: illegal transition %s -> %s", a.state, next))
	}
	a.state = next
	a.trail = append(a.trail, next)
}
