package quiz

import "slices"

// State is either InProgress or Completed.
type State interface {
	isState()
}

type phase int

const (
	phaseAwaiting phase = iota
	phaseSelected
	phaseRevealed
)

// InProgress is the state while a question is on screen. A revealed state
// always carries a selection; the fields are unexported so no other
// combination can be built.
type InProgress struct {
	index    int
	selected int
	phase    phase
}

func (InProgress) isState() {}

// Index is the zero-based position of the current question.
func (s InProgress) Index() int { return s.index }

// Selected returns the chosen option, if any.
func (s InProgress) Selected() (int, bool) {
	if s.phase == phaseAwaiting {
		return 0, false
	}
	return s.selected, true
}

// Revealed reports whether the answer to the current question is shown.
func (s InProgress) Revealed() bool { return s.phase == phaseRevealed }

// Completed is the terminal state reached after the last question.
type Completed struct {
	score   int
	answers []int
}

func (Completed) isState() {}

// Score is the number of correct answers.
func (s Completed) Score() int { return s.score }

// Answers returns the submitted option for every question, in order.
func (s Completed) Answers() []int { return slices.Clone(s.answers) }
