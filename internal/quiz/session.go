package quiz

import (
	"errors"
	"slices"
)

var (
	// ErrCompleted is returned for any move other than Restart after the quiz ended.
	ErrCompleted = errors.New("quiz already completed")
	// ErrAlreadyRevealed is returned when selecting or revealing after the answer is shown.
	ErrAlreadyRevealed = errors.New("answer already revealed")
	// ErrNoSelection is returned when revealing before an option is chosen.
	ErrNoSelection = errors.New("no option selected")
	// ErrNotRevealed is returned when advancing before the answer is shown.
	ErrNotRevealed = errors.New("answer not revealed yet")
	// ErrOptionOutOfRange is returned when selecting an option the question lacks.
	ErrOptionOutOfRange = errors.New("option out of range")
)

// Session walks one user through a bank, strictly forward.
type Session struct {
	bank    *Bank
	state   State
	score   int
	answers []int
}

// NewSession starts a session at the first question.
func NewSession(bank *Bank) *Session {
	s := &Session{bank: bank}
	s.Restart()
	return s
}

// Bank returns the questions the session runs over.
func (s *Session) Bank() *Bank { return s.bank }

// State returns the current state.
func (s *Session) State() State { return s.state }

// Score returns the number of correct answers revealed so far.
func (s *Session) Score() int { return s.score }

// Answers returns the options submitted for the questions already passed.
func (s *Session) Answers() []int { return slices.Clone(s.answers) }

// Total returns the number of questions.
func (s *Session) Total() int { return s.bank.Len() }

// Current returns the question on screen, or false once completed.
func (s *Session) Current() (Question, bool) {
	st, ok := s.state.(InProgress)
	if !ok {
		return Question{}, false
	}
	return s.bank.Question(st.index), true
}

// Select chooses option k for the current question. Choosing again
// overwrites the previous choice.
func (s *Session) Select(k int) error {
	st, ok := s.state.(InProgress)
	if !ok {
		return ErrCompleted
	}
	if st.phase == phaseRevealed {
		return ErrAlreadyRevealed
	}
	if k < 0 || k >= len(s.bank.questions[st.index].Options) {
		return ErrOptionOutOfRange
	}
	s.state = InProgress{index: st.index, selected: k, phase: phaseSelected}
	return nil
}

// Reveal shows the answer and scores the selection. A question is scored
// exactly once.
func (s *Session) Reveal() error {
	st, ok := s.state.(InProgress)
	if !ok {
		return ErrCompleted
	}
	switch st.phase {
	case phaseAwaiting:
		return ErrNoSelection
	case phaseRevealed:
		return ErrAlreadyRevealed
	}
	if st.selected == s.bank.questions[st.index].Correct {
		s.score++
	}
	s.state = InProgress{index: st.index, selected: st.selected, phase: phaseRevealed}
	return nil
}

// Advance records the revealed answer and moves to the next question, or to
// Completed after the last one.
func (s *Session) Advance() error {
	st, ok := s.state.(InProgress)
	if !ok {
		return ErrCompleted
	}
	if st.phase != phaseRevealed {
		return ErrNotRevealed
	}
	s.answers = append(s.answers, st.selected)
	if next := st.index + 1; next < s.bank.Len() {
		s.state = InProgress{index: next}
		return nil
	}
	s.state = Completed{score: s.score, answers: slices.Clone(s.answers)}
	return nil
}

// Restart discards all progress. It is legal from any state.
func (s *Session) Restart() {
	s.state = InProgress{}
	s.score = 0
	s.answers = nil
}

// Progress returns how far through the quiz the user is, in percent.
func (s *Session) Progress() float64 {
	total := s.bank.Len()
	switch st := s.state.(type) {
	case InProgress:
		return float64(st.index) / float64(total) * 100
	default:
		return 100
	}
}

// Result summarises a completed session. It reports false while the quiz is
// still in progress.
func (s *Session) Result() (Result, bool) {
	st, ok := s.state.(Completed)
	if !ok {
		return Result{}, false
	}
	return newResult(s.bank, st), true
}
