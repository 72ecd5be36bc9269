package quiz

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// OptionsPerQuestion is the number of choices every question offers.
const OptionsPerQuestion = 4

//go:embed questions.json
var defaultQuestions []byte

// Question is a single multiple-choice item.
type Question struct {
	ID          int      `json:"id"`
	Prompt      string   `json:"question"`
	Options     []string `json:"options"`
	Correct     int      `json:"correct"`
	Explanation string   `json:"explanation"`
}

// Bank is an ordered, read-only set of questions.
type Bank struct {
	questions []Question
}

// NewBank validates the questions and copies them into a bank.
func NewBank(questions []Question) (*Bank, error) {
	if len(questions) == 0 {
		return nil, fmt.Errorf("question bank is empty")
	}
	qs := make([]Question, len(questions))
	for i, q := range questions {
		if strings.TrimSpace(q.Prompt) == "" {
			return nil, fmt.Errorf("question %d: empty prompt", i+1)
		}
		if len(q.Options) != OptionsPerQuestion {
			return nil, fmt.Errorf("question %d: want %d options, got %d", i+1, OptionsPerQuestion, len(q.Options))
		}
		if q.Correct < 0 || q.Correct >= len(q.Options) {
			return nil, fmt.Errorf("question %d: correct index %d out of range", i+1, q.Correct)
		}
		q.Options = slices.Clone(q.Options)
		qs[i] = q
	}
	return &Bank{questions: qs}, nil
}

// ParseBank decodes a JSON array of questions.
func ParseBank(data []byte) (*Bank, error) {
	var questions []Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("parse questions: %w", err)
	}
	return NewBank(questions)
}

// DefaultBank returns the built-in statics question bank.
func DefaultBank() *Bank {
	b, err := ParseBank(defaultQuestions)
	if err != nil {
		panic(fmt.Sprintf("built-in question bank: %v", err))
	}
	return b
}

// Len returns the number of questions.
func (b *Bank) Len() int { return len(b.questions) }

// Question returns a copy of the i-th question.
func (b *Bank) Question(i int) Question {
	q := b.questions[i]
	q.Options = slices.Clone(q.Options)
	return q
}

// Questions returns a copy of all questions in order.
func (b *Bank) Questions() []Question {
	out := make([]Question, len(b.questions))
	for i := range b.questions {
		out[i] = b.Question(i)
	}
	return out
}
