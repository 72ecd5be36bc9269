package quiz

// Feedback is the closing remark shown with the final score.
type Feedback string

const (
	FeedbackExcellent Feedback = "Excellent work!"
	FeedbackGood      Feedback = "Good job!"
	FeedbackStudy     Feedback = "Keep studying and try again!"
)

// MessageID returns the translation key for the feedback.
func (f Feedback) MessageID() string {
	switch f {
	case FeedbackExcellent:
		return "FeedbackExcellent"
	case FeedbackGood:
		return "FeedbackGood"
	default:
		return "FeedbackStudy"
	}
}

// FeedbackFor picks the remark for a percentage score.
func FeedbackFor(percentage float64) Feedback {
	switch {
	case percentage >= 80:
		return FeedbackExcellent
	case percentage >= 60:
		return FeedbackGood
	default:
		return FeedbackStudy
	}
}

// Review pairs a question with the answer given to it.
type Review struct {
	Question Question `json:"question"`
	Answer   int      `json:"answer"`
	Correct  bool     `json:"correct"`
}

// Result is the summary of a completed quiz.
type Result struct {
	Score      int      `json:"score"`
	Total      int      `json:"total"`
	Percentage float64  `json:"percentage"`
	Feedback   Feedback `json:"feedback"`
	Reviews    []Review `json:"reviews"`
}

func newResult(bank *Bank, c Completed) Result {
	total := bank.Len()
	res := Result{
		Score: c.score,
		Total: total,
	}
	if total > 0 {
		res.Percentage = float64(c.score) / float64(total) * 100
	}
	res.Feedback = FeedbackFor(res.Percentage)

	for i, answer := range c.answers {
		q := bank.Question(i)
		res.Reviews = append(res.Reviews, Review{
			Question: q,
			Answer:   answer,
			Correct:  answer == q.Correct,
		})
	}
	return res
}
