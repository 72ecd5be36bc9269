package model

import "time"

// BankExport is the JSON structure written by the questions command.
type BankExport struct {
	Title        string           `json:"title"`
	NumQuestions int              `json:"num_questions"`
	Questions    []QuestionExport `json:"questions"`
}

// QuestionExport is a single question in a bank export.
type QuestionExport struct {
	ID          int      `json:"id"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Correct     int      `json:"correct"`
	Explanation string   `json:"explanation"`
}

// AttemptExport records one finished quiz run from the terminal.
type AttemptExport struct {
	FinishedAt time.Time      `json:"finished_at"`
	Score      int            `json:"score"`
	Total      int            `json:"total"`
	Percentage float64        `json:"percentage"`
	Feedback   string         `json:"feedback"`
	Answers    []AnswerExport `json:"answers"`
}

// AnswerExport is the answer given to one question.
type AnswerExport struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Correct  bool   `json:"correct"`
}
