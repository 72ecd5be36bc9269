// Package cli holds the terminal front end: result tables and the
// interactive quiz.
package cli

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/pavelanni/studyhub/internal/calc"
	"github.com/pavelanni/studyhub/internal/model"
	"github.com/pavelanni/studyhub/internal/quiz"
)

// IncompleteInput is printed instead of a table when a calculator has no
// valid result.
const IncompleteInput = "incomplete input"

var (
	alarmColor   = color.New(color.FgRed, color.Bold)    // severity 3
	warnColor    = color.New(color.FgYellow, color.Bold) // severity 2
	noticeColor  = color.New(color.FgYellow)             // severity 1
	neutralColor = color.New(color.FgGreen)              // severity 0
)

// colorCategory applies the severity palette to a category label.
func colorCategory(c calc.Category) string {
	switch c.Severity() {
	case 3:
		return alarmColor.Sprint(string(c))
	case 2:
		return warnColor.Sprint(string(c))
	case 1:
		return noticeColor.Sprint(string(c))
	default:
		return neutralColor.Sprint(string(c))
	}
}

func formatValue(kind calc.Kind, v float64) string {
	switch kind {
	case calc.KindBMI:
		return strconv.FormatFloat(v, 'f', 1, 64)
	case calc.KindBMR:
		return strconv.Itoa(int(v)) + " kcal/day"
	default:
		return fmt.Sprintf("%.2f mg", v)
	}
}

var valueNames = map[calc.Kind]string{
	calc.KindBMI:    "BMI",
	calc.KindBMR:    "BMR",
	calc.KindDosage: "Total dose",
}

var measureNames = map[string]string{
	"daily_calories": "Daily calories",
}

// PrintResult writes a calculator result as a two-column table.
func PrintResult(w io.Writer, res calc.Result, medication string) error {
	if !res.Valid {
		_, err := fmt.Fprintln(w, IncompleteInput)
		return err
	}

	rows := [][]string{{valueNames[res.Kind], formatValue(res.Kind, res.Value)}}
	for _, m := range res.Secondary {
		name := m.Name
		if n, ok := measureNames[name]; ok {
			name = n
		}
		rows = append(rows, []string{name, formatValue(res.Kind, m.Value)})
	}
	if res.Category != "" {
		rows = append(rows, []string{"Category", colorCategory(res.Category)})
	}
	if medication != "" {
		rows = append(rows, []string{"Medication", medication})
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Measure", "Value"})
	if err := table.Bulk(rows); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	if res.Warning {
		_, err := alarmColor.Fprintln(w, "Warning: very high dose. Double-check the weight and dose per kilogram.")
		return err
	}
	return nil
}

// PrintQuestions lists a question bank, marking the correct option.
func PrintQuestions(w io.Writer, bank *quiz.Bank) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"#", "Question", "Answer"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	var rows [][]string
	for i, q := range bank.Questions() {
		rows = append(rows, []string{strconv.Itoa(i + 1), q.Prompt, q.Options[q.Correct]})
	}
	if err := table.Bulk(rows); err != nil {
		return err
	}
	return table.Render()
}

// NewBankExport converts a question bank for JSON output.
func NewBankExport(title string, bank *quiz.Bank) model.BankExport {
	out := model.BankExport{Title: title, NumQuestions: bank.Len()}
	for _, q := range bank.Questions() {
		out.Questions = append(out.Questions, model.QuestionExport{
			ID:          q.ID,
			Question:    q.Prompt,
			Options:     q.Options,
			Correct:     q.Correct,
			Explanation: q.Explanation,
		})
	}
	return out
}

// NewAttemptExport converts a finished quiz for JSON output.
func NewAttemptExport(res quiz.Result, finishedAt time.Time) model.AttemptExport {
	out := model.AttemptExport{
		FinishedAt: finishedAt,
		Score:      res.Score,
		Total:      res.Total,
		Percentage: res.Percentage,
		Feedback:   string(res.Feedback),
	}
	for _, r := range res.Reviews {
		out.Answers = append(out.Answers, model.AnswerExport{
			Question: r.Question.Prompt,
			Answer:   r.Question.Options[r.Answer],
			Correct:  r.Correct,
		})
	}
	return out
}
