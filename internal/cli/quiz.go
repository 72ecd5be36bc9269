package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/pavelanni/studyhub/internal/quiz"
)

// ErrAborted is returned when input ends before the quiz is finished.
var ErrAborted = errors.New("quiz aborted")

var (
	correctColor   = color.New(color.FgGreen, color.Bold)
	incorrectColor = color.New(color.FgRed, color.Bold)
)

// RunQuiz asks every question in bank on out, reading one numbered choice
// per line from in, and returns the final result.
func RunQuiz(in io.Reader, out io.Writer, bank *quiz.Bank) (quiz.Result, error) {
	s := quiz.NewSession(bank)
	sc := bufio.NewScanner(in)

	for {
		q, ok := s.Current()
		if !ok {
			break
		}
		st := s.State().(quiz.InProgress)

		fmt.Fprintf(out, "\nQuestion %d of %d\n%s\n", st.Index()+1, s.Total(), q.Prompt)
		for i, opt := range q.Options {
			fmt.Fprintf(out, "  %d) %s\n", i+1, opt)
		}

		for {
			fmt.Fprintf(out, "Your answer [1-%d]: ", len(q.Options))
			if !sc.Scan() {
				if err := sc.Err(); err != nil {
					return quiz.Result{}, fmt.Errorf("read answer: %w", err)
				}
				return quiz.Result{}, ErrAborted
			}
			n, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
			if err == nil && s.Select(n-1) == nil {
				break
			}
			fmt.Fprintf(out, "Please enter a number from 1 to %d.\n", len(q.Options))
		}

		if err := s.Reveal(); err != nil {
			return quiz.Result{}, err
		}
		selected, _ := s.State().(quiz.InProgress).Selected()
		if selected == q.Correct {
			correctColor.Fprintln(out, "Correct!")
		} else {
			incorrectColor.Fprintf(out, "Incorrect. The answer is: %s\n", q.Options[q.Correct])
		}
		fmt.Fprintf(out, "Explanation: %s\n", q.Explanation)

		if err := s.Advance(); err != nil {
			return quiz.Result{}, err
		}
	}

	res, _ := s.Result()
	fmt.Fprintf(out, "\nQuiz complete: %d/%d (%.0f%%)\n", res.Score, res.Total, res.Percentage)
	feedback := incorrectColor
	if res.Feedback != quiz.FeedbackStudy {
		feedback = correctColor
	}
	feedback.Fprintln(out, string(res.Feedback))
	return res, nil
}
