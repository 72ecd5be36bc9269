package views

import (
	"context"
	"fmt"

	"github.com/a-h/templ"

	appI18n "github.com/pavelanni/studyhub/internal/i18n"
	"github.com/pavelanni/studyhub/internal/quiz"
)

// QuizView is a snapshot of a quiz session taken while the visitor is locked.
type QuizView struct {
	Question     quiz.Question
	Index        int
	Total        int
	Selected     int
	HasSelection bool
	Revealed     bool
	Score        int
	Progress     float64
	Result       *quiz.Result
	Flash        string
}

// NewQuizView captures what the quiz page needs from a session.
func NewQuizView(s *quiz.Session) QuizView {
	v := QuizView{
		Total:    s.Total(),
		Score:    s.Score(),
		Progress: s.Progress(),
	}
	switch st := s.State().(type) {
	case quiz.InProgress:
		v.Index = st.Index()
		v.Question, _ = s.Current()
		v.Selected, v.HasSelection = st.Selected()
		v.Revealed = st.Revealed()
	case quiz.Completed:
		if res, ok := s.Result(); ok {
			v.Result = &res
		}
	}
	return v
}

// QuizPage renders the current question or, once done, the review.
func QuizPage(v QuizView) templ.Component {
	return component(func(ctx context.Context, p *page) {
		title := appI18n.T(ctx, "QuizTitle")
		p.render(ctx, Layout(title, component(func(ctx context.Context, p *page) {
			p.f(`<h1>%s</h1>`, esc(title))
			p.f(`<progress max="100" value="%.0f"></progress>`, v.Progress)
			if v.Flash != "" {
				p.f(`<div class="alert" role="alert">%s</div>`, esc(v.Flash))
			}
			if v.Result != nil {
				quizResult(ctx, p, *v.Result)
				return
			}
			quizQuestion(ctx, p, v)
		})))
	})
}

func quizQuestion(ctx context.Context, p *page, v QuizView) {
	p.f(`<p class="counter">%s</p>`, esc(appI18n.Td(ctx, "QuestionNofM", map[string]any{
		"Current": v.Index + 1,
		"Total":   v.Total,
	})))
	p.f(`<h2>%s</h2>`, esc(v.Question.Prompt))

	if !v.Revealed {
		p.f(`<form method="post" action="%s">`, esc(Href(ctx, "/quiz/select")))
		csrfField(ctx, p)
		for i, opt := range v.Question.Options {
			checked := ""
			if v.HasSelection && v.Selected == i {
				checked = " checked"
			}
			p.f(`<label class="option"><input type="radio" name="option" value="%d"%s onchange="this.form.submit()"> %s</label>`,
				i, checked, esc(opt))
		}
		p.raw(`</form>`)

		disabled := ""
		if !v.HasSelection {
			disabled = " disabled"
		}
		p.f(`<form method="post" action="%s">`, esc(Href(ctx, "/quiz/reveal")))
		csrfField(ctx, p)
		p.f(`<button type="submit"%s>%s</button></form>`, disabled, esc(appI18n.T(ctx, "ShowAnswer")))
		return
	}

	for i, opt := range v.Question.Options {
		class := "option"
		switch {
		case i == v.Question.Correct:
			class += " correct"
		case i == v.Selected:
			class += " incorrect"
		}
		p.f(`<div class="%s">%s</div>`, class, esc(opt))
	}

	verdict := "Incorrect"
	if v.Selected == v.Question.Correct {
		verdict = "Correct"
	}
	p.f(`<p class="verdict">%s</p>`, esc(appI18n.T(ctx, verdict)))
	p.f(`<p class="explanation"><strong>%s:</strong> %s</p>`, esc(appI18n.T(ctx, "Explanation")), esc(v.Question.Explanation))

	next := "NextQuestion"
	if v.Index+1 == v.Total {
		next = "FinishQuiz"
	}
	p.f(`<form method="post" action="%s">`, esc(Href(ctx, "/quiz/next")))
	csrfField(ctx, p)
	p.f(`<button type="submit">%s</button></form>`, esc(appI18n.T(ctx, next)))
}

func quizResult(ctx context.Context, p *page, res quiz.Result) {
	p.f(`<section class="quiz-result"><h2>%s</h2>`, esc(appI18n.T(ctx, "QuizComplete")))
	p.f(`<p class="score">%s</p>`, esc(appI18n.Td(ctx, "ScoreOf", map[string]any{"Score": res.Score, "Total": res.Total})))
	p.f(`<p>%s</p>`, esc(appI18n.Td(ctx, "PercentCorrect", map[string]any{"Percent": fmt.Sprintf("%.0f", res.Percentage)})))
	p.f(`<p class="feedback">%s</p>`, esc(appI18n.T(ctx, res.Feedback.MessageID())))

	p.raw(`<ol class="review">`)
	for _, r := range res.Reviews {
		class := "incorrect"
		if r.Correct {
			class = "correct"
		}
		p.f(`<li class="%s"><p>%s</p>`, class, esc(r.Question.Prompt))
		p.f(`<p>%s: %s</p>`, esc(appI18n.T(ctx, "YourAnswer")), esc(r.Question.Options[r.Answer]))
		if !r.Correct {
			p.f(`<p>%s: %s</p>`, esc(appI18n.T(ctx, "CorrectAnswer")), esc(r.Question.Options[r.Question.Correct]))
		}
		p.raw(`</li>`)
	}
	p.raw(`</ol>`)

	p.f(`<form method="post" action="%s">`, esc(Href(ctx, "/quiz/restart")))
	csrfField(ctx, p)
	p.f(`<button type="submit">%s</button></form></section>`, esc(appI18n.T(ctx, "TryAgain")))
}
