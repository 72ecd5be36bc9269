package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/pavelanni/studyhub/internal/handler/views"
	appI18n "github.com/pavelanni/studyhub/internal/i18n"
	"github.com/pavelanni/studyhub/internal/metrics"
	"github.com/pavelanni/studyhub/internal/quiz"
)

func (h *Handler) handleQuizPage(w http.ResponseWriter, r *http.Request) {
	v := visitorFromContext(r.Context())

	v.Lock()
	view := views.NewQuizView(v.Quiz)
	v.Unlock()

	h.render(w, r, http.StatusOK, views.QuizPage(view))
}

func (h *Handler) handleQuizSelect(w http.ResponseWriter, r *http.Request) {
	option, err := strconv.Atoi(r.FormValue("option"))
	if err != nil {
		metrics.IncQuizTransition("select", false)
		http.Error(w, "invalid option", http.StatusBadRequest)
		return
	}
	h.quizTransition(w, r, "select", func(s *quiz.Session) error {
		return s.Select(option)
	})
}

func (h *Handler) handleQuizReveal(w http.ResponseWriter, r *http.Request) {
	h.quizTransition(w, r, "reveal", (*quiz.Session).Reveal)
}

func (h *Handler) handleQuizNext(w http.ResponseWriter, r *http.Request) {
	h.quizTransition(w, r, "next", (*quiz.Session).Advance)
}

func (h *Handler) handleQuizRestart(w http.ResponseWriter, r *http.Request) {
	h.quizTransition(w, r, "restart", func(s *quiz.Session) error {
		s.Restart()
		return nil
	})
}

// quizTransition applies one action to the visitor's quiz. A rejected action
// leaves the quiz as it was and re-renders it with a notice.
func (h *Handler) quizTransition(w http.ResponseWriter, r *http.Request, name string, apply func(*quiz.Session) error) {
	v := visitorFromContext(r.Context())

	v.Lock()
	err := apply(v.Quiz)
	res, completed := v.Quiz.Result()
	view := views.NewQuizView(v.Quiz)
	v.Unlock()

	metrics.IncQuizTransition(name, err == nil)
	if err != nil {
		slog.Debug("quiz action rejected", "action", name, "error", err)
		status := http.StatusConflict
		if errors.Is(err, quiz.ErrOptionOutOfRange) {
			status = http.StatusBadRequest
		}
		view.Flash = appI18n.T(r.Context(), "QuizConflict")
		h.render(w, r, status, views.QuizPage(view))
		return
	}
	if name == "next" && completed {
		metrics.ObserveQuizScore(res.Percentage)
	}

	http.Redirect(w, r, h.path("/quiz"), http.StatusSeeOther)
}
