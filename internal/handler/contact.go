package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pavelanni/studyhub/internal/contact"
	"github.com/pavelanni/studyhub/internal/handler/views"
	appI18n "github.com/pavelanni/studyhub/internal/i18n"
	"github.com/pavelanni/studyhub/internal/metrics"
)

func (h *Handler) handleContactPage(w http.ResponseWriter, r *http.Request) {
	v := visitorFromContext(r.Context())

	v.Lock()
	view := views.ContactView{Draft: v.Draft, Pending: v.Contact.Pending()}
	v.Unlock()

	h.render(w, r, http.StatusOK, views.ContactPage(h.content, view))
}

// handleContactSubmit blocks for the simulated send time. The visitor lock is
// not held while waiting; the submitter rejects overlapping sends itself.
func (h *Handler) handleContactSubmit(w http.ResponseWriter, r *http.Request) {
	msg := contact.Message{
		Name:    r.FormValue("name"),
		Email:   r.FormValue("email"),
		Subject: r.FormValue("subject"),
		Body:    r.FormValue("message"),
	}
	v := visitorFromContext(r.Context())

	v.Lock()
	v.Draft = msg
	v.Unlock()

	notice, err := v.Contact.Submit(r.Context(), msg)
	view := views.ContactView{Draft: msg}
	switch {
	case err == nil:
		metrics.IncContactSubmission("sent")
		slog.Info("contact message accepted", "subject", msg.Subject, "notice", notice.Title)
		v.Lock()
		v.Draft = contact.Message{}
		v.Unlock()
		view.Draft = contact.Message{}
		view.Sent = true
		h.render(w, r, http.StatusOK, views.ContactPage(h.content, view))
	case errors.Is(err, contact.ErrIncomplete):
		metrics.IncContactSubmission("incomplete")
		view.Error = appI18n.T(r.Context(), "ContactIncomplete")
		h.render(w, r, http.StatusBadRequest, views.ContactPage(h.content, view))
	case errors.Is(err, contact.ErrPending):
		metrics.IncContactSubmission("pending")
		view.Error = appI18n.T(r.Context(), "ContactPending")
		view.Pending = true
		h.render(w, r, http.StatusConflict, views.ContactPage(h.content, view))
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		metrics.IncContactSubmission("canceled")
		slog.Debug("contact submission abandoned", "error", err)
	default:
		metrics.IncContactSubmission("error")
		slog.Error("contact submission failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
