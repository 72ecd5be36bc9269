// Package contact handles the contact form. Messages are not delivered
// anywhere; a submission waits a fixed delay and then reports success.
package contact

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

// DefaultDelay is how long a submission takes to "send".
const DefaultDelay = 2 * time.Second

var (
	// ErrIncomplete is returned when a required field is blank.
	ErrIncomplete = errors.New("all fields are required")
	// ErrPending is returned while a previous submission is still in flight.
	ErrPending = errors.New("a message is already being sent")
)

// Message is the content of the contact form.
type Message struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Body    string `json:"message"`
}

// Valid reports whether every field has been filled in.
func (m Message) Valid() bool {
	for _, f := range []string{m.Name, m.Email, m.Subject, m.Body} {
		if strings.TrimSpace(f) == "" {
			return false
		}
	}
	return true
}

// Notice is shown to the user once a message is sent.
type Notice struct {
	Title       string
	Description string
}

// SentNotice is the notice for a successful submission.
var SentNotice = Notice{
	Title:       "Message sent successfully!",
	Description: "We'll get back to you within 24 hours.",
}

// Submitter sends one message at a time for a single visitor.
type Submitter struct {
	delay time.Duration

	mu      sync.Mutex
	pending bool
}

// NewSubmitter returns a submitter that takes delay to complete each send.
func NewSubmitter(delay time.Duration) *Submitter {
	return &Submitter{delay: delay}
}

// Pending reports whether a submission is in flight.
func (s *Submitter) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Submit waits out the delay and returns the success notice. It fails fast
// on an incomplete message or while another submission is pending, and
// returns the context error if ctx ends first.
func (s *Submitter) Submit(ctx context.Context, m Message) (Notice, error) {
	if !m.Valid() {
		return Notice{}, ErrIncomplete
	}

	s.mu.Lock()
	if s.pending {
		s.mu.Unlock()
		return Notice{}, ErrPending
	}
	s.pending = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.pending = false
		s.mu.Unlock()
	}()

	timer := time.NewTimer(s.delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return Notice{}, ctx.Err()
	case <-timer.C:
		return SentNotice, nil
	}
}
