package session

import (
	"sync"
	"time"

	"github.com/pavelanni/studyhub/internal/calc"
	"github.com/pavelanni/studyhub/internal/contact"
	"github.com/pavelanni/studyhub/internal/quiz"
)

// Visitor owns everything one browser has on screen: a form per calculator,
// a quiz session and the contact form. Callers hold the lock while reading
// or changing the forms and quiz so each action completes before the next.
type Visitor struct {
	sync.Mutex

	Forms   map[calc.Kind]*calc.Form
	Quiz    *quiz.Session
	Draft   contact.Message
	Contact *contact.Submitter
}

// NewVisitor returns fresh state for a new visitor.
func NewVisitor(bank *quiz.Bank, contactDelay time.Duration) *Visitor {
	forms := make(map[calc.Kind]*calc.Form, len(calc.Kinds))
	for _, k := range calc.Kinds {
		forms[k] = calc.NewForm(k)
	}
	return &Visitor{
		Forms:   forms,
		Quiz:    quiz.NewSession(bank),
		Contact: contact.NewSubmitter(contactDelay),
	}
}

// Form returns the visitor's form for a calculator.
func (v *Visitor) Form(k calc.Kind) *calc.Form {
	return v.Forms[k]
}
