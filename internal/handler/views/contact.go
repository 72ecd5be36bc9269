package views

import (
	"context"

	"github.com/a-h/templ"

	"github.com/pavelanni/studyhub/internal/contact"
	"github.com/pavelanni/studyhub/internal/content"
	appI18n "github.com/pavelanni/studyhub/internal/i18n"
)

// ContactView carries the form state and the outcome of the last submit.
type ContactView struct {
	Draft   contact.Message
	Sent    bool
	Error   string
	Pending bool
}

// ContactPage renders the contact form, reasons to write and the FAQ.
func ContactPage(lib *content.Library, v ContactView) templ.Component {
	return component(func(ctx context.Context, p *page) {
		title := appI18n.T(ctx, "ContactTitle")
		p.render(ctx, Layout(title, component(func(ctx context.Context, p *page) {
			p.f(`<h1>%s</h1>`, esc(title))

			p.f(`<h2>%s</h2><section class="cards">`, esc(appI18n.T(ctx, "ContactReasons")))
			for _, r := range lib.Contact.Reasons {
				p.f(`<article class="card"><h3>%s</h3><p>%s</p></article>`, esc(r.Title), esc(r.Description))
			}
			p.raw(`</section>`)

			if v.Sent {
				p.f(`<div class="toast" role="status"><strong>%s</strong> %s</div>`,
					esc(appI18n.T(ctx, "MessageSent")), esc(appI18n.T(ctx, "MessageSentDetail")))
			}
			if v.Error != "" {
				p.f(`<div class="alert" role="alert">%s</div>`, esc(v.Error))
			}

			p.f(`<form method="post" action="%s" hx-post="%s" hx-select="main" hx-target="main" hx-swap="outerHTML" hx-disabled-elt="button">`,
				esc(Href(ctx, "/contact")), esc(Href(ctx, "/contact")))
			csrfField(ctx, p)
			fields := []struct{ name, msgID, value, kind string }{
				{"name", "ContactName", v.Draft.Name, "text"},
				{"email", "ContactEmail", v.Draft.Email, "email"},
				{"subject", "ContactSubject", v.Draft.Subject, "text"},
			}
			for _, f := range fields {
				p.f(`<label for="%s">%s</label><input id="%s" name="%s" type="%s" required value="%s">`,
					f.name, esc(appI18n.T(ctx, f.msgID)), f.name, f.name, f.kind, esc(f.value))
			}
			p.f(`<label for="message">%s</label><textarea id="message" name="message" required>%s</textarea>`,
				esc(appI18n.T(ctx, "ContactMessage")), esc(v.Draft.Body))

			label, disabled := appI18n.T(ctx, "SendMessage"), ""
			if v.Pending {
				label, disabled = appI18n.T(ctx, "Sending"), " disabled"
			}
			p.f(`<button type="submit"%s>%s</button></form>`, disabled, esc(label))

			p.f(`<h2>%s</h2><dl class="faq">`, esc(appI18n.T(ctx, "FAQTitle")))
			for _, q := range lib.Contact.FAQs {
				p.f(`<dt>%s</dt><dd>%s</dd>`, esc(q.Question), esc(q.Answer))
			}
			p.raw(`</dl>`)
		})))
	})
}
