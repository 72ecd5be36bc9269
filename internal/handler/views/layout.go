// Package views renders the site's HTML as templ components.
package views

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"

	appI18n "github.com/pavelanni/studyhub/internal/i18n"
	"github.com/pavelanni/studyhub/internal/model"
)

func esc(s string) string { return templ.EscapeString(s) }

// page accumulates the first write error so components can write freely.
type page struct {
	w   io.Writer
	err error
}

func (p *page) raw(s string) {
	if p.err == nil {
		_, p.err = io.WriteString(p.w, s)
	}
}

func (p *page) f(format string, args ...any) { p.raw(fmt.Sprintf(format, args...)) }

func (p *page) render(ctx context.Context, c templ.Component) {
	if p.err == nil {
		p.err = c.Render(ctx, p.w)
	}
}

func component(fn func(ctx context.Context, p *page)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		p := &page{w: w}
		fn(ctx, p)
		return p.err
	})
}

// Href prefixes an absolute site path with the deployment base path.
func Href(ctx context.Context, path string) string {
	return model.BasePathFromContext(ctx) + path
}

func csrfField(ctx context.Context, p *page) {
	p.f(`<input type="hidden" name="csrf_token" value="%s">`, esc(model.CSRFTokenFromContext(ctx)))
}

var navItems = []struct{ path, msgID string }{
	{"/", "NavHome"},
	{"/about", "NavAbout"},
	{"/formulas", "NavFormulas"},
	{"/applications", "NavApplications"},
	{"/calculators/bmi", "BMITitle"},
	{"/calculators/bmr", "BMRTitle"},
	{"/calculators/dosage", "DosageTitle"},
	{"/quiz", "NavQuiz"},
	{"/contact", "NavContact"},
}

// Layout wraps a page body with the document head, navigation and footer.
func Layout(title string, body templ.Component) templ.Component {
	return component(func(ctx context.Context, p *page) {
		lang := appI18n.Lang(ctx)
		if lang == "" {
			lang = "en"
		}
		appTitle := appI18n.T(ctx, "AppTitle")

		p.f(`<!DOCTYPE html><html lang="%s"><head><meta charset="utf-8">`, esc(lang))
		p.raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		p.f(`<title>%s | %s</title>`, esc(title), esc(appTitle))
		p.raw(`<script src="https://unpkg.com/htmx.org@2.0.4"></script>`)
		p.raw(`</head><body>`)

		p.f(`<nav class="nav"><a class="brand" href="%s">%s</a><ul>`, esc(Href(ctx, "/")), esc(appTitle))
		for _, item := range navItems {
			p.f(`<li><a href="%s">%s</a></li>`, esc(Href(ctx, item.path)), esc(appI18n.T(ctx, item.msgID)))
		}
		p.raw(`</ul><div class="langs">`)
		for _, l := range appI18n.Languages() {
			p.f(`<a href="?lang=%s">%s</a> `, esc(l), esc(l))
		}
		p.raw(`</div></nav>`)

		p.raw(`<main>`)
		p.render(ctx, body)
		p.raw(`</main>`)

		p.f(`<footer><p>%s</p></footer>`, esc(appI18n.T(ctx, "FooterText")))
		p.raw(`</body></html>`)
	})
}

// NotFoundPage is shown for unknown paths.
func NotFoundPage() templ.Component {
	return component(func(ctx context.Context, p *page) {
		title := appI18n.T(ctx, "NotFound")
		p.render(ctx, Layout(title, component(func(ctx context.Context, p *page) {
			p.f(`<h1>%s</h1>`, esc(title))
		})))
	})
}
