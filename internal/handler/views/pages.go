package views

import (
	"context"
	"strings"

	"github.com/a-h/templ"

	"github.com/pavelanni/studyhub/internal/content"
	appI18n "github.com/pavelanni/studyhub/internal/i18n"
)

func list(p *page, items []string) {
	p.raw(`<ul>`)
	for _, it := range items {
		p.f(`<li>%s</li>`, esc(it))
	}
	p.raw(`</ul>`)
}

// HomePage introduces the calculators.
func HomePage(lib *content.Library) templ.Component {
	return component(func(ctx context.Context, p *page) {
		p.render(ctx, Layout(appI18n.T(ctx, "NavHome"), component(func(ctx context.Context, p *page) {
			p.f(`<section class="hero"><h1>%s</h1><p>%s</p>`,
				esc(appI18n.T(ctx, "HomeHeadline")), esc(appI18n.T(ctx, "HomeIntro")))
			p.f(`<a class="button" href="%s">%s</a></section>`,
				esc(Href(ctx, "/calculators/bmi")), esc(appI18n.T(ctx, "StartCalculating")))

			p.raw(`<section class="cards">`)
			for _, f := range lib.Features {
				p.f(`<article class="card"><h2><a href="%s">%s</a></h2><p>%s</p></article>`,
					esc(Href(ctx, f.Path)), esc(f.Title), esc(f.Description))
			}
			p.raw(`</section>`)
		})))
	})
}

// AboutPage explains what engineering statics covers.
func AboutPage(lib *content.Library) templ.Component {
	return component(func(ctx context.Context, p *page) {
		title := appI18n.T(ctx, "AboutTitle")
		p.render(ctx, Layout(title, component(func(ctx context.Context, p *page) {
			p.f(`<h1>%s</h1><p>%s</p>`, esc(title), esc(lib.About.Summary))

			p.f(`<h2>%s</h2><section class="cards">`, esc(appI18n.T(ctx, "TopicsTitle")))
			for _, t := range lib.About.Topics {
				p.f(`<article class="card"><h3>%s</h3><p>%s</p>`, esc(t.Title), esc(t.Description))
				list(p, t.Subtopics)
				p.raw(`</article>`)
			}
			p.raw(`</section>`)

			p.f(`<h2>%s</h2>`, esc(appI18n.T(ctx, "WhereUsed")))
			list(p, lib.About.Applications)
		})))
	})
}

// FormulasPage lists the formula reference by category.
func FormulasPage(lib *content.Library) templ.Component {
	return component(func(ctx context.Context, p *page) {
		title := appI18n.T(ctx, "FormulasTitle")
		p.render(ctx, Layout(title, component(func(ctx context.Context, p *page) {
			p.f(`<h1>%s</h1><p>%s</p>`, esc(title), esc(appI18n.Tp(ctx, "FormulasCount", lib.FormulaCount())))
			for _, c := range lib.FormulaCategories {
				p.f(`<section class="formulas"><h2>%s</h2><dl>`, esc(c.Title))
				for _, f := range c.Formulas {
					p.f(`<dt>%s</dt><dd><code>%s</code> %s</dd>`, esc(f.Name), esc(f.Formula), esc(f.Description))
				}
				p.raw(`</dl></section>`)
			}
		})))
	})
}

// ApplicationsPage shows where statics is applied.
func ApplicationsPage(lib *content.Library) templ.Component {
	return component(func(ctx context.Context, p *page) {
		title := appI18n.T(ctx, "ApplicationsTitle")
		p.render(ctx, Layout(title, component(func(ctx context.Context, p *page) {
			p.f(`<h1>%s</h1><section class="cards">`, esc(title))
			for _, a := range lib.Applications {
				p.f(`<article class="card"><span class="badge">%s</span><h2>%s</h2><p>%s</p>`,
					esc(a.Category), esc(a.Title), esc(a.Description))
				list(p, a.Examples)
				p.f(`<p class="real-world"><strong>%s:</strong> %s</p></article>`,
					esc(appI18n.T(ctx, "RealWorld")), esc(a.RealWorld))
			}
			p.raw(`</section>`)

			p.f(`<h2>%s</h2><section class="cards">`, esc(appI18n.T(ctx, "CaseStudies")))
			for _, cs := range lib.CaseStudies {
				p.f(`<article class="card"><h3>%s</h3><p>%s</p><p class="concepts">%s</p></article>`,
					esc(cs.Title), esc(cs.Description), esc(strings.Join(cs.Concepts, " · ")))
			}
			p.raw(`</section>`)
		})))
	})
}
