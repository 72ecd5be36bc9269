package views

import (
	"context"
	"fmt"
	"strconv"

	"github.com/a-h/templ"

	"github.com/pavelanni/studyhub/internal/calc"
	appI18n "github.com/pavelanni/studyhub/internal/i18n"
)

var calcText = map[calc.Kind]struct{ title, intro, info string }{
	calc.KindBMI:    {"BMITitle", "BMIIntro", "BMIInfo"},
	calc.KindBMR:    {"BMRTitle", "BMRIntro", ""},
	calc.KindDosage: {"DosageTitle", "DosageIntro", "DosageDisclaimer"},
}

var fieldLabels = map[string]string{
	calc.FieldHeight:     "FieldHeight",
	calc.FieldWeight:     "FieldWeight",
	calc.FieldAge:        "FieldAge",
	calc.FieldSex:        "FieldSex",
	calc.FieldActivity:   "FieldActivity",
	calc.FieldDosePerKg:  "FieldDosePerKg",
	calc.FieldMedication: "FieldMedication",
}

var placeholders = map[string]string{
	calc.FieldHeight:    "e.g., 175",
	calc.FieldWeight:    "e.g., 70",
	calc.FieldAge:       "e.g., 25",
	calc.FieldDosePerKg: "e.g., 10",
}

// CalculatorPage renders a calculator form with its current result.
func CalculatorPage(form *calc.Form) templ.Component {
	return component(func(ctx context.Context, p *page) {
		text := calcText[form.Kind()]
		title := appI18n.T(ctx, text.title)
		p.render(ctx, Layout(title, component(func(ctx context.Context, p *page) {
			action := Href(ctx, "/calculators/"+string(form.Kind()))

			p.f(`<h1>%s</h1><p>%s</p>`, esc(title), esc(appI18n.T(ctx, text.intro)))
			p.f(`<form class="calculator" method="post" action="%s" hx-post="%s" hx-target="#result" hx-swap="outerHTML" hx-trigger="input changed, change">`,
				esc(action), esc(action))
			csrfField(ctx, p)
			for _, field := range form.Fields() {
				formField(ctx, p, form.Kind(), field, form.Value(field))
			}
			p.f(`<button type="submit">%s</button></form>`, esc(appI18n.T(ctx, "Calculate")))

			p.f(`<form method="post" action="%s/reset">`, esc(action))
			csrfField(ctx, p)
			p.f(`<button type="submit" class="outline">%s</button></form>`, esc(appI18n.T(ctx, "Reset")))

			p.render(ctx, ResultPanel(form.Kind(), form.Result(), form.Medication()))

			if form.Kind() == calc.KindBMI {
				bmiReference(ctx, p)
			}
			if text.info != "" {
				p.f(`<p class="info">%s</p>`, esc(appI18n.T(ctx, text.info)))
			}
		})))
	})
}

func formField(ctx context.Context, p *page, kind calc.Kind, field, value string) {
	label := fieldLabels[field]
	if kind == calc.KindDosage && field == calc.FieldWeight {
		label = "FieldPatientWeight"
	}
	p.f(`<label for="%s">%s</label>`, esc(field), esc(appI18n.T(ctx, label)))

	switch field {
	case calc.FieldSex:
		p.f(`<select id="%s" name="%s">`, esc(field), esc(field))
		p.f(`<option value="">%s</option>`, esc(appI18n.T(ctx, "ChooseOne")))
		for _, s := range []struct {
			sex   calc.Sex
			msgID string
		}{{calc.SexMale, "SexMale"}, {calc.SexFemale, "SexFemale"}} {
			option(p, string(s.sex), appI18n.T(ctx, s.msgID), value)
		}
		p.raw(`</select>`)
	case calc.FieldActivity:
		p.f(`<select id="%s" name="%s">`, esc(field), esc(field))
		p.f(`<option value="">%s</option>`, esc(appI18n.T(ctx, "ChooseOne")))
		for _, a := range calc.ActivityLevels {
			option(p, a.String(), appI18n.T(ctx, a.MessageID()), value)
		}
		p.raw(`</select>`)
	case calc.FieldMedication:
		p.f(`<input id="%s" name="%s" type="text" value="%s">`, esc(field), esc(field), esc(value))
	default:
		p.f(`<input id="%s" name="%s" type="number" step="any" placeholder="%s" value="%s">`,
			esc(field), esc(field), esc(placeholders[field]), esc(value))
	}
}

func option(p *page, value, label, current string) {
	selected := ""
	if value == current {
		selected = " selected"
	}
	p.f(`<option value="%s"%s>%s</option>`, esc(value), selected, esc(label))
}

func bmiReference(ctx context.Context, p *page) {
	p.f(`<section class="reference"><h2>%s</h2><table>`, esc(appI18n.T(ctx, "BMIReference")))
	for _, b := range calc.BMIBands {
		p.f(`<tr class="severity-%d"><td>%s</td><td>%s</td></tr>`,
			b.Category.Severity(), esc(appI18n.T(ctx, b.Category.MessageID())), esc(b.Range))
	}
	p.raw(`</table></section>`)
}

// ResultPanel renders the derived result of a calculator. It is also the
// fragment returned to htmx requests.
func ResultPanel(kind calc.Kind, res calc.Result, medication string) templ.Component {
	return component(func(ctx context.Context, p *page) {
		if !res.Valid {
			p.f(`<section id="result" class="result empty"><p>%s</p></section>`, esc(appI18n.T(ctx, "ResultIncomplete")))
			return
		}

		p.raw(`<section id="result" class="result">`)
		switch kind {
		case calc.KindBMI:
			p.f(`<h2>%s</h2><p class="value">%s</p>`, esc(appI18n.T(ctx, "ResultBMI")), FormatValue(kind, res.Value))
		case calc.KindBMR:
			p.f(`<h2>%s</h2><p class="value">%s</p>`, esc(appI18n.T(ctx, "ResultBMR")),
				esc(appI18n.Td(ctx, "KcalPerDay", map[string]any{"Value": FormatValue(kind, res.Value)})))
			for _, m := range res.Secondary {
				p.f(`<h3>%s</h3><p class="value">%s</p>`, esc(appI18n.T(ctx, "ResultDailyCalories")),
					esc(appI18n.Td(ctx, "KcalPerDay", map[string]any{"Value": FormatValue(kind, m.Value)})))
			}
		case calc.KindDosage:
			heading := appI18n.T(ctx, "ResultTotalDose")
			if medication != "" {
				heading += ": " + medication
			}
			p.f(`<h2>%s</h2><p class="value">%s</p>`, esc(heading),
				esc(appI18n.Td(ctx, "Milligrams", map[string]any{"Value": FormatValue(kind, res.Value)})))
		}
		if res.Category != "" {
			p.f(`<p class="category severity-%d">%s</p>`, res.Category.Severity(), esc(appI18n.T(ctx, res.Category.MessageID())))
		}
		if res.Warning {
			p.f(`<div class="alert alert-danger" role="alert">%s</div>`, esc(appI18n.T(ctx, "HighDoseWarning")))
		}
		p.raw(`</section>`)
	})
}

// FormatValue prints a result value at the precision its calculator rounds to.
func FormatValue(kind calc.Kind, v float64) string {
	switch kind {
	case calc.KindBMI:
		return strconv.FormatFloat(v, 'f', 1, 64)
	case calc.KindBMR:
		return strconv.Itoa(int(v))
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
