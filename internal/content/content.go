// Package content loads the read-only copy shown on the informational pages.
package content

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var dataFS embed.FS

// Feature is a calculator teaser on the home page.
type Feature struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Path        string `yaml:"path"`
}

// Topic is one area of engineering statics.
type Topic struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Subtopics   []string `yaml:"subtopics"`
}

// Formula is a named equation.
type Formula struct {
	Name        string `yaml:"name"`
	Formula     string `yaml:"formula"`
	Description string `yaml:"description"`
}

// FormulaCategory groups related formulas.
type FormulaCategory struct {
	Title    string    `yaml:"title"`
	Formulas []Formula `yaml:"formulas"`
}

// Application is a field where statics is put to work.
type Application struct {
	Title       string   `yaml:"title"`
	Category    string   `yaml:"category"`
	Description string   `yaml:"description"`
	Examples    []string `yaml:"examples"`
	RealWorld   string   `yaml:"real_world"`
}

// CaseStudy is a well-known structure analysed with statics.
type CaseStudy struct {
	Title       string   `yaml:"title"`
	Description string   `yaml:"description"`
	Concepts    []string `yaml:"concepts"`
}

// ContactReason is a reason to get in touch.
type ContactReason struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
}

// FAQ is a question answered on the contact page.
type FAQ struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

// Library holds all page content.
type Library struct {
	Features []Feature `yaml:"features"`

	About struct {
		Summary      string   `yaml:"summary"`
		Topics       []Topic  `yaml:"topics"`
		Applications []string `yaml:"applications"`
	}

	FormulaCategories []FormulaCategory `yaml:"categories"`

	Applications []Application `yaml:"applications"`
	CaseStudies  []CaseStudy   `yaml:"case_studies"`

	Contact struct {
		Reasons []ContactReason `yaml:"reasons"`
		FAQs    []FAQ           `yaml:"faqs"`
	}
}

// FormulaCount returns the number of formulas across all categories.
func (l *Library) FormulaCount() int {
	n := 0
	for _, c := range l.FormulaCategories {
		n += len(c.Formulas)
	}
	return n
}

// Load reads and validates the embedded content files.
func Load() (*Library, error) {
	var lib Library

	files := []struct {
		name string
		dst  any
	}{
		{"home.yaml", &lib},
		{"about.yaml", &lib.About},
		{"formulas.yaml", &lib},
		{"applications.yaml", &lib},
		{"contact.yaml", &lib.Contact},
	}
	for _, f := range files {
		data, err := dataFS.ReadFile("data/" + f.name)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", f.name, err)
		}
		if err := yaml.Unmarshal(data, f.dst); err != nil {
			return nil, fmt.Errorf("parse %s: %w", f.name, err)
		}
	}

	if err := lib.validate(); err != nil {
		return nil, err
	}
	return &lib, nil
}

func (l *Library) validate() error {
	var missing []string
	check := func(what, title string) {
		if strings.TrimSpace(title) == "" {
			missing = append(missing, what)
		}
	}

	for _, f := range l.Features {
		check("feature", f.Title)
	}
	for _, t := range l.About.Topics {
		check("topic", t.Title)
	}
	for _, c := range l.FormulaCategories {
		check("formula category", c.Title)
		for _, f := range c.Formulas {
			check("formula in "+c.Title, f.Name)
		}
	}
	for _, a := range l.Applications {
		check("application", a.Title)
	}
	for _, q := range l.Contact.FAQs {
		check("faq", q.Question)
	}

	if len(missing) > 0 {
		return fmt.Errorf("content has untitled entries: %s", strings.Join(missing, ", "))
	}
	if len(l.FormulaCategories) == 0 || len(l.Applications) == 0 {
		return fmt.Errorf("content is missing formulas or applications")
	}
	return nil
}
