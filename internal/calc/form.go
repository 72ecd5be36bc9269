package calc

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"
)

// Kind identifies a calculator.
type Kind string

const (
	KindBMI    Kind = "bmi"
	KindBMR    Kind = "bmr"
	KindDosage Kind = "dosage"
)

// Kinds lists every calculator.
var Kinds = []Kind{KindBMI, KindBMR, KindDosage}

// ParseKind maps a URL segment onto a calculator kind.
func ParseKind(raw string) (Kind, bool) {
	k := Kind(strings.ToLower(raw))
	return k, slices.Contains(Kinds, k)
}

// Form field names, shared by the HTML forms, the JSON API and the CLI.
const (
	FieldHeight     = "height"
	FieldWeight     = "weight"
	FieldAge        = "age"
	FieldSex        = "sex"
	FieldActivity   = "activity"
	FieldDosePerKg  = "dose_per_kg"
	FieldMedication = "medication"
)

var kindFields = map[Kind][]string{
	KindBMI:    {FieldHeight, FieldWeight},
	KindBMR:    {FieldAge, FieldSex, FieldWeight, FieldHeight, FieldActivity},
	KindDosage: {FieldMedication, FieldWeight, FieldDosePerKg},
}

// ErrUnknownField is returned by Form.Set for a field the calculator lacks.
var ErrUnknownField = errors.New("unknown field")

// Measure is a named secondary value of a result.
type Measure struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// Result is the derived state of a form. It is rebuilt from the raw inputs on
// every change and never mutated on its own.
type Result struct {
	Kind      Kind      `json:"kind"`
	Valid     bool      `json:"valid"`
	Value     float64   `json:"value,omitempty"`
	Secondary []Measure `json:"secondary,omitempty"`
	Category  Category  `json:"category,omitempty"`
	Warning   bool      `json:"warning,omitempty"`
}

// Form holds the raw text a user has typed into one calculator together with
// the result derived from it.
type Form struct {
	kind   Kind
	raw    map[string]string
	result Result
}

// NewForm returns an empty form for the given calculator.
func NewForm(kind Kind) *Form {
	f := &Form{kind: kind}
	f.Reset()
	return f
}

// Kind returns the calculator this form belongs to.
func (f *Form) Kind() Kind { return f.kind }

// Fields returns the input names the calculator accepts, in display order.
func (f *Form) Fields() []string {
	return slices.Clone(kindFields[f.kind])
}

// Value returns the raw text currently held for field.
func (f *Form) Value(field string) string {
	return f.raw[field]
}

// Set stores raw text for a field and recomputes the result.
func (f *Form) Set(field, raw string) error {
	if !slices.Contains(kindFields[f.kind], field) {
		return fmt.Errorf("%s calculator: %w %q", f.kind, ErrUnknownField, field)
	}
	f.raw[field] = raw
	f.result = Compute(f.kind, f.raw)
	return nil
}

// Reset clears every input, which also invalidates the result.
func (f *Form) Reset() {
	f.raw = make(map[string]string, len(kindFields[f.kind]))
	f.result = Compute(f.kind, f.raw)
}

// Result returns the result derived from the current inputs.
func (f *Form) Result() Result {
	r := f.result
	r.Secondary = slices.Clone(r.Secondary)
	return r
}

// Medication returns the display-only medication name of a dosage form.
func (f *Form) Medication() string {
	return strings.TrimSpace(f.raw[FieldMedication])
}

// Compute derives a result from raw field values. Missing, unparseable and
// non-positive values all yield an invalid result.
func Compute(kind Kind, raw map[string]string) Result {
	res := Result{Kind: kind}

	switch kind {
	case KindBMI:
		h, _ := parseNumber(raw[FieldHeight])
		w, _ := parseNumber(raw[FieldWeight])
		if r, ok := ComputeBMI(h, w); ok {
			res.Valid = true
			res.Value = r.BMI
			res.Category = r.Category
		}
	case KindBMR:
		age, _ := parseNumber(raw[FieldAge])
		w, _ := parseNumber(raw[FieldWeight])
		h, _ := parseNumber(raw[FieldHeight])
		sex, _ := ParseSex(raw[FieldSex])
		activity, _ := ParseActivityLevel(raw[FieldActivity])
		if r, ok := ComputeBMR(age, sex, w, h, activity); ok {
			res.Valid = true
			res.Value = float64(r.BMR)
			res.Secondary = []Measure{{Name: "daily_calories", Value: float64(r.DailyCalories)}}
		}
	case KindDosage:
		w, _ := parseNumber(raw[FieldWeight])
		d, _ := parseNumber(raw[FieldDosePerKg])
		if r, ok := ComputeDosage(w, d); ok {
			res.Valid = true
			res.Value = r.Total
			res.Category = r.Category
			res.Warning = r.HighDoseWarning
		}
	}

	return res
}

// parseNumber reads a finite decimal number. Blank or malformed text is
// reported as not entered.
func parseNumber(raw string) (float64, bool) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
