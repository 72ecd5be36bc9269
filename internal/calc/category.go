package calc

// Category is the label shown next to a calculated value.
type Category string

const (
	CategoryUnderweight Category = "Underweight"
	CategoryNormal      Category = "Normal weight"
	CategoryOverweight  Category = "Overweight"
	CategoryObese       Category = "Obese"

	CategoryLowDose      Category = "Low dose"
	CategoryStandardDose Category = "Standard dose"
	CategoryHighDose     Category = "High dose"
	CategoryVeryHighDose Category = "Very high dose - Verify calculation"
)

// MessageID returns the translation key for the category label.
func (c Category) MessageID() string {
	switch c {
	case CategoryUnderweight:
		return "CategoryUnderweight"
	case CategoryNormal:
		return "CategoryNormal"
	case CategoryOverweight:
		return "CategoryOverweight"
	case CategoryObese:
		return "CategoryObese"
	case CategoryLowDose:
		return "CategoryLowDose"
	case CategoryStandardDose:
		return "CategoryStandardDose"
	case CategoryHighDose:
		return "CategoryHighDose"
	case CategoryVeryHighDose:
		return "CategoryVeryHighDose"
	default:
		return ""
	}
}

// Severity ranks a category for display coloring: 0 is neutral, 3 is the
// most alarming.
func (c Category) Severity() int {
	switch c {
	case CategoryNormal, CategoryLowDose:
		return 0
	case CategoryUnderweight, CategoryStandardDose:
		return 1
	case CategoryOverweight, CategoryHighDose:
		return 2
	case CategoryObese, CategoryVeryHighDose:
		return 3
	default:
		return 0
	}
}
