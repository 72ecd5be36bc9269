package calc

// BMIResult is a body mass index rounded to one decimal and its category.
type BMIResult struct {
	BMI      float64  `json:"bmi"`
	Category Category `json:"category"`
}

// BMIBand describes one BMI category range for the reference table.
type BMIBand struct {
	Category Category
	Range    string
}

// BMIBands lists the BMI categories in ascending order.
var BMIBands = []BMIBand{
	{CategoryUnderweight, "< 18.5"},
	{CategoryNormal, "18.5 - 24.9"},
	{CategoryOverweight, "25.0 - 29.9"},
	{CategoryObese, ">= 30.0"},
}

// ComputeBMI expects height in centimeters and weight in kilograms.
// It reports false when either value is not strictly positive or the ratio
// overflows.
func ComputeBMI(heightCm, weightKg float64) (BMIResult, bool) {
	if !positive(heightCm) || !positive(weightKg) {
		return BMIResult{}, false
	}

	h := heightCm / 100.0
	bmi := weightKg / (h * h)
	rounded := Round(bmi, 1)
	if !finite(rounded) {
		return BMIResult{}, false
	}
	return BMIResult{
		BMI:      rounded,
		Category: ClassifyBMI(bmi),
	}, true
}

// ClassifyBMI maps a BMI value onto its half-open category interval.
func ClassifyBMI(bmi float64) Category {
	switch {
	case bmi < 18.5:
		return CategoryUnderweight
	case bmi < 25.0:
		return CategoryNormal
	case bmi < 30.0:
		return CategoryOverweight
	default:
		return CategoryObese
	}
}
