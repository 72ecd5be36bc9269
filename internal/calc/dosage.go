package calc

// highDoseThreshold is the total (mg) at which a dose must be double-checked.
const highDoseThreshold = 500

// DosageResult is a weight-based total dose in milligrams.
type DosageResult struct {
	Total           float64  `json:"total"`
	Category        Category `json:"category"`
	HighDoseWarning bool     `json:"high_dose_warning"`
}

// ComputeDosage multiplies patient weight (kg) by the dose per kilogram
// (mg/kg) and rounds to two decimals. The category and warning are taken
// from the rounded total, which is the value shown.
func ComputeDosage(weightKg, dosePerKg float64) (DosageResult, bool) {
	if !positive(weightKg) || !positive(dosePerKg) {
		return DosageResult{}, false
	}

	total := Round(weightKg*dosePerKg, 2)
	if !finite(total) {
		return DosageResult{}, false
	}
	return DosageResult{
		Total:           total,
		Category:        ClassifyDosage(total),
		HighDoseWarning: total >= highDoseThreshold,
	}, true
}

// ClassifyDosage maps a total dose onto its half-open category interval.
func ClassifyDosage(total float64) Category {
	switch {
	case total < 10:
		return CategoryLowDose
	case total < 100:
		return CategoryStandardDose
	case total < highDoseThreshold:
		return CategoryHighDose
	default:
		return CategoryVeryHighDose
	}
}
