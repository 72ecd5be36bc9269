package calc

import (
	"strconv"
	"strings"
)

// Sex selects the Mifflin-St Jeor constant.
type Sex string

const (
	SexMale   Sex = "male"
	SexFemale Sex = "female"
)

// Valid reports whether s is one of the two accepted values.
func (s Sex) Valid() bool {
	return s == SexMale || s == SexFemale
}

// ParseSex accepts "male" or "female" in any case.
func ParseSex(raw string) (Sex, bool) {
	s := Sex(strings.ToLower(strings.TrimSpace(raw)))
	return s, s.Valid()
}

// ActivityLevel is a daily-calorie multiplier applied to BMR.
type ActivityLevel float64

const (
	ActivitySedentary        ActivityLevel = 1.2
	ActivityLightlyActive    ActivityLevel = 1.375
	ActivityModeratelyActive ActivityLevel = 1.55
	ActivityVeryActive       ActivityLevel = 1.725
	ActivitySuperActive      ActivityLevel = 1.9
)

// ActivityLevels lists the accepted multipliers in ascending order.
var ActivityLevels = []ActivityLevel{
	ActivitySedentary,
	ActivityLightlyActive,
	ActivityModeratelyActive,
	ActivityVeryActive,
	ActivitySuperActive,
}

// Valid reports whether a is one of the five accepted multipliers.
func (a ActivityLevel) Valid() bool {
	for _, l := range ActivityLevels {
		if a == l {
			return true
		}
	}
	return false
}

// String formats the multiplier the way the form submits it.
func (a ActivityLevel) String() string {
	return strconv.FormatFloat(float64(a), 'f', -1, 64)
}

// Label returns the English description of the activity level.
func (a ActivityLevel) Label() string {
	switch a {
	case ActivitySedentary:
		return "Sedentary (little or no exercise)"
	case ActivityLightlyActive:
		return "Lightly active (light exercise 1-3 days/week)"
	case ActivityModeratelyActive:
		return "Moderately active (moderate exercise 3-5 days/week)"
	case ActivityVeryActive:
		return "Very active (hard exercise 6-7 days/week)"
	case ActivitySuperActive:
		return "Super active (very hard exercise, physical job)"
	default:
		return ""
	}
}

// MessageID returns the translation key for the activity label.
func (a ActivityLevel) MessageID() string {
	switch a {
	case ActivitySedentary:
		return "ActivitySedentary"
	case ActivityLightlyActive:
		return "ActivityLightlyActive"
	case ActivityModeratelyActive:
		return "ActivityModeratelyActive"
	case ActivityVeryActive:
		return "ActivityVeryActive"
	case ActivitySuperActive:
		return "ActivitySuperActive"
	default:
		return ""
	}
}

// ParseActivityLevel parses a multiplier and accepts it only if it is one of
// the enumerated levels. Values in between are not extrapolated.
func ParseActivityLevel(raw string) (ActivityLevel, bool) {
	v, ok := parseNumber(raw)
	if !ok {
		return 0, false
	}
	a := ActivityLevel(v)
	return a, a.Valid()
}

// BMRResult holds the basal metabolic rate and the activity-adjusted daily
// calorie estimate, both in kcal.
type BMRResult struct {
	BMR           int `json:"bmr"`
	DailyCalories int `json:"daily_calories"`
}

// ComputeBMR applies the Mifflin-St Jeor equation. Age is in years, weight in
// kilograms and height in centimeters. It reports false unless all numeric
// inputs are strictly positive, both enumerations hold accepted values and
// the results fit in an int.
func ComputeBMR(age float64, sex Sex, weightKg, heightCm float64, activity ActivityLevel) (BMRResult, bool) {
	if !positive(age) || !positive(weightKg) || !positive(heightCm) {
		return BMRResult{}, false
	}
	if !sex.Valid() || !activity.Valid() {
		return BMRResult{}, false
	}

	bmr := mifflinStJeor(age, sex, weightKg, heightCm)
	rounded, ok := RoundInt(bmr)
	if !ok {
		return BMRResult{}, false
	}
	daily, ok := RoundInt(bmr * float64(activity))
	if !ok {
		return BMRResult{}, false
	}
	return BMRResult{BMR: rounded, DailyCalories: daily}, true
}

func mifflinStJeor(age float64, sex Sex, weightKg, heightCm float64) float64 {
	base := 10*weightKg + 6.25*heightCm - 5*age
	if sex == SexMale {
		return base + 5
	}
	return base - 161
}
