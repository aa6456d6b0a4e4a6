package health

import (
	"errors"
	"fmt"
	"math"
)

const (
	MeasurementsKey = "body-measurements"
	NutritionKey    = "daily-nutrition"
	GoalsKey        = "health-goals"
)

var (
	ErrMeasurementNotFound = errors.New("measurement not found")
	ErrImplausibleBody     = errors.New("implausible height or weight")
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

type ActivityLevel string

const (
	ActivitySedentary        ActivityLevel = "sedentary"
	ActivityLightlyActive    ActivityLevel = "lightly_active"
	ActivityModeratelyActive ActivityLevel = "moderately_active"
	ActivityVeryActive       ActivityLevel = "very_active"
	ActivityExtremelyActive  ActivityLevel = "extremely_active"
)

var activityMultipliers = map[ActivityLevel]float64{
	ActivitySedentary:        1.2,
	ActivityLightlyActive:    1.375,
	ActivityModeratelyActive: 1.55,
	ActivityVeryActive:       1.725,
	ActivityExtremelyActive:  1.9,
}

var activityLabels = map[ActivityLevel]string{
	ActivitySedentary:        "Sedentary (little or no exercise)",
	ActivityLightlyActive:    "Lightly active (1-3 days/week)",
	ActivityModeratelyActive: "Moderately active (3-5 days/week)",
	ActivityVeryActive:       "Very active (6-7 days/week)",
	ActivityExtremelyActive:  "Extremely active (physical job or twice a day)",
}

// Normalize maps empty and unknown levels to moderately active.
func (l ActivityLevel) Normalize() ActivityLevel {
	if _, ok := activityMultipliers[l]; ok {
		return l
	}
	return ActivityModeratelyActive
}

func (l ActivityLevel) Multiplier() float64 {
	return activityMultipliers[l.Normalize()]
}

func (l ActivityLevel) Label() string {
	return activityLabels[l.Normalize()]
}

type BodyMeasurement struct {
	ID            string        `json:"id"`
	Date          string        `json:"date" validate:"required,date"`
	Weight        float64       `json:"weight" validate:"gt=0"`
	BodyFat       *float64      `json:"bodyFat,omitempty" validate:"omitempty,gte=0,lte=100"`
	Notes         string        `json:"notes,omitempty"`
	Age           int           `json:"age" validate:"gte=0"`
	Height        float64       `json:"height" validate:"gte=0"`
	Gender        Gender        `json:"gender" validate:"oneof=male female"`
	BMR           *float64      `json:"bmr,omitempty"`
	ActivityLevel ActivityLevel `json:"activityLevel,omitempty"`
}

// CalculateBMR uses the Mifflin-St Jeor equation.
func CalculateBMR(weightKg, heightCm float64, age int, gender Gender) float64 {
	genderFactor := -161.0
	if gender == GenderMale {
		genderFactor = 5
	}
	return math.Round(10*weightKg + 6.25*heightCm - 5*float64(age) + genderFactor)
}

// CalculateTDEE scales the BMR by the activity multiplier.
func CalculateTDEE(bmr float64, level ActivityLevel) float64 {
	return math.Round(bmr * level.Multiplier())
}

// CalculateBMI returns weight / height(m)^2 rounded to one decimal.
func CalculateBMI(heightCm, weightKg float64) (float64, error) {
	if heightCm < 50 || heightCm > 300 || weightKg < 10 || weightKg > 500 {
		return 0, fmt.Errorf("%w: height %.1f cm, weight %.1f kg", ErrImplausibleBody, heightCm, weightKg)
	}
	heightM := heightCm / 100
	return math.Round(weightKg/(heightM*heightM)*10) / 10, nil
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal"
	case bmi < 30:
		return "Overweight"
	default:
		return "Obese"
	}
}

// withBMR fills in the activity level default and recomputes the BMR
// when the measurement carries enough data.
func (m BodyMeasurement) withBMR() BodyMeasurement {
	m.ActivityLevel = m.ActivityLevel.Normalize()
	if m.Weight > 0 && m.Height > 0 && m.Age > 0 {
		bmr := CalculateBMR(m.Weight, m.Height, m.Age, m.Gender)
		m.BMR = &bmr
	}
	return m
}
