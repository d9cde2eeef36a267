// Package nutrition computes daily macro and calorie targets from user
// biometrics. All formulas are deterministic arithmetic; the rest of the
// system only depends on the resulting Target.
package nutrition

import (
	"fmt"
	"math"
)

// Gender of the user, as collected by the questionnaire.
type Gender string

const (
	Male   Gender = "male"
	Female Gender = "female"
)

// ActivityLevel maps to a daily calorie multiplier.
type ActivityLevel string

const (
	Sedentary        ActivityLevel = "sedentary"
	LightlyActive    ActivityLevel = "lightly_active"
	ModeratelyActive ActivityLevel = "moderately_active"
	VeryActive       ActivityLevel = "very_active"
	ExtraActive      ActivityLevel = "extra_active"
)

// Goal adjusts the calorie budget and protein intake.
type Goal string

const (
	LoseWeight     Goal = "lose_weight"
	MaintainWeight Goal = "maintain_weight"
	GainWeight     Goal = "gain_weight"
)

// Target holds the daily nutrient targets, fixed for the whole week.
type Target struct {
	Proteins float64
	Fats     float64
	Carbs    float64
	Calories float64
}

// Profile is the set of biometrics collected from the user. BodyFat is nil
// when the user does not know their body fat percentage; the Harris-Benedict
// estimate is used instead.
type Profile struct {
	Weight   float64 // kg
	Height   float64 // cm
	Age      int
	Gender   Gender
	BodyFat  *float64 // percent, optional
	Activity ActivityLevel
	Goal     Goal
}

var activityMultipliers = map[ActivityLevel]float64{
	Sedentary:        1.2,
	LightlyActive:    1.375,
	ModeratelyActive: 1.55,
	VeryActive:       1.725,
	ExtraActive:      1.9,
}

// BMR estimates the basal metabolic rate from weight and body fat
// percentage (Katch-McArdle).
func BMR(weight, bodyFatPercent float64) float64 {
	leanBodyMass := weight * (1 - bodyFatPercent/100)
	return 370 + 21.6*leanBodyMass
}

// BMRHarrisBenedict estimates the basal metabolic rate when body fat is
// unknown.
func BMRHarrisBenedict(gender Gender, weight, height float64, age int) float64 {
	if gender == Male {
		return 88.36 + 13.4*weight + 4.8*height - 5.7*float64(age)
	}
	return 447.6 + 9.2*weight + 3.1*height - 4.3*float64(age)
}

// DailyCalories scales a BMR by the activity multiplier. Unknown levels fall
// back to sedentary.
func DailyCalories(bmr float64, activity ActivityLevel) float64 {
	multiplier, ok := activityMultipliers[activity]
	if !ok {
		multiplier = activityMultipliers[Sedentary]
	}
	return bmr * multiplier
}

// Macros splits a calorie budget into protein, fat and carb targets in
// grams. The returned calories are the goal-adjusted budget the macros were
// derived from.
func Macros(weight, dailyCalories float64, goal Goal) (protein, fat, carbs, calories float64) {
	calories = dailyCalories
	switch goal {
	case LoseWeight:
		calories -= 500
		protein = 2.0 * weight
	case GainWeight:
		calories += 500
		protein = 1.6 * weight
	default:
		protein = 1.4 * weight
	}
	fat = 1.0 * weight

	remaining := calories - (protein*4 + fat*9)
	if remaining > 0 {
		carbs = remaining / 4
	}
	return protein, fat, carbs, calories
}

// BodyFatNavy estimates body fat percentage from tape measurements using the
// U.S. Navy circumference method. Hip is only used for females. The result
// is clamped to [0, 100].
func BodyFatNavy(gender Gender, waist, neck, hip, height float64) (float64, error) {
	var pct float64
	if gender == Male {
		if waist-neck <= 0 || height <= 0 {
			return 0, fmt.Errorf("invalid measurements: waist must exceed neck")
		}
		pct = 495/(1.0324-0.19077*math.Log10(waist-neck)+0.15456*math.Log10(height)) - 450
	} else {
		if waist+hip-neck <= 0 || height <= 0 {
			return 0, fmt.Errorf("invalid measurements: waist plus hip must exceed neck")
		}
		pct = 495/(1.29579-0.35004*math.Log10(waist+hip-neck)+0.22100*math.Log10(height)) - 450
	}
	return math.Max(0, math.Min(pct, 100)), nil
}

// TargetFor derives the weekly nutrient targets for a profile. The calorie
// target is the goal-adjusted budget, so the four windows stay mutually
// satisfiable.
func TargetFor(p Profile) Target {
	var bmr float64
	if p.BodyFat != nil {
		bmr = BMR(p.Weight, *p.BodyFat)
	} else {
		bmr = BMRHarrisBenedict(p.Gender, p.Weight, p.Height, p.Age)
	}

	daily := DailyCalories(bmr, p.Activity)
	protein, fat, carbs, calories := Macros(p.Weight, daily, p.Goal)

	return Target{
		Proteins: protein,
		Fats:     fat,
		Carbs:    carbs,
		Calories: calories,
	}
}
