package nutrition

import (
	"math"
	"testing"
)

func almostEqual(a, b, tol float64) bool {
	return math.Abs(a-b) <= tol
}

func TestBMR(t *testing.T) {
	// 80kg at 20% body fat -> 64kg lean mass -> 370 + 21.6*64 = 1752.4
	got := BMR(80, 20)
	if !almostEqual(got, 1752.4, 0.01) {
		t.Errorf("Expected BMR 1752.4, got %f", got)
	}
}

func TestBMRHarrisBenedict(t *testing.T) {
	male := BMRHarrisBenedict(Male, 80, 180, 30)
	want := 88.36 + 13.4*80 + 4.8*180 - 5.7*30
	if !almostEqual(male, want, 0.01) {
		t.Errorf("Expected male BMR %f, got %f", want, male)
	}

	female := BMRHarrisBenedict(Female, 60, 165, 25)
	want = 447.6 + 9.2*60 + 3.1*165 - 4.3*25
	if !almostEqual(female, want, 0.01) {
		t.Errorf("Expected female BMR %f, got %f", want, female)
	}
}

func TestDailyCalories(t *testing.T) {
	if got := DailyCalories(2000, ModeratelyActive); !almostEqual(got, 3100, 0.01) {
		t.Errorf("Expected 3100 kcal, got %f", got)
	}
	// Unknown levels fall back to sedentary.
	if got := DailyCalories(2000, ActivityLevel("couch")); !almostEqual(got, 2400, 0.01) {
		t.Errorf("Expected sedentary fallback 2400 kcal, got %f", got)
	}
}

func TestMacros(t *testing.T) {
	t.Run("LoseWeight", func(t *testing.T) {
		protein, fat, carbs, calories := Macros(80, 2500, LoseWeight)
		if !almostEqual(protein, 160, 0.01) {
			t.Errorf("Expected 160g protein, got %f", protein)
		}
		if !almostEqual(fat, 80, 0.01) {
			t.Errorf("Expected 80g fat, got %f", fat)
		}
		if !almostEqual(calories, 2000, 0.01) {
			t.Errorf("Expected adjusted budget 2000 kcal, got %f", calories)
		}
		wantCarbs := (2000.0 - (160*4 + 80*9)) / 4
		if !almostEqual(carbs, wantCarbs, 0.01) {
			t.Errorf("Expected %fg carbs, got %f", wantCarbs, carbs)
		}
	})

	t.Run("CarbsNeverNegative", func(t *testing.T) {
		// A tiny budget leaves nothing for carbs after protein and fat.
		_, _, carbs, _ := Macros(100, 1000, LoseWeight)
		if carbs != 0 {
			t.Errorf("Expected 0g carbs, got %f", carbs)
		}
	})
}

func TestBodyFatNavy(t *testing.T) {
	t.Run("Male", func(t *testing.T) {
		pct, err := BodyFatNavy(Male, 85, 38, 0, 180)
		if err != nil {
			t.Fatalf("BodyFatNavy failed: %v", err)
		}
		if pct <= 0 || pct >= 100 {
			t.Errorf("Expected a percentage inside (0, 100), got %f", pct)
		}
	})

	t.Run("InvalidMeasurements", func(t *testing.T) {
		if _, err := BodyFatNavy(Male, 38, 85, 0, 180); err == nil {
			t.Fatal("Expected an error for waist <= neck, got nil")
		}
	})
}

func TestTargetFor(t *testing.T) {
	bodyFat := 20.0
	p := Profile{
		Weight:   80,
		Height:   180,
		Age:      30,
		Gender:   Male,
		BodyFat:  &bodyFat,
		Activity: ModeratelyActive,
		Goal:     MaintainWeight,
	}

	target := TargetFor(p)
	if target.Proteins <= 0 || target.Fats <= 0 || target.Carbs <= 0 || target.Calories <= 0 {
		t.Fatalf("Expected all targets positive, got %+v", target)
	}

	// The macro split must add back up to the calorie target.
	sum := target.Proteins*4 + target.Fats*9 + target.Carbs*4
	if !almostEqual(sum, target.Calories, 0.5) {
		t.Errorf("Macro calories %f do not match target %f", sum, target.Calories)
	}
}
