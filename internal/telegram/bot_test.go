package telegram

import (
	"strings"
	"testing"

	"github.com/Rl0h4w/mealty-food-creator/internal/catalog"
	"github.com/Rl0h4w/mealty-food-creator/internal/diet"
	"github.com/Rl0h4w/mealty-food-creator/internal/nutrition"
	"github.com/Rl0h4w/mealty-food-creator/internal/planner"
)

func TestFormatTargets(t *testing.T) {
	out := formatTargets(nutrition.Target{
		Proteins: 140,
		Fats:     70,
		Carbs:    250,
		Calories: 2190,
	})

	if !strings.Contains(out, "📊 <b>Ваши ежедневные цели:</b>") {
		t.Error("Missing targets header")
	}
	if !strings.Contains(out, "Калории: 2190.00 ккал") {
		t.Error("Missing calorie line")
	}
	if !strings.Contains(out, "Белки: 140.00 г") {
		t.Error("Missing protein line")
	}
}

func TestFormatWeeklyPlan(t *testing.T) {
	sol := &diet.Solution{
		Portions: []diet.Portion{
			{Item: catalog.Item{Name: "Куриный суп", Price: 150}, Quantity: 2},
		},
		Cost: 300,
	}
	plan := planner.WeeklyPlan{
		Days: []planner.DayPlan{
			{Day: 1, Solution: sol, Cost: 300},
			{Day: 2},
		},
	}

	out := formatWeeklyPlan(plan, nutrition.Target{Proteins: 100, Fats: 60, Carbs: 200, Calories: 1800})

	if !strings.Contains(out, "📅 <b>Ваш недельный план питания:</b>") {
		t.Error("Missing weekly plan header")
	}
	if !strings.Contains(out, "Куриный суп: 2 порц.") {
		t.Error("Missing accepted day portions")
	}
	if !strings.Contains(out, "Рацион на день 2") || !strings.Contains(out, "⚠️ Не удалось составить рацион.") {
		t.Error("Missing failed day marker")
	}
	if !strings.Contains(out, "Общая стоимость недели: 300.00₽") {
		t.Error("Missing weekly total")
	}
}

func TestParseDecimal(t *testing.T) {
	v, err := parseDecimal("70,5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 70.5 {
		t.Errorf("expected 70.5, got %g", v)
	}

	if _, err := parseDecimal("семьдесят"); err == nil {
		t.Error("expected error for non-numeric input")
	}
}

func TestParseDecimalInRange(t *testing.T) {
	if _, err := parseDecimalInRange("29", 30, 300); err == nil {
		t.Error("expected error below range")
	}
	if _, err := parseDecimalInRange("301", 30, 300); err == nil {
		t.Error("expected error above range")
	}
	v, err := parseDecimalInRange("82", 30, 300)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v != 82 {
		t.Errorf("expected 82, got %g", v)
	}
}

func TestParseAge(t *testing.T) {
	age, err := parseAge("мне 25 лет")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if age != 25 {
		t.Errorf("expected 25, got %d", age)
	}

	if _, err := parseAge("старый"); err == nil {
		t.Error("expected error without digits")
	}
	if _, err := parseAge("150"); err == nil {
		t.Error("expected error for implausible age")
	}
}

func TestParseExclusions(t *testing.T) {
	if got := parseExclusions("нет"); got != nil {
		t.Errorf("expected nil for 'нет', got %v", got)
	}
	if got := parseExclusions("Нет"); got != nil {
		t.Errorf("expected nil regardless of case, got %v", got)
	}

	got := parseExclusions("грибы, креветки, , сельдерей")
	want := []string{"грибы", "креветки", "сельдерей"}
	if len(got) != len(want) {
		t.Fatalf("expected %d exclusions, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("exclusion %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestSessionStore(t *testing.T) {
	store := newSessionStore()

	if store.get(1) != nil {
		t.Error("expected no session before reset")
	}

	sess := store.reset(1)
	if sess.step != stepWeight {
		t.Errorf("fresh session should start at weight step, got %d", sess.step)
	}
	if store.get(1) != sess {
		t.Error("get should return the session created by reset")
	}

	sess.step = stepGoal
	if store.reset(1).step != stepWeight {
		t.Error("reset should discard previous progress")
	}

	store.delete(1)
	if store.get(1) != nil {
		t.Error("expected no session after delete")
	}
}

func TestKeyboardCallbackData(t *testing.T) {
	kb := activityKeyboard()
	if len(kb.InlineKeyboard) != 5 {
		t.Fatalf("expected 5 activity rows, got %d", len(kb.InlineKeyboard))
	}
	first := kb.InlineKeyboard[0][0]
	if first.CallbackData == nil || *first.CallbackData != "activity_sedentary" {
		t.Error("unexpected callback data for first activity level")
	}

	confirm := confirmKeyboard()
	if *confirm.InlineKeyboard[0][0].CallbackData != "accept" || *confirm.InlineKeyboard[0][1].CallbackData != "reject" {
		t.Error("unexpected confirm callback data")
	}
}
