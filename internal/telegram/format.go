package telegram

import (
	"fmt"
	"strings"

	"github.com/Rl0h4w/mealty-food-creator/internal/diet"
	"github.com/Rl0h4w/mealty-food-creator/internal/nutrition"
	"github.com/Rl0h4w/mealty-food-creator/internal/planner"
)

func formatTargets(t nutrition.Target) string {
	var sb strings.Builder
	sb.WriteString("📊 <b>Ваши ежедневные цели:</b>\n")
	fmt.Fprintf(&sb, "Калории: %.2f ккал\n", t.Calories)
	fmt.Fprintf(&sb, "Белки: %.2f г\n", t.Proteins)
	fmt.Fprintf(&sb, "Жиры: %.2f г\n", t.Fats)
	fmt.Fprintf(&sb, "Углеводы: %.2f г", t.Carbs)
	return sb.String()
}

func formatWeeklyPlan(plan planner.WeeklyPlan, target nutrition.Target) string {
	var sb strings.Builder
	sb.WriteString("📅 <b>Ваш недельный план питания:</b>\n\n")

	for _, day := range plan.Days {
		if day.Failed() {
			fmt.Fprintf(&sb, "🍽 <b>Рацион на день %d:</b>\n\n⚠️ Не удалось составить рацион.\n\n", day.Day)
			continue
		}
		sb.WriteString(diet.FormatDay(day.Solution, target, day.Day))
		sb.WriteString("\n\n")
	}

	fmt.Fprintf(&sb, "<b>Общая стоимость недели: %.2f₽</b>", plan.TotalCost())
	return sb.String()
}
