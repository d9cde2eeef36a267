package diet

import (
	"fmt"
	"strings"

	"github.com/Rl0h4w/mealty-food-creator/internal/nutrition"
)

// FormatDay renders a solution's items and nutrient totals against the
// targets as Telegram HTML. It is a pure function; an empty solution renders
// zero totals.
func FormatDay(sol *Solution, target nutrition.Target, day int) string {
	totals := sol.Totals()

	var sb strings.Builder
	fmt.Fprintf(&sb, "🍽 <b>Рацион на день %d:</b>\n", day)

	for _, p := range sol.Portions {
		fmt.Fprintf(&sb, "- %s: %d порц. (Цена: %.0f₽)\n", p.Item.Name, p.Quantity, p.Item.Price)
	}

	sb.WriteString("\n<b>Итого:</b>\n")
	fmt.Fprintf(&sb, "Белки: %.2f г (Цель: %.2f г)\n", totals.Proteins, target.Proteins)
	fmt.Fprintf(&sb, "Жиры: %.2f г (Цель: %.2f г)\n", totals.Fats, target.Fats)
	fmt.Fprintf(&sb, "Углеводы: %.2f г (Цель: %.2f г)\n", totals.Carbs, target.Carbs)
	fmt.Fprintf(&sb, "Калории: %.2f ккал (Цель: %.2f ккал)\n", totals.Calories, target.Calories)
	fmt.Fprintf(&sb, "Общая стоимость: %.2f₽", sol.Cost)

	return sb.String()
}
