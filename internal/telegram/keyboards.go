package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

func yesNoKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Да", "yes"),
			tgbotapi.NewInlineKeyboardButtonData("Нет", "no"),
		),
	)
}

func genderKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Мужской", "gender_male"),
			tgbotapi.NewInlineKeyboardButtonData("Женский", "gender_female"),
		),
	)
}

func activityKeyboard() tgbotapi.InlineKeyboardMarkup {
	levels := []struct {
		text string
		data string
	}{
		{"1. Сидячий образ жизни", "activity_sedentary"},
		{"2. Лёгкая активность", "activity_light"},
		{"3. Средняя активность", "activity_moderate"},
		{"4. Высокая активность", "activity_high"},
		{"5. Очень высокая активность", "activity_extra"},
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(levels))
	for _, l := range levels {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(l.text, l.data),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func goalKeyboard() tgbotapi.InlineKeyboardMarkup {
	goals := []struct {
		text string
		data string
	}{
		{"Похудение", "goal_lose_weight"},
		{"Поддержание веса", "goal_maintain_weight"},
		{"Набор массы", "goal_gain_weight"},
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(goals))
	for _, g := range goals {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(g.text, g.data),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func confirmKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Принимаю", "accept"),
			tgbotapi.NewInlineKeyboardButtonData("Отклоняю", "reject"),
		),
	)
}
