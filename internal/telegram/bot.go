package telegram

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/Rl0h4w/mealty-food-creator/internal/catalog"
	"github.com/Rl0h4w/mealty-food-creator/internal/config"
	"github.com/Rl0h4w/mealty-food-creator/internal/diet"
	"github.com/Rl0h4w/mealty-food-creator/internal/nutrition"
	"github.com/Rl0h4w/mealty-food-creator/internal/planner"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const greeting = `👋 Привет! Я помогу составить недельный рацион из каталога Mealty под ваши цели.

<b>Шаг 1 из 7.</b> Введите ваш вес в килограммах (например, 70.5):`

// Bot wraps the Telegram API, the catalog service and the diet search engine.
type Bot struct {
	api      *tgbotapi.BotAPI
	catalog  *catalog.Service
	engine   planner.SearchEngine
	sessions *sessionStore
}

// NewBot initializes the Telegram Bot and sets the Webhook.
func NewBot(cfg *config.Config, catalogSvc *catalog.Service, engine planner.SearchEngine) (*Bot, error) {
	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		return nil, fmt.Errorf("failed to init telegram api: %w", err)
	}

	log.Printf("Authorized on account %s", bot.Self.UserName)

	wh, err := tgbotapi.NewWebhook(cfg.TelegramWebhookURL)
	if err != nil {
		return nil, fmt.Errorf("invalid webhook URL %q: %w", cfg.TelegramWebhookURL, err)
	}
	resp, err := bot.Request(wh)
	if err != nil {
		return nil, fmt.Errorf("failed to set webhook to %s: %w", cfg.TelegramWebhookURL, err)
	}
	log.Printf("Webhook set response: %s", resp.Description)

	return &Bot{
		api:      bot,
		catalog:  catalogSvc,
		engine:   engine,
		sessions: newSessionStore(),
	}, nil
}

// RegisterHandlers registers the webhook handler with the default HTTP mux.
func (b *Bot) RegisterHandlers() {
	http.HandleFunc("/webhook", b.handleWebhook)
	http.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
}

func (b *Bot) handleWebhook(w http.ResponseWriter, r *http.Request) {
	update, err := b.api.HandleUpdate(r)
	if err != nil {
		log.Printf("Error parsing update: %v", err)
		return
	}

	if update.CallbackQuery != nil {
		b.handleCallbackQuery(update.CallbackQuery)
		return
	}

	if update.Message == nil {
		return
	}

	go b.processMessage(update.Message)
}

func (b *Bot) processMessage(msg *tgbotapi.Message) {
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		switch msg.Command() {
		case "start":
			b.sessions.reset(chatID)
			b.send(chatID, greeting)
		case "help":
			b.send(chatID, "Я составляю недельный рацион из блюд Mealty под ваши цели по калориям и БЖУ.\n\n/start — начать заново\n/cancel — прервать текущий опрос")
		case "cancel":
			b.sessions.delete(chatID)
			b.send(chatID, "Опрос прерван. Отправьте /start, чтобы начать заново.")
		default:
			b.send(chatID, "Неизвестная команда. Отправьте /help.")
		}
		return
	}

	sess := b.sessions.get(chatID)
	if sess == nil {
		b.send(chatID, "Отправьте /start, чтобы начать.")
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	switch sess.step {
	case stepWeight:
		v, err := parseDecimalInRange(msg.Text, 30, 300)
		if err != nil {
			b.send(chatID, "⚠️ Введите вес числом от 30 до 300 кг.")
			return
		}
		sess.weight = v
		sess.step = stepHeight
		b.send(chatID, "<b>Шаг 2 из 7.</b> Введите ваш рост в сантиметрах (например, 175):")
	case stepHeight:
		v, err := parseDecimalInRange(msg.Text, 100, 250)
		if err != nil {
			b.send(chatID, "⚠️ Введите рост числом от 100 до 250 см.")
			return
		}
		sess.height = v
		sess.step = stepAge
		b.send(chatID, "<b>Шаг 3 из 7.</b> Введите ваш возраст:")
	case stepAge:
		age, err := parseAge(msg.Text)
		if err != nil {
			b.send(chatID, "⚠️ Введите возраст числом от 5 до 120 лет.")
			return
		}
		sess.age = age
		sess.step = stepGender
		b.sendWithKeyboard(chatID, "<b>Шаг 4 из 7.</b> Укажите ваш пол:", genderKeyboard())
	case stepBodyFat:
		v, err := parseDecimal(msg.Text)
		if err != nil || v <= 0 || v >= 100 {
			b.send(chatID, "⚠️ Введите процент жира числом от 0 до 100 (не включительно).")
			return
		}
		sess.bodyFat = &v
		b.askActivity(chatID, sess)
	case stepWaist:
		v, err := parseDecimalInRange(msg.Text, 30, 200)
		if err != nil {
			b.send(chatID, "⚠️ Введите обхват талии числом от 30 до 200 см.")
			return
		}
		sess.waist = v
		sess.step = stepNeck
		b.send(chatID, "📏 Введите обхват шеи в сантиметрах:")
	case stepNeck:
		v, err := parseDecimalInRange(msg.Text, 10, 100)
		if err != nil {
			b.send(chatID, "⚠️ Введите обхват шеи числом от 10 до 100 см.")
			return
		}
		sess.neck = v
		if sess.gender == nutrition.Female {
			sess.step = stepHip
			b.send(chatID, "📏 Введите обхват бёдер в сантиметрах:")
			return
		}
		b.finishBodyFat(chatID, sess)
	case stepHip:
		v, err := parseDecimalInRange(msg.Text, 20, 200)
		if err != nil {
			b.send(chatID, "⚠️ Введите обхват бёдер числом от 20 до 200 см.")
			return
		}
		sess.hip = v
		b.finishBodyFat(chatID, sess)
	case stepExclusions:
		sess.exclusions = parseExclusions(msg.Text)
		sess.step = stepReview
		b.send(chatID, "⏳ Спасибо! Начинаю составление вашего недельного рациона.\nЭто может занять несколько минут.")
		b.startPlanning(chatID, sess)
	case stepReview:
		b.send(chatID, "Пожалуйста, используйте кнопки под сообщением.")
	default:
		b.send(chatID, "Пожалуйста, используйте кнопки под сообщением.")
	}
}

func (b *Bot) handleCallbackQuery(query *tgbotapi.CallbackQuery) {
	// Answer callback to remove spinner
	b.api.Request(tgbotapi.NewCallback(query.ID, ""))

	if query.Message == nil {
		return
	}
	chatID := query.Message.Chat.ID
	sess := b.sessions.get(chatID)
	if sess == nil {
		return
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	data := query.Data
	switch {
	case sess.step == stepGender && strings.HasPrefix(data, "gender_"):
		if data == "gender_female" {
			sess.gender = nutrition.Female
		} else {
			sess.gender = nutrition.Male
		}
		sess.step = stepBodyFatKnown
		b.edit(chatID, query.Message.MessageID, "Знаете ли вы свой процент жира в организме?", yesNoKeyboard())
	case sess.step == stepBodyFatKnown && (data == "yes" || data == "no"):
		if data == "yes" {
			sess.step = stepBodyFat
			b.edit(chatID, query.Message.MessageID, "💯 Введите ваш процент жира (например, 18.5):", tgbotapi.InlineKeyboardMarkup{})
		} else {
			sess.step = stepWaist
			b.edit(chatID, query.Message.MessageID, "Рассчитаем его по формуле ВМС США.\n\n📏 Введите обхват талии в сантиметрах:", tgbotapi.InlineKeyboardMarkup{})
		}
	case sess.step == stepActivity && strings.HasPrefix(data, "activity_"):
		switch data {
		case "activity_sedentary":
			sess.activity = nutrition.Sedentary
		case "activity_light":
			sess.activity = nutrition.LightlyActive
		case "activity_moderate":
			sess.activity = nutrition.ModeratelyActive
		case "activity_high":
			sess.activity = nutrition.VeryActive
		case "activity_extra":
			sess.activity = nutrition.ExtraActive
		default:
			return
		}
		sess.step = stepGoal
		b.edit(chatID, query.Message.MessageID, "<b>Шаг 6 из 7.</b> Какая у вас цель?", goalKeyboard())
	case sess.step == stepGoal && strings.HasPrefix(data, "goal_"):
		switch data {
		case "goal_lose_weight":
			sess.goal = nutrition.LoseWeight
		case "goal_maintain_weight":
			sess.goal = nutrition.MaintainWeight
		case "goal_gain_weight":
			sess.goal = nutrition.GainWeight
		default:
			return
		}
		sess.step = stepExclusions
		b.edit(chatID, query.Message.MessageID,
			"<b>Шаг 7 из 7.</b> Перечислите через запятую продукты, которые нужно исключить (например: грибы, креветки).\n\nЕсли исключений нет, напишите «нет».",
			tgbotapi.InlineKeyboardMarkup{})
	case sess.step == stepReview && (data == "accept" || data == "reject"):
		go b.handleDecision(chatID, query.Message.MessageID, sess, data)
	}
}

// askActivity moves the questionnaire past the body composition block.
func (b *Bot) askActivity(chatID int64, sess *session) {
	sess.step = stepActivity
	b.sendWithKeyboard(chatID, "<b>Шаг 5 из 7.</b> Выберите ваш уровень активности:", activityKeyboard())
}

// finishBodyFat derives the body fat percentage from tape measurements.
func (b *Bot) finishBodyFat(chatID int64, sess *session) {
	bf, err := nutrition.BodyFatNavy(sess.gender, sess.waist, sess.neck, sess.hip, sess.height)
	if err != nil {
		log.Printf("Body fat estimate failed for chat %d: %v", chatID, err)
		b.sessions.delete(chatID)
		b.send(chatID, "⚠️ Не удалось рассчитать процент жира по этим меркам. Отправьте /start и попробуйте ещё раз.")
		return
	}
	sess.bodyFat = &bf
	b.send(chatID, fmt.Sprintf("📊 Ваш приблизительный процент жира: <b>%.1f%%</b>", bf))
	b.askActivity(chatID, sess)
}

func (b *Bot) startPlanning(chatID int64, sess *session) {
	ctx := context.Background()

	items, err := b.catalog.Ensure(ctx)
	if err != nil {
		log.Printf("Catalog load failed for chat %d: %v", chatID, err)
		b.sessions.delete(chatID)
		b.send(chatID, "⚠️ Не удалось получить данные о продуктах. Попробуйте позже: /start")
		return
	}

	filtered := catalog.Filter(items, sess.exclusions)
	if len(filtered) == 0 {
		b.sessions.delete(chatID)
		b.send(chatID, "⚠️ После исключений в каталоге не осталось блюд. Отправьте /start и сократите список исключений.")
		return
	}

	sess.target = nutrition.TargetFor(nutrition.Profile{
		Weight:   sess.weight,
		Height:   sess.height,
		Age:      sess.age,
		Gender:   sess.gender,
		BodyFat:  sess.bodyFat,
		Activity: sess.activity,
		Goal:     sess.goal,
	})
	b.send(chatID, formatTargets(sess.target))

	sess.week = planner.NewWeek(b.engine, filtered, sess.target)
	b.proposeNext(ctx, chatID, sess)
}

// proposeNext drives the week machine forward and reports every day that was
// resolved since the last call, including days failed without user input.
func (b *Bot) proposeNext(ctx context.Context, chatID int64, sess *session) {
	reported := len(sess.week.Days())

	proposal, err := sess.week.Propose(ctx)
	if err != nil {
		log.Printf("Diet search failed for chat %d: %v", chatID, err)
		b.sessions.delete(chatID)
		b.send(chatID, "⚠️ Произошла ошибка при подборе рациона. Отправьте /start, чтобы начать заново.")
		return
	}

	for _, day := range sess.week.Days()[reported:] {
		if day.Failed() {
			b.send(chatID, fmt.Sprintf("⚠️ Не удалось составить рацион на день %d.", day.Day))
		}
	}

	if proposal != nil {
		text := diet.FormatDay(proposal.Solution, sess.target, proposal.Day) + "\n\nВы принимаете этот рацион?"
		b.sendWithKeyboard(chatID, text, confirmKeyboard())
		return
	}

	plan, err := sess.week.Plan()
	if err != nil {
		log.Printf("Week finalization failed for chat %d: %v", chatID, err)
		b.sessions.delete(chatID)
		return
	}
	b.send(chatID, formatWeeklyPlan(plan, sess.target))
	b.sessions.delete(chatID)
}

func (b *Bot) handleDecision(chatID int64, messageID int, sess *session, data string) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	ctx := context.Background()
	day := sess.week.Day()

	if data == "accept" {
		if err := sess.week.Accept(); err != nil {
			log.Printf("Accept out of turn for chat %d: %v", chatID, err)
			return
		}
		b.edit(chatID, messageID, fmt.Sprintf("✅ Рацион на день %d принят.", day), tgbotapi.InlineKeyboardMarkup{})
	} else {
		if err := sess.week.Reject(); err != nil {
			log.Printf("Reject out of turn for chat %d: %v", chatID, err)
			return
		}
		if sess.week.Day() != day {
			// Retry budget exhausted; Reject already marked the day failed.
			b.edit(chatID, messageID, fmt.Sprintf("⚠️ Лимит попыток исчерпан, рацион на день %d пропущен.", day), tgbotapi.InlineKeyboardMarkup{})
		} else {
			b.edit(chatID, messageID, "🔄 Хорошо, ищу другой вариант...", tgbotapi.InlineKeyboardMarkup{})
		}
	}

	b.proposeNext(ctx, chatID, sess)
}

func (b *Bot) send(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "HTML"
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Failed to send message to chat %d: %v", chatID, err)
	}
}

func (b *Bot) sendWithKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = "HTML"
	msg.ReplyMarkup = keyboard
	if _, err := b.api.Send(msg); err != nil {
		log.Printf("Failed to send message to chat %d: %v", chatID, err)
	}
}

func (b *Bot) edit(chatID int64, messageID int, text string, keyboard tgbotapi.InlineKeyboardMarkup) {
	edit := tgbotapi.NewEditMessageText(chatID, messageID, text)
	edit.ParseMode = "HTML"
	if len(keyboard.InlineKeyboard) > 0 {
		edit.ReplyMarkup = &keyboard
	}
	if _, err := b.api.Send(edit); err != nil {
		log.Printf("Failed to edit message %d in chat %d: %v", messageID, chatID, err)
	}
}
