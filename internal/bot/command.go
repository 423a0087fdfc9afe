package bot

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/ivanoskov/currency_bot/internal/charts"
	"github.com/ivanoskov/currency_bot/internal/model"
)

const helpText = "📖 Список доступних команд:\n" +
	"/convert 100 EUR to UAH — конвертація\n" +
	"/history USD EUR — історія курсів\n" +
	"/compare EUR PLN — порівняння графіком\n" +
	"/currency USD — опис валюти\n" +
	"/rate USD UAH YYYY-MM-DD — курс на дату\n" +
	"/track USD — додати до розсилки\n" +
	"/untrack USD — прибрати з розсилки\n" +
	"/tracked — ваш список валют\n" +
	"/currencies — всі валюти\n" +
	"/start — повернення в меню"

func (b *Bot) handleCommand(message *tgbotapi.Message) error {
	chatID := message.Chat.ID
	args := strings.Fields(message.Text)

	switch message.Command() {
	case "start":
		b.transport.SendMenu(chatID, "👋 Вітаю! Оберіть опцію:", mainMenu())

	case "help":
		b.transport.SendText(chatID, helpText)

	case "currencies":
		b.replyAllCurrencies(chatID)

	case "currency":
		if len(args) != 2 {
			b.transport.SendText(chatID, "❗ Приклад:\n/currency USD")
			return nil
		}
		b.replyCurrencyInfo(chatID, strings.ToUpper(args[1]))

	case "convert":
		// /convert <amount> <FROM> to <TO>
		if len(args) != 5 || strings.ToLower(args[3]) != "to" {
			b.transport.SendText(chatID, "❗ Формат команди:\n/convert 100 EUR to UAH")
			return nil
		}
		amount, err := parseAmount(args[1])
		if err != nil {
			b.transport.SendText(chatID, "❗ Невірна сума. Наприклад: 100.5 або 100,5")
			return nil
		}
		from, to := strings.ToUpper(args[2]), strings.ToUpper(args[4])
		if !b.checkCurrency(chatID, from) || !b.checkCurrency(chatID, to) {
			return nil
		}
		b.replyConversion(chatID, amount, from, to)

	case "history":
		if len(args) != 3 {
			b.transport.SendText(chatID, "❗ Приклад:\n/history USD EUR")
			return nil
		}
		from, to := strings.ToUpper(args[1]), strings.ToUpper(args[2])
		if !b.checkCurrency(chatID, from) || !b.checkCurrency(chatID, to) {
			return nil
		}
		b.replyHistory(chatID, from, to)

	case "compare":
		if len(args) != 3 {
			b.transport.SendText(chatID, "❗ Приклад:\n/compare EUR USD")
			return nil
		}
		first, second := strings.ToUpper(args[1]), strings.ToUpper(args[2])
		if !b.checkCurrency(chatID, first) || !b.checkCurrency(chatID, second) {
			return nil
		}
		b.replyCompare(chatID, first, second)

	case "rate":
		// /rate <FROM> <TO> <DATE>
		if len(args) != 4 {
			b.transport.SendText(chatID, "❗ Формат:\n/rate USD EUR 2024-01-01")
			return nil
		}
		date, err := time.Parse("2006-01-02", args[3])
		if err != nil {
			b.transport.SendText(chatID, "❗ Формат:\n/rate USD EUR 2024-01-01")
			return nil
		}
		from, to := strings.ToUpper(args[1]), strings.ToUpper(args[2])
		if !b.checkCurrency(chatID, from) || !b.checkCurrency(chatID, to) {
			return nil
		}
		b.replyRateOnDate(chatID, from, to, date)

	case "track":
		if len(args) != 2 {
			b.transport.SendText(chatID, "❗ Формат: /track USD")
			return nil
		}
		code := strings.ToUpper(args[1])
		if !b.checkCurrency(chatID, code) {
			return nil
		}
		b.trackCurrency(chatID, code)

	case "untrack":
		if len(args) != 2 {
			b.transport.SendText(chatID, "❗ Формат: /untrack USD")
			return nil
		}
		code := strings.ToUpper(args[1])
		if !b.checkCurrency(chatID, code) {
			return nil
		}
		b.untrackCurrency(chatID, code)

	case "tracked":
		b.replyTracked(chatID)

	default:
		b.transport.SendText(chatID, "🤔 Невідома команда. /help — список команд.")
	}

	return nil
}

// checkCurrency проверяет код по каталогу и сам сообщает пользователю,
// если валюта неизвестна.
func (b *Bot) checkCurrency(chatID int64, code string) bool {
	if model.SupportedCurrency(code) {
		return true
	}
	b.transport.SendText(chatID, fmt.Sprintf("❌ Валюта '%s' не знайдена.", code))
	return false
}

func (b *Bot) replyConversion(chatID int64, amount float64, from, to string) {
	result, err := b.service.Convert(context.Background(), amount, from, to)
	if err != nil {
		log.Warn().Err(err).Str("from", from).Str("to", to).Msg("conversion failed")
		b.transport.SendText(chatID, "❌ Не вдалося виконати конвертацію.")
		return
	}

	b.transport.SendText(chatID, fmt.Sprintf("💱 %s %s ≈ %.2f %s",
		formatAmount(result.Amount), result.From, result.Result, result.To))
}

func (b *Bot) replyHistory(chatID int64, from, to string) {
	series, err := b.service.History(context.Background(), from, to)
	if err != nil {
		log.Warn().Err(err).Str("from", from).Str("to", to).Msg("history failed")
		b.transport.SendText(chatID, "❌ Не вдалося отримати курс.")
		return
	}

	dates := make([]time.Time, 0, len(series))
	for date := range series {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })

	text := fmt.Sprintf("📅 Історія курсу %s → %s за %d днів:\n", from, to, b.service.HistoryDays())
	for _, date := range dates {
		text += fmt.Sprintf("%s: %.4f\n", date.Format("02.01.2006"), series[date])
	}
	b.transport.SendText(chatID, text)
}

func (b *Bot) replyCompare(chatID int64, first, second string) {
	firstSeries, secondSeries, err := b.service.CompareSeries(context.Background(), first, second)
	if err != nil {
		log.Warn().Err(err).Str("first", first).Str("second", second).Msg("compare series failed")
		b.transport.SendText(chatID, "❌ Не вдалося отримати дані для порівняння.")
		return
	}

	image, err := b.charts.GenerateComparisonChart(firstSeries, secondSeries, first, second)
	if err != nil {
		if errors.Is(err, charts.ErrNotEnoughData) {
			b.transport.SendText(chatID, "⚠️ Недостатньо даних для побудови графіка.")
			return
		}
		log.Error().Err(err).Msg("comparison chart render failed")
		b.transport.SendText(chatID, "❌ Не вдалося побудувати графік.")
		return
	}

	b.transport.SendPhoto(chatID,
		fmt.Sprintf("%s_vs_%s.png", first, second),
		image,
		fmt.Sprintf("📈 Порівняння динаміки %s і %s за %d днів", first, second, b.service.HistoryDays()))
}

func (b *Bot) replyRateOnDate(chatID int64, from, to string, date time.Time) {
	rate, err := b.service.RateOnDate(context.Background(), from, to, date)
	if err != nil {
		log.Warn().Err(err).Str("from", from).Str("to", to).Msg("rate on date failed")
		b.transport.SendText(chatID, "❌ Не вдалося отримати курс на вказану дату.")
		return
	}

	b.transport.SendText(chatID, fmt.Sprintf("📅 Курс %s → %s на %s:\n1 %s = %.4f %s",
		from, to, date.Format("2006-01-02"), from, rate, to))
}

func (b *Bot) replyCurrentRates(chatID int64) {
	base := b.service.BaseCurrency()
	table, err := b.service.CurrentRates(context.Background(), base)
	if err != nil {
		log.Warn().Err(err).Msg("current rates failed")
		b.transport.SendText(chatID, "❌ Не вдалося отримати поточні курси валют.")
		return
	}

	codes := make([]string, 0, len(table))
	for code := range table {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	text := fmt.Sprintf("📊 Поточний курс відносно %s:\n", base)
	for _, code := range codes {
		text += fmt.Sprintf("- 1 %s = %.4f %s\n", base, table[code], code)
	}
	b.transport.SendText(chatID, text)
}

func (b *Bot) replyCurrencyInfo(chatID int64, code string) {
	description, ok := model.CurrencyDescriptions[code]
	if !ok {
		b.transport.SendText(chatID, fmt.Sprintf("❌ Невідома валюта: %s", code))
		return
	}
	b.transport.SendText(chatID, description)
}

func (b *Bot) replyAllCurrencies(chatID int64) {
	text := "📘 Список основних валют:\n\n"
	for _, code := range model.CurrencyCodes() {
		// Первая строка описания — краткая сводка
		text += strings.SplitN(model.CurrencyDescriptions[code], "\n", 2)[0] + "\n"
	}
	b.transport.SendText(chatID, text)
}

func (b *Bot) trackCurrency(chatID int64, code string) {
	added, err := b.store.Add(context.Background(), chatID, code)
	if err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Str("code", code).Msg("track failed")
		b.transport.SendText(chatID, "❌ Сталася помилка. Спробуйте пізніше.")
		return
	}
	if !added {
		b.transport.SendText(chatID, fmt.Sprintf("🔔 Ви вже відстежуєте %s", code))
		return
	}
	b.transport.SendText(chatID, fmt.Sprintf("✅ Валюта %s додана до списку відстеження.", code))
}

func (b *Bot) untrackCurrency(chatID int64, code string) {
	removed, err := b.store.Remove(context.Background(), chatID, code)
	if err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Str("code", code).Msg("untrack failed")
		b.transport.SendText(chatID, "❌ Сталася помилка. Спробуйте пізніше.")
		return
	}
	if !removed {
		b.transport.SendText(chatID, fmt.Sprintf("⚠️ Валюта %s не була у списку.", code))
		return
	}
	b.transport.SendText(chatID, fmt.Sprintf("❌ Валюта %s прибрана з відстеження.", code))
}

func (b *Bot) replyTracked(chatID int64) {
	codes, err := b.store.List(context.Background(), chatID)
	if err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("list tracked failed")
		b.transport.SendText(chatID, "❌ Сталася помилка. Спробуйте пізніше.")
		return
	}
	if len(codes) == 0 {
		b.transport.SendText(chatID, "📭 Ви поки не відстежуєте жодної валюти.")
		return
	}
	b.transport.SendText(chatID, "📋 Ви відстежуєте такі валюти:\n"+strings.Join(codes, ", "))
}

// showTrackedRemoveMenu показывает меню удаления только при непустом списке.
func (b *Bot) showTrackedRemoveMenu(chatID int64) {
	codes, err := b.store.List(context.Background(), chatID)
	if err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("list tracked failed")
		b.transport.SendText(chatID, "❌ Сталася помилка. Спробуйте пізніше.")
		return
	}
	if len(codes) == 0 {
		b.transport.SendText(chatID, "📭 У вас немає валют для видалення.")
		return
	}
	b.transport.SendMenu(chatID, "➖ Оберіть валюту для видалення:", trackedCurrencyButtons("track_remove", codes))
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
