package bot

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ivanoskov/currency_bot/internal/model"
)

const buttonsPerRow = 3

func mainMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📈 Курси валют", "rate"),
			tgbotapi.NewInlineKeyboardButtonData("💱 Конвертація", "convert"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("ℹ️ Інформація про валюту", "currency_info"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📖 Команди", "show_help"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📬 Щоденна розсилка", "notify_menu"),
		),
	)
}

func rateSubMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Поточний курс", "rate_current"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📅 Курс на дату", "rate_date"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📅 Історія за 7 днів", "rate_history"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📈 Порівняння 2 валют", "rate_compare"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", "menu_back"),
		),
	)
}

func notifyMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("➕ Додати валюту", "notify_add"),
			tgbotapi.NewInlineKeyboardButtonData("➖ Видалити валюту", "notify_remove"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📋 Перегляд валют", "notify_list"),
			tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", "menu_back"),
		),
	)
}

// currencyInfoMenu — выбор валюты для описания, плюс "все валюты".
func currencyInfoMenu() tgbotapi.InlineKeyboardMarkup {
	buttons := [][]tgbotapi.InlineKeyboardButton{
		{tgbotapi.NewInlineKeyboardButtonData("📋 Усі валюти", "show_all_currencies")},
	}
	buttons = append(buttons, codeRows(model.CurrencyCodes(), "currency_%s")...)
	buttons = append(buttons, []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", "menu_back"),
	})
	return tgbotapi.NewInlineKeyboardMarkup(buttons...)
}

// baseCurrencyButtons — первый шаг двухшагового выбора пары.
func baseCurrencyButtons(ctx menuContext) tgbotapi.InlineKeyboardMarkup {
	buttons := codeRows(model.CurrencyCodes(), string(ctx)+"_base_%s")
	buttons = append(buttons, []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", "menu_back"),
	})
	return tgbotapi.NewInlineKeyboardMarkup(buttons...)
}

// targetCurrencyButtons — второй шаг: все валюты каталога, кроме базовой.
// Кнопка "Назад" ведет на первый шаг того же потока.
func targetCurrencyButtons(ctx menuContext, base string) tgbotapi.InlineKeyboardMarkup {
	codes := make([]string, 0, len(model.CurrencyDescriptions))
	for _, code := range model.CurrencyCodes() {
		if code != base {
			codes = append(codes, code)
		}
	}

	buttons := codeRows(codes, fmt.Sprintf("%s_%s", ctx, base)+"_%s")
	buttons = append(buttons, []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", backTarget(ctx)),
	})
	return tgbotapi.NewInlineKeyboardMarkup(buttons...)
}

func backTarget(ctx menuContext) string {
	switch ctx {
	case ctxCompare:
		return "rate_compare"
	case ctxHistory:
		return "rate_history"
	case ctxConvert:
		return "convert"
	case ctxRateDate:
		return "rate_date"
	}
	return "menu_back"
}

// currencyListButtons — весь каталог с префиксом действия (track_add).
func currencyListButtons(prefix string) tgbotapi.InlineKeyboardMarkup {
	buttons := codeRows(model.CurrencyCodes(), prefix+"_%s")
	buttons = append(buttons, []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", "notify_menu"),
	})
	return tgbotapi.NewInlineKeyboardMarkup(buttons...)
}

// trackedCurrencyButtons — только отслеживаемые валюты чата (track_remove).
func trackedCurrencyButtons(prefix string, codes []string) tgbotapi.InlineKeyboardMarkup {
	buttons := codeRows(codes, prefix+"_%s")
	buttons = append(buttons, []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData("🔙 Назад", "notify_menu"),
	})
	return tgbotapi.NewInlineKeyboardMarkup(buttons...)
}

// codeRows раскладывает кнопки валют по строкам buttonsPerRow штук.
func codeRows(codes []string, payloadFormat string) [][]tgbotapi.InlineKeyboardButton {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton

	for _, code := range codes {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(code, fmt.Sprintf(payloadFormat, code)))
		if len(row) == buttonsPerRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	return rows
}
