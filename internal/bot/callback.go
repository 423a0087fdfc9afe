package bot

import (
	"fmt"
	"regexp"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// callbackAction — действие, закодированное в callback-кнопке.
type callbackAction int

const (
	actionUnknown callbackAction = iota
	actionMenuBack
	actionRateMenu
	actionRateCurrent
	actionRateDateMenu
	actionRateHistoryMenu
	actionRateCompareMenu
	actionConvertMenu
	actionCurrencyInfoMenu
	actionShowAllCurrencies
	actionShowHelp
	actionNotifyMenu
	actionNotifyList
	actionNotifyAdd
	actionNotifyRemove
	actionCurrencyInfo // currency_<CODE>
	actionTrackAdd     // track_add_<CODE>
	actionTrackRemove  // track_remove_<CODE>
	actionPickBase     // <ctx>_base_<CODE>
	actionPickTarget   // <ctx>_<CODE>_<CODE>
)

// menuContext определяет, какой поток идет через двухшаговый выбор валют,
// и куда ведет кнопка "Назад" на втором шаге.
type menuContext string

const (
	ctxConvert  menuContext = "convert"
	ctxCompare  menuContext = "compare"
	ctxHistory  menuContext = "history"
	ctxRateDate menuContext = "rate_date"
)

// callbackCommand — разобранный payload кнопки. Грамматика закрытая:
// литеральные действия, действия с кодом валюты и двухшаговые выборы.
type callbackCommand struct {
	action callbackAction
	ctx    menuContext
	base   string
	target string
	code   string
}

var (
	basePattern = regexp.MustCompile(`^(convert|compare|history|rate_date)_base_([A-Z]{3})$`)
	pairPattern = regexp.MustCompile(`^(convert|compare|history|rate_date)_([A-Z]{3})_([A-Z]{3})$`)
)

// parseCallback разбирает payload один раз на границе. Все, что не
// попадает в грамматику, становится actionUnknown — никогда ошибкой.
func parseCallback(data string) callbackCommand {
	switch data {
	case "menu_back":
		return callbackCommand{action: actionMenuBack}
	case "rate":
		return callbackCommand{action: actionRateMenu}
	case "rate_current":
		return callbackCommand{action: actionRateCurrent}
	case "rate_date":
		return callbackCommand{action: actionRateDateMenu}
	case "rate_history":
		return callbackCommand{action: actionRateHistoryMenu}
	case "rate_compare":
		return callbackCommand{action: actionRateCompareMenu}
	case "convert":
		return callbackCommand{action: actionConvertMenu}
	case "currency_info":
		return callbackCommand{action: actionCurrencyInfoMenu}
	case "show_all_currencies":
		return callbackCommand{action: actionShowAllCurrencies}
	case "show_help":
		return callbackCommand{action: actionShowHelp}
	case "notify_menu":
		return callbackCommand{action: actionNotifyMenu}
	case "notify_list":
		return callbackCommand{action: actionNotifyList}
	case "notify_add":
		return callbackCommand{action: actionNotifyAdd}
	case "notify_remove":
		return callbackCommand{action: actionNotifyRemove}
	}

	if m := basePattern.FindStringSubmatch(data); m != nil {
		return callbackCommand{action: actionPickBase, ctx: menuContext(m[1]), base: m[2]}
	}
	if m := pairPattern.FindStringSubmatch(data); m != nil {
		return callbackCommand{action: actionPickTarget, ctx: menuContext(m[1]), base: m[2], target: m[3]}
	}

	if code, ok := strings.CutPrefix(data, "track_add_"); ok {
		return callbackCommand{action: actionTrackAdd, code: code}
	}
	if code, ok := strings.CutPrefix(data, "track_remove_"); ok {
		return callbackCommand{action: actionTrackRemove, code: code}
	}
	if code, ok := strings.CutPrefix(data, "currency_"); ok {
		return callbackCommand{action: actionCurrencyInfo, code: code}
	}

	return callbackCommand{action: actionUnknown}
}

func (b *Bot) handleCallback(callback *tgbotapi.CallbackQuery) error {
	if callback.Message == nil {
		return nil
	}
	chatID := callback.Message.Chat.ID
	cmd := parseCallback(callback.Data)

	var ackText string

	switch cmd.action {
	case actionMenuBack:
		b.transport.SendMenu(chatID, "🔙 Повернення до головного меню:", mainMenu())

	case actionRateMenu:
		b.transport.SendMenu(chatID, "📈 Оберіть опцію:", rateSubMenu())

	case actionRateCurrent:
		b.replyCurrentRates(chatID)

	case actionRateDateMenu:
		b.transport.SendMenu(chatID,
			"📅 Оберіть базову валюту для перегляду курсу на дату:",
			baseCurrencyButtons(ctxRateDate))

	case actionRateHistoryMenu:
		b.transport.SendMenu(chatID,
			"📅 Оберіть базову валюту (відносно якої переглянути історію):",
			baseCurrencyButtons(ctxHistory))

	case actionRateCompareMenu:
		b.transport.SendMenu(chatID,
			"📊 Оберіть базову валюту для порівняння:",
			baseCurrencyButtons(ctxCompare))

	case actionConvertMenu:
		b.transport.SendMenu(chatID,
			"💱 Спочатку оберіть базову валюту:",
			baseCurrencyButtons(ctxConvert))

	case actionCurrencyInfoMenu:
		b.transport.SendMenu(chatID,
			"📘 Оберіть валюту або введіть /currency USD вручну:",
			currencyInfoMenu())

	case actionShowAllCurrencies:
		b.replyAllCurrencies(chatID)

	case actionShowHelp:
		b.transport.SendText(chatID, helpText)

	case actionNotifyMenu:
		b.transport.SendMenu(chatID, "📬 Меню розсилки:", notifyMenu())

	case actionNotifyList:
		b.replyTracked(chatID)

	case actionNotifyAdd:
		b.transport.SendMenu(chatID,
			"🔽 Оберіть валюту для додавання до щоденної розсилки:",
			currencyListButtons("track_add"))

	case actionNotifyRemove:
		b.showTrackedRemoveMenu(chatID)

	case actionCurrencyInfo:
		b.replyCurrencyInfo(chatID, cmd.code)

	case actionTrackAdd:
		if b.checkCurrency(chatID, cmd.code) {
			b.trackCurrency(chatID, cmd.code)
		}

	case actionTrackRemove:
		if b.checkCurrency(chatID, cmd.code) {
			b.untrackCurrency(chatID, cmd.code)
		}

	case actionPickBase:
		if b.checkCurrency(chatID, cmd.base) {
			b.transport.SendMenu(chatID,
				basePickedPrompt(cmd.ctx, cmd.base),
				targetCurrencyButtons(cmd.ctx, cmd.base))
		}

	case actionPickTarget:
		if b.checkCurrency(chatID, cmd.base) && b.checkCurrency(chatID, cmd.target) {
			b.handlePickTarget(chatID, cmd)
		}

	default:
		ackText = "Невідома дія."
	}

	// Отвечаем на callback, чтобы убрать loading indicator
	return b.transport.AnswerCallback(callback.ID, ackText)
}

// handlePickTarget завершает двухшаговый выбор пары валют: либо сразу
// выполняет действие, либо переводит чат в ожидание текстового ввода.
func (b *Bot) handlePickTarget(chatID int64, cmd callbackCommand) {
	switch cmd.ctx {
	case ctxConvert:
		b.sessions.Set(chatID, PendingRequest{
			Kind: PendingConversionAmount,
			From: cmd.base,
			To:   cmd.target,
		})
		b.transport.SendText(chatID,
			fmt.Sprintf("✍️ Введіть суму для конвертації з %s в %s:", cmd.base, cmd.target))

	case ctxRateDate:
		b.sessions.Set(chatID, PendingRequest{
			Kind: PendingRateDate,
			From: cmd.base,
			To:   cmd.target,
		})
		b.transport.SendText(chatID,
			fmt.Sprintf("📅 Введіть дату для перегляду курсу %s → %s (у форматі YYYY-MM-DD):", cmd.base, cmd.target))

	case ctxHistory:
		b.replyHistory(chatID, cmd.base, cmd.target)

	case ctxCompare:
		b.replyCompare(chatID, cmd.base, cmd.target)
	}
}

func basePickedPrompt(ctx menuContext, base string) string {
	switch ctx {
	case ctxConvert:
		return fmt.Sprintf("💱 Оберіть валюту, в яку конвертувати %s:", base)
	case ctxCompare:
		return fmt.Sprintf("📈 Оберіть іншу валюту для порівняння з %s:", base)
	case ctxHistory:
		return fmt.Sprintf("📊 Оберіть валюту, для якої переглянути історію відносно %s:", base)
	case ctxRateDate:
		return fmt.Sprintf("📆 Оберіть валюту, до якої показати курс %s:", base)
	}
	return "Оберіть валюту:"
}
