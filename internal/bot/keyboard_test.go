package bot

import (
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivanoskov/currency_bot/internal/model"
)

func flattenPayloads(markup tgbotapi.InlineKeyboardMarkup) []string {
	var payloads []string
	for _, row := range markup.InlineKeyboard {
		for _, button := range row {
			payloads = append(payloads, *button.CallbackData)
		}
	}
	return payloads
}

func TestBaseCurrencyButtonsPayloads(t *testing.T) {
	payloads := flattenPayloads(baseCurrencyButtons(ctxConvert))

	assert.Contains(t, payloads, "convert_base_USD")
	assert.Contains(t, payloads, "convert_base_TRY")
	assert.Contains(t, payloads, "menu_back")

	// Каждый payload валюты обязан разбираться обратно
	for _, payload := range payloads {
		if payload == "menu_back" {
			continue
		}
		cmd := parseCallback(payload)
		assert.Equal(t, actionPickBase, cmd.action, "payload %q", payload)
	}
}

func TestTargetCurrencyButtonsExcludeBase(t *testing.T) {
	payloads := flattenPayloads(targetCurrencyButtons(ctxCompare, "EUR"))

	assert.NotContains(t, payloads, "compare_EUR_EUR")
	assert.Contains(t, payloads, "compare_EUR_USD")
	assert.Contains(t, payloads, "rate_compare", "back leads to the first step of the flow")

	count := 0
	for _, payload := range payloads {
		if parseCallback(payload).action == actionPickTarget {
			count++
		}
	}
	assert.Equal(t, len(model.CurrencyCodes())-1, count)
}

func TestBackTargetPerFlow(t *testing.T) {
	assert.Equal(t, "convert", backTarget(ctxConvert))
	assert.Equal(t, "rate_compare", backTarget(ctxCompare))
	assert.Equal(t, "rate_history", backTarget(ctxHistory))
	assert.Equal(t, "rate_date", backTarget(ctxRateDate))
}

func TestCodeRowsLayout(t *testing.T) {
	rows := codeRows([]string{"USD", "EUR", "UAH", "PLN"}, "currency_%s")

	require.Len(t, rows, 2)
	assert.Len(t, rows[0], 3)
	assert.Len(t, rows[1], 1)
	assert.Equal(t, "currency_PLN", *rows[1][0].CallbackData)
}

func TestTrackedCurrencyButtons(t *testing.T) {
	payloads := flattenPayloads(trackedCurrencyButtons("track_remove", []string{"EUR", "UAH"}))

	assert.Contains(t, payloads, "track_remove_EUR")
	assert.Contains(t, payloads, "track_remove_UAH")
	assert.Contains(t, payloads, "notify_menu")
}
