package bot

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"

	"github.com/ivanoskov/currency_bot/internal/charts"
	"github.com/ivanoskov/currency_bot/internal/repository"
	"github.com/ivanoskov/currency_bot/internal/service"
)

type Bot struct {
	api       *tgbotapi.BotAPI
	transport Transport
	service   *service.Exchanger
	store     repository.TrackingStore
	charts    *charts.ChartGenerator
	sessions  *SessionStore
}

func NewBot(token string, exchanger *service.Exchanger, store repository.TrackingStore, sessions *SessionStore) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}

	return &Bot{
		api:       api,
		transport: &telegramTransport{api: api},
		service:   exchanger,
		store:     store,
		charts:    charts.NewChartGenerator(),
		sessions:  sessions,
	}, nil
}

// Transport возвращает исходящий транспорт бота (его использует рассылка).
func (b *Bot) Transport() Transport {
	return b.transport
}

// Start запускает бота в режиме long polling. Обновления обрабатываются
// последовательно: ответ чата не может обогнать свой же отложенный запрос.
func (b *Bot) Start() error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60

	updates := b.api.GetUpdatesChan(u)

	log.Info().Str("username", b.api.Self.UserName).Msg("бот запущено")

	for update := range updates {
		if err := b.handleUpdate(update); err != nil {
			// Логируем ошибку, но продолжаем работу
			log.Error().Err(err).Msg("error handling update")
		}
	}

	return nil
}

// HandleWebhook — точка входа для обработки входящих webhook-обновлений
func (b *Bot) HandleWebhook(body []byte) error {
	var update tgbotapi.Update
	if err := json.Unmarshal(body, &update); err != nil {
		return err
	}

	return b.handleUpdate(update)
}

func (b *Bot) handleUpdate(update tgbotapi.Update) error {
	if update.Message == nil && update.CallbackQuery == nil {
		return nil
	}

	if update.CallbackQuery != nil {
		return b.handleCallback(update.CallbackQuery)
	}

	if update.Message.IsCommand() {
		return b.handleCommand(update.Message)
	}

	return b.handleMessage(update.Message)
}

// handleMessage обрабатывает свободный текст: либо это ответ на
// отложенный запрос чата, либо просто показываем главное меню.
func (b *Bot) handleMessage(message *tgbotapi.Message) error {
	chatID := message.Chat.ID

	pending, ok := b.sessions.Get(chatID)
	if !ok {
		b.transport.SendMenu(chatID, "👋 Вітаю! Оберіть опцію:", mainMenu())
		return nil
	}

	switch pending.Kind {
	case PendingConversionAmount:
		amount, err := parseAmount(message.Text)
		if err != nil {
			// Состояние сохраняем: у пользователя есть еще попытка
			b.transport.SendText(chatID,
				"❗ Введіть коректне число (наприклад: 100 або 100.50 / 100,50)")
			return nil
		}
		b.sessions.Clear(chatID)
		b.replyConversion(chatID, amount, pending.From, pending.To)

	case PendingRateDate:
		// Дата не распарсилась — запрос придется начать заново из меню
		b.sessions.Clear(chatID)
		date, err := time.Parse("2006-01-02", strings.TrimSpace(message.Text))
		if err != nil {
			b.transport.SendText(chatID, "❗ Невірний формат дати. Введіть у форматі YYYY-MM-DD.")
			return nil
		}
		b.replyRateOnDate(chatID, pending.From, pending.To, date)

	default:
		b.sessions.Clear(chatID)
	}

	return nil
}

// parseAmount разбирает сумму, принимая и точку, и запятую как
// десятичный разделитель. Сумма должна быть строго положительной.
func parseAmount(text string) (float64, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(text), ",", ".")
	amount, err := strconv.ParseFloat(normalized, 64)
	if err != nil {
		return 0, err
	}
	if amount <= 0 {
		return 0, fmt.Errorf("amount must be positive, got %v", amount)
	}
	return amount, nil
}
