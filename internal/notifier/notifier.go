package notifier

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ivanoskov/currency_bot/internal/repository"
	"github.com/ivanoskov/currency_bot/internal/service"
)

// Sender отправляет текст в чат. Реализуется транспортом бота.
type Sender interface {
	SendText(chatID int64, text string) error
}

// DailyDigest раз в день отправляет подписанным чатам их курсы валют.
// Работает независимо от диалогового цикла и не трогает его состояние.
type DailyDigest struct {
	store   repository.TrackingStore
	service *service.Exchanger
	sender  Sender
	hour    int
}

func NewDailyDigest(store repository.TrackingStore, exchanger *service.Exchanger, sender Sender, hour int) *DailyDigest {
	return &DailyDigest{
		store:   store,
		service: exchanger,
		sender:  sender,
		hour:    hour,
	}
}

// Run крутит цикл рассылки до отмены контекста.
func (n *DailyDigest) Run(ctx context.Context) {
	for {
		next := nextRun(time.Now(), n.hour)
		log.Info().Time("next", next).Msg("🕓 наступна розсилка")

		timer := time.NewTimer(time.Until(next))
		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			n.SendDigest(ctx)
		}
	}
}

// nextRun — ближайший момент рассылки: сегодня в hour часов или завтра,
// если этот час уже прошел.
func nextRun(now time.Time, hour int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

// SendDigest делает один прогон рассылки: снимок подписок, один запрос
// курсов, по одному сообщению на чат. Чат без единого известного курса
// сообщения не получает.
func (n *DailyDigest) SendDigest(ctx context.Context) {
	grouped, err := n.store.AllGroupedByChat(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to load tracked currencies")
		return
	}
	if len(grouped) == 0 {
		return
	}

	base := n.service.BaseCurrency()
	table, err := n.service.CurrentRates(ctx, base)
	if err != nil {
		log.Error().Err(err).Msg("failed to get rates for digest")
		return
	}

	sent := 0
	for chatID, codes := range grouped {
		text := fmt.Sprintf("📬 Ваш щоденний курс валют (відносно %s):\n\n", base)

		resolved := 0
		for _, code := range codes {
			rate, ok := table[code]
			if !ok {
				continue
			}
			text += fmt.Sprintf("1 %s = %.4f %s\n", base, rate, code)
			resolved++
		}
		if resolved == 0 {
			continue
		}

		if err := n.sender.SendText(chatID, text); err != nil {
			log.Error().Err(err).Int64("chat_id", chatID).Msg("failed to send digest")
			continue
		}
		sent++
	}

	log.Info().Int("chats", sent).Msg("✅ щоденна розсилка завершена")
}
