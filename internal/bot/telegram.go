package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Transport — узкий интерфейс исходящих действий бота. Роутер не знает,
// как именно доставляются сообщения; тесты подставляют фейк.
type Transport interface {
	SendText(chatID int64, text string) error
	SendMenu(chatID int64, text string, markup tgbotapi.InlineKeyboardMarkup) error
	SendPhoto(chatID int64, name string, photo []byte, caption string) error
	AnswerCallback(callbackID, text string) error
}

// telegramTransport доставляет действия через Bot API.
type telegramTransport struct {
	api *tgbotapi.BotAPI
}

func (t *telegramTransport) SendText(chatID int64, text string) error {
	_, err := t.api.Send(tgbotapi.NewMessage(chatID, text))
	return err
}

func (t *telegramTransport) SendMenu(chatID int64, text string, markup tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = markup
	_, err := t.api.Send(msg)
	return err
}

func (t *telegramTransport) SendPhoto(chatID int64, name string, photo []byte, caption string) error {
	msg := tgbotapi.NewPhoto(chatID, tgbotapi.FileBytes{Name: name, Bytes: photo})
	msg.Caption = caption
	_, err := t.api.Send(msg)
	return err
}

func (t *telegramTransport) AnswerCallback(callbackID, text string) error {
	_, err := t.api.Request(tgbotapi.NewCallback(callbackID, text))
	return err
}
