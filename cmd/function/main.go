package main

import (
	"context"

	"github.com/ivanoskov/currency_bot/internal/bot"
	"github.com/ivanoskov/currency_bot/internal/config"
	"github.com/ivanoskov/currency_bot/internal/rates"
	"github.com/ivanoskov/currency_bot/internal/repository"
	"github.com/ivanoskov/currency_bot/internal/service"
)

// Request структура входящего запроса от API Gateway
type Request struct {
	Body string `json:"body"`
}

// Response структура ответа для API Gateway
type Response struct {
	StatusCode int               `json:"statusCode"`
	Body       string            `json:"body"`
	Headers    map[string]string `json:"headers,omitempty"`
}

// Handler обрабатывает один webhook-апдейт Telegram. Ежедневная рассылка
// в serverless-режиме не запускается: у функции нет резидентного таймера.
func Handler(ctx context.Context, request Request) (*Response, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return errorResponse(err)
	}

	store, err := repository.NewSupabaseStore(cfg.SupabaseURL, cfg.SupabaseKey)
	if err != nil {
		return errorResponse(err)
	}

	client := rates.NewHTTPClient(cfg.Rates.BaseURL, cfg.Rates.AppID, cfg.Rates.Timeout)
	exchanger := service.NewExchanger(client, cfg.Rates.BaseCurrency, cfg.Rates.HistoryDays)

	b, err := bot.NewBot(cfg.TelegramToken, exchanger, store, bot.NewSessionStore())
	if err != nil {
		return errorResponse(err)
	}

	if err := b.HandleWebhook([]byte(request.Body)); err != nil {
		return errorResponse(err)
	}

	return &Response{
		StatusCode: 200,
		Body:       "",
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func errorResponse(err error) (*Response, error) {
	return &Response{
		StatusCode: 500,
		Body:       err.Error(),
		Headers: map[string]string{
			"Content-Type": "application/json",
		},
	}, nil
}

func main() {
	// Точка входа для локального тестирования
}
