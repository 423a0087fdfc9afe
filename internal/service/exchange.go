package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/ivanoskov/currency_bot/internal/model"
	"github.com/ivanoskov/currency_bot/internal/rates"
)

// Exchanger предоставляет методы для работы с курсами валют.
// Все конвертации идут через опорную валюту (по умолчанию USD):
// курс любой пары выводится из двух курсов к опорной.
type Exchanger struct {
	rates        rates.Client
	baseCurrency string
	historyDays  int
}

// NewExchanger создает новый экземпляр Exchanger
func NewExchanger(client rates.Client, baseCurrency string, historyDays int) *Exchanger {
	return &Exchanger{
		rates:        client,
		baseCurrency: baseCurrency,
		historyDays:  historyDays,
	}
}

// BaseCurrency возвращает опорную валюту сервиса.
func (s *Exchanger) BaseCurrency() string {
	return s.baseCurrency
}

// HistoryDays возвращает окно истории по умолчанию.
func (s *Exchanger) HistoryDays() int {
	return s.historyDays
}

// Convert конвертирует сумму из from в to через опорную валюту.
// Result округляется до 2 знаков, Rate считается от округленного
// результата и округляется до 4 знаков.
func (s *Exchanger) Convert(ctx context.Context, amount float64, from, to string) (*model.ConvertResult, error) {
	if amount <= 0 {
		return nil, fmt.Errorf("amount must be positive, got %v", amount)
	}

	symbols := []string{from}
	if to != from {
		symbols = append(symbols, to)
	}

	table, err := s.rates.GetRates(ctx, s.baseCurrency, symbols)
	if err != nil {
		return nil, fmt.Errorf("failed to get rates: %w", err)
	}

	fromRate, okFrom := table[from]
	toRate, okTo := table[to]
	if !okFrom || !okTo || fromRate == 0 {
		return nil, rates.ErrNoData
	}

	result := roundTo(amount/fromRate*toRate, 2)
	return &model.ConvertResult{
		From:   from,
		To:     to,
		Amount: amount,
		Result: result,
		Rate:   roundTo(result/amount, 4),
	}, nil
}

// CurrentRates возвращает текущие курсы всех валют каталога к base.
func (s *Exchanger) CurrentRates(ctx context.Context, base string) (map[string]float64, error) {
	targets := make([]string, 0, len(model.CurrencyDescriptions))
	for _, code := range model.CurrencyCodes() {
		if code != base {
			targets = append(targets, code)
		}
	}

	table, err := s.rates.GetRates(ctx, base, targets)
	if err != nil {
		return nil, fmt.Errorf("failed to get current rates: %w", err)
	}
	if len(table) == 0 {
		return nil, rates.ErrNoData
	}
	return table, nil
}

// History возвращает историю курса from -> to за окно по умолчанию.
func (s *Exchanger) History(ctx context.Context, from, to string) (map[time.Time]float64, error) {
	return s.rates.GetHistoricalSeries(ctx, from, to, s.historyDays)
}

// CompareSeries возвращает истории двух валют к опорной валюте
// за одно и то же окно — сырье для графика сравнения.
func (s *Exchanger) CompareSeries(ctx context.Context, first, second string) (map[time.Time]float64, map[time.Time]float64, error) {
	firstSeries, err := s.rates.GetHistoricalSeries(ctx, s.baseCurrency, first, s.historyDays)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get history for %s: %w", first, err)
	}

	secondSeries, err := s.rates.GetHistoricalSeries(ctx, s.baseCurrency, second, s.historyDays)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get history for %s: %w", second, err)
	}

	return firstSeries, secondSeries, nil
}

// RateOnDate возвращает курс пары from -> to на конкретную дату.
func (s *Exchanger) RateOnDate(ctx context.Context, from, to string, date time.Time) (float64, error) {
	return s.rates.GetRateOnDate(ctx, from, to, date)
}

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
