package service

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivanoskov/currency_bot/internal/rates"
)

type stubRates struct {
	table   map[string]float64
	history map[time.Time]float64
	err     error
}

func (s *stubRates) GetRates(ctx context.Context, base string, symbols []string) (map[string]float64, error) {
	if s.err != nil {
		return nil, s.err
	}
	result := make(map[string]float64, len(symbols))
	for _, symbol := range symbols {
		if rate, ok := s.table[symbol]; ok {
			result[symbol] = rate
		}
	}
	return result, nil
}

func (s *stubRates) GetHistoricalSeries(ctx context.Context, base, symbol string, days int) (map[time.Time]float64, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.history, nil
}

func (s *stubRates) GetRateOnDate(ctx context.Context, base, symbol string, date time.Time) (float64, error) {
	if s.err != nil {
		return 0, s.err
	}
	return s.table[symbol], nil
}

func newStub() *stubRates {
	return &stubRates{table: map[string]float64{
		"USD": 1,
		"EUR": 0.9,
		"UAH": 41.3,
	}}
}

func TestConvert(t *testing.T) {
	s := NewExchanger(newStub(), "USD", 7)

	result, err := s.Convert(context.Background(), 100, "EUR", "UAH")
	require.NoError(t, err)

	assert.Equal(t, "EUR", result.From)
	assert.Equal(t, "UAH", result.To)
	assert.InDelta(t, 4588.89, result.Result, 1e-9)
	assert.InDelta(t, 45.8889, result.Rate, 1e-9)
}

func TestConvertRateMatchesRoundedResult(t *testing.T) {
	s := NewExchanger(newStub(), "USD", 7)

	for _, amount := range []float64{1, 3, 7.77, 100, 12345.67} {
		result, err := s.Convert(context.Background(), amount, "EUR", "UAH")
		require.NoError(t, err)

		// Курс выводится из округленного результата, а не наоборот
		want := math.Round(result.Result/amount*10000) / 10000
		assert.InDelta(t, want, result.Rate, 1e-9, "amount %v", amount)
	}
}

func TestConvertSameCurrency(t *testing.T) {
	s := NewExchanger(newStub(), "USD", 7)

	result, err := s.Convert(context.Background(), 250, "EUR", "EUR")
	require.NoError(t, err)
	assert.InDelta(t, 250, result.Result, 1e-9)
	assert.InDelta(t, 1, result.Rate, 1e-9)
}

func TestConvertRejectsNonPositiveAmount(t *testing.T) {
	s := NewExchanger(newStub(), "USD", 7)

	_, err := s.Convert(context.Background(), 0, "EUR", "UAH")
	assert.Error(t, err)

	_, err = s.Convert(context.Background(), -10, "EUR", "UAH")
	assert.Error(t, err)
}

func TestConvertMissingRate(t *testing.T) {
	s := NewExchanger(newStub(), "USD", 7)

	_, err := s.Convert(context.Background(), 100, "EUR", "TRY")
	assert.ErrorIs(t, err, rates.ErrNoData)
}

func TestConvertProviderError(t *testing.T) {
	s := NewExchanger(&stubRates{err: rates.ErrNoData}, "USD", 7)

	_, err := s.Convert(context.Background(), 100, "EUR", "UAH")
	assert.ErrorIs(t, err, rates.ErrNoData)
}

func TestCurrentRatesExcludesBase(t *testing.T) {
	stub := newStub()
	s := NewExchanger(stub, "USD", 7)

	table, err := s.CurrentRates(context.Background(), "USD")
	require.NoError(t, err)
	_, ok := table["USD"]
	assert.False(t, ok)
	assert.InDelta(t, 0.9, table["EUR"], 1e-9)
}

func TestCurrentRatesEmptyTable(t *testing.T) {
	s := NewExchanger(&stubRates{table: map[string]float64{}}, "USD", 7)

	_, err := s.CurrentRates(context.Background(), "USD")
	assert.ErrorIs(t, err, rates.ErrNoData)
}

func TestCompareSeriesPropagatesError(t *testing.T) {
	s := NewExchanger(&stubRates{err: errors.New("boom")}, "USD", 7)

	_, _, err := s.CompareSeries(context.Background(), "EUR", "PLN")
	assert.Error(t, err)
}

func TestRoundTo(t *testing.T) {
	assert.InDelta(t, 4588.89, roundTo(4588.8888, 2), 1e-9)
	assert.InDelta(t, 45.8889, roundTo(45.88888, 4), 1e-9)
	assert.InDelta(t, 1.0, roundTo(0.9999999, 2), 1e-9)
}
