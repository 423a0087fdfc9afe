package notifier

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivanoskov/currency_bot/internal/service"
)

type stubStore struct {
	grouped map[int64][]string
	err     error
}

func (s *stubStore) Add(ctx context.Context, chatID int64, code string) (bool, error) {
	return false, nil
}

func (s *stubStore) Remove(ctx context.Context, chatID int64, code string) (bool, error) {
	return false, nil
}

func (s *stubStore) List(ctx context.Context, chatID int64) ([]string, error) {
	return s.grouped[chatID], nil
}

func (s *stubStore) AllGroupedByChat(ctx context.Context) (map[int64][]string, error) {
	return s.grouped, s.err
}

type stubRates struct {
	table map[string]float64
	calls int
}

func (s *stubRates) GetRates(ctx context.Context, base string, symbols []string) (map[string]float64, error) {
	s.calls++
	result := make(map[string]float64, len(symbols))
	for _, symbol := range symbols {
		if rate, ok := s.table[symbol]; ok {
			result[symbol] = rate
		}
	}
	return result, nil
}

func (s *stubRates) GetHistoricalSeries(ctx context.Context, base, symbol string, days int) (map[time.Time]float64, error) {
	return nil, errors.New("not used")
}

func (s *stubRates) GetRateOnDate(ctx context.Context, base, symbol string, date time.Time) (float64, error) {
	return 0, errors.New("not used")
}

type stubSender struct {
	sent map[int64]string
}

func (s *stubSender) SendText(chatID int64, text string) error {
	if s.sent == nil {
		s.sent = make(map[int64]string)
	}
	s.sent[chatID] = text
	return nil
}

func TestSendDigest(t *testing.T) {
	store := &stubStore{grouped: map[int64][]string{
		100: {"EUR", "UAH"},
		200: {"UAH"},
	}}
	client := &stubRates{table: map[string]float64{"EUR": 0.9, "UAH": 41.3}}
	sender := &stubSender{}

	digest := NewDailyDigest(store, service.NewExchanger(client, "USD", 7), sender, 9)
	digest.SendDigest(context.Background())

	require.Len(t, sender.sent, 2)
	assert.Contains(t, sender.sent[100], "1 USD = 0.9000 EUR")
	assert.Contains(t, sender.sent[100], "1 USD = 41.3000 UAH")
	assert.Contains(t, sender.sent[200], "1 USD = 41.3000 UAH")
	assert.NotContains(t, sender.sent[200], "EUR")

	// Курсы запрашиваются один раз на прогон, а не на чат
	assert.Equal(t, 1, client.calls)
}

func TestSendDigestSkipsUnresolvedChats(t *testing.T) {
	store := &stubStore{grouped: map[int64][]string{
		100: {"EUR"},
		200: {"XXX"},
	}}
	client := &stubRates{table: map[string]float64{"EUR": 0.9}}
	sender := &stubSender{}

	digest := NewDailyDigest(store, service.NewExchanger(client, "USD", 7), sender, 9)
	digest.SendDigest(context.Background())

	require.Len(t, sender.sent, 1)
	_, ok := sender.sent[200]
	assert.False(t, ok, "chat without a single known rate gets no message")
}

func TestSendDigestStoreError(t *testing.T) {
	store := &stubStore{err: errors.New("db down")}
	client := &stubRates{table: map[string]float64{"EUR": 0.9}}
	sender := &stubSender{}

	digest := NewDailyDigest(store, service.NewExchanger(client, "USD", 7), sender, 9)
	digest.SendDigest(context.Background())

	assert.Empty(t, sender.sent)
	assert.Equal(t, 0, client.calls)
}

func TestSendDigestNoSubscriptions(t *testing.T) {
	store := &stubStore{grouped: map[int64][]string{}}
	client := &stubRates{table: map[string]float64{"EUR": 0.9}}
	sender := &stubSender{}

	digest := NewDailyDigest(store, service.NewExchanger(client, "USD", 7), sender, 9)
	digest.SendDigest(context.Background())

	assert.Empty(t, sender.sent)
	assert.Equal(t, 0, client.calls, "rates are not fetched when nobody is subscribed")
}

func TestNextRun(t *testing.T) {
	loc := time.UTC

	before := time.Date(2024, time.March, 10, 8, 59, 0, 0, loc)
	assert.Equal(t, time.Date(2024, time.March, 10, 9, 0, 0, 0, loc), nextRun(before, 9))

	exactly := time.Date(2024, time.March, 10, 9, 0, 0, 0, loc)
	assert.Equal(t, time.Date(2024, time.March, 11, 9, 0, 0, 0, loc), nextRun(exactly, 9))

	after := time.Date(2024, time.March, 10, 15, 30, 0, 0, loc)
	assert.Equal(t, time.Date(2024, time.March, 11, 9, 0, 0, 0, loc), nextRun(after, 9))
}
