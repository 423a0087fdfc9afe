package rates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetRates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/latest.json", r.URL.Path)
		assert.Equal(t, "test-app-id", r.URL.Query().Get("app_id"))
		assert.Equal(t, "USD", r.URL.Query().Get("base"))

		w.Write([]byte(`{"base":"USD","rates":{"EUR":0.9,"UAH":41.3,"GBP":0.79}}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "test-app-id", time.Second)

	table, err := client.GetRates(context.Background(), "USD", []string{"EUR", "UAH"})
	require.NoError(t, err)

	// Запрошенные символы попадают в ответ, лишние отфильтровываются
	assert.InDelta(t, 0.9, table["EUR"], 1e-9)
	assert.InDelta(t, 41.3, table["UAH"], 1e-9)
	_, ok := table["GBP"]
	assert.False(t, ok)
}

func TestGetRatesAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"error":true,"message":"invalid_app_id"}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "bad-id", time.Second)

	_, err := client.GetRates(context.Background(), "USD", []string{"EUR"})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestGetRatesNetworkError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewHTTPClient(server.URL, "test-app-id", time.Second)

	_, err := client.GetRates(context.Background(), "USD", []string{"EUR"})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestGetRateOnDate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/historical/2024-01-15.json", r.URL.Path)
		w.Write([]byte(`{"rates":{"EUR":0.915}}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "test-app-id", time.Second)

	date := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	rate, err := client.GetRateOnDate(context.Background(), "USD", "EUR", date)
	require.NoError(t, err)
	assert.InDelta(t, 0.915, rate, 1e-9)
}

func TestGetRateOnDateMissingSymbol(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"rates":{}}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "test-app-id", time.Second)

	_, err := client.GetRateOnDate(context.Background(), "USD", "EUR", time.Now())
	assert.ErrorIs(t, err, ErrNoData)
}

func TestGetHistoricalSeriesSkipsMissingDays(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		// Первый день окна без данных, остальные с курсом
		if calls == 1 {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Write([]byte(`{"rates":{"EUR":0.9}}`))
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "test-app-id", time.Second)

	series, err := client.GetHistoricalSeries(context.Background(), "USD", "EUR", 5)
	require.NoError(t, err)
	assert.Len(t, series, 4)
	assert.Equal(t, 5, calls)
}

func TestGetHistoricalSeriesAllDaysMissing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := NewHTTPClient(server.URL, "test-app-id", time.Second)

	_, err := client.GetHistoricalSeries(context.Background(), "USD", "EUR", 3)
	assert.ErrorIs(t, err, ErrNoData)
}
