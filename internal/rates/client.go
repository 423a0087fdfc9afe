package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// ErrNoData возвращается, когда провайдер не отдал курс:
// не-2xx ответ, отсутствие поля или пустая история.
var ErrNoData = errors.New("rates: no data")

// Client определяет контракт провайдера курсов валют.
type Client interface {
	GetRates(ctx context.Context, base string, symbols []string) (map[string]float64, error)
	GetHistoricalSeries(ctx context.Context, base, symbol string, days int) (map[time.Time]float64, error)
	GetRateOnDate(ctx context.Context, base, symbol string, date time.Time) (float64, error)
}

// HTTPClient ходит в API openexchangerates (latest.json / historical/<date>.json).
type HTTPClient struct {
	baseURL string
	appID   string
	client  *http.Client
}

func NewHTTPClient(baseURL, appID string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		appID:   appID,
		client:  &http.Client{Timeout: timeout},
	}
}

type ratesResponse struct {
	Rates map[string]float64 `json:"rates"`
}

func (c *HTTPClient) GetRates(ctx context.Context, base string, symbols []string) (map[string]float64, error) {
	reqURL := fmt.Sprintf("%s/latest.json?%s", c.baseURL, c.query(base, symbols))
	return c.fetchRates(ctx, reqURL, symbols)
}

func (c *HTTPClient) GetRateOnDate(ctx context.Context, base, symbol string, date time.Time) (float64, error) {
	reqURL := fmt.Sprintf("%s/historical/%s.json?%s",
		c.baseURL, date.Format("2006-01-02"), c.query(base, []string{symbol}))

	rates, err := c.fetchRates(ctx, reqURL, []string{symbol})
	if err != nil {
		return 0, err
	}
	rate, ok := rates[symbol]
	if !ok {
		return 0, ErrNoData
	}
	return rate, nil
}

func (c *HTTPClient) GetHistoricalSeries(ctx context.Context, base, symbol string, days int) (map[time.Time]float64, error) {
	series := make(map[time.Time]float64, days)
	today := time.Now().UTC().Truncate(24 * time.Hour)

	// Дни без данных (выходные, будущее) просто пропускаются.
	for i := 0; i < days; i++ {
		date := today.AddDate(0, 0, -i)
		rate, err := c.GetRateOnDate(ctx, base, symbol, date)
		if err != nil {
			if errors.Is(err, ErrNoData) {
				continue
			}
			return nil, err
		}
		series[date] = rate
	}

	if len(series) == 0 {
		return nil, ErrNoData
	}
	return series, nil
}

func (c *HTTPClient) query(base string, symbols []string) string {
	q := url.Values{}
	q.Set("app_id", c.appID)
	q.Set("base", base)
	q.Set("symbols", strings.Join(symbols, ","))
	return q.Encode()
}

func (c *HTTPClient) fetchRates(ctx context.Context, reqURL string, symbols []string) (map[string]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request error: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		// Таймаут и сетевые ошибки для вызывающего кода неотличимы
		// от отсутствия данных.
		log.Warn().Err(err).Msg("rates request failed")
		return nil, ErrNoData
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		log.Warn().Int("status", resp.StatusCode).Str("body", string(body)).Msg("rates API error")
		return nil, ErrNoData
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read body error: %w", err)
	}

	var parsed ratesResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("json unmarshal error: %w", err)
	}
	if parsed.Rates == nil {
		return nil, ErrNoData
	}

	result := make(map[string]float64, len(symbols))
	for _, symbol := range symbols {
		if rate, ok := parsed.Rates[symbol]; ok {
			result[symbol] = rate
		}
	}
	return result, nil
}
