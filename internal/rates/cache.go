package rates

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// historicalTTL — срок хранения курса на прошедшую дату. Исторические
// курсы не меняются, но ключи не держим вечно.
const historicalTTL = 30 * 24 * time.Hour

// CachedClient кеширует ответы провайдера в redis. Ошибки redis не
// фатальны: при любом сбое кеша запрос уходит в апстрим.
type CachedClient struct {
	next Client
	rdb  *redis.Client
	ttl  time.Duration
}

func NewCachedClient(ctx context.Context, next Client, options *redis.Options, ttl time.Duration) (*CachedClient, error) {
	rdb := redis.NewClient(options)
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &CachedClient{next: next, rdb: rdb, ttl: ttl}, nil
}

func (c *CachedClient) GetRates(ctx context.Context, base string, symbols []string) (map[string]float64, error) {
	sorted := append([]string(nil), symbols...)
	sort.Strings(sorted)
	key := fmt.Sprintf("rates:current:%s:%s", base, strings.Join(sorted, ","))

	if val, err := c.rdb.Get(ctx, key).Result(); err == nil {
		var cached map[string]float64
		if err := json.Unmarshal([]byte(val), &cached); err == nil {
			return cached, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		log.Debug().Err(err).Str("key", key).Msg("redis get failed")
	}

	result, err := c.next.GetRates(ctx, base, symbols)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(result); err == nil {
		if err := c.rdb.Set(ctx, key, data, c.ttl).Err(); err != nil {
			log.Debug().Err(err).Str("key", key).Msg("redis set failed")
		}
	}
	return result, nil
}

func (c *CachedClient) GetRateOnDate(ctx context.Context, base, symbol string, date time.Time) (float64, error) {
	day := date.Format("2006-01-02")
	key := fmt.Sprintf("rates:ondate:%s:%s:%s", base, symbol, day)

	if val, err := c.rdb.Get(ctx, key).Result(); err == nil {
		if rate, err := strconv.ParseFloat(val, 64); err == nil {
			return rate, nil
		}
	} else if !errors.Is(err, redis.Nil) {
		log.Debug().Err(err).Str("key", key).Msg("redis get failed")
	}

	rate, err := c.next.GetRateOnDate(ctx, base, symbol, date)
	if err != nil {
		return 0, err
	}

	// Курс за сегодня еще может измениться, храним его недолго.
	ttl := historicalTTL
	if day == time.Now().UTC().Format("2006-01-02") {
		ttl = c.ttl
	}
	if err := c.rdb.Set(ctx, key, strconv.FormatFloat(rate, 'f', -1, 64), ttl).Err(); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("redis set failed")
	}
	return rate, nil
}

func (c *CachedClient) GetHistoricalSeries(ctx context.Context, base, symbol string, days int) (map[time.Time]float64, error) {
	series := make(map[time.Time]float64, days)
	today := time.Now().UTC().Truncate(24 * time.Hour)

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
