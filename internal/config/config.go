package config

import (
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	TelegramToken string `env:"TELEGRAM_TOKEN" env-required:"true"`
	SupabaseURL   string `env:"SUPABASE_URL" env-required:"true"`
	SupabaseKey   string `env:"SUPABASE_KEY" env-required:"true"`
	Rates         Rates
	Redis         Redis
	Digest        Digest
}

type Rates struct {
	BaseURL      string        `env:"EXCHANGE_RATES_BASE_URL" env-default:"https://openexchangerates.org/api"`
	AppID        string        `env:"EXCHANGE_RATES_APP_ID" env-required:"true"`
	BaseCurrency string        `env:"DEFAULT_BASE_CURRENCY" env-default:"USD"`
	Timeout      time.Duration `env:"RATES_TIMEOUT" env-default:"10s"`
	HistoryDays  int           `env:"RATES_HISTORY_DAYS" env-default:"7"`
}

type Redis struct {
	// Пустой Addr отключает кеширование курсов.
	Addr     string        `env:"REDIS_ADDR" env-default:""`
	Password string        `env:"REDIS_PASSWORD" env-default:""`
	DB       int           `env:"REDIS_DB" env-default:"0"`
	TTL      time.Duration `env:"REDIS_RATES_TTL" env-default:"1h"`
}

type Digest struct {
	Hour int `env:"DIGEST_HOUR" env-default:"9"`
}

func LoadConfig() (*Config, error) {
	// .env может отсутствовать в проде, тогда переменные приходят из окружения
	_ = godotenv.Load()

	cfg := &Config{}
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
