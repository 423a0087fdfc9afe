package model

import (
	"time"

	"github.com/google/uuid"
)

// TrackedCurrency — подписка чата на валюту для ежедневной рассылки.
// Пара (chat_id, currency_code) уникальна на уровне хранилища.
type TrackedCurrency struct {
	ID           string    `json:"id,omitempty"`
	ChatID       int64     `json:"chat_id"`
	CurrencyCode string    `json:"currency_code"`
	CreatedAt    time.Time `json:"created_at,omitempty"`
}

// GenerateID генерирует новый UUID для записи, если он еще не установлен
func (t *TrackedCurrency) GenerateID() {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
}
