package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/supabase-community/supabase-go"

	"github.com/ivanoskov/currency_bot/internal/model"
)

const trackedTable = "tracked_currencies"

type SupabaseStore struct {
	client *supabase.Client
}

func NewSupabaseStore(url, key string) (*SupabaseStore, error) {
	client, err := supabase.NewClient(url, key, &supabase.ClientOptions{})
	if err != nil {
		return nil, err
	}

	return &SupabaseStore{
		client: client,
	}, nil
}

func (r *SupabaseStore) Add(ctx context.Context, chatID int64, code string) (bool, error) {
	existing, err := r.find(chatID, code)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}

	tracked := &model.TrackedCurrency{
		ChatID:       chatID,
		CurrencyCode: code,
	}
	tracked.GenerateID()

	_, count, err := r.client.From(trackedTable).Insert(tracked, false, "", "", "").Execute()
	if err != nil {
		// Гонка двух одинаковых добавлений упирается в уникальный
		// индекс (chat_id, currency_code) — это не ошибка.
		if strings.Contains(err.Error(), "duplicate key") {
			return false, nil
		}
		return false, fmt.Errorf("failed to add tracked currency: %w", err)
	}
	_ = count
	return true, nil
}

func (r *SupabaseStore) Remove(ctx context.Context, chatID int64, code string) (bool, error) {
	existing, err := r.find(chatID, code)
	if err != nil {
		return false, err
	}
	if len(existing) == 0 {
		return false, nil
	}

	_, count, err := r.client.From(trackedTable).
		Delete("", "").
		Eq("chat_id", strconv.FormatInt(chatID, 10)).
		Eq("currency_code", code).
		Execute()
	if err != nil {
		return false, fmt.Errorf("failed to remove tracked currency: %w", err)
	}
	_ = count
	return true, nil
}

func (r *SupabaseStore) List(ctx context.Context, chatID int64) ([]string, error) {
	data, count, err := r.client.From(trackedTable).
		Select("*", "", false).
		Eq("chat_id", strconv.FormatInt(chatID, 10)).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to list tracked currencies: %w", err)
	}
	_ = count

	var tracked []model.TrackedCurrency
	if err := json.Unmarshal(data, &tracked); err != nil {
		return nil, fmt.Errorf("failed to parse tracked currencies: %w", err)
	}

	codes := make([]string, 0, len(tracked))
	for _, t := range tracked {
		codes = append(codes, t.CurrencyCode)
	}
	sort.Strings(codes)
	return codes, nil
}

func (r *SupabaseStore) AllGroupedByChat(ctx context.Context) (map[int64][]string, error) {
	data, count, err := r.client.From(trackedTable).
		Select("*", "", false).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to load tracked currencies: %w", err)
	}
	_ = count

	var tracked []model.TrackedCurrency
	if err := json.Unmarshal(data, &tracked); err != nil {
		return nil, fmt.Errorf("failed to parse tracked currencies: %w", err)
	}

	grouped := make(map[int64][]string)
	for _, t := range tracked {
		grouped[t.ChatID] = append(grouped[t.ChatID], t.CurrencyCode)
	}
	for chatID := range grouped {
		sort.Strings(grouped[chatID])
	}
	return grouped, nil
}

func (r *SupabaseStore) find(chatID int64, code string) ([]model.TrackedCurrency, error) {
	data, count, err := r.client.From(trackedTable).
		Select("*", "", false).
		Eq("chat_id", strconv.FormatInt(chatID, 10)).
		Eq("currency_code", code).
		Execute()
	if err != nil {
		return nil, fmt.Errorf("failed to query tracked currency: %w", err)
	}
	_ = count

	var tracked []model.TrackedCurrency
	if err := json.Unmarshal(data, &tracked); err != nil {
		return nil, fmt.Errorf("failed to parse tracked currency: %w", err)
	}
	return tracked, nil
}
