package repository

import (
	"context"
)

// TrackingStore определяет интерфейс хранилища отслеживаемых валют.
type TrackingStore interface {
	// Add добавляет подписку чата на валюту. Возвращает false,
	// если валюта уже отслеживается (повторное добавление — не ошибка).
	Add(ctx context.Context, chatID int64, code string) (bool, error)
	// Remove удаляет подписку. Возвращает false, если валюты не было в списке.
	Remove(ctx context.Context, chatID int64, code string) (bool, error)
	// List возвращает отсортированные коды валют чата.
	List(ctx context.Context, chatID int64) ([]string, error)
	// AllGroupedByChat возвращает снимок всех подписок, сгруппированный по чатам.
	AllGroupedByChat(ctx context.Context) (map[int64][]string, error)
}
