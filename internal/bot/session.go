package bot

import "sync"

// PendingKind — вид ввода, который бот ждет от чата.
type PendingKind int

const (
	PendingNone PendingKind = iota
	// PendingConversionAmount — ждем сумму для конвертации From -> To.
	PendingConversionAmount
	// PendingRateDate — ждем дату для курса From -> To.
	PendingRateDate
)

// PendingRequest — отложенный запрос чата, ожидающий одного
// текстового сообщения для завершения двухшагового действия.
type PendingRequest struct {
	Kind PendingKind
	From string
	To   string
}

// SessionStore хранит отложенные запросы по чатам. На чат — не больше
// одного запроса; новый выбор перезаписывает неиспользованный старый.
// Состояние живет только в памяти процесса.
type SessionStore struct {
	mu      sync.Mutex
	pending map[int64]PendingRequest
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		pending: make(map[int64]PendingRequest),
	}
}

func (s *SessionStore) Set(chatID int64, req PendingRequest) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending[chatID] = req
}

func (s *SessionStore) Get(chatID int64) (PendingRequest, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	req, ok := s.pending[chatID]
	return req, ok
}

func (s *SessionStore) Clear(chatID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.pending, chatID)
}
