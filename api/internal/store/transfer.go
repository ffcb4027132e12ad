package store

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

// TTL хранения слоёв до пассивного вытеснения.
const TTL = time.Hour

// ErrNotFound — дизайна нет либо запись уже вытеснена по TTL.
var ErrNotFound = errors.New("design not found or expired")

type entry struct {
	layers  json.RawMessage
	created time.Time
}

// TransferStore — in-memory хранилище слоёв для передачи между контекстами
// (плагин забирает то, что запушил веб-клиент). Записи write-once, без
// фонового свипа: чистка только попутно на Put.
type TransferStore struct {
	mu  sync.Mutex
	ttl time.Duration
	now func() time.Time
	m   map[string]entry
}

func NewTransferStore() *TransferStore {
	return &TransferStore{
		ttl: TTL,
		now: time.Now,
		m:   make(map[string]entry),
	}
}

// Put сохраняет слои под свежим коротким id и попутно вытесняет записи
// старше TTL. Слои проходят насквозь без трансформаций.
func (s *TransferStore) Put(layers json.RawMessage) string {
	id := uuid.NewString()[:6]

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.m[id] = entry{layers: layers, created: now}
	for k, e := range s.m {
		if now.Sub(e.created) > s.ttl {
			delete(s.m, k)
		}
	}
	return id
}

func (s *TransferStore) Get(id string) (json.RawMessage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.m[id]
	if !ok {
		return nil, ErrNotFound
	}
	return e.layers, nil
}

// Len — текущее число записей (для диагностики и тестов).
func (s *TransferStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}
