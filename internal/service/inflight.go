package service

import (
	"sync"

	"github.com/google/uuid"
)

// inflightGuard не даёт запустить второй запрос по тому же ключу,
// пока первый не завершился
type inflightGuard struct {
	mu      sync.Mutex
	pending map[string]uuid.UUID
}

func newInflightGuard() *inflightGuard {
	return &inflightGuard{pending: make(map[string]uuid.UUID)}
}

// acquire возвращает токен запроса или false, если по ключу уже идёт запрос
func (g *inflightGuard) acquire(key string) (uuid.UUID, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if _, busy := g.pending[key]; busy {
		return uuid.Nil, false
	}
	token := uuid.New()
	g.pending[key] = token
	return token, true
}

// release освобождает ключ, только если он занят этим же токеном
func (g *inflightGuard) release(key string, token uuid.UUID) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.pending[key] == token {
		delete(g.pending, key)
	}
}

func (g *inflightGuard) busy(key string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	_, ok := g.pending[key]
	return ok
}
