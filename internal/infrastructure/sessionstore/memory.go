package sessionstore

import (
	"context"
	"sync"

	"github.com/jhoicas/inventario-portal/internal/domain/entity"
	"github.com/jhoicas/inventario-portal/internal/domain/repository"
)

var _ repository.SessionStore = (*MemoryStore)(nil)

// MemoryStore sesión en memoria del proceso (tests y sesiones desechables).
type MemoryStore struct {
	mu    sync.Mutex
	token string
	user  *entity.User
}

// NewMemoryStore construye un store vacío.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Save(_ context.Context, token string, user *entity.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = cloneUser(user)
	return nil
}

func (s *MemoryStore) Load(_ context.Context) (entity.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return entity.Session{Token: s.token, User: cloneUser(s.user)}, nil
}

func (s *MemoryStore) Clear(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
	return nil
}

// Close no libera nada; existe para cumplir Store.
func (s *MemoryStore) Close() error { return nil }
