package tokenstore

import (
	"context"
	"sync"

	"github.com/amirhosseinghanipour/folio/internal/application/ports"
)

// MemoryStore keeps the token in process memory. It does not survive restarts; use it for tests
// and single-run tools.
type MemoryStore struct {
	mu    sync.RWMutex
	token string
}

// NewMemoryStore returns a store holding token ("" for none).
func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

func (s *MemoryStore) Token(ctx context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token, nil
}

func (s *MemoryStore) SetToken(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemoryStore) ClearToken(ctx context.Context) error {
	return s.SetToken(ctx, "")
}

var _ ports.TokenStore = (*MemoryStore)(nil)
