package memory

import (
	"context"
	"sync"

	"github.com/lalith-99/propmaster/internal/lifecycle"
)

// SnapshotStore is an in-process SnapshotRepository, used in tests.
type SnapshotStore struct {
	mu    sync.RWMutex
	saved map[string]lifecycle.State
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{saved: map[string]lifecycle.State{}}
}

func (s *SnapshotStore) Load(_ context.Context, workspace string) (*lifecycle.State, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.saved[workspace]
	if !ok {
		return nil, nil
	}
	st = st.Clone()
	return &st, nil
}

func (s *SnapshotStore) Save(_ context.Context, workspace string, st lifecycle.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saved[workspace] = st.Clone()
	return nil
}
