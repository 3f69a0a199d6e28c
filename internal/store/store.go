// Package store holds one workspace's live collections and serialises
// every mutation through the lifecycle engine.
package store

import (
	"context"
	"errors"
	"sync"

	"github.com/lalith-99/propmaster/internal/lifecycle"
	"github.com/lalith-99/propmaster/internal/models"
	"github.com/lalith-99/propmaster/internal/observ"
	"go.uber.org/zap"
)

var (
	// ErrDanglingReference is returned in strict mode when a contract or
	// maintenance request names a tenant or apartment that does not exist.
	ErrDanglingReference = errors.New("dangling reference")

	// ErrInvalidState is returned when a workflow step does not apply to
	// the record's current status, e.g. reviewing a payment that is not
	// pending.
	ErrInvalidState = errors.New("invalid state for operation")

	ErrInvalidInput = errors.New("invalid input")
)

// Persister receives every committed State. Saving is write-through: the
// in-memory commit has already happened when SaveState is called.
type Persister interface {
	SaveState(ctx context.Context, s lifecycle.State) error
}

// Listener is called with each audit entry a commit produced. It runs
// with the store lock held and must not call back into the Store.
type Listener func(models.AuditLogEntry)

type Options struct {
	Engine           *lifecycle.Engine
	Persister        Persister
	StrictReferences bool
	Logger           *zap.Logger
}

type Store struct {
	mu        sync.RWMutex
	state     lifecycle.State
	engine    *lifecycle.Engine
	persist   Persister
	strict    bool
	logger    *zap.Logger
	listeners []Listener
}

func New(initial lifecycle.State, opts Options) *Store {
	if opts.Engine == nil {
		opts.Engine = lifecycle.NewEngine()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Store{
		state:   initial,
		engine:  opts.Engine,
		persist: opts.Persister,
		strict:  opts.StrictReferences,
		logger:  opts.Logger,
	}
}

// Subscribe registers l for audit entries produced by later commits.
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Snapshot returns a deep copy of the current State.
func (s *Store) Snapshot() lifecycle.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// commit installs next and fans out entries. Callers hold s.mu.
//
// A failed save is logged and counted but does not undo the commit; the
// next successful save carries the full State anyway.
func (s *Store) commit(ctx context.Context, next lifecycle.State, entries ...models.AuditLogEntry) {
	s.state = next

	if s.persist != nil {
		if err := s.persist.SaveState(ctx, next); err != nil {
			observ.PersistFailures.Inc()
			s.logger.Error("failed to persist state", zap.Error(err))
		}
	}
	for _, e := range entries {
		for _, l := range s.listeners {
			l(e)
		}
	}
}
