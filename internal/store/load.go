package store

import (
	"context"
	"fmt"

	"github.com/lalith-99/propmaster/internal/lifecycle"
)

// Loader reads a previously saved State. It returns nil, nil when there
// is nothing saved yet.
type Loader interface {
	LoadState(ctx context.Context) (*lifecycle.State, error)
}

// LoadOrDefault returns the saved State if there is one, otherwise the
// demo workspace when seed is set, otherwise an empty State. A nil loader
// skips straight to the default.
func LoadOrDefault(ctx context.Context, loader Loader, seed bool) (lifecycle.State, error) {
	if loader != nil {
		saved, err := loader.LoadState(ctx)
		if err != nil {
			return lifecycle.State{}, fmt.Errorf("load state: %w", err)
		}
		if saved != nil {
			return *saved, nil
		}
	}
	if seed {
		return DemoState(), nil
	}
	return lifecycle.State{}, nil
}
