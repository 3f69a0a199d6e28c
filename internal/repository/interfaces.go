package repository

import (
	"context"

	"github.com/lalith-99/propmaster/internal/lifecycle"
	"github.com/lalith-99/propmaster/internal/models"
)

// Every method takes ctx first: each implementation may talk to Postgres,
// and a cancelled request should cancel its query.

// SnapshotRepository stores one full State per workspace.
type SnapshotRepository interface {
	// Load returns the saved State. Returns nil, nil if the workspace
	// has never been saved.
	Load(ctx context.Context, workspace string) (*lifecycle.State, error)

	// Save replaces the workspace's State.
	Save(ctx context.Context, workspace string, s lifecycle.State) error
}

// UserRepository is the login directory.
type UserRepository interface {
	// Create stores u and returns it with ID populated. The email must
	// be unique.
	Create(ctx context.Context, u models.User) (*models.User, error)

	// GetByEmail returns nil, nil if no user has that email.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// GetByID returns nil, nil if not found.
	GetByID(ctx context.Context, id string) (*models.User, error)

	// List returns every user, ordered by email.
	List(ctx context.Context) ([]models.User, error)
}

// Workspace binds a SnapshotRepository to one workspace so the store can
// use it as its Loader and Persister.
type Workspace struct {
	Repo SnapshotRepository
	Name string
}

func (w Workspace) LoadState(ctx context.Context) (*lifecycle.State, error) {
	return w.Repo.Load(ctx, w.Name)
}

func (w Workspace) SaveState(ctx context.Context, s lifecycle.State) error {
	return w.Repo.Save(ctx, w.Name, s)
}
