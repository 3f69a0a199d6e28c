package lifecycle

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lalith-99/propmaster/internal/models"
)

// ErrUnsupported is returned for an operation or entity kind the engine
// does not know. It is a caller bug, unlike a missing id which is a no-op.
var ErrUnsupported = errors.New("unsupported lifecycle operation")

// Reasons a Result reports Changed == false.
const (
	ReasonNotFound        = "not found"
	ReasonAlreadyArchived = "already archived"
	ReasonNotArchived     = "not archived"
	ReasonAlreadyLive     = "record is live"
)

// Result is the outcome of one lifecycle operation.
//
// When Changed is false, State is the input State itself and no log
// entry was produced. Callers can tell "nothing to do" (Changed false,
// nil error) from a real failure (non-nil error).
type Result struct {
	State   State
	Changed bool
	Reason  string
	// Deleted is the DeletedRecord appended by Delete or removed by
	// RestoreFromDelete.
	Deleted *models.DeletedRecord
	Audit   *models.AuditLogEntry
}

func unchanged(s State, reason string) Result {
	return Result{State: s, Reason: reason}
}

// Engine computes lifecycle outcomes. It holds no collection state; Now
// and NewID are injected so tests get deterministic timestamps and ids.
type Engine struct {
	Now   func() time.Time
	NewID func() string
}

func NewEngine() *Engine {
	return &Engine{Now: time.Now, NewID: uuid.NewString}
}

// Audit builds an AuditLogEntry stamped with the engine clock. An empty
// actor is recorded as "System".
func (e *Engine) Audit(actor, action, details string) models.AuditLogEntry {
	if actor == "" {
		actor = "System"
	}
	return models.AuditLogEntry{
		ID:      e.NewID(),
		User:    actor,
		Action:  action,
		Details: details,
		Date:    e.Now().UTC(),
	}
}

func (e *Engine) snapshot(kind models.EntityType, id, name string, v any, actor string) (models.DeletedRecord, error) {
	raw, err := marshalSnapshot(v)
	if err != nil {
		return models.DeletedRecord{}, fmt.Errorf("snapshot %s %s: %w", kind, id, err)
	}
	if actor == "" {
		actor = "Admin"
	}
	return models.DeletedRecord{
		ID:           id,
		Type:         kind,
		Name:         name,
		Action:       models.ActionDeleted,
		OriginalData: raw,
		Date:         e.Now().UTC(),
		User:         actor,
	}, nil
}

func marshalSnapshot(v any) (json.RawMessage, error) {
	return json.Marshal(v)
}

// finish appends the audit entry (and the deleted record, if any) to next
// and wraps it in a Result.
func finish(next State, rec *models.DeletedRecord, entry models.AuditLogEntry) Result {
	if rec != nil {
		next.DeletedLog = appended(next.DeletedLog, *rec)
	}
	next.AuditLog = appended(next.AuditLog, entry)
	return Result{State: next, Changed: true, Deleted: rec, Audit: &entry}
}

// Op names a lifecycle operation carried by an Intent.
type Op string

const (
	OpDelete          Op = "delete"
	OpArchive         Op = "archive"
	OpRestoreDeleted  Op = "restore_deleted"
	OpRestoreArchived Op = "restore_archived"
)

// Intent is a single mutation request from the transport layer.
type Intent struct {
	Op    Op                `json:"op" binding:"required"`
	Kind  models.EntityType `json:"kind" binding:"required"`
	ID    string            `json:"id" binding:"required"`
	Actor string            `json:"-"`
}

// Apply dispatches an Intent to the matching operation.
func (e *Engine) Apply(s State, in Intent) (Result, error) {
	switch in.Op {
	case OpDelete:
		return e.Delete(s, in.Kind, in.ID, in.Actor)
	case OpArchive:
		return e.Archive(s, in.Kind, in.ID, in.Actor)
	case OpRestoreDeleted:
		return e.RestoreFromDelete(s, in.Kind, in.ID, in.Actor)
	case OpRestoreArchived:
		return e.RestoreFromArchive(s, in.Kind, in.ID, in.Actor)
	}
	return Result{}, fmt.Errorf("op %q: %w", in.Op, ErrUnsupported)
}
