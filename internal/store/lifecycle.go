package store

import (
	"context"
	"slices"

	"github.com/lalith-99/propmaster/internal/lifecycle"
	"github.com/lalith-99/propmaster/internal/models"
	"github.com/lalith-99/propmaster/internal/observ"
	"go.uber.org/zap"
)

// Apply runs one lifecycle intent against the current State and commits
// the outcome. A no-op result commits nothing.
func (s *Store) Apply(ctx context.Context, in lifecycle.Intent) (lifecycle.Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.engine.Apply(s.state, in)
	switch {
	case err != nil:
		observ.LifecycleOps.WithLabelValues(string(in.Op), string(in.Kind), observ.OutcomeError).Inc()
		return lifecycle.Result{}, err
	case !res.Changed:
		observ.LifecycleOps.WithLabelValues(string(in.Op), string(in.Kind), observ.OutcomeNoop).Inc()
		s.logger.Debug("lifecycle no-op",
			zap.String("op", string(in.Op)),
			zap.String("kind", string(in.Kind)),
			zap.String("id", in.ID),
			zap.String("reason", res.Reason))
		return res, nil
	}

	observ.LifecycleOps.WithLabelValues(string(in.Op), string(in.Kind), observ.OutcomeChanged).Inc()
	s.commit(ctx, res.State, *res.Audit)
	return res, nil
}

func (s *Store) Delete(ctx context.Context, kind models.EntityType, id, actor string) (lifecycle.Result, error) {
	return s.Apply(ctx, lifecycle.Intent{Op: lifecycle.OpDelete, Kind: kind, ID: id, Actor: actor})
}

func (s *Store) Archive(ctx context.Context, kind models.EntityType, id, actor string) (lifecycle.Result, error) {
	return s.Apply(ctx, lifecycle.Intent{Op: lifecycle.OpArchive, Kind: kind, ID: id, Actor: actor})
}

func (s *Store) RestoreFromDelete(ctx context.Context, kind models.EntityType, id, actor string) (lifecycle.Result, error) {
	return s.Apply(ctx, lifecycle.Intent{Op: lifecycle.OpRestoreDeleted, Kind: kind, ID: id, Actor: actor})
}

func (s *Store) RestoreFromArchive(ctx context.Context, kind models.EntityType, id, actor string) (lifecycle.Result, error) {
	return s.Apply(ctx, lifecycle.Intent{Op: lifecycle.OpRestoreArchived, Kind: kind, ID: id, Actor: actor})
}

// DeletedLog returns the deleted-record log, newest first.
func (s *Store) DeletedLog() []models.DeletedRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := slices.Clone(s.state.DeletedLog)
	slices.Reverse(out)
	return out
}

func (s *Store) ArchivedRecords() []models.DeletedRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return lifecycle.ArchivedRecords(s.state, s.engine.Now())
}

// AuditLog returns the audit trail, newest first.
func (s *Store) AuditLog() []models.AuditLogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := slices.Clone(s.state.AuditLog)
	slices.Reverse(out)
	return out
}

// RecordAudit appends an entry for events outside the lifecycle, such as
// login, logout and settings changes.
func (s *Store) RecordAudit(ctx context.Context, actor, action, details string) models.AuditLogEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry := s.engine.Audit(actor, action, details)
	next := s.state
	next.AuditLog = append(slices.Clip(next.AuditLog), entry)
	s.commit(ctx, next, entry)
	return entry
}
