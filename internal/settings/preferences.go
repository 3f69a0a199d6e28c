// Package settings persists the workspace preferences: owner details,
// UI language and theme, and a copy of the audit trail.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/lalith-99/propmaster/internal/models"
	"go.uber.org/zap"
)

// Keys, before the workspace prefix is applied.
const (
	KeyOwnerSettings = "ownerSettings"
	KeyAuditLog      = "auditLog"
	KeyLanguage      = "appLanguage"
	KeyTheme         = "appTheme"
)

var ErrInvalidValue = errors.New("invalid preference value")

type Preferences struct {
	kv     KVStore
	prefix string
	logger *zap.Logger
}

// NewPreferences namespaces every key as "<prefix>:<key>".
func NewPreferences(kv KVStore, prefix string, logger *zap.Logger) *Preferences {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Preferences{kv: kv, prefix: prefix, logger: logger}
}

func (p *Preferences) key(k string) string {
	if p.prefix == "" {
		return k
	}
	return p.prefix + ":" + k
}

// loadJSON decodes key into v. Missing or malformed values leave v as is
// and report false; malformed ones are logged.
func (p *Preferences) loadJSON(ctx context.Context, key string, v any) bool {
	raw, err := p.kv.Get(ctx, p.key(key))
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			p.logger.Warn("failed to read preference", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		p.logger.Warn("ignoring malformed preference", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (p *Preferences) saveJSON(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := p.kv.Set(ctx, p.key(key), string(raw), 0); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}

// OwnerSettings returns the saved owner details or the defaults.
func (p *Preferences) OwnerSettings(ctx context.Context) models.OwnerSettings {
	var s models.OwnerSettings
	if !p.loadJSON(ctx, KeyOwnerSettings, &s) {
		return models.DefaultOwnerSettings()
	}
	return s
}

func (p *Preferences) SaveOwnerSettings(ctx context.Context, s models.OwnerSettings) error {
	return p.saveJSON(ctx, KeyOwnerSettings, s)
}

// AuditLog returns the saved audit trail, or nil if there is none.
func (p *Preferences) AuditLog(ctx context.Context) []models.AuditLogEntry {
	var entries []models.AuditLogEntry
	if !p.loadJSON(ctx, KeyAuditLog, &entries) {
		return nil
	}
	return entries
}

func (p *Preferences) SaveAuditLog(ctx context.Context, entries []models.AuditLogEntry) error {
	if entries == nil {
		entries = []models.AuditLogEntry{}
	}
	return p.saveJSON(ctx, KeyAuditLog, entries)
}

func (p *Preferences) Language(ctx context.Context) models.Language {
	raw, err := p.kv.Get(ctx, p.key(KeyLanguage))
	if l := models.Language(raw); err == nil && l.Valid() {
		return l
	}
	return models.LanguageEnglish
}

func (p *Preferences) SaveLanguage(ctx context.Context, l models.Language) error {
	if !l.Valid() {
		return fmt.Errorf("%w: language %q", ErrInvalidValue, l)
	}
	return p.kv.Set(ctx, p.key(KeyLanguage), string(l), 0)
}

func (p *Preferences) Theme(ctx context.Context) models.Theme {
	raw, err := p.kv.Get(ctx, p.key(KeyTheme))
	if t := models.Theme(raw); err == nil && t.Valid() {
		return t
	}
	return models.ThemeLight
}

func (p *Preferences) SaveTheme(ctx context.Context, t models.Theme) error {
	if !t.Valid() {
		return fmt.Errorf("%w: theme %q", ErrInvalidValue, t)
	}
	return p.kv.Set(ctx, p.key(KeyTheme), string(t), 0)
}

// MaxMirroredEntries caps the audit trail copy kept in the KV store.
const MaxMirroredEntries = 500

// MirrorAuditLog returns a listener that keeps the KV copy of the audit
// trail in step with the store. seed is the trail at startup, oldest
// first. Save failures are logged; the next entry rewrites the whole copy.
func (p *Preferences) MirrorAuditLog(seed []models.AuditLogEntry) func(models.AuditLogEntry) {
	var mu sync.Mutex
	trail := slices.Clone(seed)

	return func(e models.AuditLogEntry) {
		mu.Lock()
		defer mu.Unlock()

		trail = append(trail, e)
		if n := len(trail) - MaxMirroredEntries; n > 0 {
			trail = slices.Delete(trail, 0, n)
		}
		if err := p.SaveAuditLog(context.Background(), trail); err != nil {
			p.logger.Warn("failed to mirror audit log", zap.Error(err))
		}
	}
}
