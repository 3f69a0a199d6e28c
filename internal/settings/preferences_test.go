package settings

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/lalith-99/propmaster/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingKV struct{}

func (failingKV) Get(context.Context, string) (string, error) {
	return "", errors.New("connection refused")
}
func (failingKV) Set(context.Context, string, string, time.Duration) error {
	return errors.New("connection refused")
}

func TestPreferences_Defaults(t *testing.T) {
	ctx := context.Background()
	p := NewPreferences(NewMemoryKVStore(), "ws", nil)

	assert.Equal(t, models.DefaultOwnerSettings(), p.OwnerSettings(ctx))
	assert.Nil(t, p.AuditLog(ctx))
	assert.Equal(t, models.LanguageEnglish, p.Language(ctx))
	assert.Equal(t, models.ThemeLight, p.Theme(ctx))
}

func TestPreferences_RoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKVStore()
	p := NewPreferences(kv, "ws", nil)

	owner := models.OwnerSettings{Name: "Nile Estates", Location: "Giza", Phone: "+20 2 1234"}
	require.NoError(t, p.SaveOwnerSettings(ctx, owner))
	assert.Equal(t, owner, p.OwnerSettings(ctx))

	entries := []models.AuditLogEntry{{ID: "1", User: "Admin", Action: "Login", Details: "User Admin logged in.", Date: time.Date(2026, 10, 19, 8, 0, 0, 0, time.UTC)}}
	require.NoError(t, p.SaveAuditLog(ctx, entries))
	assert.Equal(t, entries, p.AuditLog(ctx))

	require.NoError(t, p.SaveLanguage(ctx, models.LanguageArabic))
	assert.Equal(t, models.LanguageArabic, p.Language(ctx))
	require.NoError(t, p.SaveTheme(ctx, models.ThemeDark))
	assert.Equal(t, models.ThemeDark, p.Theme(ctx))

	raw, err := kv.Get(ctx, "ws:appTheme")
	require.NoError(t, err)
	assert.Equal(t, "dark", raw)
}

func TestPreferences_RejectsInvalid(t *testing.T) {
	ctx := context.Background()
	p := NewPreferences(NewMemoryKVStore(), "", nil)

	assert.ErrorIs(t, p.SaveLanguage(ctx, "fr"), ErrInvalidValue)
	assert.ErrorIs(t, p.SaveTheme(ctx, "sepia"), ErrInvalidValue)
}

func TestPreferences_MalformedFallsBack(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKVStore()
	p := NewPreferences(kv, "", nil)

	require.NoError(t, kv.Set(ctx, KeyOwnerSettings, "{not json", 0))
	require.NoError(t, kv.Set(ctx, KeyAuditLog, `{"id": 1}`, 0))
	require.NoError(t, kv.Set(ctx, KeyLanguage, "de", 0))

	assert.Equal(t, models.DefaultOwnerSettings(), p.OwnerSettings(ctx))
	assert.Nil(t, p.AuditLog(ctx))
	assert.Equal(t, models.LanguageEnglish, p.Language(ctx))
}

func TestPreferences_BackendDown(t *testing.T) {
	ctx := context.Background()
	p := NewPreferences(failingKV{}, "ws", nil)

	assert.Equal(t, models.DefaultOwnerSettings(), p.OwnerSettings(ctx))
	assert.Error(t, p.SaveOwnerSettings(ctx, models.DefaultOwnerSettings()))
}

func TestMemoryKVStore_TTL(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKVStore()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	kv.now = func() time.Time { return now }

	require.NoError(t, kv.Set(ctx, "k", "v", time.Minute))
	v, err := kv.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", v)

	now = now.Add(2 * time.Minute)
	_, err = kv.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisKVStore(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)
	client := redis.NewClient(opts)
	defer client.Close()

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("redis not reachable: %v", err)
	}

	kv := NewRedisKVStore(client)
	key := "propmaster-test:" + time.Now().Format(time.RFC3339Nano)
	_, err = kv.Get(ctx, key)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, kv.Set(ctx, key, "light", time.Minute))
	v, err := kv.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "light", v)
}

func TestPreferences_MirrorAuditLog(t *testing.T) {
	ctx := context.Background()
	p := NewPreferences(NewMemoryKVStore(), "ws", nil)

	seed := []models.AuditLogEntry{{ID: "a1", Action: "Login"}}
	listen := p.MirrorAuditLog(seed)
	listen(models.AuditLogEntry{ID: "a2", Action: "Delete Tenant"})
	listen(models.AuditLogEntry{ID: "a3", Action: "Logout"})

	got := p.AuditLog(ctx)
	require.Len(t, got, 3)
	assert.Equal(t, "a1", got[0].ID)
	assert.Equal(t, "a3", got[2].ID)
	assert.Len(t, seed, 1, "seed slice must not grow")
}

func TestPreferences_MirrorAuditLogCapped(t *testing.T) {
	ctx := context.Background()
	p := NewPreferences(NewMemoryKVStore(), "ws", nil)

	listen := p.MirrorAuditLog(nil)
	for i := 0; i < MaxMirroredEntries+5; i++ {
		listen(models.AuditLogEntry{ID: fmt.Sprintf("e%d", i)})
	}

	got := p.AuditLog(ctx)
	require.Len(t, got, MaxMirroredEntries)
	assert.Equal(t, "e5", got[0].ID)
}
