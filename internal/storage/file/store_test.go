package file

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hytaletravelers/playerstats/internal/model"
)

const testUUID = "2f5a1b7c-0000-4000-8000-000000000001"

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "players.json")
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return New(path, logger)
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	store := newTestStore(t)

	players, migrated, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, players)
	assert.False(t, migrated)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	v := model.CurrentSnapshotVersion
	in := []model.PersistedPlayer{{
		Version:         &v,
		UUID:            testUUID,
		Username:        "alice",
		PlaytimeSeconds: 120,
		DamageDealt:     33.5,
		PlayerKills:     2,
		MobKills:        5,
		BlocksPlaced:    1,
		BlocksBroken:    4,
		DeathCount:      3,
	}}

	require.NoError(t, store.Save(ctx, in))

	out, migrated, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, migrated)
	assert.Equal(t, in, out)
}

func TestSaveCreatesParentDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deeper", "players.json")
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	store := New(path, logger)

	require.NoError(t, store.Save(context.Background(), nil))

	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestLoadSkipsEntriesWithoutUUID(t *testing.T) {
	store := newTestStore(t)

	data := `[
		{"version": 1, "uuid": "` + testUUID + `", "username": "alice"},
		{"version": 1, "username": "no-uuid"}
	]`
	require.NoError(t, os.WriteFile(store.path, []byte(data), 0o644))

	players, _, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, players, 1)
	assert.Equal(t, "alice", players[0].Username)
}

func TestLoadDetectsUnversionedRecords(t *testing.T) {
	store := newTestStore(t)

	data := `[{"uuid": "` + testUUID + `", "username": "alice", "playtimeSeconds": 60}]`
	require.NoError(t, os.WriteFile(store.path, []byte(data), 0o644))

	players, migrated, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.True(t, migrated)
	require.Len(t, players, 1)
	assert.Nil(t, players[0].Version)
}

func TestLoadMalformedFileErrors(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, os.WriteFile(store.path, []byte("{not json"), 0o644))

	_, _, err := store.Load(context.Background())
	assert.Error(t, err)
}

func TestVersionStampedAfterResave(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	// Legacy file without version fields
	data := `[{"uuid": "` + testUUID + `", "username": "alice", "playtimeSeconds": 60}]`
	require.NoError(t, os.WriteFile(store.path, []byte(data), 0o644))

	players, migrated, err := store.Load(ctx)
	require.NoError(t, err)
	require.True(t, migrated)

	// Re-save the records in current form, as the persistence layer does
	rec, err := players[0].Restore()
	require.NoError(t, err)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(ctx, []model.PersistedPlayer{model.PersistPlayer(rec, now)}))

	reloaded, migrated, err := store.Load(ctx)
	require.NoError(t, err)
	assert.False(t, migrated)
	require.Len(t, reloaded, 1)
	require.NotNil(t, reloaded[0].Version)
	assert.Equal(t, model.CurrentSnapshotVersion, *reloaded[0].Version)
}
