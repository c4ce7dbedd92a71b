package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0h 0m 0s", FormatDuration(0))
	assert.Equal(t, "0h 0m 59s", FormatDuration(59))
	assert.Equal(t, "0h 1m 0s", FormatDuration(60))
	assert.Equal(t, "1h 0m 0s", FormatDuration(3600))
	assert.Equal(t, "2h 3m 4s", FormatDuration(2*3600+3*60+4))
}

func TestOnlineAndSessionSeconds(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	r := StatRecord{ID: "id", Username: "alice"}
	assert.False(t, r.Online())
	assert.Equal(t, int64(0), r.SessionSeconds(start))

	r.SessionStart = start
	assert.True(t, r.Online())
	assert.Equal(t, int64(90), r.SessionSeconds(start.Add(90*time.Second)))
}

func TestTotalPlaytimeIncludesOpenSession(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	r := StatRecord{CumulativePlaytimeSeconds: 100, SessionStart: start}
	assert.Equal(t, int64(130), r.TotalPlaytime(start.Add(30*time.Second)))

	r.SessionStart = time.Time{}
	assert.Equal(t, int64(100), r.TotalPlaytime(start.Add(30*time.Second)))
}

func TestFormattedSessionTimeIsCompact(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	r := StatRecord{SessionStart: start}

	assert.Equal(t, "5s", r.FormattedSessionTime(start.Add(5*time.Second)))
	assert.Equal(t, "3m 2s", r.FormattedSessionTime(start.Add(3*time.Minute+2*time.Second)))
	assert.Equal(t, "1h 0m 9s", r.FormattedSessionTime(start.Add(time.Hour+9*time.Second)))
}

func TestKillCount(t *testing.T) {
	r := StatRecord{PlayerKills: 3, MobKills: 7}
	assert.Equal(t, 10, r.KillCount())
}

func TestPersistPlayerFoldsOpenSession(t *testing.T) {
	start := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)

	r := StatRecord{
		ID:                        "2f5a1b7c-0000-4000-8000-000000000001",
		Username:                  "alice",
		CumulativePlaytimeSeconds: 100,
		SessionStart:              start,
		PlayerKills:               2,
	}

	p := PersistPlayer(&r, start.Add(50*time.Second))

	require.NotNil(t, p.Version)
	assert.Equal(t, CurrentSnapshotVersion, *p.Version)
	assert.Equal(t, int64(150), p.PlaytimeSeconds)
	assert.Equal(t, "alice", p.Username)
	assert.Equal(t, 2, p.PlayerKills)
}

func TestRestoreStartsOffline(t *testing.T) {
	p := PersistedPlayer{
		UUID:            "2f5a1b7c-0000-4000-8000-000000000001",
		Username:        "alice",
		PlaytimeSeconds: 150,
	}

	rec, err := p.Restore()
	require.NoError(t, err)
	assert.False(t, rec.Online())
	assert.Equal(t, int64(150), rec.CumulativePlaytimeSeconds)
}

func TestRestoreRejectsBadUUID(t *testing.T) {
	_, err := (&PersistedPlayer{UUID: ""}).Restore()
	assert.ErrorIs(t, err, ErrCorruptRecord)

	_, err = (&PersistedPlayer{UUID: "not-a-uuid"}).Restore()
	assert.ErrorIs(t, err, ErrCorruptRecord)
}

func TestRestoreDefaultsMissingUsername(t *testing.T) {
	p := PersistedPlayer{UUID: "2f5a1b7c-0000-4000-8000-000000000001"}

	rec, err := p.Restore()
	require.NoError(t, err)
	assert.Equal(t, "Unknown", rec.Username)
}

func TestNeedsMigration(t *testing.T) {
	v := CurrentSnapshotVersion

	assert.True(t, (&PersistedPlayer{}).NeedsMigration())
	assert.False(t, (&PersistedPlayer{Version: &v}).NeedsMigration())
}
