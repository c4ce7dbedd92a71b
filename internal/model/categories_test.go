package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullRecord() StatRecord {
	return StatRecord{
		ID:                        "2f5a1b7c-0000-4000-8000-000000000001",
		Username:                  "alice",
		CumulativePlaytimeSeconds: 500,
		SessionStart:              time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
		DamageDealt:               42.5,
		PlayerKills:               3,
		MobKills:                  9,
		DeathCount:                4,
		BlocksPlaced:              10,
		BlocksBroken:              20,
	}
}

func TestParseCategoryIsCaseInsensitive(t *testing.T) {
	for _, input := range []string{"combat", "COMBAT", " Combat "} {
		c, err := ParseCategory(input)
		require.NoError(t, err)
		assert.Equal(t, CategoryCombat, c)
	}
}

func TestParseCategoryRejectsUnknown(t *testing.T) {
	_, err := ParseCategory("bogus")
	assert.ErrorIs(t, err, ErrUnknownCategory)

	_, err = ParseCategory("")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}

func TestResetAllPreservesIdentity(t *testing.T) {
	r := fullRecord()
	CategoryAll.Reset(&r)

	assert.Equal(t, PlayerID("2f5a1b7c-0000-4000-8000-000000000001"), r.ID)
	assert.Equal(t, "alice", r.Username)
	assert.Equal(t, int64(0), r.CumulativePlaytimeSeconds)
	assert.False(t, r.Online())
	assert.Zero(t, r.DamageDealt)
	assert.Zero(t, r.PlayerKills)
	assert.Zero(t, r.MobKills)
	assert.Zero(t, r.DeathCount)
	assert.Zero(t, r.BlocksPlaced)
	assert.Zero(t, r.BlocksBroken)
}

func TestResetCombatLeavesOtherStats(t *testing.T) {
	r := fullRecord()
	CategoryCombat.Reset(&r)

	assert.Zero(t, r.DamageDealt)
	assert.Zero(t, r.PlayerKills)
	assert.Zero(t, r.MobKills)
	assert.Zero(t, r.DeathCount)

	assert.Equal(t, int64(500), r.CumulativePlaytimeSeconds)
	assert.Equal(t, 10, r.BlocksPlaced)
	assert.Equal(t, 20, r.BlocksBroken)
	assert.True(t, r.Online())
}

func TestResetPlaytimeKeepsSessionClockFields(t *testing.T) {
	r := fullRecord()
	CategoryPlaytime.Reset(&r)

	assert.Equal(t, int64(0), r.CumulativePlaytimeSeconds)
	assert.True(t, r.Online())
	assert.Equal(t, 3, r.PlayerKills)
}

func TestEveryCategoryHasDescription(t *testing.T) {
	for _, c := range Categories() {
		assert.NotEmpty(t, c.Description(), string(c))
	}
}
