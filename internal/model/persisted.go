package model

import (
	"time"

	"github.com/google/uuid"
)

// CurrentSnapshotVersion is the schema version stamped on saved player records
const CurrentSnapshotVersion = 1

// PersistedPlayer is the durable DTO for one player record.
// Version is a pointer so records written before versioning (absent field)
// are distinguishable from version 0 and can be migrated.
type PersistedPlayer struct {
	Version         *int    `json:"version,omitempty"`
	UUID            string  `json:"uuid"`
	Username        string  `json:"username"`
	PlaytimeSeconds int64   `json:"playtimeSeconds"`
	DamageDealt     float64 `json:"damageDealt"`
	PlayerKills     int     `json:"playerKills"`
	MobKills        int     `json:"mobKills"`
	BlocksPlaced    int     `json:"blocksPlaced"`
	BlocksBroken    int     `json:"blocksBroken"`
	DeathCount      int     `json:"deathCount"`
}

// NeedsMigration reports whether the record predates the current schema version
func (p *PersistedPlayer) NeedsMigration() bool {
	return p.Version == nil || *p.Version < CurrentSnapshotVersion
}

// PersistPlayer converts a record to its durable form as of now.
// Any open session is folded into the stored playtime; the session itself is
// not persisted, so reloaded records always start offline.
func PersistPlayer(r *StatRecord, now time.Time) PersistedPlayer {
	v := CurrentSnapshotVersion
	return PersistedPlayer{
		Version:         &v,
		UUID:            string(r.ID),
		Username:        r.Username,
		PlaytimeSeconds: r.TotalPlaytime(now),
		DamageDealt:     r.DamageDealt,
		PlayerKills:     r.PlayerKills,
		MobKills:        r.MobKills,
		BlocksPlaced:    r.BlocksPlaced,
		BlocksBroken:    r.BlocksBroken,
		DeathCount:      r.DeathCount,
	}
}

// Restore converts a persisted record back to a stat record.
// Records with a missing or unparseable UUID are rejected as corrupt.
func (p *PersistedPlayer) Restore() (*StatRecord, error) {
	if p.UUID == "" {
		return nil, ErrCorruptRecord
	}
	if _, err := uuid.Parse(p.UUID); err != nil {
		return nil, ErrCorruptRecord
	}

	username := p.Username
	if username == "" {
		username = "Unknown"
	}

	return &StatRecord{
		ID:                        PlayerID(p.UUID),
		Username:                  username,
		CumulativePlaytimeSeconds: p.PlaytimeSeconds,
		DamageDealt:               p.DamageDealt,
		PlayerKills:               p.PlayerKills,
		MobKills:                  p.MobKills,
		BlocksPlaced:              p.BlocksPlaced,
		BlocksBroken:              p.BlocksBroken,
		DeathCount:                p.DeathCount,
	}, nil
}
