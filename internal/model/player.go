package model

import (
	"fmt"
	"time"
)

// PlayerID is the stable unique identifier for a tracked player (a UUID string)
type PlayerID string

// StatRecord holds the tracked statistics for a single player.
// Records are owned by the stat store; callers outside the store only ever
// see copies taken via Snapshot.
type StatRecord struct {
	ID       PlayerID
	Username string

	// CumulativePlaytimeSeconds is playtime accumulated over closed sessions.
	// Any currently open session is added on top by TotalPlaytime.
	CumulativePlaytimeSeconds int64

	// SessionStart is non-zero iff the player is currently online
	SessionStart time.Time

	DamageDealt  float64
	PlayerKills  int
	MobKills     int
	DeathCount   int
	BlocksPlaced int
	BlocksBroken int
}

// Online reports whether the record has an open session
func (r *StatRecord) Online() bool {
	return !r.SessionStart.IsZero()
}

// SessionSeconds returns the elapsed seconds of the open session, or 0 if offline
func (r *StatRecord) SessionSeconds(now time.Time) int64 {
	if !r.Online() {
		return 0
	}
	return int64(now.Sub(r.SessionStart) / time.Second)
}

// TotalPlaytime returns cumulative playtime plus any open session
func (r *StatRecord) TotalPlaytime(now time.Time) int64 {
	return r.CumulativePlaytimeSeconds + r.SessionSeconds(now)
}

// KillCount returns combined player and mob kills
func (r *StatRecord) KillCount() int {
	return r.PlayerKills + r.MobKills
}

// FormattedPlaytime renders total playtime as "1h 2m 3s"
func (r *StatRecord) FormattedPlaytime(now time.Time) string {
	return FormatDuration(r.TotalPlaytime(now))
}

// FormattedSessionTime renders the open session compactly ("5s", "3m 2s", "1h 0m 9s")
func (r *StatRecord) FormattedSessionTime(now time.Time) string {
	session := r.SessionSeconds(now)
	hours := session / 3600
	minutes := (session % 3600) / 60
	seconds := session % 60
	switch {
	case hours > 0:
		return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
	case minutes > 0:
		return fmt.Sprintf("%dm %ds", minutes, seconds)
	default:
		return fmt.Sprintf("%ds", seconds)
	}
}

// FormatDuration renders a second count as "1h 2m 3s"
func FormatDuration(totalSeconds int64) string {
	hours := totalSeconds / 3600
	minutes := (totalSeconds % 3600) / 60
	seconds := totalSeconds % 60
	return fmt.Sprintf("%dh %dm %ds", hours, minutes, seconds)
}
