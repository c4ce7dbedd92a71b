package response

import (
	"sort"
	"time"

	"github.com/hytaletravelers/playerstats/internal/model"
)

// PlayerEntry is the JSON shape for one player, shared by the local list
// endpoint and the remote push payload.
type PlayerEntry struct {
	UUID              string  `json:"uuid"`
	Username          string  `json:"username"`
	PlaytimeSeconds   int64   `json:"playtimeSeconds"`
	PlaytimeFormatted string  `json:"playtimeFormatted"`
	Online            bool    `json:"online"`
	DamageDealt       float64 `json:"damageDealt"`
	PlayerKills       int     `json:"playerKills"`
	MobKills          int     `json:"mobKills"`
	DeathCount        int     `json:"deathCount"`
	BlocksPlaced      int     `json:"blocksPlaced"`
	BlocksBroken      int     `json:"blocksBroken"`
}

// Aggregate is the JSON shape for the summed stats endpoint
type Aggregate struct {
	TotalPlayers         int     `json:"totalPlayers"`
	OnlinePlayers        int     `json:"onlinePlayers"`
	TotalPlaytimeSeconds int64   `json:"totalPlaytimeSeconds"`
	TotalDamageDealt     float64 `json:"totalDamageDealt"`
	TotalPlayerKills     int     `json:"totalPlayerKills"`
	TotalMobKills        int     `json:"totalMobKills"`
	TotalDeaths          int     `json:"totalDeaths"`
	TotalBlocksPlaced    int     `json:"totalBlocksPlaced"`
	TotalBlocksBroken    int     `json:"totalBlocksBroken"`
}

// ResetResult reports the outcome of a reset operation
type ResetResult struct {
	PlayersReset int    `json:"playersReset"`
	Category     string `json:"category"`
}

// WipeResult reports the outcome of a wipe operation
type WipeResult struct {
	PlayersRemoved int `json:"playersRemoved"`
}

// CategoryEntry describes one resettable stat category
type CategoryEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// PlayerList converts a snapshot to entries sorted by descending playtime
func PlayerList(snapshot []model.StatRecord, now time.Time) []PlayerEntry {
	entries := make([]PlayerEntry, 0, len(snapshot))
	for i := range snapshot {
		r := &snapshot[i]
		entries = append(entries, PlayerEntry{
			UUID:              string(r.ID),
			Username:          r.Username,
			PlaytimeSeconds:   r.TotalPlaytime(now),
			PlaytimeFormatted: r.FormattedPlaytime(now),
			Online:            r.Online(),
			DamageDealt:       r.DamageDealt,
			PlayerKills:       r.PlayerKills,
			MobKills:          r.MobKills,
			DeathCount:        r.DeathCount,
			BlocksPlaced:      r.BlocksPlaced,
			BlocksBroken:      r.BlocksBroken,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].PlaytimeSeconds > entries[j].PlaytimeSeconds
	})
	return entries
}

// AggregateOf sums a snapshot into the stats shape
func AggregateOf(snapshot []model.StatRecord, now time.Time) Aggregate {
	agg := Aggregate{TotalPlayers: len(snapshot)}
	for i := range snapshot {
		r := &snapshot[i]
		if r.Online() {
			agg.OnlinePlayers++
		}
		agg.TotalPlaytimeSeconds += r.TotalPlaytime(now)
		agg.TotalDamageDealt += r.DamageDealt
		agg.TotalPlayerKills += r.PlayerKills
		agg.TotalMobKills += r.MobKills
		agg.TotalDeaths += r.DeathCount
		agg.TotalBlocksPlaced += r.BlocksPlaced
		agg.TotalBlocksBroken += r.BlocksBroken
	}
	return agg
}
