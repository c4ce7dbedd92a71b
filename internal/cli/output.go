package cli

import (
	"encoding/json"
	"fmt"
	"os"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]string{"error": err.Error()}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case []Player:
		o.printPlayers(v)
	case Stats:
		o.printStats(v)
	case ResetResult:
		o.printResetResult(v)
	case WipeResult:
		o.printWipeResult(v)
	case []CategoryEntry:
		o.printCategories(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
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

// Stats response type
type Stats struct {
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

// ResetResult response type
type ResetResult struct {
	PlayersReset int    `json:"playersReset"`
	Category     string `json:"category"`
}

// WipeResult response type
type WipeResult struct {
	PlayersRemoved int `json:"playersRemoved"`
}

// CategoryEntry response type
type CategoryEntry struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayers(players []Player) {
	if len(players) == 0 {
		fmt.Println("No players tracked")
		return
	}

	fmt.Printf("%-20s %-16s %-8s %6s %6s %7s\n", "PLAYER", "PLAYTIME", "ONLINE", "KILLS", "DEATHS", "BLOCKS")
	for _, p := range players {
		online := "no"
		if p.Online {
			online = "yes"
		}
		fmt.Printf("%-20s %-16s %-8s %6d %6d %7d\n",
			p.Username, p.PlaytimeFormatted, online,
			p.PlayerKills+p.MobKills, p.DeathCount, p.BlocksPlaced+p.BlocksBroken)
	}
}

func (o *Output) printStats(s Stats) {
	fmt.Printf("Players:        %d (%d online)\n", s.TotalPlayers, s.OnlinePlayers)
	fmt.Printf("Total playtime: %ds\n", s.TotalPlaytimeSeconds)
	fmt.Printf("Damage dealt:   %.1f\n", s.TotalDamageDealt)
	fmt.Printf("Player kills:   %d\n", s.TotalPlayerKills)
	fmt.Printf("Mob kills:      %d\n", s.TotalMobKills)
	fmt.Printf("Deaths:         %d\n", s.TotalDeaths)
	fmt.Printf("Blocks placed:  %d\n", s.TotalBlocksPlaced)
	fmt.Printf("Blocks broken:  %d\n", s.TotalBlocksBroken)
}

func (o *Output) printResetResult(r ResetResult) {
	fmt.Printf("Reset %s stats for %d player(s)\n", r.Category, r.PlayersReset)
}

func (o *Output) printWipeResult(r WipeResult) {
	fmt.Printf("Removed %d player record(s)\n", r.PlayersRemoved)
}

func (o *Output) printCategories(categories []CategoryEntry) {
	for _, c := range categories {
		fmt.Printf("%-10s %s\n", c.Name, c.Description)
	}
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
