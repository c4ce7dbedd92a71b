package dashboard

import (
	"sort"
	"strings"

	"github.com/hytaletravelers/playerstats/internal/dependencies/clock"
	"github.com/hytaletravelers/playerstats/internal/model"
)

// SortMode selects the list view ordering
type SortMode string

const (
	SortPlaytime SortMode = "PLAYTIME"
	SortKills    SortMode = "KILLS"
	SortDeaths   SortMode = "DEATHS"
	SortOnline   SortMode = "ONLINE"
)

// ParseSortMode resolves a case-insensitive mode name.
// Unknown names fall back to playtime ordering.
func ParseSortMode(s string) SortMode {
	switch SortMode(strings.ToUpper(strings.TrimSpace(s))) {
	case SortKills:
		return SortKills
	case SortDeaths:
		return SortDeaths
	case SortOnline:
		return SortOnline
	default:
		return SortPlaytime
	}
}

// Source supplies the point-in-time data a session renders from
type Source interface {
	Snapshot() []model.StatRecord
}

// Session is one viewer's interactive dashboard state: a search filter, a
// sort mode and an optional selected player. Every transition recomputes its
// view from a fresh snapshot.
type Session struct {
	source Source
	clk    clock.Clock

	searchQuery string
	sortMode    SortMode
	selected    string
}

// NewSession creates a session in the default list view
func NewSession(source Source, clk clock.Clock) *Session {
	return &Session{
		source:   source,
		clk:      clk,
		sortMode: SortPlaytime,
	}
}

// Row is one list view line
type Row struct {
	Username string
	Playtime string
	Kills    int
	Deaths   int
	Online   bool
}

// ListView is the filtered, sorted player list
type ListView struct {
	Query         string
	Sort          SortMode
	Rows          []Row
	TotalPlayers  int
	OnlinePlayers int
}

// Empty reports whether the filter matched nothing (a valid terminal state)
func (v *ListView) Empty() bool {
	return len(v.Rows) == 0
}

// DetailView is the per-player drill-down
type DetailView struct {
	Username     string
	Online       bool
	Playtime     string
	PlayerKills  int
	MobKills     int
	Deaths       int
	Damage       float64
	KDRatio      float64
	BlocksPlaced int
	BlocksBroken int
}

// View is the rendered session state: exactly one of List or Detail is set
type View struct {
	List   *ListView
	Detail *DetailView
}

// SetSearch applies a substring filter on usernames and returns to list view
func (s *Session) SetSearch(query string) View {
	s.searchQuery = strings.ToLower(strings.TrimSpace(query))
	s.selected = ""
	return s.View()
}

// SetSort switches the ordering and returns to list view.
// Unknown mode strings default to playtime.
func (s *Session) SetSort(mode string) View {
	s.sortMode = ParseSortMode(mode)
	s.selected = ""
	return s.View()
}

// Select enters the detail view for the named player. If the player has been
// removed since the list was rendered, the session falls back to list view.
func (s *Session) Select(username string) View {
	s.selected = username
	return s.View()
}

// Back clears the selection and returns to list view
func (s *Session) Back() View {
	s.selected = ""
	return s.View()
}

// View recomputes the current view from a fresh snapshot
func (s *Session) View() View {
	snapshot := s.source.Snapshot()

	if s.selected != "" {
		for i := range snapshot {
			if strings.EqualFold(snapshot[i].Username, s.selected) {
				return View{Detail: s.detail(&snapshot[i])}
			}
		}
		// Player gone since selection
		s.selected = ""
	}

	return View{List: s.list(snapshot)}
}

func (s *Session) list(snapshot []model.StatRecord) *ListView {
	now := s.clk.Now()

	online := 0
	for i := range snapshot {
		if snapshot[i].Online() {
			online++
		}
	}

	filtered := make([]model.StatRecord, 0, len(snapshot))
	for i := range snapshot {
		if s.searchQuery == "" || strings.Contains(strings.ToLower(snapshot[i].Username), s.searchQuery) {
			filtered = append(filtered, snapshot[i])
		}
	}

	switch s.sortMode {
	case SortKills:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].KillCount() > filtered[j].KillCount()
		})
	case SortDeaths:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].DeathCount > filtered[j].DeathCount
		})
	case SortOnline:
		sort.SliceStable(filtered, func(i, j int) bool {
			if filtered[i].Online() != filtered[j].Online() {
				return filtered[i].Online()
			}
			return filtered[i].TotalPlaytime(now) > filtered[j].TotalPlaytime(now)
		})
	default:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].TotalPlaytime(now) > filtered[j].TotalPlaytime(now)
		})
	}

	rows := make([]Row, 0, len(filtered))
	for i := range filtered {
		r := &filtered[i]
		rows = append(rows, Row{
			Username: r.Username,
			Playtime: r.FormattedPlaytime(now),
			Kills:    r.KillCount(),
			Deaths:   r.DeathCount,
			Online:   r.Online(),
		})
	}

	return &ListView{
		Query:         s.searchQuery,
		Sort:          s.sortMode,
		Rows:          rows,
		TotalPlayers:  len(snapshot),
		OnlinePlayers: online,
	}
}

func (s *Session) detail(r *model.StatRecord) *DetailView {
	now := s.clk.Now()

	kd := float64(r.PlayerKills)
	if r.DeathCount > 0 {
		kd = float64(r.PlayerKills) / float64(r.DeathCount)
	}

	return &DetailView{
		Username:     r.Username,
		Online:       r.Online(),
		Playtime:     r.FormattedPlaytime(now),
		PlayerKills:  r.PlayerKills,
		MobKills:     r.MobKills,
		Deaths:       r.DeathCount,
		Damage:       r.DamageDealt,
		KDRatio:      kd,
		BlocksPlaced: r.BlocksPlaced,
		BlocksBroken: r.BlocksBroken,
	}
}
