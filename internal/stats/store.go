package stats

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/hytaletravelers/playerstats/internal/dependencies/clock"
	"github.com/hytaletravelers/playerstats/internal/model"
)

// record pairs a stat record with its own lock so mutations to different
// players never serialize against each other.
type record struct {
	mu   sync.Mutex
	data model.StatRecord
}

// Store is the concurrent keyed collection of per-player stat records.
// The registry map is guarded by an RWMutex; individual record mutations
// take only the record's lock, so the registry lock is held in read mode
// on the mutation path.
type Store struct {
	clk clock.Clock

	mu      sync.RWMutex
	records map[model.PlayerID]*record
}

// NewStore creates an empty stat store
func NewStore(clk clock.Clock) *Store {
	return &Store{
		clk:     clk,
		records: make(map[model.PlayerID]*record),
	}
}

// GetOrCreate returns a copy of the player's record, creating it if absent.
// The latest observed username wins and is stored for lookup and display.
func (s *Store) GetOrCreate(id model.PlayerID, username string) model.StatRecord {
	s.mu.Lock()
	rec, ok := s.records[id]
	if !ok {
		rec = &record{data: model.StatRecord{ID: id, Username: username}}
		s.records[id] = rec
	}
	s.mu.Unlock()

	rec.mu.Lock()
	defer rec.mu.Unlock()
	if username != "" && rec.data.Username != username {
		rec.data.Username = username
	}
	return rec.data
}

// Get returns a copy of the player's record if present
func (s *Store) Get(id model.PlayerID) (model.StatRecord, bool) {
	s.mu.RLock()
	rec, ok := s.records[id]
	s.mu.RUnlock()
	if !ok {
		return model.StatRecord{}, false
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	return rec.data, true
}

// GetByUsername returns the first record whose username matches
// case-insensitively. Duplicate usernames are permitted; no uniqueness is
// enforced.
func (s *Store) GetByUsername(username string) (model.StatRecord, bool) {
	for _, snap := range s.Snapshot() {
		if strings.EqualFold(snap.Username, username) {
			return snap, true
		}
	}
	return model.StatRecord{}, false
}

// Mutate applies fn to the player's record atomically.
// Returns false without calling fn if the player is not tracked.
func (s *Store) Mutate(id model.PlayerID, fn func(*model.StatRecord)) bool {
	s.mu.RLock()
	rec, ok := s.records[id]
	s.mu.RUnlock()
	if !ok {
		return false
	}

	rec.mu.Lock()
	defer rec.mu.Unlock()
	fn(&rec.data)
	return true
}

// Connect opens a session for the player, creating the record if needed.
// A connect while already online is a no-op (duplicate connect signals).
// Returns a copy of the record after the transition.
func (s *Store) Connect(id model.PlayerID, username string) model.StatRecord {
	s.GetOrCreate(id, username)
	now := s.clk.Now()

	var out model.StatRecord
	s.Mutate(id, func(r *model.StatRecord) {
		if !r.Online() {
			r.SessionStart = now
		}
		out = *r
	})
	return out
}

// Disconnect closes the player's open session, folding the elapsed time into
// the cumulative playtime. Returns the closed session's length in seconds;
// closed is false when the player was not tracked or had no open session.
func (s *Store) Disconnect(id model.PlayerID) (sessionSeconds int64, closed bool) {
	now := s.clk.Now()
	s.Mutate(id, func(r *model.StatRecord) {
		if !r.Online() {
			return
		}
		sessionSeconds = r.SessionSeconds(now)
		r.CumulativePlaytimeSeconds += sessionSeconds
		r.SessionStart = time.Time{}
		closed = true
	})
	return sessionSeconds, closed
}

// Snapshot returns copies of all records, ordered by player id.
// The view is weakly consistent: each record reflects its state at the moment
// it was copied, but the sequence is not one atomic transaction.
func (s *Store) Snapshot() []model.StatRecord {
	s.mu.RLock()
	recs := make([]*record, 0, len(s.records))
	for _, rec := range s.records {
		recs = append(recs, rec)
	}
	s.mu.RUnlock()

	out := make([]model.StatRecord, 0, len(recs))
	for _, rec := range recs {
		rec.mu.Lock()
		out = append(out, rec.data)
		rec.mu.Unlock()
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Remove deletes a player's record entirely
func (s *Store) Remove(id model.PlayerID) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return false
	}
	delete(s.records, id)
	return true
}

// ResetOne resets one stat category for one player.
// An unknown category is rejected before any mutation.
func (s *Store) ResetOne(id model.PlayerID, category model.Category) error {
	if _, err := model.ParseCategory(string(category)); err != nil {
		return err
	}
	if !s.Mutate(id, func(r *model.StatRecord) { category.Reset(r) }) {
		return model.ErrPlayerNotFound
	}
	return nil
}

// ResetAll resets one stat category for every tracked player and returns the
// number of records touched. An unknown category is rejected before any
// mutation.
func (s *Store) ResetAll(category model.Category) (int, error) {
	if _, err := model.ParseCategory(string(category)); err != nil {
		return 0, err
	}

	s.mu.RLock()
	recs := make([]*record, 0, len(s.records))
	for _, rec := range s.records {
		recs = append(recs, rec)
	}
	s.mu.RUnlock()

	for _, rec := range recs {
		rec.mu.Lock()
		category.Reset(&rec.data)
		rec.mu.Unlock()
	}
	return len(recs), nil
}

// WipeAll removes every record and returns how many were removed
func (s *Store) WipeAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := len(s.records)
	s.records = make(map[model.PlayerID]*record)
	return count
}

// Count returns the number of tracked players
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// OnlineCount returns the number of players with an open session.
// Derived on each call, never cached.
func (s *Store) OnlineCount() int {
	count := 0
	for _, snap := range s.Snapshot() {
		if snap.Online() {
			count++
		}
	}
	return count
}

// RestoreRecord installs a record loaded from persistence, replacing any
// existing record for the same player.
func (s *Store) RestoreRecord(r *model.StatRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[r.ID] = &record{data: *r}
}
