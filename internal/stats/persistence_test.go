package stats

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"

	"github.com/hytaletravelers/playerstats/internal/dependencies/mocks"
	"github.com/hytaletravelers/playerstats/internal/metrics"
	"github.com/hytaletravelers/playerstats/internal/model"
	"github.com/hytaletravelers/playerstats/internal/storage/memory"
)

type PersistenceSuite struct {
	suite.Suite
	clock       *mocks.MockClock
	store       *Store
	backend     *memory.Store
	metrics     *metrics.Metrics
	persistence *Persistence
	ctx         context.Context
}

func TestPersistenceSuite(t *testing.T) {
	suite.Run(t, new(PersistenceSuite))
}

func (s *PersistenceSuite) SetupTest() {
	s.clock = mocks.NewMockClock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	s.store = NewStore(s.clock)
	s.backend = memory.New()
	s.metrics = metrics.New()
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	s.persistence = NewPersistence(s.store, s.backend, s.clock, s.metrics, logger)
	s.ctx = context.Background()
}

func (s *PersistenceSuite) TestSaveFoldsOpenSessionWithoutClosingIt() {
	s.store.Connect(aliceID, "alice")
	s.clock.Advance(45 * time.Second)

	s.Require().NoError(s.persistence.Save(s.ctx))

	// The saved snapshot includes the open session
	players, _, err := s.backend.Load(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(players, 1)
	s.Equal(int64(45), players[0].PlaytimeSeconds)

	// The live session stays open
	rec, _ := s.store.Get(aliceID)
	s.True(rec.Online())
	s.Equal(int64(0), rec.CumulativePlaytimeSeconds)
}

func (s *PersistenceSuite) TestLoadRestoresPlayersOffline() {
	s.store.Connect(aliceID, "alice")
	s.clock.Advance(45 * time.Second)
	s.Require().NoError(s.persistence.Save(s.ctx))

	// Simulate a restart with a fresh store
	s.store = NewStore(s.clock)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	s.persistence = NewPersistence(s.store, s.backend, s.clock, s.metrics, logger)

	s.persistence.Load(s.ctx)

	rec, ok := s.store.Get(aliceID)
	s.Require().True(ok)
	s.False(rec.Online())
	s.Equal(int64(45), rec.CumulativePlaytimeSeconds)
	s.Equal("alice", rec.Username)
}

func (s *PersistenceSuite) TestLoadSkipsCorruptEntries() {
	good := model.PersistPlayer(&model.StatRecord{ID: aliceID, Username: "alice"}, s.clock.Now())
	bad := model.PersistedPlayer{UUID: "not-a-uuid", Username: "ghost"}
	s.Require().NoError(s.backend.Save(s.ctx, []model.PersistedPlayer{good, bad}))

	s.persistence.Load(s.ctx)

	s.Equal(1, s.store.Count())
	_, ok := s.store.Get(aliceID)
	s.True(ok)
}

func (s *PersistenceSuite) TestLoadEmptyBackendStartsEmpty() {
	s.persistence.Load(s.ctx)
	s.Zero(s.store.Count())
}

// failingBackend rejects every save
type failingBackend struct {
	memory.Store
}

func (f *failingBackend) Save(ctx context.Context, players []model.PersistedPlayer) error {
	return errors.New("disk full")
}

func (s *PersistenceSuite) TestSaveCountsAttempts() {
	s.store.Connect(aliceID, "alice")

	s.Require().NoError(s.persistence.Save(s.ctx))
	s.Require().NoError(s.persistence.Save(s.ctx))

	s.Equal(float64(2), testutil.ToFloat64(s.metrics.SnapshotSaves))
	s.Equal(float64(0), testutil.ToFloat64(s.metrics.SnapshotFailures))
}

func (s *PersistenceSuite) TestSaveCountsFailures() {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	s.persistence = NewPersistence(s.store, &failingBackend{}, s.clock, s.metrics, logger)
	s.store.Connect(aliceID, "alice")

	s.Require().Error(s.persistence.Save(s.ctx))

	s.Equal(float64(1), testutil.ToFloat64(s.metrics.SnapshotSaves))
	s.Equal(float64(1), testutil.ToFloat64(s.metrics.SnapshotFailures))
}
