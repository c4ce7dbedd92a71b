package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/hytaletravelers/playerstats/internal/config"
	"github.com/hytaletravelers/playerstats/internal/dependencies/mocks"
	"github.com/hytaletravelers/playerstats/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing with a mocked clock
// and in-memory storage
func NewTestApp(cfg config.Config) *TestApp {
	backend := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	app := newWithDependencies(backend, mockClock, cfg, logger)

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
