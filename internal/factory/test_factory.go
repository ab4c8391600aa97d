package factory

import (
	"time"

	"github.com/jc-27901/reversed-minesweeper/internal/dependencies/mocks"
	"github.com/jc-27901/reversed-minesweeper/internal/dependencies/random"
	"github.com/jc-27901/reversed-minesweeper/internal/storage/memory"
	"github.com/jc-27901/reversed-minesweeper/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock     *mocks.MockClock
	MockScheduler *mocks.MockScheduler
	Seeded        *random.SeededRandom
}

// NewTestApp creates an App configured for testing. The clock and
// scheduler are mocked so tests control time; randomness is a fixed
// seed so board layouts are stable.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockScheduler := mocks.NewMockScheduler()
	seeded := random.NewSeeded(1)

	app := newWithDependencies(store, mockClock, seeded, mockScheduler, testutil.NopLogger())

	return &TestApp{
		App:           app,
		MockClock:     mockClock,
		MockScheduler: mockScheduler,
		Seeded:        seeded,
	}
}
