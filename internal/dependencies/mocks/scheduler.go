package mocks

import (
	"time"

	"github.com/jc-27901/reversed-minesweeper/internal/dependencies/scheduler"
)

// MockScheduler is a mock implementation of Scheduler for testing.
// Scheduled callbacks never fire on their own; tests call Fire to
// simulate timer ticks.
type MockScheduler struct {
	tasks []*MockTask
}

// Ensure MockScheduler implements Scheduler
var _ scheduler.Scheduler = (*MockScheduler)(nil)

// NewMockScheduler creates a new MockScheduler
func NewMockScheduler() *MockScheduler {
	return &MockScheduler{}
}

// Every records the task and returns a handle without starting anything
func (s *MockScheduler) Every(interval time.Duration, fn func()) scheduler.Task {
	task := &MockTask{
		Interval: interval,
		fn:       fn,
	}
	s.tasks = append(s.tasks, task)
	return task
}

// Tasks returns all scheduled tasks in creation order
func (s *MockScheduler) Tasks() []*MockTask {
	return s.tasks
}

// Fire invokes the most recently scheduled live task once.
// It is a no-op if no live task exists.
func (s *MockScheduler) Fire() {
	for i := len(s.tasks) - 1; i >= 0; i-- {
		if !s.tasks[i].Cancelled() {
			s.tasks[i].Fire()
			return
		}
	}
}

// MockTask is a manually driven task handle
type MockTask struct {
	Interval  time.Duration
	fn        func()
	cancelled bool
}

// Ensure MockTask implements Task
var _ scheduler.Task = (*MockTask)(nil)

// Fire invokes the task callback if not cancelled
func (t *MockTask) Fire() {
	if t.cancelled {
		return
	}
	t.fn()
}

// Cancel marks the task as cancelled
func (t *MockTask) Cancel() {
	t.cancelled = true
}

// Cancelled reports whether Cancel has been called
func (t *MockTask) Cancelled() bool {
	return t.cancelled
}
