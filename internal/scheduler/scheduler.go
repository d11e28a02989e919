package scheduler

import (
	"context"
	"log/slog"
	"runtime/debug"
	"sync"
	"time"
)

const (
	// DefaultInterval is the movement refresh period, roughly 60Hz.
	DefaultInterval = 16 * time.Millisecond
)

// TickFunc advances one scheduled unit of work and reports whether it has
// finished and should be dropped from the schedule.
type TickFunc func(ctx context.Context) (done bool)

// Scheduler drives every registered task from one periodic ticker. Tasks
// register and cancel from any goroutine; a task that panics is logged and
// dropped without affecting the others.
type Scheduler struct {
	interval time.Duration

	mu    sync.Mutex
	tasks map[string]TickFunc
}

func NewScheduler(opts ...SchedulerOpt) *Scheduler {
	s := &Scheduler{
		interval: DefaultInterval,
		tasks:    map[string]TickFunc{},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Schedule registers a task under an id. The task starts advancing on the
// next tick; scheduling an id twice replaces the earlier task.
func (s *Scheduler) Schedule(id string, tick func(ctx context.Context) bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks[id] = tick
}

// Cancel drops a task without a final tick. Unknown ids are ignored.
func (s *Scheduler) Cancel(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tasks, id)
}

// Len returns the number of scheduled tasks.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.tasks)
}

// Start runs the tick loop until the context is canceled. Pending tasks are
// abandoned at shutdown; there is no partial-movement recovery.
func (s *Scheduler) Start(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick advances every registered task once and drops the finished ones.
// Registration during a tick takes effect on the next one.
func (s *Scheduler) Tick(ctx context.Context) {
	s.mu.Lock()
	snapshot := make(map[string]TickFunc, len(s.tasks))
	for id, t := range s.tasks {
		snapshot[id] = t
	}
	s.mu.Unlock()

	for id, tick := range snapshot {
		if s.runTask(ctx, id, tick) {
			s.mu.Lock()
			delete(s.tasks, id)
			s.mu.Unlock()
		}
	}
}

func (s *Scheduler) runTask(ctx context.Context, id string, tick TickFunc) (done bool) {
	defer func() {
		if r := recover(); r != nil {
			slog.ErrorContext(ctx, "scheduled task panicked",
				"task", id,
				"panic", r,
				"stack", string(debug.Stack()))
			done = true
		}
	}()

	return tick(ctx)
}
