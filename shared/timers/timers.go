package timers

import (
	"sync"
	"time"
)

// Cancel revokes a scheduled task. It is safe to call more than once and
// safe to call after the task has fired.
type Cancel func()

// Scheduler schedules deferred and repeating effects. Every handle returned
// must be cancelled on teardown so a pending effect can never fire into
// state that no longer exists.
type Scheduler interface {
	// Schedule runs fn once after d.
	Schedule(d time.Duration, fn func()) Cancel
	// Every runs fn repeatedly with period d until cancelled.
	Every(d time.Duration, fn func()) Cancel
}

// WallScheduler schedules on the wall clock
type WallScheduler struct{}

// NewWallScheduler creates a new WallScheduler
func NewWallScheduler() *WallScheduler {
	return &WallScheduler{}
}

func (s *WallScheduler) Schedule(d time.Duration, fn func()) Cancel {
	timer := time.AfterFunc(d, fn)
	return func() { timer.Stop() }
}

func (s *WallScheduler) Every(d time.Duration, fn func()) Cancel {
	ticker := time.NewTicker(d)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				fn()
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}

// ManualScheduler is a deterministic scheduler for tests. Nothing fires
// until Advance moves the fake clock past a task's due time.
type ManualScheduler struct {
	mu     sync.Mutex
	now    time.Duration
	nextID int
	tasks  map[int]*manualTask
}

type manualTask struct {
	id     int
	due    time.Duration
	period time.Duration // 0 for one-shot
	fn     func()
}

// NewManualScheduler creates a new ManualScheduler
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{tasks: make(map[int]*manualTask)}
}

func (s *ManualScheduler) Schedule(d time.Duration, fn func()) Cancel {
	return s.add(d, 0, fn)
}

func (s *ManualScheduler) Every(d time.Duration, fn func()) Cancel {
	return s.add(d, d, fn)
}

func (s *ManualScheduler) add(d, period time.Duration, fn func()) Cancel {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextID++
	id := s.nextID
	s.tasks[id] = &manualTask{id: id, due: s.now + d, period: period, fn: fn}

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.tasks, id)
	}
}

// Pending returns the number of scheduled tasks
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tasks)
}

// Advance moves the clock forward and fires every task that becomes due,
// in due order. Repeating tasks are rescheduled until cancelled.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d

	for {
		var next *manualTask
		for _, task := range s.tasks {
			if task.due > target {
				continue
			}
			if next == nil || task.due < next.due || (task.due == next.due && task.id < next.id) {
				next = task
			}
		}
		if next == nil {
			break
		}

		s.now = next.due
		if next.period > 0 {
			next.due += next.period
		} else {
			delete(s.tasks, next.id)
		}

		fn := next.fn
		s.mu.Unlock()
		fn()
		s.mu.Lock()
	}

	s.now = target
	s.mu.Unlock()
}
