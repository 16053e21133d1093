package scheduler

import (
	"context"
	"time"

	"TeneoKeeper/internal/logger"
)

const (
	defaultPoll     = 5 * time.Second
	defaultCooldown = 10 * time.Second
)

// Task is one named periodic job.
type Task struct {
	Name     string
	Interval time.Duration
	Run      func()
}

type entry struct {
	task    Task
	nextDue time.Time
}

// Scheduler runs registered tasks on fixed intervals, strictly sequentially.
// Due times are explicit per-task records advanced by Tick; a task's own
// duration delays siblings within a tick but never corrupts their accounting.
type Scheduler struct {
	entries  []*entry
	poll     time.Duration
	cooldown time.Duration
	now      func() time.Time
}

// New creates a Scheduler with the production poll granularity and crash
// cooldown.
func New() *Scheduler {
	return &Scheduler{
		poll:     defaultPoll,
		cooldown: defaultCooldown,
		now:      time.Now,
	}
}

// Register adds a periodic task. Its first due time is one interval from the
// moment of registration, independently per task.
func (s *Scheduler) Register(name string, interval time.Duration, run func()) {
	s.entries = append(s.entries, &entry{
		task:    Task{Name: name, Interval: interval, Run: run},
		nextDue: s.now().Add(interval),
	})
	logger.Info("task registered: %s every %v", name, interval)
}

// Tick runs every task due at now, one after another in registration order,
// and returns the names of the tasks that ran plus whether any of them
// crashed. A task's due time advances by whole intervals until it is in the
// future before the task runs, so a late tick fires it once rather than once
// per missed interval, and a crashing task cannot pin itself permanently due
// and starve its siblings.
func (s *Scheduler) Tick(now time.Time) (ran []string, crashed bool) {
	for _, e := range s.entries {
		if e.nextDue.After(now) {
			continue
		}
		for !e.nextDue.After(now) {
			e.nextDue = e.nextDue.Add(e.task.Interval)
		}
		logger.Info("running task: %s", e.task.Name)
		if runTask(e.task) {
			crashed = true
		}
		ran = append(ran, e.task.Name)
	}
	return ran, crashed
}

func runTask(t Task) (crashed bool) {
	defer func() {
		if r := recover(); r != nil {
			crashed = true
			logger.Error("bot crashed: %v (task: %s)", r, t.Name)
		}
	}()
	t.Run()
	return false
}

// Run polls for due tasks until ctx is cancelled. A crash inside a task is
// answered with a cooldown before the next poll; the loop always resumes, so
// no single cycle failure terminates the process.
func (s *Scheduler) Run(ctx context.Context) {
	logger.Info("scheduler started")
	ticker := time.NewTicker(s.poll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("scheduler stopped")
			return
		case <-ticker.C:
			if _, crashed := s.Tick(s.now()); crashed {
				select {
				case <-ctx.Done():
				case <-time.After(s.cooldown):
				}
			}
		}
	}
}
