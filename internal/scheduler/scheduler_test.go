package scheduler

import (
	"testing"
	"time"
)

func newTestScheduler(start time.Time) *Scheduler {
	s := New()
	s.now = func() time.Time { return start }
	return s
}

func TestTickFiresOnlyWhenDue(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := newTestScheduler(t0)

	var aRuns, bRuns int
	s.Register("a", 15*time.Minute, func() { aRuns++ })
	s.Register("b", 30*time.Minute, func() { bRuns++ })

	if ran, _ := s.Tick(t0.Add(5 * time.Minute)); len(ran) != 0 {
		t.Errorf("tick at +5m ran %v, want none", ran)
	}

	ran, _ := s.Tick(t0.Add(15 * time.Minute))
	if len(ran) != 1 || ran[0] != "a" {
		t.Errorf("tick at +15m ran %v, want [a]", ran)
	}

	// Same instant again: a's due time has advanced, nothing fires.
	if ran, _ := s.Tick(t0.Add(15 * time.Minute)); len(ran) != 0 {
		t.Errorf("repeat tick at +15m ran %v, want none", ran)
	}

	ran, _ = s.Tick(t0.Add(30 * time.Minute))
	if len(ran) != 2 || ran[0] != "a" || ran[1] != "b" {
		t.Errorf("tick at +30m ran %v, want [a b]", ran)
	}
	if aRuns != 2 || bRuns != 1 {
		t.Errorf("runs = a:%d b:%d, want a:2 b:1", aRuns, bRuns)
	}
}

func TestTickCatchUpFiresOnce(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := newTestScheduler(t0)

	var runs int
	s.Register("a", 15*time.Minute, func() { runs++ })

	// Four intervals elapsed unobserved; the task fires once, not four times.
	if ran, _ := s.Tick(t0.Add(61 * time.Minute)); len(ran) != 1 {
		t.Errorf("late tick ran %v, want [a]", ran)
	}
	if runs != 1 {
		t.Errorf("runs = %d, want 1", runs)
	}

	// Due time advanced by whole intervals past the late tick (to +75m).
	if ran, _ := s.Tick(t0.Add(70 * time.Minute)); len(ran) != 0 {
		t.Errorf("tick at +70m ran %v, want none", ran)
	}
	if ran, _ := s.Tick(t0.Add(75 * time.Minute)); len(ran) != 1 {
		t.Errorf("tick at +75m ran %v, want [a]", ran)
	}
}

func TestTickRunsTasksSequentially(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := newTestScheduler(t0)

	var aDone bool
	s.Register("a", 10*time.Minute, func() {
		time.Sleep(20 * time.Millisecond)
		aDone = true
	})
	s.Register("b", 10*time.Minute, func() {
		if !aDone {
			t.Error("b started before a finished")
		}
	})

	s.Tick(t0.Add(10 * time.Minute))
}

func TestCrashIsIsolatedAndDoesNotStarveSiblings(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := newTestScheduler(t0)

	var panics, goodRuns int
	s.Register("bad", 10*time.Minute, func() {
		panics++
		panic("boom")
	})
	s.Register("good", 10*time.Minute, func() { goodRuns++ })

	ran, crashed := s.Tick(t0.Add(10 * time.Minute))
	if !crashed {
		t.Error("expected crashed = true")
	}
	if len(ran) != 2 {
		t.Errorf("ran = %v, want both tasks despite the crash", ran)
	}
	if goodRuns != 1 {
		t.Errorf("good runs = %d, want 1", goodRuns)
	}

	// The crashed task is rescheduled like any other and fires again.
	if _, crashed := s.Tick(t0.Add(20 * time.Minute)); !crashed {
		t.Error("expected crashed task to run again at its next interval")
	}
	if panics != 2 || goodRuns != 2 {
		t.Errorf("panics = %d goodRuns = %d, want 2/2", panics, goodRuns)
	}
}

func TestFirstDueTimeIsOneIntervalFromRegistration(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s := newTestScheduler(t0)

	var runs int
	s.Register("a", 15*time.Minute, func() { runs++ })

	if ran, _ := s.Tick(t0); len(ran) != 0 {
		t.Errorf("tick at registration instant ran %v, want none", ran)
	}
	if ran, _ := s.Tick(t0.Add(14 * time.Minute)); len(ran) != 0 {
		t.Errorf("tick at +14m ran %v, want none", ran)
	}
	if ran, _ := s.Tick(t0.Add(15 * time.Minute)); len(ran) != 1 {
		t.Errorf("tick at +15m ran %v, want [a]", ran)
	}
}
