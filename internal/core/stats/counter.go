package stats

import (
	"log"
	"sync"
	"time"

	"pomodoro/internal/core/model"
)

// Store reads and writes the daily stats record.
type Store interface {
	LoadStats() model.DailyStats
	SaveStats(stats model.DailyStats) error
}

// Counter tracks today's completed tasks and focus sessions.
// Counters never carry over from a previous calendar day.
type Counter struct {
	mu      sync.Mutex
	store   Store
	now     func() time.Time
	current model.DailyStats
}

// New creates a Counter and loads the persisted record.
func New(store Store, now func() time.Time) *Counter {
	if now == nil {
		now = time.Now
	}
	counter := &Counter{
		store: store,
		now:   now,
	}
	counter.Load()
	return counter
}

// Load re-reads the persisted record, zeroing it when it belongs to another day.
func (counter *Counter) Load() model.DailyStats {
	counter.mu.Lock()
	defer counter.mu.Unlock()

	loaded := counter.store.LoadStats()
	today := model.Day(counter.now())
	if loaded.Date != today {
		loaded = model.DailyStats{Date: today}
	}
	counter.current = loaded
	return loaded
}

// Current returns today's counters without touching storage.
func (counter *Counter) Current() model.DailyStats {
	counter.mu.Lock()
	defer counter.mu.Unlock()

	today := model.Day(counter.now())
	if counter.current.Date != today {
		return model.DailyStats{Date: today}
	}
	return counter.current
}

// RecordTaskCompleted counts a task moving to completed.
func (counter *Counter) RecordTaskCompleted() {
	counter.record(func(stats *model.DailyStats) {
		stats.TasksCompleted++
	})
}

// RecordPomodoroCompleted counts a naturally completed work phase.
func (counter *Counter) RecordPomodoroCompleted() {
	counter.record(func(stats *model.DailyStats) {
		stats.PomodorosCompleted++
	})
}

func (counter *Counter) record(apply func(stats *model.DailyStats)) {
	counter.mu.Lock()
	today := model.Day(counter.now())
	if counter.current.Date != today {
		counter.current = model.DailyStats{Date: today}
	}
	apply(&counter.current)
	snapshot := counter.current
	counter.mu.Unlock()

	if err := counter.store.SaveStats(snapshot); err != nil {
		log.Printf("stats: save: %v", err)
	}
}
