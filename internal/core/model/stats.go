package model

import "time"

// DateLayout identifies a calendar day in persisted stats.
const DateLayout = "2006-01-02"

// DailyStats holds the counters for a single calendar day.
type DailyStats struct {
	Date               string `json:"date"`
	TasksCompleted     int    `json:"tasksCompleted"`
	PomodorosCompleted int    `json:"pomodorosCompleted"`
}

// Day formats t as a stats date identifier in its own location.
func Day(t time.Time) string {
	return t.Format(DateLayout)
}

// EmptyStats returns zeroed counters stamped with the day of now.
func EmptyStats(now time.Time) DailyStats {
	return DailyStats{Date: Day(now)}
}
