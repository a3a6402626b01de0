package model

import "time"

// Task is a single entry of the task list.
type Task struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	Pomodoros int       `json:"pomodoros"`
	CreatedAt time.Time `json:"createdAt"`
}
