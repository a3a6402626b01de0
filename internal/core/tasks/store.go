package tasks

import (
	"log"
	"strings"
	"sync"
	"time"

	"pomodoro/internal/core/model"
)

// Saver persists the whole task list.
type Saver interface {
	SaveTasks(tasks []model.Task) error
}

// Recorder receives tasks moving to completed.
type Recorder interface {
	RecordTaskCompleted()
}

// Options contains collaborators for the Store.
type Options struct {
	Saver    Saver
	Recorder Recorder
	Now      func() time.Time
}

// Store is the ordered task list, most recently added first.
type Store struct {
	mu      sync.Mutex
	tasks   []model.Task
	options Options
	lastID  int64
}

// New creates a Store seeded with previously persisted tasks.
func New(initial []model.Task, options Options) *Store {
	if options.Now == nil {
		options.Now = time.Now
	}
	store := &Store{
		tasks:   append([]model.Task(nil), initial...),
		options: options,
	}
	for _, task := range initial {
		if task.ID > store.lastID {
			store.lastID = task.ID
		}
	}
	return store
}

// Add creates a task from text. Blank text is ignored.
func (store *Store) Add(text string) (model.Task, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Task{}, false
	}

	store.mu.Lock()
	now := store.options.Now()
	task := model.Task{
		ID:        store.nextIDLocked(now),
		Text:      text,
		CreatedAt: now,
	}
	store.tasks = append([]model.Task{task}, store.tasks...)
	snapshot := store.snapshotLocked()
	store.mu.Unlock()

	store.save(snapshot)
	return task, true
}

// Toggle flips the completed flag of the task with id.
// Only the incomplete to complete direction is counted in the daily stats.
func (store *Store) Toggle(id int64) bool {
	store.mu.Lock()
	index := store.indexLocked(id)
	if index < 0 {
		store.mu.Unlock()
		return false
	}
	store.tasks[index].Completed = !store.tasks[index].Completed
	completed := store.tasks[index].Completed
	snapshot := store.snapshotLocked()
	store.mu.Unlock()

	if completed && store.options.Recorder != nil {
		store.options.Recorder.RecordTaskCompleted()
	}
	store.save(snapshot)
	return true
}

// Remove deletes the task with id.
func (store *Store) Remove(id int64) bool {
	store.mu.Lock()
	index := store.indexLocked(id)
	if index < 0 {
		store.mu.Unlock()
		return false
	}
	store.tasks = append(store.tasks[:index], store.tasks[index+1:]...)
	snapshot := store.snapshotLocked()
	store.mu.Unlock()

	store.save(snapshot)
	return true
}

// List returns a copy of the tasks, most recently added first.
func (store *Store) List() []model.Task {
	store.mu.Lock()
	defer store.mu.Unlock()
	return store.snapshotLocked()
}

// Get returns the task with id.
func (store *Store) Get(id int64) (model.Task, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()
	index := store.indexLocked(id)
	if index < 0 {
		return model.Task{}, false
	}
	return store.tasks[index], true
}

// Len returns the number of tasks.
func (store *Store) Len() int {
	store.mu.Lock()
	defer store.mu.Unlock()
	return len(store.tasks)
}

// nextIDLocked uses the creation time in milliseconds, bumped past the last id handed out.
func (store *Store) nextIDLocked(now time.Time) int64 {
	id := now.UnixMilli()
	if id <= store.lastID {
		id = store.lastID + 1
	}
	store.lastID = id
	return id
}

func (store *Store) indexLocked(id int64) int {
	for index, task := range store.tasks {
		if task.ID == id {
			return index
		}
	}
	return -1
}

func (store *Store) snapshotLocked() []model.Task {
	return append([]model.Task{}, store.tasks...)
}

func (store *Store) save(tasks []model.Task) {
	if store.options.Saver == nil {
		return
	}
	if err := store.options.Saver.SaveTasks(tasks); err != nil {
		log.Printf("tasks: save: %v", err)
	}
}
