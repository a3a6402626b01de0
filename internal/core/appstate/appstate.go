package appstate

import (
	"sync"
	"time"

	"pomodoro/internal/core/clock"
	"pomodoro/internal/core/stats"
	"pomodoro/internal/core/tasks"
	"pomodoro/internal/notify"
	"pomodoro/internal/storage"
)

const eventBuffer = 16

// Notifier announces phase transitions.
type Notifier interface {
	Notify(kind notify.Kind)
}

// Options contains runtime collaborators shared by the components.
type Options struct {
	Scheduler clock.Scheduler
	Interval  time.Duration
	Notifier  Notifier
	Now       func() time.Time
}

// State owns every long-lived component of a running app.
// Front-ends receive it explicitly instead of reaching for globals.
type State struct {
	Records *storage.Records
	Clock   *clock.Clock
	Tasks   *tasks.Store
	Stats   *stats.Counter

	notifier  Notifier
	done      chan struct{}
	closeOnce sync.Once
}

// New loads the persisted records and wires the components together.
func New(records *storage.Records, options Options) *State {
	if options.Now == nil {
		options.Now = time.Now
	}

	counter := stats.New(records, options.Now)
	sessionClock := clock.New(records.LoadSettings(), clock.Options{
		Scheduler:     options.Scheduler,
		Interval:      options.Interval,
		Recorder:      counter,
		SettingsStore: records,
		Now:           options.Now,
	})
	taskStore := tasks.New(records.LoadTasks(), tasks.Options{
		Saver:    records,
		Recorder: counter,
		Now:      options.Now,
	})

	state := &State{
		Records:  records,
		Clock:    sessionClock,
		Tasks:    taskStore,
		Stats:    counter,
		notifier: options.Notifier,
		done:     make(chan struct{}),
	}
	go state.dispatch(sessionClock.Subscribe(eventBuffer))
	return state
}

// Close stops the clock, delivers pending notifications and releases storage.
func (state *State) Close() error {
	var err error
	state.closeOnce.Do(func() {
		state.Clock.Close()
		<-state.done
		err = state.Records.Close()
	})
	return err
}

func (state *State) dispatch(events <-chan clock.Event) {
	defer close(state.done)
	for event := range events {
		if event.Type != clock.EventPhaseComplete || state.notifier == nil {
			continue
		}
		switch event.Intent {
		case clock.IntentBreak:
			state.notifier.Notify(notify.KindBreak)
		case clock.IntentWork:
			state.notifier.Notify(notify.KindWork)
		}
	}
}
