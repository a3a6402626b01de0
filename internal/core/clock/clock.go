package clock

import (
	"log"
	"sync"
	"time"

	"pomodoro/internal/core/model"
)

// CyclesPerLongBreak is the number of completed work phases between long breaks.
const CyclesPerLongBreak = 4

// Recorder receives completed focus sessions.
type Recorder interface {
	RecordPomodoroCompleted()
}

// SettingsStore persists interval settings.
type SettingsStore interface {
	SaveSettings(settings model.Settings) error
}

// Options contains runtime collaborators for the Clock.
type Options struct {
	Scheduler     Scheduler
	Interval      time.Duration
	Recorder      Recorder
	SettingsStore SettingsStore
	Now           func() time.Time
}

// State is a read-only snapshot of the session.
type State struct {
	Phase             Phase
	TimeLeftSeconds   int
	TotalSeconds      int
	SessionsCompleted int
	CycleCount        int
	Running           bool
	Paused            bool
	Settings          model.Settings
}

// Clock is the countdown state machine cycling through work and break phases.
type Clock struct {
	mu         sync.Mutex
	options    Options
	settings   model.Settings
	phase      Phase
	timeLeft   int
	total      int
	sessions   int
	cycles     int
	running    bool
	paused     bool
	cancelTick Cancel
	generation uint64
	events     []chan Event
	closed     bool
}

// New creates an idle Clock in the work phase.
func New(settings model.Settings, options Options) *Clock {
	if options.Scheduler == nil {
		options.Scheduler = TickerScheduler{}
	}
	if options.Interval <= 0 {
		options.Interval = time.Second
	}
	if options.Now == nil {
		options.Now = time.Now
	}
	if err := settings.Validate(); err != nil {
		settings = settings.WithDefaults()
	}

	clock := &Clock{
		options:  options,
		settings: settings,
	}
	clock.setPhaseLocked(PhaseWork)
	return clock
}

// Subscribe registers a new observer channel.
func (clock *Clock) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	clock.mu.Lock()
	if clock.closed {
		close(ch)
	} else {
		clock.events = append(clock.events, ch)
	}
	clock.mu.Unlock()
	return ch
}

// Start begins counting down. It is a no-op while already running.
func (clock *Clock) Start() {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	if clock.closed || clock.running {
		return
	}
	clock.running = true
	clock.paused = false
	clock.startTickLocked()
	clock.emitLocked(EventStateChange, IntentNone)
}

// Pause halts the countdown without losing the remaining time.
func (clock *Clock) Pause() {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	clock.pauseLocked()
}

// Resume continues a paused countdown from the same remaining time.
func (clock *Clock) Resume() {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	clock.resumeLocked()
}

// TogglePause pauses a running countdown or resumes a paused one.
func (clock *Clock) TogglePause() {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	if clock.paused {
		clock.resumeLocked()
		return
	}
	clock.pauseLocked()
}

// Reset stops the countdown and returns to a full work phase.
func (clock *Clock) Reset() {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	clock.stopTickLocked()
	clock.running = false
	clock.paused = false
	clock.setPhaseLocked(PhaseWork)
	clock.emitLocked(EventStateChange, IntentNone)
}

// Skip abandons the current phase and moves to the next one without recording it.
func (clock *Clock) Skip() {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	clock.stopTickLocked()
	clock.running = false
	clock.paused = false

	next := PhaseWork
	if clock.phase == PhaseWork {
		clock.cycles++
		next = clock.nextBreakLocked()
	}
	clock.setPhaseLocked(next)
	clock.emitLocked(EventStateChange, IntentNone)
}

// Tick advances the countdown by one second while running and not paused.
func (clock *Clock) Tick() {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	clock.tickLocked()
}

// SetSettings validates, stores and persists new interval lengths.
func (clock *Clock) SetSettings(settings model.Settings) error {
	if err := settings.Validate(); err != nil {
		return err
	}

	clock.mu.Lock()
	clock.settings = settings
	if !clock.running {
		clock.setPhaseLocked(clock.phase)
	}
	clock.emitLocked(EventSettings, IntentNone)
	store := clock.options.SettingsStore
	clock.mu.Unlock()

	if store != nil {
		if err := store.SaveSettings(settings); err != nil {
			log.Printf("clock: save settings: %v", err)
		}
	}
	return nil
}

// Settings returns the active interval settings.
func (clock *Clock) Settings() model.Settings {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.settings
}

// Snapshot returns the current session state.
func (clock *Clock) Snapshot() State {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	return clock.snapshotLocked()
}

// Close stops ticking and closes observers.
func (clock *Clock) Close() {
	clock.mu.Lock()
	if clock.closed {
		clock.mu.Unlock()
		return
	}
	clock.stopTickLocked()
	clock.running = false
	clock.paused = false
	clock.closed = true
	events := clock.events
	clock.events = nil
	clock.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
}

func (clock *Clock) pauseLocked() {
	if !clock.running || clock.paused {
		return
	}
	clock.paused = true
	clock.stopTickLocked()
	clock.emitLocked(EventStateChange, IntentNone)
}

func (clock *Clock) resumeLocked() {
	if !clock.running || !clock.paused {
		return
	}
	clock.paused = false
	clock.startTickLocked()
	clock.emitLocked(EventStateChange, IntentNone)
}

func (clock *Clock) tickLocked() {
	if !clock.running || clock.paused {
		return
	}
	clock.timeLeft--
	if clock.timeLeft <= 0 {
		clock.timeLeft = 0
		clock.completeLocked()
		return
	}
	clock.emitLocked(EventTick, IntentNone)
}

// scheduledTick drops callbacks that belong to a ticker cancelled since it was started.
func (clock *Clock) scheduledTick(generation uint64) {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	if generation != clock.generation {
		return
	}
	clock.tickLocked()
}

func (clock *Clock) completeLocked() {
	clock.stopTickLocked()
	clock.running = false
	clock.paused = false

	if clock.phase != PhaseWork {
		clock.setPhaseLocked(PhaseWork)
		clock.emitLocked(EventPhaseComplete, IntentWork)
		return
	}

	clock.sessions++
	clock.cycles++
	if clock.options.Recorder != nil {
		clock.options.Recorder.RecordPomodoroCompleted()
	}
	clock.setPhaseLocked(clock.nextBreakLocked())
	clock.emitLocked(EventPhaseComplete, IntentBreak)
}

func (clock *Clock) nextBreakLocked() Phase {
	if clock.cycles%CyclesPerLongBreak == 0 {
		return PhaseLongBreak
	}
	return PhaseShortBreak
}

func (clock *Clock) setPhaseLocked(phase Phase) {
	clock.phase = phase
	clock.total = clock.phaseSecondsLocked(phase)
	clock.timeLeft = clock.total
}

func (clock *Clock) phaseSecondsLocked(phase Phase) int {
	switch phase {
	case PhaseShortBreak:
		return clock.settings.BreakMinutes * 60
	case PhaseLongBreak:
		return clock.settings.LongBreakMinutes * 60
	default:
		return clock.settings.WorkMinutes * 60
	}
}

func (clock *Clock) startTickLocked() {
	clock.stopTickLocked()
	generation := clock.generation
	clock.cancelTick = clock.options.Scheduler.Every(clock.options.Interval, func() {
		clock.scheduledTick(generation)
	})
}

func (clock *Clock) stopTickLocked() {
	if clock.cancelTick != nil {
		clock.cancelTick()
		clock.cancelTick = nil
	}
	clock.generation++
}

func (clock *Clock) snapshotLocked() State {
	return State{
		Phase:             clock.phase,
		TimeLeftSeconds:   clock.timeLeft,
		TotalSeconds:      clock.total,
		SessionsCompleted: clock.sessions,
		CycleCount:        clock.cycles,
		Running:           clock.running,
		Paused:            clock.paused,
		Settings:          clock.settings,
	}
}

func (clock *Clock) emitLocked(eventType EventType, intent Intent) {
	event := Event{
		Type:   eventType,
		State:  clock.snapshotLocked(),
		Intent: intent,
		At:     clock.options.Now(),
	}
	for _, ch := range clock.events {
		select {
		case ch <- event:
		default:
		}
	}
}
