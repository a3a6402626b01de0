package clock_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/clock"
	"pomodoro/internal/core/model"
)

type manualTicker struct {
	fn        func()
	cancelled bool
}

// manualScheduler hands tick delivery to the test.
type manualScheduler struct {
	tickers []*manualTicker
}

func (scheduler *manualScheduler) Every(_ time.Duration, fn func()) clock.Cancel {
	ticker := &manualTicker{fn: fn}
	scheduler.tickers = append(scheduler.tickers, ticker)
	return func() {
		ticker.cancelled = true
	}
}

func (scheduler *manualScheduler) active() []*manualTicker {
	var active []*manualTicker
	for _, ticker := range scheduler.tickers {
		if !ticker.cancelled {
			active = append(active, ticker)
		}
	}
	return active
}

// Fire delivers n ticks to whichever ticker is active at the time.
func (scheduler *manualScheduler) Fire(n int) {
	for i := 0; i < n; i++ {
		active := scheduler.active()
		if len(active) == 0 {
			return
		}
		active[0].fn()
	}
}

type countingRecorder struct {
	pomodoros int
}

func (recorder *countingRecorder) RecordPomodoroCompleted() {
	recorder.pomodoros++
}

type settingsSink struct {
	saved []model.Settings
	err   error
}

func (sink *settingsSink) SaveSettings(settings model.Settings) error {
	sink.saved = append(sink.saved, settings)
	return sink.err
}

type fixture struct {
	clock     *clock.Clock
	scheduler *manualScheduler
	recorder  *countingRecorder
	store     *settingsSink
}

func newFixture(t *testing.T, settings model.Settings) fixture {
	t.Helper()

	scheduler := &manualScheduler{}
	recorder := &countingRecorder{}
	store := &settingsSink{}
	c := clock.New(settings, clock.Options{
		Scheduler:     scheduler,
		Recorder:      recorder,
		SettingsStore: store,
	})
	t.Cleanup(c.Close)

	return fixture{clock: c, scheduler: scheduler, recorder: recorder, store: store}
}

// finishPhase starts the clock and ticks until the current phase completes.
func (f fixture) finishPhase() {
	f.clock.Start()
	f.scheduler.Fire(f.clock.Snapshot().TimeLeftSeconds)
}

func Test_Clock_Starts_Idle_In_Work_With_Full_Duration(t *testing.T) {
	t.Parallel()

	f := newFixture(t, model.DefaultSettings())
	state := f.clock.Snapshot()

	assert.Equal(t, clock.PhaseWork, state.Phase)
	assert.Equal(t, 1500, state.TimeLeftSeconds)
	assert.Equal(t, 1500, state.TotalSeconds)
	assert.False(t, state.Running)
	assert.False(t, state.Paused)
	assert.Empty(t, f.scheduler.tickers, "idle clock must not schedule ticks")
}

func Test_Clock_Falls_Back_To_Defaults_When_Settings_Invalid(t *testing.T) {
	t.Parallel()

	f := newFixture(t, model.Settings{WorkMinutes: 0, BreakMinutes: 7, LongBreakMinutes: -1})

	assert.Equal(t, model.Settings{WorkMinutes: 25, BreakMinutes: 7, LongBreakMinutes: 15}, f.clock.Settings())
}

func Test_Clock_Reset_Returns_To_Full_Work_Phase(t *testing.T) {
	t.Parallel()

	testCases := []model.Settings{
		{WorkMinutes: 1, BreakMinutes: 1, LongBreakMinutes: 1},
		{WorkMinutes: 25, BreakMinutes: 5, LongBreakMinutes: 15},
		{WorkMinutes: 50, BreakMinutes: 10, LongBreakMinutes: 30},
		{WorkMinutes: 90, BreakMinutes: 3, LongBreakMinutes: 45},
	}

	for _, settings := range testCases {
		f := newFixture(t, settings)

		f.finishPhase()
		f.clock.Start()
		f.scheduler.Fire(17)
		f.clock.Reset()

		state := f.clock.Snapshot()
		require.Equal(t, clock.PhaseWork, state.Phase)
		require.Equal(t, settings.WorkMinutes*60, state.TimeLeftSeconds)
		require.Equal(t, settings.WorkMinutes*60, state.TotalSeconds)
		require.False(t, state.Running)
		require.False(t, state.Paused)
		require.Empty(t, f.scheduler.active(), "reset must cancel the ticker")
	}
}

func Test_Clock_Takes_Long_Break_After_Every_Fourth_Work_Phase(t *testing.T) {
	t.Parallel()

	f := newFixture(t, model.DefaultSettings())
	var breaks []clock.Phase

	for i := 0; i < 4; i++ {
		f.finishPhase()
		breaks = append(breaks, f.clock.Snapshot().Phase)
		f.finishPhase()
		require.Equal(t, clock.PhaseWork, f.clock.Snapshot().Phase)
	}

	assert.Equal(t, []clock.Phase{
		clock.PhaseShortBreak,
		clock.PhaseShortBreak,
		clock.PhaseShortBreak,
		clock.PhaseLongBreak,
	}, breaks)

	state := f.clock.Snapshot()
	assert.Equal(t, 4, state.CycleCount)
	assert.Equal(t, 4, state.SessionsCompleted)
	assert.Equal(t, 4, f.recorder.pomodoros)
}

func Test_Clock_Long_Break_Uses_Long_Break_Duration(t *testing.T) {
	t.Parallel()

	f := newFixture(t, model.Settings{WorkMinutes: 1, BreakMinutes: 2, LongBreakMinutes: 3})
	for i := 0; i < 3; i++ {
		f.finishPhase()
		f.finishPhase()
	}
	f.finishPhase()

	state := f.clock.Snapshot()
	assert.Equal(t, clock.PhaseLongBreak, state.Phase)
	assert.Equal(t, 180, state.TotalSeconds)
	assert.Equal(t, 180, state.TimeLeftSeconds)
}

func Test_Clock_Pause_Then_Resume_Preserves_Time_Left(t *testing.T) {
	t.Parallel()

	f := newFixture(t, model.DefaultSettings())
	f.clock.Start()
	f.scheduler.Fire(42)
	before := f.clock.Snapshot()

	f.clock.Pause()
	paused := f.clock.Snapshot()
	assert.True(t, paused.Paused)
	assert.True(t, paused.Running)
	assert.Empty(t, f.scheduler.active(), "pause must cancel the ticker")

	f.scheduler.Fire(10)
	f.clock.Tick()
	assert.Equal(t, before.TimeLeftSeconds, f.clock.Snapshot().TimeLeftSeconds, "paused clock must not count down")

	f.clock.Resume()
	after := f.clock.Snapshot()
	assert.Equal(t, before.TimeLeftSeconds, after.TimeLeftSeconds)
	assert.False(t, after.Paused)
	assert.Len(t, f.scheduler.active(), 1)

	f.scheduler.Fire(1)
	assert.Equal(t, before.TimeLeftSeconds-1, f.clock.Snapshot().TimeLeftSeconds)
}

func Test_Clock_Pause_Is_Noop_When_Not_Running(t *testing.T) {
	t.Parallel()

	f := newFixture(t, model.DefaultSettings())
	f.clock.Pause()
	assert.False(t, f.clock.Snapshot().Paused)

	f.clock.Resume()
	assert.False(t, f.clock.Snapshot().Running)
}

func Test_Clock_TogglePause_Alternates(t *testing.T) {
	t.Parallel()

	f := newFixture(t, model.DefaultSettings())
	f.clock.Start()

	f.clock.TogglePause()
	assert.True(t, f.clock.Snapshot().Paused)
	f.clock.TogglePause()
	assert.False(t, f.clock.Snapshot().Paused)
}

func Test_Clock_Start_Keeps_A_Single_Ticker(t *testing.T) {
	t.Parallel()

	f := newFixture(t, model.DefaultSettings())
	f.clock.Start()
	f.clock.Start()
	f.clock.Pause()
	f.clock.Start()
	f.clock.Resume()
	f.clock.Start()

	assert.Len(t, f.scheduler.active(), 1)
	assert.Len(t, f.scheduler.tickers, 2, "only start and resume may schedule")
}

func Test_Clock_Drops_Ticks_From_Cancelled_Ticker(t *testing.T) {
	t.Parallel()

	f := newFixture(t, model.DefaultSettings())
	f.clock.Start()
	stale := f.scheduler.tickers[0].fn
	f.clock.Pause()
	f.clock.Resume()

	stale()
	stale()

	assert.Equal(t, 1500, f.clock.Snapshot().TimeLeftSeconds)
}

func Test_Clock_Completes_Work_After_Full_Countdown(t *testing.T) {
	t.Parallel()

	f := newFixture(t, model.DefaultSettings())
	events := f.clock.Subscribe(4096)

	f.clock.Start()
	f.scheduler.Fire(1499)
	require.Equal(t, 1, f.clock.Snapshot().TimeLeftSeconds)
	require.Zero(t, f.recorder.pomodoros)

	f.scheduler.Fire(1)

	state := f.clock.Snapshot()
	assert.Equal(t, 1, f.recorder.pomodoros)
	assert.Equal(t, clock.PhaseShortBreak, state.Phase)
	assert.Equal(t, 300, state.TotalSeconds)
	assert.Equal(t, 300, state.TimeLeftSeconds)
	assert.False(t, state.Running, "countdown must not auto-chain")
	assert.Empty(t, f.scheduler.active())

	var completions []clock.Event
	for len(events) > 0 {
		event := <-events
		if event.Type == clock.EventPhaseComplete {
			completions = append(completions, event)
		}
	}
	require.Len(t, completions, 1)
	assert.Equal(t, clock.IntentBreak, completions[0].Intent)
	assert.Equal(t, clock.PhaseShortBreak, completions[0].State.Phase)
}

func Test_Clock_Break_Completion_Returns_To_Work(t *testing.T) {
	t.Parallel()

	f := newFixture(t, model.DefaultSettings())
	f.finishPhase()
	events := f.clock.Subscribe(1024)

	f.finishPhase()

	state := f.clock.Snapshot()
	assert.Equal(t, clock.PhaseWork, state.Phase)
	assert.Equal(t, 1500, state.TotalSeconds)
	assert.Equal(t, 1, f.recorder.pomodoros, "breaks are not counted")

	var intent clock.Intent
	for len(events) > 0 {
		if event := <-events; event.Type == clock.EventPhaseComplete {
			intent = event.Intent
		}
	}
	assert.Equal(t, clock.IntentWork, intent)
}

func Test_Clock_Skip_During_Work_Does_Not_Record_Pomodoro(t *testing.T) {
	t.Parallel()

	f := newFixture(t, model.DefaultSettings())
	events := f.clock.Subscribe(64)
	f.clock.Start()
	f.scheduler.Fire(100)

	f.clock.Skip()

	state := f.clock.Snapshot()
	assert.Zero(t, f.recorder.pomodoros)
	assert.Zero(t, state.SessionsCompleted)
	assert.Equal(t, 1, state.CycleCount)
	assert.Equal(t, clock.PhaseShortBreak, state.Phase)
	assert.Equal(t, 300, state.TimeLeftSeconds)
	assert.False(t, state.Running)
	assert.False(t, state.Paused)
	assert.Empty(t, f.scheduler.active())

	for len(events) > 0 {
		assert.NotEqual(t, clock.EventPhaseComplete, (<-events).Type, "skip must not request a notification")
	}
}

func Test_Clock_Skip_Follows_Long_Break_Rule(t *testing.T) {
	t.Parallel()

	f := newFixture(t, model.DefaultSettings())
	for i := 0; i < 3; i++ {
		f.clock.Skip()
		require.Equal(t, clock.PhaseShortBreak, f.clock.Snapshot().Phase)
		f.clock.Skip()
		require.Equal(t, clock.PhaseWork, f.clock.Snapshot().Phase)
	}
	f.clock.Skip()

	assert.Equal(t, clock.PhaseLongBreak, f.clock.Snapshot().Phase)
	assert.Zero(t, f.recorder.pomodoros)
}

func Test_Clock_SetSettings_Rejects_Non_Positive_Values(t *testing.T) {
	t.Parallel()

	f := newFixture(t, model.DefaultSettings())

	err := f.clock.SetSettings(model.Settings{WorkMinutes: 30, BreakMinutes: 0, LongBreakMinutes: 20})

	require.ErrorIs(t, err, model.ErrInvalidDuration)
	assert.Equal(t, model.DefaultSettings(), f.clock.Settings())
	assert.Empty(t, f.store.saved)
	assert.Equal(t, 1500, f.clock.Snapshot().TotalSeconds)
}

func Test_Clock_SetSettings_Reapplies_Current_Phase_When_Idle(t *testing.T) {
	t.Parallel()

	f := newFixture(t, model.DefaultSettings())
	f.clock.Skip()

	updated := model.Settings{WorkMinutes: 40, BreakMinutes: 8, LongBreakMinutes: 20}
	require.NoError(t, f.clock.SetSettings(updated))

	state := f.clock.Snapshot()
	assert.Equal(t, clock.PhaseShortBreak, state.Phase)
	assert.Equal(t, 480, state.TotalSeconds)
	assert.Equal(t, 480, state.TimeLeftSeconds)
	assert.Equal(t, []model.Settings{updated}, f.store.saved)
}

func Test_Clock_SetSettings_Leaves_Running_Countdown_Alone(t *testing.T) {
	t.Parallel()

	f := newFixture(t, model.DefaultSettings())
	f.clock.Start()
	f.scheduler.Fire(5)

	require.NoError(t, f.clock.SetSettings(model.Settings{WorkMinutes: 10, BreakMinutes: 5, LongBreakMinutes: 15}))

	state := f.clock.Snapshot()
	assert.Equal(t, 1495, state.TimeLeftSeconds)
	assert.Equal(t, 1500, state.TotalSeconds)

	f.clock.Reset()
	assert.Equal(t, 600, f.clock.Snapshot().TotalSeconds)
}

func Test_Clock_SetSettings_Swallows_Persistence_Errors(t *testing.T) {
	t.Parallel()

	f := newFixture(t, model.DefaultSettings())
	f.store.err = errors.New("disk full")

	err := f.clock.SetSettings(model.Settings{WorkMinutes: 20, BreakMinutes: 5, LongBreakMinutes: 15})

	require.NoError(t, err)
	assert.Equal(t, 20, f.clock.Settings().WorkMinutes)
}

func Test_Clock_Tick_Is_Noop_When_Idle(t *testing.T) {
	t.Parallel()

	f := newFixture(t, model.DefaultSettings())
	f.clock.Tick()

	assert.Equal(t, 1500, f.clock.Snapshot().TimeLeftSeconds)
}

func Test_Clock_Close_Closes_Subscribers(t *testing.T) {
	t.Parallel()

	f := newFixture(t, model.DefaultSettings())
	events := f.clock.Subscribe(1)
	f.clock.Start()
	<-events

	f.clock.Close()

	_, open := <-events
	assert.False(t, open)
	assert.Empty(t, f.scheduler.active())

	f.clock.Start()
	assert.False(t, f.clock.Snapshot().Running, "closed clock must not restart")
}

func Test_TickerScheduler_Stops_After_Cancel(t *testing.T) {
	t.Parallel()

	ticks := make(chan struct{}, 100)
	cancel := clock.TickerScheduler{}.Every(time.Millisecond, func() {
		ticks <- struct{}{}
	})

	select {
	case <-ticks:
	case <-time.After(time.Second):
		t.Fatal("ticker never fired")
	}

	cancel()
	cancel()
	time.Sleep(10 * time.Millisecond)
	for len(ticks) > 0 {
		<-ticks
	}
	time.Sleep(10 * time.Millisecond)

	assert.Empty(t, ticks, "no ticks after cancel")
}
