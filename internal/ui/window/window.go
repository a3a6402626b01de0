package window

import (
	"context"
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"pomodoro/internal/core/appstate"
	"pomodoro/internal/core/clock"
	"pomodoro/internal/core/model"
	"pomodoro/internal/ui/animation"
	"pomodoro/internal/ui/view"
)

const timeTextSize = float32(64)

var (
	workColor  = color.NRGBA{R: 229, G: 57, B: 53, A: 255}
	breakColor = color.NRGBA{R: 67, G: 160, B: 71, A: 255}
)

// Window is the win timer window: countdown, controls, tasks and today's stats.
type Window struct {
	state  *appstate.State
	window fyne.Window
	engine *animation.Engine

	timeText      *canvas.Text
	phaseLabel    *widget.Label
	progress      *widget.ProgressBar
	startButton   *widget.Button
	resetButton   *widget.Button
	skipButton    *widget.Button
	cycleLabel    *widget.Label
	sessionsLabel *widget.Label
	focusLabel    *widget.Label
	statsLabel    *widget.Label

	taskEntry *widget.Entry
	taskList  *fyne.Container
	emptyText *widget.Label
}

// New builds the window for state. It starts hidden.
func New(app fyne.App, state *appstate.State) *Window {
	win := &Window{
		state:  state,
		window: app.NewWindow("Pomodoro"),
	}
	if app.Icon() != nil {
		win.window.SetIcon(app.Icon())
	}

	win.timeText = canvas.NewText("25:00", workColor)
	win.timeText.Alignment = fyne.TextAlignCenter
	win.timeText.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	win.timeText.TextSize = timeTextSize

	win.phaseLabel = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	win.progress = widget.NewProgressBar()
	win.progress.TextFormatter = func() string { return "" }

	win.startButton = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), win.handleStart)
	win.startButton.Importance = widget.HighImportance
	win.resetButton = widget.NewButtonWithIcon("Reset", theme.MediaReplayIcon(), state.Clock.Reset)
	win.skipButton = widget.NewButtonWithIcon("Skip", theme.MediaSkipNextIcon(), state.Clock.Skip)

	win.cycleLabel = widget.NewLabel("")
	win.sessionsLabel = widget.NewLabel("")
	win.focusLabel = widget.NewLabel("")
	win.statsLabel = widget.NewLabel("")

	win.taskEntry = widget.NewEntry()
	win.taskEntry.SetPlaceHolder("What are you working on?")
	win.taskEntry.OnSubmitted = func(string) { win.handleAddTask() }
	addButton := widget.NewButtonWithIcon("Add", theme.ContentAddIcon(), win.handleAddTask)

	win.emptyText = widget.NewLabelWithStyle("No tasks yet", fyne.TextAlignCenter, fyne.TextStyle{Italic: true})
	win.taskList = container.NewVBox()

	win.engine = animation.New(animation.DefaultPulse(), func(intensity float64) {
		scale := win.engine.Spec().Scale(intensity)
		fyne.Do(func() {
			win.timeText.TextSize = timeTextSize * scale
			win.timeText.Refresh()
		})
	})

	timer := container.NewVBox(
		win.phaseLabel,
		win.timeText,
		win.progress,
		container.NewHBox(layout.NewSpacer(), win.startButton, win.resetButton, win.skipButton, layout.NewSpacer()),
		container.NewGridWithColumns(3, win.cycleLabel, win.sessionsLabel, win.focusLabel),
	)
	tasks := container.NewBorder(
		container.NewBorder(nil, nil, nil, addButton, win.taskEntry),
		win.statsLabel,
		nil,
		nil,
		container.NewVScroll(win.taskList),
	)

	win.window.SetContent(container.NewBorder(timer, nil, nil, nil, tasks))
	win.window.Resize(fyne.NewSize(380, 560))

	win.Render(state.Clock.Snapshot())
	win.RenderTasks()
	win.RenderStats()
	return win
}

// Window exposes the underlying fyne window.
func (win *Window) Window() fyne.Window {
	return win.window
}

// Show displays and focuses the window.
func (win *Window) Show() {
	win.window.Show()
	win.window.RequestFocus()
}

// HandleEvent re-renders after a clock event. Must run on the fyne goroutine.
func (win *Window) HandleEvent(event clock.Event) {
	win.Render(event.State)
	if event.Type == clock.EventPhaseComplete {
		win.RenderStats()
		win.engine.Pulse(context.Background())
	}
}

// Render updates the timer section from a snapshot.
func (win *Window) Render(state clock.State) {
	win.timeText.Text = view.FormatClock(state.TimeLeftSeconds)
	if state.Phase.IsBreak() {
		win.timeText.Color = breakColor
	} else {
		win.timeText.Color = workColor
	}
	win.timeText.Refresh()

	win.phaseLabel.SetText(view.StatusLabel(state))
	win.progress.SetValue(view.Progress(state))

	win.startButton.SetText(view.StartLabel(state))
	if state.Running && !state.Paused {
		win.startButton.SetIcon(theme.MediaPauseIcon())
	} else {
		win.startButton.SetIcon(theme.MediaPlayIcon())
	}

	win.cycleLabel.SetText("Session " + view.CycleIndicator(state.CycleCount))
	win.sessionsLabel.SetText(fmt.Sprintf("Done: %d", state.SessionsCompleted))
	win.focusLabel.SetText(fmt.Sprintf("Focus: %d min", view.FocusMinutes(state.SessionsCompleted, state.Settings.WorkMinutes)))
}

// RenderTasks rebuilds the task rows.
func (win *Window) RenderTasks() {
	tasks := win.state.Tasks.List()
	rows := make([]fyne.CanvasObject, 0, len(tasks))
	for _, task := range tasks {
		rows = append(rows, win.taskRow(task))
	}
	if len(rows) == 0 {
		rows = append(rows, win.emptyText)
	}
	win.taskList.Objects = rows
	win.taskList.Refresh()
}

// RenderStats updates today's counters.
func (win *Window) RenderStats() {
	today := win.state.Stats.Current()
	win.statsLabel.SetText(fmt.Sprintf("Today: %d tasks, %d pomodoros", today.TasksCompleted, today.PomodorosCompleted))
}

func (win *Window) taskRow(task model.Task) fyne.CanvasObject {
	id := task.ID
	check := widget.NewCheck(task.Text, nil)
	check.SetChecked(task.Completed)
	check.OnChanged = func(bool) {
		win.state.Tasks.Toggle(id)
		win.RenderTasks()
		win.RenderStats()
	}

	remove := widget.NewButtonWithIcon("", theme.DeleteIcon(), func() {
		win.state.Tasks.Remove(id)
		win.RenderTasks()
	})
	remove.Importance = widget.LowImportance

	badge := widget.NewLabel(view.TaskBadge(task.Pomodoros))
	return container.NewBorder(nil, nil, nil, container.NewHBox(badge, remove), check)
}

func (win *Window) handleStart() {
	snapshot := win.state.Clock.Snapshot()
	if snapshot.Running {
		win.state.Clock.TogglePause()
	} else {
		win.state.Clock.Start()
	}
	win.Render(win.state.Clock.Snapshot())
}

func (win *Window) handleAddTask() {
	if _, ok := win.state.Tasks.Add(win.taskEntry.Text); !ok {
		return
	}
	win.taskEntry.SetText("")
	win.RenderTasks()
}
