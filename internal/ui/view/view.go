// Package view turns clock and stats snapshots into display strings.
package view

import (
	"fmt"

	"pomodoro/internal/core/clock"
)

const (
	labelFocus      = "Focus Time"
	labelShortBreak = "Short Break"
	labelLongBreak  = "Long Break"
	labelPaused     = "Paused"
)

// FormatClock renders seconds as zero-padded MM:SS.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// PhaseLabel names a phase for the header.
func PhaseLabel(phase clock.Phase) string {
	switch phase {
	case clock.PhaseShortBreak:
		return labelShortBreak
	case clock.PhaseLongBreak:
		return labelLongBreak
	default:
		return labelFocus
	}
}

// StatusLabel is the phase label, or "Paused" while the countdown is held.
func StatusLabel(state clock.State) string {
	if state.Paused {
		return labelPaused
	}
	return PhaseLabel(state.Phase)
}

// Progress returns the remaining fraction of the phase in [0, 1].
func Progress(state clock.State) float64 {
	if state.TotalSeconds <= 0 {
		return 0
	}
	progress := float64(state.TimeLeftSeconds) / float64(state.TotalSeconds)
	if progress > 1 {
		return 1
	}
	if progress < 0 {
		return 0
	}
	return progress
}

// CycleIndicator shows the position within the four-session block, e.g. "2/4".
func CycleIndicator(cycle int) string {
	if cycle < 0 {
		cycle = 0
	}
	return fmt.Sprintf("%d/%d", cycle%clock.CyclesPerLongBreak+1, clock.CyclesPerLongBreak)
}

// FocusMinutes is the focus time accumulated by completed sessions this run.
func FocusMinutes(sessions, workMinutes int) int {
	return sessions * workMinutes
}

// TaskBadge labels a task's pomodoro count; empty when there are none.
func TaskBadge(pomodoros int) string {
	if pomodoros <= 0 {
		return ""
	}
	return fmt.Sprintf("🍅 %d", pomodoros)
}

// StartLabel is the caption of the start/pause control.
func StartLabel(state clock.State) string {
	switch {
	case state.Paused:
		return "Resume"
	case state.Running:
		return "Pause"
	default:
		return "Start"
	}
}

// Summary is a one-line status used by the tray and the shell.
func Summary(state clock.State) string {
	return fmt.Sprintf("%s %s", StatusLabel(state), FormatClock(state.TimeLeftSeconds))
}
