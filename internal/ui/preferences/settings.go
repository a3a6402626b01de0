package preferences

import (
	"fmt"
	"strconv"

	"pomodoro/internal/core/model"
)

// Input holds the raw text of the three minute fields.
type Input struct {
	Work      string
	Break     string
	LongBreak string
}

// InputFrom formats settings for editing.
func InputFrom(settings model.Settings) Input {
	return Input{
		Work:      strconv.Itoa(settings.WorkMinutes),
		Break:     strconv.Itoa(settings.BreakMinutes),
		LongBreak: strconv.Itoa(settings.LongBreakMinutes),
	}
}

// Parse converts the fields to settings. Any invalid field rejects the whole input.
func (input Input) Parse() (model.Settings, error) {
	work, err := model.ParseMinutes(input.Work)
	if err != nil {
		return model.Settings{}, fmt.Errorf("focus: %w", err)
	}
	shortBreak, err := model.ParseMinutes(input.Break)
	if err != nil {
		return model.Settings{}, fmt.Errorf("short break: %w", err)
	}
	longBreak, err := model.ParseMinutes(input.LongBreak)
	if err != nil {
		return model.Settings{}, fmt.Errorf("long break: %w", err)
	}
	return model.Settings{
		WorkMinutes:      work,
		BreakMinutes:     shortBreak,
		LongBreakMinutes: longBreak,
	}, nil
}
