package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidDuration indicates a non-positive or non-numeric interval setting.
var ErrInvalidDuration = errors.New("invalid duration")

const (
	DefaultWorkMinutes      = 25
	DefaultBreakMinutes     = 5
	DefaultLongBreakMinutes = 15
)

// Settings holds the user-adjustable interval lengths in minutes.
type Settings struct {
	WorkMinutes      int `json:"workTime"`
	BreakMinutes     int `json:"breakTime"`
	LongBreakMinutes int `json:"longBreakTime"`
}

// DefaultSettings returns the classic 25/5/15 schedule.
func DefaultSettings() Settings {
	return Settings{
		WorkMinutes:      DefaultWorkMinutes,
		BreakMinutes:     DefaultBreakMinutes,
		LongBreakMinutes: DefaultLongBreakMinutes,
	}
}

// Validate reports ErrInvalidDuration when any interval is not positive.
func (settings Settings) Validate() error {
	if settings.WorkMinutes <= 0 {
		return fmt.Errorf("work minutes %d: %w", settings.WorkMinutes, ErrInvalidDuration)
	}
	if settings.BreakMinutes <= 0 {
		return fmt.Errorf("break minutes %d: %w", settings.BreakMinutes, ErrInvalidDuration)
	}
	if settings.LongBreakMinutes <= 0 {
		return fmt.Errorf("long break minutes %d: %w", settings.LongBreakMinutes, ErrInvalidDuration)
	}
	return nil
}

// WithDefaults replaces non-positive fields with their defaults.
func (settings Settings) WithDefaults() Settings {
	if settings.WorkMinutes <= 0 {
		settings.WorkMinutes = DefaultWorkMinutes
	}
	if settings.BreakMinutes <= 0 {
		settings.BreakMinutes = DefaultBreakMinutes
	}
	if settings.LongBreakMinutes <= 0 {
		settings.LongBreakMinutes = DefaultLongBreakMinutes
	}
	return settings
}

// Work returns the focus interval.
func (settings Settings) Work() time.Duration {
	return time.Duration(settings.WorkMinutes) * time.Minute
}

// Break returns the short break interval.
func (settings Settings) Break() time.Duration {
	return time.Duration(settings.BreakMinutes) * time.Minute
}

// LongBreak returns the long break interval.
func (settings Settings) LongBreak() time.Duration {
	return time.Duration(settings.LongBreakMinutes) * time.Minute
}

// ParseMinutes parses user input for an interval field.
func ParseMinutes(value string) (int, error) {
	parsed, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%q is not a number: %w", value, ErrInvalidDuration)
	}
	if parsed <= 0 {
		return 0, fmt.Errorf("%d minutes: %w", parsed, ErrInvalidDuration)
	}
	return parsed, nil
}
