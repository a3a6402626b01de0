package preferences

import (
	"errors"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pomodoro/internal/core/model"
)

func Test_Input_Parse_Accepts_Positive_Minutes(t *testing.T) {
	t.Parallel()

	settings, err := Input{Work: "50", Break: " 10", LongBreak: "30 "}.Parse()
	require.NoError(t, err)
	assert.Equal(t, model.Settings{WorkMinutes: 50, BreakMinutes: 10, LongBreakMinutes: 30}, settings)

	assert.Equal(t, Input{Work: "25", Break: "5", LongBreak: "15"}, InputFrom(model.DefaultSettings()))
}

func Test_Input_Parse_Names_Invalid_Field(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input Input
		field string
	}{
		{input: Input{Work: "0", Break: "5", LongBreak: "15"}, field: "focus"},
		{input: Input{Work: "25", Break: "five", LongBreak: "15"}, field: "short break"},
		{input: Input{Work: "25", Break: "5", LongBreak: "-1"}, field: "long break"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.field, func(t *testing.T) {
			t.Parallel()

			_, err := tt.input.Parse()
			require.ErrorIs(t, err, model.ErrInvalidDuration)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func Test_Window_Keeps_Previous_Settings_When_Input_Invalid(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	var saved []model.Settings
	prefs := New(app, model.DefaultSettings(), func(settings model.Settings) error {
		saved = append(saved, settings)
		return nil
	})

	prefs.work.SetText("0")
	prefs.handleSave()

	assert.Empty(t, saved)
	assert.True(t, prefs.errorText.Visible())
	assert.Equal(t, model.DefaultSettings(), prefs.settings)

	prefs.work.SetText("45")
	prefs.handleSave()

	require.Len(t, saved, 1)
	assert.Equal(t, 45, saved[0].WorkMinutes)
	assert.False(t, prefs.errorText.Visible())
}

func Test_Window_Shows_Rejection_From_Save(t *testing.T) {
	app := test.NewApp()
	defer app.Quit()

	prefs := New(app, model.DefaultSettings(), func(model.Settings) error {
		return errors.New("disk full")
	})

	prefs.handleSave()

	assert.True(t, prefs.errorText.Visible())
	assert.Equal(t, "disk full", prefs.errorText.Text)
}
