package preferences

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"pomodoro/internal/core/model"
)

// Window handles the preferences UI.
type Window struct {
	window    fyne.Window
	settings  model.Settings
	onSave    func(model.Settings) error
	work      *widget.Entry
	shortBrk  *widget.Entry
	longBrk   *widget.Entry
	errorText *widget.Label
}

// New creates a preferences window. onSave may reject the values, which keeps the window open.
func New(app fyne.App, settings model.Settings, onSave func(model.Settings) error) *Window {
	window := app.NewWindow("Pomodoro Settings")

	work := widget.NewEntry()
	shortBrk := widget.NewEntry()
	longBrk := widget.NewEntry()

	errorText := widget.NewLabel("")
	errorText.Importance = widget.DangerImportance
	errorText.Hide()

	form := container.NewVBox(
		widget.NewLabelWithStyle("Intervals", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewHBox(widget.NewLabel("Focus"), work, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Short break"), shortBrk, widget.NewLabel("min")),
		container.NewHBox(widget.NewLabel("Long break"), longBrk, widget.NewLabel("min")),
		errorText,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(320, 240))
	window.SetCloseIntercept(window.Hide)

	prefs := &Window{
		window:    window,
		onSave:    onSave,
		work:      work,
		shortBrk:  shortBrk,
		longBrk:   longBrk,
		errorText: errorText,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings model.Settings) {
	prefs.settings = settings
	input := InputFrom(settings)
	prefs.work.SetText(input.Work)
	prefs.shortBrk.SetText(input.Break)
	prefs.longBrk.SetText(input.LongBreak)
	prefs.errorText.Hide()
}

func (prefs *Window) handleSave() {
	input := Input{
		Work:      prefs.work.Text,
		Break:     prefs.shortBrk.Text,
		LongBreak: prefs.longBrk.Text,
	}

	settings, err := input.Parse()
	if err == nil && prefs.onSave != nil {
		err = prefs.onSave(settings)
	}
	if err != nil {
		prefs.errorText.SetText(err.Error())
		prefs.errorText.Show()
		return
	}

	prefs.settings = settings
	prefs.errorText.Hide()
	prefs.window.Hide()
}
