package tray

import (
	"fmt"

	"fyne.io/fyne/v2"

	"pomodoro/internal/core/clock"
	"pomodoro/internal/ui/view"
)

// Host is the part of desktop.App the tray needs.
type Host interface {
	SetSystemTrayMenu(menu *fyne.Menu)
}

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow        func()
	OnPreferences func()
	OnStart       func()
	OnTogglePause func()
	OnSkip        func()
	OnReset       func()
	OnQuit        func()
}

// Manager handles system tray state.
type Manager struct {
	host       Host
	callbacks  Callbacks
	statusItem *fyne.MenuItem
	startItem  *fyne.MenuItem
	pauseItem  *fyne.MenuItem
	skipItem   *fyne.MenuItem
	resetItem  *fyne.MenuItem
	showItem   *fyne.MenuItem
	prefsItem  *fyne.MenuItem
	quitItem   *fyne.MenuItem
}

// New creates a tray manager with the provided callbacks.
func New(host Host, callbacks Callbacks) *Manager {
	manager := &Manager{
		host:      host,
		callbacks: callbacks,
	}

	manager.statusItem = fyne.NewMenuItem("Status: starting...", nil)
	manager.statusItem.Disabled = true

	manager.startItem = fyne.NewMenuItem("Start", func() { invoke(manager.callbacks.OnStart) })
	manager.pauseItem = fyne.NewMenuItem("Pause", func() { invoke(manager.callbacks.OnTogglePause) })
	manager.skipItem = fyne.NewMenuItem("Skip", func() { invoke(manager.callbacks.OnSkip) })
	manager.resetItem = fyne.NewMenuItem("Reset", func() { invoke(manager.callbacks.OnReset) })
	manager.showItem = fyne.NewMenuItem("Show timer", func() { invoke(manager.callbacks.OnShow) })
	manager.prefsItem = fyne.NewMenuItem("Preferences", func() { invoke(manager.callbacks.OnPreferences) })
	manager.quitItem = fyne.NewMenuItem("Quit", func() { invoke(manager.callbacks.OnQuit) })
	manager.quitItem.IsQuit = true

	manager.pauseItem.Disabled = true
	manager.refreshMenu()

	return manager
}

// Update mirrors a clock snapshot in the menu.
func (manager *Manager) Update(state clock.State) {
	manager.statusItem.Label = fmt.Sprintf("Status: %s", view.Summary(state))
	manager.startItem.Disabled = state.Running
	manager.pauseItem.Disabled = !state.Running
	if state.Paused {
		manager.pauseItem.Label = "Resume"
	} else {
		manager.pauseItem.Label = "Pause"
	}
	manager.refreshMenu()
}

// Menu returns the items currently installed in the tray.
func (manager *Manager) Menu() *fyne.Menu {
	return fyne.NewMenu("Pomodoro",
		manager.statusItem,
		fyne.NewMenuItemSeparator(),
		manager.startItem,
		manager.pauseItem,
		manager.skipItem,
		manager.resetItem,
		fyne.NewMenuItemSeparator(),
		manager.showItem,
		manager.prefsItem,
		manager.quitItem,
	)
}

func (manager *Manager) refreshMenu() {
	if manager.host != nil {
		manager.host.SetSystemTrayMenu(manager.Menu())
	}
}

func invoke(handler func()) {
	if handler != nil {
		handler()
	}
}
