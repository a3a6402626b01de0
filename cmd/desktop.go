package main

import (
	"log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"

	"pomodoro/internal/core/appstate"
	"pomodoro/internal/core/clock"
	"pomodoro/internal/core/model"
	"pomodoro/internal/notify"
	"pomodoro/internal/storage"
	"pomodoro/internal/ui/banner"
	"pomodoro/internal/ui/preferences"
	"pomodoro/internal/ui/tray"
	"pomodoro/internal/ui/window"
	"pomodoro/resources"
)

func runDesktop(config model.AppConfig, configPath string) {
	fyneApp := app.NewWithID(appID)
	activeIcon := resources.MustIcon(resources.IconActive)
	pausedIcon := resources.MustIcon(resources.IconPaused)
	breakIcon := resources.MustIcon(resources.IconBreak)
	fyneApp.SetIcon(activeIcon)

	records := storage.NewRecords(openBackend(config.Storage, fyneApp.Preferences()))

	notifier := notify.New(notify.Options{
		Banner:         banner.New(fyneApp),
		Desktop:        notify.NewFyneDesktop(fyneApp),
		Tone:           newTone(config.Notifications),
		Permission:     config.Notifications.Permission,
		BannerDuration: bannerDuration(config.Notifications),
	})

	state := appstate.New(records, appstate.Options{Notifier: notifier})
	defer func() {
		if err := state.Close(); err != nil {
			log.Printf("storage: close: %v", err)
		}
	}()

	mainWindow := window.New(fyneApp, state)
	prefsWindow := preferences.New(fyneApp, state.Clock.Settings(), state.Clock.SetSettings)

	var trayManager *tray.Manager
	desktopApp, hasTray := fyneApp.(desktop.App)
	if hasTray {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow:        mainWindow.Show,
			OnPreferences: prefsWindow.Show,
			OnStart:       state.Clock.Start,
			OnTogglePause: state.Clock.TogglePause,
			OnSkip:        state.Clock.Skip,
			OnReset:       state.Clock.Reset,
			OnQuit:        fyneApp.Quit,
		})
		trayManager.Update(state.Clock.Snapshot())
		desktopApp.SetSystemTrayIcon(activeIcon)
		mainWindow.Window().SetCloseIntercept(mainWindow.Window().Hide)
	} else {
		log.Printf("system tray unsupported on this platform")
		mainWindow.Window().SetMaster()
	}

	trayIcon := func(snapshot clock.State) fyne.Resource {
		switch {
		case snapshot.Paused:
			return pausedIcon
		case snapshot.Phase.IsBreak():
			return breakIcon
		default:
			return activeIcon
		}
	}

	events := state.Clock.Subscribe(16)
	go func() {
		for event := range events {
			event := event
			fyne.Do(func() {
				mainWindow.HandleEvent(event)
				if event.Type == clock.EventSettings {
					prefsWindow.UpdateSettings(event.State.Settings)
				}
				if trayManager != nil {
					trayManager.Update(event.State)
					desktopApp.SetSystemTrayIcon(trayIcon(event.State))
				}
			})
		}
	}()

	mainWindow.Show()
	if config.Notifications.Permission == model.PermissionDefault {
		dialog.ShowConfirm("Notifications", permissionText, func(allowed bool) {
			resolvePermission(config.Notifications.Permission, configPath, notifier, func() (bool, error) {
				return allowed, nil
			})
		}, mainWindow.Window())
	} else {
		notifier.SetPermission(config.Notifications.Permission)
	}

	fyneApp.Run()
}
