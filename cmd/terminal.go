package main

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"pomodoro/internal/core/appstate"
	"pomodoro/internal/core/model"
	"pomodoro/internal/notify"
	"pomodoro/internal/shell"
	"pomodoro/internal/storage"
)

const desktopNotifyTimeout = 5 * time.Second

func runTerminal(config model.AppConfig, configPath string) {
	records := storage.NewRecords(openBackend(config.Storage, nil))
	console := shell.NewConsole(os.Stdout)

	notifier := notify.New(notify.Options{
		Banner:         console,
		Desktop:        notify.NewCommandDesktop(desktopNotifyTimeout),
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

	sh := shell.New(state, console, shell.Options{
		HistoryPath: filepath.Join(config.Storage.DataDir, historyFileName),
		OnStart: func(confirm func(string) (bool, error)) {
			resolvePermission(config.Notifications.Permission, configPath, notifier, func() (bool, error) {
				return confirm(permissionText)
			})
		},
	})
	if err := sh.Run(); err != nil {
		log.Printf("shell: %v", err)
	}
}
