package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	flag "github.com/spf13/pflag"

	"fyne.io/fyne/v2"

	"pomodoro/internal/core/model"
	"pomodoro/internal/notify"
	"pomodoro/internal/platform"
	"pomodoro/internal/storage"
)

const (
	appName = "Pomodoro"
	appID   = "com.pomodoro.app"

	historyFileName = "shell_history"
	permissionText  = "Allow desktop notifications when a phase ends?"
)

// options are the resolved command-line flags.
type options struct {
	configPath string
	shell      bool
	overrides  model.AppConfig
	changed    map[string]bool
}

func main() {
	opts, err := parseFlags(os.Args[1:], os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		log.Printf("flags: %v", err)
		os.Exit(2)
	}

	if opts.configPath == "" {
		if path, pathErr := storage.DefaultConfigPath(appName); pathErr == nil {
			opts.configPath = path
		} else {
			log.Printf("config: %v", pathErr)
		}
	}

	config := model.DefaultAppConfig()
	if opts.configPath != "" {
		if loaded, loadErr := storage.LoadConfig(opts.configPath); loadErr == nil {
			config = loaded
		} else {
			log.Printf("config: %v", loadErr)
		}
	}
	config = opts.apply(config)

	if config.LogFile != "" {
		closeLog := setupLogging(config.LogFile)
		defer closeLog()
	}

	if config.Storage.DataDir == "" {
		dataDir, dirErr := platform.AppConfigDir(appName)
		if dirErr != nil {
			log.Printf("data dir: %v", dirErr)
			return
		}
		config.Storage.DataDir = dataDir
	}
	if err := os.MkdirAll(config.Storage.DataDir, 0o755); err != nil {
		log.Printf("data dir: %v", err)
	}

	guard, err := platform.AcquireSingleInstance(appName, config.Storage.DataDir)
	if err != nil {
		log.Printf("single instance: %v", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	log.Printf("pomodoro: %s storage in %s", config.Storage.Backend, config.Storage.DataDir)

	if opts.shell {
		runTerminal(config, opts.configPath)
		return
	}
	runDesktop(config, opts.configPath)
}

func parseFlags(args []string, output io.Writer) (options, error) {
	flagSet := flag.NewFlagSet("pomodoro", flag.ContinueOnError)
	flagSet.SetOutput(output)

	configPath := flagSet.String("config", "", "path to config.yaml")
	dataDir := flagSet.String("data-dir", "", "directory holding settings, tasks and stats")
	backend := flagSet.String("backend", "", "storage backend: file, sqlite, preferences or memory")
	logFile := flagSet.String("log-file", "", "append logs to this file")
	shell := flagSet.Bool("shell", false, "run in the terminal instead of a window")

	if err := flagSet.Parse(args); err != nil {
		return options{}, err
	}

	opts := options{
		configPath: *configPath,
		shell:      *shell,
		overrides: model.AppConfig{
			Storage: model.StorageConfig{Backend: *backend, DataDir: *dataDir},
			LogFile: *logFile,
		},
		changed: map[string]bool{},
	}
	for _, name := range []string{"data-dir", "backend", "log-file"} {
		opts.changed[name] = flagSet.Changed(name)
	}

	switch *backend {
	case "", model.BackendFile, model.BackendSQLite, model.BackendPreferences, model.BackendMemory:
	default:
		return options{}, fmt.Errorf("unknown backend %q", *backend)
	}
	return opts, nil
}

// apply lays explicitly set flags over the file config.
func (opts options) apply(config model.AppConfig) model.AppConfig {
	if opts.changed["backend"] {
		config.Storage.Backend = opts.overrides.Storage.Backend
	}
	if opts.changed["data-dir"] {
		config.Storage.DataDir = opts.overrides.Storage.DataDir
	}
	if opts.changed["log-file"] {
		config.LogFile = opts.overrides.LogFile
	}
	return config
}

func setupLogging(logFile string) func() {
	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		log.Printf("Failed to create log directory: %v", err)
		return func() {}
	}

	f, err := os.OpenFile(logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		log.Printf("Failed to open log file: %v", err)
		return func() {}
	}
	log.SetOutput(f)
	return func() {
		log.SetOutput(os.Stderr)
		_ = f.Close()
	}
}

// openBackend falls back to memory so the session still works without persistence.
func openBackend(config model.StorageConfig, preferences fyne.Preferences) storage.Backend {
	backend, err := storage.Open(config, preferences)
	if err != nil {
		log.Printf("storage: %v; keeping data in memory for this session", err)
		return storage.NewMemoryBackend()
	}
	return backend
}

func newTone(config model.NotificationConfig) notify.Tone {
	if !config.Sound {
		return nil
	}
	return notify.NewBeepTone(config.Volume)
}

func bannerDuration(config model.NotificationConfig) time.Duration {
	return time.Duration(config.BannerSeconds) * time.Second
}

// resolvePermission asks once and writes the answer back to the config file.
func resolvePermission(current model.NotificationPermission, configPath string, notifier *notify.Notifier, ask notify.Asker) {
	permission, changed := notify.ResolvePermission(current, ask)
	notifier.SetPermission(permission)
	if !changed || configPath == "" {
		return
	}

	fileConfig, err := storage.LoadConfig(configPath)
	if err != nil {
		log.Printf("config: %v", err)
		return
	}
	fileConfig.Notifications.Permission = permission
	if err := storage.SaveConfig(configPath, fileConfig); err != nil {
		log.Printf("config: %v", err)
	}
}
