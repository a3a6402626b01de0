package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"pomodoro/internal/core/model"
	"pomodoro/internal/platform"
)

const configFileName = "config.yaml"

type yamlConfig struct {
	Storage       yamlStorage       `yaml:"storage"`
	Notifications yamlNotifications `yaml:"notifications"`
	LogFile       string            `yaml:"log_file,omitempty"`
}

type yamlStorage struct {
	Backend string `yaml:"backend"`
	DataDir string `yaml:"data_dir,omitempty"`
}

type yamlNotifications struct {
	Permission    string  `yaml:"permission"`
	Sound         *bool   `yaml:"sound"`
	Volume        float64 `yaml:"volume"`
	BannerSeconds int     `yaml:"banner_seconds"`
}

// DefaultConfigPath returns <user config dir>/<appName>/config.yaml.
func DefaultConfigPath(appName string) (string, error) {
	appDir, err := platform.AppConfigDir(appName)
	if err != nil {
		return "", err
	}
	return filepath.Join(appDir, configFileName), nil
}

// LoadConfig reads the app config from YAML.
// If the file does not exist, default config is returned.
func LoadConfig(path string) (model.AppConfig, error) {
	config := model.DefaultAppConfig()

	rawData, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return config, nil
		}
		return config, fmt.Errorf("read config file: %w", err)
	}

	var fileData yamlConfig
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return config, fmt.Errorf("parse config yaml: %w", err)
	}

	applyYamlConfig(&config, fileData)
	return config, nil
}

// SaveConfig writes the app config to YAML.
func SaveConfig(path string, config model.AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	sound := config.Notifications.Sound
	fileData := yamlConfig{
		Storage: yamlStorage{
			Backend: config.Storage.Backend,
			DataDir: config.Storage.DataDir,
		},
		Notifications: yamlNotifications{
			Permission:    string(config.Notifications.Permission),
			Sound:         &sound,
			Volume:        config.Notifications.Volume,
			BannerSeconds: config.Notifications.BannerSeconds,
		},
		LogFile: config.LogFile,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal config yaml: %w", err)
	}

	if err := os.WriteFile(path, serialized, 0o644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}

	return nil
}

func applyYamlConfig(config *model.AppConfig, fileData yamlConfig) {
	switch fileData.Storage.Backend {
	case model.BackendFile, model.BackendSQLite, model.BackendPreferences, model.BackendMemory:
		config.Storage.Backend = fileData.Storage.Backend
	}
	if fileData.Storage.DataDir != "" {
		config.Storage.DataDir = fileData.Storage.DataDir
	}

	switch permission := model.NotificationPermission(fileData.Notifications.Permission); permission {
	case model.PermissionDefault, model.PermissionGranted, model.PermissionDenied:
		config.Notifications.Permission = permission
	}
	if fileData.Notifications.Sound != nil {
		config.Notifications.Sound = *fileData.Notifications.Sound
	}
	if fileData.Notifications.Volume >= -10 && fileData.Notifications.Volume <= 2 {
		config.Notifications.Volume = fileData.Notifications.Volume
	}
	if fileData.Notifications.BannerSeconds > 0 {
		config.Notifications.BannerSeconds = fileData.Notifications.BannerSeconds
	}

	config.LogFile = fileData.LogFile
}
