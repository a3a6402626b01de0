package model

// Backend names accepted by StorageConfig.Backend.
const (
	BackendFile        = "file"
	BackendSQLite      = "sqlite"
	BackendPreferences = "preferences"
	BackendMemory      = "memory"
)

// NotificationPermission mirrors the three states of an OS notification grant.
type NotificationPermission string

const (
	PermissionDefault NotificationPermission = "default"
	PermissionGranted NotificationPermission = "granted"
	PermissionDenied  NotificationPermission = "denied"
)

// StorageConfig selects where the settings, tasks and stats records live.
type StorageConfig struct {
	Backend string
	DataDir string
}

// NotificationConfig controls the optional output devices.
type NotificationConfig struct {
	Permission    NotificationPermission
	Sound         bool
	Volume        float64
	BannerSeconds int
}

// AppConfig contains process-wide options that are not part of the user's timer settings.
type AppConfig struct {
	Storage       StorageConfig
	Notifications NotificationConfig
	LogFile       string
}

// DefaultAppConfig returns defaults for a fresh install.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		Storage: StorageConfig{
			Backend: BackendFile,
		},
		Notifications: NotificationConfig{
			Permission:    PermissionDefault,
			Sound:         true,
			BannerSeconds: 5,
		},
	}
}
