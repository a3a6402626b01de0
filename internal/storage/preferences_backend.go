package storage

import "fyne.io/fyne/v2"

const preferencesPrefix = "pomodoro."

// PreferencesBackend stores records as strings in the fyne app preferences.
type PreferencesBackend struct {
	preferences fyne.Preferences
}

// NewPreferencesBackend wraps the preferences of a running fyne app.
func NewPreferencesBackend(preferences fyne.Preferences) *PreferencesBackend {
	return &PreferencesBackend{preferences: preferences}
}

func (backend *PreferencesBackend) Get(key string) ([]byte, bool, error) {
	value := backend.preferences.StringWithFallback(preferencesPrefix+key, "")
	if value == "" {
		return nil, false, nil
	}
	return []byte(value), true, nil
}

func (backend *PreferencesBackend) Put(key string, value []byte) error {
	backend.preferences.SetString(preferencesPrefix+key, string(value))
	return nil
}

func (backend *PreferencesBackend) Close() error {
	return nil
}
