package storage

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/tailscale/hujson"

	"pomodoro/internal/core/model"
)

// Record keys inside the backend.
const (
	KeySettings = "settings"
	KeyTasks    = "tasks"
	KeyStats    = "stats"
)

// Records reads and writes the settings, tasks and stats records.
// Loads never fail: missing or unreadable records fall back to defaults.
type Records struct {
	backend Backend
}

// NewRecords returns a Records adapter over backend.
func NewRecords(backend Backend) *Records {
	return &Records{backend: backend}
}

// LoadSettings returns the stored settings or 25/5/15 defaults.
func (records *Records) LoadSettings() model.Settings {
	var stored model.Settings
	if !records.load(KeySettings, &stored) {
		return model.DefaultSettings()
	}
	return stored.WithDefaults()
}

// SaveSettings persists settings.
func (records *Records) SaveSettings(settings model.Settings) error {
	return records.save(KeySettings, settings)
}

// LoadTasks returns the stored task list or an empty list.
func (records *Records) LoadTasks() []model.Task {
	var stored []model.Task
	if !records.load(KeyTasks, &stored) || stored == nil {
		return []model.Task{}
	}
	return stored
}

// SaveTasks persists the whole task list.
func (records *Records) SaveTasks(tasks []model.Task) error {
	if tasks == nil {
		tasks = []model.Task{}
	}
	return records.save(KeyTasks, tasks)
}

// LoadStats returns the stored stats record as-is, or the zero value.
// Day rollover is the stats counter's concern.
func (records *Records) LoadStats() model.DailyStats {
	var stored model.DailyStats
	if !records.load(KeyStats, &stored) {
		return model.DailyStats{}
	}
	return stored
}

// SaveStats persists the stats record.
func (records *Records) SaveStats(stats model.DailyStats) error {
	return records.save(KeyStats, stats)
}

// Close releases the backend.
func (records *Records) Close() error {
	return records.backend.Close()
}

func (records *Records) load(key string, target any) bool {
	data, ok, err := records.backend.Get(key)
	if err != nil {
		log.Printf("storage: read %s: %v", key, fmt.Errorf("%w: %w", ErrUnavailable, err))
		return false
	}
	if !ok {
		return false
	}

	standardized, err := hujson.Standardize(data)
	if err != nil {
		log.Printf("storage: %s is malformed, using defaults: %v", key, err)
		return false
	}
	if err := json.Unmarshal(standardized, target); err != nil {
		log.Printf("storage: decode %s, using defaults: %v", key, err)
		return false
	}
	return true
}

func (records *Records) save(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := records.backend.Put(key, data); err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return nil
}
