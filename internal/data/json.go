package data

import (
	"fmt"
	"os"
	"path/filepath"
)

// LoadScheduleJSON reads a saved schedule document.
func LoadScheduleJSON(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schedule file: %w", err)
	}
	return raw, nil
}

// SaveScheduleJSON writes a raw schedule document, creating parent directories.
func SaveScheduleJSON(raw []byte, filePath string) error {
	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(filePath, raw, 0644); err != nil {
		return fmt.Errorf("failed to write schedule file: %w", err)
	}
	return nil
}

// GetDefaultSchedulePath returns the default path for a saved schedule
func GetDefaultSchedulePath() string {
	if path := os.Getenv("SCHEDULE_FILE"); path != "" {
		return path
	}
	return "./data/schedule.json"
}
