// Package datadir provides constants and utilities for the data directory
// layout.
package datadir

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// Dir is the name of the data directory inside the home directory.
	Dir = ".todo"

	// StoreFile is the JSON file store.
	StoreFile = "store.json"

	// StoreDB is the SQLite store.
	StoreDB = "store.db"

	// NotificationLogFile holds one JSON line per notification.
	NotificationLogFile = "notifications.jsonl"

	// LogDir holds the per-run logs.
	LogDir = "logs"

	// ConfigFile is the user config file name.
	ConfigFile = "todo.toml"
)

// StorePath returns the store location for backend within dataDir.
func StorePath(dataDir, backend string) string {
	if strings.EqualFold(strings.TrimSpace(backend), "sqlite") {
		return filepath.Join(dataDir, StoreDB)
	}
	return filepath.Join(dataDir, StoreFile)
}

// NotificationLogPath returns the notification log within dataDir.
func NotificationLogPath(dataDir string) string {
	return filepath.Join(dataDir, NotificationLogFile)
}

// LogDirPath returns the run log directory within dataDir.
func LogDirPath(dataDir string) string {
	return filepath.Join(dataDir, LogDir)
}

// DefaultPath returns ~/.todo.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locate home directory: %w", err)
	}
	return filepath.Join(home, Dir), nil
}

// Ensure creates dataDir if it does not exist.
func Ensure(dataDir string) error {
	if dataDir == "" {
		return fmt.Errorf("data dir is empty")
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	return nil
}
