package config

import (
	"github.com/nibzard/todo-go/internal/datadir"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, user file first.
	Files []string
}

// Default values.
const (
	DefaultDataDir      = "~/" + datadir.Dir
	DefaultStoreBackend = "file"
	DefaultLogLevel     = "info"
	DefaultLogFormat    = "text"
)

// DefaultNotifiers returns the notification backends used when none are
// configured.
func DefaultNotifiers() []string {
	return []string{"desktop", "tui"}
}

// Config holds the full configuration for todo.
type Config struct {
	// Paths
	DataDir string `toml:"data_dir"`

	// Storage
	StoreBackend string `toml:"store_backend"`
	StorePath    string `toml:"store_path"`

	// Notifications
	Notifiers       []string `toml:"notifiers"`
	NotificationLog string   `toml:"notification_log"`
	HookCommand     string   `toml:"hook_command"`

	// Logging configuration
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`
	LogDir        string `toml:"log_dir"`

	// Working directory (computed)
	WorkDir string `toml:"-"`
}

// GetStorePath returns the store location, derived from the data dir and
// backend when store_path is unset.
func (c *Config) GetStorePath() string {
	if c.StorePath != "" {
		return c.StorePath
	}
	return datadir.StorePath(c.DataDir, c.StoreBackend)
}

// GetNotificationLog returns the notification log path.
func (c *Config) GetNotificationLog() string {
	if c.NotificationLog != "" {
		return c.NotificationLog
	}
	return datadir.NotificationLogPath(c.DataDir)
}

// GetLogDir returns the directory for per-run logs.
func (c *Config) GetLogDir() string {
	if c.LogDir != "" {
		return c.LogDir
	}
	return datadir.LogDirPath(c.DataDir)
}
