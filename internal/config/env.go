package config

import (
	"os"

	"github.com/nibzard/todo-go/internal/utils"
)

// loadFromEnv overrides config from TODO_* environment variables. If
// sources is non-nil, it tracks the source of each value.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) {
	setEnv := func(field string) {
		if sources != nil {
			sources[field] = SourceEnv
		}
	}

	if v := os.Getenv("TODO_DATA_DIR"); v != "" {
		cfg.DataDir = v
		setEnv("data_dir")
	}
	if v := os.Getenv("TODO_STORE_BACKEND"); v != "" {
		cfg.StoreBackend = v
		setEnv("store_backend")
	}
	if v := os.Getenv("TODO_STORE_PATH"); v != "" {
		cfg.StorePath = v
		setEnv("store_path")
	}
	if v, ok := os.LookupEnv("TODO_NOTIFIERS"); ok {
		cfg.Notifiers = utils.SplitAndTrim(v, ",")
		setEnv("notifiers")
	}
	if v := os.Getenv("TODO_NOTIFICATION_LOG"); v != "" {
		cfg.NotificationLog = v
		setEnv("notification_log")
	}
	if v := os.Getenv("TODO_HOOK"); v != "" {
		cfg.HookCommand = v
		setEnv("hook_command")
	}

	// Logging configuration
	if v := os.Getenv("TODO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
		setEnv("log_level")
	}
	if v := os.Getenv("TODO_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
		setEnv("log_format")
	}
	if v := os.Getenv("TODO_LOG_TIMESTAMPS"); v != "" {
		cfg.LogTimestamps = boolFromString(v)
		setEnv("log_timestamps")
	}
	if v := os.Getenv("TODO_LOG_CALLER"); v != "" {
		cfg.LogCaller = boolFromString(v)
		setEnv("log_caller")
	}
	if v := os.Getenv("TODO_LOG_DIR"); v != "" {
		cfg.LogDir = v
		setEnv("log_dir")
	}
}

func boolFromString(s string) bool {
	switch utils.NormalizeName(s) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}
