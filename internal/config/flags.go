package config

import (
	"flag"
	"strings"

	"github.com/nibzard/todo-go/internal/utils"
)

// flagFields maps flag names to config field names.
var flagFields = map[string]string{
	"data-dir":         "data_dir",
	"store":            "store_backend",
	"store-path":       "store_path",
	"notifiers":        "notifiers",
	"notification-log": "notification_log",
	"hook":             "hook_command",
	"log-level":        "log_level",
	"log-format":       "log_format",
	"log-timestamps":   "log_timestamps",
	"log-caller":       "log_caller",
	"log-dir":          "log_dir",
}

// parseFlags defines the global flags on fs and parses args. Values are
// bound to cfg after the file and environment layers, so the defaults
// shown in usage are the effective ones. If sources is non-nil, it tracks
// which fields were set on the command line.
func parseFlags(cfg *Config, fs *flag.FlagSet, args []string, sources map[string]ConfigSource) error {
	if fs == nil {
		fs = flag.NewFlagSet("todo", flag.ContinueOnError)
	}

	fs.StringVar(&cfg.DataDir, "data-dir", cfg.DataDir, "Data directory")
	fs.StringVar(&cfg.StoreBackend, "store", cfg.StoreBackend, "Store backend (file, sqlite, memory)")
	fs.StringVar(&cfg.StorePath, "store-path", cfg.StorePath, "Store file path (default: <data-dir>/store.json or store.db)")

	notifiers := strings.Join(cfg.Notifiers, ",")
	fs.StringVar(&notifiers, "notifiers", notifiers, "Comma-separated notification backends (desktop, log, hook, tui)")
	fs.StringVar(&cfg.NotificationLog, "notification-log", cfg.NotificationLog, "Notification log path (default: <data-dir>/notifications.jsonl)")
	fs.StringVar(&cfg.HookCommand, "hook", cfg.HookCommand, "Hook command run for each notification")

	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "Log format (text, json, logfmt)")
	fs.BoolVar(&cfg.LogTimestamps, "log-timestamps", cfg.LogTimestamps, "Show timestamps in logs")
	fs.BoolVar(&cfg.LogCaller, "log-caller", cfg.LogCaller, "Show caller location in logs")
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "Run log directory (default: <data-dir>/logs)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "notifiers" {
			cfg.Notifiers = utils.SplitAndTrim(notifiers, ",")
		}
		if sources == nil {
			return
		}
		if field, ok := flagFields[f.Name]; ok {
			sources[field] = SourceFlag
		}
	})
	return nil
}
