package config

// ExampleConfig returns an example configuration showing all available options.
func ExampleConfig() string {
	return `# todo configuration file
# Values can be overridden by TODO_* environment variables or CLI flags

# Data directory (supports ~ expansion and %VAR% on Windows)
data_dir = "~/.todo"

# Store backend: file, sqlite or memory
store_backend = "file"

# Store location (default: <data_dir>/store.json, or store.db for sqlite)
# store_path = "~/.todo/store.json"

# Notification backends: desktop, log, hook, tui
notifiers = ["desktop", "tui"]

# Notification log used by the "log" backend
# notification_log = "~/.todo/notifications.jsonl"

# Command run by the "hook" backend as: <command> <event> <title> <body>
# hook_command = "/path/to/hook.sh"

# Logging
log_level = "info"
log_format = "text"
log_timestamps = false
log_caller = false

# Per-run logs written by the interactive UI (default: <data_dir>/logs)
# log_dir = "~/.todo/logs"
`
}
