// Package config loads todo's settings from layered sources.
//
// Later layers override earlier ones:
//
//	defaults < user file < project file < TODO_* environment < flags
//
// The user file is ~/.todo/todo.toml, or todo/todo.toml under the OS config
// directory (%APPDATA% on Windows, ~/Library/Application Support on macOS,
// $XDG_CONFIG_HOME or ~/.config elsewhere). The project file is ./todo.toml
// or ./.todo.toml. Unknown keys in either file are an error.
//
// Store, notification log and run log paths default to files under
// data_dir; see the Get* methods on Config.
package config
