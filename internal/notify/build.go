package notify

import (
	"fmt"
	"strings"
)

// Backend names accepted by Build.
const (
	BackendDesktop = "desktop"
	BackendLog     = "log"
	BackendHook    = "hook"
	BackendTUI     = "tui"
)

// BuildOptions supplies what the backends need.
type BuildOptions struct {
	LogPath     string
	HookCommand string
	WorkDir     string
	// Channel receives notifications for the "tui" backend. When nil the
	// backend is skipped, as one-shot CLI commands have no screen to show
	// them on.
	Channel *Channel
	Desktop []DesktopOption
}

// Build assembles the named backends into a Multi.
func Build(names []string, opts BuildOptions) (Multi, error) {
	var out Multi
	seen := make(map[string]bool)
	for _, raw := range names {
		name := strings.ToLower(strings.TrimSpace(raw))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true

		switch name {
		case BackendDesktop:
			out = append(out, NewDesktop(opts.Desktop...))
		case BackendLog:
			if opts.LogPath == "" {
				return nil, fmt.Errorf("log notifier requires a notification log path")
			}
			out = append(out, NewLogFile(opts.LogPath))
		case BackendHook:
			if opts.HookCommand == "" {
				return nil, fmt.Errorf("hook notifier requires hook_command")
			}
			out = append(out, NewHook(opts.HookCommand, opts.WorkDir))
		case BackendTUI:
			if opts.Channel != nil {
				out = append(out, opts.Channel)
			}
		default:
			return nil, fmt.Errorf("unknown notifier %q (valid: desktop, log, hook, tui)", raw)
		}
	}
	return out, nil
}
