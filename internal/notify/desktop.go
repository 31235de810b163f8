package notify

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
	"sync"
)

// CommandExecutor runs the platform notification command.
type CommandExecutor interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args ...string) error
}

type execExecutor struct{}

func (execExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (execExecutor) Run(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		if msg := strings.TrimSpace(string(out)); msg != "" {
			return fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// MockCommandExecutor records commands instead of running them.
type MockCommandExecutor struct {
	mu sync.Mutex
	// Missing lists commands LookPath reports as not installed.
	Missing map[string]bool
	// Err is returned from Run when non-nil.
	Err   error
	Calls [][]string
}

func (m *MockCommandExecutor) LookPath(file string) (string, error) {
	if m.Missing[file] {
		return "", &exec.Error{Name: file, Err: exec.ErrNotFound}
	}
	return "/usr/bin/" + file, nil
}

func (m *MockCommandExecutor) Run(ctx context.Context, name string, args ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, append([]string{name}, args...))
	return m.Err
}

// Desktop shows notifications through the operating system: notify-send
// on Linux and the BSDs, osascript on macOS and a PowerShell toast on
// Windows.
type Desktop struct {
	exec CommandExecutor
	goos string
}

// DesktopOption configures a Desktop notifier.
type DesktopOption func(*Desktop)

// WithCommandExecutor replaces the command runner.
func WithCommandExecutor(e CommandExecutor) DesktopOption {
	return func(d *Desktop) {
		d.exec = e
	}
}

// WithGOOS selects the platform command set.
func WithGOOS(goos string) DesktopOption {
	return func(d *Desktop) {
		d.goos = goos
	}
}

// NewDesktop returns a notifier for the current platform.
func NewDesktop(opts ...DesktopOption) *Desktop {
	d := &Desktop{exec: execExecutor{}, goos: runtime.GOOS}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Desktop) Name() string { return "desktop" }

// RequestPermission grants when the platform command is installed.
func (d *Desktop) RequestPermission(ctx context.Context) (bool, error) {
	name := d.binary()
	if name == "" {
		return false, fmt.Errorf("desktop notifications are not supported on %s", d.goos)
	}
	if _, err := d.exec.LookPath(name); err != nil {
		return false, nil
	}
	return true, nil
}

func (d *Desktop) Notify(ctx context.Context, n Notification) error {
	name, args, err := d.command(n)
	if err != nil {
		return err
	}
	return d.exec.Run(ctx, name, args...)
}

func (d *Desktop) binary() string {
	switch d.goos {
	case "darwin":
		return "osascript"
	case "windows":
		return "powershell"
	case "linux", "freebsd", "openbsd", "netbsd":
		return "notify-send"
	}
	return ""
}

func (d *Desktop) command(n Notification) (string, []string, error) {
	switch d.binary() {
	case "notify-send":
		args := []string{"--app-name=todo"}
		if n.Priority == PriorityHigh {
			args = append(args, "--urgency=critical")
		}
		if n.Sound {
			args = append(args, "--hint=string:sound-name:message-new-instant")
		}
		args = append(args, n.Title, n.Body)
		return "notify-send", args, nil
	case "osascript":
		script := fmt.Sprintf("display notification %s with title %s", appleScriptString(n.Body), appleScriptString(n.Title))
		if n.Sound {
			script += ` sound name "default"`
		}
		return "osascript", []string{"-e", script}, nil
	case "powershell":
		return "powershell", []string{"-NoProfile", "-NonInteractive", "-Command", windowsToastScript(n)}, nil
	}
	return "", nil, fmt.Errorf("desktop notifications are not supported on %s", d.goos)
}

func appleScriptString(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `"`, `\"`)
	return `"` + s + `"`
}

func powershellString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

func windowsToastScript(n Notification) string {
	audio := `<audio silent="true"/>`
	if n.Sound {
		audio = `<audio src="ms-winsoundevent:Notification.Default"/>`
	}
	scenario := ""
	if n.Priority == PriorityHigh {
		scenario = ` scenario="urgent"`
	}
	return strings.Join([]string{
		"[Windows.UI.Notifications.ToastNotificationManager, Windows.UI.Notifications, ContentType = WindowsRuntime] | Out-Null",
		"[Windows.Data.Xml.Dom.XmlDocument, Windows.Data.Xml.Dom.XmlDocument, ContentType = WindowsRuntime] | Out-Null",
		"$title = [Security.SecurityElement]::Escape(" + powershellString(n.Title) + ")",
		"$body = [Security.SecurityElement]::Escape(" + powershellString(n.Body) + ")",
		`$xml = New-Object Windows.Data.Xml.Dom.XmlDocument`,
		`$xml.LoadXml("<toast` + scenario + `><visual><binding template='ToastGeneric'><text>$title</text><text>$body</text></binding></visual>` + audio + `</toast>")`,
		`[Windows.UI.Notifications.ToastNotificationManager]::CreateToastNotifier('todo').Show([Windows.UI.Notifications.ToastNotification]::new($xml))`,
	}, "; ")
}
