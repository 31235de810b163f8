package app

import (
	"context"
	"fmt"
	"sync"

	"github.com/nibzard/todo-go/internal/prefs"
	"github.com/nibzard/todo-go/internal/todo"
)

// ClearedMessage is shown after a successful data wipe.
const ClearedMessage = "All data has been cleared."

// Snapshot is the state the Settings screen displays.
type Snapshot struct {
	DarkMode             bool   `json:"darkMode" yaml:"dark_mode"`
	NotificationsEnabled bool   `json:"notificationsEnabled" yaml:"notifications_enabled"`
	TaskCount            int    `json:"taskCount" yaml:"task_count"`
	Version              string `json:"version" yaml:"version"`
}

// Settings is the controller behind the Settings screen. The task count is
// read at mount and not refreshed afterwards.
type Settings struct {
	session *Session

	mu            sync.Mutex
	notifications bool
	taskCount     int
	clearPending  bool
	message       string
}

// NewSettings returns a controller showing the defaults until Mount runs.
func NewSettings(s *Session) *Settings {
	return &Settings{session: s, notifications: prefs.DefaultNotifications}
}

// Mount loads the notification flag and the task count. Both are read even
// if one fails; the first error is returned.
func (c *Settings) Mount(ctx context.Context) error {
	var firstErr error

	enabled, err := prefs.NotificationsEnabled(ctx, c.session.Store)
	if err != nil {
		c.session.Logger.Error("Error loading notification setting", "err", err)
		firstErr = err
	}

	tasks, _, err := todo.Load(ctx, c.session.Store)
	if err != nil {
		c.session.Logger.Error("Error loading task count", "err", err)
		if firstErr == nil {
			firstErr = err
		}
	}

	c.mu.Lock()
	c.notifications = enabled
	if err == nil {
		c.taskCount = len(tasks)
	}
	c.mu.Unlock()
	return firstErr
}

// DarkMode reports the shared theme flag.
func (c *Settings) DarkMode() bool {
	return c.session.Theme.DarkMode()
}

// NotificationsEnabled reports the displayed notification flag.
func (c *Settings) NotificationsEnabled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.notifications
}

// TaskCount returns the count read at mount.
func (c *Settings) TaskCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.taskCount
}

// Snapshot returns everything the screen displays.
func (c *Settings) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{
		DarkMode:             c.session.Theme.DarkMode(),
		NotificationsEnabled: c.notifications,
		TaskCount:            c.taskCount,
		Version:              c.session.Version,
	}
}

// Footer returns the version line.
func (c *Settings) Footer() string {
	return fmt.Sprintf("Todo App v%s", c.session.Version)
}

// ToggleDarkMode sets the theme. The new value stays in effect even when it
// cannot be saved; the error is returned so the screen can say so.
func (c *Settings) ToggleDarkMode(ctx context.Context, value bool) error {
	if err := c.session.Theme.Toggle(ctx, value); err != nil {
		c.session.Logger.Error("Error saving dark mode", "err", err)
		return err
	}
	return nil
}

// ToggleNotifications persists the flag and asks for permission again when
// it is turned on. A failed write leaves the displayed flag unchanged.
func (c *Settings) ToggleNotifications(ctx context.Context, value bool) error {
	if err := prefs.SetNotificationsEnabled(ctx, c.session.Store, value); err != nil {
		c.session.Logger.Error("Error saving notification setting", "err", err)
		return err
	}
	c.mu.Lock()
	c.notifications = value
	c.mu.Unlock()

	if value {
		c.session.Notify.RequestPermission(ctx)
	}
	return nil
}

// RequestClearAllData arms the wipe. Nothing is removed until
// ConfirmClearAllData.
func (c *Settings) RequestClearAllData() {
	c.mu.Lock()
	c.clearPending = true
	c.message = ""
	c.mu.Unlock()
}

// CancelClearAllData disarms a pending wipe.
func (c *Settings) CancelClearAllData() {
	c.mu.Lock()
	c.clearPending = false
	c.mu.Unlock()
}

// ClearPending reports whether a wipe is waiting for confirmation.
func (c *Settings) ClearPending() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.clearPending
}

// ConfirmClearAllData removes every key from the store and resets the
// displayed values and the theme to their defaults. It returns
// ErrNoClearPending unless RequestClearAllData was called first.
func (c *Settings) ConfirmClearAllData(ctx context.Context) error {
	c.mu.Lock()
	pending := c.clearPending
	c.clearPending = false
	c.mu.Unlock()
	if !pending {
		return ErrNoClearPending
	}

	if err := c.session.Store.Clear(ctx); err != nil {
		c.session.Logger.Error("Error clearing data", "err", err)
		return fmt.Errorf("clear data: %w", err)
	}

	c.mu.Lock()
	c.taskCount = 0
	c.notifications = prefs.DefaultNotifications
	c.message = ClearedMessage
	c.mu.Unlock()

	if err := c.session.Theme.Load(ctx); err != nil {
		c.session.Logger.Error("Error reloading theme", "err", err)
	}
	c.session.Logger.Info("All data cleared")
	return nil
}

// Message returns the last success message, if any.
func (c *Settings) Message() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.message
}

// DismissMessage clears the success message.
func (c *Settings) DismissMessage() {
	c.mu.Lock()
	c.message = ""
	c.mu.Unlock()
}
