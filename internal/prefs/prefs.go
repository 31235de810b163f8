// Package prefs reads and writes the persisted preference flags.
package prefs

import (
	"context"
	"fmt"

	"github.com/nibzard/todo-go/internal/kv"
)

// Storage keys. The notification flag is stored as "notifications".
const (
	KeyDarkMode      = "darkMode"
	KeyNotifications = "notifications"
)

// Defaults applied when a key is absent.
const (
	DefaultDarkMode      = false
	DefaultNotifications = true
)

// Preferences holds both preference flags.
type Preferences struct {
	DarkMode             bool `json:"darkMode" yaml:"dark_mode"`
	NotificationsEnabled bool `json:"notificationsEnabled" yaml:"notifications_enabled"`
}

// Defaults returns the preferences used for an empty store.
func Defaults() Preferences {
	return Preferences{
		DarkMode:             DefaultDarkMode,
		NotificationsEnabled: DefaultNotifications,
	}
}

// Load reads both flags, falling back to defaults for absent keys.
func Load(ctx context.Context, s kv.Store) (Preferences, error) {
	p := Defaults()
	dark, err := Bool(ctx, s, KeyDarkMode, DefaultDarkMode)
	if err != nil {
		return p, err
	}
	notif, err := Bool(ctx, s, KeyNotifications, DefaultNotifications)
	if err != nil {
		return p, err
	}
	p.DarkMode = dark
	p.NotificationsEnabled = notif
	return p, nil
}

// Bool reads a JSON boolean from key, returning def when it is absent.
// On error def is returned alongside the error.
func Bool(ctx context.Context, s kv.Store, key string, def bool) (bool, error) {
	v := def
	found, err := kv.GetJSON(ctx, s, key, &v)
	if err != nil {
		return def, fmt.Errorf("read %s preference: %w", key, err)
	}
	if !found {
		return def, nil
	}
	return v, nil
}

// SetBool stores value under key as a JSON boolean.
func SetBool(ctx context.Context, s kv.Store, key string, value bool) error {
	if err := kv.SetJSON(ctx, s, key, value); err != nil {
		return fmt.Errorf("write %s preference: %w", key, err)
	}
	return nil
}

// DarkMode reads the dark mode flag.
func DarkMode(ctx context.Context, s kv.Store) (bool, error) {
	return Bool(ctx, s, KeyDarkMode, DefaultDarkMode)
}

// SetDarkMode persists the dark mode flag.
func SetDarkMode(ctx context.Context, s kv.Store, value bool) error {
	return SetBool(ctx, s, KeyDarkMode, value)
}

// NotificationsEnabled reads the notification flag.
func NotificationsEnabled(ctx context.Context, s kv.Store) (bool, error) {
	return Bool(ctx, s, KeyNotifications, DefaultNotifications)
}

// SetNotificationsEnabled persists the notification flag.
func SetNotificationsEnabled(ctx context.Context, s kv.Store, value bool) error {
	return SetBool(ctx, s, KeyNotifications, value)
}
