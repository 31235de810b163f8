package cmd

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/nibzard/todo-go/internal/app"
	"github.com/nibzard/todo-go/internal/output"
)

// mountSettings opens a session and loads the Settings screen state.
// Read errors are logged and the defaults shown, so reset still works on a
// damaged store.
func (c *cli) mountSettings(ctx context.Context) (*app.Session, *app.Settings, error) {
	session, err := c.openSession(ctx, c.logger, nil)
	if err != nil {
		return nil, nil, err
	}
	settings := app.NewSettings(session)
	if err := settings.Mount(ctx); err != nil {
		c.logger.Warn("Stored settings could not be read; using defaults", "err", err)
	}
	return session, settings, nil
}

// settingsCommand shows the current preferences and task count.
func (c *cli) settingsCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("todo settings", flag.ContinueOnError)
	fs.SetOutput(c.errOut)
	formatFlag := fs.String("output", "text", "Output format (text|json|yaml)")
	fs.StringVar(formatFlag, "o", "text", "Output format (text|json|yaml)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	format, err := output.ParseFormat(*formatFlag)
	if err != nil {
		return err
	}

	session, settings, err := c.mountSettings(ctx)
	if err != nil {
		return err
	}
	defer session.Close()
	return output.Settings(c.out, format, settings.Snapshot())
}

// setCommand changes one preference.
func (c *cli) setCommand(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: todo set <dark-mode|notifications> <on|off>")
	}
	value, err := parseOnOff(args[1])
	if err != nil {
		return err
	}

	session, settings, err := c.mountSettings(ctx)
	if err != nil {
		return err
	}
	defer session.Close()

	key := strings.ToLower(strings.TrimSpace(args[0]))
	switch key {
	case "dark-mode", "darkmode", "dark":
		err = settings.ToggleDarkMode(ctx, value)
		key = "dark-mode"
	case "notifications", "notify":
		err = settings.ToggleNotifications(ctx, value)
		key = "notifications"
	default:
		return fmt.Errorf("unknown setting %q (expected dark-mode or notifications)", args[0])
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(c.out, "%s: %s\n", key, onOff(value))
	return nil
}

// resetCommand wipes the whole store after confirmation.
func (c *cli) resetCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("todo reset", flag.ContinueOnError)
	fs.SetOutput(c.errOut)
	yes := fs.Bool("yes", false, "Skip the confirmation prompt")
	fs.BoolVar(yes, "y", false, "Skip the confirmation prompt")
	if err := fs.Parse(args); err != nil {
		return err
	}

	session, settings, err := c.mountSettings(ctx)
	if err != nil {
		return err
	}
	defer session.Close()

	settings.RequestClearAllData()
	if !*yes {
		if !c.isTTY() {
			settings.CancelClearAllData()
			return fmt.Errorf("refusing to clear data without confirmation; pass --yes")
		}
		ok, err := c.confirm("Clear All Data",
			"Are you sure you want to clear all data? This action cannot be undone.")
		if err != nil {
			settings.CancelClearAllData()
			return err
		}
		if !ok {
			settings.CancelClearAllData()
			fmt.Fprintln(c.out, "Cancelled.")
			return nil
		}
	}

	if err := settings.ConfirmClearAllData(ctx); err != nil {
		return err
	}
	fmt.Fprintln(c.out, settings.Message())
	return nil
}

// notifyCommand sends a test notification through the configured backends.
func (c *cli) notifyCommand(ctx context.Context, args []string) error {
	if len(args) != 1 || args[0] != "test" {
		return fmt.Errorf("usage: todo notify test")
	}
	session, err := c.openSession(ctx, c.logger, nil)
	if err != nil {
		return err
	}
	defer session.Close()

	if !session.Notify.RequestPermission(ctx) {
		fmt.Fprintln(c.errOut, "Warning: notification permission not granted")
	}
	id, err := session.Notify.FireImmediate(ctx, "Test Notification", "Notifications from todo are working.")
	if err != nil {
		return fmt.Errorf("sending notification: %w", err)
	}
	if id == "" {
		fmt.Fprintln(c.out, "Notifications are disabled. Enable them with 'todo set notifications on'.")
		return nil
	}
	fmt.Fprintf(c.out, "Sent notification %s via %s\n", id, session.Notify.Notifier().Name())
	return nil
}

// confirmPrompt asks a yes/no question on the terminal.
func confirmPrompt(title, description string) (bool, error) {
	var confirmed bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Clear").
				Negative("Cancel").
				Value(&confirmed),
		),
	).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return false, fmt.Errorf("confirmation cancelled: %w", err)
	}
	return confirmed, nil
}

func parseOnOff(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "true", "yes", "1":
		return true, nil
	case "off", "false", "no", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid value %q (expected on or off)", s)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}
