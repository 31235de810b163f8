package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/nibzard/todo-go/internal/hooks"
	"github.com/nibzard/todo-go/internal/kv"
	"github.com/nibzard/todo-go/internal/logging"
	"github.com/nibzard/todo-go/internal/notify"
	"github.com/nibzard/todo-go/internal/prefs"
	"github.com/nibzard/todo-go/internal/todo"
)

// doctorCommand checks config, store and notification backends.
func (c *cli) doctorCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("todo doctor", flag.ContinueOnError)
	fs.SetOutput(c.errOut)
	verbose := fs.Bool("v", false, "Verbose output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() > 0 {
		return fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	w := c.out
	fmt.Fprintln(w, "Todo Doctor")
	fmt.Fprintln(w, "===========")
	fmt.Fprintln(w)

	allOK := true

	// Config files
	fmt.Fprintln(w, "Config:")
	if len(c.sources.Files) == 0 {
		fmt.Fprintln(w, "  ⚠️  No config file (using defaults)")
	}
	for _, f := range c.sources.Files {
		fmt.Fprintf(w, "  ✅ %s\n", f)
	}
	if *verbose {
		for _, field := range []string{"data_dir", "store_backend", "notifiers", "log_level"} {
			fmt.Fprintf(w, "  %s: %s\n", field, c.sources.Sources[field])
		}
	}
	fmt.Fprintln(w)

	// Store
	fmt.Fprintf(w, "Store: %s (%s)\n", c.cfg.GetStorePath(), c.cfg.StoreBackend)
	if !c.checkStore(ctx, *verbose) {
		allOK = false
	}
	fmt.Fprintln(w)

	// Notifiers
	fmt.Fprintf(w, "Notifiers: %s\n", strings.Join(c.cfg.Notifiers, ", "))
	if !c.checkNotifiers(ctx) {
		allOK = false
	}
	fmt.Fprintln(w)

	// Logs
	logDir := c.cfg.GetLogDir()
	fmt.Fprintf(w, "Log directory: %s\n", logDir)
	if _, err := os.Stat(logDir); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(w, "  ⚠️  Not found (will be created by the UI)")
		} else {
			fmt.Fprintf(w, "  ❌ Error: %v\n", err)
			allOK = false
		}
	} else {
		fmt.Fprintln(w, "  ✅ OK")
		if latest, err := logging.FindLatestLog(logDir); err == nil && latest != "" && *verbose {
			fmt.Fprintf(w, "  Latest run: %s\n", latest)
		}
	}
	fmt.Fprintln(w)

	if allOK {
		fmt.Fprintln(w, "✅ All checks passed!")
		return nil
	}
	fmt.Fprintln(w, "⚠️  Some checks failed. Todo may not function correctly.")
	return fmt.Errorf("doctor checks failed")
}

func (c *cli) checkStore(ctx context.Context, verbose bool) bool {
	w := c.out
	if c.cfg.StoreBackend == kv.BackendMemory {
		fmt.Fprintln(w, "  ⚠️  Memory backend: data is not kept between runs")
		return true
	}
	if info, err := os.Stat(c.cfg.GetStorePath()); err != nil {
		if os.IsNotExist(err) {
			fmt.Fprintln(w, "  ⚠️  Not found (will be created on first write)")
			return true
		}
		fmt.Fprintf(w, "  ❌ Error: %v\n", err)
		return false
	} else if info.IsDir() {
		fmt.Fprintln(w, "  ❌ Error: path is a directory")
		return false
	}

	store, err := kv.Open(c.cfg.StoreBackend, c.cfg.GetStorePath())
	if err != nil {
		fmt.Fprintf(w, "  ❌ Open error: %v\n", err)
		return false
	}
	defer store.Close()

	list, _, err := todo.Load(ctx, store)
	if err != nil {
		var verr *todo.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintf(w, "  ❌ Invalid task list: %v\n", verr)
		} else {
			fmt.Fprintf(w, "  ❌ Load error: %v\n", err)
		}
		return false
	}
	p, err := prefs.Load(ctx, store)
	if err != nil {
		fmt.Fprintf(w, "  ❌ Preferences: %v\n", err)
		return false
	}
	fmt.Fprintf(w, "  ✅ OK (%d tasks)\n", len(list))
	if verbose {
		fmt.Fprintf(w, "  Dark mode: %s\n", onOff(p.DarkMode))
		fmt.Fprintf(w, "  Notifications: %s\n", onOff(p.NotificationsEnabled))
	}
	return true
}

func (c *cli) checkNotifiers(ctx context.Context) bool {
	w := c.out
	if len(c.cfg.Notifiers) == 0 {
		fmt.Fprintln(w, "  ⚠️  None configured (notifications are dropped)")
		return true
	}

	ok := true
	for _, name := range c.cfg.Notifiers {
		switch name {
		case notify.BackendHook:
			path, err := hooks.Check(c.cfg.HookCommand)
			if err != nil {
				fmt.Fprintf(w, "  ❌ hook: %v\n", err)
				ok = false
			} else {
				fmt.Fprintf(w, "  ✅ hook: %s\n", path)
			}
			continue
		case notify.BackendTUI:
			fmt.Fprintln(w, "  ✅ tui: shown while the UI is running")
			continue
		}

		backend, err := c.buildSingle(name)
		if err != nil {
			fmt.Fprintf(w, "  ❌ %s: %v\n", name, err)
			ok = false
			continue
		}
		granted, err := backend.RequestPermission(ctx)
		switch {
		case err != nil:
			fmt.Fprintf(w, "  ❌ %s: %v\n", name, err)
			ok = false
		case !granted:
			fmt.Fprintf(w, "  ⚠️  %s: not available on this system\n", name)
		default:
			fmt.Fprintf(w, "  ✅ %s\n", name)
		}
	}
	return ok
}

func (c *cli) buildSingle(name string) (notify.Notifier, error) {
	multi, err := notify.Build([]string{name}, notify.BuildOptions{
		LogPath:     c.cfg.GetNotificationLog(),
		HookCommand: c.cfg.HookCommand,
		WorkDir:     c.cfg.WorkDir,
	})
	if err != nil {
		return nil, err
	}
	return multi, nil
}

// logsCommand prints the latest UI run log.
func (c *cli) logsCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("todo logs", flag.ContinueOnError)
	fs.SetOutput(c.errOut)
	follow := fs.Bool("f", false, "Follow the log (like tail -f)")
	fs.BoolVar(follow, "follow", false, "Follow the log (like tail -f)")
	n := fs.Int("n", 0, "Number of lines to show (0 = all)")
	list := fs.Bool("list", false, "List run logs instead of printing one")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logDir := c.cfg.GetLogDir()
	if *list {
		runs, err := logging.FindLogRuns(logDir)
		if err != nil {
			return fmt.Errorf("listing logs: %w", err)
		}
		if len(runs) == 0 {
			fmt.Fprintln(c.out, "No log files found.")
			return nil
		}
		for _, r := range runs {
			fmt.Fprintf(c.out, "%s  %s\n", r.ModTime.Format("2006-01-02 15:04:05"), r.RunID)
		}
		return nil
	}

	logPath, err := logging.FindLatestLog(logDir)
	if err != nil {
		return fmt.Errorf("finding latest log: %w", err)
	}
	if logPath == "" {
		fmt.Fprintln(c.out, "No log files found.")
		return nil
	}

	fmt.Fprintf(c.errOut, "Tailing: %s\n", logPath)
	if *follow {
		fmt.Fprintln(c.errOut, "(Ctrl+C to stop)")
	}
	return logging.TailLog(ctx, c.out, logPath, *n, *follow)
}
