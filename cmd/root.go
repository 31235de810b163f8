// Package cmd implements the CLI command structure for todo.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/nibzard/todo-go/internal/app"
	"github.com/nibzard/todo-go/internal/config"
	"github.com/nibzard/todo-go/internal/datadir"
	"github.com/nibzard/todo-go/internal/kv"
	"github.com/nibzard/todo-go/internal/logging"
	"github.com/nibzard/todo-go/internal/notify"
	"github.com/nibzard/todo-go/internal/ui"
)

// Version is set via ldflags at build time.
var Version = "dev"

// keepRuns is how many interactive run logs are kept on disk.
const keepRuns = 20

// Streams are the writers commands print to.
type Streams struct {
	Out io.Writer
	Err io.Writer
}

// cli carries the loaded configuration into every command.
type cli struct {
	cfg     *config.Config
	sources *config.ConfigWithSources
	out     io.Writer
	errOut  io.Writer
	logger  *log.Logger

	// isTTY and confirm are replaced in tests.
	isTTY   func() bool
	confirm func(title, description string) (bool, error)
}

// Run executes the todo CLI.
func Run(ctx context.Context, args []string) error {
	return RunWithStreams(ctx, args, Streams{Out: os.Stdout, Err: os.Stderr})
}

// RunWithStreams executes the todo CLI, printing to the given streams.
func RunWithStreams(ctx context.Context, args []string, streams Streams) error {
	c := &cli{
		out:     streams.Out,
		errOut:  streams.Err,
		isTTY:   func() bool { return ui.IsTTY(os.Stdout) },
		confirm: confirmPrompt,
	}
	return c.run(ctx, args)
}

func (c *cli) run(ctx context.Context, args []string) error {
	// Create a flag set for global options
	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	fs.SetOutput(c.errOut)
	fs.Usage = func() {
		printUsage(fs, c.errOut)
	}
	help := fs.Bool("help", false, "Show help")
	fs.BoolVar(help, "h", false, "Show help")
	showVersion := fs.Bool("version", false, "Show version")
	fs.BoolVar(showVersion, "v", false, "Show version")

	// Global flags
	cws, err := config.LoadWithSources(fs, args)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	c.cfg = cws.Config
	c.sources = cws
	c.logger = logging.New(c.errOut, logging.OptionsFromConfig(
		c.cfg.LogLevel, c.cfg.LogFormat, c.cfg.LogTimestamps, c.cfg.LogCaller))

	if *help {
		printUsage(fs, c.out)
		return nil
	}
	if *showVersion {
		return c.versionCommand()
	}

	// With no subcommand, open the UI on a terminal and list tasks otherwise.
	remainingArgs := fs.Args()
	subcommand := "ls"
	if c.isTTY() {
		subcommand = "tui"
	}
	if len(remainingArgs) > 0 {
		subcommand = remainingArgs[0]
		remainingArgs = remainingArgs[1:]
	}

	switch subcommand {
	case "tui":
		return c.tuiCommand(ctx, remainingArgs)
	case "add":
		return c.addCommand(ctx, remainingArgs)
	case "rm", "delete", "remove":
		return c.rmCommand(ctx, remainingArgs)
	case "clear":
		return c.clearCommand(ctx, remainingArgs)
	case "ls", "list":
		return c.lsCommand(ctx, remainingArgs)
	case "settings":
		return c.settingsCommand(ctx, remainingArgs)
	case "set":
		return c.setCommand(ctx, remainingArgs)
	case "reset":
		return c.resetCommand(ctx, remainingArgs)
	case "notify":
		return c.notifyCommand(ctx, remainingArgs)
	case "doctor":
		return c.doctorCommand(ctx, remainingArgs)
	case "logs":
		return c.logsCommand(ctx, remainingArgs)
	case "config":
		return c.configCommand(remainingArgs)
	case "version":
		return c.versionCommand()
	case "help":
		printUsage(fs, c.out)
		return nil
	default:
		fmt.Fprintf(c.errOut, "Unknown command: %s\n", subcommand)
		printUsage(fs, c.errOut)
		return fmt.Errorf("unknown command: %s", subcommand)
	}
}

// openSession opens the configured store and notification backends. ch is
// the TUI channel, nil for one-shot commands.
func (c *cli) openSession(ctx context.Context, logger *log.Logger, ch *notify.Channel) (*app.Session, error) {
	if c.cfg.StoreBackend != kv.BackendMemory {
		if err := datadir.Ensure(c.cfg.DataDir); err != nil {
			return nil, err
		}
	}
	store, err := kv.Open(c.cfg.StoreBackend, c.cfg.GetStorePath())
	if err != nil {
		return nil, fmt.Errorf("opening store: %w", err)
	}
	notifier, err := c.buildNotifier(ch)
	if err != nil {
		store.Close()
		return nil, err
	}
	return app.NewSession(ctx, app.SessionOptions{
		Store:    store,
		Notifier: notifier,
		Logger:   logger,
		Version:  Version,
	}), nil
}

func (c *cli) buildNotifier(ch *notify.Channel) (notify.Multi, error) {
	notifier, err := notify.Build(c.cfg.Notifiers, notify.BuildOptions{
		LogPath:     c.cfg.GetNotificationLog(),
		HookCommand: c.cfg.HookCommand,
		WorkDir:     c.cfg.WorkDir,
		Channel:     ch,
	})
	if err != nil {
		return nil, fmt.Errorf("configuring notifiers: %w", err)
	}
	return notifier, nil
}

// tuiCommand launches the interactive UI.
func (c *cli) tuiCommand(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	if !c.isTTY() {
		return fmt.Errorf("tui requires a terminal; use 'todo ls' to list tasks")
	}

	// The screen owns stdout, so the run is logged to a file.
	runLog, err := logging.NewRunLogger(c.cfg.GetLogDir())
	if err != nil {
		return err
	}
	defer runLog.Close()
	logger := runLog.Logger(logging.OptionsFromConfig(
		c.cfg.LogLevel, c.cfg.LogFormat, c.cfg.LogTimestamps, c.cfg.LogCaller))
	if removed, err := logging.PruneRuns(c.cfg.GetLogDir(), keepRuns); err != nil {
		logger.Warn("Pruning run logs failed", "err", err)
	} else if removed > 0 {
		logger.Debug("Pruned run logs", "removed", removed)
	}

	ch := notify.NewChannel(16)
	session, err := c.openSession(ctx, logger, ch)
	if err != nil {
		return err
	}
	defer session.Close()

	logger.Info("Starting UI", "run", runLog.RunID, "store", c.cfg.GetStorePath(), "backend", c.cfg.StoreBackend)
	return ui.Run(ctx, session, ui.Options{Notifications: ch.C()})
}

// configCommand prints the example config or the effective configuration.
func (c *cli) configCommand(args []string) error {
	sub := "show"
	if len(args) > 0 {
		sub = args[0]
	}
	switch sub {
	case "example":
		fmt.Fprint(c.out, config.ExampleConfig())
		return nil
	case "show":
		return c.showConfig()
	default:
		return fmt.Errorf("unknown config command: %s (expected show or example)", sub)
	}
}

func (c *cli) showConfig() error {
	values := map[string]string{
		"data_dir":         c.cfg.DataDir,
		"store_backend":    c.cfg.StoreBackend,
		"store_path":       c.cfg.GetStorePath(),
		"notifiers":        strings.Join(c.cfg.Notifiers, ","),
		"notification_log": c.cfg.GetNotificationLog(),
		"hook_command":     c.cfg.HookCommand,
		"log_level":        c.cfg.LogLevel,
		"log_format":       c.cfg.LogFormat,
		"log_timestamps":   fmt.Sprint(c.cfg.LogTimestamps),
		"log_caller":       fmt.Sprint(c.cfg.LogCaller),
		"log_dir":          c.cfg.GetLogDir(),
	}
	for _, field := range config.ConfigFields() {
		fmt.Fprintf(c.out, "%-17s = %-40s (%s)\n", field, fmt.Sprintf("%q", values[field]), c.sources.Sources[field])
	}
	if files := c.sources.Files; len(files) > 0 {
		fmt.Fprintf(c.out, "\nConfig files: %s\n", strings.Join(files, ", "))
	}
	return nil
}

// versionCommand prints version information.
func (c *cli) versionCommand() error {
	fmt.Fprintf(c.out, "todo version %s\n", Version)
	return nil
}

// printUsage prints the usage message.
func printUsage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintln(w, "Todo - A minimal task list with local notifications")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  todo [options] [command] [arguments]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  tui                      Launch terminal UI (default on a terminal)")
	fmt.Fprintln(w, "  add <text...>            Add a task")
	fmt.Fprintln(w, "  rm <number>              Remove a task by its number in 'ls'")
	fmt.Fprintln(w, "  clear                    Remove all tasks")
	fmt.Fprintln(w, "  ls                       List tasks (default otherwise)")
	fmt.Fprintln(w, "  settings                 Show settings")
	fmt.Fprintln(w, "  set <key> <on|off>       Change dark-mode or notifications")
	fmt.Fprintln(w, "  reset                    Clear all data")
	fmt.Fprintln(w, "  notify test              Send a test notification")
	fmt.Fprintln(w, "  doctor                   Check store, notifiers and config")
	fmt.Fprintln(w, "  logs                     Show the latest UI run log")
	fmt.Fprintln(w, "  config [show|example]    Show effective or example config")
	fmt.Fprintln(w, "  version                  Show version information")
	fmt.Fprintln(w, "  help                     Show this help message")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Global Options:")
	fs.SetOutput(w)
	fs.PrintDefaults()
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Ls and Settings Options:")
	fmt.Fprintln(w, "  -output string")
	fmt.Fprintln(w, "        Output format (text|json|yaml) (default \"text\")")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Reset Options:")
	fmt.Fprintln(w, "  -yes")
	fmt.Fprintln(w, "        Skip the confirmation prompt")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Logs Options:")
	fmt.Fprintln(w, "  -f, --follow")
	fmt.Fprintln(w, "        Follow the log (like tail -f)")
	fmt.Fprintln(w, "  -n int")
	fmt.Fprintln(w, "        Number of lines to show (0 = all)")
}
