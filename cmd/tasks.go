package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/nibzard/todo-go/internal/app"
	"github.com/nibzard/todo-go/internal/output"
)

// mountTasks opens a session and loads the task list the way the Tasks
// screen does on mount. A list that cannot be read is logged and replaced
// by an empty one, so writes can still repair the store.
func (c *cli) mountTasks(ctx context.Context) (*app.Session, *app.TaskList, error) {
	session, err := c.openSession(ctx, c.logger, nil)
	if err != nil {
		return nil, nil, err
	}
	tasks := app.NewTaskList(session)
	if err := tasks.Mount(ctx); err != nil {
		c.logger.Warn("Stored tasks could not be read; starting from an empty list", "err", err)
	}
	return session, tasks, nil
}

// addCommand appends a task. All arguments are joined with spaces.
func (c *cli) addCommand(ctx context.Context, args []string) error {
	text := strings.Join(args, " ")
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("usage: todo add <text...>")
	}

	session, tasks, err := c.mountTasks(ctx)
	if err != nil {
		return err
	}
	defer session.Close()

	if err := tasks.Add(ctx, text); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Added task %d: %s\n", tasks.Len(), text)
	return nil
}

// rmCommand removes a task by its 1-based number.
func (c *cli) rmCommand(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: todo rm <number>")
	}
	num, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid task number %q", args[0])
	}

	session, tasks, err := c.mountTasks(ctx)
	if err != nil {
		return err
	}
	defer session.Close()

	list := tasks.Tasks()
	if err := tasks.Delete(ctx, num-1); err != nil {
		if errors.Is(err, app.ErrIndexOutOfRange) {
			return fmt.Errorf("no task %d (%d tasks)", num, len(list))
		}
		return err
	}
	fmt.Fprintf(c.out, "Removed task %d: %s\n", num, list[num-1])
	return nil
}

// clearCommand removes every task, keeping preferences.
func (c *cli) clearCommand(ctx context.Context, args []string) error {
	if len(args) > 0 {
		return fmt.Errorf("unexpected arguments: %v", args)
	}
	session, tasks, err := c.mountTasks(ctx)
	if err != nil {
		return err
	}
	defer session.Close()

	n := tasks.Len()
	if err := tasks.Clear(ctx); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "Cleared %d task(s).\n", n)
	return nil
}

// lsCommand lists tasks in insertion order.
func (c *cli) lsCommand(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("todo ls", flag.ContinueOnError)
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

	session, err := c.openSession(ctx, c.logger, nil)
	if err != nil {
		return err
	}
	defer session.Close()

	// Listing does not ask for notification permission.
	tasks := app.NewTaskList(session)
	if err := tasks.Reload(ctx); err != nil {
		return fmt.Errorf("loading tasks: %w", err)
	}
	return output.Tasks(c.out, format, tasks.Tasks())
}
