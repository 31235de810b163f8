// Package hooks invokes the external notification hook.
package hooks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/nibzard/todo-go/internal/utils"
)

// Options configures a hook invocation.
type Options struct {
	Command string
	Event   string
	Title   string
	Body    string
	// NotificationID is exported to the hook as TODO_NOTIFICATION_ID.
	NotificationID string
	WorkDir        string
}

// Result captures the outcome of a hook invocation.
type Result struct {
	Ran      bool
	Command  []string
	ExitCode int
	Output   string
}

// payload is written to the hook's stdin.
type payload struct {
	ID    string `json:"id,omitempty"`
	Event string `json:"event"`
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Invoke runs the hook command as `<command> <event> <title> <body>` with
// a JSON copy of the notification on stdin. An empty command is a no-op.
func Invoke(ctx context.Context, opts Options) (Result, error) {
	if strings.TrimSpace(opts.Command) == "" {
		return Result{}, nil
	}

	info, err := os.Stat(opts.Command)
	if err == nil && info.IsDir() {
		return Result{}, fmt.Errorf("hook command is a directory: %s", opts.Command)
	}

	stdin, err := json.Marshal(payload{
		ID:    opts.NotificationID,
		Event: opts.Event,
		Title: opts.Title,
		Body:  opts.Body,
	})
	if err != nil {
		return Result{}, fmt.Errorf("encode hook payload: %w", err)
	}

	if ctx == nil {
		ctx = context.Background()
	}

	args := []string{opts.Event, opts.Title, opts.Body}
	cmd := exec.CommandContext(ctx, opts.Command, args...)
	if opts.WorkDir != "" {
		cmd.Dir = opts.WorkDir
	}
	cmd.Env = append(os.Environ(), "TODO_NOTIFICATION_ID="+opts.NotificationID)
	cmd.Stdin = bytes.NewReader(stdin)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	err = cmd.Run()
	result := Result{
		Ran:      true,
		Command:  cmd.Args,
		ExitCode: exitCodeFromError(err),
		Output:   strings.TrimSpace(out.String()),
	}
	if err != nil {
		return result, fmt.Errorf("hook command failed: %w", err)
	}
	return result, nil
}

func exitCodeFromError(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}

// Check reports whether command can be run as a hook. Bare names are
// resolved on PATH.
func Check(command string) (string, error) {
	command = strings.TrimSpace(command)
	if command == "" {
		return "", fmt.Errorf("hook command is empty")
	}
	if !strings.ContainsAny(command, `/\`) {
		path, err := exec.LookPath(command)
		if err != nil {
			return "", fmt.Errorf("hook command not found: %w", err)
		}
		return path, nil
	}

	info, err := os.Stat(command)
	if err != nil {
		return "", fmt.Errorf("hook command: %w", err)
	}
	if info.IsDir() {
		return "", fmt.Errorf("hook command is a directory: %s", command)
	}
	if !utils.IsExecutable(command, info) {
		return "", fmt.Errorf("hook command is not executable: %s", command)
	}
	return command, nil
}
