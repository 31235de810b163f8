package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"

	"github.com/nibzard/todo-go/internal/hooks"
	"github.com/nibzard/todo-go/internal/parallel"
)

// LogFile appends each notification as one JSON line.
type LogFile struct {
	mu   sync.Mutex
	path string
}

// NewLogFile returns a notifier writing to path.
func NewLogFile(path string) *LogFile {
	return &LogFile{path: path}
}

func (l *LogFile) Name() string { return "log" }

// RequestPermission grants when the log directory can be created.
func (l *LogFile) RequestPermission(ctx context.Context) (bool, error) {
	if l.path == "" {
		return false, fmt.Errorf("notification log path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return false, fmt.Errorf("create notification log dir: %w", err)
	}
	return true, nil
}

func (l *LogFile) Notify(ctx context.Context, n Notification) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("marshal notification: %w", err)
	}
	data = append(data, '\n')

	l.mu.Lock()
	defer l.mu.Unlock()
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("create notification log dir: %w", err)
	}
	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open notification log: %w", err)
	}
	defer f.Close()
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("write notification log: %w", err)
	}
	return nil
}

// ReadLog returns the notifications recorded at path, oldest first.
func ReadLog(path string) ([]Notification, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read notification log: %w", err)
	}
	var out []Notification
	dec := json.NewDecoder(bytes.NewReader(data))
	for dec.More() {
		var n Notification
		if err := dec.Decode(&n); err != nil {
			return out, fmt.Errorf("parse notification log: %w", err)
		}
		out = append(out, n)
	}
	return out, nil
}

// Hook runs an external command for each notification.
type Hook struct {
	command string
	workDir string
}

// NewHook returns a notifier invoking command.
func NewHook(command, workDir string) *Hook {
	return &Hook{command: command, workDir: workDir}
}

func (h *Hook) Name() string { return "hook" }

// RequestPermission grants when the command resolves to an executable.
func (h *Hook) RequestPermission(ctx context.Context) (bool, error) {
	if h.command == "" {
		return false, fmt.Errorf("hook command is empty")
	}
	if _, err := exec.LookPath(h.command); err != nil {
		return false, nil
	}
	return true, nil
}

func (h *Hook) Notify(ctx context.Context, n Notification) error {
	_, err := hooks.Invoke(ctx, hooks.Options{
		Command:        h.command,
		Event:          string(n.Event),
		Title:          n.Title,
		Body:           n.Body,
		NotificationID: n.ID,
		WorkDir:        h.workDir,
	})
	return err
}

// ErrChannelFull is returned when the listener is not keeping up.
var ErrChannelFull = errors.New("notification channel full")

// Channel delivers notifications to an in-process listener such as the TUI.
type Channel struct {
	ch chan Notification
}

// NewChannel returns a channel notifier with the given buffer size.
func NewChannel(buffer int) *Channel {
	if buffer < 1 {
		buffer = 1
	}
	return &Channel{ch: make(chan Notification, buffer)}
}

func (c *Channel) Name() string { return "tui" }

func (c *Channel) RequestPermission(ctx context.Context) (bool, error) {
	return true, nil
}

// Notify never blocks; it fails when the buffer is full.
func (c *Channel) Notify(ctx context.Context, n Notification) error {
	select {
	case c.ch <- n:
		return nil
	default:
		return ErrChannelFull
	}
}

// C returns the receive side.
func (c *Channel) C() <-chan Notification {
	return c.ch
}

// Multi fans notifications out to every notifier.
type Multi []Notifier

func (m Multi) Name() string {
	if len(m) == 0 {
		return "none"
	}
	names := make([]string, 0, len(m))
	for _, n := range m {
		names = append(names, n.Name())
	}
	return strings.Join(names, ",")
}

// RequestPermission asks every notifier; it grants only if all grant.
func (m Multi) RequestPermission(ctx context.Context) (bool, error) {
	granted := true
	var errs []error
	for _, n := range m {
		ok, err := n.RequestPermission(ctx)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", n.Name(), err))
		}
		if !ok {
			granted = false
		}
	}
	return granted, errors.Join(errs...)
}

// Notify delivers to every notifier concurrently, even if some fail. Errors
// are joined in backend order.
func (m Multi) Notify(ctx context.Context, n Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(m) == 1 {
		if err := m[0].Notify(ctx, n); err != nil {
			return fmt.Errorf("%s: %w", m[0].Name(), err)
		}
		return nil
	}

	pool := parallel.NewWorkerPool(ctx, 0, false)
	for _, target := range m {
		pool.Submit(target.Name(), func(ctx context.Context) error {
			return target.Notify(ctx, n)
		})
	}
	_, errs := pool.Wait()
	return errors.Join(errs...)
}

// Recorder keeps every notification in memory.
type Recorder struct {
	mu   sync.Mutex
	Sent []Notification
	// Err is returned from Notify when non-nil; the notification is still
	// recorded.
	Err error
	// Denied makes RequestPermission report false.
	Denied bool
}

func (r *Recorder) Name() string { return "recorder" }

func (r *Recorder) RequestPermission(ctx context.Context) (bool, error) {
	return !r.Denied, nil
}

func (r *Recorder) Notify(ctx context.Context, n Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Sent = append(r.Sent, n)
	return r.Err
}

// Count returns the number of recorded notifications.
func (r *Recorder) Count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Sent)
}

// Last returns the most recent notification.
func (r *Recorder) Last() (Notification, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.Sent) == 0 {
		return Notification{}, false
	}
	return r.Sent[len(r.Sent)-1], true
}
